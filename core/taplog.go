package core

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"lsst.org.au/signin/utils"
)

// TapLog is the append-only record of every card presentation. Nothing
// here ever updates or reorders a prior entry; the sheet is a derived
// view that is reconciled against this log.
type TapLog struct {
	db *gorm.DB
}

func NewTapLog(db *gorm.DB) *TapLog {
	return &TapLog{db: db}
}

// Append records one tap and returns its id. eventDate may be empty on
// the degraded path where the sheet date could not be determined.
func (l *TapLog) Append(staffName string, token int64, timestamp time.Time, eventDate string) (int64, error) {
	event := TapEvent{
		StaffName: staffName,
		Token:     token,
		Timestamp: timestamp.Format(utils.TimestampLayout),
		EventDate: eventDate,
	}
	if err := l.db.Create(&event).Error; err != nil {
		return 0, fmt.Errorf("failed to append tap event: %w", err)
	}
	return event.ID, nil
}

// TapsFor returns the day's taps for one staff member as display time
// strings, ascending by timestamp. The first entry anchors the clock-in
// time for that date.
func (l *TapLog) TapsFor(staffName, eventDate string) ([]string, error) {
	var events []TapEvent
	err := l.db.Where("staff_name = ? AND event_date = ?", staffName, eventDate).
		Order("timestamp ASC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch taps: %w", err)
	}

	taps := make([]string, 0, len(events))
	for _, event := range events {
		ts, err := time.ParseInLocation(utils.TimestampLayout, event.Timestamp, time.Local)
		if err != nil {
			return nil, fmt.Errorf("corrupt timestamp %q in tap log: %w", event.Timestamp, err)
		}
		taps = append(taps, utils.FormatTimeOfDay(ts))
	}
	return taps, nil
}

// CountFor returns the number of logged taps for (staff, date). Odd means
// currently clocked in, even means clocked out.
func (l *TapLog) CountFor(staffName, eventDate string) (int64, error) {
	var count int64
	err := l.db.Model(&TapEvent{}).
		Where("staff_name = ? AND event_date = ?", staffName, eventDate).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count taps: %w", err)
	}
	return count, nil
}
