package utils

import (
	"fmt"
	"time"
)

const (
	// TimestampLayout is the second-precision format stored in the tap log.
	TimestampLayout = "2006-01-02 15:04:05"
	// DateLayout is the event_date column format.
	DateLayout = "2006-01-02"
	// TimeOfDayLayout is the 12-hour display format written to the sheet.
	TimeOfDayLayout = "03:04:05 PM"
	// FileDateLayout names the per-date workbook, no leading zeros.
	FileDateLayout = "1-2-2006"
	// HeaderDateLayout is the date written to the sheet's header cell.
	HeaderDateLayout = "1/2/2006"
)

func FormatTimeOfDay(t time.Time) string {
	return t.Format(TimeOfDayLayout)
}

func MustParseDate(dateStr string) time.Time {
	t, _ := time.ParseInLocation(DateLayout, dateStr, time.Local)
	return t
}

// CombineDateTime stamps the clock reading onto the sheet's calendar date.
// Taps are always logged on the open sheet's date, even when the wall
// clock has rolled past midnight since the sheet was opened.
func CombineDateTime(date time.Time, clock time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, date.Location())
}

// ParseTimeOnDate combines a base date with a time string (e.g. "08:00")
func ParseTimeOnDate(baseDate time.Time, timeStr string) (time.Time, error) {
	t, err := time.Parse("15:04", timeStr)
	if err != nil {
		// Try with seconds
		t, err = time.Parse("15:04:05", timeStr)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", timeStr, err)
	}
	return time.Date(baseDate.Year(), baseDate.Month(), baseDate.Day(), t.Hour(), t.Minute(), t.Second(), 0, baseDate.Location()), nil
}
