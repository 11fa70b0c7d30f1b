package attendance

import (
	"fmt"

	"lsst.org.au/signin/utils"
)

// ClockAction selects the direction of a manual correction.
type ClockAction string

const (
	ActionIn  ClockAction = "in"
	ActionOut ClockAction = "out"
)

// Remarks recorded against manually corrected rows. A row touched by
// both corrections carries the combined remark.
const (
	RemarkManualIn   = "Manually Clocked In"
	RemarkManualOut  = "Manually Clocked Out"
	RemarkManualBoth = "Manually Clocked In/Out"
)

// ManualClock records an operator correction at the given time of day
// ("15:04" or "15:04:05") on the active sheet. A clock-in is rejected
// when the member already has a row; a clock-out when there is no row or
// the row already shows a clock-out. The correction is also appended to
// the tap log so parity stays consistent with the sheet.
func (s *Service) ManualClock(staffName string, timeOfDay string, action ClockAction) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, ErrNoSheetOpen
	}
	date, ok := s.current.Date()
	if !ok {
		return nil, fmt.Errorf("cannot apply manual corrections: sheet date is unknown")
	}

	stamp, err := utils.ParseTimeOnDate(date, timeOfDay)
	if err != nil {
		return nil, fmt.Errorf("invalid time of day %q: %w", timeOfDay, err)
	}

	member, err := s.directory.LookupByName(staffName)
	if err != nil {
		return nil, err
	}

	slot, err := s.current.FindRow(staffName)
	if err != nil {
		return nil, err
	}

	// Validate before touching the log so a rejected correction leaves no
	// partial state anywhere.
	existingRemark := ""
	switch action {
	case ActionIn:
		if slot != -1 {
			return nil, ErrAlreadyOnSheet
		}
	case ActionOut:
		if slot == -1 {
			return nil, ErrNotClockedIn
		}
		row, err := s.current.Row(slot)
		if err != nil {
			return nil, err
		}
		if row.ClockOut != "" {
			return nil, ErrAlreadyClockedOut
		}
		existingRemark, err = s.current.Remark(slot)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown clock action %q", action)
	}

	eventDate := date.Format(utils.DateLayout)
	if _, err := s.taps.Append(staffName, member.Token, stamp, eventDate); err != nil {
		return nil, fmt.Errorf("failed to log manual correction: %w", err)
	}
	total, err := s.taps.CountFor(staffName, eventDate)
	if err != nil {
		return nil, fmt.Errorf("failed to count taps: %w", err)
	}

	tapTime := utils.FormatTimeOfDay(stamp)
	firstTap := tapTime
	if taps, err := s.taps.TapsFor(staffName, eventDate); err == nil && len(taps) > 0 {
		firstTap = taps[0]
	}

	remark := RemarkManualIn
	if action == ActionOut {
		remark = RemarkManualOut
	}
	return s.updateRow(staffName, tapTime, firstTap, total, false, mergeRemark(existingRemark, remark))
}

func mergeRemark(existing, remark string) string {
	if existing == "" || existing == remark {
		return remark
	}
	return RemarkManualBoth
}

// DeleteResult reports what a row removal left behind.
type DeleteResult struct {
	// TapsRetained counts the log entries kept for the date. The log is
	// append-only: a later tap by the same member recreates the row with
	// parity recomputed from these entries.
	TapsRetained int64 `json:"tapsRetained"`
}

// DeleteRow removes a staff member's row from the active sheet, shifting
// later rows up. The tap log is untouched.
func (s *Service) DeleteRow(staffName string) (*DeleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, ErrNoSheetOpen
	}

	slot, err := s.current.FindRow(staffName)
	if err != nil {
		return nil, err
	}
	if slot == -1 {
		return nil, ErrRowNotFound
	}

	if err := s.current.DeleteRow(slot); err != nil {
		return nil, err
	}
	if err := s.current.Persist(); err != nil {
		return nil, err
	}

	var retained int64
	if date, ok := s.current.Date(); ok {
		retained, err = s.taps.CountFor(staffName, date.Format(utils.DateLayout))
		if err != nil {
			return nil, err
		}
	}
	return &DeleteResult{TapsRetained: retained}, nil
}
