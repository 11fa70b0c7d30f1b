package attendance

import (
	"errors"
	"fmt"
	"time"

	"lsst.org.au/signin/core"
	"lsst.org.au/signin/utils"
)

// ProcessTap classifies one live card tap and applies it to the tap log
// and the active sheet. When the token is unknown, a registration ticket
// is minted and returned inside a RegistrationRequired error.
func (s *Service) ProcessTap(token int64, now time.Time) (*Result, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer s.busy.Store(false)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, ErrNoSheetOpen
	}

	member, err := s.directory.Lookup(token)
	if errors.Is(err, core.ErrNotFound) {
		return nil, s.requireRegistration(token, now)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up token %d: %w", token, err)
	}

	return s.applyTap(member.Name, token, now)
}

// applyTap runs the transition rule for one tap. Callers hold s.mu and
// have verified a sheet is open.
func (s *Service) applyTap(staffName string, token int64, now time.Time) (*Result, error) {
	date, ok := s.current.Date()
	if !ok {
		return s.applyDegraded(staffName, token, now)
	}

	// The sheet's calendar date anchors the event, so a shift running past
	// midnight stays on the sheet it started on.
	stamp := utils.CombineDateTime(date, now)
	eventDate := date.Format(utils.DateLayout)

	// 1. Log first. The durable log is the record; the sheet is a view
	// derived from it, so a sheet failure after this point loses nothing.
	if _, err := s.taps.Append(staffName, token, stamp, eventDate); err != nil {
		return nil, fmt.Errorf("failed to log tap: %w", err)
	}

	// 2. Parity comes from the log count, never from cached state.
	total, err := s.taps.CountFor(staffName, eventDate)
	if err != nil {
		return nil, fmt.Errorf("failed to count taps: %w", err)
	}

	// The clock-in cell always shows the day's first tap, even when the
	// row is being recreated after a delete.
	taps, err := s.taps.TapsFor(staffName, eventDate)
	if err != nil {
		return nil, fmt.Errorf("failed to read tap history: %w", err)
	}
	firstTap := utils.FormatTimeOfDay(stamp)
	if len(taps) > 0 {
		firstTap = taps[0]
	}

	return s.updateRow(staffName, utils.FormatTimeOfDay(stamp), firstTap, total, false, "")
}

// applyDegraded handles a sheet whose date could not be recovered: the
// tap is logged without a date linkage and treated as the first of the
// day, so the kiosk keeps recording instead of refusing service.
func (s *Service) applyDegraded(staffName string, token int64, now time.Time) (*Result, error) {
	if _, err := s.taps.Append(staffName, token, now, ""); err != nil {
		return nil, fmt.Errorf("failed to log tap: %w", err)
	}
	tapTime := utils.FormatTimeOfDay(now)
	return s.updateRow(staffName, tapTime, tapTime, 1, true, "")
}

// updateRow applies tap number total to the sheet: odd parity means the
// member is now clocked in, even means clocked out. Every tap lands in
// the trail column regardless of classification, and the whole change is
// persisted in one write.
func (s *Service) updateRow(staffName, tapTime, firstTap string, total int64, degraded bool, remark string) (*Result, error) {
	slot, err := s.current.FindRow(staffName)
	if err != nil {
		return nil, err
	}

	var status string
	fresh := slot == -1
	if fresh {
		slot, err = s.current.AppendRow(staffName, firstTap)
		if err != nil {
			return nil, err
		}
	}

	switch {
	case total%2 == 0:
		if err := s.current.SetLastTap(slot, tapTime); err != nil {
			return nil, err
		}
		status = StatusClockedOut
	case fresh || degraded:
		// On a dateless sheet every tap counts as the day's first, so the
		// classification stays Clocked In even once the row exists.
		status = StatusClockedIn
	default:
		status = StatusTapRecorded
	}

	if err := s.current.AppendTapTrail(slot, tapTime); err != nil {
		return nil, err
	}
	if remark != "" {
		if err := s.current.SetRemark(slot, remark); err != nil {
			return nil, err
		}
	}

	if err := s.current.Persist(); err != nil {
		// The log append already succeeded; parity recomputes from the log
		// on the next successful sheet write.
		return nil, fmt.Errorf("sheet update failed after tap was logged: %w", err)
	}

	return &Result{
		Status:   statusLabel(status, staffName),
		RowIndex: slot,
		Degraded: degraded,
	}, nil
}
