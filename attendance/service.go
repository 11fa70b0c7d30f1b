package attendance

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"gorm.io/gorm"
	"lsst.org.au/signin/core"
	"lsst.org.au/signin/sheet"
	"lsst.org.au/signin/utils"
)

// Status labels surfaced to the presentation layer.
const (
	StatusClockedIn   = "Clocked In"
	StatusClockedOut  = "Clocked Out"
	StatusTapRecorded = "Tap Recorded"
)

var (
	// ErrBusy means a tap arrived while another was mid-flight. Dropped
	// taps are an accepted trade-off: physical taps are seconds apart, so
	// we drop rather than queue.
	ErrBusy = errors.New("another tap is being processed")
	// ErrNoSheetOpen means no daily sheet is active yet.
	ErrNoSheetOpen = errors.New("no sign-in sheet is open")
	// ErrRowNotFound means the staff member has no row on the open sheet.
	ErrRowNotFound = errors.New("no sheet row for that staff member")

	ErrAlreadyOnSheet    = errors.New("staff member already has a row for today")
	ErrNotClockedIn      = errors.New("staff member has not clocked in today")
	ErrAlreadyClockedOut = errors.New("staff member has already clocked out")
)

// Result is the outcome of one processed tap or manual correction.
type Result struct {
	// Status is one of "Clocked In: <name>", "Clocked Out: <name>",
	// "Tap Recorded: <name>".
	Status   string `json:"status"`
	RowIndex int    `json:"rowIndex"`
	// Degraded marks the fallback path where the sheet date could not be
	// determined and the tap was treated as the first of the day.
	Degraded bool `json:"degraded,omitempty"`
}

// Service owns the staff directory, the tap log and the sheet store, and
// serialises every attendance mutation. Construct one per process and
// pass it to callers; there is no package-level state.
type Service struct {
	directory *core.StaffDirectory
	taps      *core.TapLog
	sheets    *sheet.Store

	// busy is the non-reentrant tap guard: taken with a compare-and-swap,
	// never waited on.
	busy atomic.Bool

	mu      sync.Mutex
	current *sheet.Artifact
	pending map[string]Ticket
}

func NewService(db *gorm.DB, sheets *sheet.Store) *Service {
	return &Service{
		directory: core.NewStaffDirectory(db),
		taps:      core.NewTapLog(db),
		sheets:    sheets,
		pending:   make(map[string]Ticket),
	}
}

// Directory exposes staff administration to the presentation layer.
func (s *Service) Directory() *core.StaffDirectory {
	return s.directory
}

// OpenSheet opens (creating if needed) the sheet for the date and makes
// it the active one. Returns the sheet's used rows.
func (s *Service) OpenSheet(date time.Time) ([]sheet.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		if cur, ok := s.current.Date(); ok && sameDay(cur, date) {
			return s.current.Rows()
		}
		s.current.Close()
		s.current = nil
	}

	artifact, err := s.sheets.OpenOrCreate(date)
	if err != nil {
		return nil, err
	}
	s.current = artifact
	return artifact.Rows()
}

// ReadSheet returns a date's rows without switching the active sheet.
func (s *Service) ReadSheet(date time.Time) ([]sheet.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		if cur, ok := s.current.Date(); ok && sameDay(cur, date) {
			return s.current.Rows()
		}
	}

	artifact, err := s.sheets.OpenPath(s.sheets.PathFor(date))
	if err != nil {
		return nil, err
	}
	defer artifact.Close()
	return artifact.Rows()
}

// StaffCurrentlyIn lists the staff clocked in and not yet out on the
// active sheet.
func (s *Service) StaffCurrentlyIn() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, ErrNoSheetOpen
	}
	return s.current.StaffIn()
}

// History returns the ordered tap times for one staff member on one
// date, straight from the tap log.
func (s *Service) History(staffName string, date time.Time) ([]string, error) {
	return s.taps.TapsFor(staffName, date.Format(utils.DateLayout))
}

// Close releases the active sheet handle.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}
	err := s.current.Close()
	s.current = nil
	return err
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func statusLabel(status, staffName string) string {
	return fmt.Sprintf("%s: %s", status, staffName)
}
