package sheet

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"lsst.org.au/signin/utils"
)

// ErrCapacityExceeded means every pre-allocated data slot for the day is
// taken. No further staff can be recorded on that date's sheet.
var ErrCapacityExceeded = errors.New("daily sheet has no free rows")

// Store creates and opens the per-date workbooks under one directory.
type Store struct {
	Dir      string
	Password string
	// Capacity is the number of usable data slots; defaults to the
	// generated layout's slot count. Tests lower it.
	Capacity int
}

func NewStore(dir, password string) *Store {
	return &Store{Dir: dir, Password: password, Capacity: Capacity}
}

// PathFor names a date's workbook, e.g. 6-3-2025.xlsx.
func (s *Store) PathFor(date time.Time) string {
	return filepath.Join(s.Dir, date.Format(utils.FileDateLayout)+".xlsx")
}

// OpenOrCreate opens the date's workbook, generating a fresh one when none
// exists yet.
func (s *Store) OpenOrCreate(date time.Time) (*Artifact, error) {
	path := s.PathFor(date)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := Generate(path, date, s.Password); err != nil {
			return nil, err
		}
	}
	return s.open(path, date, true)
}

// OpenPath opens an existing workbook, recovering its date from the
// filename. A filename that does not parse leaves the artifact without a
// known date; taps against it take the degraded fallback path.
func (s *Store) OpenPath(path string) (*Artifact, error) {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	date, err := time.ParseInLocation(utils.FileDateLayout, base, time.Local)
	return s.open(path, date, err == nil)
}

func (s *Store) open(path string, date time.Time, dateKnown bool) (*Artifact, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sheet %s: %w", path, err)
	}
	return &Artifact{
		file:      f,
		path:      path,
		date:      date,
		dateKnown: dateKnown,
		password:  s.Password,
		capacity:  s.Capacity,
	}, nil
}

// Artifact is an open handle on one date's workbook. Mutations stay in
// memory until Persist writes the file.
type Artifact struct {
	file      *excelize.File
	path      string
	date      time.Time
	dateKnown bool
	password  string
	capacity  int
}

// Row is the five-column data layout of one slot.
type Row struct {
	StaffName string `json:"staffName"`
	ClockIn   string `json:"clockIn"`
	ClockOut  string `json:"clockOut"`
	Remarks   string `json:"remarks"`
	AllTaps   string `json:"allTaps"`
}

func (a *Artifact) Path() string {
	return a.path
}

// Date reports the artifact's calendar date; ok is false when the
// filename could not be parsed.
func (a *Artifact) Date() (time.Time, bool) {
	return a.date, a.dateKnown
}

func (a *Artifact) Close() error {
	return a.file.Close()
}

// HeaderDate reads the date string from the title-row header cell. Readers
// of these files locate the date here, not in the filename.
func (a *Artifact) HeaderDate() (string, error) {
	return a.file.GetCellValue(SheetName, dateCell)
}

func (a *Artifact) value(col Column, slot int) (string, error) {
	return a.file.GetCellValue(SheetName, col.cell(FirstDataRow+slot))
}

func (a *Artifact) setValue(col Column, slot int, v string) error {
	return a.file.SetCellValue(SheetName, col.cell(FirstDataRow+slot), v)
}

// FindRow scans the name column and returns the slot of the first row
// matching the staff name, or -1. Name is the natural key within one day.
func (a *Artifact) FindRow(staffName string) (int, error) {
	for slot := 0; slot < a.capacity; slot++ {
		name, err := a.value(ColStaffName, slot)
		if err != nil {
			return -1, err
		}
		if name == staffName {
			return slot, nil
		}
	}
	return -1, nil
}

// AppendRow takes the first empty slot for a new staff row and writes the
// name and clock-in time.
func (a *Artifact) AppendRow(staffName, firstTap string) (int, error) {
	for slot := 0; slot < a.capacity; slot++ {
		name, err := a.value(ColStaffName, slot)
		if err != nil {
			return -1, err
		}
		if name != "" {
			continue
		}
		if err := a.setValue(ColStaffName, slot, staffName); err != nil {
			return -1, err
		}
		if err := a.setValue(ColClockIn, slot, firstTap); err != nil {
			return -1, err
		}
		return slot, nil
	}
	return -1, ErrCapacityExceeded
}

func (a *Artifact) SetLastTap(slot int, timeOfDay string) error {
	return a.setValue(ColClockOut, slot, timeOfDay)
}

// AppendTapTrail adds one tap time to the row's comma-joined trail. The
// trail is append-only; every tap lands here whatever its classification.
func (a *Artifact) AppendTapTrail(slot int, timeOfDay string) error {
	trail, err := a.value(ColAllTaps, slot)
	if err != nil {
		return err
	}
	if trail == "" {
		return a.setValue(ColAllTaps, slot, timeOfDay)
	}
	return a.setValue(ColAllTaps, slot, trail+", "+timeOfDay)
}

func (a *Artifact) SetRemark(slot int, text string) error {
	return a.setValue(ColRemarks, slot, text)
}

func (a *Artifact) Remark(slot int) (string, error) {
	return a.value(ColRemarks, slot)
}

// Row reads one slot back.
func (a *Artifact) Row(slot int) (Row, error) {
	var row Row
	fields := []struct {
		col Column
		dst *string
	}{
		{ColStaffName, &row.StaffName},
		{ColClockIn, &row.ClockIn},
		{ColClockOut, &row.ClockOut},
		{ColRemarks, &row.Remarks},
		{ColAllTaps, &row.AllTaps},
	}
	for _, field := range fields {
		v, err := a.value(field.col, slot)
		if err != nil {
			return Row{}, err
		}
		*field.dst = v
	}
	return row, nil
}

// Rows returns the used slots in order. Slots are filled contiguously, so
// the first empty name ends the scan.
func (a *Artifact) Rows() ([]Row, error) {
	var rows []Row
	for slot := 0; slot < a.capacity; slot++ {
		row, err := a.Row(slot)
		if err != nil {
			return nil, err
		}
		if row.StaffName == "" {
			break
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// DeleteRow clears a slot and shifts every later used slot up one.
func (a *Artifact) DeleteRow(slot int) error {
	rows, err := a.Rows()
	if err != nil {
		return err
	}
	if slot < 0 || slot >= len(rows) {
		return fmt.Errorf("sheet slot %d is out of range", slot)
	}

	for i := slot; i < len(rows)-1; i++ {
		if err := a.writeRow(i, rows[i+1]); err != nil {
			return err
		}
	}
	return a.writeRow(len(rows)-1, Row{})
}

func (a *Artifact) writeRow(slot int, row Row) error {
	fields := []struct {
		col Column
		val string
	}{
		{ColStaffName, row.StaffName},
		{ColClockIn, row.ClockIn},
		{ColClockOut, row.ClockOut},
		{ColRemarks, row.Remarks},
		{ColAllTaps, row.AllTaps},
	}
	for _, field := range fields {
		if err := a.setValue(field.col, slot, field.val); err != nil {
			return err
		}
	}
	return nil
}

// StaffIn lists staff with a clock-in and no clock-out on this sheet.
func (a *Artifact) StaffIn() ([]string, error) {
	rows, err := a.Rows()
	if err != nil {
		return nil, err
	}
	in := utils.Filter(rows, func(r Row) bool {
		return r.ClockIn != "" && r.ClockOut == ""
	})
	return utils.Map(in, func(r Row) string { return r.StaffName }), nil
}

// Persist writes the workbook durably. The protection gate is refreshed
// around the write, so the file on disk is always locked; the write goes
// through a temp file and rename so a failure leaves the last committed
// file intact.
func (a *Artifact) Persist() error {
	a.file.UnprotectSheet(SheetName)
	if err := protect(a.file, a.password); err != nil {
		return fmt.Errorf("failed to re-protect sheet: %w", err)
	}

	// The temp name keeps the .xlsx suffix; SaveAs rejects other
	// extensions.
	tmp := a.path + ".tmp.xlsx"
	if err := a.file.SaveAs(tmp); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to save sheet %s: %w", a.path, err)
	}
	if err := os.Rename(tmp, a.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace sheet %s: %w", a.path, err)
	}
	return nil
}
