package sheet

import "github.com/xuri/excelize/v2"

// The workbook layout is a durable contract: row 1 carries the title and
// the sheet date, row 2 the column headers, rows 3..202 the pre-allocated
// data slots. Any reader of these files locates data by this layout.
const (
	SheetName    = "Staff Sign In"
	TitleText    = "STAFF SIGN IN FORM"
	TitleRow     = 1
	HeaderRow    = 2
	FirstDataRow = 3
	// Capacity is the fixed number of data slots per day.
	Capacity = 200
)

// Column identifies the five semantic columns by position instead of
// letter arithmetic.
type Column int

const (
	ColStaffName Column = iota + 1
	ColClockIn
	ColClockOut
	ColRemarks
	ColAllTaps
)

var columnHeaders = []struct {
	col   Column
	title string
	width float64
}{
	{ColStaffName, "STAFF NAME", 45},
	{ColClockIn, "Clock In", 30},
	{ColClockOut, "Clock Out", 30},
	{ColRemarks, "Remarks", 30},
	{ColAllTaps, "All Taps", 60},
}

func (c Column) cell(row int) string {
	name, _ := excelize.CoordinatesToCellName(int(c), row)
	return name
}

// dateCell is where the sheet's date lives in the title row.
var dateCell = ColClockOut.cell(TitleRow)
