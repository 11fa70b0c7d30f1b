package sheet

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"
	"lsst.org.au/signin/utils"
)

var thinBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
}

// Generate creates a fresh sign-in workbook for the given date: title and
// date in row 1, column headers in row 2, a fixed block of bordered data
// slots, frozen header rows and sheet protection with the configured
// password.
func Generate(path string, date time.Time, password string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create sheet directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF", Size: 24},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"336633"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorder,
	})
	if err != nil {
		return err
	}

	dateStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF", Size: 24},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"336633"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "right",
			Vertical:   "center",
		},
		Border: thinBorder,
	})
	if err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "000000", Size: 14},
		Alignment: &excelize.Alignment{
			Horizontal: "left",
			Vertical:   "center",
		},
		Border: thinBorder,
	})
	if err != nil {
		return err
	}

	borderStyle, err := f.NewStyle(&excelize.Style{Border: thinBorder})
	if err != nil {
		return err
	}

	// Row 1: title merged over the first two columns, date at the right.
	if err := f.MergeCell(SheetName, ColStaffName.cell(TitleRow), ColClockIn.cell(TitleRow)); err != nil {
		return err
	}
	if err := f.SetCellValue(SheetName, ColStaffName.cell(TitleRow), TitleText); err != nil {
		return err
	}
	if err := f.SetCellValue(SheetName, dateCell, date.Format(utils.HeaderDateLayout)); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, ColStaffName.cell(TitleRow), ColClockIn.cell(TitleRow), titleStyle); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, dateCell, dateCell, dateStyle); err != nil {
		return err
	}
	if err := f.SetRowHeight(SheetName, TitleRow, 35); err != nil {
		return err
	}

	// Row 2: column headers.
	for _, h := range columnHeaders {
		if err := f.SetCellValue(SheetName, h.col.cell(HeaderRow), h.title); err != nil {
			return err
		}
		col, _ := excelize.ColumnNumberToName(int(h.col))
		if err := f.SetColWidth(SheetName, col, col, h.width); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(SheetName, ColStaffName.cell(HeaderRow), ColAllTaps.cell(HeaderRow), headerStyle); err != nil {
		return err
	}
	if err := f.SetRowHeight(SheetName, HeaderRow, 25); err != nil {
		return err
	}

	// Pre-allocated data slots, bordered so the printed form looks complete.
	lastRow := FirstDataRow + Capacity - 1
	if err := f.SetCellStyle(SheetName, ColStaffName.cell(FirstDataRow), ColAllTaps.cell(lastRow), borderStyle); err != nil {
		return err
	}

	// Keep the title and header rows visible while scrolling.
	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      HeaderRow,
		TopLeftCell: ColStaffName.cell(FirstDataRow),
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	if err := protect(f, password); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save sheet %s: %w", path, err)
	}
	return nil
}

// protect applies the workbook's content-access gate. This is a gate
// against casual edits in a spreadsheet program, not a security boundary.
func protect(f *excelize.File, password string) error {
	return f.ProtectSheet(SheetName, &excelize.SheetProtectionOptions{
		Password:            password,
		SelectLockedCells:   true,
		SelectUnlockedCells: true,
	})
}
