package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/javiermolinar/classboard/internal/timetable"
)

// SheetName is the single worksheet of the workbook.
const SheetName = "Timetable"

// Layout of the sheet: title rows, a header row, then one row per slot.
const (
	titleRow  = 1
	weekRow   = 2
	headerRow = 4
	firstSlot = 5
	timeCol   = 1
)

// XLSX writes the grid as a workbook. Column A holds slot labels and
// columns B-H the weekdays; a class is written in its anchor cell and
// merged down over the rows it spans.
func XLSX(w io.Writer, scope timetable.Scope, window timetable.WeekWindow, g timetable.Grid) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	styles, err := newStyles(f)
	if err != nil {
		return err
	}

	if err := writeHeader(f, styles, scope, window); err != nil {
		return err
	}

	if g.Empty() {
		if err := setCell(f, timeCol, firstSlot, "No classes scheduled for this week."); err != nil {
			return err
		}
	}

	for i, row := range g.Rows() {
		r := firstSlot + i
		if err := setCell(f, timeCol, r, g.Slots[i].Label()); err != nil {
			return err
		}
		if err := styleCell(f, timeCol, r, timeCol, r, styles.time); err != nil {
			return err
		}

		for d, cell := range row {
			if cell.Kind != timetable.CellAnchor {
				continue
			}
			col := timeCol + 1 + d
			value := cell.Entry.Subject
			if cell.Entry.Professor != "" {
				value += "\n" + cell.Entry.Professor
			}
			if err := setCell(f, col, r, value); err != nil {
				return err
			}

			last := r + cell.RowSpan - 1
			if maxRow := firstSlot + len(g.Slots) - 1; last > maxRow {
				last = maxRow
			}
			if last > r {
				if err := mergeCells(f, col, r, col, last); err != nil {
					return err
				}
			}
			if err := styleCell(f, col, r, col, last, styles.class); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(SheetName, "A", "A", 16); err != nil {
		return fmt.Errorf("setting column width: %w", err)
	}
	if err := f.SetColWidth(SheetName, "B", "H", 22); err != nil {
		return fmt.Errorf("setting column width: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

type sheetStyles struct {
	title  int
	header int
	time   int
	class  int
}

func newStyles(f *excelize.File) (sheetStyles, error) {
	var s sheetStyles
	var err error

	if s.title, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	}); err != nil {
		return s, fmt.Errorf("creating title style: %w", err)
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	}); err != nil {
		return s, fmt.Errorf("creating header style: %w", err)
	}
	if s.time, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top"},
	}); err != nil {
		return s, fmt.Errorf("creating time style: %w", err)
	}
	if s.class, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFF2CC"}},
		Border: []excelize.Border{
			{Type: "left", Color: "999999", Style: 1},
			{Type: "right", Color: "999999", Style: 1},
			{Type: "top", Color: "999999", Style: 1},
			{Type: "bottom", Color: "999999", Style: 1},
		},
	}); err != nil {
		return s, fmt.Errorf("creating class style: %w", err)
	}
	return s, nil
}

func writeHeader(f *excelize.File, styles sheetStyles, scope timetable.Scope, window timetable.WeekWindow) error {
	if err := setCell(f, timeCol, titleRow, "Timetable - "+Heading(scope)+" ("+scope.BranchID+")"); err != nil {
		return err
	}
	if err := styleCell(f, timeCol, titleRow, timeCol, titleRow, styles.title); err != nil {
		return err
	}
	if err := setCell(f, timeCol, weekRow, window.Label()); err != nil {
		return err
	}

	if err := setCell(f, timeCol, headerRow, "Time"); err != nil {
		return err
	}
	days := window.Days()
	for _, d := range timetable.Weekdays() {
		label := d.String() + " " + days[d].Format("Jan 2")
		if err := setCell(f, timeCol+1+int(d), headerRow, label); err != nil {
			return err
		}
	}
	return styleCell(f, timeCol, headerRow, timeCol+timetable.DaysPerWeek, headerRow, styles.header)
}

func setCell(f *excelize.File, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(SheetName, cell, value); err != nil {
		return fmt.Errorf("writing %s: %w", cell, err)
	}
	return nil
}

func mergeCells(f *excelize.File, col1, row1, col2, row2 int) error {
	top, err := excelize.CoordinatesToCellName(col1, row1)
	if err != nil {
		return err
	}
	bottom, err := excelize.CoordinatesToCellName(col2, row2)
	if err != nil {
		return err
	}
	if err := f.MergeCell(SheetName, top, bottom); err != nil {
		return fmt.Errorf("merging %s:%s: %w", top, bottom, err)
	}
	return nil
}

func styleCell(f *excelize.File, col1, row1, col2, row2, style int) error {
	top, err := excelize.CoordinatesToCellName(col1, row1)
	if err != nil {
		return err
	}
	bottom, err := excelize.CoordinatesToCellName(col2, row2)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, top, bottom, style); err != nil {
		return fmt.Errorf("styling %s:%s: %w", top, bottom, err)
	}
	return nil
}
