package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/javiermolinar/classboard/internal/timetable"
)

var testScope = timetable.Scope{BranchID: "downtown", ClassID: "10", YearID: "2025"}

func testWeek() (timetable.WeekWindow, timetable.Schedule) {
	monday := time.Date(2025, 1, 13, 0, 0, 0, 0, time.Local)
	window := timetable.ComputeWeekRange(monday, 0)
	entries := []*timetable.Entry{
		{ID: "1", Scope: testScope, Date: monday, Subject: "Physics", Professor: "Dr. Iyer", StartTime: "10:00", EndTime: "11:30"},
		{ID: "2", Scope: testScope, Date: monday, Subject: "Maths", Professor: "Ms. Rao", StartTime: "09:00", EndTime: "10:00"},
		{ID: "3", Scope: testScope, Date: monday.AddDate(0, 0, 2), Subject: "English", StartTime: "09:30", EndTime: "10:30"},
	}
	return window, timetable.GroupByWeekday(entries)
}

func TestText(t *testing.T) {
	window, s := testWeek()

	var buf bytes.Buffer
	if err := Text(&buf, testScope, window, s); err != nil {
		t.Fatalf("Text: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Timetable\n",
		"Class 10, 2025 Batch\n",
		"Branch downtown, week of Mon Jan 13 - Sun Jan 19, 2025\n",
		"Monday\n  09:00 - 10:00: Maths (Teacher: Ms. Rao)\n  10:00 - 11:30: Physics (Teacher: Dr. Iyer)\n",
		"Tuesday\n  " + NoClassesLine + "\n",
		"Wednesday\n  09:30 - 10:30: English (Teacher: TBA)\n",
		"Sunday\n  " + NoClassesLine + "\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text export missing %q\n%s", want, out)
		}
	}

	if strings.Index(out, "Monday") > strings.Index(out, "Sunday") {
		t.Error("days out of order")
	}
}

func TestCopyText(t *testing.T) {
	window, s := testWeek()

	orig := writeClipboard
	t.Cleanup(func() { writeClipboard = orig })

	var copied string
	writeClipboard = func(text string) error {
		copied = text
		return nil
	}

	if err := CopyText(testScope, window, s); err != nil {
		t.Fatalf("CopyText: %v", err)
	}
	if copied != TextString(testScope, window, s) {
		t.Errorf("clipboard got %q", copied)
	}

	writeClipboard = func(string) error { return errors.New("no clipboard utility") }
	if err := CopyText(testScope, window, s); err == nil {
		t.Error("expected clipboard error")
	}
}

func TestFileName(t *testing.T) {
	window, _ := testWeek()
	scope := timetable.Scope{BranchID: "Main St", ClassID: "10/A", YearID: "2025"}

	if got, want := FileName(scope, window, ".xlsx"), "timetable_Main-St_10-A_2025_2025-01-13.xlsx"; got != want {
		t.Errorf("FileName = %q, want %q", got, want)
	}
}

func TestXLSX(t *testing.T) {
	window, s := testWeek()
	g := timetable.BuildGrid(s)

	var buf bytes.Buffer
	if err := XLSX(&buf, testScope, window, g); err != nil {
		t.Fatalf("XLSX: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reading workbook: %v", err)
	}
	defer func() { _ = f.Close() }()

	cellValue := func(cell string) string {
		t.Helper()
		v, err := f.GetCellValue(SheetName, cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", cell, err)
		}
		return v
	}

	if got := cellValue("B4"); got != "Monday Jan 13" {
		t.Errorf("B4 = %q", got)
	}
	if got := cellValue("H4"); got != "Sunday Jan 19" {
		t.Errorf("H4 = %q", got)
	}

	// Slots run 09:00..11:30: rows 5-9.
	if got := cellValue("A5"); got != "09:00 - 09:30" {
		t.Errorf("A5 = %q", got)
	}
	if got := cellValue("A9"); got != "11:00 - 11:30" {
		t.Errorf("A9 = %q", got)
	}
	if got := cellValue("B5"); got != "Maths\nMs. Rao" {
		t.Errorf("B5 = %q", got)
	}
	if got := cellValue("B7"); got != "Physics\nDr. Iyer" {
		t.Errorf("B7 = %q", got)
	}
	if got := cellValue("D6"); got != "English" {
		t.Errorf("D6 = %q", got)
	}

	merged, err := f.GetMergeCells(SheetName)
	if err != nil {
		t.Fatalf("GetMergeCells: %v", err)
	}
	ranges := make(map[string]string)
	for _, m := range merged {
		ranges[m.GetStartAxis()] = m.GetEndAxis()
	}
	want := map[string]string{"B5": "B6", "B7": "B9", "D6": "D7"}
	if len(ranges) != len(want) {
		t.Errorf("merged ranges = %v, want %v", ranges, want)
	}
	for start, end := range want {
		if ranges[start] != end {
			t.Errorf("merge from %s ends at %q, want %q", start, ranges[start], end)
		}
	}
}

func TestXLSX_EmptyWeek(t *testing.T) {
	window, _ := testWeek()
	g := timetable.BuildGrid(timetable.GroupByWeekday(nil))

	var buf bytes.Buffer
	if err := XLSX(&buf, testScope, window, g); err != nil {
		t.Fatalf("XLSX: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reading workbook: %v", err)
	}
	defer func() { _ = f.Close() }()

	if v, _ := f.GetCellValue(SheetName, "A5"); !strings.HasPrefix(v, "No classes") {
		t.Errorf("A5 = %q", v)
	}
}
