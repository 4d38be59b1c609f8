package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/javiermolinar/classboard/internal/timetable"
)

func noColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func testWeek() (timetable.WeekWindow, timetable.Schedule) {
	monday := time.Date(2025, 1, 13, 0, 0, 0, 0, time.Local)
	scope := timetable.Scope{BranchID: "downtown", ClassID: "10", YearID: "2025"}
	entries := []*timetable.Entry{
		{ID: "a1", Scope: scope, Date: monday, Subject: "Maths", Professor: "Ms. Rao", StartTime: "09:00", EndTime: "10:00"},
		{ID: "b2", Scope: scope, Date: monday.AddDate(0, 0, 2), Subject: "English", StartTime: "09:30", EndTime: "10:30"},
	}
	return timetable.ComputeWeekRange(monday, 0), timetable.GroupByWeekday(entries)
}

func TestGridColWidth(t *testing.T) {
	tests := []struct {
		width int
		want  int
	}{
		{width: 40, want: 8},
		{width: 120, want: 12},
		{width: 400, want: 24},
	}
	for _, tt := range tests {
		if got := gridColWidth(tt.width); got != tt.want {
			t.Errorf("gridColWidth(%d) = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{in: "Maths", width: 8, want: "Maths   "},
		{in: "Mathematics", width: 8, want: "Mathema…"},
		{in: "", width: 3, want: "   "},
	}
	for _, tt := range tests {
		if got := fit(tt.in, tt.width); got != tt.want {
			t.Errorf("fit(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestPrintWeekGrid(t *testing.T) {
	noColor(t)
	window, s := testWeek()

	var buf bytes.Buffer
	printWeekGrid(&buf, window, timetable.BuildGrid(s), 10)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")

	// header, separator, then 09:00, 09:30, 10:00 rows
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "Mon Jan 13") || !strings.Contains(lines[0], "Sun Jan 19") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[2], "09:00 - 09:30") || !strings.Contains(lines[2], "Maths") {
		t.Errorf("first row = %q", lines[2])
	}
	if !strings.Contains(lines[3], "Ms. Rao") || !strings.Contains(lines[3], "English") {
		t.Errorf("second row = %q", lines[3])
	}
	if strings.Contains(lines[4], "Maths") || strings.Contains(lines[4], "English") {
		t.Errorf("covered cells must not repeat the subject: %q", lines[4])
	}
}

func TestPrintWeekGrid_Empty(t *testing.T) {
	noColor(t)
	window, _ := testWeek()

	var buf bytes.Buffer
	printWeekGrid(&buf, window, timetable.BuildGrid(timetable.GroupByWeekday(nil)), 10)
	if !strings.Contains(buf.String(), "No classes scheduled for this week.") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestPrintSchedule(t *testing.T) {
	noColor(t)
	window, s := testWeek()

	var buf bytes.Buffer
	printSchedule(&buf, window, s)
	out := buf.String()

	for _, want := range []string{
		"Monday, Jan 13",
		"09:00-10:00  Maths (Ms. Rao)  1h  a1",
		"Tuesday, Jan 14\n    No classes scheduled.",
		"09:30-10:30  English   1h  b2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("schedule missing %q\n%s", want, out)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0m"},
		{30, "30m"},
		{60, "1h"},
		{90, "1h30m"},
		{150, "2h30m"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.minutes); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestDescribeError(t *testing.T) {
	conflict := &timetable.Entry{Subject: "Maths", StartTime: "09:00", EndTime: "10:00"}
	overlap := timetable.Validate(timetable.Candidate{StartTime: "09:30", EndTime: "10:30"}, []*timetable.Entry{conflict})

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "overlap",
			err:  overlap,
			want: "cannot save class (overlap)",
		},
		{
			name: "not found",
			err:  &timetable.StoreError{Op: "delete", ID: "x1", Err: timetable.ErrNotFound},
			want: "class x1 no longer exists",
		},
		{
			name: "store failure",
			err:  &timetable.StoreError{Op: "create", Err: errors.New("disk full")},
			want: "could not create: disk full",
		},
		{
			name: "plain",
			err:  errors.New("boom"),
			want: "boom",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := describeError(tt.err); !strings.Contains(got, tt.want) {
				t.Errorf("describeError() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestExplainKeepsCause(t *testing.T) {
	cause := &timetable.StoreError{Op: "delete", ID: "x1", Err: timetable.ErrNotFound}
	err := explain(cause)

	if !strings.Contains(err.Error(), "class x1 no longer exists") {
		t.Errorf("Error() = %q", err.Error())
	}
	if !timetable.IsNotFound(err) {
		t.Error("expected errors.Is to reach ErrNotFound")
	}
	var se *timetable.StoreError
	if !errors.As(err, &se) || se.ID != "x1" {
		t.Errorf("errors.As = %v", se)
	}

	overlap := timetable.Validate(timetable.Candidate{StartTime: "09:30", EndTime: "10:30"},
		[]*timetable.Entry{{Subject: "Maths", StartTime: "09:00", EndTime: "10:00"}})
	if !errors.Is(explain(overlap), timetable.ErrOverlap) {
		t.Error("expected errors.Is to reach ErrOverlap")
	}
}

func TestRedactDSN(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{"postgres://app:secret@db:5432/classboard", "postgres://app:****@db:5432/classboard"},
		{"postgres://app@db/classboard", "postgres://app@db/classboard"},
		{"host=db user=app", "host=db user=app"},
	}
	for _, tt := range tests {
		if got := redactDSN(tt.dsn); got != tt.want {
			t.Errorf("redactDSN(%q) = %q, want %q", tt.dsn, got, tt.want)
		}
	}
}
