// Package export renders a week's timetable for sharing: plain text for
// messages and the clipboard, and an .xlsx workbook with merged cells.
package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/javiermolinar/classboard/internal/timetable"
)

// NoClassesLine is printed under a weekday with no entries.
const NoClassesLine = "No classes scheduled for today."

// Heading returns the scope line shared by every export.
func Heading(scope timetable.Scope) string {
	return fmt.Sprintf("Class %s, %s Batch", scope.ClassID, scope.YearID)
}

// Text writes the week as a title, the scope and week lines, then one
// section per weekday listing "HH:MM - HH:MM: Subject (Teacher: Name)".
func Text(w io.Writer, scope timetable.Scope, window timetable.WeekWindow, s timetable.Schedule) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "Timetable")
	fmt.Fprintln(bw, Heading(scope))
	fmt.Fprintf(bw, "Branch %s, week of %s\n", scope.BranchID, window.Label())

	for _, day := range timetable.Weekdays() {
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, day.String())

		entries := s.Day(day)
		if len(entries) == 0 {
			fmt.Fprintf(bw, "  %s\n", NoClassesLine)
			continue
		}
		for _, e := range entries {
			fmt.Fprintf(bw, "  %s\n", EntryLine(e))
		}
	}

	return bw.Flush()
}

// EntryLine renders one class.
func EntryLine(e *timetable.Entry) string {
	professor := e.Professor
	if professor == "" {
		professor = "TBA"
	}
	return fmt.Sprintf("%s - %s: %s (Teacher: %s)", e.StartTime, e.EndTime, e.Subject, professor)
}

// TextString is Text into a string.
func TextString(scope timetable.Scope, window timetable.WeekWindow, s timetable.Schedule) string {
	var b strings.Builder
	_ = Text(&b, scope, window, s)
	return b.String()
}

// writeClipboard is swapped in tests; CI machines have no clipboard.
var writeClipboard = clipboard.WriteAll

// CopyText puts the text export on the system clipboard.
func CopyText(scope timetable.Scope, window timetable.WeekWindow, s timetable.Schedule) error {
	if err := writeClipboard(TextString(scope, window, s)); err != nil {
		return fmt.Errorf("copying to clipboard: %w", err)
	}
	return nil
}

// FileName suggests a file name for the week's export, such as
// "timetable_downtown_10_2025_2025-01-13.xlsx".
func FileName(scope timetable.Scope, window timetable.WeekWindow, ext string) string {
	clean := func(s string) string {
		return strings.Map(func(r rune) rune {
			switch {
			case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
				return r
			default:
				return '-'
			}
		}, s)
	}
	return fmt.Sprintf("timetable_%s_%s_%s_%s.%s",
		clean(scope.BranchID), clean(scope.ClassID), clean(scope.YearID),
		window.Start.Format("2006-01-02"), strings.TrimPrefix(ext, "."))
}
