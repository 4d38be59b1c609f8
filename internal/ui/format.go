package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/classboard/internal/timetable"
)

const timeColWidth = 13 // "09:00 - 09:30"

// gridColWidth fits seven day columns into the terminal width.
func gridColWidth(width int) int {
	w := (width-timeColWidth)/timetable.DaysPerWeek - 3
	switch {
	case w < 8:
		return 8
	case w > 24:
		return 24
	default:
		return w
	}
}

// fit truncates or pads s to exactly width display columns.
func fit(s string, width int) string {
	s = ansi.Truncate(s, width, "…")
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// printWeekGrid prints the slot grid. A class shows its subject in the
// anchor row and its professor in the row below; the rest of its span is
// left blank so it reads as one merged block.
func printWeekGrid(w io.Writer, window timetable.WeekWindow, g timetable.Grid, colWidth int) {
	days := window.Days()

	header := []string{fit("Time", timeColWidth)}
	for _, d := range timetable.Weekdays() {
		header = append(header, fit(d.Short()+" "+days[d].Format("Jan 2"), colWidth))
	}
	fmt.Fprintln(w, formatHeader(strings.Join(header, " │ ")))

	sep := []string{strings.Repeat("─", timeColWidth)}
	for range timetable.DaysPerWeek {
		sep = append(sep, strings.Repeat("─", colWidth))
	}
	fmt.Fprintln(w, strings.Join(sep, "─┼─"))

	if g.Empty() {
		fmt.Fprintln(w, formatMuted("No classes scheduled for this week."))
		return
	}

	for i, row := range g.Rows() {
		cols := []string{formatMuted(fit(g.Slots[i].Label(), timeColWidth))}
		for _, cell := range row {
			cols = append(cols, renderGridCell(cell, colWidth))
		}
		fmt.Fprintln(w, strings.Join(cols, " │ "))
	}
}

func renderGridCell(cell timetable.Cell, width int) string {
	switch cell.Kind {
	case timetable.CellAnchor:
		return formatClass(fit(cell.Entry.Subject, width))
	case timetable.CellCovered:
		if cell.Start-cell.Entry.StartMinutes() == timetable.SlotMinutes && cell.Entry.Professor != "" {
			return formatMuted(fit(cell.Entry.Professor, width))
		}
		return fit("", width)
	default:
		return formatMuted(fit("·", width))
	}
}

// printSchedule prints the week day by day, with entry IDs for edit and
// delete.
func printSchedule(w io.Writer, window timetable.WeekWindow, s timetable.Schedule) {
	days := window.Days()
	for i, d := range timetable.Weekdays() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "  %s\n", formatHeader(days[d].Format("Monday, Jan 2")))
		entries := s.Day(d)
		if len(entries) == 0 {
			fmt.Fprintf(w, "    %s\n", formatMuted("No classes scheduled."))
			continue
		}
		for _, e := range entries {
			printEntryRow(w, e)
		}
	}
}

// printEntryRow prints a single entry with consistent formatting.
func printEntryRow(w io.Writer, e *timetable.Entry) {
	professor := ""
	if e.Professor != "" {
		professor = formatMuted("(" + e.Professor + ")")
	}
	fmt.Fprintf(w, "    %s-%s  %s %s  %s  %s\n",
		e.StartTime, e.EndTime,
		formatClass(e.Subject), professor,
		formatMuted(FormatDuration(e.Duration())),
		formatMuted(e.ID),
	)
}

// FormatDuration formats minutes as a human-readable duration.
func FormatDuration(minutes int) string {
	if minutes == 0 {
		return "0m"
	}
	hours := minutes / 60
	mins := minutes % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh%dm", hours, mins)
}

// describeError turns validation and store errors into a one-line message.
func describeError(err error) string {
	var ve *timetable.ValidationError
	if errors.As(err, &ve) {
		return fmt.Sprintf("cannot save class (%s): %v", ve.Reason, ve)
	}
	var se *timetable.StoreError
	if errors.As(err, &se) {
		if timetable.IsNotFound(err) {
			return fmt.Sprintf("class %s no longer exists; refresh and try again", se.ID)
		}
		return fmt.Sprintf("could not %s: %v", se.Op, se.Err)
	}
	return err.Error()
}

// explain wraps err so cobra prints the one-line description while callers
// can still match the cause with errors.Is and errors.As.
func explain(err error) error {
	return &explainedError{msg: describeError(err), err: err}
}

type explainedError struct {
	msg string
	err error
}

func (e *explainedError) Error() string { return e.msg }

func (e *explainedError) Unwrap() error { return e.err }
