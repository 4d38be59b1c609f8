package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/classboard/internal/dateutil"
	"github.com/javiermolinar/classboard/internal/timetable"
)

const (
	timeColWidth = 13 // "09:00 - 09:30"
	minColWidth  = 6
	headerLines  = 3 // title, day headers, separator
	footerLines  = 2 // status, help
)

// View renders the board, with the form or confirmation centered over the
// screen when one is open.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.mode {
	case ModeForm:
		return m.place(m.form.view(m.styles))
	case ModeConfirm:
		return m.place(m.confirmView())
	}

	sections := []string{m.titleView(), m.gridView(), m.statusView(), m.helpView()}
	return strings.Join(sections, "\n")
}

func (m Model) place(box string) string {
	return lipgloss.Place(m.width, max(m.height, lipgloss.Height(box)), lipgloss.Center, lipgloss.Center, box)
}

func (m Model) titleView() string {
	window := m.board.Window()
	title := m.styles.TitleStyle.Render(fmt.Sprintf("%s · %s", window.Label(), m.board.Scope()))
	if m.readOnly {
		title += " " + m.styles.ReadOnlyBadge.Render("READ-ONLY")
	}
	return title
}

// colWidth fits seven day columns and the time column into the terminal.
func (m Model) colWidth() int {
	return max((m.width-timeColWidth)/timetable.DaysPerWeek-1, minColWidth)
}

// visibleRows is the number of slot rows that fit between header and footer.
func (m Model) visibleRows() int {
	return max(m.height-headerLines-footerLines-1, 1)
}

func (m *Model) ensureCursorVisible() {
	rows := m.visibleRows()
	if m.cursor.Slot < m.scrollOffset {
		m.scrollOffset = m.cursor.Slot
	}
	if m.cursor.Slot >= m.scrollOffset+rows {
		m.scrollOffset = m.cursor.Slot - rows + 1
	}
	m.scrollOffset = max(m.scrollOffset, 0)
}

func (m Model) gridView() string {
	w := m.colWidth()
	window := m.board.Window()
	days := window.Days()
	today := m.now()

	header := []string{fit("", timeColWidth)}
	for _, d := range timetable.Weekdays() {
		style := m.styles.DayHeader
		if sameDay(days[d], today) {
			style = m.styles.DayHeaderToday
		}
		header = append(header, style.Render(fit(d.Short()+" "+days[d].Format("Jan 2"), w)))
	}

	sep := strings.Repeat("─", timeColWidth)
	for range timetable.DaysPerWeek {
		sep += "─" + strings.Repeat("─", w)
	}

	lines := []string{strings.Join(header, " "), m.styles.HelpStyle.Render(sep)}

	switch {
	case m.loading && m.grid.Empty():
		return strings.Join(append(lines, m.styles.HelpStyle.Render("Loading...")), "\n")
	case m.grid.Empty():
		empty := "No classes scheduled for this week."
		if !m.readOnly {
			empty += " Press a to add one."
		}
		return strings.Join(append(lines, m.styles.HelpStyle.Render(empty)), "\n")
	}

	rows := m.grid.Rows()
	end := min(m.scrollOffset+m.visibleRows(), len(rows))
	for i := m.scrollOffset; i < end; i++ {
		cols := []string{m.styles.TimeColumn.Render(fit(m.grid.Slots[i].Label(), timeColWidth))}
		for d, cell := range rows[i] {
			selected := m.cursor.Day == timetable.Weekday(d) && m.cursor.Slot == i
			cols = append(cols, m.renderCell(cell, days[d], w, selected))
		}
		lines = append(lines, strings.Join(cols, " "))
	}
	return strings.Join(lines, "\n")
}

// renderCell draws one cell. A class shows its subject on the anchor row
// and its professor on the next row; every row of the class shares the
// block color so it reads as one merged cell.
func (m Model) renderCell(cell timetable.Cell, date time.Time, width int, selected bool) string {
	var text string
	style := m.styles.FreeCell

	switch cell.Kind {
	case timetable.CellFree:
		text = "·"
	default:
		e := cell.Entry
		switch {
		case cell.Kind == timetable.CellAnchor:
			text = e.Subject
		case cell.Start-e.StartMinutes() == timetable.SlotMinutes:
			text = e.Professor
		}
		shade := m.shadeOf(e)
		style = m.styles.Class[shade]
		if dateutil.TruncateToDay(date).Before(dateutil.TruncateToDay(m.now())) {
			style = m.styles.ClassPast[shade]
		}
	}

	if selected {
		style = m.styles.Cursor
	}
	return style.Render(fit(text, width))
}

// shadeOf alternates block colors between consecutive classes of a day.
func (m Model) shadeOf(e *timetable.Entry) int {
	for i, x := range m.grid.Schedule().Day(e.Weekday()) {
		if x.ID == e.ID {
			return i % 2
		}
	}
	return 0
}

func (m Model) statusView() string {
	if m.statusMsg == "" {
		return ""
	}
	if m.statusErr {
		return m.styles.StatusErrorStyle.Render(fit(m.statusMsg, max(m.width, 1)))
	}
	return m.styles.StatusStyle.Render(fit(m.statusMsg, max(m.width, 1)))
}

func (m Model) helpView() string {
	help := "←/→ day · ↑/↓ slot · [/] week · t today · r refresh · c copy · q quit"
	if !m.readOnly {
		help = "a add · e edit · d delete · " + help
	}
	return m.styles.HelpStyle.Render(ansi.Truncate(help, max(m.width, 1), "…"))
}

func (m Model) confirmView() string {
	lines := []string{
		m.styles.ModalWarnStyle.Render("Delete class?"),
		"",
		m.confirmSubject,
		"",
		m.styles.ModalHintStyle.Render("y delete · n cancel"),
	}
	return m.styles.ModalStyle.Render(strings.Join(lines, "\n"))
}

// fit truncates or pads s to exactly width display columns.
func fit(s string, width int) string {
	s = ansi.Truncate(s, width, "…")
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

func sameDay(a, b time.Time) bool {
	return dateutil.TruncateToDay(a).Equal(dateutil.TruncateToDay(b))
}
