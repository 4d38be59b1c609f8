package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/classboard/internal/board"
	"github.com/javiermolinar/classboard/internal/timetable"
	"github.com/javiermolinar/classboard/internal/tui/commands"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.mode {
	case ModeForm:
		return m.handleFormKeys(msg)
	case ModeConfirm:
		return m.handleConfirmKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit

	// Navigation
	case "h", "left":
		if m.cursor.Day > timetable.Monday {
			m.cursor.Day--
		}
	case "l", "right":
		if m.cursor.Day < timetable.Sunday {
			m.cursor.Day++
		}
	case "k", "up":
		m.moveSlot(-1)
	case "j", "down":
		m.moveSlot(1)
	case "g", "home":
		m.cursor.Slot = 0
		m.ensureCursorVisible()
	case "G", "end":
		m.cursor.Slot = max(len(m.grid.Slots)-1, 0)
		m.ensureCursorVisible()

	// Weeks
	case "[", "H", "shift+left":
		return m.navigate(m.board.ShiftWeek(-1))
	case "]", "L", "shift+right":
		return m.navigate(m.board.ShiftWeek(1))
	case "t":
		m.cursor.Day = timetable.WeekdayOf(m.now())
		return m.navigate(m.board.GoToWeek(0))
	case "r":
		return m.navigate(m.board.Refresh())

	// Actions
	case "c":
		if m.loading {
			cmd := m.setStatus("Week is still loading", true)
			return m, cmd
		}
		return m, commands.CopyWeek(m.board)
	case "a":
		return m.startAdd()
	case "e":
		return m.startEdit()
	case "enter":
		if cell, ok := m.cell(); ok && !cell.Free() {
			return m.startEdit()
		}
		return m.startAdd()
	case "d", "x":
		return m.startDelete()
	}
	return m, nil
}

func (m *Model) moveSlot(delta int) {
	if m.grid.Empty() {
		return
	}
	m.cursor.Slot = min(max(m.cursor.Slot+delta, 0), len(m.grid.Slots)-1)
	m.ensureCursorVisible()
}

// mutable reports whether add, edit and delete are allowed right now.
func (m *Model) mutable() (bool, tea.Cmd) {
	if m.readOnly {
		return false, m.setStatus("Read-only board", true)
	}
	if m.loading {
		return false, m.setStatus("Week is still loading", true)
	}
	if !m.board.Loaded() {
		return false, m.setStatus("Week failed to load; press r to retry", true)
	}
	return true, nil
}

// startAdd opens the form on the free cell under the cursor, prefilled
// with that 30-minute slot. On an empty week the times are left blank.
func (m Model) startAdd() (tea.Model, tea.Cmd) {
	if ok, cmd := m.mutable(); !ok {
		return m, cmd
	}

	d := board.Draft{Day: m.cursor.Day}
	if cell, ok := m.cell(); ok {
		if !cell.Free() {
			cmd := m.setStatus(fmt.Sprintf("%s already takes this slot; press e to edit", cell.Entry.Subject), true)
			return m, cmd
		}
		d.StartTime = timetable.MinutesToTime(cell.Start)
		d.EndTime = timetable.MinutesToTime(cell.End)
	}

	m.mode = ModeForm
	cmd := m.form.open(d, "")
	return m, cmd
}

func (m Model) startEdit() (tea.Model, tea.Cmd) {
	if ok, cmd := m.mutable(); !ok {
		return m, cmd
	}
	cell, ok := m.cell()
	if !ok || cell.Free() {
		cmd := m.setStatus("No class here", true)
		return m, cmd
	}

	m.mode = ModeForm
	cmd := m.form.open(board.DraftFrom(cell.Entry), cell.Entry.ID)
	return m, cmd
}

func (m Model) startDelete() (tea.Model, tea.Cmd) {
	if ok, cmd := m.mutable(); !ok {
		return m, cmd
	}
	cell, ok := m.cell()
	if !ok || cell.Free() {
		cmd := m.setStatus("No class here", true)
		return m, cmd
	}

	m.mode = ModeConfirm
	m.confirmID = cell.Entry.ID
	m.confirmSubject = cell.Entry.Subject
	return m, nil
}

func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		return m, nil
	case "tab", "down":
		cmd := m.form.next()
		return m, cmd
	case "shift+tab", "up":
		cmd := m.form.prev()
		return m, cmd
	case "enter":
		if m.form.focus < fieldEnd {
			cmd := m.form.next()
			return m, cmd
		}
		return m.submitForm()
	case "ctrl+s":
		return m.submitForm()
	}

	m.form.err = ""
	cmd := m.form.update(msg)
	return m, cmd
}

// submitForm validates the draft inline and only then hands it to the
// store. The form stays open until the save is confirmed.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	if m.form.saving {
		return m, nil
	}
	d, err := m.form.draft()
	if err != nil {
		m.form.err = describeError(err)
		cmd := m.form.setFocus(fieldDay)
		return m, cmd
	}
	if err := m.board.ValidateDraft(d, m.form.editID); err != nil {
		m.form.err = describeError(err)
		cmd := m.form.setFocus(fieldFor(err))
		return m, cmd
	}

	m.form.err = ""
	m.form.saving = true
	if m.form.editID != "" {
		return m, commands.UpdateEntry(m.board, m.form.editID, d)
	}
	return m, commands.CreateEntry(m.board, d)
}

func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		id, subject := m.confirmID, m.confirmSubject
		m.mode = ModeNormal
		m.confirmID, m.confirmSubject = "", ""
		return m, commands.DeleteEntry(m.board, id, subject)
	case "n", "N", "esc", "q":
		m.mode = ModeNormal
		m.confirmID, m.confirmSubject = "", ""
	}
	return m, nil
}

// fieldFor picks the input to focus for a validation error.
func fieldFor(err error) int {
	var ve *timetable.ValidationError
	switch {
	case errors.Is(err, timetable.ErrEmptySubject):
		return fieldSubject
	case errors.Is(err, timetable.ErrInvalidWeekday):
		return fieldDay
	case errors.As(err, &ve) && ve.Field == "end":
		return fieldEnd
	case errors.As(err, &ve) && ve.Reason == timetable.ReasonTooShort:
		return fieldEnd
	default:
		return fieldStart
	}
}

// describeError turns validation and store errors into a one-line message.
func describeError(err error) string {
	var ve *timetable.ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	var se *timetable.StoreError
	if errors.As(err, &se) {
		if timetable.IsNotFound(err) {
			return "This class was removed elsewhere; press r to refresh"
		}
		return fmt.Sprintf("Could not %s: %v", se.Op, se.Err)
	}
	return err.Error()
}
