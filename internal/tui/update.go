package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/classboard/internal/timetable"
	"github.com/javiermolinar/classboard/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorVisible()
		return m, nil

	case commands.WeekFetchedMsg:
		applied, err := m.board.Apply(msg.Result)
		if !applied && err == nil {
			// a newer request is in flight
			return m, nil
		}
		m.loading = false
		m.syncGrid()
		if err != nil {
			cmd := m.setStatus(fmt.Sprintf("Could not load week: %v", err), true)
			return m, cmd
		}
		m.focusFirstClass()
		return m, nil

	case commands.EntrySavedMsg:
		m.syncGrid()
		verb := "Updated"
		if msg.Created {
			verb = "Added"
		}
		if m.mode == ModeForm {
			m.mode = ModeNormal
			m.form.saving = false
		}
		m.moveCursorTo(msg.Entry)
		cmd := m.setStatus(fmt.Sprintf("%s %s %s-%s", verb, msg.Entry.Subject, msg.Entry.StartTime, msg.Entry.EndTime), false)
		return m, cmd

	case commands.EntryDeletedMsg:
		m.syncGrid()
		cmd := m.setStatus(fmt.Sprintf("Deleted %s", msg.Subject), false)
		return m, cmd

	case commands.CopiedMsg:
		cmd := m.setStatus("Copied week to clipboard", false)
		return m, cmd

	case commands.ErrMsg:
		m.log.Warn().Err(msg.Err).Msg("board action failed")
		if m.mode == ModeForm {
			// keep the draft so the user can retry
			m.form.saving = false
			m.form.err = describeError(msg.Err)
		}
		m.syncGrid()
		cmd := m.setStatus(describeError(msg.Err), true)
		return m, cmd

	case commands.StatusMsgCmd:
		cmd := m.setStatus(msg.Msg, false)
		return m, cmd

	case commands.ClearStatusMsg:
		if !m.now().Before(m.statusTime) {
			m.statusMsg = ""
			m.statusErr = false
		}
		return m, nil
	}

	if m.mode == ModeForm {
		cmd := m.form.update(msg)
		return m, cmd
	}
	return m, nil
}

// focusFirstClass puts the cursor on the first class of its day after a
// week loads, or the top row when the day is empty.
func (m *Model) focusFirstClass() {
	entries := m.board.Schedule().Day(m.cursor.Day)
	if len(entries) == 0 {
		m.cursor.Slot = 0
		m.ensureCursorVisible()
		return
	}
	m.moveCursorTo(entries[0])
}

func (m *Model) moveCursorTo(e *timetable.Entry) {
	if e == nil || !m.board.Window().Contains(e.Date) {
		return
	}
	if i := m.grid.SlotIndex(e.StartMinutes()); i >= 0 {
		m.cursor = Position{Day: e.Weekday(), Slot: i}
		m.ensureCursorVisible()
	}
}
