// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/classboard/internal/board"
	"github.com/javiermolinar/classboard/internal/export"
	"github.com/javiermolinar/classboard/internal/timetable"
)

// WeekFetchedMsg carries a fetch result back to the update loop, which
// hands it to Board.Apply.
type WeekFetchedMsg struct {
	Result board.Result
}

// EntrySavedMsg is sent when a create or update has been persisted.
type EntrySavedMsg struct {
	Entry   *timetable.Entry
	Created bool
}

// EntryDeletedMsg is sent when a delete has been persisted.
type EntryDeletedMsg struct {
	ID      string
	Subject string
}

// CopiedMsg is sent when the week was copied to the clipboard.
type CopiedMsg struct{}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// FetchWeek runs the fetch for req. The result is tagged with the request's
// generation, so a week that was navigated away from is dropped on Apply.
func FetchWeek(b *board.Board, req board.Request) tea.Cmd {
	return func() tea.Msg {
		return WeekFetchedMsg{Result: b.Fetch(context.Background(), req)}
	}
}

// CreateEntry persists a new class from the form.
func CreateEntry(b *board.Board, d board.Draft) tea.Cmd {
	return func() tea.Msg {
		e, err := b.Create(context.Background(), d)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return EntrySavedMsg{Entry: e, Created: true}
	}
}

// UpdateEntry persists changes to an existing class.
func UpdateEntry(b *board.Board, id string, d board.Draft) tea.Cmd {
	return func() tea.Msg {
		e, err := b.Update(context.Background(), id, d)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return EntrySavedMsg{Entry: e}
	}
}

// DeleteEntry removes a class.
func DeleteEntry(b *board.Board, id, subject string) tea.Cmd {
	return func() tea.Msg {
		if err := b.Delete(context.Background(), id); err != nil {
			return ErrMsg{Err: err}
		}
		return EntryDeletedMsg{ID: id, Subject: subject}
	}
}

// CopyWeek copies the visible week as shareable text.
func CopyWeek(b *board.Board) tea.Cmd {
	return func() tea.Msg {
		if err := export.CopyText(b.Scope(), b.Window(), b.Schedule()); err != nil {
			return ErrMsg{Err: err}
		}
		return CopiedMsg{}
	}
}
