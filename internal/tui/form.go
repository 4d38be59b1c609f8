package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/classboard/internal/board"
	"github.com/javiermolinar/classboard/internal/timetable"
)

const formLabelWidth = 11

// Form fields in tab order.
const (
	fieldDay = iota
	fieldSubject
	fieldProfessor
	fieldStart
	fieldEnd
	fieldCount
)

var fieldLabels = [fieldCount]string{"Day", "Subject", "Professor", "Start", "End"}

// classForm is the add/edit form. It holds the draft until the store has
// confirmed the save.
type classForm struct {
	editID string // empty when adding
	inputs [fieldCount]textinput.Model
	focus  int
	err    string // inline validation or store error
	saving bool
}

func newClassForm(styles *Styles) classForm {
	var f classForm
	placeholders := [fieldCount]string{"mon", "Maths", "Ms. Rao", "09:00", "10:00"}
	limits := [fieldCount]int{9, 128, 128, 5, 5}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholders[i]
		ti.CharLimit = limits[i]
		ti.Width = 30
		ti.TextStyle = styles.InputTextStyle
		ti.PlaceholderStyle = styles.InputPlaceholder
		f.inputs[i] = ti
	}
	return f
}

// open resets the form to d. editID is empty for a new class.
func (f *classForm) open(d board.Draft, editID string) tea.Cmd {
	f.editID = editID
	f.err = ""
	f.saving = false
	f.inputs[fieldDay].SetValue(strings.ToLower(d.Day.Short()))
	f.inputs[fieldSubject].SetValue(d.Subject)
	f.inputs[fieldProfessor].SetValue(d.Professor)
	f.inputs[fieldStart].SetValue(d.StartTime)
	f.inputs[fieldEnd].SetValue(d.EndTime)

	first := fieldSubject
	if d.Subject != "" {
		first = fieldStart
	}
	return f.setFocus(first)
}

func (f *classForm) setFocus(i int) tea.Cmd {
	f.focus = (i + fieldCount) % fieldCount
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	return f.inputs[f.focus].Focus()
}

func (f *classForm) next() tea.Cmd { return f.setFocus(f.focus + 1) }
func (f *classForm) prev() tea.Cmd { return f.setFocus(f.focus - 1) }

// update forwards msg to the focused input.
func (f *classForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// draft parses the inputs. Times are passed through as typed; the board
// validates them.
func (f classForm) draft() (board.Draft, error) {
	day, err := timetable.ParseWeekday(strings.TrimSpace(f.inputs[fieldDay].Value()))
	if err != nil {
		return board.Draft{}, err
	}
	return board.Draft{
		Day:       day,
		Subject:   f.inputs[fieldSubject].Value(),
		Professor: f.inputs[fieldProfessor].Value(),
		StartTime: strings.TrimSpace(f.inputs[fieldStart].Value()),
		EndTime:   strings.TrimSpace(f.inputs[fieldEnd].Value()),
	}, nil
}

func (f classForm) view(s *Styles) string {
	title := "New class"
	if f.editID != "" {
		title = "Edit class"
	}

	lines := []string{s.ModalTitleStyle.Render(title), ""}
	for i, in := range f.inputs {
		label := fieldLabels[i]
		if i == f.focus {
			label = "› " + label
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, s.ModalLabelStyle.Render(label), in.View()))
	}
	lines = append(lines, "")

	switch {
	case f.saving:
		lines = append(lines, s.ModalHintStyle.Render("Saving..."))
	case f.err != "":
		lines = append(lines, s.ModalErrorStyle.Render(f.err))
	}
	lines = append(lines, s.ModalHintStyle.Render("tab next · enter save · esc cancel"))

	return s.ModalStyle.Render(strings.Join(lines, "\n"))
}
