package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/classboard/internal/tui/theme"
)

// Styles holds all lipgloss styles for the board, derived from a theme.
type Styles struct {
	colorBg     lipgloss.Color
	colorFg     lipgloss.Color
	colorMuted  lipgloss.Color
	colorAccent lipgloss.Color

	TitleStyle     lipgloss.Style
	ReadOnlyBadge  lipgloss.Style
	DayHeader      lipgloss.Style
	DayHeaderToday lipgloss.Style
	TimeColumn     lipgloss.Style

	// Class blocks: [alternate shade], past days muted
	Class     [2]lipgloss.Style
	ClassPast [2]lipgloss.Style
	FreeCell  lipgloss.Style
	Cursor    lipgloss.Style

	StatusStyle      lipgloss.Style
	StatusErrorStyle lipgloss.Style
	HelpStyle        lipgloss.Style

	ModalStyle       lipgloss.Style
	ModalTitleStyle  lipgloss.Style
	ModalLabelStyle  lipgloss.Style
	ModalHintStyle   lipgloss.Style
	ModalErrorStyle  lipgloss.Style
	ModalWarnStyle   lipgloss.Style
	InputTextStyle   lipgloss.Style
	InputPlaceholder lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)
	s := &Styles{
		colorBg:     p.Bg,
		colorFg:     p.Fg,
		colorMuted:  p.FgMuted,
		colorAccent: p.Accent,
	}

	s.TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Accent)
	s.ReadOnlyBadge = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextOnWarning).
		Background(p.Warning).
		Padding(0, 1)

	s.DayHeader = lipgloss.NewStyle().Bold(true).Foreground(p.Fg)
	s.DayHeaderToday = s.DayHeader.Foreground(p.Today)
	s.TimeColumn = lipgloss.NewStyle().Foreground(p.FgMuted)

	class := lipgloss.NewStyle().Foreground(p.TextOnClass)
	s.Class = [2]lipgloss.Style{
		class.Background(p.ClassBg).Bold(true),
		class.Background(p.ClassBgAlt).Bold(true),
	}
	s.ClassPast = [2]lipgloss.Style{
		lipgloss.NewStyle().Foreground(p.FgMuted).Background(p.ClassPastBg),
		lipgloss.NewStyle().Foreground(p.FgMuted).Background(p.ClassPastBgAlt),
	}
	s.FreeCell = lipgloss.NewStyle().Foreground(p.FgMuted)
	s.Cursor = lipgloss.NewStyle().
		Foreground(p.TextOnAccent).
		Background(p.Accent).
		Bold(true)

	s.StatusStyle = lipgloss.NewStyle().Foreground(p.Fg)
	s.StatusErrorStyle = lipgloss.NewStyle().Foreground(p.Error).Bold(true)
	s.HelpStyle = lipgloss.NewStyle().Foreground(p.FgMuted)

	s.ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.ModalBorder).
		Background(p.ModalBg).
		Padding(1, 2)
	s.ModalTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Accent)
	s.ModalLabelStyle = lipgloss.NewStyle().Foreground(p.FgMuted).Width(formLabelWidth)
	s.ModalHintStyle = lipgloss.NewStyle().Foreground(p.FgMuted)
	s.ModalErrorStyle = lipgloss.NewStyle().Foreground(p.Error)
	s.ModalWarnStyle = lipgloss.NewStyle().Foreground(p.Warning).Bold(true)
	s.InputTextStyle = lipgloss.NewStyle().Foreground(p.Fg)
	s.InputPlaceholder = lipgloss.NewStyle().Foreground(p.FgMuted)

	return s
}
