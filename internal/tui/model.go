// Package tui provides the interactive timetable board.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/javiermolinar/classboard/internal/board"
	"github.com/javiermolinar/classboard/internal/timetable"
	"github.com/javiermolinar/classboard/internal/tui/commands"
	"github.com/javiermolinar/classboard/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeForm        // add or edit form open
	ModeConfirm     // delete confirmation
)

// Position is the cursor over the grid.
type Position struct {
	Day  timetable.Weekday
	Slot int // row index into Grid.Slots
}

// Options configures the board UI.
type Options struct {
	ReadOnly bool // parent dashboard: browse and copy only
	Theme    string
	Log      zerolog.Logger
}

// Model is the main TUI model.
type Model struct {
	board    *board.Board
	readOnly bool
	log      zerolog.Logger
	styles   *Styles
	now      func() time.Time

	// grid is the snapshot rendered by View, rebuilt from the board after
	// every applied fetch or mutation.
	grid    timetable.Grid
	pending board.Request
	loading bool

	cursor Position
	mode   Mode
	form   classForm

	confirmID      string
	confirmSubject string

	width        int
	height       int
	scrollOffset int

	statusMsg  string
	statusErr  bool
	statusTime time.Time
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// loadTheme is replaced in tests.
var loadTheme = theme.Load

// WithClock overrides the clock used to highlight today.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
	}
}

// New creates the model and schedules the first fetch of the board's week.
func New(b *board.Board, opts Options, modelOpts ...ModelOption) Model {
	t, err := loadTheme(opts.Theme)
	if err != nil {
		// a nil theme renders with the default palette
		opts.Log.Warn().Err(err).Str("theme", opts.Theme).Msg("theme unavailable, using defaults")
	}
	styles := NewStyles(t)

	m := Model{
		board:    b,
		readOnly: opts.ReadOnly,
		log:      opts.Log,
		styles:   styles,
		now:      time.Now,
		form:     newClassForm(styles),
		loading:  true,
	}
	for _, opt := range modelOpts {
		opt(&m)
	}

	m.cursor.Day = timetable.WeekdayOf(m.now())
	m.pending = b.Refresh()
	return m
}

// Init starts the first fetch.
func (m Model) Init() tea.Cmd {
	return commands.FetchWeek(m.board, m.pending)
}

// Run starts the TUI.
func Run(b *board.Board, opts Options) error {
	p := tea.NewProgram(New(b, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// navigate starts a fetch for a new week or a refresh of the current one.
func (m Model) navigate(req board.Request) (Model, tea.Cmd) {
	m.pending = req
	m.loading = true
	m.grid = m.board.Grid()
	m.scrollOffset = 0
	m.log.Debug().Uint64("generation", req.Generation).Str("week", req.Window.Label()).Msg("fetching week")
	return m, commands.FetchWeek(m.board, req)
}

// syncGrid takes a fresh snapshot of the board and keeps the cursor on a
// valid row.
func (m *Model) syncGrid() {
	m.grid = m.board.Grid()
	if n := len(m.grid.Slots); m.cursor.Slot >= n {
		m.cursor.Slot = max(n-1, 0)
	}
	m.ensureCursorVisible()
}

// cell returns the grid cell under the cursor. ok is false on an empty grid.
func (m Model) cell() (timetable.Cell, bool) {
	if m.grid.Empty() {
		return timetable.Cell{}, false
	}
	return m.grid.Cell(m.cursor.Day, m.grid.Slots[m.cursor.Slot].Start), true
}

func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	m.statusMsg = msg
	m.statusErr = isErr
	m.statusTime = m.now().Add(statusTTL)
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return commands.ClearStatusMsg{}
	})
}

const statusTTL = 4 * time.Second
