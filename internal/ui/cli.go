package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/classboard/internal/board"
	"github.com/javiermolinar/classboard/internal/config"
	"github.com/javiermolinar/classboard/internal/dateutil"
	"github.com/javiermolinar/classboard/internal/db"
	"github.com/javiermolinar/classboard/internal/logging"
	"github.com/javiermolinar/classboard/internal/timetable"
	"github.com/javiermolinar/classboard/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config *config.Config
	store  db.Repository
	log    zerolog.Logger
	root   *cobra.Command

	closeLog func() error

	// persistent flags
	branch   string
	class    string
	year     string
	offset   int
	date     string
	debug    bool
	noColor  bool
	readOnly bool
}

// NewApp creates a new CLI application. The store is opened on first use
// so that "version" and "config" work without a database.
func NewApp(cfg *config.Config) *App {
	a := &App{config: cfg, log: zerolog.Nop(), closeLog: func() error { return nil }}

	a.root = &cobra.Command{
		Use:   "classboard",
		Short: "Weekly class timetables for tuition centers",
		Long: `Classboard manages the weekly class timetable of a tuition center.

Pick a branch, class and year, then browse the week in a grid where each
class spans its 30-minute slots. Staff can add, edit and delete classes;
overlapping classes on the same day are rejected before anything is saved.

Running classboard with no subcommand opens the interactive board.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if a.noColor {
				DisableColor()
			}
			return a.setupLogging()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := a.newBoard(cmd.Context())
			if err != nil {
				return err
			}
			return tui.Run(b, tui.Options{
				ReadOnly: a.readOnly || a.config.UI.ReadOnly,
				Theme:    a.config.UI.Theme,
				Log:      a.log,
			})
		},
	}

	flags := a.root.PersistentFlags()
	flags.StringVar(&a.branch, "branch", "", "Branch ID (default from config)")
	flags.StringVar(&a.class, "class", "", "Class ID (default from config)")
	flags.StringVar(&a.year, "year", "", "Year ID (default from config)")
	flags.IntVar(&a.offset, "offset", 0, "Week offset from the current week (-1 = last week)")
	flags.StringVar(&a.date, "date", "", "Show the week containing this date (YYYY-MM-DD)")
	flags.BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to temp file unless [log] file is set)")
	flags.BoolVar(&a.noColor, "no-color", false, "Disable color output")
	a.root.Flags().BoolVar(&a.readOnly, "read-only", false, "Open the board without add, edit or delete")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.weekCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.editCmd())
	a.root.AddCommand(a.deleteCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.scopesCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "classboard %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.ExecuteContext(context.Background())
}

// Close releases the store and the log file.
func (a *App) Close() error {
	var err error
	if a.store != nil {
		err = a.store.Close()
		a.store = nil
	}
	if cerr := a.closeLog(); err == nil {
		err = cerr
	}
	return err
}

// setupLogging opens the configured log file. --debug forces debug level
// and, when no file is configured, writes to a file in the temp directory.
func (a *App) setupLogging() error {
	path, level := a.config.Log.File, a.config.Log.Level
	if a.debug {
		level = "debug"
		if path == "" {
			path = filepath.Join(os.TempDir(), "classboard-debug.log")
		}
	}

	log, closeFn, err := logging.Open(path, level, a.config.Log.Format)
	if err != nil {
		return err
	}
	a.log = log
	a.closeLog = closeFn
	if a.debug {
		fmt.Fprintf(os.Stderr, "debug log: %s\n", path)
	}
	return nil
}

// ensureStore opens the configured store on first use.
func (a *App) ensureStore(ctx context.Context) (db.Repository, error) {
	if a.store != nil {
		return a.store, nil
	}
	store, err := db.Open(ctx, a.config.Storage, a.log)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	a.store = store
	return store, nil
}

// scope resolves the selected scope: flags override config.
func (a *App) scope() (timetable.Scope, error) {
	s := timetable.Scope{
		BranchID: firstNonEmpty(a.branch, a.config.Scope.Branch),
		ClassID:  firstNonEmpty(a.class, a.config.Scope.Class),
		YearID:   firstNonEmpty(a.year, a.config.Scope.Year),
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("%w (use --branch, --class and --year or set [scope] in %s)", err, config.DefaultConfigPath())
	}
	return s, nil
}

// newBoard builds a board on the requested week without loading it.
func (a *App) newBoard(ctx context.Context) (*board.Board, error) {
	scope, err := a.scope()
	if err != nil {
		return nil, err
	}
	store, err := a.ensureStore(ctx)
	if err != nil {
		return nil, err
	}

	b := board.New(store, scope, board.WithLogger(a.log))
	switch {
	case a.date != "":
		d, err := dateutil.ParseDate(a.date)
		if err != nil {
			return nil, err
		}
		b.GoToDate(d)
	case a.offset != 0:
		b.GoToWeek(a.offset)
	}
	return b, nil
}

// loadBoard builds and loads the requested week.
func (a *App) loadBoard(ctx context.Context) (*board.Board, error) {
	b, err := a.newBoard(ctx)
	if err != nil {
		return nil, err
	}
	if err := b.Load(ctx); err != nil {
		return nil, err
	}
	return b, nil
}

// boardForEntry loads the week containing the stored entry id.
func (a *App) boardForEntry(ctx context.Context, id string) (*board.Board, *timetable.Entry, error) {
	b, err := a.newBoard(ctx)
	if err != nil {
		return nil, nil, err
	}
	e, err := a.store.GetEntry(ctx, id)
	if err != nil {
		return nil, nil, &timetable.StoreError{Op: "get", ID: id, Err: err}
	}
	if e.Scope != b.Scope() {
		b.SetScope(e.Scope)
	}
	b.GoToDate(e.Date)
	if err := b.Load(ctx); err != nil {
		return nil, nil, err
	}
	return b, e, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// today is replaced in tests.
var today = func() time.Time { return dateutil.TruncateToDay(time.Now()) }
