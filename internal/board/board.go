// Package board is the controller for one visible timetable week. It owns
// the grouped schedule, tags every fetch with a generation so late
// responses for a previous week or scope are dropped, and routes create,
// update and delete through validation before the store sees them.
package board

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/javiermolinar/classboard/internal/dateutil"
	"github.com/javiermolinar/classboard/internal/timetable"
)

// ErrNotLoaded is returned by mutations before the visible week has been
// fetched. Validating against an empty week would let overlaps through.
var ErrNotLoaded = errors.New("week not loaded yet; refresh and try again")

// Option configures a Board.
type Option func(*Board)

// WithClock sets the function used to find the current week.
func WithClock(now func() time.Time) Option {
	return func(b *Board) {
		b.now = now
	}
}

// WithLogger sets the logger for fetches, discards and mutations.
func WithLogger(log zerolog.Logger) Option {
	return func(b *Board) {
		b.log = log
	}
}

// Request describes one fetch of a week's entries.
type Request struct {
	Generation uint64
	Scope      timetable.Scope
	Window     timetable.WeekWindow
}

// Result is the outcome of Fetch, handed back to Apply.
type Result struct {
	Request
	Entries []*timetable.Entry
	Err     error
}

// Draft is the user-entered form for a class in the visible week.
type Draft struct {
	Day       timetable.Weekday
	Subject   string
	Professor string
	StartTime string
	EndTime   string
}

// DraftFrom fills a draft from an existing entry, for edit forms.
func DraftFrom(e *timetable.Entry) Draft {
	return Draft{
		Day:       e.Weekday(),
		Subject:   e.Subject,
		Professor: e.Professor,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
	}
}

// Board holds the visible week for one scope. It is safe for concurrent
// use: the TUI fetches on a goroutine while rendering from another.
type Board struct {
	store timetable.Store
	now   func() time.Time
	log   zerolog.Logger

	mu         sync.Mutex
	scope      timetable.Scope
	offset     int
	window     timetable.WeekWindow
	schedule   timetable.Schedule
	generation uint64
	loaded     bool
}

// New returns a board on the current week for scope. Nothing is fetched
// until Load or Fetch/Apply runs.
func New(store timetable.Store, scope timetable.Scope, opts ...Option) *Board {
	b := &Board{
		store: store,
		scope: scope,
		now:   time.Now,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.window = timetable.ComputeWeekRange(b.now(), 0)
	b.resetLocked()
	return b
}

// Window returns the visible week.
func (b *Board) Window() timetable.WeekWindow {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.window
}

// Offset returns the visible week relative to the current one.
func (b *Board) Offset() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.offset
}

// Scope returns the selected branch, class and year.
func (b *Board) Scope() timetable.Scope {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.scope
}

// Generation returns the tag the next accepted Result must carry.
func (b *Board) Generation() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.generation
}

// Loaded reports whether the schedule belongs to the current week and scope.
func (b *Board) Loaded() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loaded
}

// Schedule returns a copy of the visible week's entries by weekday.
func (b *Board) Schedule() timetable.Schedule {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.schedule.Clone()
}

// Grid returns the slot grid over a copy of the visible schedule.
func (b *Board) Grid() timetable.Grid {
	b.mu.Lock()
	defer b.mu.Unlock()
	return timetable.BuildGrid(b.schedule.Clone())
}

// Find returns a copy of the visible entry with id, or nil.
func (b *Board) Find(id string) *timetable.Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	if e := b.schedule.Find(id); e != nil {
		return e.Clone()
	}
	return nil
}

// ShiftWeek moves the window delta weeks and returns the fetch to run.
func (b *Board) ShiftWeek(delta int) Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.moveLocked(b.offset + delta)
}

// GoToWeek jumps to an absolute offset from the current week.
func (b *Board) GoToWeek(offset int) Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.moveLocked(offset)
}

// GoToDate jumps to the week containing t.
func (b *Board) GoToDate(t time.Time) Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.moveLocked(dateutil.WeeksBetween(b.now(), t))
}

// SetScope switches to another branch, class or year on the same week.
func (b *Board) SetScope(scope timetable.Scope) Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.scope = scope
	b.resetLocked()
	return b.nextLocked()
}

// Refresh refetches the visible week. The current schedule stays visible
// until the fetch lands, and stays if it fails.
func (b *Board) Refresh() Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.nextLocked()
}

func (b *Board) moveLocked(offset int) Request {
	b.offset = offset
	b.window = timetable.ComputeWeekRange(b.now(), offset)
	b.resetLocked()
	return b.nextLocked()
}

// nextLocked bumps the generation so in-flight fetches become stale.
func (b *Board) nextLocked() Request {
	b.generation++
	return Request{Generation: b.generation, Scope: b.scope, Window: b.window}
}

// resetLocked clears the visible week so stale rows never show under a new
// heading.
func (b *Board) resetLocked() {
	b.schedule = timetable.GroupByWeekday(nil)
	b.loaded = false
}

// Fetch lists the request's entries. It does not touch board state and
// may run on any goroutine.
func (b *Board) Fetch(ctx context.Context, req Request) Result {
	res := Result{Request: req}
	if err := req.Scope.Validate(); err != nil {
		res.Err = err
		return res
	}

	entries, err := b.store.ListEntries(ctx, req.Scope, req.Window)
	if err != nil {
		res.Err = &timetable.StoreError{Op: "list", Err: err}
		return res
	}
	res.Entries = entries
	return res
}

// Apply merges a fetch result when it belongs to the current generation.
// It reports whether the result was applied; stale results are discarded
// without error. A failed fetch keeps the last schedule and returns its error.
func (b *Board) Apply(res Result) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if res.Generation != b.generation {
		b.log.Debug().
			Uint64("generation", res.Generation).
			Uint64("current", b.generation).
			Str("week", res.Window.Label()).
			Msg("discarding stale fetch")
		return false, nil
	}
	if res.Err != nil {
		b.log.Warn().Err(res.Err).Str("scope", res.Scope.String()).Msg("fetch failed")
		return false, res.Err
	}

	visible := make([]*timetable.Entry, 0, len(res.Entries))
	for _, e := range res.Entries {
		if b.visibleLocked(e) {
			visible = append(visible, e.Clone())
		}
	}
	b.setEntriesLocked(visible)
	b.loaded = true

	b.log.Debug().
		Uint64("generation", res.Generation).
		Str("scope", res.Scope.String()).
		Str("week", res.Window.Label()).
		Int("entries", len(visible)).
		Msg("applied week")
	return true, nil
}

// Load refreshes and fetches synchronously.
func (b *Board) Load(ctx context.Context) error {
	req := b.Refresh()
	_, err := b.Apply(b.Fetch(ctx, req))
	return err
}

// ValidateDraft checks d against the visible day it targets. excludeID is
// the entry being edited, empty for new classes.
func (b *Board) ValidateDraft(d Draft, excludeID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.validateLocked(d, excludeID)
}

func (b *Board) validateLocked(d Draft, excludeID string) error {
	if !b.loaded {
		return ErrNotLoaded
	}
	if !d.Day.Valid() {
		return timetable.ErrInvalidWeekday
	}
	if strings.TrimSpace(d.Subject) == "" {
		return timetable.ErrEmptySubject
	}
	return timetable.Validate(timetable.Candidate{
		Day:       d.Day,
		StartTime: d.StartTime,
		EndTime:   d.EndTime,
		ExcludeID: excludeID,
	}, b.schedule.Day(d.Day))
}

func (b *Board) fieldsLocked(d Draft) timetable.Fields {
	return timetable.Fields{
		Date:      b.window.DateFor(d.Day),
		Subject:   d.Subject,
		Professor: d.Professor,
		StartTime: d.StartTime,
		EndTime:   d.EndTime,
	}.Normalized()
}

// Create validates d, stores it and merges the stored entry.
func (b *Board) Create(ctx context.Context, d Draft) (*timetable.Entry, error) {
	b.mu.Lock()
	if err := b.validateLocked(d, ""); err != nil {
		b.mu.Unlock()
		return nil, err
	}
	gen, scope, fields := b.generation, b.scope, b.fieldsLocked(d)
	b.mu.Unlock()

	e, err := b.store.CreateEntry(ctx, scope, fields)
	if err != nil {
		return nil, &timetable.StoreError{Op: "create", Err: err}
	}

	b.merge(gen, e, "")
	b.log.Info().Str("id", e.ID).Str("subject", e.Subject).Str("date", dateutil.FormatDate(e.Date)).Msg("class created")
	return e.Clone(), nil
}

// Update validates d against its day, excluding the entry itself, and
// replaces the visible entry with the stored result.
func (b *Board) Update(ctx context.Context, id string, d Draft) (*timetable.Entry, error) {
	b.mu.Lock()
	if !b.loaded {
		b.mu.Unlock()
		return nil, ErrNotLoaded
	}
	if b.schedule.Find(id) == nil {
		b.mu.Unlock()
		return nil, &timetable.StoreError{Op: "update", ID: id, Err: fmt.Errorf("%w: not in the visible week", timetable.ErrNotFound)}
	}
	if err := b.validateLocked(d, id); err != nil {
		b.mu.Unlock()
		return nil, err
	}
	gen, fields := b.generation, b.fieldsLocked(d)
	b.mu.Unlock()

	e, err := b.store.UpdateEntry(ctx, id, timetable.PatchFrom(fields))
	if err != nil {
		return nil, &timetable.StoreError{Op: "update", ID: id, Err: err}
	}

	b.merge(gen, e, id)
	b.log.Info().Str("id", id).Str("subject", e.Subject).Msg("class updated")
	return e.Clone(), nil
}

// Delete removes a visible entry.
func (b *Board) Delete(ctx context.Context, id string) error {
	b.mu.Lock()
	if !b.loaded {
		b.mu.Unlock()
		return ErrNotLoaded
	}
	if b.schedule.Find(id) == nil {
		b.mu.Unlock()
		return &timetable.StoreError{Op: "delete", ID: id, Err: fmt.Errorf("%w: not in the visible week", timetable.ErrNotFound)}
	}
	gen := b.generation
	b.mu.Unlock()

	if err := b.store.DeleteEntry(ctx, id); err != nil {
		return &timetable.StoreError{Op: "delete", ID: id, Err: err}
	}

	b.merge(gen, nil, id)
	b.log.Info().Str("id", id).Msg("class deleted")
	return nil
}

// merge drops removeID and adds e, then regroups. A mutation that finished
// after the user moved to another week or scope is already persisted and
// shows up on the next fetch, so it is not merged here.
func (b *Board) merge(gen uint64, e *timetable.Entry, removeID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if gen != b.generation {
		b.log.Debug().Uint64("generation", gen).Uint64("current", b.generation).Msg("mutation finished on a stale week")
		return
	}

	all := b.schedule.All()
	kept := make([]*timetable.Entry, 0, len(all)+1)
	for _, x := range all {
		if removeID != "" && x.ID == removeID {
			continue
		}
		kept = append(kept, x)
	}
	if e != nil && b.visibleLocked(e) {
		kept = append(kept, e.Clone())
	}
	b.setEntriesLocked(kept)
}

func (b *Board) visibleLocked(e *timetable.Entry) bool {
	return e != nil && e.Scope == b.scope && b.window.Contains(e.Date)
}

func (b *Board) setEntriesLocked(entries []*timetable.Entry) {
	b.schedule = timetable.GroupByWeekday(entries)
}
