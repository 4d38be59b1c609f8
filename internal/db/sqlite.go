// Package db provides SQLite and PostgreSQL storage for timetable entries.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/classboard/internal/dateutil"
	"github.com/javiermolinar/classboard/internal/timetable"
)

var errMissingDate = errors.New("entry date is required")

const entryColumns = `id, branch_id, class_id, year_id, date, subject, professor,
		       start_time, end_time, created_at, updated_at`

// SQLite implements timetable.Store using SQLite.
type SQLite struct {
	db  *sql.DB
	log zerolog.Logger
	now func() time.Time
}

// New creates a new SQLite store and runs migrations.
func New(path string, log zerolog.Logger) (*SQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db, log: log, now: time.Now}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	log.Debug().Str("path", path).Msg("sqlite store opened")
	return s, nil
}

// ListEntries returns the scope's entries dated within the window,
// ordered by date and start time.
func (s *SQLite) ListEntries(ctx context.Context, scope timetable.Scope, window timetable.WeekWindow) ([]*timetable.Entry, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	query := `
		SELECT ` + entryColumns + `
		FROM timetable_entries
		WHERE branch_id = ? AND class_id = ? AND year_id = ?
		  AND date >= ? AND date <= ?
		ORDER BY date, start_time
	`

	rows, err := s.db.QueryContext(ctx, query,
		scope.BranchID, scope.ClassID, scope.YearID,
		dateutil.FormatDate(window.Start), dateutil.FormatDate(window.End),
	)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []*timetable.Entry
	for rows.Next() {
		e, err := scanSQLiteEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}

	s.log.Debug().
		Str("scope", scope.String()).
		Str("week", window.Label()).
		Int("count", len(entries)).
		Msg("listed entries")

	return entries, nil
}

// GetEntry retrieves an entry by ID.
func (s *SQLite) GetEntry(ctx context.Context, id string) (*timetable.Entry, error) {
	return getSQLiteEntry(ctx, s.db, id)
}

// CreateEntry inserts a new entry with a fresh UUID.
func (s *SQLite) CreateEntry(ctx context.Context, scope timetable.Scope, fields timetable.Fields) (*timetable.Entry, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	if fields.Date.IsZero() {
		return nil, errMissingDate
	}
	fields = fields.Normalized()

	now := s.now().UTC().Truncate(time.Second)
	e := &timetable.Entry{
		ID:        uuid.NewString(),
		Scope:     scope,
		Date:      fields.Date,
		Subject:   fields.Subject,
		Professor: fields.Professor,
		StartTime: fields.StartTime,
		EndTime:   fields.EndTime,
		CreatedAt: now,
		UpdatedAt: now,
	}

	query := `
		INSERT INTO timetable_entries (` + entryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		e.ID,
		scope.BranchID,
		scope.ClassID,
		scope.YearID,
		dateutil.FormatDate(e.Date),
		e.Subject,
		e.Professor,
		e.StartTime,
		e.EndTime,
		now.Format(time.RFC3339),
		now.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting entry: %w", err)
	}

	s.log.Debug().Str("id", e.ID).Str("scope", scope.String()).Msg("created entry")
	return e, nil
}

// UpdateEntry applies patch to the stored entry inside a transaction.
func (s *SQLite) UpdateEntry(ctx context.Context, id string, patch timetable.Patch) (*timetable.Entry, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	e, err := getSQLiteEntry(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return e, nil
	}

	patch.Apply(e)
	e.UpdatedAt = s.now().UTC().Truncate(time.Second)

	query := `
		UPDATE timetable_entries
		SET date = ?, subject = ?, professor = ?, start_time = ?, end_time = ?, updated_at = ?
		WHERE id = ?
	`
	if _, err := tx.ExecContext(ctx, query,
		dateutil.FormatDate(e.Date),
		e.Subject,
		e.Professor,
		e.StartTime,
		e.EndTime,
		e.UpdatedAt.Format(time.RFC3339),
		id,
	); err != nil {
		return nil, fmt.Errorf("updating entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	s.log.Debug().Str("id", id).Msg("updated entry")
	return e, nil
}

// DeleteEntry removes an entry.
func (s *SQLite) DeleteEntry(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM timetable_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %s", timetable.ErrNotFound, id)
	}

	s.log.Debug().Str("id", id).Msg("deleted entry")
	return nil
}

// ListScopes returns every scope that owns at least one entry.
func (s *SQLite) ListScopes(ctx context.Context) ([]timetable.Scope, error) {
	query := `
		SELECT DISTINCT branch_id, class_id, year_id
		FROM timetable_entries
		ORDER BY branch_id, class_id, year_id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying scopes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var scopes []timetable.Scope
	for rows.Next() {
		var sc timetable.Scope
		if err := rows.Scan(&sc.BranchID, &sc.ClassID, &sc.YearID); err != nil {
			return nil, fmt.Errorf("scanning scope: %w", err)
		}
		scopes = append(scopes, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating scopes: %w", err)
	}
	return scopes, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getSQLiteEntry(ctx context.Context, q queryRower, id string) (*timetable.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM timetable_entries WHERE id = ?`

	e, err := scanSQLiteEntry(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", timetable.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// rowScanner is satisfied by *sql.Row, *sql.Rows and pgx.Row.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteEntry(row rowScanner) (*timetable.Entry, error) {
	var (
		e         timetable.Entry
		date      string
		createdAt string
		updatedAt string
	)

	err := row.Scan(
		&e.ID,
		&e.Scope.BranchID,
		&e.Scope.ClassID,
		&e.Scope.YearID,
		&date,
		&e.Subject,
		&e.Professor,
		&e.StartTime,
		&e.EndTime,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning entry: %w", err)
	}

	e.Date, err = dateutil.ParseStoredDate(date)
	if err != nil {
		return nil, fmt.Errorf("parsing date: %w", err)
	}

	e.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}
	e.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing updated at: %w", err)
	}

	return &e, nil
}
