package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/javiermolinar/classboard/internal/dateutil"
	"github.com/javiermolinar/classboard/internal/timetable"
)

const pgEntryColumns = `id::text, branch_id, class_id, year_id, to_char(date, 'YYYY-MM-DD'),
		       subject, professor, start_time, end_time, created_at, updated_at`

// Postgres implements timetable.Store on a pgx connection pool, for
// centers sharing one hosted database across front-desk machines.
type Postgres struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// NewPostgres connects, pings and migrates the database behind dsn.
func NewPostgres(ctx context.Context, dsn string, log zerolog.Logger) (*Postgres, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := migratePostgres(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	log.Debug().
		Str("host", poolCfg.ConnConfig.Host).
		Int32("max_conns", poolCfg.MaxConns).
		Msg("postgres store opened")

	return &Postgres{pool: pool, log: log}, nil
}

// ListEntries returns the scope's entries dated within the window.
func (p *Postgres) ListEntries(ctx context.Context, scope timetable.Scope, window timetable.WeekWindow) ([]*timetable.Entry, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	query := `
		SELECT ` + pgEntryColumns + `
		FROM timetable_entries
		WHERE branch_id = $1 AND class_id = $2 AND year_id = $3
		  AND date BETWEEN $4::date AND $5::date
		ORDER BY date, start_time
	`

	rows, err := p.pool.Query(ctx, query,
		scope.BranchID, scope.ClassID, scope.YearID,
		dateutil.FormatDate(window.Start), dateutil.FormatDate(window.End),
	)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	var entries []*timetable.Entry
	for rows.Next() {
		e, err := scanPostgresEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}

	p.log.Debug().
		Str("scope", scope.String()).
		Str("week", window.Label()).
		Int("count", len(entries)).
		Msg("listed entries")

	return entries, nil
}

// GetEntry retrieves an entry by ID.
func (p *Postgres) GetEntry(ctx context.Context, id string) (*timetable.Entry, error) {
	return getPostgresEntry(ctx, p.pool, id, false)
}

// CreateEntry inserts a new entry with a fresh UUID.
func (p *Postgres) CreateEntry(ctx context.Context, scope timetable.Scope, fields timetable.Fields) (*timetable.Entry, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	if fields.Date.IsZero() {
		return nil, errMissingDate
	}
	fields = fields.Normalized()

	query := `
		INSERT INTO timetable_entries
			(id, branch_id, class_id, year_id, date, subject, professor, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5::date, $6, $7, $8, $9)
		RETURNING ` + pgEntryColumns

	e, err := scanPostgresEntry(p.pool.QueryRow(ctx, query,
		uuid.NewString(),
		scope.BranchID,
		scope.ClassID,
		scope.YearID,
		dateutil.FormatDate(fields.Date),
		fields.Subject,
		fields.Professor,
		fields.StartTime,
		fields.EndTime,
	))
	if err != nil {
		return nil, fmt.Errorf("inserting entry: %w", err)
	}

	p.log.Debug().Str("id", e.ID).Str("scope", scope.String()).Msg("created entry")
	return e, nil
}

// UpdateEntry locks the row, applies patch and writes it back.
func (p *Postgres) UpdateEntry(ctx context.Context, id string, patch timetable.Patch) (*timetable.Entry, error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	e, err := getPostgresEntry(ctx, tx, id, true)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return e, nil
	}
	patch.Apply(e)

	query := `
		UPDATE timetable_entries
		SET date = $1::date, subject = $2, professor = $3, start_time = $4, end_time = $5,
		    updated_at = now()
		WHERE id = $6
		RETURNING ` + pgEntryColumns

	e, err = scanPostgresEntry(tx.QueryRow(ctx, query,
		dateutil.FormatDate(e.Date),
		e.Subject,
		e.Professor,
		e.StartTime,
		e.EndTime,
		id,
	))
	if err != nil {
		return nil, fmt.Errorf("updating entry: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	p.log.Debug().Str("id", id).Msg("updated entry")
	return e, nil
}

// DeleteEntry removes an entry.
func (p *Postgres) DeleteEntry(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", timetable.ErrNotFound, id)
	}

	tag, err := p.pool.Exec(ctx, `DELETE FROM timetable_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", timetable.ErrNotFound, id)
	}

	p.log.Debug().Str("id", id).Msg("deleted entry")
	return nil
}

// ListScopes returns every scope that owns at least one entry.
func (p *Postgres) ListScopes(ctx context.Context) ([]timetable.Scope, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT DISTINCT branch_id, class_id, year_id
		FROM timetable_entries
		ORDER BY branch_id, class_id, year_id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying scopes: %w", err)
	}
	defer rows.Close()

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

// Close releases the pool.
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

type pgQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func getPostgresEntry(ctx context.Context, q pgQuerier, id string, forUpdate bool) (*timetable.Entry, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %s", timetable.ErrNotFound, id)
	}

	query := `SELECT ` + pgEntryColumns + ` FROM timetable_entries WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	e, err := scanPostgresEntry(q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", timetable.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying entry: %w", err)
	}
	return e, nil
}

func scanPostgresEntry(row rowScanner) (*timetable.Entry, error) {
	var (
		e    timetable.Entry
		date string
	)

	if err := row.Scan(
		&e.ID,
		&e.Scope.BranchID,
		&e.Scope.ClassID,
		&e.Scope.YearID,
		&date,
		&e.Subject,
		&e.Professor,
		&e.StartTime,
		&e.EndTime,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return nil, err
	}

	d, err := dateutil.ParseStoredDate(date)
	if err != nil {
		return nil, fmt.Errorf("parsing date: %w", err)
	}
	e.Date = d
	e.CreatedAt = e.CreatedAt.UTC()
	e.UpdatedAt = e.UpdatedAt.UTC()
	return &e, nil
}

var (
	_ Repository = (*Postgres)(nil)
	_ Repository = (*SQLite)(nil)
)
