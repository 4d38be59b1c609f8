package db

import (
	"context"
	"embed"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// migrate creates the SQLite schema.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS timetable_entries (
			id          TEXT PRIMARY KEY,
			branch_id   TEXT NOT NULL,
			class_id    TEXT NOT NULL,
			year_id     TEXT NOT NULL,
			date        DATE NOT NULL,
			subject     TEXT NOT NULL,
			professor   TEXT NOT NULL DEFAULT '',
			start_time  TEXT NOT NULL,
			end_time    TEXT NOT NULL,
			created_at  DATETIME NOT NULL,
			updated_at  DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_entries_scope_date
			ON timetable_entries(branch_id, class_id, year_id, date);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating timetable_entries table: %w", err)
	}

	return nil
}

//go:embed migrations/postgres/*.sql
var postgresMigrations embed.FS

// goose keeps dialect and filesystem in package globals.
var gooseMu sync.Mutex

// migratePostgres applies pending goose migrations through a database/sql
// handle borrowed from the pool.
func migratePostgres(ctx context.Context, pool *pgxpool.Pool) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(postgresMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	defer func() { _ = sqlDB.Close() }()

	if err := goose.UpContext(ctx, sqlDB, "migrations/postgres"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
