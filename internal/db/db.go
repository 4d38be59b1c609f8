package db

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/javiermolinar/classboard/internal/config"
	"github.com/javiermolinar/classboard/internal/timetable"
)

// Repository is a timetable store that can also enumerate scopes.
type Repository interface {
	timetable.Store
	ListScopes(ctx context.Context) ([]timetable.Scope, error)
}

// Open returns the store selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig, log zerolog.Logger) (Repository, error) {
	log = log.With().Str("driver", cfg.Driver).Logger()

	switch cfg.Driver {
	case config.DriverSQLite, "":
		s, err := New(cfg.DBPath, log)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverPostgres:
		p, err := NewPostgres(ctx, cfg.DSN, log)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
