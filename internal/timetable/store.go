package timetable

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by stores when an entry ID does not exist,
// typically because another session deleted it.
var ErrNotFound = errors.New("timetable entry not found")

// Store is the persistence collaborator for timetable entries.
// Implementations assign IDs on create and return the stored entry.
// Stores do not check overlaps: validation happens before any call.
type Store interface {
	// ListEntries returns the scope's entries dated within the window.
	ListEntries(ctx context.Context, scope Scope, window WeekWindow) ([]*Entry, error)

	// GetEntry returns a single entry.
	// Returns ErrNotFound if id does not exist.
	GetEntry(ctx context.Context, id string) (*Entry, error)

	// CreateEntry persists a new entry and returns it with its ID.
	CreateEntry(ctx context.Context, scope Scope, fields Fields) (*Entry, error)

	// UpdateEntry applies a partial update and returns the stored entry.
	// Returns ErrNotFound if id does not exist.
	UpdateEntry(ctx context.Context, id string, patch Patch) (*Entry, error)

	// DeleteEntry removes an entry.
	// Returns ErrNotFound if id does not exist.
	DeleteEntry(ctx context.Context, id string) error

	// Close releases any resources held by the store.
	Close() error
}

// StoreError wraps a failed store call. The failed operation left no
// local state changed.
type StoreError struct {
	Op  string // "list", "create", "update", "delete"
	ID  string
	Err error
}

func (e *StoreError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s entry %s: %v", e.Op, e.ID, e.Err)
	}
	return fmt.Sprintf("%s entries: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a store error for a stale ID.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
