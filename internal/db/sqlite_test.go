package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/javiermolinar/classboard/internal/timetable"
)

var (
	testScope  = timetable.Scope{BranchID: "downtown", ClassID: "10", YearID: "2025"}
	otherScope = timetable.Scope{BranchID: "downtown", ClassID: "9", YearID: "2025"}
	// Wednesday
	testDate = time.Date(2025, 1, 15, 0, 0, 0, 0, time.Local)
)

func TestCreateEntry(t *testing.T) {
	repo := newTestRepo(t)

	e, err := repo.CreateEntry(context.Background(), testScope, timetable.Fields{
		Date:      testDate,
		Subject:   "  Maths ",
		Professor: "Ms. Rao",
		StartTime: "09:00",
		EndTime:   "10:30",
	})
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}

	if _, err := uuid.Parse(e.ID); err != nil {
		t.Errorf("expected a UUID id, got %q", e.ID)
	}
	if e.Subject != "Maths" {
		t.Errorf("expected trimmed subject, got %q", e.Subject)
	}
	if e.Scope != testScope {
		t.Errorf("expected scope %v, got %v", testScope, e.Scope)
	}
	if e.CreatedAt.IsZero() || !e.CreatedAt.Equal(e.UpdatedAt) {
		t.Errorf("expected matching timestamps, got %v / %v", e.CreatedAt, e.UpdatedAt)
	}
}

func TestCreateEntry_Rejects(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.CreateEntry(ctx, timetable.Scope{BranchID: "downtown"}, timetable.Fields{Date: testDate}); !errors.Is(err, timetable.ErrIncompleteScope) {
		t.Errorf("expected ErrIncompleteScope, got %v", err)
	}
	if _, err := repo.CreateEntry(ctx, testScope, timetable.Fields{Subject: "Maths"}); err == nil {
		t.Error("expected error for missing date")
	}
}

func TestGetEntry(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created := mustCreate(t, repo, testScope, testDate, "Physics", "14:00", "15:00")

	got, err := repo.GetEntry(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}

	if got.Subject != "Physics" || got.StartTime != "14:00" || got.EndTime != "15:00" {
		t.Errorf("unexpected entry %+v", got)
	}
	if !got.Date.Equal(testDate) {
		t.Errorf("expected date %v, got %v", testDate, got.Date)
	}
	if got.Weekday() != timetable.Wednesday {
		t.Errorf("expected Wednesday, got %v", got.Weekday())
	}
	if !got.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("created at: got %v, want %v", got.CreatedAt, created.CreatedAt)
	}
}

func TestGetEntry_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetEntry(context.Background(), uuid.NewString())
	if !errors.Is(err, timetable.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListEntries(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	monday := time.Date(2025, 1, 13, 0, 0, 0, 0, time.Local)
	sunday := monday.AddDate(0, 0, 6)

	mustCreate(t, repo, testScope, testDate, "Physics", "11:00", "12:00")
	mustCreate(t, repo, testScope, testDate, "Maths", "09:00", "10:00")
	mustCreate(t, repo, testScope, monday, "English", "10:00", "11:00")
	mustCreate(t, repo, testScope, sunday, "Revision", "17:00", "18:00")
	// Outside the window.
	mustCreate(t, repo, testScope, monday.AddDate(0, 0, -1), "Last week", "09:00", "10:00")
	mustCreate(t, repo, testScope, monday.AddDate(0, 0, 7), "Next week", "09:00", "10:00")
	// Same week, other class.
	mustCreate(t, repo, otherScope, testDate, "Chemistry", "09:00", "10:00")

	window := timetable.ComputeWeekRange(testDate, 0)
	entries, err := repo.ListEntries(ctx, testScope, window)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}

	want := []string{"English", "Maths", "Physics", "Revision"}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, subject := range want {
		if entries[i].Subject != subject {
			t.Errorf("entry %d: expected %s, got %s", i, subject, entries[i].Subject)
		}
	}
}

func TestListEntries_GroupsIntoSchedule(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	mustCreate(t, repo, testScope, testDate, "Maths", "09:00", "10:00")
	mustCreate(t, repo, testScope, testDate.AddDate(0, 0, 2), "Biology", "13:00", "14:30")

	entries, err := repo.ListEntries(ctx, testScope, timetable.ComputeWeekRange(testDate, 0))
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}

	s := timetable.GroupByWeekday(entries)
	if len(s.Day(timetable.Wednesday)) != 1 || len(s.Day(timetable.Friday)) != 1 {
		t.Errorf("unexpected grouping: wed=%d fri=%d", len(s.Day(timetable.Wednesday)), len(s.Day(timetable.Friday)))
	}
}

func TestListEntries_Empty(t *testing.T) {
	repo := newTestRepo(t)

	entries, err := repo.ListEntries(context.Background(), testScope, timetable.ComputeWeekRange(testDate, 0))
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}

func TestListEntries_IncompleteScope(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.ListEntries(context.Background(), timetable.Scope{BranchID: "b"}, timetable.ComputeWeekRange(testDate, 0))
	if !errors.Is(err, timetable.ErrIncompleteScope) {
		t.Errorf("expected ErrIncompleteScope, got %v", err)
	}
}

func TestUpdateEntry(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created := mustCreate(t, repo, testScope, testDate, "Maths", "09:00", "10:00")

	repo.now = func() time.Time { return created.CreatedAt.Add(time.Hour) }

	subject := "Further Maths"
	end := "11:00"
	updated, err := repo.UpdateEntry(ctx, created.ID, timetable.Patch{Subject: &subject, EndTime: &end})
	if err != nil {
		t.Fatalf("UpdateEntry failed: %v", err)
	}

	if updated.Subject != subject || updated.EndTime != end {
		t.Errorf("patch not applied: %+v", updated)
	}
	if updated.StartTime != "09:00" || updated.Professor != created.Professor {
		t.Errorf("unpatched fields changed: %+v", updated)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("expected updated_at to move forward, got %v", updated.UpdatedAt)
	}

	got, err := repo.GetEntry(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if got.Subject != subject || got.EndTime != end {
		t.Errorf("update not persisted: %+v", got)
	}
}

func TestUpdateEntry_MoveDate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created := mustCreate(t, repo, testScope, testDate, "Maths", "09:00", "10:00")

	nextWeek := testDate.AddDate(0, 0, 7)
	if _, err := repo.UpdateEntry(ctx, created.ID, timetable.Patch{Date: &nextWeek}); err != nil {
		t.Fatalf("UpdateEntry failed: %v", err)
	}

	this, _ := repo.ListEntries(ctx, testScope, timetable.ComputeWeekRange(testDate, 0))
	next, _ := repo.ListEntries(ctx, testScope, timetable.ComputeWeekRange(testDate, 1))
	if len(this) != 0 || len(next) != 1 {
		t.Errorf("expected entry to move weeks, got this=%d next=%d", len(this), len(next))
	}
}

func TestUpdateEntry_EmptyPatch(t *testing.T) {
	repo := newTestRepo(t)

	created := mustCreate(t, repo, testScope, testDate, "Maths", "09:00", "10:00")

	got, err := repo.UpdateEntry(context.Background(), created.ID, timetable.Patch{})
	if err != nil {
		t.Fatalf("UpdateEntry failed: %v", err)
	}
	if !got.UpdatedAt.Equal(created.UpdatedAt) {
		t.Error("empty patch should not touch updated_at")
	}
}

func TestUpdateEntry_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	subject := "Ghost"
	_, err := repo.UpdateEntry(context.Background(), uuid.NewString(), timetable.Patch{Subject: &subject})
	if !errors.Is(err, timetable.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteEntry(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created := mustCreate(t, repo, testScope, testDate, "Maths", "09:00", "10:00")

	if err := repo.DeleteEntry(ctx, created.ID); err != nil {
		t.Fatalf("DeleteEntry failed: %v", err)
	}

	if _, err := repo.GetEntry(ctx, created.ID); !errors.Is(err, timetable.ErrNotFound) {
		t.Errorf("expected entry to be gone, got %v", err)
	}

	// A second delete hits a stale ID.
	if err := repo.DeleteEntry(ctx, created.ID); !errors.Is(err, timetable.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestStoreDoesNotCheckOverlap(t *testing.T) {
	repo := newTestRepo(t)

	mustCreate(t, repo, testScope, testDate, "Maths", "09:00", "10:00")
	mustCreate(t, repo, testScope, testDate, "Physics", "09:30", "10:30")

	entries, err := repo.ListEntries(context.Background(), testScope, timetable.ComputeWeekRange(testDate, 0))
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected both entries stored, got %d", len(entries))
	}
}

func TestListScopes(t *testing.T) {
	repo := newTestRepo(t)

	mustCreate(t, repo, testScope, testDate, "Maths", "09:00", "10:00")
	mustCreate(t, repo, testScope, testDate, "Physics", "10:00", "11:00")
	mustCreate(t, repo, otherScope, testDate, "Chemistry", "09:00", "10:00")

	scopes, err := repo.ListScopes(context.Background())
	if err != nil {
		t.Fatalf("ListScopes failed: %v", err)
	}

	want := []timetable.Scope{otherScope, testScope}
	if len(scopes) != len(want) {
		t.Fatalf("expected %d scopes, got %d", len(want), len(scopes))
	}
	for i := range want {
		if scopes[i] != want[i] {
			t.Errorf("scope %d: expected %v, got %v", i, want[i], scopes[i])
		}
	}
}

func TestNew_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "classboard.db")

	repo, err := New(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	_ = repo.Close()

	// Reopening runs migrations again on an existing schema.
	repo, err = New(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	_ = repo.Close()
}

func newTestRepo(t *testing.T) *SQLite {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	repo, err := New(dbPath, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create test repo: %v", err)
	}

	t.Cleanup(func() {
		_ = repo.Close()
	})

	return repo
}

func mustCreate(t *testing.T, store timetable.Store, scope timetable.Scope, date time.Time, subject, start, end string) *timetable.Entry {
	t.Helper()

	e, err := store.CreateEntry(context.Background(), scope, timetable.Fields{
		Date:      date,
		Subject:   subject,
		Professor: "Staff",
		StartTime: start,
		EndTime:   end,
	})
	if err != nil {
		t.Fatalf("CreateEntry(%s) failed: %v", subject, err)
	}
	return e
}
