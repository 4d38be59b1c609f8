// Package timetable defines the class timetable domain: entries, the
// Monday-Sunday week window, per-weekday grouping, the 30-minute slot grid
// and overlap validation.
package timetable

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/classboard/internal/dateutil"
)

// Validation errors.
var (
	ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")
	ErrInvalidRange      = errors.New("start time must be earlier than end time")
	ErrTooShort          = errors.New("end time must be at least 30 minutes after start time")
	ErrOverlap           = errors.New("another class already exists at this time")
	ErrEmptySubject      = errors.New("subject cannot be empty")
	ErrIncompleteScope   = errors.New("branch, class and year must all be set")
)

// Scope identifies the (branch, class, year) a timetable belongs to.
// Every entry is owned by exactly one scope.
type Scope struct {
	BranchID string
	ClassID  string
	YearID   string
}

// Validate returns ErrIncompleteScope unless all three keys are set.
func (s Scope) Validate() error {
	if strings.TrimSpace(s.BranchID) == "" || strings.TrimSpace(s.ClassID) == "" || strings.TrimSpace(s.YearID) == "" {
		return ErrIncompleteScope
	}
	return nil
}

// String renders the scope as "branch/class/year".
func (s Scope) String() string {
	return fmt.Sprintf("%s/%s/%s", s.BranchID, s.ClassID, s.YearID)
}

// Entry is one scheduled class on a concrete calendar date.
type Entry struct {
	ID        string // assigned by the store, empty until persisted
	Scope     Scope
	Date      time.Time // local midnight
	Subject   string
	Professor string
	StartTime string // "HH:MM"
	EndTime   string // "HH:MM"
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Weekday returns the weekday the entry's date falls on.
func (e *Entry) Weekday() Weekday {
	return WeekdayOf(e.Date)
}

// StartMinutes returns the start time in minutes since midnight.
func (e *Entry) StartMinutes() int {
	return TimeToMinutes(e.StartTime)
}

// EndMinutes returns the end time in minutes since midnight.
func (e *Entry) EndMinutes() int {
	return TimeToMinutes(e.EndTime)
}

// Duration returns the class length in minutes.
func (e *Entry) Duration() int {
	return e.EndMinutes() - e.StartMinutes()
}

// Persisted reports whether the store has assigned an ID.
func (e *Entry) Persisted() bool {
	return e.ID != ""
}

// Contains reports whether minute m falls inside [start, end).
func (e *Entry) Contains(m int) bool {
	return e.StartMinutes() <= m && m < e.EndMinutes()
}

// Clone returns a copy of the entry.
func (e *Entry) Clone() *Entry {
	c := *e
	return &c
}

// Fields holds the user-editable fields of an entry.
type Fields struct {
	Date      time.Time
	Subject   string
	Professor string
	StartTime string
	EndTime   string
}

// Validate checks the fields on their own: subject, time format, ordering
// and minimum duration. Overlap needs the rest of the day and is checked by
// Validate in validate.go.
func (f Fields) Validate() error {
	if strings.TrimSpace(f.Subject) == "" {
		return ErrEmptySubject
	}
	return checkRange(f.StartTime, f.EndTime)
}

// Normalized returns a copy with trimmed labels and the date at midnight.
func (f Fields) Normalized() Fields {
	f.Subject = strings.TrimSpace(f.Subject)
	f.Professor = strings.TrimSpace(f.Professor)
	f.Date = dateutil.TruncateToDay(f.Date)
	return f
}

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	Date      *time.Time
	Subject   *string
	Professor *string
	StartTime *string
	EndTime   *string
}

// PatchFrom builds a patch that sets every field of f.
func PatchFrom(f Fields) Patch {
	return Patch{
		Date:      &f.Date,
		Subject:   &f.Subject,
		Professor: &f.Professor,
		StartTime: &f.StartTime,
		EndTime:   &f.EndTime,
	}
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Date == nil && p.Subject == nil && p.Professor == nil && p.StartTime == nil && p.EndTime == nil
}

// Apply writes the patch onto e.
func (p Patch) Apply(e *Entry) {
	if p.Date != nil {
		e.Date = dateutil.TruncateToDay(*p.Date)
	}
	if p.Subject != nil {
		e.Subject = *p.Subject
	}
	if p.Professor != nil {
		e.Professor = *p.Professor
	}
	if p.StartTime != nil {
		e.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		e.EndTime = *p.EndTime
	}
}
