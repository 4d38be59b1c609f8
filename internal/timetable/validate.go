package timetable

import (
	"errors"
	"fmt"
)

// Reason classifies why a candidate entry was rejected.
type Reason string

const (
	ReasonInvalidFormat Reason = "invalid_format"
	ReasonInvalidRange  Reason = "invalid_range"
	ReasonTooShort      Reason = "too_short"
	ReasonOverlap       Reason = "overlap"
)

// ValidationError reports a rejected candidate. It unwraps to one of the
// sentinel errors so callers can use errors.Is.
type ValidationError struct {
	Reason   Reason
	Field    string // "start", "end" or "" when both are involved
	Conflict *Entry // the existing entry for ReasonOverlap
	err      error
}

func (e *ValidationError) Error() string {
	if e.Conflict != nil {
		return fmt.Sprintf("%v: %q (%s-%s)", e.err, e.Conflict.Subject, e.Conflict.StartTime, e.Conflict.EndTime)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s time: %v", e.Field, e.err)
	}
	return e.err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.err
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Candidate is a proposed new or edited class time on a given day.
type Candidate struct {
	Day       Weekday
	StartTime string
	EndTime   string
	ExcludeID string // set when editing so the entry does not clash with itself
}

// Validate checks a candidate against the entries already on its day.
// It returns nil when the candidate can be saved. Checks run in order:
// time format, ordering, minimum duration, overlap.
func Validate(c Candidate, existingForDay []*Entry) error {
	if err := checkRange(c.StartTime, c.EndTime); err != nil {
		return err
	}

	start := TimeToMinutes(c.StartTime)
	end := TimeToMinutes(c.EndTime)
	for _, e := range existingForDay {
		if e == nil {
			continue
		}
		if c.ExcludeID != "" && e.ID == c.ExcludeID {
			continue
		}
		if clashes(start, end, e.StartMinutes(), e.EndMinutes()) {
			return &ValidationError{Reason: ReasonOverlap, Conflict: e, err: ErrOverlap}
		}
	}
	return nil
}

// checkRange runs the format, ordering and duration checks.
func checkRange(startTime, endTime string) error {
	if err := ValidateTimeFormat(startTime); err != nil {
		return &ValidationError{Reason: ReasonInvalidFormat, Field: "start", err: err}
	}
	if err := ValidateTimeFormat(endTime); err != nil {
		return &ValidationError{Reason: ReasonInvalidFormat, Field: "end", err: err}
	}
	start := TimeToMinutes(startTime)
	end := TimeToMinutes(endTime)
	if start >= end {
		return &ValidationError{Reason: ReasonInvalidRange, err: ErrInvalidRange}
	}
	if end-start < SlotMinutes {
		return &ValidationError{Reason: ReasonTooShort, err: ErrTooShort}
	}
	return nil
}

// clashes reports whether [start, end) collides with [es, ee).
func clashes(start, end, es, ee int) bool {
	return (start >= es && start < ee) ||
		(end > es && end <= ee) ||
		(start <= es && end >= ee)
}
