// Package dateutil provides date parsing and calendar arithmetic.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

// ISODate is the layout dates are stored and exchanged in.
const ISODate = "2006-01-02"

// ErrInvalidDateFormat is returned for dates that are not YYYY-MM-DD.
var ErrInvalidDateFormat = errors.New("date must be in YYYY-MM-DD format")

// ParseDate parses a YYYY-MM-DD date as local midnight.
// If the string is empty, returns today's date.
func ParseDate(s string) (time.Time, error) {
	return ParseDateIn(s, time.Local)
}

// ParseDateIn parses a YYYY-MM-DD date at midnight in loc.
func ParseDateIn(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TruncateToDay(time.Now().In(loc)), nil
	}
	t, err := time.ParseInLocation(ISODate, s, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// ParseStoredDate reads a date column. It accepts plain YYYY-MM-DD and
// full RFC 3339 timestamps, keeping only the calendar day in local time.
func ParseStoredDate(s string) (time.Time, error) {
	if len(s) > len(ISODate) {
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local), nil
		}
		s = s[:len(ISODate)]
	}
	return ParseDateIn(s, time.Local)
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(ISODate)
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the Monday of the week containing t, at midnight.
func StartOfWeek(t time.Time) time.Time {
	t = TruncateToDay(t)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday closes the week
	}
	return t.AddDate(0, 0, -(weekday - 1))
}

// WeeksBetween returns how many whole weeks the week containing to is
// away from the week containing from. Negative when to is earlier.
func WeeksBetween(from, to time.Time) int {
	a := StartOfWeek(from)
	b := StartOfWeek(to)
	// Compare calendar days, not durations, so DST changes do not skew the count.
	da := time.Date(a.Year(), a.Month(), a.Day(), 12, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 12, 0, 0, 0, time.UTC)
	days := int(db.Sub(da).Hours() / 24)
	if days >= 0 {
		return days / 7
	}
	return -((-days) / 7)
}
