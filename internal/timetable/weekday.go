package timetable

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidWeekday is returned when a weekday name cannot be parsed.
var ErrInvalidWeekday = errors.New("weekday must be a day name like 'monday' or 'mon'")

// Weekday is a day of the timetable week. Unlike time.Weekday the week
// starts on Monday, so the zero value is Monday and Sunday sorts last.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// DaysPerWeek is the number of weekday buckets in a schedule.
const DaysPerWeek = 7

var weekdayNames = [DaysPerWeek]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// fromTimeWeekday maps time.Weekday (0=Sunday) to Weekday.
var fromTimeWeekday = [DaysPerWeek]Weekday{
	Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday,
}

// Weekdays returns all weekdays in display order.
func Weekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// Valid reports whether d is one of the seven weekdays.
func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

// String returns the full English name ("Monday").
func (d Weekday) String() string {
	if !d.Valid() {
		return ""
	}
	return weekdayNames[d]
}

// Short returns the three-letter name ("Mon").
func (d Weekday) Short() string {
	if !d.Valid() {
		return ""
	}
	return weekdayNames[d][:3]
}

// Before reports whether d comes earlier in the week than other.
func (d Weekday) Before(other Weekday) bool {
	return d < other
}

// WeekdayOf returns the weekday of the given date.
func WeekdayOf(t time.Time) Weekday {
	return fromTimeWeekday[t.Weekday()]
}

// ParseWeekday parses full or three-letter day names, case-insensitively.
func ParseWeekday(s string) (Weekday, error) {
	in := strings.ToLower(strings.TrimSpace(s))
	for i, name := range weekdayNames {
		lower := strings.ToLower(name)
		if in == lower || in == lower[:3] {
			return Weekday(i), nil
		}
	}
	return 0, ErrInvalidWeekday
}
