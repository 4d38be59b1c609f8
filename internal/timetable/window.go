package timetable

import (
	"time"

	"github.com/javiermolinar/classboard/internal/dateutil"
)

// WeekWindow is the Monday-Sunday range currently displayed.
// Start is Monday 00:00:00.000 and End is Sunday 23:59:59.999, both in
// the location of the clock it was computed from.
type WeekWindow struct {
	Start time.Time
	End   time.Time
}

// ComputeWeekRange returns the week window offsetWeeks weeks away from the
// week containing now. Negative offsets move into the past.
func ComputeWeekRange(now time.Time, offsetWeeks int) WeekWindow {
	day := now.AddDate(0, 0, offsetWeeks*7)

	weekday := int(day.Weekday())
	diffToMonday := 1 - weekday
	if day.Weekday() == time.Sunday {
		diffToMonday = -6
	}

	monday := dateutil.TruncateToDay(day.AddDate(0, 0, diffToMonday))
	sunday := monday.AddDate(0, 0, 6)
	end := time.Date(sunday.Year(), sunday.Month(), sunday.Day(), 23, 59, 59, int(999*time.Millisecond), sunday.Location())

	return WeekWindow{Start: monday, End: end}
}

// DateFor returns the date of the given weekday inside the window,
// at local midnight.
func (w WeekWindow) DateFor(d Weekday) time.Time {
	return w.Start.AddDate(0, 0, int(d))
}

// Contains reports whether t falls inside the window (inclusive).
func (w WeekWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Days returns the seven dates of the window, Monday first.
func (w WeekWindow) Days() [DaysPerWeek]time.Time {
	var days [DaysPerWeek]time.Time
	for i := range days {
		days[i] = w.DateFor(Weekday(i))
	}
	return days
}

// Shift returns the window weeks weeks away from w.
func (w WeekWindow) Shift(weeks int) WeekWindow {
	return ComputeWeekRange(w.Start, weeks)
}

// Equal reports whether both windows cover the same range.
func (w WeekWindow) Equal(other WeekWindow) bool {
	return w.Start.Equal(other.Start) && w.End.Equal(other.End)
}

// Label renders the window as "Mon Jan 2 - Sun Jan 8, 2006".
func (w WeekWindow) Label() string {
	return w.Start.Format("Mon Jan 2") + " - " + w.End.Format("Mon Jan 2, 2006")
}
