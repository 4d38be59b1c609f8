package timetable

import (
	"fmt"
	"slices"
)

// Schedule holds a week's entries bucketed by weekday. All seven buckets
// exist even when empty; each bucket is sorted by start time.
type Schedule [DaysPerWeek][]*Entry

// GroupByWeekday partitions entries into weekday buckets sorted by start
// time. Entries are not copied.
//
// A nil entry or one without a date is a programming error and panics.
func GroupByWeekday(entries []*Entry) Schedule {
	var s Schedule
	for i := range s {
		s[i] = make([]*Entry, 0)
	}

	for _, e := range entries {
		if e == nil {
			panic("timetable: nil entry in GroupByWeekday")
		}
		if e.Date.IsZero() {
			panic(fmt.Sprintf("timetable: entry %q has no date", e.ID))
		}
		day := e.Weekday()
		s[day] = append(s[day], e)
	}

	for i := range s {
		sortByStart(s[i])
	}
	return s
}

// sortByStart orders entries by "HH:MM" start time. Zero padding makes the
// string comparison equivalent to comparing minutes.
func sortByStart(entries []*Entry) {
	slices.SortStableFunc(entries, func(a, b *Entry) int {
		switch {
		case a.StartTime < b.StartTime:
			return -1
		case a.StartTime > b.StartTime:
			return 1
		default:
			return 0
		}
	})
}

// Day returns the entries for the given weekday.
// Returns nil if the weekday is out of range.
func (s Schedule) Day(d Weekday) []*Entry {
	if !d.Valid() {
		return nil
	}
	return s[d]
}

// All returns every entry, Monday first, in start order within each day.
func (s Schedule) All() []*Entry {
	var result []*Entry
	for _, day := range s {
		result = append(result, day...)
	}
	return result
}

// Len returns the total number of entries.
func (s Schedule) Len() int {
	n := 0
	for _, day := range s {
		n += len(day)
	}
	return n
}

// Empty reports whether no day has any entry.
func (s Schedule) Empty() bool {
	return s.Len() == 0
}

// Find returns the entry with the given ID, or nil.
func (s Schedule) Find(id string) *Entry {
	if id == "" {
		return nil
	}
	for _, day := range s {
		for _, e := range day {
			if e.ID == id {
				return e
			}
		}
	}
	return nil
}

// Clone returns a schedule with copied slices and entries, safe to hand to
// callers that must not mutate the original.
func (s Schedule) Clone() Schedule {
	var c Schedule
	for i, day := range s {
		c[i] = make([]*Entry, len(day))
		for j, e := range day {
			c[i][j] = e.Clone()
		}
	}
	return c
}
