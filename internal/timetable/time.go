package timetable

import (
	"fmt"
	"time"
)

// SlotMinutes is the height of one grid row and the shortest allowed class.
const SlotMinutes = 30

// MinutesPerDay is 24 hours * 60 minutes.
const MinutesPerDay = 24 * 60

// TimeToMinutes converts "HH:MM" to minutes since midnight.
// Returns 0 for invalid input.
func TimeToMinutes(t string) int {
	if len(t) < 5 {
		return 0
	}
	hours := int(t[0]-'0')*10 + int(t[1]-'0')
	mins := int(t[3]-'0')*10 + int(t[4]-'0')
	return hours*60 + mins
}

// MinutesToTime converts minutes since midnight to "HH:MM" format.
// Values past the end of the day are rendered as-is ("24:00") so slot
// boundaries at midnight stay readable.
func MinutesToTime(m int) string {
	if m < 0 {
		m = 0
	}
	if m > MinutesPerDay {
		m = MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ValidateTimeFormat checks that s is a zero-padded 24h "HH:MM" time.
func ValidateTimeFormat(s string) error {
	if len(s) != 5 {
		return ErrInvalidTimeFormat
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return ErrInvalidTimeFormat
	}
	return nil
}

// TimesOverlap returns true if two "HH:MM" ranges overlap.
// Ranges are half-open, so a class ending at 10:00 and one starting at
// 10:00 do not overlap.
func TimesOverlap(start1, end1, start2, end2 string) bool {
	return start1 < end2 && start2 < end1
}
