package timetable

import (
	"errors"
	"testing"
	"time"
)

// entryAt creates a persisted entry on the given date.
func entryAt(id string, date time.Time, start, end string) *Entry {
	return &Entry{
		ID:        id,
		Scope:     Scope{BranchID: "b1", ClassID: "c1", YearID: "y1"},
		Date:      date,
		Subject:   "Subject " + id,
		Professor: "Prof " + id,
		StartTime: start,
		EndTime:   end,
	}
}

var monday = time.Date(2025, 1, 13, 0, 0, 0, 0, time.Local)

func TestValidate_Scenarios(t *testing.T) {
	existing := []*Entry{entryAt("x", monday, "09:00", "10:00")}

	tests := []struct {
		name      string
		candidate Candidate
		want      error
	}{
		{
			name:      "adjacent after existing",
			candidate: Candidate{Day: Monday, StartTime: "10:00", EndTime: "11:00"},
			want:      nil,
		},
		{
			name:      "adjacent before existing",
			candidate: Candidate{Day: Monday, StartTime: "08:00", EndTime: "09:00"},
			want:      nil,
		},
		{
			name:      "partial overlap",
			candidate: Candidate{Day: Monday, StartTime: "09:30", EndTime: "10:30"},
			want:      ErrOverlap,
		},
		{
			name:      "too short",
			candidate: Candidate{Day: Monday, StartTime: "09:15", EndTime: "09:30"},
			want:      ErrTooShort,
		},
		{
			name:      "end before start",
			candidate: Candidate{Day: Monday, StartTime: "11:00", EndTime: "10:00"},
			want:      ErrInvalidRange,
		},
		{
			name:      "equal start and end",
			candidate: Candidate{Day: Monday, StartTime: "11:00", EndTime: "11:00"},
			want:      ErrInvalidRange,
		},
		{
			name:      "self excluded on edit",
			candidate: Candidate{Day: Monday, StartTime: "09:00", EndTime: "10:00", ExcludeID: "x"},
			want:      nil,
		},
		{
			name:      "same time without exclusion",
			candidate: Candidate{Day: Monday, StartTime: "09:00", EndTime: "10:00"},
			want:      ErrOverlap,
		},
		{
			name:      "candidate contains existing",
			candidate: Candidate{Day: Monday, StartTime: "08:00", EndTime: "11:00"},
			want:      ErrOverlap,
		},
		{
			name:      "candidate inside existing",
			candidate: Candidate{Day: Monday, StartTime: "09:10", EndTime: "09:50"},
			want:      ErrOverlap,
		},
		{
			name:      "exactly thirty minutes",
			candidate: Candidate{Day: Monday, StartTime: "12:00", EndTime: "12:30"},
			want:      nil,
		},
		{
			name:      "bad start format",
			candidate: Candidate{Day: Monday, StartTime: "9:00", EndTime: "10:00"},
			want:      ErrInvalidTimeFormat,
		},
		{
			name:      "bad end format",
			candidate: Candidate{Day: Monday, StartTime: "09:00", EndTime: "25:00"},
			want:      ErrInvalidTimeFormat,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.candidate, existing)
			if tc.want == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("Validate() = %v, want %v", err, tc.want)
			}
			if !IsValidationError(err) {
				t.Errorf("expected ValidationError, got %T", err)
			}
		})
	}
}

func TestValidate_ReasonAndConflict(t *testing.T) {
	existing := []*Entry{entryAt("x", monday, "09:00", "10:00")}

	err := Validate(Candidate{Day: Monday, StartTime: "09:30", EndTime: "10:30"}, existing)

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if ve.Reason != ReasonOverlap {
		t.Errorf("Reason = %q, want %q", ve.Reason, ReasonOverlap)
	}
	if ve.Conflict == nil || ve.Conflict.ID != "x" {
		t.Errorf("Conflict = %v, want entry x", ve.Conflict)
	}
}

func TestValidate_Idempotent(t *testing.T) {
	existing := []*Entry{
		entryAt("a", monday, "09:00", "10:00"),
		entryAt("b", monday, "13:00", "14:30"),
	}
	candidates := []Candidate{
		{Day: Monday, StartTime: "10:00", EndTime: "11:00"},
		{Day: Monday, StartTime: "14:00", EndTime: "15:00"},
		{Day: Monday, StartTime: "07:00", EndTime: "07:15"},
	}

	for _, c := range candidates {
		first := Validate(c, existing)
		second := Validate(c, existing)
		if (first == nil) != (second == nil) {
			t.Fatalf("Validate(%+v) not idempotent: %v then %v", c, first, second)
		}
		if first != nil && first.Error() != second.Error() {
			t.Errorf("Validate(%+v) differs: %q then %q", c, first, second)
		}
	}
}

func TestValidate_OverlapSymmetry(t *testing.T) {
	times := []string{"08:00", "08:30", "09:00", "09:30", "10:00", "10:30", "11:00"}

	for i, as := range times {
		for _, ae := range times[i+1:] {
			for j, bs := range times {
				for _, be := range times[j+1:] {
					a := entryAt("a", monday, as, ae)
					b := entryAt("b", monday, bs, be)
					if a.Duration() < SlotMinutes || b.Duration() < SlotMinutes {
						continue
					}
					ab := Validate(Candidate{Day: Monday, StartTime: as, EndTime: ae}, []*Entry{b})
					ba := Validate(Candidate{Day: Monday, StartTime: bs, EndTime: be}, []*Entry{a})
					if errors.Is(ab, ErrOverlap) != errors.Is(ba, ErrOverlap) {
						t.Errorf("asymmetric: %s-%s vs %s-%s: %v / %v", as, ae, bs, be, ab, ba)
					}
					if errors.Is(ab, ErrOverlap) != TimesOverlap(as, ae, bs, be) {
						t.Errorf("disagrees with half-open overlap: %s-%s vs %s-%s", as, ae, bs, be)
					}
				}
			}
		}
	}
}

func TestValidate_IgnoresNilEntries(t *testing.T) {
	err := Validate(Candidate{Day: Monday, StartTime: "09:00", EndTime: "10:00"}, []*Entry{nil})
	if err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestFieldsValidate(t *testing.T) {
	tests := []struct {
		name   string
		fields Fields
		want   error
	}{
		{"valid", Fields{Subject: "Maths", StartTime: "09:00", EndTime: "10:00"}, nil},
		{"blank subject", Fields{Subject: "   ", StartTime: "09:00", EndTime: "10:00"}, ErrEmptySubject},
		{"too short", Fields{Subject: "Maths", StartTime: "09:00", EndTime: "09:20"}, ErrTooShort},
		{"inverted", Fields{Subject: "Maths", StartTime: "10:00", EndTime: "09:00"}, ErrInvalidRange},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.fields.Validate()
			if tc.want == nil && err != nil {
				t.Fatalf("Validate() = %v, want nil", err)
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("Validate() = %v, want %v", err, tc.want)
			}
		})
	}
}
