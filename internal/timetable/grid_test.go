package timetable

import (
	"testing"
)

func TestBuildGrid_Empty(t *testing.T) {
	g := BuildGrid(GroupByWeekday(nil))

	if !g.Empty() {
		t.Error("grid should be empty")
	}
	if g.MinTime != NoBound || g.MaxTime != NoBound {
		t.Errorf("bounds = %d/%d, want NoBound", g.MinTime, g.MaxTime)
	}
	if len(g.Rows()) != 0 {
		t.Errorf("Rows() = %d rows, want 0", len(g.Rows()))
	}
}

func TestBuildGrid_BoundsSpanWholeWeek(t *testing.T) {
	s := GroupByWeekday([]*Entry{
		entryAt("a", monday, "10:00", "11:00"),
		entryAt("b", monday.AddDate(0, 0, 4), "08:00", "09:00"),
		entryAt("c", monday.AddDate(0, 0, 6), "15:00", "16:30"),
	})

	g := BuildGrid(s)

	if g.MinTime != 8*60 {
		t.Errorf("MinTime = %d, want %d", g.MinTime, 8*60)
	}
	if g.MaxTime != 16*60+30 {
		t.Errorf("MaxTime = %d, want %d", g.MaxTime, 16*60+30)
	}
	if len(g.Slots) != 17 {
		t.Fatalf("got %d slots, want 17", len(g.Slots))
	}
	if g.Slots[0] != (Slot{Start: 480, End: 510}) {
		t.Errorf("first slot = %+v", g.Slots[0])
	}
	last := g.Slots[len(g.Slots)-1]
	if last != (Slot{Start: 960, End: 990}) {
		t.Errorf("last slot = %+v", last)
	}
}

func TestBuildGrid_DropsTrailingPartialSlot(t *testing.T) {
	s := GroupByWeekday([]*Entry{
		entryAt("a", monday, "09:00", "10:45"),
	})

	g := BuildGrid(s)

	// 09:00-10:45 is 105 minutes: three whole slots, the 15-minute tail is not a row.
	if len(g.Slots) != 3 {
		t.Fatalf("got %d slots, want 3", len(g.Slots))
	}
	if g.Slots[2].End != 10*60+30 {
		t.Errorf("last slot ends at %s, want 10:30", MinutesToTime(g.Slots[2].End))
	}
	if g.MaxTime != 10*60+45 {
		t.Errorf("MaxTime = %d, want the full entry end", g.MaxTime)
	}
}

func TestGrid_CellResolution(t *testing.T) {
	s := GroupByWeekday([]*Entry{
		entryAt("a", monday, "09:00", "10:30"),
		entryAt("b", monday, "11:00", "11:30"),
	})
	g := BuildGrid(s)

	tests := []struct {
		name     string
		day      Weekday
		slot     string
		wantKind CellKind
		wantID   string
		wantSpan int
	}{
		{"anchor of a", Monday, "09:00", CellAnchor, "a", 3},
		{"covered by a", Monday, "09:30", CellCovered, "a", 0},
		{"covered by a end", Monday, "10:00", CellCovered, "a", 0},
		{"gap", Monday, "10:30", CellFree, "", 0},
		{"anchor of b", Monday, "11:00", CellAnchor, "b", 1},
		{"other day free", Tuesday, "09:00", CellFree, "", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := g.Cell(tc.day, TimeToMinutes(tc.slot))
			if c.Kind != tc.wantKind {
				t.Fatalf("Kind = %v, want %v", c.Kind, tc.wantKind)
			}
			if tc.wantID == "" && c.Entry != nil {
				t.Errorf("Entry = %v, want nil", c.Entry.ID)
			}
			if tc.wantID != "" && (c.Entry == nil || c.Entry.ID != tc.wantID) {
				t.Errorf("Entry = %v, want %s", c.Entry, tc.wantID)
			}
			if c.RowSpan != tc.wantSpan {
				t.Errorf("RowSpan = %d, want %d", c.RowSpan, tc.wantSpan)
			}
			if c.End-c.Start != SlotMinutes {
				t.Errorf("cell covers %d minutes, want %d", c.End-c.Start, SlotMinutes)
			}
		})
	}
}

func TestGrid_FreeCellCarriesCreationRange(t *testing.T) {
	s := GroupByWeekday([]*Entry{entryAt("a", monday, "09:00", "11:00")})
	g := BuildGrid(s)

	c := g.Cell(Thursday, TimeToMinutes("10:00"))
	if !c.Free() {
		t.Fatalf("Kind = %v, want free", c.Kind)
	}
	if c.Day != Thursday || MinutesToTime(c.Start) != "10:00" || MinutesToTime(c.End) != "10:30" {
		t.Errorf("free cell = %v %s-%s", c.Day, MinutesToTime(c.Start), MinutesToTime(c.End))
	}
}

func TestGrid_OneAnchorPerEntryAndSpanMatchesDuration(t *testing.T) {
	entries := []*Entry{
		entryAt("a", monday, "08:00", "09:00"),
		entryAt("b", monday, "09:00", "10:30"),
		entryAt("c", monday, "12:00", "12:30"),
		entryAt("d", monday.AddDate(0, 0, 2), "08:30", "11:00"),
		entryAt("e", monday.AddDate(0, 0, 2), "11:00", "12:00"),
		entryAt("f", monday.AddDate(0, 0, 6), "10:00", "12:30"),
	}
	g := BuildGrid(GroupByWeekday(entries))

	anchors := make(map[string]int)
	spanMinutes := make(map[Weekday]int)
	covered := make(map[string]int)
	for _, row := range g.Rows() {
		for _, c := range row {
			switch c.Kind {
			case CellAnchor:
				anchors[c.Entry.ID]++
				spanMinutes[c.Day] += c.RowSpan * SlotMinutes
			case CellCovered:
				covered[c.Entry.ID]++
			}
		}
	}

	durations := make(map[Weekday]int)
	for _, e := range entries {
		if anchors[e.ID] != 1 {
			t.Errorf("entry %s has %d anchors, want 1", e.ID, anchors[e.ID])
		}
		if want := e.Duration()/SlotMinutes - 1; covered[e.ID] != want {
			t.Errorf("entry %s has %d covered cells, want %d", e.ID, covered[e.ID], want)
		}
		durations[e.Weekday()] += e.Duration()
	}
	for _, d := range Weekdays() {
		if spanMinutes[d] != durations[d] {
			t.Errorf("%v: row spans cover %d minutes, entries last %d", d, spanMinutes[d], durations[d])
		}
	}
}

func TestGrid_SlotIndex(t *testing.T) {
	g := BuildGrid(GroupByWeekday([]*Entry{entryAt("a", monday, "09:00", "10:00")}))

	if got := g.SlotIndex(TimeToMinutes("09:30")); got != 1 {
		t.Errorf("SlotIndex(09:30) = %d, want 1", got)
	}
	if got := g.SlotIndex(TimeToMinutes("09:15")); got != -1 {
		t.Errorf("SlotIndex(09:15) = %d, want -1", got)
	}
}

func TestSlotLabel(t *testing.T) {
	if got := (Slot{Start: 540, End: 570}).Label(); got != "09:00 - 09:30" {
		t.Errorf("Label() = %q", got)
	}
}
