package timetable

// NoBound is the MinTime/MaxTime of a grid built from an empty schedule.
const NoBound = -1

// Slot is one [Start, End) row of the grid in minutes since midnight.
type Slot struct {
	Start int
	End   int
}

// Label renders the slot as "09:00 - 09:30".
func (s Slot) Label() string {
	return MinutesToTime(s.Start) + " - " + MinutesToTime(s.End)
}

// CellKind says how a (day, slot) cell renders.
type CellKind int

const (
	// CellFree is an empty cell that can be used to create a class.
	CellFree CellKind = iota
	// CellAnchor is the first slot of a class and carries its row span.
	CellAnchor
	// CellCovered is inside a class that started in an earlier slot.
	// It must not render content of its own.
	CellCovered
)

func (k CellKind) String() string {
	switch k {
	case CellAnchor:
		return "anchor"
	case CellCovered:
		return "covered"
	default:
		return "free"
	}
}

// Cell is the resolved state of one grid position.
type Cell struct {
	Kind    CellKind
	Day     Weekday
	Start   int    // slot start in minutes
	End     int    // slot end in minutes (Start + SlotMinutes)
	Entry   *Entry // set for anchor and covered cells
	RowSpan int    // number of slots an anchor spans; 0 otherwise
}

// Free reports whether the cell is open for creating a class.
func (c Cell) Free() bool {
	return c.Kind == CellFree
}

// Grid is the derived slot view of a week's schedule.
type Grid struct {
	Slots    []Slot
	MinTime  int // earliest start over all entries, NoBound if empty
	MaxTime  int // latest end over all entries, NoBound if empty
	schedule Schedule
}

// BuildGrid derives the 30-minute slot axis from the earliest start to the
// latest end across the whole week. Only whole slots are emitted: when the
// span is not a multiple of 30 minutes the trailing partial slot is dropped.
func BuildGrid(s Schedule) Grid {
	g := Grid{MinTime: NoBound, MaxTime: NoBound, schedule: s}

	for _, day := range s {
		for _, e := range day {
			start, end := e.StartMinutes(), e.EndMinutes()
			if g.MinTime == NoBound || start < g.MinTime {
				g.MinTime = start
			}
			if g.MaxTime == NoBound || end > g.MaxTime {
				g.MaxTime = end
			}
		}
	}
	if g.MinTime == NoBound {
		return g
	}

	for t := g.MinTime; t+SlotMinutes <= g.MaxTime; t += SlotMinutes {
		g.Slots = append(g.Slots, Slot{Start: t, End: t + SlotMinutes})
	}
	return g
}

// Empty reports whether the grid has no rows to render.
func (g Grid) Empty() bool {
	return len(g.Slots) == 0
}

// Schedule returns the schedule the grid was built from.
func (g Grid) Schedule() Schedule {
	return g.schedule
}

// Cell resolves the cell for day at slotStart.
func (g Grid) Cell(day Weekday, slotStart int) Cell {
	cell := Cell{Kind: CellFree, Day: day, Start: slotStart, End: slotStart + SlotMinutes}

	for _, e := range g.schedule.Day(day) {
		if !e.Contains(slotStart) {
			continue
		}
		cell.Entry = e
		if e.StartMinutes() == slotStart {
			cell.Kind = CellAnchor
			cell.RowSpan = e.Duration() / SlotMinutes
		} else {
			cell.Kind = CellCovered
		}
		return cell
	}
	return cell
}

// Rows returns every cell, one row per slot with Monday..Sunday columns.
func (g Grid) Rows() [][DaysPerWeek]Cell {
	rows := make([][DaysPerWeek]Cell, len(g.Slots))
	for i, slot := range g.Slots {
		for d := range DaysPerWeek {
			rows[i][d] = g.Cell(Weekday(d), slot.Start)
		}
	}
	return rows
}

// SlotIndex returns the row whose slot starts at minute m, or -1.
func (g Grid) SlotIndex(m int) int {
	for i, s := range g.Slots {
		if s.Start == m {
			return i
		}
	}
	return -1
}
