// Package seatmap implements the seat layout model, the seat selection
// state machine and the booking summary aggregator.  The package is pure:
// it performs no I/O and holds no hidden state, so every operation is a
// plain function over seat collections.  Layouts are loaded by a
// LayoutSource (see the repository and fixture packages) and owned by a
// booking session for their lifetime.
package seatmap

import (
	"sort"
	"strconv"
	"strings"
)

// Status enumerates the three states a seat can be in.  A seat is in
// exactly one state at any time.  Occupied is terminal: no user action
// can move a seat out of (or into) that state.
type Status string

const (
	StatusAvailable Status = "available" // free, can be selected
	StatusOccupied  Status = "occupied"  // sold or held externally, unselectable
	StatusSelected  Status = "selected"  // picked by the current user
)

// Valid reports whether s is one of the three declared statuses.
func (s Status) Valid() bool {
	return s == StatusAvailable || s == StatusOccupied || s == StatusSelected
}

// Section is a named, uniformly priced partition of seats (e.g. VIP,
// VVIP).  Price is currency-agnostic; the display currency is applied at
// the presentation layer only.  DisplayColor is a presentation hint and
// must never participate in equality or grouping logic; sections are
// always keyed by ID.
type Section struct {
	ID           uint64  `json:"section_id"`
	Name         string  `json:"section_name"`
	Price        float64 `json:"price"`
	DisplayColor string  `json:"display_color"`
}

// Seat is a single seat in a layout.  (RowLabel, SeatNumber) is unique
// within a layout; ID is unique and stable across the layout's lifetime.
// ColumnPosition is the absolute horizontal slot used to render aisle
// gaps: it may skip integers to express a gap and carries no seat
// semantics.
type Seat struct {
	ID             uint64  `json:"seat_id"`
	RowLabel       string  `json:"row_label"`
	SeatNumber     uint32  `json:"seat_number"`
	ColumnPosition uint32  `json:"column_position"`
	Status         Status  `json:"status"`
	Section        Section `json:"section"`
}

// Label returns the user-facing seat label, the concatenation of the row
// label and seat number (e.g. "A5").
func (s Seat) Label() string {
	return s.RowLabel + strconv.FormatUint(uint64(s.SeatNumber), 10)
}

// Layout is the full set of seats for one (movie, layout, date, time slot)
// combination.  TotalRows and TotalSeats are descriptive metadata from the
// source and are not authoritative; the seat slice is.  A layout with zero
// seats is a valid empty state, not an error.
type Layout struct {
	TotalRows  int    `json:"total_rows"`
	TotalSeats int    `json:"total_seats"`
	Seats      []Seat `json:"seats"`
}

// CountByStatus returns how many seats currently hold the given status.
func (l *Layout) CountByStatus(st Status) int {
	n := 0
	for _, s := range l.Seats {
		if s.Status == st {
			n++
		}
	}
	return n
}

// Row is one row of a section in display order.  Seats are sorted by
// SeatNumber ascending; use RowCells for the physical left-to-right
// ordering with aisle placeholders.
type Row struct {
	Label string `json:"row_label"`
	Seats []Seat `json:"seats"`
}

// SectionGroup pairs a section with its rows.  Groups returned by
// GroupBySection are ordered by section ID so that equal inputs always
// produce equal outputs.
type SectionGroup struct {
	Section Section `json:"section"`
	Rows    []Row   `json:"rows"`
}

// GroupBySection produces the display view of a seat collection: sections
// ordered by ID, rows inside each section ordered by row label, seats
// inside each row ordered by seat number ascending.  Every seat appears in
// exactly one row of exactly one group.
func GroupBySection(seats []Seat) []SectionGroup {
	bySection := make(map[uint64]*SectionGroup)
	rowIndex := make(map[uint64]map[string]int)
	for _, s := range seats {
		g, ok := bySection[s.Section.ID]
		if !ok {
			g = &SectionGroup{Section: s.Section}
			bySection[s.Section.ID] = g
			rowIndex[s.Section.ID] = make(map[string]int)
		}
		idx, ok := rowIndex[s.Section.ID][s.RowLabel]
		if !ok {
			idx = len(g.Rows)
			g.Rows = append(g.Rows, Row{Label: s.RowLabel})
			rowIndex[s.Section.ID][s.RowLabel] = idx
		}
		g.Rows[idx].Seats = append(g.Rows[idx].Seats, s)
	}

	out := make([]SectionGroup, 0, len(bySection))
	for _, g := range bySection {
		sort.Slice(g.Rows, func(i, j int) bool {
			return lessRowLabel(g.Rows[i].Label, g.Rows[j].Label)
		})
		for i := range g.Rows {
			row := g.Rows[i].Seats
			sort.Slice(row, func(a, b int) bool { return row[a].SeatNumber < row[b].SeatNumber })
		}
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Section.ID < out[j].Section.ID })
	return out
}

// lessRowLabel orders row labels the way theaters do: "A" < "B" < ... <
// "Z" < "AA".  Shorter labels sort first; equal lengths compare
// lexically (case-insensitive).
func lessRowLabel(a, b string) bool {
	a, b = strings.ToUpper(a), strings.ToUpper(b)
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

// Cell is one slot in the physical rendering of a row.  Either Seat is
// set, or Aisle is true and the cell is a fixed-width placeholder.
type Cell struct {
	Seat  *Seat `json:"seat,omitempty"`
	Aisle bool  `json:"aisle,omitempty"`
}

// RowCells orders the given row seats by ColumnPosition (physical
// left-to-right) and inserts one aisle placeholder wherever consecutive
// positions differ by more than 1.  The placeholder affects layout only;
// seat state is untouched.  The input slice is not modified.
func RowCells(rowSeats []Seat) []Cell {
	if len(rowSeats) == 0 {
		return nil
	}
	ordered := make([]Seat, len(rowSeats))
	copy(ordered, rowSeats)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].ColumnPosition < ordered[j].ColumnPosition
	})

	cells := make([]Cell, 0, len(ordered))
	for i := range ordered {
		if i > 0 && ordered[i].ColumnPosition > ordered[i-1].ColumnPosition+1 {
			cells = append(cells, Cell{Aisle: true})
		}
		cells = append(cells, Cell{Seat: &ordered[i]})
	}
	return cells
}
