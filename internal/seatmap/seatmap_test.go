package seatmap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatLabel(t *testing.T) {
	s := Seat{RowLabel: "A", SeatNumber: 5}
	assert.Equal(t, "A5", s.Label())
	s = Seat{RowLabel: "AA", SeatNumber: 12}
	assert.Equal(t, "AA12", s.Label())
}

func TestGroupBySectionOrdering(t *testing.T) {
	seats := twoSectionSeats()
	groups := GroupBySection(seats)

	require.Len(t, groups, 2)
	assert.Equal(t, "VVIP", groups[0].Section.Name)
	assert.Equal(t, "VIP", groups[1].Section.Name)

	// rows sorted by label, seats inside each row by seat number
	require.Len(t, groups[0].Rows, 2)
	assert.Equal(t, "A", groups[0].Rows[0].Label)
	assert.Equal(t, "B", groups[0].Rows[1].Label)
	for _, g := range groups {
		for _, r := range g.Rows {
			for i := 1; i < len(r.Seats); i++ {
				assert.Less(t, r.Seats[i-1].SeatNumber, r.Seats[i].SeatNumber)
			}
		}
	}

	// every seat lands in exactly one row of one group
	total := 0
	for _, g := range groups {
		for _, r := range g.Rows {
			total += len(r.Seats)
		}
	}
	assert.Equal(t, len(seats), total)
}

func TestGroupBySectionEmpty(t *testing.T) {
	assert.Empty(t, GroupBySection(nil))
}

func TestLessRowLabel(t *testing.T) {
	assert.True(t, lessRowLabel("A", "B"))
	assert.True(t, lessRowLabel("Z", "AA")) // shorter labels come first
	assert.False(t, lessRowLabel("AB", "AA"))
}

// RowCells must order seats by column position and insert a single aisle
// placeholder per gap, regardless of the gap width.
func TestRowCellsInsertsAislePlaceholders(t *testing.T) {
	sec := Section{ID: 1, Name: "Classic", Price: 1500}
	row := []Seat{
		// out of physical order on purpose; positions 1,2 | 5,6 | 9
		{ID: 5, RowLabel: "A", SeatNumber: 5, ColumnPosition: 9, Section: sec},
		{ID: 1, RowLabel: "A", SeatNumber: 1, ColumnPosition: 1, Section: sec},
		{ID: 2, RowLabel: "A", SeatNumber: 2, ColumnPosition: 2, Section: sec},
		{ID: 3, RowLabel: "A", SeatNumber: 3, ColumnPosition: 5, Section: sec},
		{ID: 4, RowLabel: "A", SeatNumber: 4, ColumnPosition: 6, Section: sec},
	}

	cells := RowCells(row)
	require.Len(t, cells, 7) // 5 seats + 2 aisles

	var shape []string
	for _, c := range cells {
		if c.Aisle {
			shape = append(shape, "|")
		} else {
			shape = append(shape, c.Seat.Label())
		}
	}
	assert.Equal(t, []string{"A1", "A2", "|", "A3", "A4", "|", "A5"}, shape)
}

func TestRowCellsNoGaps(t *testing.T) {
	sec := Section{ID: 1, Name: "Classic", Price: 1500}
	row := []Seat{
		{ID: 1, RowLabel: "A", SeatNumber: 1, ColumnPosition: 1, Section: sec},
		{ID: 2, RowLabel: "A", SeatNumber: 2, ColumnPosition: 2, Section: sec},
	}
	cells := RowCells(row)
	require.Len(t, cells, 2)
	for _, c := range cells {
		assert.False(t, c.Aisle)
	}
	assert.Nil(t, RowCells(nil))
}

func TestShowContextKeyScopesByTimeSlot(t *testing.T) {
	a := ShowContext{MovieRef: "mv-1", LayoutID: "plaza-1", Date: "2026-08-30", TimeSlotID: "18"}
	b := a
	assert.Equal(t, a.Key(), b.Key())

	b.TimeSlotID = "21"
	assert.NotEqual(t, a.Key(), b.Key())

	// display-only showtime fields do not change the scope
	c := a.WithShowtime(a.TimeSlotID, "07:00 PM", "English", "3D")
	assert.Equal(t, a.Key(), c.Key())
}

func TestDatesStrip(t *testing.T) {
	now := time.Date(2026, 8, 30, 15, 4, 5, 0, time.UTC)
	dates := Dates(now, 7)

	require.Len(t, dates, 7)
	assert.Equal(t, "2026-08-30", dates[0].Date)
	assert.Equal(t, "30 Aug, Sunday", dates[0].FullDate)
	assert.Equal(t, "2026-09-05", dates[6].Date)
	for i, d := range dates {
		assert.Equal(t, i, d.Index)
	}
}

func TestLayoutCountByStatus(t *testing.T) {
	l := Layout{Seats: twoSectionSeats()}
	assert.Equal(t, 1, l.CountByStatus(StatusOccupied))
	assert.Equal(t, len(l.Seats)-1, l.CountByStatus(StatusAvailable))
	assert.Equal(t, 0, l.CountByStatus(StatusSelected))
}
