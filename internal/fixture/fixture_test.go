package fixture

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sasplaza/theater-ticketing/internal/model"
	"github.com/sasplaza/theater-ticketing/internal/seatmap"
)

func fixedClock() time.Time {
	return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
}

func demoContext() seatmap.ShowContext {
	return seatmap.ShowContext{
		MovieRef: "avatar-fire-and-ash",
		LayoutID: demoLayoutID,
		Date:     "2026-08-30",
	}
}

func TestLoadLayoutIsDeterministic(t *testing.T) {
	c := New(fixedClock)
	first, err := c.LoadLayout(context.Background(), demoContext())
	require.NoError(t, err)
	second, err := c.LoadLayout(context.Background(), demoContext())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLoadLayoutShape(t *testing.T) {
	c := New(fixedClock)
	l, err := c.LoadLayout(context.Background(), demoContext())
	require.NoError(t, err)

	assert.Equal(t, 11, l.TotalRows)
	assert.Equal(t, 11*13, l.TotalSeats)
	assert.Len(t, l.Seats, l.TotalSeats)
	assert.Equal(t, len(occupiedSeats), l.CountByStatus(seatmap.StatusOccupied))
	assert.Zero(t, l.CountByStatus(seatmap.StatusSelected))

	// (rowLabel, seatNumber) unique; seat ids unique
	seen := map[string]bool{}
	ids := map[uint64]bool{}
	for _, s := range l.Seats {
		require.False(t, seen[s.Label()], "duplicate label %s", s.Label())
		require.False(t, ids[s.ID], "duplicate id %d", s.ID)
		seen[s.Label()] = true
		ids[s.ID] = true
	}
	assert.True(t, seen["L13"])
	assert.False(t, seen["I1"], "row letter I must be skipped")
}

func TestLoadLayoutCenterAisle(t *testing.T) {
	c := New(fixedClock)
	l, err := c.LoadLayout(context.Background(), demoContext())
	require.NoError(t, err)

	groups := seatmap.GroupBySection(l.Seats)
	require.NotEmpty(t, groups)
	row := groups[0].Rows[0]
	cells := seatmap.RowCells(row.Seats)
	require.Len(t, cells, 14) // 13 seats + 1 aisle

	aisles := 0
	for i, cell := range cells {
		if cell.Aisle {
			aisles++
			assert.Equal(t, 7, i, "aisle must sit after seat 7")
		}
	}
	assert.Equal(t, 1, aisles)
}

func TestLoadLayoutUnknownLayout(t *testing.T) {
	c := New(fixedClock)
	sc := demoContext()
	sc.LayoutID = "no-such-hall"
	_, err := c.LoadLayout(context.Background(), sc)
	assert.ErrorIs(t, err, model.ErrLayoutNotFound)
}

func TestMoviesPagingAndFilter(t *testing.T) {
	c := New(fixedClock)

	all, total, err := c.Movies(context.Background(), model.MovieQuery{})
	require.NoError(t, err)
	assert.Equal(t, len(all), total)

	now, totalNow, err := c.Movies(context.Background(), model.MovieQuery{Type: model.MovieNowShowing})
	require.NoError(t, err)
	assert.Less(t, totalNow, total)
	for _, m := range now {
		assert.Equal(t, model.MovieNowShowing, m.Type)
	}

	// page past the end is an empty page, not an error
	empty, _, err := c.Movies(context.Background(), model.MovieQuery{Page: 99})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMovieByRef(t *testing.T) {
	c := New(fixedClock)
	m, err := c.MovieByRef(context.Background(), "dune-part-two")
	require.NoError(t, err)
	assert.Equal(t, "Dune: Part Two", m.Title)

	_, err = c.MovieByRef(context.Background(), "missing")
	assert.ErrorIs(t, err, model.ErrMovieNotFound)
}

func TestDisplayLayout(t *testing.T) {
	c := New(fixedClock)

	dl, err := c.DisplayLayout(context.Background(), model.LayoutRequest{MovieRef: "avatar-fire-and-ash", Date: "2026-08-30"})
	require.NoError(t, err)
	require.Len(t, dl.Cinemas, 1)
	assert.Equal(t, demoLayoutID, dl.Cinemas[0].LayoutID)
	assert.Len(t, dl.AvailableDates, 7)
	assert.Equal(t, "2026-08-30", dl.AvailableDates[0])
	require.NotEmpty(t, dl.Cinemas[0].Formats)

	// coming-soon titles have showtimes nowhere yet: empty, not an error
	dl, err = c.DisplayLayout(context.Background(), model.LayoutRequest{MovieRef: "gladiator-ii"})
	require.NoError(t, err)
	assert.Empty(t, dl.Cinemas)

	_, err = c.DisplayLayout(context.Background(), model.LayoutRequest{MovieRef: "missing"})
	assert.ErrorIs(t, err, model.ErrMovieNotFound)
}
