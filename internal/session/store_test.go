package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sasplaza/theater-ticketing/internal/seatmap"
)

func testLayout() *seatmap.Layout {
	vip := seatmap.Section{ID: 2, Name: "VIP", Price: 2400}
	return &seatmap.Layout{
		TotalRows:  1,
		TotalSeats: 3,
		Seats: []seatmap.Seat{
			{ID: 1, RowLabel: "C", SeatNumber: 1, ColumnPosition: 1, Status: seatmap.StatusAvailable, Section: vip},
			{ID: 2, RowLabel: "C", SeatNumber: 2, ColumnPosition: 2, Status: seatmap.StatusAvailable, Section: vip},
			{ID: 3, RowLabel: "C", SeatNumber: 3, ColumnPosition: 3, Status: seatmap.StatusOccupied, Section: vip},
		},
	}
}

func testContext() seatmap.ShowContext {
	return seatmap.ShowContext{MovieRef: "dune-part-two", LayoutID: "sas-plaza-main", Date: "2026-08-30", TimeSlotID: "6"}
}

func TestCreateAndGet(t *testing.T) {
	st := NewStore(time.Minute, 0)
	v, err := st.Create("client-a", testContext(), testLayout())
	require.NoError(t, err)
	assert.NotEmpty(t, v.ID)
	assert.Equal(t, uint64(1), v.Revision)
	assert.Len(t, v.Layout.Seats, 3)
	assert.Zero(t, v.Summary.GrandTotal)

	got, err := st.Get(v.ID)
	require.NoError(t, err)
	assert.Equal(t, v, got)

	_, err = st.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleAdvancesRevisionAndSummary(t *testing.T) {
	st := NewStore(time.Minute, 0)
	v, err := st.Create("client-a", testContext(), testLayout())
	require.NoError(t, err)

	v2, err := st.Toggle(v.ID, 1, v.Revision)
	require.NoError(t, err)
	assert.Equal(t, v.Revision+1, v2.Revision)
	assert.Equal(t, 2400.0, v2.Summary.GrandTotal)
	assert.Equal(t, []string{"C1"}, v2.Summary.Groups[0].SeatLabels)

	// toggle back
	v3, err := st.Toggle(v.ID, 1, v2.Revision)
	require.NoError(t, err)
	assert.Zero(t, v3.Summary.GrandTotal)
}

func TestToggleOccupiedAndUnknownAreNoOps(t *testing.T) {
	st := NewStore(time.Minute, 0)
	v, _ := st.Create("client-a", testContext(), testLayout())

	for _, seatID := range []uint64{3, 999} {
		got, err := st.Toggle(v.ID, seatID, 0)
		require.NoError(t, err)
		assert.Equal(t, v.Revision, got.Revision, "no-op must not advance the revision")
		assert.Zero(t, got.Summary.GrandTotal)
	}
}

func TestToggleStaleRevisionRejected(t *testing.T) {
	st := NewStore(time.Minute, 0)
	v, _ := st.Create("client-a", testContext(), testLayout())

	cur, err := st.Toggle(v.ID, 1, v.Revision)
	require.NoError(t, err)

	// a toggle carrying the old revision must be discarded, not applied
	_, err = st.Toggle(v.ID, 2, v.Revision)
	assert.ErrorIs(t, err, ErrStaleRevision)

	after, err := st.Get(v.ID)
	require.NoError(t, err)
	assert.Equal(t, cur.Summary, after.Summary)
}

func TestSelectionCap(t *testing.T) {
	st := NewStore(time.Minute, 1)
	v, _ := st.Create("client-a", testContext(), testLayout())

	_, err := st.Toggle(v.ID, 1, 0)
	require.NoError(t, err)
	_, err = st.Toggle(v.ID, 2, 0)
	assert.ErrorIs(t, err, seatmap.ErrSelectionLimit)
}

// Last selection wins: a new session for the same client replaces the old
// one, and operations against the superseded session report gone.
func TestCreateReplacesClientSession(t *testing.T) {
	st := NewStore(time.Minute, 0)
	old, _ := st.Create("client-a", testContext(), testLayout())

	newer := testContext()
	newer.Date = "2026-08-31"
	cur, err := st.Create("client-a", newer, testLayout())
	require.NoError(t, err)
	assert.NotEqual(t, old.ID, cur.ID)

	_, err = st.Get(old.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = st.Toggle(old.ID, 1, 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionsExpire(t *testing.T) {
	st := NewStore(10*time.Millisecond, 0)
	v, _ := st.Create("client-a", testContext(), testLayout())

	time.Sleep(20 * time.Millisecond)
	_, err := st.Get(v.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCheckoutPayload(t *testing.T) {
	st := NewStore(time.Minute, 0)
	sc := testContext().WithShowtime("6", "07:00 PM", "English", "3D")
	v, _ := st.Create("client-a", sc, testLayout())
	_, err := st.Toggle(v.ID, 1, 0)
	require.NoError(t, err)
	_, err = st.Toggle(v.ID, 2, 0)
	require.NoError(t, err)

	co, err := st.Checkout(v.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"C1", "C2"}, co.SeatLabels)
	assert.Equal(t, 4800.0, co.GrandTotal)
	assert.Contains(t, co.Query, "seat=C1")
	assert.Contains(t, co.Query, "seat=C2")
	assert.Contains(t, co.Query, "movie=dune-part-two")
	assert.Contains(t, co.Query, "total=4800")
}

// The view must be a snapshot: mutating it does not leak into the store.
func TestViewIsACopy(t *testing.T) {
	st := NewStore(time.Minute, 0)
	v, _ := st.Create("client-a", testContext(), testLayout())
	v.Layout.Seats[0].Status = seatmap.StatusSelected

	fresh, err := st.Get(v.ID)
	require.NoError(t, err)
	assert.Equal(t, seatmap.StatusAvailable, fresh.Layout.Seats[0].Status)
}
