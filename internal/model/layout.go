package model

import (
	"context"
	"errors"

	"github.com/sasplaza/theater-ticketing/internal/seatmap"
)

// ErrMovieNotFound is returned when a movie reference resolves to
// nothing.  Handlers translate it into a 404, distinct from transport
// failures which remain 5xx.
var ErrMovieNotFound = errors.New("movie not found")

// ErrLayoutNotFound is returned when a layout id resolves to no known
// seat layout.  A known layout with zero showtimes for a date is NOT this
// error; that is a valid empty state.
var ErrLayoutNotFound = errors.New("layout not found")

// LayoutRequest identifies the seat layout to materialize for the seat
// selection view.  TimeSlotID may be empty when the caller has not picked
// a showtime yet.
type LayoutRequest struct {
	MovieRef   string `json:"movie_ref"`
	LayoutID   string `json:"layout_id"`
	Date       string `json:"date"` // ISO YYYY-MM-DD
	TimeSlotID string `json:"time_slot_id"`
}

// DisplayLayout is the booking page payload: the movie, the cinemas
// showing it (with their showtimes grouped by format) and the dates the
// client may pick from.  Zero cinemas is an explicit empty state.
type DisplayLayout struct {
	Movie          Movie    `json:"movie"`
	Cinemas        []Cinema `json:"cinemas"`
	AvailableDates []string `json:"available_dates"`
}

// Source supplies the catalog and seat layouts consumed by the booking
// handlers.  Exactly one implementation is active at a time, selected by
// configuration: the deterministic fixture generator or the MySQL-backed
// catalog.  Handlers never branch on which one they talk to.
type Source interface {
	// Movies returns one page of the catalog plus the total match count.
	Movies(ctx context.Context, q MovieQuery) ([]Movie, int, error)
	// MovieByRef resolves a public movie reference.
	MovieByRef(ctx context.Context, ref string) (*Movie, error)
	// DisplayLayout builds the booking page payload for a movie and date.
	DisplayLayout(ctx context.Context, req LayoutRequest) (*DisplayLayout, error)
	// LoadLayout materializes the seat layout for a show context, with
	// every seat carrying its occupancy status as of load time.
	LoadLayout(ctx context.Context, sc seatmap.ShowContext) (*seatmap.Layout, error)
}
