// Package fixture provides the deterministic catalog and seat-layout
// source.  It backs tests and the offline demo mode: every call with the
// same inputs produces the same movies, showtimes and seat map, with a
// fixed set of pre-occupied seats.  The package implements model.Source
// and is selected with LAYOUT_SOURCE=fixture.
package fixture

import (
	"context"
	"strconv"
	"time"

	"github.com/sasplaza/theater-ticketing/internal/model"
	"github.com/sasplaza/theater-ticketing/internal/seatmap"
)

// Catalog is the fixture implementation of model.Source.  The zero value
// is not usable; construct with New.
type Catalog struct {
	now    func() time.Time
	movies []model.Movie
}

// New returns a Catalog generating dates relative to the supplied clock.
// Pass nil to use time.Now.
func New(now func() time.Time) *Catalog {
	if now == nil {
		now = time.Now
	}
	return &Catalog{now: now, movies: fixtureMovies()}
}

// fixtureMovies returns the static demo catalog.  IDs and refs are
// stable; callers must not mutate the returned slice.
func fixtureMovies() []model.Movie {
	return []model.Movie{
		{
			ID: 1, Ref: "avatar-fire-and-ash", Title: "AVATAR: FIRE AND ASH",
			Tagline:  "Return to Pandora.",
			Runtime:  165, Language: "English", Rating: 8.5,
			ReleaseDate: "2024-12-20",
			Genres:      []string{"Sci-Fi", "Action", "Adventure"},
			Certificate: "U", Type: model.MovieNowShowing,
		},
		{
			ID: 2, Ref: "dune-part-two", Title: "Dune: Part Two",
			Runtime: 166, Language: "English", Rating: 8.8,
			ReleaseDate: "2024-03-01",
			Genres:      []string{"Sci-Fi", "Adventure"},
			Certificate: "PG", Type: model.MovieNowShowing,
		},
		{
			ID: 3, Ref: "kung-fu-panda-4", Title: "Kung Fu Panda 4",
			Runtime: 94, Language: "English", Rating: 7.2,
			ReleaseDate: "2024-03-08",
			Genres:      []string{"Animation", "Comedy"},
			Certificate: "U", Type: model.MovieNowShowing,
		},
		{
			ID: 4, Ref: "godzilla-x-kong", Title: "Godzilla x Kong",
			Runtime: 115, Language: "English", Rating: 7.0,
			ReleaseDate: "2024-03-29",
			Genres:      []string{"Action", "Sci-Fi"},
			Certificate: "PG", Type: model.MovieNowShowing,
		},
		{
			ID: 5, Ref: "gladiator-ii", Title: "Gladiator II",
			Runtime: 148, Language: "English", Rating: 7.5,
			ReleaseDate: "2024-11-22",
			Genres:      []string{"Action", "Drama"},
			Certificate: "PG", Type: model.MovieComingSoon,
		},
		{
			ID: 6, Ref: "the-wild-robot", Title: "The Wild Robot",
			Runtime: 102, Language: "English", Rating: 8.2,
			ReleaseDate: "2024-09-27",
			Genres:      []string{"Animation", "Family"},
			Certificate: "U", Type: model.MovieComingSoon,
		},
	}
}

// Movies returns one page of the demo catalog filtered by type.
func (c *Catalog) Movies(_ context.Context, q model.MovieQuery) ([]model.Movie, int, error) {
	q.Normalize()
	var matched []model.Movie
	for _, m := range c.movies {
		if q.Type == "" || m.Type == q.Type {
			matched = append(matched, m)
		}
	}
	total := len(matched)
	start := (q.Page - 1) * q.PerPage
	if start >= total {
		return []model.Movie{}, total, nil
	}
	end := start + q.PerPage
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

// MovieByRef resolves a movie by its public reference or numeric id
// string.
func (c *Catalog) MovieByRef(_ context.Context, ref string) (*model.Movie, error) {
	for _, m := range c.movies {
		if m.Ref == ref {
			cp := m
			return &cp, nil
		}
	}
	return nil, model.ErrMovieNotFound
}

// demoLayoutID names the single seat layout the fixture knows about.
const demoLayoutID = "sas-plaza-main"

// showtimes is the static showtime strip of the demo cinema.
var showtimes = []model.TimeSlot{
	{ID: "1", Time: "02:15 PM", Language: "English", Format: "3D, LUXE", Available: true},
	{ID: "2", Time: "02:30 PM", Language: "English", Format: "3D", Available: true},
	{ID: "3", Time: "04:35 PM", Language: "English", Format: "3D", Available: true, FillingFast: true},
	{ID: "4", Time: "06:15 PM", Language: "English", Format: "3D, LUXE", Available: true},
	{ID: "5", Time: "06:30 PM", Language: "English", Format: "3D", Available: true},
	{ID: "6", Time: "07:00 PM", Language: "English", Format: "3D", Available: true, FillingFast: true},
	{ID: "7", Time: "10:05 PM", Language: "English", Format: "3D, LUXE", Available: true},
	{ID: "8", Time: "10:30 PM", Language: "English", Format: "3D", Available: true},
	{ID: "9", Time: "10:35 PM", Language: "English", Format: "3D", Available: false},
	{ID: "10", Time: "10:45 PM", Language: "Tamil", Format: "LUXE", Available: true},
}

// DisplayLayout builds the booking payload: the requested movie, the demo
// cinema with its showtimes grouped by format, and a seven-day date
// window.  Coming-soon titles have no cinemas yet, which is a valid empty
// state.
func (c *Catalog) DisplayLayout(ctx context.Context, req model.LayoutRequest) (*model.DisplayLayout, error) {
	movie, err := c.MovieByRef(ctx, req.MovieRef)
	if err != nil {
		return nil, err
	}

	dates := seatmap.Dates(c.now(), 7)
	available := make([]string, 0, len(dates))
	for _, d := range dates {
		available = append(available, d.Date)
	}

	out := &model.DisplayLayout{Movie: *movie, AvailableDates: available}
	if movie.Type != model.MovieNowShowing {
		out.Cinemas = []model.Cinema{}
		return out, nil
	}

	byFormat := map[string][]model.TimeSlot{}
	var order []string
	for _, st := range showtimes {
		if _, seen := byFormat[st.Format]; !seen {
			order = append(order, st.Format)
		}
		byFormat[st.Format] = append(byFormat[st.Format], st)
	}
	formats := make([]model.FormatShowtimes, 0, len(order))
	for _, name := range order {
		formats = append(formats, model.FormatShowtimes{Name: name, Showtimes: byFormat[name]})
	}

	out.Cinemas = []model.Cinema{{
		ID:       "sas-plaza",
		LayoutID: demoLayoutID,
		Name:     "SAS Plaza Cinemas",
		Address:  "Main Street, Trincomalee",
		Distance: "1.2 km",
		Formats:  formats,
	}}
	return out, nil
}

// occupiedSeats lists the pre-sold seat labels of the demo layout.
var occupiedSeats = map[string]bool{
	"A11": true, "B11": true, "B9": true, "C11": true, "C4": true, "C1": true,
	"D11": true, "D9": true, "E9": true, "F11": true, "G11": true,
	"H11": true, "H9": true, "H3": true, "H2": true,
	"J11": true, "J9": true, "K11": true, "K9": true,
}

// Section bands of the demo layout.  Rows skip the letter I, as theaters
// commonly do.
var (
	rowLabels = []string{"A", "B", "C", "D", "E", "F", "G", "H", "J", "K", "L"}

	sectionClassic  = seatmap.Section{ID: 1, Name: "Classic", Price: 1500, DisplayColor: "#9CA3AF"}
	sectionPrime    = seatmap.Section{ID: 2, Name: "Prime", Price: 1500, DisplayColor: "#E10600"}
	sectionSuperior = seatmap.Section{ID: 3, Name: "Superior", Price: 1500, DisplayColor: "#F59E0B"}
)

const seatsPerRow = 13

// LoadLayout generates the demo seat map: 11 rows of 13 seats with a
// center aisle after seat 7 and a fixed occupied set.  The layout is the
// same for every date and time slot; only the scope changes.  Unknown
// layout ids return ErrLayoutNotFound so callers can distinguish a bad
// reference from an empty layout.
func (c *Catalog) LoadLayout(_ context.Context, sc seatmap.ShowContext) (*seatmap.Layout, error) {
	if sc.LayoutID != demoLayoutID {
		return nil, model.ErrLayoutNotFound
	}

	seats := make([]seatmap.Seat, 0, len(rowLabels)*seatsPerRow)
	id := uint64(0)
	for rowIdx, label := range rowLabels {
		section := sectionClassic
		switch {
		case rowIdx >= 8:
			section = sectionSuperior
		case rowIdx >= 3:
			section = sectionPrime
		}
		for n := uint32(1); n <= seatsPerRow; n++ {
			id++
			// one-column gap after seat 7 renders the center aisle
			col := n
			if n > 7 {
				col = n + 1
			}
			status := seatmap.StatusAvailable
			if occupiedSeats[label+strconv.FormatUint(uint64(n), 10)] {
				status = seatmap.StatusOccupied
			}
			seats = append(seats, seatmap.Seat{
				ID:             id,
				RowLabel:       label,
				SeatNumber:     n,
				ColumnPosition: col,
				Status:         status,
				Section:        section,
			})
		}
	}
	return &seatmap.Layout{
		TotalRows:  len(rowLabels),
		TotalSeats: len(seats),
		Seats:      seats,
	}, nil
}
