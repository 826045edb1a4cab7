// Package repository contains data access logic for the booking catalog.
// This file implements model.Source on top of MySQL: movie listings,
// cinema showtimes and seat layouts with per-show occupancy.  The schema
// mirrors what the booking page consumes:
//
//	movies         – one row per title, ref is the public identifier
//	cinemas        – theaters, each pointing at a seat layout
//	time_slots     – showtimes per cinema and movie
//	layout_sections, layout_seats – the static seat map of a layout
//	seat_occupancy – sold seats keyed by (movie_ref, layout_id, show_date, time_slot_id)
//
// Not-found conditions surface as the model package sentinels so handlers
// can translate them into 404s without inspecting SQL errors.
package repository

import (
	"context"      // context for controlling query lifetime
	"database/sql" // sql provides DB abstraction
	"errors"       // errors for sentinel matching
	"strings"      // strings splits the stored genre list
	"time"         // time anchors the date window

	"github.com/sasplaza/theater-ticketing/internal/model"
	"github.com/sasplaza/theater-ticketing/internal/seatmap"
)

// CatalogRepo serves the movie catalog and seat layouts from MySQL.
type CatalogRepo struct {
	db         *sql.DB
	now        func() time.Time // injectable clock for the date window
	dateWindow int              // number of selectable dates, min 1
}

// NewCatalogRepo constructs a CatalogRepo with the given DB handle.  A
// nil now falls back to time.Now.
func NewCatalogRepo(db *sql.DB, now func() time.Time, dateWindow int) *CatalogRepo {
	if now == nil {
		now = time.Now
	}
	if dateWindow < 1 {
		dateWindow = 7
	}
	return &CatalogRepo{db: db, now: now, dateWindow: dateWindow}
}

// DB exposes the underlying sql.DB.  It allows callers to begin
// transactions spanning multiple repositories.
func (r *CatalogRepo) DB() *sql.DB {
	return r.db
}

// movieColumns is the shared column list for movie selects; scanMovie
// must stay in sync with it.
const movieColumns = `id, ref, title, tagline, description, runtime_minutes, language, rating, release_date, genres, poster_url, backdrop_url, certificate, trailer_url, type`

// scanMovie reads one movie row.  Genres are stored as a comma-separated
// list and split here; an empty column yields an empty slice, not nil.
func scanMovie(row interface{ Scan(...any) error }) (*model.Movie, error) {
	var m model.Movie
	var genres string
	err := row.Scan(
		&m.ID, &m.Ref, &m.Title, &m.Tagline, &m.Description, &m.Runtime,
		&m.Language, &m.Rating, &m.ReleaseDate, &genres,
		&m.PosterURL, &m.BackdropURL, &m.Certificate, &m.TrailerURL, &m.Type,
	)
	if err != nil {
		return nil, err
	}
	m.Genres = []string{}
	for _, g := range strings.Split(genres, ",") {
		if g = strings.TrimSpace(g); g != "" {
			m.Genres = append(m.Genres, g)
		}
	}
	return &m, nil
}

// Movies returns one page of the catalog plus the total match count.
// Type filters the shelf; an empty type lists everything.  A page past
// the end returns an empty slice, not an error.
func (r *CatalogRepo) Movies(ctx context.Context, q model.MovieQuery) ([]model.Movie, int, error) {
	q.Normalize()

	where := ``
	args := []any{}
	if q.Type != "" {
		where = ` WHERE type = ?`
		args = append(args, string(q.Type))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sel := `SELECT ` + movieColumns + ` FROM movies` + where + ` ORDER BY release_date, id LIMIT ? OFFSET ?`
	args = append(args, q.PerPage, (q.Page-1)*q.PerPage)
	rows, err := r.db.QueryContext(ctx, sel, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []model.Movie{}
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// MovieByRef resolves a public movie reference.  It returns
// model.ErrMovieNotFound if there is no matching row.
func (r *CatalogRepo) MovieByRef(ctx context.Context, ref string) (*model.Movie, error) {
	const q = `SELECT ` + movieColumns + ` FROM movies WHERE ref = ?`
	m, err := scanMovie(r.db.QueryRowContext(ctx, q, ref))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrMovieNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// DisplayLayout builds the booking page payload for a movie: the cinemas
// showing it with showtimes grouped by screening format, plus the
// selectable date window.  Coming-soon titles legitimately have zero
// cinemas; that is an empty state, not an error.
func (r *CatalogRepo) DisplayLayout(ctx context.Context, req model.LayoutRequest) (*model.DisplayLayout, error) {
	movie, err := r.MovieByRef(ctx, req.MovieRef)
	if err != nil {
		return nil, err
	}

	dates := seatmap.Dates(r.now(), r.dateWindow)
	available := make([]string, 0, len(dates))
	for _, d := range dates {
		available = append(available, d.Date)
	}

	out := &model.DisplayLayout{Movie: *movie, Cinemas: []model.Cinema{}, AvailableDates: available}
	if movie.Type != model.MovieNowShowing {
		return out, nil
	}

	const q = `SELECT c.id, c.layout_id, c.name, c.address, c.distance,
	                  ts.id, ts.slot_time, ts.format, ts.language, ts.available, ts.filling_fast
	           FROM cinemas c
	           JOIN time_slots ts ON ts.cinema_id = c.id
	           WHERE ts.movie_ref = ?
	           ORDER BY c.id, ts.sort_order, ts.id`
	rows, err := r.db.QueryContext(ctx, q, req.MovieRef)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Cinemas and their formats keep first-seen order, which is the
	// order the query returns rows in.
	var (
		cinemas  []model.Cinema
		current  *model.Cinema
		byFormat map[string]int
	)
	for rows.Next() {
		var cin model.Cinema
		var st model.TimeSlot
		if err := rows.Scan(
			&cin.ID, &cin.LayoutID, &cin.Name, &cin.Address, &cin.Distance,
			&st.ID, &st.Time, &st.Format, &st.Language, &st.Available, &st.FillingFast,
		); err != nil {
			return nil, err
		}
		if current == nil || current.ID != cin.ID {
			cinemas = append(cinemas, cin)
			current = &cinemas[len(cinemas)-1]
			current.Formats = []model.FormatShowtimes{}
			byFormat = map[string]int{}
		}
		idx, seen := byFormat[st.Format]
		if !seen {
			idx = len(current.Formats)
			byFormat[st.Format] = idx
			current.Formats = append(current.Formats, model.FormatShowtimes{Name: st.Format})
		}
		current.Formats[idx].Showtimes = append(current.Formats[idx].Showtimes, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cinemas != nil {
		out.Cinemas = cinemas
	}
	return out, nil
}

// LoadLayout materializes the seat layout for a show context.  The static
// seat map comes from layout_seats joined with its sections; occupancy is
// overlaid per (movie_ref, layout_id, show_date, time_slot_id) so the
// same hall sells independently for every showtime.  An unknown layout id
// returns model.ErrLayoutNotFound.
func (r *CatalogRepo) LoadLayout(ctx context.Context, sc seatmap.ShowContext) (*seatmap.Layout, error) {
	var exists int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM layout_sections WHERE layout_id = ?`, sc.LayoutID).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, model.ErrLayoutNotFound
	}

	const q = `SELECT s.id, s.row_label, s.seat_number, s.column_position,
	                  sec.id, sec.name, sec.price, sec.display_color,
	                  o.seat_id IS NOT NULL
	           FROM layout_seats s
	           JOIN layout_sections sec ON sec.id = s.section_id
	           LEFT JOIN seat_occupancy o
	             ON o.seat_id = s.id
	            AND o.movie_ref = ? AND o.layout_id = ?
	            AND o.show_date = ? AND o.time_slot_id = ?
	           WHERE s.layout_id = ?
	           ORDER BY s.row_label, s.seat_number`
	rows, err := r.db.QueryContext(ctx, q, sc.MovieRef, sc.LayoutID, sc.Date, sc.TimeSlotID, sc.LayoutID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := []seatmap.Seat{}
	rowSet := map[string]bool{}
	for rows.Next() {
		var st seatmap.Seat
		var occupied bool
		if err := rows.Scan(
			&st.ID, &st.RowLabel, &st.SeatNumber, &st.ColumnPosition,
			&st.Section.ID, &st.Section.Name, &st.Section.Price, &st.Section.DisplayColor,
			&occupied,
		); err != nil {
			return nil, err
		}
		st.Status = seatmap.StatusAvailable
		if occupied {
			st.Status = seatmap.StatusOccupied
		}
		rowSet[st.RowLabel] = true
		seats = append(seats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &seatmap.Layout{
		TotalRows:  len(rowSet),
		TotalSeats: len(seats),
		Seats:      seats,
	}, nil
}
