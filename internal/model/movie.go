package model

// MovieType distinguishes the two catalog shelves shown on the landing
// page.
type MovieType string

const (
	MovieNowShowing MovieType = "now_showing"
	MovieComingSoon MovieType = "coming_soon"
)

// Movie describes one catalog entry.  Ref is the stable public
// identifier used in URLs and layout requests; ID is internal.
//
// Fields:
//  ID          – primary key identifier.
//  Ref         – public movie reference (e.g. "avatar-fire-and-ash").
//  Title       – display title.
//  Tagline     – optional marketing line.
//  Description – synopsis, may be empty.
//  Runtime     – running time in minutes, 0 when unknown.
//  Language    – primary audio language.
//  Rating      – aggregate score out of 10, 0 when unrated.
//  ReleaseDate – ISO date string, may be empty for unscheduled titles.
//  Genres      – genre labels.
//  PosterURL   – poster artwork location.
//  BackdropURL – wide artwork location.
//  Certificate – age certificate label (e.g. "U", "PG").
//  TrailerURL  – optional trailer link.
//  Type        – now_showing or coming_soon.
type Movie struct {
	ID          uint64    `json:"id"`
	Ref         string    `json:"movie_ref"`
	Title       string    `json:"title"`
	Tagline     string    `json:"tagline,omitempty"`
	Description string    `json:"description,omitempty"`
	Runtime     int       `json:"runtime,omitempty"`
	Language    string    `json:"language"`
	Rating      float64   `json:"rating,omitempty"`
	ReleaseDate string    `json:"release_date,omitempty"`
	Genres      []string  `json:"genres"`
	PosterURL   string    `json:"poster_url,omitempty"`
	BackdropURL string    `json:"backdrop_url,omitempty"`
	Certificate string    `json:"certificate,omitempty"`
	TrailerURL  string    `json:"trailer_url,omitempty"`
	Type        MovieType `json:"type"`
}

// MovieQuery selects a page of the catalog.  Type may be empty to list
// every title.
type MovieQuery struct {
	Type    MovieType
	Page    int
	PerPage int
}

// Normalize clamps paging values to sane bounds.
func (q *MovieQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = 10
	}
	if q.PerPage > 50 {
		q.PerPage = 50
	}
}
