package model

// TimeSlot is one bookable showtime of a cinema.  FillingFast and
// Available are display hints derived from occupancy; an unavailable slot
// is rendered but cannot be entered.
type TimeSlot struct {
	ID          string `json:"id"`
	Time        string `json:"time"` // e.g. "07:00 PM"
	Format      string `json:"format"`
	Language    string `json:"language"`
	Available   bool   `json:"available"`
	FillingFast bool   `json:"filling_fast,omitempty"`
}

// FormatShowtimes groups a cinema's showtimes under their screening
// format ("3D", "3D, LUXE", ...), matching how they are presented.
type FormatShowtimes struct {
	Name      string     `json:"name"`
	Showtimes []TimeSlot `json:"showtimes"`
}

// Cinema is one theater offering showtimes for a movie.  LayoutID names
// the seat layout used by its halls and is the value carried into layout
// requests.
type Cinema struct {
	ID       string            `json:"id"`
	LayoutID string            `json:"layout_id"`
	Name     string            `json:"name"`
	Address  string            `json:"address,omitempty"`
	Distance string            `json:"distance,omitempty"`
	Formats  []FormatShowtimes `json:"formats"`
}
