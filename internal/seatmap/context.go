package seatmap

import (
	"fmt"
	"time"
)

// ShowContext holds the currently chosen date, time slot, cinema layout
// and format that scope one seat layout instance.  The seat map is keyed
// by the full tuple (movie, layout, date, time slot) so that one
// showtime's occupancy is never shown under another showtime's selector.
type ShowContext struct {
	MovieRef   string `json:"movie_ref"`
	LayoutID   string `json:"layout_id"`
	Date       string `json:"date"` // ISO YYYY-MM-DD
	TimeSlotID string `json:"time_slot_id,omitempty"`
	Time       string `json:"time,omitempty"`
	Language   string `json:"language,omitempty"`
	Format     string `json:"format,omitempty"`
}

// Key returns the scoping key of this context.  Two contexts with the
// same key refer to the same seat layout instance; a late response for a
// different key must be discarded (last selection wins).
func (sc ShowContext) Key() string {
	return fmt.Sprintf("%s|%s|%s|%s", sc.MovieRef, sc.LayoutID, sc.Date, sc.TimeSlotID)
}

// WithShowtime returns a copy of the context with the showtime display
// fields replaced.  The scoping key is unaffected unless the time slot id
// itself changes.
func (sc ShowContext) WithShowtime(slotID, t, language, format string) ShowContext {
	sc.TimeSlotID = slotID
	sc.Time = t
	sc.Language = language
	sc.Format = format
	return sc
}

// DateOption is one entry in the selectable date strip shown above the
// seat map.  FullDate follows the presentation format of the booking
// pages, e.g. "5 Sep, Friday".
type DateOption struct {
	Index    int    `json:"index"`
	Date     string `json:"date"` // ISO YYYY-MM-DD, the value used in ShowContext
	Day      int    `json:"day"`
	Month    string `json:"month"`
	DayName  string `json:"day_name"`
	FullDate string `json:"full_date"`
}

// Dates generates the date strip: n consecutive days starting at now's
// date.  Index 0 is today.
func Dates(now time.Time, n int) []DateOption {
	out := make([]DateOption, 0, n)
	for i := 0; i < n; i++ {
		d := now.AddDate(0, 0, i)
		out = append(out, DateOption{
			Index:    i,
			Date:     d.Format("2006-01-02"),
			Day:      d.Day(),
			Month:    d.Format("Jan"),
			DayName:  d.Format("Monday"),
			FullDate: fmt.Sprintf("%d %s, %s", d.Day(), d.Format("Jan"), d.Format("Monday")),
		})
	}
	return out
}
