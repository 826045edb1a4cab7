package seatmap

import "sort"

// SummaryGroup is the per-section breakdown of the currently selected
// seats.  Subtotal is always len(SeatLabels) * UnitPrice.
type SummaryGroup struct {
	SectionID   uint64   `json:"section_id"`
	SectionName string   `json:"section_name"`
	UnitPrice   float64  `json:"unit_price"`
	SeatLabels  []string `json:"seat_labels"`
	Subtotal    float64  `json:"subtotal"`
}

// Summary is the derived, section-grouped price breakdown of the current
// selection.  Consumers must treat it as the single source of truth for
// price display and never recompute totals from raw seat state.
type Summary struct {
	Groups     []SummaryGroup `json:"groups"`
	SeatCount  int            `json:"seat_count"`
	GrandTotal float64        `json:"grand_total"`
}

// Summarize computes the booking summary from a seat collection.  The
// caller may pass the full collection or just the selected subset; the
// function filters internally so it is correct either way.  Grouping keys
// on Section.ID (never name, which may repeat) and groups are ordered by
// that ID, so equal inputs always yield equal outputs.  Zero selected
// seats produce an empty group list and a grand total of 0, the initial
// state, not an error.  Seat state is only read, never mutated.
func Summarize(seats []Seat) Summary {
	type bucket struct {
		section Section
		seats   []Seat
	}
	buckets := make(map[uint64]*bucket)
	count := 0
	for _, s := range seats {
		if s.Status != StatusSelected {
			continue
		}
		count++
		b, ok := buckets[s.Section.ID]
		if !ok {
			b = &bucket{section: s.Section}
			buckets[s.Section.ID] = b
		}
		b.seats = append(b.seats, s)
	}

	ids := make([]uint64, 0, len(buckets))
	for id := range buckets {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	sum := Summary{Groups: make([]SummaryGroup, 0, len(ids)), SeatCount: count}
	for _, id := range ids {
		b := buckets[id]
		sort.Slice(b.seats, func(i, j int) bool {
			if b.seats[i].RowLabel != b.seats[j].RowLabel {
				return lessRowLabel(b.seats[i].RowLabel, b.seats[j].RowLabel)
			}
			return b.seats[i].SeatNumber < b.seats[j].SeatNumber
		})
		labels := make([]string, 0, len(b.seats))
		for _, s := range b.seats {
			labels = append(labels, s.Label())
		}
		subtotal := float64(len(b.seats)) * b.section.Price
		sum.Groups = append(sum.Groups, SummaryGroup{
			SectionID:   b.section.ID,
			SectionName: b.section.Name,
			UnitPrice:   b.section.Price,
			SeatLabels:  labels,
			Subtotal:    subtotal,
		})
		sum.GrandTotal += subtotal
	}
	return sum
}
