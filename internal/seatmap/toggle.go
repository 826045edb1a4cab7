package seatmap

import "errors"

// ErrSelectionLimit is returned by ToggleWithLimit when selecting one more
// seat would exceed the configured cap.  Plain Toggle never returns an
// error; the transition function is total over its input domain.
var ErrSelectionLimit = errors.New("selection limit exceeded")

// Toggle applies the single user-triggered transition to a seat collection
// and returns the updated collection.  The function is total and
// side-effect free:
//
//	available -> selected
//	selected  -> available
//	occupied  -> unchanged (no-op)
//	unknown id -> unchanged (no-op)
//
// The input slice is never mutated.  When a transition happens, exactly
// one seat's status changes and every other element of the returned slice
// is identical in value to the input.  When nothing changes the input
// slice is returned as-is.
func Toggle(seats []Seat, seatID uint64) []Seat {
	for i := range seats {
		if seats[i].ID != seatID {
			continue
		}
		switch seats[i].Status {
		case StatusAvailable:
			return withStatus(seats, i, StatusSelected)
		case StatusSelected:
			return withStatus(seats, i, StatusAvailable)
		default:
			// occupied: occupancy is a given, the user cannot overwrite it
			return seats
		}
	}
	return seats
}

// ToggleWithLimit behaves like Toggle but refuses to select a seat when
// the number of selected seats is already max.  A max of 0 disables the
// cap.  Deselecting and no-op cases are never limited.
func ToggleWithLimit(seats []Seat, seatID uint64, max int) ([]Seat, error) {
	if max > 0 {
		for i := range seats {
			if seats[i].ID == seatID && seats[i].Status == StatusAvailable {
				if countSelected(seats) >= max {
					return seats, ErrSelectionLimit
				}
				break
			}
		}
	}
	return Toggle(seats, seatID), nil
}

// withStatus copies the seat slice and sets one seat's status.
func withStatus(seats []Seat, i int, st Status) []Seat {
	out := make([]Seat, len(seats))
	copy(out, seats)
	out[i].Status = st
	return out
}

func countSelected(seats []Seat) int {
	n := 0
	for _, s := range seats {
		if s.Status == StatusSelected {
			n++
		}
	}
	return n
}

// Selected returns the subset of seats with status selected, in input
// order.  The result is a fresh slice; the input is not modified.
func Selected(seats []Seat) []Seat {
	var out []Seat
	for _, s := range seats {
		if s.Status == StatusSelected {
			out = append(out, s)
		}
	}
	return out
}
