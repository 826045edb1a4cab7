// Package session holds the in-memory booking sessions behind the seat
// selection endpoints.  A session owns one seat layout for its lifetime;
// nothing is persisted and nothing is shared across clients.  Creating a
// session for a client key replaces any previous session for that key, so
// a superseded selection can never resurface (last selection wins).
package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/sasplaza/theater-ticketing/internal/seatmap"
)

// ErrNotFound is returned for unknown or expired session ids.  Handlers
// translate it into 410 Gone so clients know to start a fresh selection.
var ErrNotFound = errors.New("session not found")

// ErrStaleRevision is returned when a toggle carries a revision that no
// longer matches the session.  The toggle is discarded, never applied out
// of order.
var ErrStaleRevision = errors.New("stale session revision")

// Session is one live seat-selection view.  All fields are owned by the
// store; callers only ever see copies via View.
type Session struct {
	id        string
	clientKey string
	context   seatmap.ShowContext
	seats     []seatmap.Seat
	layout    seatmap.Layout // descriptive metadata from the source
	revision  uint64
	expiresAt time.Time
}

// View is the read-only snapshot of a session handed to handlers.
type View struct {
	ID       string              `json:"session_id"`
	Context  seatmap.ShowContext `json:"context"`
	Revision uint64              `json:"revision"`
	Layout   seatmap.Layout      `json:"layout"`
	Summary  seatmap.Summary     `json:"summary"`
}

// Store keeps all live sessions.  Access is serialized by a single
// mutex; every seat-state transition and summary recomputation happens
// synchronously inside it, matching the one-writer model of the seat
// selection view.
type Store struct {
	mu           sync.Mutex
	byID         map[string]*Session
	byClient     map[string]string
	ttl          time.Duration
	maxSelection int
	done         chan struct{}
}

// NewStore builds a Store.  ttl bounds how long an untouched session
// lives; maxSelection caps seats per booking (0 disables the cap).
func NewStore(ttl time.Duration, maxSelection int) *Store {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Store{
		byID:         make(map[string]*Session),
		byClient:     make(map[string]string),
		ttl:          ttl,
		maxSelection: maxSelection,
		done:         make(chan struct{}),
	}
}

// StartJanitor launches a background sweep that drops expired sessions.
// Call Close to stop it.
func (st *Store) StartJanitor(interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-st.done:
				return
			case now := <-t.C:
				st.sweep(now)
			}
		}
	}()
}

// Close stops the janitor.  Sessions themselves need no teardown.
func (st *Store) Close() { close(st.done) }

func (st *Store) sweep(now time.Time) {
	st.mu.Lock()
	defer st.mu.Unlock()
	for id, s := range st.byID {
		if now.After(s.expiresAt) {
			delete(st.byID, id)
			if st.byClient[s.clientKey] == id {
				delete(st.byClient, s.clientKey)
			}
		}
	}
}

// Create registers a fresh session owning the given layout.  Any prior
// session for the same client key is dropped, which implements the
// last-selection-wins guarantee: a response for a superseded scope can
// only land in a session that no longer exists.
func (st *Store) Create(clientKey string, sc seatmap.ShowContext, layout *seatmap.Layout) (View, error) {
	id, err := randomID()
	if err != nil {
		return View{}, err
	}

	seats := make([]seatmap.Seat, len(layout.Seats))
	copy(seats, layout.Seats)

	st.mu.Lock()
	defer st.mu.Unlock()
	if old, ok := st.byClient[clientKey]; ok {
		delete(st.byID, old)
	}
	s := &Session{
		id:        id,
		clientKey: clientKey,
		context:   sc,
		seats:     seats,
		layout:    seatmap.Layout{TotalRows: layout.TotalRows, TotalSeats: layout.TotalSeats},
		revision:  1,
		expiresAt: time.Now().Add(st.ttl),
	}
	st.byID[id] = s
	st.byClient[clientKey] = id
	return st.viewLocked(s), nil
}

// Get returns the current snapshot of a session.
func (st *Store) Get(id string) (View, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, err := st.liveLocked(id)
	if err != nil {
		return View{}, err
	}
	return st.viewLocked(s), nil
}

// Toggle applies the seat selection transition to a session.  revision 0
// skips the optimistic check; any other value must match the session's
// current revision or the toggle is discarded with ErrStaleRevision.
// Occupied and unknown seat ids are no-ops that still succeed (the
// transition function is total) but do not advance the revision.
func (st *Store) Toggle(id string, seatID uint64, revision uint64) (View, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, err := st.liveLocked(id)
	if err != nil {
		return View{}, err
	}
	if revision != 0 && revision != s.revision {
		return View{}, ErrStaleRevision
	}

	next, err := seatmap.ToggleWithLimit(s.seats, seatID, st.maxSelection)
	if err != nil {
		return View{}, err
	}
	changed := false
	for i := range next {
		if next[i].Status != s.seats[i].Status {
			changed = true
			break
		}
	}
	if changed {
		s.seats = next
		s.revision++
	}
	s.expiresAt = time.Now().Add(st.ttl)
	return st.viewLocked(s), nil
}

// Summary recomputes the booking summary for a session.
func (st *Store) Summary(id string) (seatmap.Summary, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, err := st.liveLocked(id)
	if err != nil {
		return seatmap.Summary{}, err
	}
	return seatmap.Summarize(s.seats), nil
}

// Checkout is the navigation handoff to the external checkout flow: the
// selected seat labels, their sections, the show context and the grand
// total, plus the same data url-encoded for a redirect.
type Checkout struct {
	Context    seatmap.ShowContext    `json:"context"`
	Groups     []seatmap.SummaryGroup `json:"groups"`
	SeatLabels []string               `json:"seat_labels"`
	GrandTotal float64                `json:"grand_total"`
	Query      string                 `json:"query"`
}

// Checkout builds the handoff payload from a session's current state.
func (st *Store) Checkout(id string) (Checkout, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, err := st.liveLocked(id)
	if err != nil {
		return Checkout{}, err
	}
	sum := seatmap.Summarize(s.seats)

	var labels []string
	for _, g := range sum.Groups {
		labels = append(labels, g.SeatLabels...)
	}

	q := url.Values{}
	q.Set("movie", s.context.MovieRef)
	q.Set("cinema", s.context.LayoutID)
	q.Set("date", s.context.Date)
	if s.context.TimeSlotID != "" {
		q.Set("time_slot", s.context.TimeSlotID)
	}
	if s.context.Time != "" {
		q.Set("time", s.context.Time)
	}
	if s.context.Format != "" {
		q.Set("format", s.context.Format)
	}
	for _, l := range labels {
		q.Add("seat", l)
	}
	q.Set("total", strconv.FormatFloat(sum.GrandTotal, 'f', -1, 64))

	return Checkout{
		Context:    s.context,
		Groups:     sum.Groups,
		SeatLabels: labels,
		GrandTotal: sum.GrandTotal,
		Query:      q.Encode(),
	}, nil
}

// liveLocked resolves a session id, treating expired entries as gone.
func (st *Store) liveLocked(id string) (*Session, error) {
	s, ok := st.byID[id]
	if !ok || time.Now().After(s.expiresAt) {
		return nil, ErrNotFound
	}
	return s, nil
}

func (st *Store) viewLocked(s *Session) View {
	seats := make([]seatmap.Seat, len(s.seats))
	copy(seats, s.seats)
	return View{
		ID:       s.id,
		Context:  s.context,
		Revision: s.revision,
		Layout: seatmap.Layout{
			TotalRows:  s.layout.TotalRows,
			TotalSeats: s.layout.TotalSeats,
			Seats:      seats,
		},
		Summary: seatmap.Summarize(s.seats),
	}
}

// randomID returns a 32-character hex session token from crypto/rand.
func randomID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
