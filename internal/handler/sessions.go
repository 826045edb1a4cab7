// This file defines the booking session endpoints. A session is the
// server-side seat selection view: created for one show context, toggled
// seat by seat, summarized, and finally handed off to checkout. Sessions
// are owned by a client key; opening a new one for the same client
// replaces the old one, so a stale tab can never sell seats.
package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sasplaza/theater-ticketing/internal/model"
	"github.com/sasplaza/theater-ticketing/internal/seatmap"
	"github.com/sasplaza/theater-ticketing/internal/session"
)

// SessionHandler serves the seat selection flow. Layouts come from the
// catalog source at session creation; every later operation runs against
// the session's private copy.
type SessionHandler struct {
	Source model.Source
	Store  *session.Store
}

// createSessionRequest is the body of POST /v1/sessions. ClientKey
// identifies the caller's booking surface (one per device/tab group);
// the remaining fields are the show context.
type createSessionRequest struct {
	ClientKey  string `json:"client_key"`
	MovieRef   string `json:"movie_ref"`
	LayoutID   string `json:"layout_id"`
	Date       string `json:"date"`
	TimeSlotID string `json:"time_slot_id"`
	Time       string `json:"time"`
	Language   string `json:"language"`
	Format     string `json:"format"`
}

// toggleRequest is the body of POST /v1/sessions/:id/toggle. Revision is
// the revision the client last saw; zero skips the staleness check.
type toggleRequest struct {
	SeatID   uint64 `json:"seat_id"`
	Revision uint64 `json:"revision"`
}

// CreateSession loads the seat layout for the requested show context and
// opens a session over it. The response is the full session view
// including the layout with per-seat status, so the client renders from
// it directly.
func (h *SessionHandler) CreateSession(c echo.Context) error {
	ctx := c.Request().Context()

	var req createSessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.ClientKey == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "client_key is required"})
	}
	if req.MovieRef == "" || req.LayoutID == "" || req.Date == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie_ref, layout_id and date are required"})
	}

	sc := seatmap.ShowContext{
		MovieRef:   req.MovieRef,
		LayoutID:   req.LayoutID,
		Date:       req.Date,
		TimeSlotID: req.TimeSlotID,
		Time:       req.Time,
		Language:   req.Language,
		Format:     req.Format,
	}
	layout, err := h.Source.LoadLayout(ctx, sc)
	if errors.Is(err, model.ErrLayoutNotFound) || errors.Is(err, model.ErrMovieNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "layout not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "layout load failed"})
	}

	view, err := h.Store.Create(req.ClientKey, sc, layout)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session create failed"})
	}
	return c.JSON(http.StatusCreated, view)
}

// GetSession returns the current session view. A missing session is
// reported as 410 Gone: it either expired or was replaced by a newer
// session for the same client.
func (h *SessionHandler) GetSession(c echo.Context) error {
	view, err := h.Store.Get(c.Param("id"))
	if errors.Is(err, session.ErrNotFound) {
		return c.JSON(http.StatusGone, echo.Map{"error": "session expired"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session lookup failed"})
	}
	return c.JSON(http.StatusOK, view)
}

// ToggleSeat flips one seat between available and selected. Toggling an
// occupied or unknown seat is a no-op and still returns 200 with the
// unchanged view, so clients need no special casing. A stale revision is
// rejected with 409 carrying the current view for resync; hitting the
// selection cap is a 422.
func (h *SessionHandler) ToggleSeat(c echo.Context) error {
	var req toggleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	view, err := h.Store.Toggle(c.Param("id"), req.SeatID, req.Revision)
	switch {
	case errors.Is(err, session.ErrNotFound):
		return c.JSON(http.StatusGone, echo.Map{"error": "session expired"})
	case errors.Is(err, session.ErrStaleRevision):
		current, getErr := h.Store.Get(c.Param("id"))
		if getErr != nil {
			return c.JSON(http.StatusGone, echo.Map{"error": "session expired"})
		}
		return c.JSON(http.StatusConflict, echo.Map{"error": "stale revision", "session": current})
	case errors.Is(err, seatmap.ErrSelectionLimit):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "selection limit reached"})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "toggle failed"})
	}
	return c.JSON(http.StatusOK, view)
}

// GetSummary returns the booking summary of the current selection.
func (h *SessionHandler) GetSummary(c echo.Context) error {
	sum, err := h.Store.Summary(c.Param("id"))
	if errors.Is(err, session.ErrNotFound) {
		return c.JSON(http.StatusGone, echo.Map{"error": "session expired"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "summary failed"})
	}
	return c.JSON(http.StatusOK, sum)
}

// Checkout builds the handoff payload for the external checkout flow. At
// least one seat must be selected.
func (h *SessionHandler) Checkout(c echo.Context) error {
	out, err := h.Store.Checkout(c.Param("id"))
	if errors.Is(err, session.ErrNotFound) {
		return c.JSON(http.StatusGone, echo.Map{"error": "session expired"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "checkout failed"})
	}
	if len(out.SeatLabels) == 0 {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "no seats selected"})
	}
	return c.JSON(http.StatusOK, out)
}
