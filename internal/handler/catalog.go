// Package handler exposes HTTP handlers for the booking API. This file
// defines the public catalog endpoints: movie listings, single-movie
// lookup and the display-layout payload the booking page is built from.
// All catalog routes are unauthenticated and safe to cache.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sasplaza/theater-ticketing/internal/model"
)

// CatalogHandler serves the movie catalog from the configured source.
// The source is either the fixture generator or the MySQL repository;
// the handler never knows which.
type CatalogHandler struct {
	Source model.Source
}

// ListMovies returns one page of the catalog. The type query parameter
// filters by shelf ("now_showing" or "coming_soon"); page and per_page
// control paging. A page past the end is a valid empty result, not an
// error.
func (h *CatalogHandler) ListMovies(c echo.Context) error {
	ctx := c.Request().Context()

	q := model.MovieQuery{Type: model.MovieType(c.QueryParam("type"))}
	if q.Type != "" && q.Type != model.MovieNowShowing && q.Type != model.MovieComingSoon {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid type"})
	}
	q.Page, _ = strconv.Atoi(c.QueryParam("page"))
	q.PerPage, _ = strconv.Atoi(c.QueryParam("per_page"))
	q.Normalize()

	movies, total, err := h.Source.Movies(ctx, q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "catalog unavailable"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items":    movies,
		"total":    total,
		"page":     q.Page,
		"per_page": q.PerPage,
	})
}

// GetMovie resolves a single movie by its public reference.
func (h *CatalogHandler) GetMovie(c echo.Context) error {
	ctx := c.Request().Context()

	movie, err := h.Source.MovieByRef(ctx, c.Param("ref"))
	if errors.Is(err, model.ErrMovieNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "catalog unavailable"})
	}
	return c.JSON(http.StatusOK, movie)
}

// DisplayLayout builds the booking page payload for a movie: the cinemas
// showing it, their showtimes grouped by format, and the selectable date
// window. An unknown movie is a 404; a known movie with no cinemas (a
// coming-soon title) returns 200 with an empty cinemas array.
func (h *CatalogHandler) DisplayLayout(c echo.Context) error {
	ctx := c.Request().Context()

	var req model.LayoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.MovieRef == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie_ref is required"})
	}

	payload, err := h.Source.DisplayLayout(ctx, req)
	if errors.Is(err, model.ErrMovieNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "catalog unavailable"})
	}
	return c.JSON(http.StatusOK, payload)
}
