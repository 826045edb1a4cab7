package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sasplaza/theater-ticketing/internal/fixture"
	"github.com/sasplaza/theater-ticketing/internal/model"
)

// fixedNow pins the fixture clock so date windows are stable.
func fixedNow() time.Time {
	return time.Date(2025, time.August, 30, 12, 0, 0, 0, time.UTC)
}

func newCatalogHandler() *CatalogHandler {
	return &CatalogHandler{Source: fixture.New(fixedNow)}
}

func TestListMoviesByType(t *testing.T) {
	h := newCatalogHandler()
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/v1/movies?type=now_showing", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.ListMovies(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Items []model.Movie `json:"items"`
		Total int           `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 4, body.Total)
	for _, m := range body.Items {
		assert.Equal(t, model.MovieNowShowing, m.Type)
	}
}

func TestListMoviesInvalidType(t *testing.T) {
	h := newCatalogHandler()
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/v1/movies?type=bogus", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.ListMovies(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListMoviesPastEndPageIsEmpty(t *testing.T) {
	h := newCatalogHandler()
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/v1/movies?page=99", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.ListMovies(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Items []model.Movie `json:"items"`
		Total int           `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body.Items)
	assert.Equal(t, 6, body.Total)
}

func TestGetMovie(t *testing.T) {
	h := newCatalogHandler()
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/movies/:ref")
	c.SetParamNames("ref")
	c.SetParamValues("dune-part-two")

	require.NoError(t, h.GetMovie(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var m model.Movie
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	assert.Equal(t, "Dune: Part Two", m.Title)
}

func TestGetMovieNotFound(t *testing.T) {
	h := newCatalogHandler()
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/movies/:ref")
	c.SetParamNames("ref")
	c.SetParamValues("no-such-movie")

	require.NoError(t, h.GetMovie(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func postJSON(e *echo.Echo, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestDisplayLayout(t *testing.T) {
	h := newCatalogHandler()
	e := echo.New()

	c, rec := postJSON(e, "/v1/booking/display-layout", `{"movie_ref":"dune-part-two","date":"2025-08-30"}`)
	require.NoError(t, h.DisplayLayout(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var payload model.DisplayLayout
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Cinemas, 1)
	assert.Equal(t, "SAS Plaza Cinemas", payload.Cinemas[0].Name)
	assert.Len(t, payload.AvailableDates, 7)
	assert.NotEmpty(t, payload.Cinemas[0].Formats)
}

func TestDisplayLayoutComingSoonHasNoCinemas(t *testing.T) {
	h := newCatalogHandler()
	e := echo.New()

	c, rec := postJSON(e, "/v1/booking/display-layout", `{"movie_ref":"gladiator-ii"}`)
	require.NoError(t, h.DisplayLayout(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var payload model.DisplayLayout
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Empty(t, payload.Cinemas)
	assert.JSONEq(t, `[]`, string(mustMarshal(t, payload.Cinemas)))
}

func TestDisplayLayoutUnknownMovie(t *testing.T) {
	h := newCatalogHandler()
	e := echo.New()

	c, rec := postJSON(e, "/v1/booking/display-layout", `{"movie_ref":"no-such-movie"}`)
	require.NoError(t, h.DisplayLayout(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDisplayLayoutMissingRef(t *testing.T) {
	h := newCatalogHandler()
	e := echo.New()

	c, rec := postJSON(e, "/v1/booking/display-layout", `{}`)
	require.NoError(t, h.DisplayLayout(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func mustMarshal(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}
