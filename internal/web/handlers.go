package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/rshade/countrydex/internal/country"
)

const siteTitle = "Where in the world?"

type page struct {
	Title string
	// Refresh, when non-zero, reloads the page after that many seconds.
	Refresh int
}

type card struct {
	Code  string
	Name  string
	Flag  string
	Facts []country.Fact
}

type listPage struct {
	page
	Query     country.Query
	Regions   []string
	// UnknownRegion is a requested region absent from Regions, kept selected.
	UnknownRegion string
	Countries     []card
	Total     int
}

type detailPage struct {
	page
	View country.DetailView
}

type notFoundPage struct {
	page
	Code string
}

// HandleList handles GET / with optional q and region query parameters.
func (s *Server) HandleList(w http.ResponseWriter, r *http.Request) {
	cat := s.catalog.Load()
	if cat == nil {
		s.renderLoading(w, r)
		return
	}

	q := queryFrom(r)
	matches := cat.Filter(q)
	cards := make([]card, 0, len(matches))
	for i := range matches {
		c := &matches[i]
		cards = append(cards, card{
			Code:  c.Alpha3Code,
			Name:  c.Name,
			Flag:  c.Flag,
			Facts: country.SummaryFacts(c),
		})
	}

	regions := cat.Regions()
	unknownRegion := ""
	if q.Region != "" && !slices.Contains(regions, q.Region) {
		unknownRegion = q.Region
	}

	s.render(w, r, http.StatusOK, "list", listPage{
		page:          page{Title: siteTitle},
		Query:         q,
		Regions:       regions,
		UnknownRegion: unknownRegion,
		Countries:     cards,
		Total:         cat.Len(),
	})
}

// HandleDetail handles GET /countries/{code}.
func (s *Server) HandleDetail(w http.ResponseWriter, r *http.Request) {
	cat := s.catalog.Load()
	if cat == nil {
		s.renderLoading(w, r)
		return
	}

	code := chi.URLParam(r, "code")
	view, err := cat.Detail(code)
	if errors.Is(err, country.ErrNotFound) {
		s.render(w, r, http.StatusNotFound, "notfound", notFoundPage{
			page: page{Title: siteTitle},
			Code: code,
		})
		return
	}
	logMissingBorders(zerolog.Ctx(r.Context()), view)

	s.render(w, r, http.StatusOK, "detail", detailPage{
		page: page{Title: view.Country.Name + " | " + siteTitle},
		View: view,
	})
}

// HandleAPICountries handles GET /api/countries with the same filters as the
// list page.
func (s *Server) HandleAPICountries(w http.ResponseWriter, r *http.Request) {
	cat := s.catalog.Load()
	if cat == nil {
		writeLoadingJSON(w)
		return
	}
	writeJSON(w, http.StatusOK, cat.Filter(queryFrom(r)))
}

// HandleAPICountry handles GET /api/countries/{code}.
func (s *Server) HandleAPICountry(w http.ResponseWriter, r *http.Request) {
	cat := s.catalog.Load()
	if cat == nil {
		writeLoadingJSON(w)
		return
	}

	view, err := cat.Detail(chi.URLParam(r, "code"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	logMissingBorders(zerolog.Ctx(r.Context()), view)
	writeJSON(w, http.StatusOK, view)
}

// HandleAPIRegions handles GET /api/regions.
func (s *Server) HandleAPIRegions(w http.ResponseWriter, r *http.Request) {
	cat := s.catalog.Load()
	if cat == nil {
		writeLoadingJSON(w)
		return
	}
	writeJSON(w, http.StatusOK, cat.Regions())
}

// HandleHealth handles GET /healthz. The process is healthy while loading.
func (s *Server) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	body := map[string]any{"status": "ok", "loaded": false, "countries": 0}
	if cat := s.catalog.Load(); cat != nil {
		body["loaded"] = true
		body["countries"] = cat.Len()
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusNotFound, "notfound", notFoundPage{page: page{Title: siteTitle}})
}

func (s *Server) renderLoading(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusServiceUnavailable, "loading", page{Title: siteTitle, Refresh: loadingRefresh})
}

// render executes a template into a buffer so a failure never leaves a
// half-written page behind.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("template", name).Msg("rendering page failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func queryFrom(r *http.Request) country.Query {
	values := r.URL.Query()
	return country.Query{Search: values.Get("q"), Region: values.Get("region")}
}

func logMissingBorders(logger *zerolog.Logger, view country.DetailView) {
	for _, code := range view.MissingBorders {
		logger.Warn().
			Str("country", view.Country.Alpha3Code).
			Str("border", code).
			Msg("border country missing from dataset, skipping")
	}
}

func writeLoadingJSON(w http.ResponseWriter) {
	w.Header().Set("Retry-After", "2")
	writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "Loading..."})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
