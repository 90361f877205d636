package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/rshade/countrydex/internal/country"
	"github.com/rshade/countrydex/internal/logging"
)

const (
	readHeaderTimeout = 5 * time.Second
	loadingRefresh    = 2 // seconds between loading page reloads
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Fetcher loads the dataset. source.Once.Load satisfies it.
type Fetcher func(ctx context.Context) (*country.Catalog, error)

// Options configures a Server.
type Options struct {
	Logger  zerolog.Logger
	Metrics *Metrics
}

// Server renders the list and detail views over HTTP.
type Server struct {
	catalog atomic.Pointer[country.Catalog]
	logger  zerolog.Logger
	metrics *Metrics
}

// New returns a server with no catalog; it answers "Loading..." until
// SetCatalog or LoadCatalog publishes one.
func New(opts Options) *Server {
	metrics := opts.Metrics
	if metrics == nil {
		metrics = NewMetrics()
	}
	return &Server{
		logger:  logging.ComponentLogger(opts.Logger, "web"),
		metrics: metrics,
	}
}

// SetCatalog publishes cat. It is meant to be called once.
func (s *Server) SetCatalog(cat *country.Catalog) {
	s.catalog.Store(cat)
}

// Catalog returns the published catalog, or nil while loading.
func (s *Server) Catalog() *country.Catalog {
	return s.catalog.Load()
}

// LoadCatalog runs fetch once and publishes the result. A failed fetch is
// logged and the server keeps serving the loading page; only context
// cancellation is returned as an error.
func (s *Server) LoadCatalog(ctx context.Context, fetch Fetcher) error {
	cat, err := fetch(ctx)
	if err != nil {
		s.metrics.ObserveLoad(0, err)
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return err
		}
		s.logger.Error().Err(err).Msg("loading countries failed, pages will keep showing Loading...")
		return nil
	}
	s.metrics.ObserveLoad(cat.Len(), nil)
	s.SetCatalog(cat)
	s.logger.Info().Int("countries", cat.Len()).Msg("catalog published")
	return nil
}

// Router returns the full handler: middleware plus every route.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	s.Register(r)
	return r
}

// Register mounts the page, API and ops endpoints on r.
func (s *Server) Register(r chi.Router) {
	r.Get("/", s.HandleList)
	r.Get("/countries/{code}", s.HandleDetail)

	r.Route("/api", func(r chi.Router) {
		r.Get("/countries", s.HandleAPICountries)
		r.Get("/countries/{code}", s.HandleAPICountry)
		r.Get("/regions", s.HandleAPIRegions)
	})

	r.Get("/healthz", s.HandleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	r.NotFound(s.handleNotFound)
}

// NewHTTPServer wraps handler in an http.Server with header timeouts set.
func NewHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}
