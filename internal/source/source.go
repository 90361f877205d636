// Package source fetches the country collection from the configured endpoint
// or a local file.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rshade/countrydex/internal/country"
	"github.com/rshade/countrydex/internal/logging"
	"github.com/rshade/countrydex/pkg/version"
)

// maxBodyBytes bounds the decoded payload.
const maxBodyBytes = 32 << 20

// ErrUnexpectedStatus is returned for non-2xx responses.
var ErrUnexpectedStatus = errors.New("unexpected response status")

// Doer is the subset of *http.Client used by Loader.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Loader fetches the dataset. It performs no retries.
type Loader struct {
	location string
	client   Doer
	timeout  time.Duration
	logger   zerolog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithClient replaces the HTTP client.
func WithClient(client Doer) Option {
	return func(l *Loader) { l.client = client }
}

// WithTimeout bounds a single Load. Zero leaves only the caller's deadline.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) { l.timeout = d }
}

// WithLogger sets the logger used for load events.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Loader) { l.logger = logging.ComponentLogger(logger, "source") }
}

// New returns a Loader for location: an http(s) URL, a file:// URL or a
// filesystem path.
func New(location string, opts ...Option) *Loader {
	l := &Loader{
		location: location,
		client:   http.DefaultClient,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Location returns the configured source.
func (l *Loader) Location() string {
	return l.location
}

// Load fetches and decodes the collection and builds the catalog.
func (l *Loader) Load(ctx context.Context) (*country.Catalog, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	start := time.Now()
	body, err := l.open(ctx)
	if err != nil {
		l.logger.Error().Ctx(ctx).Err(err).Str("source", l.location).Msg("country load failed")
		return nil, err
	}
	defer body.Close()

	countries, err := Decode(io.LimitReader(body, maxBodyBytes))
	if err != nil {
		l.logger.Error().Ctx(ctx).Err(err).Str("source", l.location).Msg("country decode failed")
		return nil, err
	}

	l.logger.Info().Ctx(ctx).
		Str("source", l.location).
		Int("countries", len(countries)).
		Dur("elapsed", time.Since(start)).
		Msg("countries loaded")

	return country.NewCatalog(countries), nil
}

// Decode parses a JSON array of country objects.
func Decode(r io.Reader) ([]country.Country, error) {
	var countries []country.Country
	if err := json.NewDecoder(r).Decode(&countries); err != nil {
		return nil, fmt.Errorf("decoding countries: %w", err)
	}
	return countries, nil
}

func (l *Loader) open(ctx context.Context) (io.ReadCloser, error) {
	u, err := url.Parse(l.location)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// Bare paths, including Windows drive letters.
		return openFile(l.location)
	}

	switch strings.ToLower(u.Scheme) {
	case "file":
		return openFile(u.Path)
	case "http", "https":
		return l.get(ctx, u.String())
	default:
		return nil, fmt.Errorf("unsupported source scheme %q", u.Scheme)
	}
}

func (l *Loader) get(ctx context.Context, target string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	if traceID := logging.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Request-Id", traceID)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", target, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: %s returned %s", ErrUnexpectedStatus, target, resp.Status)
	}
	return resp.Body, nil
}

func openFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return f, nil
}

// Once memoizes the first Load so the dataset is fetched exactly once no
// matter how many callers ask.
type Once struct {
	loader *Loader
	once   sync.Once
	cat    *country.Catalog
	err    error
}

// NewOnce wraps loader.
func NewOnce(loader *Loader) *Once {
	return &Once{loader: loader}
}

// Load runs the wrapped Load on first call and returns its result thereafter.
func (o *Once) Load(ctx context.Context) (*country.Catalog, error) {
	o.once.Do(func() {
		o.cat, o.err = o.loader.Load(ctx)
	})
	return o.cat, o.err
}
