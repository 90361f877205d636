package web_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/countrydex/internal/country"
	"github.com/rshade/countrydex/internal/country/countrytest"
	"github.com/rshade/countrydex/internal/web"
)

func newServer(t *testing.T, loaded bool) (*web.Server, http.Handler) {
	t.Helper()
	srv := web.New(web.Options{Logger: zerolog.Nop()})
	if loaded {
		srv.SetCatalog(countrytest.Catalog())
	}
	return srv, srv.Router()
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServer_LoadingState(t *testing.T) {
	_, h := newServer(t, false)

	for _, target := range []string{"/", "/?q=fra", "/countries/FRA"} {
		t.Run(target, func(t *testing.T) {
			rec := get(t, h, target)
			assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
			assert.Contains(t, rec.Body.String(), "Loading...")
			assert.NotContains(t, rec.Body.String(), "France")
		})
	}

	rec := get(t, h, "/api/countries")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("Retry-After"))

	rec = get(t, h, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","loaded":false,"countries":0}`, rec.Body.String())
}

func TestServer_ListPage(t *testing.T) {
	_, h := newServer(t, true)

	tests := []struct {
		name     string
		target   string
		contains []string
		excludes []string
	}{
		{
			name:     "all countries",
			target:   "/",
			contains: []string{"France", "South Africa", "6 of 6 countries", "66,710,000", "Filter by Region"},
		},
		{
			name:     "word prefix search",
			target:   "/?q=fra",
			contains: []string{"France", `value="fra"`},
			excludes: []string{"South Africa"},
		},
		{
			name:     "region filter keeps selection",
			target:   "/?region=Europe",
			contains: []string{"Germany", "Spain", `<option value="Europe" selected>`},
			excludes: []string{"South Africa", "United States"},
		},
		{
			name:     "unknown region renders an empty list",
			target:   "/?region=Atlantis",
			contains: []string{"No countries match.", "0 of 6 countries", `<option value="Atlantis" selected>`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, h, tt.target)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

			body := rec.Body.String()
			for _, s := range tt.contains {
				assert.Contains(t, body, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, body, s)
			}
		})
	}
}

func TestServer_ListPageKnownRegionHasNoExtraOption(t *testing.T) {
	_, h := newServer(t, true)

	rec := get(t, h, "/?region=Europe")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, strings.Count(rec.Body.String(), `<option value="Europe"`))
}

// Typing and region changes rebuild the list in place without adding
// browser history entries.
func TestServer_ListPageReplacesLocation(t *testing.T) {
	_, h := newServer(t, true)

	rec := get(t, h, "/?q=fr")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "location.replace(")
	assert.NotContains(t, body, "form.submit()")
	assert.Contains(t, body, `<noscript><button type="submit">Apply</button></noscript>`)
}

func TestServer_DetailPage(t *testing.T) {
	_, h := newServer(t, true)

	t.Run("France links its borders", func(t *testing.T) {
		rec := get(t, h, "/countries/FRA")
		require.Equal(t, http.StatusOK, rec.Code)

		body := rec.Body.String()
		assert.Contains(t, body, "Border Countries:")
		assert.Contains(t, body, `<a class="button" href="/countries/DEU">Germany</a>`)
		assert.Contains(t, body, `<a class="button" href="/countries/ESP">Spain</a>`)
		assert.Contains(t, body, "history.back()")
		assert.Contains(t, body, "document.referrer")
		assert.Contains(t, body, `href="/"`)
		assert.Contains(t, body, "Western Europe")
	})

	t.Run("lowercase code resolves", func(t *testing.T) {
		rec := get(t, h, "/countries/esp")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Madrid")
		assert.NotContains(t, rec.Body.String(), "/countries/AND")
	})

	t.Run("no borders no row", func(t *testing.T) {
		rec := get(t, h, "/countries/ZAF")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "Border Countries")
	})

	t.Run("unknown code", func(t *testing.T) {
		rec := get(t, h, "/countries/XXX")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "No country with code XXX.")
	})
}

func TestServer_API(t *testing.T) {
	_, h := newServer(t, true)

	rec := get(t, h, "/api/countries?region=Africa")
	require.Equal(t, http.StatusOK, rec.Code)
	var countries []country.Country
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&countries))
	require.Len(t, countries, 1)
	assert.Equal(t, "ZAF", countries[0].Alpha3Code)

	rec = get(t, h, "/api/countries/FRA")
	require.Equal(t, http.StatusOK, rec.Code)
	var detail struct {
		Country struct {
			Name string `json:"name"`
		} `json:"country"`
		Borders []struct {
			Code string `json:"code"`
			Name string `json:"name"`
		} `json:"borders"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&detail))
	assert.Equal(t, "France", detail.Country.Name)
	require.Len(t, detail.Borders, 2)
	assert.Equal(t, "Germany", detail.Borders[0].Name)

	rec = get(t, h, "/api/countries/XXX")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = get(t, h, "/api/regions")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["Africa","Americas","Europe"]`, rec.Body.String())

	rec = get(t, h, "/healthz")
	assert.JSONEq(t, `{"status":"ok","loaded":true,"countries":6}`, rec.Body.String())
}

func TestServer_RequestIDAndMetrics(t *testing.T) {
	_, h := newServer(t, true)

	req := httptest.NewRequest(http.MethodGet, "/countries/FRA", nil)
	req.Header.Set(web.HeaderRequestID, "trace-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "trace-123", rec.Header().Get(web.HeaderRequestID))

	rec = get(t, h, "/")
	assert.NotEmpty(t, rec.Header().Get(web.HeaderRequestID))

	rec = get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `countrydex_http_requests_total{code="200",route="/countries/{code}"} 1`)
}

func TestServer_UnknownPath(t *testing.T) {
	_, h := newServer(t, true)
	rec := get(t, h, "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found.")
}

func TestServer_LoadCatalog(t *testing.T) {
	t.Run("success publishes", func(t *testing.T) {
		srv, h := newServer(t, false)
		err := srv.LoadCatalog(context.Background(), func(context.Context) (*country.Catalog, error) {
			return countrytest.Catalog(), nil
		})
		require.NoError(t, err)
		require.NotNil(t, srv.Catalog())
		assert.Equal(t, http.StatusOK, get(t, h, "/").Code)
	})

	t.Run("failure keeps loading", func(t *testing.T) {
		srv, h := newServer(t, false)
		err := srv.LoadCatalog(context.Background(), func(context.Context) (*country.Catalog, error) {
			return nil, errors.New("dial tcp: connection refused")
		})
		require.NoError(t, err)
		assert.Nil(t, srv.Catalog())
		assert.Equal(t, http.StatusServiceUnavailable, get(t, h, "/").Code)
	})

	t.Run("cancellation is returned", func(t *testing.T) {
		srv, _ := newServer(t, false)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := srv.LoadCatalog(ctx, func(ctx context.Context) (*country.Catalog, error) {
			return nil, ctx.Err()
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestNewHTTPServer(t *testing.T) {
	_, h := newServer(t, true)
	s := web.NewHTTPServer(":0", h)
	assert.Equal(t, ":0", s.Addr)
	assert.NotZero(t, s.ReadHeaderTimeout)
}
