package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the server's Prometheus collectors. Each instance owns its own
// registry so several servers can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	// Requests by chi route pattern and status code
	Requests *prometheus.CounterVec

	// Request latency by route pattern
	Latency *prometheus.HistogramVec

	// Countries in the published catalog, 0 until loaded
	CatalogCountries prometheus.Gauge

	// Dataset fetches by outcome ("ok", "error")
	Loads *prometheus.CounterVec
}

// NewMetrics creates and registers all collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "countrydex_http_requests_total",
			Help: "HTTP requests by route and status code",
		}, []string{"route", "code"}),

		Latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "countrydex_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"route"}),

		CatalogCountries: factory.NewGauge(prometheus.GaugeOpts{
			Name: "countrydex_catalog_countries",
			Help: "Countries in the loaded catalog",
		}),

		Loads: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "countrydex_catalog_loads_total",
			Help: "Dataset fetches by outcome",
		}, []string{"outcome"}),
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(route string, code int, d time.Duration) {
	if m != nil {
		m.Requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
		m.Latency.WithLabelValues(route).Observe(d.Seconds())
	}
}

// ObserveLoad records a dataset fetch. countries is ignored on failure.
func (m *Metrics) ObserveLoad(countries int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.Loads.WithLabelValues("error").Inc()
		return
	}
	m.Loads.WithLabelValues("ok").Inc()
	m.CatalogCountries.Set(float64(countries))
}
