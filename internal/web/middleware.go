package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mssola/useragent"
	"github.com/rs/zerolog"

	"github.com/rshade/countrydex/internal/logging"
)

// HeaderRequestID carries the trace ID in both directions.
const HeaderRequestID = "X-Request-Id"

const unmatchedRoute = "unmatched"

// requestLogger attaches a trace-scoped zerolog logger to the request context,
// echoes the trace ID, and records access logs and metrics once the route is
// known.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		traceID := r.Header.Get(HeaderRequestID)
		if traceID == "" {
			traceID = logging.NewTraceID()
		}
		logger := s.logger.With().Str(logging.FieldTraceID, traceID).Logger()
		ctx := logging.ContextWithTraceID(r.Context(), traceID)
		ctx = logger.WithContext(ctx)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		ww.Header().Set(HeaderRequestID, traceID)

		next.ServeHTTP(ww, r.WithContext(ctx))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := unmatchedRoute
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		elapsed := time.Since(start)
		s.metrics.ObserveRequest(route, status, elapsed)

		var event *zerolog.Event
		switch {
		case status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable:
			event = logger.Error()
		case status >= http.StatusBadRequest:
			event = logger.Warn()
		default:
			event = logger.Debug()
		}
		ua := useragent.New(r.UserAgent())
		browser, _ := ua.Browser()
		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("route", route).
			Int("status", status).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", elapsed).
			Str("browser", browser).
			Bool("bot", ua.Bot()).
			Msg("request served")
	})
}
