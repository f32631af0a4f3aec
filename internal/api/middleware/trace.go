package middleware

import (
	"log/slog"
	"net/http"

	"github.com/kaabil/contentgen-api/internal/api/shared"
	"github.com/kaabil/contentgen-api/internal/platform/logger"
)

// TraceIDHeader carries the request's trace ID back to the client.
const TraceIDHeader = "X-Trace-ID"

// Trace returns middleware that assigns a trace ID to every request and
// stores a logger carrying it in the request context. It should run before
// any handler that logs.
func Trace(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := shared.NewTraceID()
			log := base.With(slog.String("trace_id", traceID))

			ctx := shared.WithTraceID(r.Context(), traceID)
			ctx = logger.WithLogger(ctx, log)
			w.Header().Set(TraceIDHeader, traceID)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
