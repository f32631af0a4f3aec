package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/kaabil/contentgen-api/internal/platform/logger"
	"github.com/kaabil/contentgen-api/internal/redact"
)

// ErrorResponse defines the standard error response structure.
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// ResponseOption defines a function to customize response behavior.
type ResponseOption func(*responseOptions)

type responseOptions struct {
	elevateLogLevel bool
}

// WithElevatedLogLevel logs a 4xx response at WARN instead of DEBUG.
func WithElevatedLogLevel() ResponseOption {
	return func(opts *responseOptions) {
		opts.elevateLogLevel = true
	}
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

// RespondWithError writes a JSON error response carrying the request's trace ID.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	RespondWithErrorAndLog(w, r, status, message, nil)
}

// RespondWithErrorAndLog writes a JSON error response with a safe message and
// logs the redacted underlying error.
//
// 5xx responses are logged at ERROR, 429 and elevated 4xx at WARN, the rest at DEBUG.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	err error,
	opts ...ResponseOption,
) {
	traceID := GetTraceID(r.Context())

	responseOpts := responseOptions{}
	for _, opt := range opts {
		opt(&responseOpts)
	}

	logAttrs := []slog.Attr{
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", userMessage),
	}
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	level := slog.LevelDebug
	switch {
	case status >= http.StatusInternalServerError:
		level = slog.LevelError
	case status == http.StatusTooManyRequests:
		level = slog.LevelWarn
	case responseOpts.elevateLogLevel && status >= http.StatusBadRequest:
		level = slog.LevelWarn
	}

	logger.FromContext(r.Context()).LogAttrs(r.Context(), level, "API error response", logAttrs...)

	RespondWithJSON(w, r, status, ErrorResponse{
		Error:   userMessage,
		TraceID: traceID,
	})
}
