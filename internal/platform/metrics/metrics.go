// Package metrics exposes Prometheus instrumentation for the HTTP server, the
// generation service and the provider gateway.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/kaabil/contentgen-api/internal/generation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "contentgen"

// Metrics owns a private registry so tests can create independent instances.
type Metrics struct {
	registry *prometheus.Registry

	generationsTotal *prometheus.CounterVec
	providerCalls    *prometheus.CounterVec
	providerDuration *prometheus.HistogramVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// New creates the collectors and registers them, together with the Go runtime
// and process collectors, on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		generationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "generations_total",
				Help:      "Total number of generation requests by content source and outcome.",
			},
			[]string{"source", "outcome"},
		),
		providerCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "provider_calls_total",
				Help:      "Total number of vendor provider calls by provider and status.",
			},
			[]string{"provider", "status"},
		),
		providerDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "provider_call_duration_seconds",
				Help:      "Duration of vendor provider calls.",
				Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
			},
			[]string{"provider"},
		),
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests by method, route and status code.",
			},
			[]string{"method", "route", "code"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordGeneration counts a finished generation request.
func (m *Metrics) RecordGeneration(source, outcome string) {
	m.generationsTotal.WithLabelValues(source, outcome).Inc()
}

// ObserveProviderCall records the duration and status of a provider call.
func (m *Metrics) ObserveProviderCall(provider generation.ProviderID, duration time.Duration, err error) {
	m.providerCalls.WithLabelValues(string(provider), callStatus(err)).Inc()
	m.providerDuration.WithLabelValues(string(provider)).Observe(duration.Seconds())
}

var _ generation.CallObserver = (*Metrics)(nil)

func callStatus(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, generation.ErrEmptyCompletion):
		return "empty"
	default:
		return "error"
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request counts and durations labelled with the matched
// chi route pattern, so path parameters do not explode label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
