package metrics_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kaabil/contentgen-api/internal/generation"
	"github.com/kaabil/contentgen-api/internal/platform/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordGeneration(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	m.RecordGeneration("mock", "success")
	m.RecordGeneration("mock", "success")
	m.RecordGeneration("provider", "generation_failed")

	count, err := testutil.GatherAndCount(m.Registry(), "contentgen_generations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "one series per label combination")
}

func TestObserveProviderCall(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	m.ObserveProviderCall(generation.ProviderOpenAI, 120*time.Millisecond, nil)
	m.ObserveProviderCall(generation.ProviderOpenAI, time.Second, errors.New("boom"))
	m.ObserveProviderCall(generation.ProviderGemini, time.Second, generation.ErrEmptyCompletion)

	calls, err := testutil.GatherAndCount(m.Registry(), "contentgen_provider_calls_total")
	require.NoError(t, err)
	assert.Equal(t, 3, calls)

	histograms, err := testutil.GatherAndCount(m.Registry(), "contentgen_provider_call_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, histograms)
}

func TestMiddlewareAndHandler(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/history/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Handle("/metrics", m.Handler())

	for _, id := range []string{"a", "b", "c"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history/"+id, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}

	count, err := testutil.GatherAndCount(m.Registry(), "contentgen_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count, "path parameters collapse into the route pattern")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `route="/api/history/{id}"`)
	assert.Contains(t, string(body), "go_goroutines")
}
