package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kaabil/contentgen-api/internal/api"
	"github.com/kaabil/contentgen-api/internal/config"
	"github.com/kaabil/contentgen-api/internal/generation"
	"github.com/kaabil/contentgen-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:                "127.0.0.1",
			Port:                8000,
			LogLevel:            "debug",
			CORSAllowedOrigins:  []string{"http://localhost:3000"},
			ReadTimeoutSeconds:  5,
			WriteTimeoutSeconds: 5,
		},
		Database: config.DatabaseConfig{URL: "sqlite::memory:"},
		Auth: config.AuthConfig{
			JWTSecret:                   "test-secret-that-is-at-least-32-characters",
			TokenLifetimeMinutes:        60,
			RefreshTokenLifetimeMinutes: 120,
			BCryptCost:                  bcrypt.MinCost,
		},
		LLM: config.LLMConfig{
			PreferredProvider:     "openai",
			OpenAIModel:           "gpt-4o-mini",
			AnthropicModel:        "claude-3-5-sonnet-20241022",
			GeminiModel:           "gemini-2.0-flash",
			RequestTimeoutSeconds: 5,
		},
	}
}

func newTestApp(t *testing.T) (*application, *httptest.Server) {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	app, err := newApplication(context.Background(), testConfig(), logger, testdb.Open(t))
	require.NoError(t, err)

	server := httptest.NewServer(app.setupRouter())
	t.Cleanup(server.Close)
	return app, server
}

type client struct {
	t      *testing.T
	server *httptest.Server
	token  string
}

func (c *client) do(method, path string, body any) (*http.Response, []byte) {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, c.server.URL+path, reader)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.server.Client().Do(req)
	require.NoError(c.t, err)
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp, data
}

// signUp registers and logs in a user, returning an authenticated client.
func signUp(t *testing.T, server *httptest.Server, email string) *client {
	t.Helper()
	c := &client{t: t, server: server}
	creds := map[string]string{"email": email, "password": "correct-horse"}

	resp, body := c.do(http.MethodPost, "/auth/register", creds)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = c.do(http.MethodPost, "/auth/login", creds)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var tokens api.TokenResponse
	require.NoError(t, json.Unmarshal(body, &tokens))
	c.token = tokens.AccessToken
	return c
}

func generateRequest(product string) map[string]string {
	return map[string]string{
		"content_type": "email",
		"tone":         "persuasive",
		"length":       "medium",
		"product":      product,
		"audience":     "busy parents",
	}
}

func TestNewApplicationWithoutProviders(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t)

	assert.False(t, app.gateway.HasAvailable())
	for _, id := range generation.Precedence {
		assert.False(t, app.gateway.Status()[id], id)
	}
}

func TestNewApplicationRejectsBadConfig(t *testing.T) {
	t.Parallel()
	logger := slog.New(slog.DiscardHandler)

	cfg := testConfig()
	cfg.Auth.JWTSecret = "short"
	_, err := newApplication(context.Background(), cfg, logger, testdb.Open(t))
	assert.Error(t, err)

	cfg = testConfig()
	cfg.LLM.PreferredProvider = "mistral"
	_, err = newApplication(context.Background(), cfg, logger, testdb.Open(t))
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}

func TestEndToEndGenerationHistory(t *testing.T) {
	t.Parallel()
	_, server := newTestApp(t)

	alice := signUp(t, server, "alice@example.com")
	bob := signUp(t, server, "bob@example.com")

	var aliceIDs []string
	for _, product := range []string{"Lunchbox Pro", "Backpack Max"} {
		resp, body := alice.do(http.MethodPost, "/api/generate", generateRequest(product))
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

		var generated api.GenerateResponse
		require.NoError(t, json.Unmarshal(body, &generated))
		assert.Equal(t, generation.MockModel, generated.ModelUsed)
		assert.True(t, strings.HasSuffix(generated.GeneratedContent, generation.DemoNotice))
		aliceIDs = append(aliceIDs, generated.ID.String())
	}

	resp, body := bob.do(http.MethodPost, "/api/generate", generateRequest("Bike Bell"))
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = alice.do(http.MethodGet, "/api/history?limit=10", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var history []api.GenerationResponse
	require.NoError(t, json.Unmarshal(body, &history))
	require.Len(t, history, 2)
	assert.Equal(t, aliceIDs[1], history[0].ID.String())
	assert.Equal(t, aliceIDs[0], history[1].ID.String())
	assert.Nil(t, history[0].ExtraInstructions)

	resp, _ = bob.do(http.MethodGet, "/api/history/"+aliceIDs[0], nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = bob.do(http.MethodDelete, "/api/history/"+aliceIDs[0], nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = alice.do(http.MethodDelete, "/api/history/"+aliceIDs[0], nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = alice.do(http.MethodGet, "/api/history", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &history))
	assert.Len(t, history, 1)
}

func TestEndToEndRejectsUnauthenticated(t *testing.T) {
	t.Parallel()
	_, server := newTestApp(t)
	anonymous := &client{t: t, server: server}

	resp, _ := anonymous.do(http.MethodPost, "/api/generate", generateRequest("Widget"))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	anonymous.token = "not-a-jwt"
	resp, body := anonymous.do(http.MethodGet, "/api/history", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(body), "Invalid token")
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))
}

func TestPublicEndpoints(t *testing.T) {
	t.Parallel()
	_, server := newTestApp(t)
	c := &client{t: t, server: server}

	resp, body := c.do(http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var health api.HealthResponse
	require.NoError(t, json.Unmarshal(body, &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, map[string]bool{"openai": false, "anthropic": false, "gemini": false}, health.AIConfigured)

	resp, _ = c.do(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	signUp(t, server, "metrics@example.com").do(http.MethodPost, "/api/generate", generateRequest("Gadget"))

	resp, body = c.do(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `contentgen_generations_total{outcome="success",source="mock"} 1`)
	assert.Contains(t, string(body), `contentgen_http_requests_total{code="201",method="POST",route="/api/generate"} 1`)
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()
	_, server := newTestApp(t)

	req, err := http.NewRequest(http.MethodOptions, server.URL+"/api/generate", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestStartHTTPServerStopsOnCancel(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Server.Port = 0
	app := &application{config: cfg, logger: slog.New(slog.DiscardHandler)}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- app.startHTTPServer(ctx, http.NotFoundHandler())
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("server did not shut down")
	}
}
