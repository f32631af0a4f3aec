package generation

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/kaabil/contentgen-api/internal/domain"
	"github.com/kaabil/contentgen-api/internal/platform/logger"
	"github.com/kaabil/contentgen-api/internal/redact"
)

// Result is a successful gateway call.
type Result struct {
	Text     string
	Model    string
	Provider ProviderID
}

// CallObserver is notified after every provider call. err is nil on success.
type CallObserver interface {
	ObserveProviderCall(provider ProviderID, duration time.Duration, err error)
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithLogger sets the gateway's logger.
func WithLogger(l *slog.Logger) GatewayOption {
	return func(g *Gateway) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithCallObserver registers an observer for provider calls.
func WithCallObserver(o CallObserver) GatewayOption {
	return func(g *Gateway) {
		g.observer = o
	}
}

// Gateway selects a provider for each request and invokes it.
//
// Availability is captured once in NewGateway and never re-read, so a Gateway
// is safe for concurrent use without locking.
type Gateway struct {
	providers map[ProviderID]Provider
	available map[ProviderID]bool
	logger    *slog.Logger
	observer  CallObserver
}

// NewGateway snapshots the availability of the given providers. Providers with
// an unknown ID are ignored; if two providers share an ID the last one wins.
func NewGateway(providers []Provider, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		providers: make(map[ProviderID]Provider, len(providers)),
		available: make(map[ProviderID]bool, len(Precedence)),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.With(slog.String("component", "generation_gateway"))

	for _, p := range providers {
		if p == nil || !p.ID().Valid() {
			continue
		}
		g.providers[p.ID()] = p
		g.available[p.ID()] = p.Available()
	}

	for _, id := range Precedence {
		g.logger.Info("content provider configured",
			slog.String("provider", string(id)),
			slog.Bool("available", g.available[id]))
	}

	return g
}

// HasAvailable reports whether at least one provider can be invoked.
func (g *Gateway) HasAvailable() bool {
	for _, id := range Precedence {
		if g.available[id] {
			return true
		}
	}
	return false
}

// Status reports availability for every known provider.
func (g *Gateway) Status() map[ProviderID]bool {
	status := make(map[ProviderID]bool, len(Precedence))
	for _, id := range Precedence {
		status[id] = g.available[id]
	}
	return status
}

// Generate produces content for req. The preferred provider is used when it
// is available; otherwise the first available provider in Precedence. Callers
// should route to GenerateMock instead when HasAvailable is false.
//
// Errors are a *ProviderUnavailableError when nothing can serve the request,
// or a *GenerationFailedError carrying the vendor's error. Calls are not retried.
func (g *Gateway) Generate(
	ctx context.Context,
	req domain.GenerationRequest,
	preferred ProviderID,
) (Result, error) {
	log := logger.FromContextOrDefault(ctx, g.logger)

	provider, checked := g.selectProvider(preferred)
	if provider == nil {
		err := &ProviderUnavailableError{Preferred: preferred, Checked: checked}
		log.Warn("no provider available for generation",
			slog.String("preferred", string(preferred)),
			slog.Any("checked", checked))
		return Result{}, err
	}

	id := provider.ID()
	start := time.Now()
	completion, err := provider.Generate(ctx, NewPrompt(req))
	if err == nil && strings.TrimSpace(completion.Text) == "" {
		err = ErrEmptyCompletion
	}
	duration := time.Since(start)

	if g.observer != nil {
		g.observer.ObserveProviderCall(id, duration, err)
	}

	if err != nil {
		log.Error("provider call failed",
			slog.String("provider", string(id)),
			slog.Duration("duration", duration),
			slog.Bool("context_canceled", errors.Is(err, context.Canceled)),
			slog.String("error", redact.Error(err)))
		return Result{}, &GenerationFailedError{Provider: id, Err: err}
	}

	log.Debug("provider call succeeded",
		slog.String("provider", string(id)),
		slog.String("model", completion.Model),
		slog.Duration("duration", duration))

	return Result{Text: completion.Text, Model: completion.Model, Provider: id}, nil
}

// selectProvider returns the provider to invoke and every ID it considered.
func (g *Gateway) selectProvider(preferred ProviderID) (Provider, []ProviderID) {
	checked := make([]ProviderID, 0, len(Precedence)+1)

	if preferred.Valid() {
		checked = append(checked, preferred)
		if g.available[preferred] {
			return g.providers[preferred], checked
		}
	}

	for _, id := range Precedence {
		if id == preferred {
			continue
		}
		checked = append(checked, id)
		if g.available[id] {
			return g.providers[id], checked
		}
	}

	return nil, checked
}
