package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kaabil/contentgen-api/internal/config"
	"github.com/kaabil/contentgen-api/internal/generation"
	"github.com/kaabil/contentgen-api/internal/platform/anthropic"
	"github.com/kaabil/contentgen-api/internal/platform/gemini"
	"github.com/kaabil/contentgen-api/internal/platform/metrics"
	"github.com/kaabil/contentgen-api/internal/platform/openai"
	"github.com/kaabil/contentgen-api/internal/platform/sqldb"
	"github.com/kaabil/contentgen-api/internal/service"
	"github.com/kaabil/contentgen-api/internal/service/auth"
	"github.com/kaabil/contentgen-api/internal/store"
)

// application holds the shared dependencies so they can be wired once and
// released together on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sqldb.DB

	metrics *metrics.Metrics
	gateway *generation.Gateway

	userStore       store.UserStore
	generationStore store.GenerationStore

	jwtService        auth.JWTService
	userService       service.UserService
	generationService service.GenerationService
}

// newApplication wires every component on top of an open, migrated database.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sqldb.DB,
) (*application, error) {
	app := &application{
		config:  cfg,
		logger:  logger,
		db:      db,
		metrics: metrics.New(),
	}

	providers, err := newProviders(ctx, cfg.LLM, logger)
	if err != nil {
		return nil, err
	}
	app.gateway = generation.NewGateway(providers,
		generation.WithLogger(logger),
		generation.WithCallObserver(app.metrics))
	if !app.gateway.HasAvailable() {
		logger.Warn("no content provider configured, serving demo content")
	}

	app.userStore = sqldb.NewUserStore(db, db.Dialect, cfg.Auth.BCryptCost, logger)
	app.generationStore = sqldb.NewGenerationStore(db, db.Dialect, logger)

	app.jwtService, err = auth.NewJWTService(cfg.Auth, auth.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	app.userService, err = service.NewUserService(app.userStore, auth.NewBcryptVerifier(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	preferred, err := generation.ParseProviderID(cfg.LLM.PreferredProvider)
	if err != nil {
		return nil, err
	}
	app.generationService, err = service.NewGenerationService(
		app.gateway,
		app.generationStore,
		logger,
		service.WithPreferredProvider(preferred),
		service.WithGenerationRecorder(app.metrics),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation service: %w", err)
	}

	logger.Info("application initialized", slog.Any("providers", app.gateway.Status()))
	return app, nil
}

// newProviders builds one adapter per vendor. Adapters without an API key
// are returned unavailable rather than omitted.
func newProviders(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) ([]generation.Provider, error) {
	openaiProvider, err := openai.NewProvider(logger, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize openai provider: %w", err)
	}
	anthropicProvider, err := anthropic.NewProvider(ctx, logger, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize anthropic provider: %w", err)
	}
	geminiProvider, err := gemini.NewProvider(ctx, logger, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gemini provider: %w", err)
	}
	return []generation.Provider{openaiProvider, anthropicProvider, geminiProvider}, nil
}

// Run serves the API until ctx is canceled, then releases resources.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}
	app.logger.Info("application shutdown completed")
}
