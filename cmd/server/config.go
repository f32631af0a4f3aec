package main

import (
	"fmt"
	"log/slog"

	"github.com/kaabil/contentgen-api/internal/config"
	"github.com/kaabil/contentgen-api/internal/platform/sqldb"
)

// loadAppConfig loads the application configuration from the environment,
// an optional .env file and an optional config.yaml.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// logConfigSummary logs the effective configuration without secrets.
func logConfigSummary(logger *slog.Logger, cfg *config.Config) {
	logger.Info("server configuration loaded",
		slog.String("host", cfg.Server.Host),
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_url", sqldb.MaskURL(cfg.Database.URL)),
		slog.String("preferred_provider", cfg.LLM.PreferredProvider))

	logger.Debug("provider credentials",
		slog.Bool("openai_key_present", cfg.LLM.OpenAIAPIKey != ""),
		slog.Bool("anthropic_key_present", cfg.LLM.AnthropicAPIKey != ""),
		slog.Bool("gemini_key_present", cfg.LLM.GeminiAPIKey != ""))
}
