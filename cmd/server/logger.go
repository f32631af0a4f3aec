package main

import (
	"fmt"
	"log/slog"

	"github.com/kaabil/contentgen-api/internal/config"
	"github.com/kaabil/contentgen-api/internal/platform/logger"
)

// setupAppLogger installs the JSON logger at the configured level as the
// process default and returns it.
func setupAppLogger(cfg *config.Config) (*slog.Logger, error) {
	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}
	logConfigSummary(l, cfg)
	return l, nil
}
