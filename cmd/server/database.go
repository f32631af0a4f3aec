package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kaabil/contentgen-api/internal/config"
	"github.com/kaabil/contentgen-api/internal/platform/sqldb"
)

// setupAppDatabase opens the configured database (PostgreSQL or SQLite) and
// verifies the connection.
func setupAppDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sqldb.DB, error) {
	db, err := sqldb.Open(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database %s: %w", sqldb.MaskURL(cfg.Database.URL), err)
	}
	return db, nil
}
