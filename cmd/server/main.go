// Package main implements the entry point for the content generation API
// server, which generates marketing copy for authenticated users and keeps
// each user's generation history.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kaabil/contentgen-api/internal/platform/sqldb"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCommand builds the CLI. Running the binary without a subcommand
// serves the API.
func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "contentgen-api",
		Short:         "AI content generation API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Migrate the database and serve the HTTP API",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServe(cmd.Context())
			},
		},
		newMigrateCommand(),
	)

	return root
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Manage the database schema",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{sqldb.MigrateUp, sqldb.MigrateDown, sqldb.MigrateStatus},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd.Context(), args[0])
		},
	}
}

// runServe loads configuration, brings the schema up to date and serves
// until ctx is canceled.
func runServe(ctx context.Context) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	db, err := setupAppDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}

	if err := sqldb.Migrate(ctx, db, sqldb.MigrateUp, logger); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	app, err := newApplication(ctx, cfg, logger, db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

func runMigrate(ctx context.Context, command string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	db, err := setupAppDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	return sqldb.Migrate(ctx, db, command, logger)
}
