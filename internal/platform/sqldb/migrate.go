package sqldb

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"
)

// MigrationTableName is the table goose uses to track applied versions.
const MigrationTableName = "schema_migrations"

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// Migration commands accepted by Migrate.
const (
	MigrateUp     = "up"
	MigrateDown   = "down"
	MigrateStatus = "status"
)

// slogGooseLogger adapts slog to goose.Logger. Fatalf logs at error level and
// does not exit; failures are returned to the caller instead.
type slogGooseLogger struct {
	logger *slog.Logger
}

func (l slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

func (l slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

// Migrations returns the embedded migration files for dialect.
func Migrations(dialect Dialect) (fs.FS, error) {
	switch dialect {
	case Postgres:
		return fs.Sub(migrationsFS, "migrations/postgres")
	case SQLite:
		return fs.Sub(migrationsFS, "migrations/sqlite")
	default:
		return nil, fmt.Errorf("no migrations for dialect %q", dialect)
	}
}

func gooseDialect(dialect Dialect) (database.Dialect, error) {
	switch dialect {
	case Postgres:
		return database.DialectPostgres, nil
	case SQLite:
		return database.DialectSQLite3, nil
	default:
		return "", fmt.Errorf("unsupported dialect %q", dialect)
	}
}

// NewMigrator returns a goose provider over the embedded migrations for db.
func NewMigrator(db *DB, logger *slog.Logger) (*goose.Provider, error) {
	if logger == nil {
		logger = slog.Default()
	}

	fsys, err := Migrations(db.Dialect)
	if err != nil {
		return nil, err
	}

	dialect, err := gooseDialect(db.Dialect)
	if err != nil {
		return nil, err
	}

	versions, err := database.NewStore(dialect, MigrationTableName)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration store: %w", err)
	}

	return goose.NewProvider("", db.DB, fsys,
		goose.WithStore(versions),
		goose.WithLogger(slogGooseLogger{logger: logger.With(slog.String("component", "migrations"))}),
	)
}

// Migrate runs a migration command (up, down or status) against db.
func Migrate(ctx context.Context, db *DB, command string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With(
		slog.String("component", "migrations"),
		slog.String("command", command),
		slog.String("dialect", string(db.Dialect)),
	)

	migrator, err := NewMigrator(db, logger)
	if err != nil {
		return fmt.Errorf("failed to set up migrations: %w", err)
	}

	switch command {
	case MigrateUp:
		results, err := migrator.Up(ctx)
		for _, r := range results {
			log.Info("migration applied",
				slog.String("file", r.Source.Path),
				slog.Duration("duration", r.Duration))
		}
		if err != nil {
			return fmt.Errorf("migrate up failed: %w", err)
		}
		if len(results) == 0 {
			log.Info("database schema is up to date")
		}
		return nil

	case MigrateDown:
		result, err := migrator.Down(ctx)
		if err != nil {
			return fmt.Errorf("migrate down failed: %w", err)
		}
		log.Info("migration rolled back",
			slog.String("file", result.Source.Path),
			slog.Duration("duration", result.Duration))
		return nil

	case MigrateStatus:
		statuses, err := migrator.Status(ctx)
		if err != nil {
			return fmt.Errorf("migrate status failed: %w", err)
		}
		for _, s := range statuses {
			log.Info("migration status",
				slog.String("file", s.Source.Path),
				slog.Int64("version", s.Source.Version),
				slog.String("state", string(s.State)),
				slog.Time("applied_at", s.AppliedAt))
		}
		return nil

	default:
		return fmt.Errorf("unknown migration command %q", command)
	}
}
