package testdb

import (
	"context"
	"database/sql"
	"log/slog"
	"testing"
	"time"

	"github.com/kaabil/contentgen-api/internal/config"
	"github.com/kaabil/contentgen-api/internal/platform/sqldb"
	"github.com/stretchr/testify/require"
)

// TestTimeout bounds database setup in tests.
const TestTimeout = 60 * time.Second

// Open returns a migrated in-memory SQLite database closed at test cleanup.
func Open(t testing.TB) *sqldb.DB {
	t.Helper()
	return OpenURL(t, "sqlite::memory:")
}

// OpenURL opens databaseURL, applies all migrations and registers cleanup.
func OpenURL(t testing.TB, databaseURL string) *sqldb.DB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	quiet := slog.New(slog.DiscardHandler)

	db, err := sqldb.Open(ctx, config.DatabaseConfig{
		URL:          databaseURL,
		MaxOpenConns: 5,
		MaxIdleConns: 2,
	}, quiet)
	require.NoError(t, err, "failed to open test database")

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})

	require.NoError(t, sqldb.Migrate(ctx, db, sqldb.MigrateUp, quiet), "failed to migrate test database")
	return db
}

// WithTx runs fn inside a transaction that is rolled back afterwards.
func WithTx(t *testing.T, db *sqldb.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err, "failed to begin transaction")

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			t.Logf("failed to roll back transaction: %v", err)
		}
	}()

	fn(t, tx)
}
