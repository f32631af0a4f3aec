//go:build integration

package testdb

import (
	"context"
	"testing"
	"time"

	"github.com/kaabil/contentgen-api/internal/platform/sqldb"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// OpenPostgres starts a PostgreSQL container for the test and returns a
// migrated connection to it. The container is terminated at cleanup.
func OpenPostgres(t testing.TB) *sqldb.DB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	container, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("contentgen_test"),
		postgres.WithUsername("contentgen"),
		postgres.WithPassword("contentgen"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")

	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	return OpenURL(t, dsn)
}
