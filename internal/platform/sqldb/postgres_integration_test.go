//go:build integration

package sqldb_test

import (
	"testing"

	"github.com/kaabil/contentgen-api/internal/testdb"
)

func TestPostgresStores(t *testing.T) {
	db := testdb.OpenPostgres(t)

	t.Run("users", func(t *testing.T) { runUserStoreSuite(t, db) })
	t.Run("generations", func(t *testing.T) { runGenerationStoreSuite(t, db) })
}
