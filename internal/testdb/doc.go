// Package testdb provides database fixtures for tests.
//
// Open returns a migrated, private in-memory SQLite database and needs no
// external services, so store tests run everywhere. With the integration build
// tag, OpenPostgres starts a disposable PostgreSQL container through
// testcontainers and migrates it with the same embedded migrations the
// server uses.
//
// WithTx runs a test body inside a transaction that is always rolled back,
// so several tests can share one database without seeing each other's rows.
//
//	func TestMyStore(t *testing.T) {
//	    db := testdb.Open(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        users := sqldb.NewUserStore(tx, db.Dialect, bcrypt.MinCost, nil)
//	        ...
//	    })
//	}
package testdb
