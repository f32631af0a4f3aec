// Package sqldb provides the database/sql implementations of the store
// interfaces, backed by PostgreSQL (through the pgx stdlib driver) or SQLite
// (through the pure-Go modernc.org/sqlite driver).
//
// Queries are written once with PostgreSQL-style $N placeholders and rebound
// for SQLite at execution time, so both dialects share the same store code.
// Schema changes are embedded goose migrations, one set per dialect.
//
// Stores accept a store.DBTX so they run equally against a pool or inside a
// transaction. Driver errors are translated to the store package's sentinel
// errors by MapError.
package sqldb
