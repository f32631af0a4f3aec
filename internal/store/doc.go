// Package store defines the persistence interfaces for users and generation
// records, along with the sentinel errors every implementation returns.
// Implementations live in internal/platform/sqldb.
package store
