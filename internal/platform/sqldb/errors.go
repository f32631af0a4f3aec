package sqldb

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kaabil/contentgen-api/internal/store"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// PostgreSQL error codes
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
)

type violation int

const (
	noViolation violation = iota
	uniqueViolation
	foreignKeyViolation
	checkViolation
	notNullViolation
)

// classify identifies constraint violations from either driver.
func classify(err error) violation {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return uniqueViolation
		case foreignKeyViolationCode:
			return foreignKeyViolation
		case checkViolationCode:
			return checkViolation
		case notNullViolationCode:
			return notNullViolation
		default:
			return noViolation
		}
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch code := liteErr.Code(); code {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return uniqueViolation
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return foreignKeyViolation
		case sqlite3.SQLITE_CONSTRAINT_CHECK:
			return checkViolation
		case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
			return notNullViolation
		default:
			if code&0xff == sqlite3.SQLITE_CONSTRAINT {
				return classifyConstraintMessage(liteErr.Error())
			}
			return noViolation
		}
	}

	return noViolation
}

// classifyConstraintMessage handles connections without extended result codes.
func classifyConstraintMessage(msg string) violation {
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return uniqueViolation
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return foreignKeyViolation
	case strings.Contains(msg, "CHECK constraint failed"):
		return checkViolation
	case strings.Contains(msg, "NOT NULL constraint failed"):
		return notNullViolation
	default:
		return noViolation
	}
}

// MapError maps a database error to the matching store error, wrapping the
// original so it remains available to errors.As.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", store.ErrNotFound, err)
	}

	switch classify(err) {
	case uniqueViolation:
		return fmt.Errorf("%w: %w", store.ErrDuplicate, err)
	case foreignKeyViolation:
		return fmt.Errorf("%w: foreign key violation: %w", store.ErrInvalidEntity, err)
	case checkViolation:
		return fmt.Errorf("%w: check constraint violation: %w", store.ErrInvalidEntity, err)
	case notNullViolation:
		return fmt.Errorf("%w: not null violation: %w", store.ErrInvalidEntity, err)
	default:
		return err
	}
}

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	return classify(err) == uniqueViolation
}

// IsForeignKeyViolation reports whether err is a foreign key violation.
func IsForeignKeyViolation(err error) bool {
	return classify(err) == foreignKeyViolation
}

// CheckRowsAffected returns notFound when result touched no rows.
func CheckRowsAffected(result sql.Result, notFound error) error {
	if result == nil {
		return errors.New("nil result provided to CheckRowsAffected")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		if notFound == nil {
			return store.ErrNotFound
		}
		return notFound
	}

	return nil
}
