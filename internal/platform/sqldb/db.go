package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/kaabil/contentgen-api/internal/config"
	_ "modernc.org/sqlite" // sqlite driver
)

// Dialect identifies the SQL database behind a connection.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// ErrUnsupportedURL is returned for database URLs with an unknown scheme.
var ErrUnsupportedURL = errors.New("unsupported database URL")

// sqlitePragmas are applied to every SQLite connection.
const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"

// DB is a connection pool together with its dialect.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Rebind rewrites $N placeholders into the form the dialect expects.
func (d Dialect) Rebind(query string) string {
	if d != SQLite {
		return query
	}

	var sb strings.Builder
	sb.Grow(len(query))
	for i := 0; i < len(query); i++ {
		c := query[i]
		if c == '$' && i+1 < len(query) && query[i+1] >= '0' && query[i+1] <= '9' {
			sb.WriteByte('?')
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

// ParseURL maps a database URL to a driver name, a driver DSN and a dialect.
//
// postgres:// and postgresql:// URLs are passed to pgx unchanged. SQLite URLs
// follow the sqlite:///relative/path and sqlite:////absolute/path convention;
// sqlite://path is also accepted as a relative path, and sqlite::memory: opens
// a private in-memory database.
func ParseURL(databaseURL string) (driver, dsn string, dialect Dialect, err error) {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return "pgx", databaseURL, Postgres, nil
	case databaseURL == "sqlite::memory:", databaseURL == "sqlite://:memory:":
		return "sqlite", ":memory:?" + sqlitePragmas, SQLite, nil
	case strings.HasPrefix(databaseURL, "sqlite://"):
		path := strings.TrimPrefix(databaseURL, "sqlite://")
		path = strings.TrimPrefix(path, "/")
		if path == "" {
			return "", "", "", fmt.Errorf("%w: sqlite URL has no path", ErrUnsupportedURL)
		}
		return "sqlite", "file:" + path + "?" + sqlitePragmas, SQLite, nil
	default:
		return "", "", "", fmt.Errorf("%w: %s", ErrUnsupportedURL, MaskURL(databaseURL))
	}
}

// Open establishes a connection pool for cfg.URL and verifies it with a ping.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*DB, error) {
	driver, dsn, dialect, err := ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	switch dialect {
	case SQLite:
		// SQLite allows a single writer; in-memory databases also vanish
		// when their only connection closes.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	default:
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if logger != nil {
		logger.Info("database connection established",
			slog.String("dialect", string(dialect)),
			slog.String("url", MaskURL(cfg.URL)))
	}

	return &DB{DB: db, Dialect: dialect}, nil
}

// MaskURL hides the password in a database URL so it can be logged.
func MaskURL(databaseURL string) string {
	parsed, err := url.Parse(databaseURL)
	if err != nil {
		return "invalid-url"
	}

	if parsed.User != nil {
		if _, hasPassword := parsed.User.Password(); hasPassword {
			parsed.User = url.UserPassword(parsed.User.Username(), "****")
			return parsed.String()
		}
	}

	return databaseURL
}
