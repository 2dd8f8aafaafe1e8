package infrastructure

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// OpenDatabase opens the database named by dbURL. The scheme selects the
// driver: sqlite://<path> or postgres://<dsn>.
func OpenDatabase(dbURL string) (*sqlx.DB, error) {
	switch {
	case strings.HasPrefix(dbURL, "sqlite://"):
		return OpenSQLite(strings.TrimPrefix(dbURL, "sqlite://"))
	case strings.HasPrefix(dbURL, "postgres://"), strings.HasPrefix(dbURL, "postgresql://"):
		db, err := sqlx.Open("postgres", dbURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres: %w", err)
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported database url scheme: %q", dbURL)
	}
}

// OpenSQLite opens a sqlite database file, or a private in-memory database
// for ":memory:". Connections are limited to one so that an in-memory
// database is shared by every query.
func OpenSQLite(path string) (*sqlx.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("empty sqlite path")
	}

	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open sqlite %s: %w", path, err)
	}

	return db, nil
}
