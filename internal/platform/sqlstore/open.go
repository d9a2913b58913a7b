package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	// Registers the "sqlite" driver.
	_ "github.com/glebarez/go-sqlite"
	// Registers the "pgx" driver.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Supported driver names.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

// Open connects to the database identified by driver and url, configures the
// connection pool and verifies connectivity with a ping.
func Open(ctx context.Context, driver, url string) (*sql.DB, error) {
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	if driver == DriverSQLite {
		if err := ensureSQLiteDir(url); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if driver == DriverSQLite {
		// SQLite allows a single writer; serialize access through one connection.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// ensureSQLiteDir creates the parent directory of a file-backed SQLite
// database so a fresh checkout can start without manual setup.
func ensureSQLiteDir(url string) error {
	path := strings.TrimPrefix(url, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || strings.HasPrefix(path, ":memory:") {
		return nil
	}

	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	return nil
}

// rebind rewrites "?" placeholders into the "$N" form PostgreSQL expects.
// Queries for other drivers are returned unchanged.
func rebind(driver, query string) string {
	if driver != DriverPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
