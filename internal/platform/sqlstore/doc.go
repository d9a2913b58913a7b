// Package sqlstore implements the store interfaces on top of database/sql.
//
// Two drivers are supported: "pgx" (PostgreSQL through jackc/pgx/v5/stdlib)
// and "sqlite" (pure Go SQLite through glebarez/go-sqlite). Queries are
// written with "?" placeholders and rebound for the active dialect, and the
// schema is applied from embedded goose migrations at startup.
package sqlstore
