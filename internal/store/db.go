// Package store is the persisted store bridge: it mirrors the in-memory cart
// (and the auth session, under a separate record with its own expiry policy)
// to a local SQLite database, and rehydrates them at startup. Storage
// corruption is non-fatal: a record that cannot be decoded is replaced by
// defaults on the next save.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"storefront/internal/store/migrations"
)

// RunMigrations applies the embedded goose migrations to db. It is
// idempotent; running it on an up-to-date database is a no-op.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// OpenDatabase opens (creating if needed) the client database at dsn and
// brings the schema up to date.
func OpenDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
