// Package database opens the local SQLite store and applies embedded schema
// migrations. The SQLite driver (modernc.org/sqlite) is registered by the
// binary entry point, not here, so tests can choose their own driver setup.
package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bookdesk/bookdesk/internal/database/migrations"
	"github.com/pressly/goose/v3"
)

// RunMigrations brings the schema of db up to date using the embedded
// goose migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Open opens (creating if necessary) the SQLite database at dsn and applies
// pending migrations. The returned handle is ready for repository use.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", dsn, err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
