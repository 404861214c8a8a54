// Package storage persists correction memory and expense records in SQLite.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"expenserule/internal/logging"
	"expenserule/internal/models"
)

// Repository wraps the SQLite database holding corrections and expenses.
type Repository struct {
	db     *sql.DB
	logger logging.Logger
}

// New opens (creating if needed) the database at dbPath and applies pending
// migrations. The parent directory is created with owner-only permissions
// since the database holds the user's financial records.
func New(dbPath string, logger logging.Logger) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), models.PermissionDataDir); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	logger.Debug("database ready", logging.Field{Key: logging.FieldPath, Value: dbPath})

	return &Repository{db: db, logger: logger}, nil
}

// Close releases the underlying database handle.
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping reports whether the database is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
