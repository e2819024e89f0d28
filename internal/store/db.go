// Package store provides SQLite persistence for timeaxis: settings, AI
// provider profiles, and custom events.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const (
	defaultRetryAttempts = 3
	defaultRetryBackoff  = 50 * time.Millisecond
)

// DB wraps the SQLite handle.
type DB struct {
	*sql.DB
}

// Open opens (or creates) the database at path.
func Open(path string, busyTimeoutMs int) (*DB, error) {
	if busyTimeoutMs <= 0 {
		busyTimeoutMs = 5000
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", path, busyTimeoutMs)

	handle, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{DB: handle}
	if err := db.Ping(); err != nil {
		handle.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// OpenInMemory opens a fresh in-memory database, used by tests.
func OpenInMemory() (*DB, error) {
	handle, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	// A single connection keeps every statement on the same in-memory db.
	handle.SetMaxOpenConns(1)

	return &DB{DB: handle}, nil
}

// MigrateUp creates the schema.
func (db *DB) MigrateUp(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS kv_settings (
			key        TEXT PRIMARY KEY,
			value_json TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ai_providers (
			id       TEXT PRIMARY KEY,
			name     TEXT NOT NULL,
			model_id TEXT NOT NULL DEFAULT '',
			api_key  TEXT NOT NULL DEFAULT '',
			base_url TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS custom_events (
			id         TEXT PRIMARY KEY,
			year       REAL NOT NULL,
			track      TEXT NOT NULL,
			title      TEXT NOT NULL,
			title_zh   TEXT NOT NULL DEFAULT '',
			tags_json  TEXT NOT NULL DEFAULT '[]',
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_custom_events_year ON custom_events(year)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}

	return nil
}

// Transaction runs fn inside a transaction, rolling back on error.
func (db *DB) Transaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// TransactionWithRetry runs a transaction with retry handling for busy
// database errors.
func (db *DB) TransactionWithRetry(ctx context.Context, fn func(*sql.Tx) error) error {
	attempt := 0
	backoff := defaultRetryBackoff

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		err := db.Transaction(ctx, fn)
		if err == nil {
			return nil
		}

		attempt++
		if !isBusyError(err) || attempt >= defaultRetryAttempts {
			return err
		}

		if err := sleepWithContext(ctx, backoff); err != nil {
			return err
		}
		backoff *= 2
	}
}

func isBusyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	message := strings.ToLower(err.Error())
	return strings.Contains(message, "database is locked") ||
		strings.Contains(message, "database is busy") ||
		strings.Contains(message, "sqlite_busy")
}

func sleepWithContext(ctx context.Context, duration time.Duration) error {
	timer := time.NewTimer(duration)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
