package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Repository using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a new SQLite-backed repository.
func NewSQLite(dbPath string) (Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// Open database with WAL mode for better concurrency.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS snapshots (
		user_id TEXT PRIMARY KEY,
		snapshot TEXT NOT NULL,
		saved_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_snapshots_updated ON snapshots(updated_at);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// SaveSnapshot creates or replaces the snapshot for a user.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, userID string, snapshot []byte, savedAt time.Time) error {
	query := `
	INSERT INTO snapshots (user_id, snapshot, saved_at, updated_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(user_id) DO UPDATE SET
		snapshot = excluded.snapshot,
		saved_at = excluded.saved_at,
		updated_at = excluded.updated_at`

	now := time.Now().Unix()
	if _, err := s.db.ExecContext(ctx, query, userID, string(snapshot), savedAt.Unix(), now); err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns the stored snapshot, or nil if none exists.
func (s *SQLiteStore) LoadSnapshot(ctx context.Context, userID string) ([]byte, error) {
	row := s.db.QueryRowContext(ctx, `SELECT snapshot FROM snapshots WHERE user_id = ?`, userID)

	var snapshot string
	err := row.Scan(&snapshot)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan snapshot row: %w", err)
	}
	return []byte(snapshot), nil
}

// ClearSnapshot removes a user's snapshot.
func (s *SQLiteStore) ClearSnapshot(ctx context.Context, userID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
