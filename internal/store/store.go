// Package store persists per-user interview snapshots.
package store

import (
	"context"
	"time"
)

// Repository is the persistence collaborator for interview state. The
// serialized form is the full snapshot JSON; the store never interprets it.
type Repository interface {
	// SaveSnapshot creates or replaces the snapshot for a user.
	SaveSnapshot(ctx context.Context, userID string, snapshot []byte, savedAt time.Time) error

	// LoadSnapshot returns the stored snapshot, or nil if none exists.
	LoadSnapshot(ctx context.Context, userID string) ([]byte, error)

	// ClearSnapshot removes a user's snapshot. Clearing a missing snapshot
	// is not an error.
	ClearSnapshot(ctx context.Context, userID string) error

	// Ping verifies database connectivity.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
