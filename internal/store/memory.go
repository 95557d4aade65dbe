package store

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implements Repository in memory. Used in tests and as a
// fallback when no database path is usable.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

// NewMemory creates an empty in-memory repository.
func NewMemory() *MemoryStore {
	return &MemoryStore{snapshots: make(map[string][]byte)}
}

// SaveSnapshot creates or replaces the snapshot for a user.
func (s *MemoryStore) SaveSnapshot(_ context.Context, userID string, snapshot []byte, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(snapshot))
	copy(buf, snapshot)
	s.snapshots[userID] = buf
	return nil
}

// LoadSnapshot returns the stored snapshot, or nil if none exists.
func (s *MemoryStore) LoadSnapshot(_ context.Context, userID string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot, ok := s.snapshots[userID]
	if !ok {
		return nil, nil
	}
	buf := make([]byte, len(snapshot))
	copy(buf, snapshot)
	return buf, nil
}

// ClearSnapshot removes a user's snapshot.
func (s *MemoryStore) ClearSnapshot(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, userID)
	return nil
}

// Ping always succeeds.
func (s *MemoryStore) Ping(context.Context) error { return nil }

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
