// Package session holds the live interview state for connected users and
// writes it through to the snapshot store after a debounce, coalescing
// bursts of edits into one write.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"

	"github.com/relay-letters/relay/internal/interview"
	"github.com/relay-letters/relay/internal/metrics"
	"github.com/relay-letters/relay/internal/store"
)

// Manager owns one Session per user.
type Manager struct {
	repo     store.Repository
	metrics  *metrics.Metrics
	debounce time.Duration

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a session manager persisting through repo. Writes are
// coalesced: a session is saved debounce after its last change.
func NewManager(repo store.Repository, m *metrics.Metrics, debounce time.Duration) *Manager {
	return &Manager{
		repo:     repo,
		metrics:  m,
		debounce: debounce,
		sessions: make(map[string]*Session),
	}
}

// Get returns the user's live session, restoring it from the store on first
// access. A corrupted stored snapshot falls back to the initial state rather
// than failing the request.
func (m *Manager) Get(ctx context.Context, userID string) (*Session, error) {
	m.mu.Lock()
	if s, ok := m.sessions[userID]; ok {
		m.mu.Unlock()
		return s, nil
	}
	m.mu.Unlock()

	state := interview.Initial()
	raw, err := m.repo.LoadSnapshot(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if raw != nil {
		restored, err := interview.DecodeSnapshot(raw)
		if err != nil {
			slog.Warn("Stored snapshot is corrupted, starting fresh", "user_id", userID, "error", err)
		} else {
			state = restored
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// Another request may have raced us here; keep the first session.
	if s, ok := m.sessions[userID]; ok {
		return s, nil
	}
	s := &Session{mgr: m, userID: userID, state: state}
	m.sessions[userID] = s
	return s, nil
}

// FlushAll persists every dirty session. Called on shutdown.
func (m *Manager) FlushAll(ctx context.Context) {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.Unlock()

	for _, s := range sessions {
		s.flush(ctx)
	}
}

// Session is the live state of one user's interview. All access goes through
// its mutex; the state value itself is immutable, so reads hand out the
// current version without copying.
type Session struct {
	mgr    *Manager
	userID string

	mu    sync.Mutex
	state interview.State
	dirty bool
	timer *time.Timer
}

// State returns the current state snapshot.
func (s *Session) State() interview.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies one action through the reducer and schedules a debounced
// save. The returned state is the new version.
func (s *Session) Dispatch(action interview.Action) interview.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := interview.Apply(s.state, action)
	if reflect.DeepEqual(next, s.state) {
		// No-op actions (stale index, wrong shape) change nothing and
		// should not trigger a write.
		return s.state
	}
	s.state = next
	s.markDirtyLocked()
	if s.mgr.metrics != nil {
		s.mgr.metrics.ActionApplied(fmt.Sprintf("%T", action))
	}
	return s.state
}

// Replace loads a whole snapshot (import, demo data) and schedules a save.
func (s *Session) Replace(state interview.State) interview.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = interview.Apply(s.state, interview.LoadSnapshot{State: state})
	s.markDirtyLocked()
	return s.state
}

// Reset restores the initial state and removes the persisted snapshot.
func (s *Session) Reset(ctx context.Context) error {
	s.mu.Lock()
	s.state = interview.Apply(s.state, interview.Reset{})
	s.dirty = false
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	if err := s.mgr.repo.ClearSnapshot(ctx, s.userID); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	return nil
}

func (s *Session) markDirtyLocked() {
	s.dirty = true
	if s.timer != nil {
		s.timer.Reset(s.mgr.debounce)
		return
	}
	s.timer = time.AfterFunc(s.mgr.debounce, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.flush(ctx)
	})
}

// flush writes the current state through to the store. Storage failures are
// logged and dropped — losing a save is acceptable, failing the session is
// not.
func (s *Session) flush(ctx context.Context) {
	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return
	}
	s.dirty = false
	s.timer = nil
	state := s.state
	s.mu.Unlock()

	now := time.Now()
	raw, err := interview.EncodeSnapshot(state)
	if err != nil {
		slog.Error("Failed to encode snapshot", "user_id", s.userID, "error", err)
		return
	}
	if err := s.mgr.repo.SaveSnapshot(ctx, s.userID, raw, now); err != nil {
		slog.Warn("Failed to persist snapshot", "user_id", s.userID, "error", err)
		if s.mgr.metrics != nil {
			s.mgr.metrics.SnapshotSaveFailures.Inc()
		}
		return
	}
	if s.mgr.metrics != nil {
		s.mgr.metrics.SnapshotSaves.Inc()
	}

	s.mu.Lock()
	s.state = interview.Apply(s.state, interview.MarkPersisted{Timestamp: now})
	s.mu.Unlock()
}
