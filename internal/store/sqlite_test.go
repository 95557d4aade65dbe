package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) Repository {
	t.Helper()
	repo, err := NewSQLite(filepath.Join(t.TempDir(), "relay-test.db"))
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})
	return repo
}

func TestSaveAndLoadSnapshot(t *testing.T) {
	repo := newTestStore(t)
	ctx := context.Background()

	snapshot := []byte(`{"contacts":[{"id":"a","name":"Jane"}]}`)
	if err := repo.SaveSnapshot(ctx, "anon_1", snapshot, time.Now()); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	got, err := repo.LoadSnapshot(ctx, "anon_1")
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if string(got) != string(snapshot) {
		t.Errorf("Expected %s, got %s", snapshot, got)
	}
}

func TestLoadSnapshotMissing(t *testing.T) {
	repo := newTestStore(t)

	got, err := repo.LoadSnapshot(context.Background(), "anon_missing")
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for missing snapshot, got %s", got)
	}
}

func TestSaveSnapshotReplaces(t *testing.T) {
	repo := newTestStore(t)
	ctx := context.Background()

	if err := repo.SaveSnapshot(ctx, "anon_1", []byte(`{"v":1}`), time.Now()); err != nil {
		t.Fatalf("first SaveSnapshot failed: %v", err)
	}
	if err := repo.SaveSnapshot(ctx, "anon_1", []byte(`{"v":2}`), time.Now()); err != nil {
		t.Fatalf("second SaveSnapshot failed: %v", err)
	}

	got, err := repo.LoadSnapshot(ctx, "anon_1")
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if string(got) != `{"v":2}` {
		t.Errorf("Expected replaced snapshot, got %s", got)
	}
}

func TestClearSnapshot(t *testing.T) {
	repo := newTestStore(t)
	ctx := context.Background()

	if err := repo.SaveSnapshot(ctx, "anon_1", []byte(`{}`), time.Now()); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if err := repo.ClearSnapshot(ctx, "anon_1"); err != nil {
		t.Fatalf("ClearSnapshot failed: %v", err)
	}
	got, err := repo.LoadSnapshot(ctx, "anon_1")
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected snapshot cleared, got %s", got)
	}

	// Clearing again is not an error.
	if err := repo.ClearSnapshot(ctx, "anon_1"); err != nil {
		t.Errorf("ClearSnapshot on missing row failed: %v", err)
	}
}
