package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/relay-letters/relay/internal/store"
)

type failingPingStore struct {
	*store.MemoryStore
}

func (failingPingStore) Ping(context.Context) error {
	return errors.New("connection refused")
}

func TestHealthReady(t *testing.T) {
	h := NewHealthHandler(store.NewMemory())
	r := chi.NewRouter()
	h.RegisterHealth(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthReadyDatabaseDown(t *testing.T) {
	h := NewHealthHandler(failingPingStore{store.NewMemory()})
	r := chi.NewRouter()
	h.RegisterHealth(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
