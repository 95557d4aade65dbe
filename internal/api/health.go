package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/relay-letters/relay/internal/store"
)

// HealthHandler reports process and database readiness.
type HealthHandler struct {
	repo store.Repository
}

// NewHealthHandler creates a health handler over the snapshot store.
func NewHealthHandler(repo store.Repository) *HealthHandler {
	return &HealthHandler{repo: repo}
}

// RegisterHealth mounts the readiness endpoint. Liveness is served by the
// router's heartbeat middleware.
func (h *HealthHandler) RegisterHealth(r chi.Router) {
	r.Get("/health/ready", h.Ready)
}

// Ready verifies the snapshot store is reachable.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.repo.Ping(ctx); err != nil {
		Error(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
