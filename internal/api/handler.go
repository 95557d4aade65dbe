// Package api provides HTTP handlers for the Relay interview API.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/relay-letters/relay/internal/export"
	"github.com/relay-letters/relay/internal/metrics"
	"github.com/relay-letters/relay/internal/session"
)

// Handler provides common handler utilities and dependencies.
type Handler struct {
	sessions *session.Manager
	exporter *export.Coordinator
	metrics  *metrics.Metrics

	importMaxBytes int64
	now            func() time.Time
}

// NewHandler creates a new Handler with common dependencies.
func NewHandler(sessions *session.Manager, exporter *export.Coordinator, m *metrics.Metrics, importMaxBytes int64) *Handler {
	return &Handler{
		sessions:       sessions,
		exporter:       exporter,
		metrics:        m,
		importMaxBytes: importMaxBytes,
		now:            time.Now,
	}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}
