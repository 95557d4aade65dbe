package api

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/relay-letters/relay/internal/export"
	"github.com/relay-letters/relay/internal/identity"
	"github.com/relay-letters/relay/internal/interview"
	"github.com/relay-letters/relay/internal/session"
)

// RegisterRoutes mounts the interview and export endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/interview", func(r chi.Router) {
		r.Get("/", h.GetState)
		r.Delete("/", h.ResetState)
		r.Post("/actions", h.DispatchAction)
		r.Post("/import", h.ImportSnapshot)
		r.Post("/demo", h.LoadDemo)
		r.Get("/progress", h.GetProgress)
		r.Get("/snapshot", h.DownloadSnapshot)
	})
	r.Route("/api/export", func(r chi.Router) {
		r.Get("/markdown", h.ExportMarkdown)
		r.Get("/pdf", h.ExportPDF)
	})
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	userID := identity.UserIDFromContext(r.Context())
	if userID == "" {
		Error(w, http.StatusUnauthorized, "no identity")
		return nil, false
	}
	sess, err := h.sessions.Get(r.Context(), userID)
	if err != nil {
		slog.Error("Failed to open session", "user_id", userID, "error", err)
		Error(w, http.StatusInternalServerError, "failed to open session")
		return nil, false
	}
	return sess, true
}

func writeSnapshot(w http.ResponseWriter, state interview.State) {
	data, err := interview.EncodeSnapshot(state)
	if err != nil {
		Error(w, http.StatusInternalServerError, "failed to encode state")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// GetState returns the current interview state as a snapshot document,
// creating an empty session on first use.
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	writeSnapshot(w, sess.State())
}

// DispatchAction applies one editing action to the state.
func (h *Handler) DispatchAction(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, h.importMaxBytes))
	if err != nil {
		Error(w, http.StatusBadRequest, "failed to read request")
		return
	}
	req, err := interview.DecodeActionRequest(body)
	if err != nil {
		Error(w, http.StatusBadRequest, "malformed action")
		return
	}
	action, err := interview.ParseAction(req)
	if err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	state := sess.Dispatch(action)
	JSON(w, http.StatusOK, map[string]string{
		"lastSaved":      state.LastSaved,
		"currentSection": state.CurrentSection,
	})
}

// ImportSnapshot accepts an uploaded snapshot file. Validation is minimal by
// design; anything unrecognizable keeps the prior state and returns the one
// user-visible signal the flow permits.
func (h *Handler) ImportSnapshot(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, h.importMaxBytes))
	if err != nil {
		Error(w, http.StatusBadRequest, "failed to read request")
		return
	}
	if err := interview.ValidateImport(body); err != nil {
		if h.metrics != nil {
			h.metrics.ImportsRejected.Inc()
		}
		Error(w, http.StatusBadRequest, "invalid file")
		return
	}
	state, err := interview.DecodeSnapshot(body)
	if err != nil {
		if h.metrics != nil {
			h.metrics.ImportsRejected.Inc()
		}
		Error(w, http.StatusBadRequest, "invalid file")
		return
	}

	writeSnapshot(w, sess.Replace(state))
}

// LoadDemo replaces the state with the canned demo snapshot.
func (h *Handler) LoadDemo(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	writeSnapshot(w, sess.Replace(interview.Demo()))
}

// ResetState restores the all-empty state and clears the stored snapshot.
func (h *Handler) ResetState(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := sess.Reset(r.Context()); err != nil {
		slog.Error("Failed to reset session", "error", err)
		Error(w, http.StatusInternalServerError, "failed to reset")
		return
	}
	writeSnapshot(w, sess.State())
}

// GetProgress returns per-section completion summaries. The summaries come
// from the same predicate both compilers use, so the sidebar never disagrees
// with the generated document.
func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	JSON(w, http.StatusOK, interview.Progress(sess.State()))
}

// DownloadSnapshot serves the raw snapshot as a dated JSON file.
func (h *Handler) DownloadSnapshot(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	data, err := interview.EncodeSnapshot(sess.State())
	if err != nil {
		Error(w, http.StatusInternalServerError, "failed to encode state")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename("json", h.now())+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
