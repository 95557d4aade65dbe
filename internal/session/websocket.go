package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/relay-letters/relay/internal/identity"
	"github.com/relay-letters/relay/internal/interview"
)

// WebSocketHandler accepts a live editing channel: the frontend streams
// editing actions as it renders keystrokes, and the server answers each with
// an acknowledgment carrying the persistence timestamp. It is the same
// dispatch path as the REST endpoint, just without per-edit request
// overhead.
type WebSocketHandler struct {
	sessions *Manager
	isDev    bool
}

// NewWebSocketHandler creates a WebSocket handler over the session manager.
func NewWebSocketHandler(sessions *Manager, isDev bool) *WebSocketHandler {
	return &WebSocketHandler{sessions: sessions, isDev: isDev}
}

type wsAck struct {
	Type           string `json:"type"`
	LastSaved      string `json:"lastSaved,omitempty"`
	CurrentSection string `json:"currentSection,omitempty"`
	Error          string `json:"error,omitempty"`
}

// ServeHTTP implements http.Handler for WebSocket upgrade.
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	slog.Info("Interview channel connection request", "user_id", userID, "ip", r.RemoteAddr)

	opts := &websocket.AcceptOptions{}
	if h.isDev {
		opts.OriginPatterns = []string{"*"}
	}
	ws, err := websocket.Accept(w, r, opts)
	if err != nil {
		slog.Error("Failed to accept WebSocket", "error", err, "user_id", userID)
		return
	}
	defer func() {
		if closeErr := ws.Close(websocket.StatusNormalClosure, "session ended"); closeErr != nil {
			slog.Debug("Failed to close websocket", "error", closeErr, "user_id", userID)
		}
	}()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	sess, err := h.sessions.Get(ctx, userID)
	if err != nil {
		slog.Error("Failed to open session", "error", err, "user_id", userID)
		h.writeJSON(ctx, ws, wsAck{Type: "error", Error: "session_unavailable"})
		return
	}

	for {
		_, data, err := ws.Read(ctx)
		if err != nil {
			slog.Debug("Interview channel closed", "user_id", userID, "error", err)
			return
		}
		h.handleMessage(ctx, ws, sess, data)
	}
}

func (h *WebSocketHandler) handleMessage(ctx context.Context, ws *websocket.Conn, sess *Session, data []byte) {
	req, err := interview.DecodeActionRequest(data)
	if err != nil {
		h.writeJSON(ctx, ws, wsAck{Type: "error", Error: "malformed_message"})
		return
	}
	action, err := interview.ParseAction(req)
	if err != nil {
		h.writeJSON(ctx, ws, wsAck{Type: "error", Error: err.Error()})
		return
	}
	state := sess.Dispatch(action)
	h.writeJSON(ctx, ws, wsAck{
		Type:           "ack",
		LastSaved:      state.LastSaved,
		CurrentSection: state.CurrentSection,
	})
}

func (h *WebSocketHandler) writeJSON(ctx context.Context, ws *websocket.Conn, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := ws.Write(ctx, websocket.MessageText, data); err != nil {
		slog.Debug("WebSocket write error", "error", err)
	}
}
