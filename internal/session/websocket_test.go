package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relay-letters/relay/internal/identity"
	"github.com/relay-letters/relay/internal/metrics"
	"github.com/relay-letters/relay/internal/store"
)

func newWSTestServer(t *testing.T) (*httptest.Server, *Manager) {
	t.Helper()
	mgr := NewManager(store.NewMemory(), metrics.New(prometheus.NewRegistry()), time.Second)
	wsHandler := NewWebSocketHandler(mgr, true)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wsHandler.ServeHTTP(w, r.WithContext(identity.WithUserID(r.Context(), "anon_ws")))
	}))
	t.Cleanup(srv.Close)
	return srv, mgr
}

func dialWS(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	ws, _, err := websocket.Dial(ctx, "ws"+srv.URL[len("http"):], nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close(websocket.StatusNormalClosure, "done") })
	return ws
}

func readAck(t *testing.T, ws *websocket.Conn) wsAck {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, data, err := ws.Read(ctx)
	require.NoError(t, err)
	var ack wsAck
	require.NoError(t, json.Unmarshal(data, &ack))
	return ack
}

func TestWebSocketDispatch(t *testing.T) {
	srv, mgr := newWSTestServer(t)
	ws := dialWS(t, srv)

	ctx := context.Background()
	msg := `{"type":"setField","section":"aboutMe","field":"fullName","value":"Jane"}`
	require.NoError(t, ws.Write(ctx, websocket.MessageText, []byte(msg)))

	ack := readAck(t, ws)
	assert.Equal(t, "ack", ack.Type)
	assert.Equal(t, "aboutMe", ack.CurrentSection)

	sess, err := mgr.Get(ctx, "anon_ws")
	require.NoError(t, err)
	assert.Equal(t, "Jane", sess.State().Records["aboutMe"].Value("fullName"))
}

func TestWebSocketMalformedMessage(t *testing.T) {
	srv, _ := newWSTestServer(t)
	ws := dialWS(t, srv)

	ctx := context.Background()
	require.NoError(t, ws.Write(ctx, websocket.MessageText, []byte("not json")))

	ack := readAck(t, ws)
	assert.Equal(t, "error", ack.Type)
	assert.Equal(t, "malformed_message", ack.Error)
}

func TestWebSocketUnknownAction(t *testing.T) {
	srv, _ := newWSTestServer(t)
	ws := dialWS(t, srv)

	ctx := context.Background()
	require.NoError(t, ws.Write(ctx, websocket.MessageText, []byte(`{"type":"explode"}`)))

	ack := readAck(t, ws)
	assert.Equal(t, "error", ack.Type)
	assert.NotEmpty(t, ack.Error)
}

func TestWebSocketSequentialEdits(t *testing.T) {
	srv, mgr := newWSTestServer(t)
	ws := dialWS(t, srv)

	ctx := context.Background()
	for _, msg := range []string{
		`{"type":"setItemField","section":"contacts","index":0,"field":"name","value":"Jordan"}`,
		`{"type":"appendItem","section":"contacts"}`,
		`{"type":"setItemField","section":"contacts","index":1,"field":"name","value":"Maria"}`,
		`{"type":"setActiveSection","section":"contacts"}`,
	} {
		require.NoError(t, ws.Write(ctx, websocket.MessageText, []byte(msg)))
		ack := readAck(t, ws)
		require.Equal(t, "ack", ack.Type, msg)
	}

	sess, err := mgr.Get(ctx, "anon_ws")
	require.NoError(t, err)
	state := sess.State()
	require.Len(t, state.Records["contacts"].Items, 2)
	assert.Equal(t, "Jordan", state.Records["contacts"].Items[0].Value("name"))
	assert.Equal(t, "Maria", state.Records["contacts"].Items[1].Value("name"))
	assert.Equal(t, "contacts", state.CurrentSection)
}
