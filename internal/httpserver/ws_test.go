package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordladder/internal/ladder"
)

func dialSession(t *testing.T, ctx context.Context) *websocket.Conn {
	t.Helper()
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	resp, err := http.Post(ts.URL+"/session/new", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	var res newSessionRes
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/session/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, &websocket.DialOptions{
		HTTPHeader: http.Header{"Authorization": []string{"Bearer " + res.Token}},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close(websocket.StatusNormalClosure, "") })
	return conn
}

func roundTrip(t *testing.T, ctx context.Context, conn *websocket.Conn, msg any) wsOut {
	t.Helper()
	require.NoError(t, wsjson.Write(ctx, conn, msg))
	var out wsOut
	require.NoError(t, wsjson.Read(ctx, conn, &out))
	return out
}

func TestWebSocketSession(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn := dialSession(t, ctx)

	var first wsOut
	require.NoError(t, wsjson.Read(ctx, conn, &first))
	assert.Equal(t, "update", first.Type)
	require.NotNil(t, first.Snapshot)
	assert.Len(t, first.Snapshot.Rungs, 2)

	out := roundTrip(t, ctx, conn, map[string]any{"type": "ping"})
	assert.Equal(t, wsOut{Type: "pong"}, out)

	out = roundTrip(t, ctx, conn, map[string]any{"type": "input", "index": 0, "text": "bull"})
	assert.Equal(t, "update", out.Type)
	assert.Equal(t, []ladder.Event{{Kind: ladder.EventFocus, Index: 1}}, out.Events)

	out = roundTrip(t, ctx, conn, map[string]any{"type": "focus", "index": 1})
	assert.Equal(t, 1, out.Snapshot.Focused)

	require.NoError(t, wsjson.Write(ctx, conn, map[string]any{"type": "key", "key": "ArrowUp"}))
	_, frame, err := conn.Read(ctx)
	require.NoError(t, err)
	assert.Contains(t, string(frame), `"events":[{"kind":"focus","index":0}]`)
	require.NoError(t, json.Unmarshal(frame, &out))
	assert.Equal(t, []ladder.Event{{Kind: ladder.EventFocus, Index: 0}}, out.Events)

	out = roundTrip(t, ctx, conn, map[string]any{"type": "input", "index": 1, "text": "bill"})
	assert.Equal(t, []ladder.Event{{Kind: ladder.EventCompleted}}, out.Events)
	assert.True(t, out.Snapshot.Complete)
}

func TestWebSocketErrors(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn := dialSession(t, ctx)

	var first wsOut
	require.NoError(t, wsjson.Read(ctx, conn, &first))

	out := roundTrip(t, ctx, conn, map[string]any{"type": "teleport"})
	assert.Equal(t, wsOut{Type: "error", Error: "unknown_type"}, out)

	out = roundTrip(t, ctx, conn, map[string]any{"type": "input", "text": "bull"})
	assert.Equal(t, wsOut{Type: "error", Error: "missing_index"}, out)

	require.NoError(t, conn.Write(ctx, websocket.MessageText, []byte("{oops")))
	require.NoError(t, wsjson.Read(ctx, conn, &out))
	assert.Equal(t, wsOut{Type: "error", Error: "bad_json"}, out)

	// The connection survives bad messages.
	out = roundTrip(t, ctx, conn, map[string]any{"type": "ping"})
	assert.Equal(t, "pong", out.Type)
}

func TestWebSocketRequiresSession(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, resp, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/session/ws", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
