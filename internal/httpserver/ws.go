package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/wordladder/internal/ladder"
	"github.com/robalobadob/wordladder/internal/store"
)

const wsWriteTimeout = 5 * time.Second

// wsOut is every server→browser message.
type wsOut struct {
	Type     string         `json:"type"` // update | pong | error
	Snapshot *snapshot      `json:"snapshot,omitempty"`
	Events   []ladder.Event `json:"events,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// handleWS upgrades to a WebSocket and applies ladder events as they arrive.
// The first message is always an update with the current snapshot.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	logger := hlog.FromRequest(r).With().Str("sessionId", sess.ID).Logger()

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.originPatterns(),
	})
	if err != nil {
		logger.Warn().Err(err).Msg("accept websocket")
		return
	}
	defer func() {
		if err := ws.Close(websocket.StatusNormalClosure, "session ended"); err != nil {
			logger.Debug().Err(err).Msg("close websocket")
		}
	}()
	logger.Info().Msg("websocket connected")

	ctx := r.Context()
	var snap snapshot
	sess.Do(func(l *ladder.Ladder) { snap = s.snapshotOf(l) })
	if err := s.writeWS(ctx, ws, wsOut{Type: "update", Snapshot: &snap, Events: []ladder.Event{}}); err != nil {
		logger.Debug().Err(err).Msg("write initial snapshot")
		return
	}

	s.wsLoop(ctx, ws, sess, logger)
}

func (s *Server) wsLoop(ctx context.Context, ws *websocket.Conn, sess *store.Session, logger zerolog.Logger) {
	for {
		_, msg, err := ws.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != -1 {
				logger.Debug().Msg("websocket closed by client")
			} else {
				logger.Warn().Err(err).Msg("websocket read")
			}
			return
		}

		var req eventReq
		if err := json.Unmarshal(msg, &req); err != nil {
			if err := s.writeWS(ctx, ws, wsOut{Type: "error", Error: "bad_json"}); err != nil {
				return
			}
			continue
		}

		out := wsOut{Type: "pong"}
		if req.Type != "ping" {
			res, err := s.applyEvent(sess, req.Type, req)
			if err != nil {
				out = wsOut{Type: "error", Error: err.Error()}
			} else {
				out = wsOut{Type: "update", Snapshot: &res.Snapshot, Events: res.Events}
			}
		}
		if err := s.writeWS(ctx, ws, out); err != nil {
			logger.Debug().Err(err).Msg("websocket write")
			return
		}
	}
}

func (s *Server) writeWS(ctx context.Context, ws *websocket.Conn, v wsOut) error {
	ctx, cancel := context.WithTimeout(ctx, wsWriteTimeout)
	defer cancel()
	return wsjson.Write(ctx, ws, v)
}

// originPatterns allows the configured client origin in addition to same-host
// requests, which the websocket package always accepts.
func (s *Server) originPatterns() []string {
	if s.opts.ClientOrigin == "" {
		return nil
	}
	u, err := url.Parse(s.opts.ClientOrigin)
	if err != nil || u.Host == "" {
		return nil
	}
	return []string{u.Host}
}
