// internal/httpserver/routes_session.go
//
// HTTP routes for ladder sessions.
//   - POST /session/new   → start a session (dropping the caller's old one), set the cookie, return the first snapshot
//   - GET  /session/state → current snapshot
//   - POST /session/input → {index, text}
//   - POST /session/focus → {index}
//   - POST /session/nav   → {command} or {key}
//
// The same event dispatch (applyEvent) backs the WebSocket channel.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordladder/internal/ladder"
	"github.com/robalobadob/wordladder/internal/store"
)

// Event kinds accepted from the browser.
const (
	kindInput = "input"
	kindFocus = "focus"
	kindNav   = "nav"
	kindKey   = "key"
)

// eventReq is the payload for every ladder event, over HTTP or WebSocket.
type eventReq struct {
	Type    string `json:"type,omitempty"` // WebSocket only
	Index   *int   `json:"index,omitempty"`
	Text    string `json:"text,omitempty"`
	Command string `json:"command,omitempty"`
	Key     string `json:"key,omitempty"`
}

var (
	errMissingIndex   = errors.New("missing_index")
	errUnknownCommand = errors.New("unknown_command")
	errUnknownType    = errors.New("unknown_type")
)

// newSessionRes is returned by /session/new.
type newSessionRes struct {
	SessionID string   `json:"sessionId"`
	Token     string   `json:"token"`
	Snapshot  snapshot `json:"snapshot"`
}

// handleNewSession creates a fresh ladder for the loaded puzzle. A session
// the caller already holds is dropped first.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	s.dropPrevious(r)
	sess := store.NewSession(s.puzzle.Pairs())
	if err := s.store.Save(r.Context(), sess); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, exp, err := s.signToken(sess.ID)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("sign session token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	s.setSessionCookie(w, tok, exp)

	var snap snapshot
	sess.Do(func(l *ladder.Ladder) { snap = s.snapshotOf(l) })
	hlog.FromRequest(r).Info().Str("sessionId", sess.ID).Int("rungs", len(snap.Rungs)).Msg("session started")
	writeJSON(w, http.StatusOK, newSessionRes{SessionID: sess.ID, Token: tok, Snapshot: snap})
}

// dropPrevious deletes the session named by the request's token, if any.
func (s *Server) dropPrevious(r *http.Request) {
	tok := s.bearerOrCookie(r)
	if tok == "" {
		return
	}
	id, err := s.parseToken(tok)
	if err != nil {
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Str("sessionId", id).Msg("drop previous session")
		return
	}
	hlog.FromRequest(r).Debug().Str("sessionId", id).Msg("previous session dropped")
}

// handleState returns the current snapshot without changing anything.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	var snap snapshot
	sessionFrom(r).Do(func(l *ladder.Ladder) { snap = s.snapshotOf(l) })
	writeJSON(w, http.StatusOK, snap)
}

// handleEvent decodes an eventReq and applies it as kind.
func (s *Server) handleEvent(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req eventReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json")
			return
		}
		k := kind
		if k == kindNav && req.Command == "" && req.Key != "" {
			k = kindKey
		}
		res, err := s.applyEvent(sessionFrom(r), k, req)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// applyEvent validates req and applies it to the session's ladder.
// Invalid payloads are rejected before the ladder is touched.
func (s *Server) applyEvent(sess *store.Session, kind string, req eventReq) (updateRes, error) {
	var op func(l *ladder.Ladder) []ladder.Event

	switch kind {
	case kindInput:
		if req.Index == nil {
			return updateRes{}, errMissingIndex
		}
		i, text := *req.Index, req.Text
		op = func(l *ladder.Ladder) []ladder.Event { return l.UpdateRungInput(i, text) }
	case kindFocus:
		if req.Index == nil {
			return updateRes{}, errMissingIndex
		}
		i := *req.Index
		op = func(l *ladder.Ladder) []ladder.Event { l.SetFocusedIndex(i); return nil }
	case kindNav:
		cmd, ok := ladder.ParseCommand(req.Command)
		if !ok {
			return updateRes{}, errUnknownCommand
		}
		op = func(l *ladder.Ladder) []ladder.Event { return l.Navigate(cmd) }
	case kindKey:
		// Unbound keys are ignored; the browser may forward every keydown.
		cmd, ok := s.opts.KeyMap.Lookup(req.Key)
		op = func(l *ladder.Ladder) []ladder.Event {
			if !ok {
				return nil
			}
			return l.Navigate(cmd)
		}
	default:
		return updateRes{}, errUnknownType
	}

	var res updateRes
	sess.Do(func(l *ladder.Ladder) {
		res.Events = op(l)
		res.Snapshot = s.snapshotOf(l)
	})
	if res.Events == nil {
		res.Events = []ladder.Event{}
	}
	for _, ev := range res.Events {
		if ev.Kind == ladder.EventCompleted {
			logCompleted(sess)
		}
	}
	return res, nil
}

func logCompleted(sess *store.Session) {
	log.Info().Str("sessionId", sess.ID).Dur("elapsed", time.Since(sess.CreatedAt)).Msg("ladder completed")
}
