// internal/httpserver/server.go
//
// HTTP server wiring for the word ladder.
// Responsibilities:
//   - Router + middleware (request IDs, access logs, panic recovery, timeouts, CORS).
//   - Public endpoints: "/" and its files (embedded page, GET only), "/health", "/puzzle".
//   - Session endpoints: POST /session/new, then cookie-scoped
//     GET /session/state, POST /session/{input,focus,nav}, GET /session/ws.
//
// Notes:
//   - Sessions are identified by a signed HS256 token (cookie or bearer header).
//   - Every ladder event goes through store.Session.Do, so events for one
//     session are applied in arrival order.
//   - The WebSocket route skips the timeout and access-log wrappers; both
//     would break a long-lived hijacked connection.

package httpserver

import (
	"context"
	"encoding/json"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordladder/internal/ladder"
	"github.com/robalobadob/wordladder/internal/puzzle"
	"github.com/robalobadob/wordladder/internal/store"
)

// Options configures a Server.
type Options struct {
	Secret       string        // HMAC key for session tokens
	CookieName   string        // session cookie name
	SessionTTL   time.Duration // token lifetime
	Secure       bool          // Secure + SameSite=None cookies
	ClientOrigin string        // extra origin allowed for CORS and WebSocket
	KeyMap       KeyMap        // nil = DefaultKeyMap
	Web          fs.FS         // browser page; nil disables "/"
}

// Server bundles the router, the session store and the loaded puzzle.
type Server struct {
	r      *chi.Mux
	store  store.Store
	puzzle *puzzle.Puzzle
	opts   Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, pz *puzzle.Puzzle, opts Options) *Server {
	if opts.KeyMap == nil {
		opts.KeyMap = DefaultKeyMap
	}
	if opts.CookieName == "" {
		opts.CookieName = "ladder_session"
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 2 * time.Hour
	}
	s := &Server{r: chi.NewRouter(), store: st, puzzle: pz, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)             // add X-Request-ID
	s.r.Use(chimw.RealIP)                // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log.Logger)) // request-scoped zerolog logger
	s.r.Use(chimw.Recoverer)             // recover from panics
	s.r.Use(cors(opts.ClientOrigin))     // credentials-friendly CORS

	// Long-lived WebSocket: no timeout, no wrapped writer.
	s.r.With(s.withSession).Get("/session/ws", s.handleWS)

	s.r.Group(func(r chi.Router) {
		r.Use(accessLog)
		r.Use(chimw.Timeout(10 * time.Second))

		if opts.Web != nil {
			r.Get("/*", pageHandler(opts.Web, notFound))
		}

		r.Group(func(r chi.Router) {
			r.Use(jsonContentType)

			r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"ok":true}`))
			})
			r.Get("/puzzle", s.handlePuzzle)
			r.Post("/session/new", s.handleNewSession)

			r.Route("/session", func(r chi.Router) {
				r.Use(s.withSession)
				r.Get("/state", s.handleState)
				r.Post("/input", s.handleEvent(kindInput))
				r.Post("/focus", s.handleEvent(kindFocus))
				r.Post("/nav", s.handleEvent(kindNav))
			})
		})
	})

	// JSON 404/405 for easier debugging
	s.r.NotFound(notFound)
	s.r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed")
	})

	return s
}

// Start serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:        addr,
		Handler:     s.r,
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 120 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ------------------------------ PUZZLE -------------------------------------

// puzzleRes describes the loaded puzzle without revealing answers.
type puzzleRes struct {
	Title   string `json:"title"`
	Rules   string `json:"rules"`
	Rungs   int    `json:"rungs"`
	Lengths []int  `json:"lengths"`
}

func (s *Server) handlePuzzle(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, puzzleRes{
		Title:   s.puzzle.Title,
		Rules:   s.puzzle.Rules,
		Rungs:   len(s.puzzle.Rungs),
		Lengths: s.puzzle.AnswerLengths(),
	})
}

// ----------------------------- SNAPSHOT ------------------------------------

// snapshot is the per-session render data sent to the browser.
type snapshot struct {
	Title    string            `json:"title"`
	Rules    string            `json:"rules"`
	Focused  int               `json:"focused"`
	Complete bool              `json:"complete"`
	Rungs    []ladder.RungView `json:"rungs"`
}

// updateRes is returned for every applied event.
type updateRes struct {
	Snapshot snapshot       `json:"snapshot"`
	Events   []ladder.Event `json:"events"`
}

// snapshotOf must be called inside Session.Do.
func (s *Server) snapshotOf(l *ladder.Ladder) snapshot {
	return snapshot{
		Title:    s.puzzle.Title,
		Rules:    s.puzzle.Rules,
		Focused:  l.FocusedIndex(),
		Complete: l.IsComplete(),
		Rungs:    l.Rungs(),
	}
}

// ------------------------------- utils -------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func notFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	writeError(w, http.StatusNotFound, "not_found")
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
