package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/wordladder/internal/ladder"
)

// Session is one player's ladder. All access goes through Do, so events for a
// session are applied one at a time in arrival order.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	ladder   *ladder.Ladder
	lastSeen time.Time
	now      func() time.Time
}

// NewSession builds a session with a fresh ladder for pairs.
func NewSession(pairs []ladder.Pair) *Session {
	return newSessionAt(pairs, time.Now)
}

func newSessionAt(pairs []ladder.Pair, now func() time.Time) *Session {
	t := now()
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: t,
		ladder:    ladder.New(pairs),
		lastSeen:  t,
		now:       now,
	}
}

// Do runs fn with exclusive access to the ladder and marks the session active.
func (s *Session) Do(fn func(l *ladder.Ladder)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = s.now()
	fn(s.ladder)
}

// LastSeen is the time of the most recent Do.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
