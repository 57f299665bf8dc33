package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordladder/internal/ladder"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

var pairs = []ladder.Pair{
	{Clue: "Animal with horns", Answer: "BULL"},
	{Clue: "Paper money", Answer: "BILL"},
}

func TestMemorySaveGetDelete(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	s := NewSession(pairs)
	require.NotEmpty(t, s.ID)
	require.NoError(t, st.Save(ctx, s))
	assert.Equal(t, 1, st.Len())

	got, err := st.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	require.NoError(t, st.Delete(ctx, s.ID))
	_, err = st.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, st.Delete(ctx, "unknown"))
}

func TestSessionIDsAreUnique(t *testing.T) {
	a, b := NewSession(pairs), NewSession(pairs)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestMemoryExpireDropsIdleSessions(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)}
	st := newMemory(clock.Now)

	idle := newSessionAt(pairs, clock.Now)
	active := newSessionAt(pairs, clock.Now)
	require.NoError(t, st.Save(ctx, idle))
	require.NoError(t, st.Save(ctx, active))

	clock.Advance(90 * time.Minute)
	active.Do(func(l *ladder.Ladder) { l.UpdateRungInput(0, "b") })
	clock.Advance(45 * time.Minute)

	n, err := st.Expire(ctx, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = st.Get(ctx, idle.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = st.Get(ctx, active.ID)
	assert.NoError(t, err)
}

func TestSessionDoSerializesEvents(t *testing.T) {
	s := NewSession(pairs)

	var wg sync.WaitGroup
	var mu sync.Mutex
	completions := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Do(func(l *ladder.Ladder) {
				events := l.UpdateRungInput(i%2, pairs[i%2].Answer)
				for _, ev := range events {
					if ev.Kind == ladder.EventCompleted {
						mu.Lock()
						completions++
						mu.Unlock()
					}
				}
			})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, completions)
	s.Do(func(l *ladder.Ladder) { assert.True(t, l.IsComplete()) })
}

func TestSweeperStopsWithContext(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	st := newMemory(clock.Now)
	s := newSessionAt(pairs, clock.Now)
	require.NoError(t, st.Save(context.Background(), s))
	clock.Advance(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	StartSweeper(ctx, st, time.Minute, 5*time.Millisecond)

	assert.Eventually(t, func() bool { return st.Len() == 0 }, time.Second, 5*time.Millisecond)
}
