package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Swapnil-2005/movie-recommendation/internal/metrics"
)

// Store keeps one State per browser session.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*record
	idle     time.Duration
	now      func() time.Time
}

type record struct {
	state    *State
	lastSeen time.Time
}

// NewStore creates a store that forgets sessions idle for longer than idle.
// A zero idle keeps sessions forever.
func NewStore(idle time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*record),
		idle:     idle,
		now:      time.Now,
	}
}

// NewID returns a fresh random session id.
func NewID() string {
	return uuid.NewString()
}

// With runs fn on the state for id while holding the store lock, creating
// a home-screen state on first use. The lock serializes transitions from
// concurrent requests of the same session.
func (s *Store) With(id string, fn func(*State)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.sessions[id]
	if !ok {
		rec = &record{state: New()}
		s.sessions[id] = rec
		metrics.ActiveSessions.Set(float64(len(s.sessions)))
	}
	rec.lastSeen = s.now()
	fn(rec.state)
}

// Snapshot returns a copy of the state for id without creating one. Reading
// a live session counts as activity for Sweep.
func (s *Store) Snapshot(id string) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.sessions[id]
	if !ok {
		return State{screen: Home}, false
	}
	rec.lastSeen = s.now()
	return *rec.state, true
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops idle sessions and returns how many were removed.
func (s *Store) Sweep() int {
	if s.idle <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.idle)
	removed := 0
	for id, rec := range s.sessions {
		if rec.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	return removed
}
