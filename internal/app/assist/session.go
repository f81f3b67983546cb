package assist

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"shiloassist/internal/app/ports"
	"shiloassist/internal/domain/activity"
	"shiloassist/internal/domain/targeting"
	"shiloassist/internal/domain/world"

	"github.com/google/uuid"
)

// Session holds everything one client bridge accumulates between ticks.
// All fields are guarded by mu; tick, frame and input calls for a session never interleave.
type Session struct {
	ID       string
	OpenedAt time.Time

	mu         sync.Mutex
	state      activity.State
	target     *targeting.Selection
	inRegion   bool
	last       *world.Observation
	lastTickAt time.Time
}

func (s *Session) reset() {
	s.state = activity.Reset()
	s.target = nil
	s.inRegion = false
}

type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	NewID    func() string
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: map[string]*Session{},
		NewID:    uuid.NewString,
	}
}

func (s *SessionStore) Open(now time.Time) *Session {
	sess := &Session{ID: s.NewID(), OpenedAt: now, state: activity.NewState()}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return sess
}

func (s *SessionStore) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[strings.TrimSpace(id)]
	if !ok {
		return nil, fmt.Errorf("session %q: %w", id, ports.ErrNotFound)
	}
	return sess, nil
}

func (s *SessionStore) Close(id string) error {
	s.mu.Lock()
	sess, ok := s.sessions[strings.TrimSpace(id)]
	delete(s.sessions, strings.TrimSpace(id))
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("session %q: %w", id, ports.ErrNotFound)
	}
	sess.mu.Lock()
	sess.reset()
	sess.mu.Unlock()
	return nil
}

func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
