package store

import (
	"errors"
	"sync"

	"github.com/Jadebat79/tts-web/internal/session"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found")

// Store is the in-memory session registry. Session state itself is
// lock-free single-owner state; the store provides the serialization,
// running at most one operation against a given session at a time.
// Nothing here survives a process restart.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*entry
}

type entry struct {
	mu   sync.Mutex
	sess *session.Session
}

func New() *Store {
	return &Store{sessions: make(map[uuid.UUID]*entry)}
}

// Add registers a session and returns its ID.
func (s *Store) Add(sess *session.Session) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = &entry{sess: sess}
	return sess.ID
}

// With runs fn against the session with exclusive access.
func (s *Store) With(id uuid.UUID, fn func(*session.Session)) error {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.sess)
	return nil
}

// Delete drops a session. Deleting an unknown ID is not an error.
func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
