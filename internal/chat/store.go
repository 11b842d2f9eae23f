package chat

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store is the in-memory registry of live sessions
type Store struct {
	sessions map[uuid.UUID]*Session
	mutex    sync.RWMutex
	now      func() time.Time
}

// NewStore creates an empty session store
func NewStore() *Store {
	return &Store{
		sessions: make(map[uuid.UUID]*Session),
		now:      time.Now,
	}
}

// Create starts a new session with an empty transcript
func (s *Store) Create() *Session {
	sess := newSession(s.now())

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.sessions[sess.ID] = sess

	return sess
}

// Get retrieves a session by ID
func (s *Store) Get(id uuid.UUID) (*Session, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	sess, exists := s.sessions[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return sess, nil
}

// Find parses a session ID string and retrieves the session
func (s *Store) Find(id string) (*Session, error) {
	guid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid session ID format: %v", ErrSessionNotFound, err)
	}
	return s.Get(guid)
}

// Delete removes a session and returns it. A session awaiting a reply cannot be removed
func (s *Store) Delete(id uuid.UUID) (*Session, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	sess, exists := s.sessions[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if sess.State() == StateAwaitingReply {
		return nil, ErrBusy
	}

	delete(s.sessions, id)
	return sess, nil
}

// Len returns the number of live sessions
func (s *Store) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.sessions)
}

// Sweep removes idle sessions with no activity for longer than ttl and returns
// how many were removed. Sessions awaiting a reply are kept
func (s *Store) Sweep(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)

	s.mutex.Lock()
	defer s.mutex.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.expired(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
