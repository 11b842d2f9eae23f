// Package chat owns per-session transcripts and drives one model call per user turn.
package chat

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a turn
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one role-tagged entry of a transcript
type Turn struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// State is the lifecycle state of a session
type State string

const (
	StateIdle          State = "idle"
	StateAwaitingReply State = "awaiting_reply"
)

// Session holds the transcript, runtime API key and busy flag of one browser session.
// Nothing in a session is shared with any other session
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time

	mu         sync.Mutex
	turns      []Turn
	apiKey     string
	busy       bool
	lastActive time.Time
}

func newSession(now time.Time) *Session {
	return &Session{
		ID:         uuid.New(),
		CreatedAt:  now,
		turns:      []Turn{},
		lastActive: now,
	}
}

// Transcript returns a copy of the turns in chronological order
func (s *Session) Transcript() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.turns)
}

// Len returns the number of turns in the transcript
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.turns)
}

// State reports whether a request is in flight
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return StateAwaitingReply
	}
	return StateIdle
}

// HasAPIKey reports whether a runtime key was supplied for this session
func (s *Session) HasAPIKey() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apiKey != ""
}

// LastActive returns the time of the last user action on the session
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// expired reports whether the session is idle and untouched since before the cutoff
func (s *Session) expired(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.busy && s.lastActive.Before(cutoff)
}
