package chat

import (
	"context"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/ethanbaker/ragify/internal/llm"
	"github.com/ethanbaker/ragify/internal/prompt"
)

// Controller runs user turns against the model for any number of sessions.
// It holds only read-only state, so one controller serves every session
type Controller struct {
	document string
	persona  *prompt.Persona
	model    llm.Client
	keys     *KeyResolver
	now      func() time.Time
}

// NewController creates a controller over the cached document text
func NewController(document string, persona *prompt.Persona, model llm.Client, keys *KeyResolver) *Controller {
	return &Controller{
		document: document,
		persona:  persona,
		model:    model,
		keys:     keys,
		now:      time.Now,
	}
}

// Keys returns the resolver used for every turn
func (c *Controller) Keys() *KeyResolver {
	return c.keys
}

// Submit runs one turn. The user turn is appended while the reply is awaited; on
// success the assistant turn follows it, on failure the user turn is withdrawn and
// a *TurnError is returned, leaving the transcript as it was before the call
func (c *Controller) Submit(ctx context.Context, sess *Session, text string) (Turn, error) {
	question := strings.TrimSpace(text)
	if question == "" {
		return Turn{}, ErrEmptyInput
	}

	// Idle -> Awaiting Reply
	sess.mu.Lock()
	if sess.busy {
		sess.mu.Unlock()
		return Turn{}, ErrBusy
	}
	sess.busy = true
	sess.lastActive = c.now()
	sess.turns = append(sess.turns, Turn{Role: RoleUser, Content: question, CreatedAt: c.now()})
	snapshot := slices.Clone(sess.turns)
	runtimeKey := sess.apiKey
	sess.mu.Unlock()

	reply, err := c.ask(ctx, runtimeKey, snapshot)

	// Awaiting Reply -> Idle
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.busy = false
	sess.lastActive = c.now()

	if err != nil {
		sess.turns = sess.turns[:len(sess.turns)-1]
		turnErr := &TurnError{Kind: KindOf(err), Question: question, Err: err}
		log.Printf("[CHAT]: Session %s turn failed: %v", sess.ID, turnErr)
		return Turn{}, turnErr
	}

	turn := Turn{Role: RoleAssistant, Content: reply, CreatedAt: c.now()}
	sess.turns = append(sess.turns, turn)
	return turn, nil
}

// ask assembles the request from the transcript snapshot and calls the model
func (c *Controller) ask(ctx context.Context, runtimeKey string, transcript []Turn) (string, error) {
	history := make([]prompt.Message, 0, len(transcript))
	for _, t := range transcript {
		role := prompt.RoleUser
		if t.Role == RoleAssistant {
			role = prompt.RoleAssistant
		}
		history = append(history, prompt.Message{Role: role, Content: t.Content})
	}

	messages := prompt.Assemble(c.persona, c.document, history)
	return c.model.Complete(ctx, c.keys.Resolve(runtimeKey), messages)
}

// Clear empties the transcript. It is only allowed while idle
func (c *Controller) Clear(sess *Session) error {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.busy {
		return ErrBusy
	}
	sess.turns = []Turn{}
	sess.lastActive = c.now()
	return nil
}

// SetAPIKey stores a runtime key on the session. An empty key removes it and
// restores the configured fallback. The key is never persisted
func (c *Controller) SetAPIKey(sess *Session, key string) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.apiKey = strings.TrimSpace(key)
	sess.lastActive = c.now()
}

// CanChat reports whether a key is available for the session's next turn
func (c *Controller) CanChat(sess *Session) bool {
	sess.mu.Lock()
	runtimeKey := sess.apiKey
	sess.mu.Unlock()
	return c.keys.Resolve(runtimeKey) != ""
}
