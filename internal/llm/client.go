// Package llm sends assembled prompts to the hosted chat-completion model.
package llm

import (
	"context"
	"errors"

	"github.com/ethanbaker/ragify/internal/prompt"
)

// Error taxonomy for a single turn. Every error returned by a Client matches one of these
var (
	// ErrAuthentication indicates a missing or rejected API key
	ErrAuthentication = errors.New("authentication failed")

	// ErrNetwork indicates a transport failure or an expired wait
	ErrNetwork = errors.New("network error")

	// ErrUpstream indicates a provider-side failure such as quota or model availability
	ErrUpstream = errors.New("upstream error")
)

// Client produces one reply for an assembled message list
type Client interface {
	Complete(ctx context.Context, apiKey string, messages []prompt.Message) (string, error)
}

// ClientFunc adapts a function to the Client interface
type ClientFunc func(ctx context.Context, apiKey string, messages []prompt.Message) (string, error)

// Complete calls f
func (f ClientFunc) Complete(ctx context.Context, apiKey string, messages []prompt.Message) (string, error) {
	return f(ctx, apiKey, messages)
}
