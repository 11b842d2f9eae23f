package chat

import (
	"errors"
	"fmt"

	"github.com/ethanbaker/ragify/internal/llm"
)

var (
	// ErrEmptyInput rejects blank questions before any network call
	ErrEmptyInput = errors.New("question is empty")

	// ErrBusy rejects actions while a reply is awaited
	ErrBusy = errors.New("a reply is already in progress")

	// ErrSessionNotFound is returned for unknown or expired sessions
	ErrSessionNotFound = errors.New("session not found")
)

// ErrorKind is the user-facing category of a failed action
type ErrorKind string

const (
	KindValidation     ErrorKind = "validation"
	KindBusy           ErrorKind = "busy"
	KindAuthentication ErrorKind = "authentication"
	KindNetwork        ErrorKind = "network"
	KindUpstream       ErrorKind = "upstream"
	KindNotFound       ErrorKind = "not_found"
	KindInternal       ErrorKind = "internal"
)

// TurnError reports a model call that failed. The question is not kept in the
// transcript, so it is carried here for display and resubmission
type TurnError struct {
	Kind     ErrorKind
	Question string
	Err      error
}

func (e *TurnError) Error() string {
	return fmt.Sprintf("turn failed (%s): %v", e.Kind, e.Err)
}

func (e *TurnError) Unwrap() error {
	return e.Err
}

// KindOf classifies an error returned by the controller or the store
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyInput):
		return KindValidation
	case errors.Is(err, ErrBusy):
		return KindBusy
	case errors.Is(err, ErrSessionNotFound):
		return KindNotFound
	case errors.Is(err, llm.ErrAuthentication):
		return KindAuthentication
	case errors.Is(err, llm.ErrNetwork):
		return KindNetwork
	case errors.Is(err, llm.ErrUpstream):
		return KindUpstream
	default:
		return KindInternal
	}
}

// UserMessage converts an error into text that is safe to show in the chat widget
func UserMessage(err error) string {
	switch KindOf(err) {
	case KindValidation:
		return "Please enter a question."
	case KindBusy:
		return "Still working on the previous question. Please wait for the reply."
	case KindNotFound:
		return "This conversation has expired. Reload the page to start a new one."
	case KindAuthentication:
		return "The model rejected the request because no valid API key is available. Paste your Gemini API key in the sidebar or set GOOGLE_API_KEY, then try again."
	case KindNetwork:
		return "The model could not be reached in time. This is usually temporary, so please resubmit your question."
	case KindUpstream:
		return "The model service could not answer right now (for example, quota exceeded or model unavailable). Please try again later."
	case "":
		return ""
	default:
		return "Something went wrong while calling the model."
	}
}
