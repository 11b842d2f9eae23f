package sdk

import (
	"time"

	"github.com/ethanbaker/api/pkg/api_types"
)

// ApiResponse represents a standard API response structure
type ApiResponse[T any] struct {
	Status  api_types.StatusType `json:"status"`          // Status message
	Code    int                  `json:"code"`            // Status code
	Message string               `json:"message"`         // Human-readable message
	Data    T                    `json:"data,omitempty"`  // Optional data field for successful responses
	Error   any                  `json:"error,omitempty"` // Optional errors field for error responses
}

// AsGinResponse converts the ApiResponse to a format suitable for Gin framework
func (r ApiResponse[T]) AsGinResponse() (int, any) {
	return r.Code, r
}

func NewSuccessResponse[T any](message string, data T) ApiResponse[T] {
	return ApiResponse[T]{
		Status:  api_types.StatusSuccess,
		Code:    200,
		Message: message,
		Data:    data,
	}
}

func NewErrorResponse(code int, message string, err any) ApiResponse[any] {
	return ApiResponse[any]{
		Status:  api_types.StatusError,
		Code:    code,
		Message: message,
		Error:   err,
	}
}

/** Requests */

// PostMessageRequest represents the request body for one user turn
type PostMessageRequest struct {
	Content string `json:"content"`
}

// SetAPIKeyRequest represents the request body for supplying a runtime API key.
// An empty key removes the runtime value
type SetAPIKeyRequest struct {
	APIKey string `json:"api_key"`
}

/** Responses */

// Turn represents one transcript entry
type Turn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	HTML      string    `json:"html"` // Sanitized rendering for the chat widget
	CreatedAt time.Time `json:"created_at"`
}

// Session represents a chat session and its transcript
type Session struct {
	ID         string    `json:"id"`
	State      string    `json:"state"`       // "idle" or "awaiting_reply"
	HasAPIKey  bool      `json:"has_api_key"` // A runtime key was supplied
	CanChat    bool      `json:"can_chat"`    // A runtime or configured key is available
	CreatedAt  time.Time `json:"created_at"`
	LastActive time.Time `json:"last_active"` // Sessions idle past the TTL are ended
	Turns      []Turn    `json:"turns"`
}

// PostMessageResponse represents the assistant reply to one turn
type PostMessageResponse struct {
	Reply Turn `json:"reply"`
}

// TurnFailure is the error payload of a failed request
type TurnFailure struct {
	Kind     string `json:"kind"`               // validation, busy, authentication, network, upstream, not_found, internal
	Question string `json:"question,omitempty"` // The withdrawn question, for resubmission
}
