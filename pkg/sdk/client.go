package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Error is returned for any non-2xx response
type Error struct {
	Method  string
	Path    string
	Code    int
	Message string
	Failure TurnFailure
}

func (e *Error) Error() string {
	if e.Failure.Kind != "" {
		return fmt.Sprintf("[BACKEND]: '%s %s' failed: %d (%s): %s", e.Method, e.Path, e.Code, e.Failure.Kind, e.Message)
	}
	return fmt.Sprintf("[BACKEND]: '%s %s' failed: %d: %s", e.Method, e.Path, e.Code, e.Message)
}

// Client wraps calls to the chat backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// Create a new session
func (c *Client) CreateSession(ctx context.Context) (*Session, error) {
	var out ApiResponse[Session]
	if err := c.doJSON(ctx, http.MethodPost, "/api/chat/sessions", nil, &out); err != nil {
		return nil, err
	}

	if out.Data.ID == "" {
		return nil, fmt.Errorf("no id returned")
	}

	return &out.Data, nil
}

// Get a session by UUID
func (c *Client) GetSession(ctx context.Context, uuid string) (*Session, error) {
	path := fmt.Sprintf("/api/chat/sessions/%s", uuid)

	var out ApiResponse[Session]
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}

	return &out.Data, nil
}

// Send one question to a session and return the assistant reply
func (c *Client) SendMessage(ctx context.Context, uuid string, content string) (*Turn, error) {
	path := fmt.Sprintf("/api/chat/sessions/%s/messages", uuid)

	var out ApiResponse[PostMessageResponse]
	if err := c.doJSON(ctx, http.MethodPost, path, &PostMessageRequest{Content: content}, &out); err != nil {
		return nil, err
	}

	return &out.Data.Reply, nil
}

// Clear the transcript of a session
func (c *Client) ClearSession(ctx context.Context, uuid string) error {
	path := fmt.Sprintf("/api/chat/sessions/%s/messages", uuid)

	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

// Set or remove the runtime API key of a session
func (c *Client) SetAPIKey(ctx context.Context, uuid string, key string) error {
	path := fmt.Sprintf("/api/chat/sessions/%s/key", uuid)

	return c.doJSON(ctx, http.MethodPut, path, &SetAPIKeyRequest{APIKey: key}, nil)
}

// End a session
func (c *Client) DeleteSession(ctx context.Context, uuid string) error {
	path := fmt.Sprintf("/api/chat/sessions/%s", uuid)

	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

// doJSON is a helper to perform JSON requests to the backend
func (c *Client) doJSON(ctx context.Context, method, path string, in any, out any) error {
	// Create request body if input is provided
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(b)
	}

	// Create the request
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	// Perform the request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(method, path, resp)
	}

	// If no output expected, return early
	if out == nil {
		return nil
	}

	// Decode the response body into the output struct
	dec := json.NewDecoder(resp.Body)
	return dec.Decode(out)
}

// decodeError reads the error envelope of a failed response
func decodeError(method, path string, resp *http.Response) error {
	apiErr := &Error{Method: method, Path: path, Code: resp.StatusCode}

	b, _ := io.ReadAll(resp.Body)

	var envelope struct {
		Message string      `json:"message"`
		Error   TurnFailure `json:"error"`
	}
	if err := json.Unmarshal(b, &envelope); err != nil {
		apiErr.Message = string(b)
		return apiErr
	}

	apiErr.Message = envelope.Message
	apiErr.Failure = envelope.Error
	return apiErr
}
