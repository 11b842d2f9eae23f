package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/ethanbaker/ragify/internal/prompt"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// Defaults for the hosted model
const (
	DefaultBaseURL     = "https://generativelanguage.googleapis.com/v1beta/openai/"
	DefaultModel       = "gemini-2.5-flash"
	DefaultTemperature = 0.2
	DefaultTimeout     = 60 * time.Second
)

// Options configures an OpenAIClient
type Options struct {
	BaseURL     string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// OpenAIClient talks to any OpenAI-compatible chat-completion endpoint
type OpenAIClient struct {
	baseURL     string
	model       string
	temperature float64
	timeout     time.Duration
}

// NewOpenAIClient creates a client, filling unset options with the defaults
func NewOpenAIClient(opts Options) *OpenAIClient {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(opts.BaseURL, "/") {
		opts.BaseURL += "/"
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	return &OpenAIClient{
		baseURL:     opts.BaseURL,
		model:       opts.Model,
		temperature: opts.Temperature,
		timeout:     opts.Timeout,
	}
}

// Model returns the model identifier sent with every request
func (c *OpenAIClient) Model() string {
	return c.model
}

// Complete sends one chat-completion request and returns the reply text.
// The request is never retried
func (c *OpenAIClient) Complete(ctx context.Context, apiKey string, messages []prompt.Message) (string, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return "", fmt.Errorf("%w: no API key provided", ErrAuthentication)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	// The key is per session, so the client is built per request
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(c.baseURL),
		option.WithMaxRetries(0),
	)

	completion, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    toParams(messages),
		Temperature: openai.Float(c.temperature),
	})
	if err != nil {
		return "", classify(err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: model returned no choices", ErrUpstream)
	}

	reply := strings.TrimSpace(completion.Choices[0].Message.Content)
	if reply == "" {
		return "", fmt.Errorf("%w: model returned an empty reply", ErrUpstream)
	}

	return reply, nil
}

// toParams converts assembled messages into request parameters
func toParams(messages []prompt.Message) []openai.ChatCompletionMessageParamUnion {
	params := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case prompt.RoleSystem:
			params = append(params, openai.SystemMessage(m.Content))
		case prompt.RoleAssistant:
			params = append(params, openai.AssistantMessage(m.Content))
		default:
			params = append(params, openai.UserMessage(m.Content))
		}
	}
	return params
}

// classify maps a client error onto the turn error taxonomy. Provider payloads are
// logged but never copied into the returned error
func classify(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		log.Printf("[LLM]: Provider returned HTTP %d: %s", apiErr.StatusCode, apiErr.Message)

		switch {
		case apiErr.StatusCode == http.StatusUnauthorized, apiErr.StatusCode == http.StatusForbidden:
			return fmt.Errorf("%w: provider rejected the API key (HTTP %d)", ErrAuthentication, apiErr.StatusCode)
		case apiErr.StatusCode == http.StatusBadRequest && rejectsKey(apiErr):
			return fmt.Errorf("%w: provider rejected the API key (HTTP %d)", ErrAuthentication, apiErr.StatusCode)
		case apiErr.StatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("%w: quota exceeded (HTTP %d)", ErrUpstream, apiErr.StatusCode)
		default:
			return fmt.Errorf("%w: provider returned HTTP %d", ErrUpstream, apiErr.StatusCode)
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: request timed out", ErrNetwork)
	}

	log.Printf("[LLM]: Request failed: %v", err)
	return fmt.Errorf("%w: request failed", ErrNetwork)
}

// rejectsKey reports whether a 400 response is about the key. Gemini may wrap its
// error object in an array, which leaves Message empty, so the raw body is checked too
func rejectsKey(apiErr *openai.Error) bool {
	if mentionsAPIKey(apiErr.Message) || mentionsAPIKey(apiErr.RawJSON()) {
		return true
	}
	return apiErr.Response != nil && mentionsAPIKey(string(apiErr.DumpResponse(true)))
}

// mentionsAPIKey reports whether a provider message is about the key itself
func mentionsAPIKey(message string) bool {
	message = strings.ToLower(message)
	return strings.Contains(message, "api key") || strings.Contains(message, "api_key")
}
