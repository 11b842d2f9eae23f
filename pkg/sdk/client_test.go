package sdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClientRoundTrip(t *testing.T) {
	const id = "6f1c2a4e-0000-4000-8000-000000000000"

	var gotContent, gotKey string
	var cleared, deleted bool

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/chat/sessions", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, NewSuccessResponse("Session created successfully", Session{ID: id, State: "idle", CanChat: true}))
	})
	mux.HandleFunc("GET /api/chat/sessions/{uuid}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, NewSuccessResponse("ok", Session{ID: r.PathValue("uuid"), Turns: []Turn{{Role: "user", Content: "hi"}}}))
	})
	mux.HandleFunc("POST /api/chat/sessions/{uuid}/messages", func(w http.ResponseWriter, r *http.Request) {
		var req PostMessageRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotContent = req.Content
		writeJSON(w, http.StatusOK, NewSuccessResponse("ok", PostMessageResponse{Reply: Turn{Role: "assistant", Content: "Recommended Retriever: BM25"}}))
	})
	mux.HandleFunc("DELETE /api/chat/sessions/{uuid}/messages", func(w http.ResponseWriter, r *http.Request) {
		cleared = true
		writeJSON(w, http.StatusOK, NewSuccessResponse("ok", Session{ID: id}))
	})
	mux.HandleFunc("PUT /api/chat/sessions/{uuid}/key", func(w http.ResponseWriter, r *http.Request) {
		var req SetAPIKeyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotKey = req.APIKey
		writeJSON(w, http.StatusOK, NewSuccessResponse("ok", Session{ID: id, HasAPIKey: true}))
	})
	mux.HandleFunc("DELETE /api/chat/sessions/{uuid}", func(w http.ResponseWriter, r *http.Request) {
		deleted = true
		writeJSON(w, http.StatusOK, NewSuccessResponse[any]("ok", nil))
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	ctx := context.Background()
	client := NewClient(server.URL)

	sess, err := client.CreateSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, id, sess.ID)
	assert.True(t, sess.CanChat)

	got, err := client.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	require.Len(t, got.Turns, 1)

	reply, err := client.SendMessage(ctx, id, "Best retriever?")
	require.NoError(t, err)
	assert.Equal(t, "Best retriever?", gotContent)
	assert.Equal(t, "assistant", reply.Role)
	assert.Equal(t, "Recommended Retriever: BM25", reply.Content)

	require.NoError(t, client.SetAPIKey(ctx, id, "secret"))
	assert.Equal(t, "secret", gotKey)

	require.NoError(t, client.ClearSession(ctx, id))
	assert.True(t, cleared)

	require.NoError(t, client.DeleteSession(ctx, id))
	assert.True(t, deleted)
}

func TestClientErrors(t *testing.T) {
	tests := []struct {
		name        string
		code        int
		body        any
		raw         string
		wantMessage string
		wantFailure TurnFailure
	}{
		{
			name:        "authentication failure",
			code:        http.StatusUnauthorized,
			body:        NewErrorResponse(http.StatusUnauthorized, "Paste your Gemini API key", TurnFailure{Kind: "authentication", Question: "hello"}),
			wantMessage: "Paste your Gemini API key",
			wantFailure: TurnFailure{Kind: "authentication", Question: "hello"},
		},
		{
			name:        "busy",
			code:        http.StatusConflict,
			body:        NewErrorResponse(http.StatusConflict, "Still working", TurnFailure{Kind: "busy"}),
			wantMessage: "Still working",
			wantFailure: TurnFailure{Kind: "busy"},
		},
		{
			name:        "non json body",
			code:        http.StatusBadGateway,
			raw:         "bad gateway",
			wantMessage: "bad gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.raw != "" {
					w.WriteHeader(tt.code)
					_, _ = w.Write([]byte(tt.raw))
					return
				}
				writeJSON(w, tt.code, tt.body)
			}))
			defer server.Close()

			_, err := NewClient(server.URL).SendMessage(context.Background(), "id", "hello")
			require.Error(t, err)

			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.code, apiErr.Code)
			assert.Equal(t, http.MethodPost, apiErr.Method)
			assert.Equal(t, "/api/chat/sessions/id/messages", apiErr.Path)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.Equal(t, tt.wantFailure, apiErr.Failure)
		})
	}
}
