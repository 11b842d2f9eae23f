package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethanbaker/ragify/pkg/sdk"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	Init(Info{Model: "gemini-2.5-flash", Persona: "ragify", DocumentChars: 42})

	engine := gin.New()
	RegisterRoutes(engine.Group("/api"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp sdk.ApiResponse[Info]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "OK", resp.Message)
	assert.Equal(t, "gemini-2.5-flash", resp.Data.Model)
	assert.Equal(t, 42, resp.Data.DocumentChars)
}
