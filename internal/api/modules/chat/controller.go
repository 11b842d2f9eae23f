package chat_module

import (
	"errors"
	"net/http"

	"github.com/ethanbaker/ragify/internal/chat"
	"github.com/ethanbaker/ragify/internal/render"
	"github.com/ethanbaker/ragify/pkg/sdk"
	"github.com/gin-gonic/gin"
)

// CreateSession handles POST requests to create a new session
func CreateSession(c *gin.Context) {
	svc := GetService()
	sess := svc.store.Create()

	c.JSON(sdk.NewSuccessResponse("Session created successfully", svc.toSDKSession(sess)).AsGinResponse())
}

// GetSession handles GET requests to retrieve a session and its transcript
func GetSession(c *gin.Context) {
	svc := GetService()

	sess, err := svc.store.Find(c.Param("uuid"))
	if err != nil {
		writeError(c, "Session not found", err)
		return
	}

	c.JSON(sdk.NewSuccessResponse("Session retrieved successfully", svc.toSDKSession(sess)).AsGinResponse())
}

// PostMessage handles POST requests that run one user turn
func PostMessage(c *gin.Context) {
	svc := GetService()

	// Parse request body
	var req sdk.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not parse request body", sdk.TurnFailure{Kind: string(chat.KindValidation)}).AsGinResponse())
		return
	}

	sess, err := svc.store.Find(c.Param("uuid"))
	if err != nil {
		writeError(c, "Session not found", err)
		return
	}

	turn, err := svc.controller.Submit(c.Request.Context(), sess, req.Content)
	if err != nil {
		writeError(c, chat.UserMessage(err), err)
		return
	}

	c.JSON(sdk.NewSuccessResponse("Message sent successfully", sdk.PostMessageResponse{Reply: toSDKTurn(turn)}).AsGinResponse())
}

// ClearMessages handles DELETE requests that empty the transcript
func ClearMessages(c *gin.Context) {
	svc := GetService()

	sess, err := svc.store.Find(c.Param("uuid"))
	if err != nil {
		writeError(c, "Session not found", err)
		return
	}

	if err := svc.controller.Clear(sess); err != nil {
		writeError(c, chat.UserMessage(err), err)
		return
	}

	c.JSON(sdk.NewSuccessResponse("Conversation cleared", svc.toSDKSession(sess)).AsGinResponse())
}

// SetAPIKey handles PUT requests that supply a runtime API key
func SetAPIKey(c *gin.Context) {
	svc := GetService()

	var req sdk.SetAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not parse request body", sdk.TurnFailure{Kind: string(chat.KindValidation)}).AsGinResponse())
		return
	}

	sess, err := svc.store.Find(c.Param("uuid"))
	if err != nil {
		writeError(c, "Session not found", err)
		return
	}

	svc.controller.SetAPIKey(sess, req.APIKey)

	c.JSON(sdk.NewSuccessResponse("API key updated", svc.toSDKSession(sess)).AsGinResponse())
}

// DeleteSession handles DELETE requests that end a session
func DeleteSession(c *gin.Context) {
	svc := GetService()

	sess, err := svc.store.Find(c.Param("uuid"))
	if err != nil {
		writeError(c, "Session not found", err)
		return
	}

	if _, err := svc.store.Delete(sess.ID); err != nil {
		writeError(c, chat.UserMessage(err), err)
		return
	}

	c.JSON(sdk.NewSuccessResponse[any]("Session deleted successfully", nil).AsGinResponse())
}

// statusCodes maps each error kind onto an HTTP status
var statusCodes = map[chat.ErrorKind]int{
	chat.KindValidation:     http.StatusBadRequest,
	chat.KindBusy:           http.StatusConflict,
	chat.KindNotFound:       http.StatusNotFound,
	chat.KindAuthentication: http.StatusUnauthorized,
	chat.KindNetwork:        http.StatusGatewayTimeout,
	chat.KindUpstream:       http.StatusBadGateway,
}

// writeError sends an error envelope carrying the error kind and, for failed
// turns, the withdrawn question
func writeError(c *gin.Context, message string, err error) {
	kind := chat.KindOf(err)

	code, ok := statusCodes[kind]
	if !ok {
		code = http.StatusInternalServerError
	}

	failure := sdk.TurnFailure{Kind: string(kind)}
	var turnErr *chat.TurnError
	if errors.As(err, &turnErr) {
		failure.Question = turnErr.Question
	}

	c.JSON(sdk.NewErrorResponse(code, message, failure).AsGinResponse())
}

// Helper method to convert a session into its sdk form
func (s *Service) toSDKSession(sess *chat.Session) sdk.Session {
	resp := sdk.Session{
		ID:         sess.ID.String(),
		State:      string(sess.State()),
		HasAPIKey:  sess.HasAPIKey(),
		CanChat:    s.controller.CanChat(sess),
		CreatedAt:  sess.CreatedAt,
		LastActive: sess.LastActive(),
		Turns:      []sdk.Turn{},
	}

	for _, turn := range sess.Transcript() {
		resp.Turns = append(resp.Turns, toSDKTurn(turn))
	}

	return resp
}

// Helper method to convert a turn into its sdk form. Only assistant replies are
// rendered as Markdown
func toSDKTurn(turn chat.Turn) sdk.Turn {
	html := render.PlainText(turn.Content)
	if turn.Role == chat.RoleAssistant {
		html = render.Markdown(turn.Content)
	}

	return sdk.Turn{
		Role:      string(turn.Role),
		Content:   turn.Content,
		HTML:      string(html),
		CreatedAt: turn.CreatedAt,
	}
}
