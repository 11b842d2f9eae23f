package chat_module

import "github.com/gin-gonic/gin"

// Register routes for the chat module
func RegisterRoutes(g *gin.RouterGroup) {
	// Create base group for chat routes
	group := g.Group("/chat")

	// Session management routes
	group.POST("/sessions", CreateSession)         // Create a new session
	group.GET("/sessions/:uuid", GetSession)       // Get a session and its transcript
	group.DELETE("/sessions/:uuid", DeleteSession) // End a session

	// Turn routes
	group.POST("/sessions/:uuid/messages", PostMessage)     // Run one user turn
	group.DELETE("/sessions/:uuid/messages", ClearMessages) // Clear the transcript
	group.PUT("/sessions/:uuid/key", SetAPIKey)             // Supply a runtime API key
}
