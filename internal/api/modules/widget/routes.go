package widget

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed static/*
var staticFS embed.FS

// RegisterRoutes registers the chat page and its assets
func RegisterRoutes(g *gin.RouterGroup) {
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}

	g.GET("/", getIndex)
	g.StaticFS("/static", http.FS(static))
}
