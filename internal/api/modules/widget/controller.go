package widget

import (
	"bytes"
	"embed"
	"html/template"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Title is shown in the browser tab and page header
const Title = "Ragify – RAG & Retriever Chatbot"

//go:embed templates/*.html
var templatesFS embed.FS

var index = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

// Page holds the values rendered into the chat page
type Page struct {
	Title          string
	Model          string
	HasFallbackKey bool // A key is configured on the server, so the sidebar field is optional
}

var page = Page{Title: Title}

// Init sets the model caption and key hint shown on the page
func Init(model string, hasFallbackKey bool) {
	page = Page{
		Title:          Title,
		Model:          model,
		HasFallbackKey: hasFallbackKey,
	}
}

// Render the chat page
func getIndex(c *gin.Context) {
	var buf bytes.Buffer
	if err := index.Execute(&buf, page); err != nil {
		log.Printf("[WIDGET]: Failed to render page: %v", err)
		c.String(http.StatusInternalServerError, "failed to render page")
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
