// Package render turns assistant replies into HTML for the transcript view.
package render

import (
	"bytes"
	"html/template"
	"log"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))
	policy   = bluemonday.UGCPolicy()
)

// Markdown renders text as sanitized HTML. Raw HTML in the input is never trusted
func Markdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(text), &buf); err != nil {
		log.Printf("[RENDER]: Falling back to plain text: %v", err)
		return PlainText(text)
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes()))
}

// PlainText escapes text for display, keeping line breaks
func PlainText(text string) template.HTML {
	var buf bytes.Buffer
	template.HTMLEscape(&buf, []byte(text))
	return template.HTML(bytes.ReplaceAll(buf.Bytes(), []byte("\n"), []byte("<br>")))
}
