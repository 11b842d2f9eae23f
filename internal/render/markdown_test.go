package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "bold",
			input:    "Use **BM25** first.",
			contains: []string{"<strong>BM25</strong>"},
		},
		{
			name:     "recommendation block",
			input:    "Recommended Retriever: Hybrid\n\nSecondary Options:\n\n- Dense (pros/cons)\n- Sparse (pros/cons)",
			contains: []string{"<ul>", "<li>Dense (pros/cons)</li>", "Recommended Retriever: Hybrid"},
		},
		{
			name:     "table",
			input:    "| Retriever | Latency |\n|---|---|\n| BM25 | low |",
			contains: []string{"<table>", "<td>BM25</td>"},
		},
		{
			name:     "script is dropped",
			input:    "hello <script>alert('x')</script>",
			excludes: []string{"<script", "alert('x')</script>"},
		},
		{
			name:     "javascript link is neutralized",
			input:    "[click](javascript:alert(1))",
			excludes: []string{"javascript:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html := string(Markdown(tt.input))
			for _, want := range tt.contains {
				assert.Contains(t, html, want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, html, unwanted)
			}
		})
	}
}

func TestPlainText(t *testing.T) {
	html := string(PlainText("<b>question</b>\nsecond line"))
	assert.True(t, strings.HasPrefix(html, "&lt;b&gt;question&lt;/b&gt;"))
	assert.Contains(t, html, "<br>second line")
}
