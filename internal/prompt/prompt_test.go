package prompt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDocument = "Dense retrievers embed queries and passages.\n\nBM25 scores lexical overlap."

func TestDefaultPersona(t *testing.T) {
	persona, err := DefaultPersona()
	require.NoError(t, err)

	assert.NotEmpty(t, persona.Version)
	assert.Equal(t, "ragify", persona.Name)
	assert.Equal(t, "Ragify – RAG & Retriever Chatbot", persona.Title)

	// Tone, meta-reference and assumption rules
	assert.Contains(t, persona.Instructions, "professional, and concise tone")
	assert.Contains(t, persona.Instructions, "Do NOT mention that you are using a PDF")
	assert.Contains(t, persona.Instructions, "page numbers")
	assert.Contains(t, persona.Instructions, "explicit about assumptions")

	// Template labels appear in order
	last := -1
	for _, field := range RecommendationFields {
		idx := strings.Index(persona.Instructions, field+":")
		require.GreaterOrEqual(t, idx, 0, field)
		assert.Greater(t, idx, last, field)
		last = idx
	}
}

func TestParsePersona(t *testing.T) {
	valid := "version: v1\ninstructions: |\n  Recommended Retriever: x\n  Reason: y\n  Secondary Options: z\n  Implementation Notes: w\n"

	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{name: "valid", data: valid},
		{name: "malformed yaml", data: "version: [", wantErr: "failed to parse persona"},
		{name: "missing version", data: "instructions: hi", wantErr: "version is required"},
		{name: "missing instructions", data: "version: v1", wantErr: "instructions are required"},
		{
			name:    "missing field",
			data:    "version: v1\ninstructions: |\n  Recommended Retriever: x\n  Reason: y\n  Implementation Notes: w\n",
			wantErr: `"Secondary Options"`,
		},
		{
			name:    "fields out of order",
			data:    "version: v1\ninstructions: |\n  Reason: y\n  Recommended Retriever: x\n  Secondary Options: z\n  Implementation Notes: w\n",
			wantErr: `"Reason"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			persona, err := ParsePersona([]byte(tt.data))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "v1", persona.Version)
		})
	}
}

func TestLoadPersona(t *testing.T) {
	t.Run("empty path uses bundled persona", func(t *testing.T) {
		persona, err := LoadPersona("")
		require.NoError(t, err)
		assert.Equal(t, "ragify", persona.Name)
	})

	t.Run("override file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "persona.yaml")
		data := "version: custom\nname: custom\ninstructions: |\n  Recommended Retriever: a\n  Reason: b\n  Secondary Options: c\n  Implementation Notes: d\n"
		require.NoError(t, os.WriteFile(path, []byte(data), 0644))

		persona, err := LoadPersona(path)
		require.NoError(t, err)
		assert.Equal(t, "custom", persona.Version)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadPersona(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}

func TestAssemble(t *testing.T) {
	persona, err := DefaultPersona()
	require.NoError(t, err)

	tests := []struct {
		name    string
		history []Message
	}{
		{name: "empty transcript"},
		{
			name:    "single question",
			history: []Message{{Role: RoleUser, Content: "What retriever is best for a small FAQ chatbot?"}},
		},
		{
			name: "multi turn",
			history: []Message{
				{Role: RoleUser, Content: "What is BM25?"},
				{Role: RoleAssistant, Content: "A sparse lexical ranking function."},
				{Role: RoleUser, Content: "And hybrid search?"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			messages := Assemble(persona, testDocument, tt.history)

			require.Len(t, messages, len(tt.history)+1)
			assert.Equal(t, RoleSystem, messages[0].Role)
			assert.True(t, strings.HasPrefix(messages[0].Content, persona.Instructions))
			assert.True(t, strings.HasSuffix(messages[0].Content, testDocument))

			for i, msg := range tt.history {
				assert.Equal(t, msg, messages[i+1])
			}
		})
	}
}

func TestAssembleDoesNotAliasHistory(t *testing.T) {
	persona, err := DefaultPersona()
	require.NoError(t, err)

	history := []Message{{Role: RoleUser, Content: "original"}}
	messages := Assemble(persona, testDocument, history)
	messages[1].Content = "changed"

	assert.Equal(t, "original", history[0].Content)
}

func TestSystemContentSnapshot(t *testing.T) {
	persona := &Persona{
		Version:          "v1",
		Instructions:     "Be concise.",
		GroundingPreface: "Knowledge base:",
	}

	assert.Equal(t, "Be concise.\n\nKnowledge base:\n\nDOC", SystemContent(persona, "DOC"))

	persona.GroundingPreface = ""
	assert.Equal(t, "Be concise.\n\nDOC", SystemContent(persona, "DOC"))
}
