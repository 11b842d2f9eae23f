package prompt

import "strings"

// Role tags a message for the chat-completion API
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one role-tagged entry of a model request
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// SystemContent joins the persona instructions, the grounding preface and the
// document text, which is embedded verbatim
func SystemContent(p *Persona, documentText string) string {
	var sb strings.Builder
	sb.WriteString(p.Instructions)
	if p.GroundingPreface != "" {
		sb.WriteString("\n\n")
		sb.WriteString(p.GroundingPreface)
	}
	sb.WriteString("\n\n")
	sb.WriteString(documentText)
	return sb.String()
}

// Assemble builds the ordered request: one system message followed by the
// history in chronological order. The result always has len(history)+1 entries
func Assemble(p *Persona, documentText string, history []Message) []Message {
	messages := make([]Message, 0, len(history)+1)
	messages = append(messages, Message{
		Role:    RoleSystem,
		Content: SystemContent(p, documentText),
	})
	return append(messages, history...)
}
