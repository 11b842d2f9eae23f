package chat

import (
	"strings"

	"github.com/ethanbaker/ragify/pkg/utils"
)

// APIKeyEnvVars are the configuration names checked for a fallback key, in order
var APIKeyEnvVars = []string{"GOOGLE_API_KEY", "GEMINI_API_KEY"}

// KeyResolver picks the API key for a turn: the session's runtime value first,
// then the first non-empty configured key
type KeyResolver struct {
	cfg *utils.Config
}

// NewKeyResolver creates a resolver over the given configuration. A nil config
// disables the fallback
func NewKeyResolver(cfg *utils.Config) *KeyResolver {
	return &KeyResolver{cfg: cfg}
}

// Resolve returns the key to use, or an empty string if none is available
func (r *KeyResolver) Resolve(runtime string) string {
	if key := strings.TrimSpace(runtime); key != "" {
		return key
	}
	if r == nil || r.cfg == nil {
		return ""
	}
	return r.cfg.FirstOf(APIKeyEnvVars...)
}

// HasFallback reports whether a configured key exists
func (r *KeyResolver) HasFallback() bool {
	return r.Resolve("") != ""
}
