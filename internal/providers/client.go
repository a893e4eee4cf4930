// Package providers abstracts the language-model backends: a local
// Ollama daemon and the hosted OpenAI and Anthropic APIs. Every backend
// exposes the same streaming chat call; deltas reach the caller through
// a callback and the full reply text is returned at the end.
package providers

import "context"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of model conversation. The field names match
// the wire format every backend accepts.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Options tune a single chat call.
type Options struct {
	Temperature float32
	MaxTokens   int
}

// Client is a language-model backend.
type Client interface {
	// Chat sends the conversation and returns the full reply text. When
	// onToken is non-nil the reply streams through it as it is produced.
	Chat(ctx context.Context, messages []ChatMessage, opts Options, onToken func(delta string)) (string, error)
	// Name identifies the backend in logs and the health endpoint.
	Name() string
}
