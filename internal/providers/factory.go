package providers

import "fmt"

// Config selects and parameterizes a backend.
type Config struct {
	Provider   string // "ollama" (default), "openai", "anthropic"
	Model      string
	APIKey     string
	BaseURL    string // openai-compatible endpoints only
	OllamaHost string
}

const (
	defaultOpenAIModel    = "gpt-4o-mini"
	defaultAnthropicModel = "claude-haiku-4-5-20251001"
)

// New builds the configured client.
func New(cfg Config) (Client, error) {
	switch cfg.Provider {
	case "", "ollama":
		return NewOllamaClient(cfg.OllamaHost, cfg.Model), nil
	case "openai":
		model := cfg.Model
		if model == "" {
			model = defaultOpenAIModel
		}
		return NewOpenAIClient(cfg.APIKey, model, cfg.BaseURL)
	case "anthropic":
		model := cfg.Model
		if model == "" {
			model = defaultAnthropicModel
		}
		return NewAnthropicClient(cfg.APIKey, model)
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}
