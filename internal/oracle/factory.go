package oracle

import (
	"context"
	"fmt"
	"strings"
)

const (
	DefaultOllamaModel = "llama3.1"
	DefaultOpenAIModel = "gpt-4o-mini"
	DefaultGrokModel   = "grok-2-mini"
	DefaultGeminiModel = "gemini-2.5-flash-lite"
)

type Options struct {
	Provider string
	Model    string
	APIKey   string
	Endpoint string
}

// New builds the oracle for the configured provider. The model defaults
// per provider when left empty.
func New(ctx context.Context, opts Options) (Oracle, error) {
	provider := strings.ToLower(strings.TrimSpace(opts.Provider))
	if provider == "" {
		provider = "ollama"
	}

	switch provider {
	case "ollama":
		return NewOllama(defaultModel(opts.Model, DefaultOllamaModel), opts.Endpoint), nil
	case "openai":
		return NewOpenAI(defaultModel(opts.Model, DefaultOpenAIModel), opts.APIKey, opts.Endpoint)
	case "grok":
		return NewGrok(defaultModel(opts.Model, DefaultGrokModel), opts.APIKey, opts.Endpoint)
	case "gemini":
		return NewGemini(ctx, defaultModel(opts.Model, DefaultGeminiModel), opts.APIKey)
	default:
		return nil, fmt.Errorf("unsupported oracle provider: %s", opts.Provider)
	}
}

func defaultModel(model, fallback string) string {
	if strings.TrimSpace(model) == "" {
		return fallback
	}
	return model
}
