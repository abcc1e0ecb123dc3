package oracle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultsToOllama(t *testing.T) {
	o, err := New(context.Background(), Options{})

	require.NoError(t, err)
	assert.IsType(t, &Ollama{}, o)
	assert.Equal(t, "Ollama (llama3.1)", o.Name())
}

func TestNew_ProviderSelection(t *testing.T) {
	tests := []struct {
		provider string
		want     any
	}{
		{"ollama", &Ollama{}},
		{"  OpenAI  ", &OpenAI{}},
		{"grok", &OpenAI{}},
		{"gemini", &Gemini{}},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			o, err := New(context.Background(), Options{Provider: tt.provider, APIKey: "test-key"})
			require.NoError(t, err)
			assert.IsType(t, tt.want, o)
		})
	}
}

func TestNew_GrokName(t *testing.T) {
	o, err := New(context.Background(), Options{Provider: "grok", APIKey: "test-key"})

	require.NoError(t, err)
	assert.Equal(t, "Grok (grok-2-mini)", o.Name())
}

func TestNew_HostedProvidersRequireAPIKey(t *testing.T) {
	for _, provider := range []string{"openai", "grok", "gemini"} {
		t.Run(provider, func(t *testing.T) {
			_, err := New(context.Background(), Options{Provider: provider})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "api key is required")
		})
	}
}

func TestNew_UnsupportedProvider(t *testing.T) {
	_, err := New(context.Background(), Options{Provider: "cohere"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported oracle provider: cohere")
}

func TestNew_ExplicitModelOverridesDefault(t *testing.T) {
	o, err := New(context.Background(), Options{Provider: "ollama", Model: "mistral:7b"})

	require.NoError(t, err)
	assert.Equal(t, "Ollama (mistral:7b)", o.Name())
}
