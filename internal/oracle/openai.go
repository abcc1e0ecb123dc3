package oracle

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const grokEndpoint = "https://api.x.ai/v1"

// OpenAI covers every chat-completions provider, including xAI's Grok
// which exposes an OpenAI-compatible API behind a different base URL.
type OpenAI struct {
	client *openai.Client
	model  string
	kind   string
	system string
}

func NewOpenAI(model, apiKey, baseURL string) (*OpenAI, error) {
	client, err := newChatClient(apiKey, baseURL)
	if err != nil {
		return nil, err
	}
	return &OpenAI{
		client: client,
		model:  model,
		kind:   KindOpenAI,
		system: "You are a file organization expert. Respond only with folder paths for organizing files.",
	}, nil
}

func NewGrok(model, apiKey, baseURL string) (*OpenAI, error) {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = grokEndpoint
	}
	client, err := newChatClient(apiKey, baseURL)
	if err != nil {
		return nil, err
	}
	return &OpenAI{
		client: client,
		model:  model,
		kind:   KindGrok,
		system: "You are a file organization assistant. Provide only folder paths for file organization.",
	}, nil
}

func newChatClient(apiKey, baseURL string) (*openai.Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	cfg.HTTPClient = &http.Client{Timeout: APITimeout}

	return openai.NewClientWithConfig(cfg), nil
}

func (o *OpenAI) Name() string {
	if o.kind == KindGrok {
		return fmt.Sprintf("Grok (%s)", o.model)
	}
	return fmt.Sprintf("OpenAI (%s)", o.model)
}

func (o *OpenAI) Suggest(ctx context.Context, pc PromptContext) (string, error) {
	prompt := ShapePrompt(o.kind, BuildSuggestPrompt(pc), pc.ProjectKind)
	return o.complete(ctx, prompt)
}

func (o *OpenAI) Refine(ctx context.Context, pc PromptContext, firstPath string) (string, error) {
	prompt := ShapePrompt(o.kind, BuildRefinePrompt(pc, firstPath), pc.ProjectKind)
	return o.complete(ctx, prompt)
}

func (o *OpenAI) complete(ctx context.Context, prompt string) (string, error) {
	return withRetry(ctx, func() (string, error) {
		return o.completeOnce(ctx, prompt)
	})
}

func (o *OpenAI) completeOnce(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: o.system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   50,
		Temperature: 0.1,
		Stop:        []string{"\n\n", "Path:", "Folder:", "Response:"},
	})
	if err != nil {
		return "", classifyOpenAIError(err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (o *OpenAI) Ping(ctx context.Context) error {
	_, err := o.completeOnce(ctx, pingPrompt)
	return err
}

func classifyOpenAIError(err error) error {
	wrapped := fmt.Errorf("chat completion failed: %w", err)

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && permanentStatusCodes[apiErr.HTTPStatusCode] {
		return markPermanent(wrapped)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && permanentStatusCodes[reqErr.HTTPStatusCode] {
		return markPermanent(wrapped)
	}
	return wrapped
}
