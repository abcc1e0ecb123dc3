package oracle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Gemini talks to Google's Gemini API through the official SDK.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, model, apiKey string) (*Gemini, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Name() string {
	return fmt.Sprintf("Gemini (%s)", g.model)
}

func (g *Gemini) Suggest(ctx context.Context, pc PromptContext) (string, error) {
	prompt := ShapePrompt(KindGemini, BuildSuggestPrompt(pc), pc.ProjectKind)
	return g.generate(ctx, prompt)
}

func (g *Gemini) Refine(ctx context.Context, pc PromptContext, firstPath string) (string, error) {
	prompt := ShapePrompt(KindGemini, BuildRefinePrompt(pc, firstPath), pc.ProjectKind)
	return g.generate(ctx, prompt)
}

func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	return withRetry(ctx, func() (string, error) {
		return g.generateOnce(ctx, prompt)
	})
}

func (g *Gemini) generateOnce(ctx context.Context, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	resp, err := g.client.Models.GenerateContent(callCtx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", classifyGeminiError(err)
	}
	return strings.TrimSpace(resp.Text()), nil
}

func (g *Gemini) Ping(ctx context.Context) error {
	_, err := g.generateOnce(ctx, pingPrompt)
	return err
}

func classifyGeminiError(err error) error {
	wrapped := fmt.Errorf("failed to generate content: %w", err)

	var apiErr *genai.APIError
	if errors.As(err, &apiErr) && permanentStatusCodes[apiErr.Code] {
		return markPermanent(wrapped)
	}
	return wrapped
}
