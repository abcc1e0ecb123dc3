package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
)

const defaultOllamaEndpoint = "http://127.0.0.1:11434"

// Ollama talks to a local Ollama server over its generate API.
type Ollama struct {
	client   *http.Client
	model    string
	endpoint string
}

func NewOllama(model, endpoint string) *Ollama {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		endpoint = defaultOllamaEndpoint
	}
	endpoint = strings.TrimRight(endpoint, "/")

	return &Ollama{
		client:   &http.Client{Timeout: OllamaTimeout},
		model:    model,
		endpoint: endpoint,
	}
}

func (o *Ollama) Name() string {
	return fmt.Sprintf("Ollama (%s)", o.model)
}

type ollamaOptions struct {
	Temperature float64  `json:"temperature"`
	TopP        float64  `json:"top_p"`
	TopK        int      `json:"top_k"`
	NumPredict  int      `json:"num_predict"`
	Stop        []string `json:"stop"`
	NumCtx      int      `json:"num_ctx"`
}

type ollamaGenerateRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
}

func (o *Ollama) Suggest(ctx context.Context, pc PromptContext) (string, error) {
	prompt := ShapePrompt(KindOllama, BuildSuggestPrompt(pc), pc.ProjectKind)
	return o.generate(ctx, prompt)
}

func (o *Ollama) Refine(ctx context.Context, pc PromptContext, firstPath string) (string, error) {
	prompt := ShapePrompt(KindOllama, BuildRefinePrompt(pc, firstPath), pc.ProjectKind)
	return o.generate(ctx, prompt)
}

func (o *Ollama) generate(ctx context.Context, prompt string) (string, error) {
	return withRetry(ctx, func() (string, error) {
		return o.generateOnce(ctx, prompt)
	})
}

func (o *Ollama) generateOnce(ctx context.Context, prompt string) (string, error) {
	reqBody := ollamaGenerateRequest{
		Model:  o.model,
		Prompt: prompt,
		Stream: false,
		Options: ollamaOptions{
			Temperature: 0.1,
			TopP:        0.9,
			TopK:        40,
			NumPredict:  50,
			Stop:        []string{"\n\n", "Path:", "Folder:", "Directory:", "Response:"},
			NumCtx:      2048,
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal ollama request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create ollama request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read ollama response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("ollama generate request failed (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
		if permanentStatusCodes[resp.StatusCode] {
			return "", markPermanent(err)
		}
		return "", err
	}

	var parsed ollamaGenerateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode ollama response: %w", err)
	}

	return strings.TrimSpace(parsed.Response), nil
}

func (o *Ollama) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.endpoint+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("failed to create ollama request: %w", err)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama is not reachable at %s: %w", o.endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("ollama tags request failed (%d)", resp.StatusCode)
	}
	return nil
}

type ollamaTagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// ListModels returns the model names the local server has pulled,
// sorted for stable CLI output.
func (o *Ollama) ListModels(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.endpoint+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama request: %w", err)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama is not reachable at %s: %w", o.endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read ollama response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("ollama tags request failed (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed ollamaTagsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode ollama response: %w", err)
	}

	names := make([]string, 0, len(parsed.Models))
	for _, m := range parsed.Models {
		names = append(names, m.Name)
	}
	sort.Strings(names)
	return names, nil
}
