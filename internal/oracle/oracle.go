package oracle

import (
	"context"
	"time"
)

// Transport timeouts: short for the local daemon, longer for hosted APIs.
const (
	OllamaTimeout = 30 * time.Second
	APITimeout    = 60 * time.Second
)

// PromptContext carries everything the prompt builders need for one file.
type PromptContext struct {
	RootName       string
	FileName       string
	Hint           string
	TaxonomySample string
	Neighbors      string
	ProjectKind    string
}

// Oracle produces destination suggestions for files. Implementations
// wrap one provider each; they tolerate arbitrary response text and
// leave interpretation to the resolution pipeline.
type Oracle interface {
	// Name identifies the provider for display.
	Name() string

	// Suggest asks for a fresh destination path.
	Suggest(ctx context.Context, pc PromptContext) (string, error)

	// Refine asks to improve a previous candidate, expecting it back
	// unchanged when nothing better exists.
	Refine(ctx context.Context, pc PromptContext, candidate string) (string, error)

	// Ping verifies the provider is reachable and the model answers.
	Ping(ctx context.Context) error
}

// pingPrompt is the tiny request used to verify connectivity.
const pingPrompt = "Organize a file named 'test.txt' containing 'Hello World'. Respond with only the folder path."
