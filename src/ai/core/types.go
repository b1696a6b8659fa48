package core

import "context"

// Options controls model behavior; fields are optional per provider.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int
	SystemPrompt        string
}

// Client is a provider-agnostic interface for the one LLM operation the
// verification pipeline needs: judging a claim against gathered evidence.
type Client interface {
	// Reason sends the assembled claim-and-evidence prompt and returns
	// the model's plain-text assessment.
	Reason(ctx context.Context, prompt string, opts Options) (string, error)
}
