package models

import "context"

// ScriptProvider is the interface every text-generation integration must
// implement. Never call a specific provider directly — always inject this
// interface.
type ScriptProvider interface {
	// Draft sends the directive prompt and returns the raw text reply.
	Draft(ctx context.Context, prompt string) (string, error)
	// Name returns the provider identifier (e.g., "gemini", "openai").
	Name() string
}
