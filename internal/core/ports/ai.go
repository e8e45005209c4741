package ports

import "context"

// ContractAnalyzer is an external AI model capable of free-form contract
// review. Implementations are expected to be slow and fallible; callers
// own prompt construction and response interpretation.
type ContractAnalyzer interface {
	// Complete sends a single-turn prompt and returns the model's text reply.
	Complete(ctx context.Context, prompt string) (string, error)
	// Model identifies the backing model for provenance records.
	Model() string
}
