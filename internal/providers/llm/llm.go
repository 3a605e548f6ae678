package llm

import "context"

// Provider is the narrow surface the query analyzer and resume parser depend
// on. Tests inject a deterministic fake; production wires VertexGemini.
type Provider interface {
	// Generate returns the model's full text response for a prompt.
	Generate(ctx context.Context, prompt string) (string, error)
	Close() error
}
