package llm

import "context"

// Provider is a hosted text-inference backend. Analysis handlers send it a
// fully rendered prompt and expect free-form text back; handlers own the
// parsing and any fallback behavior.
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}
