package llm

import "context"

// Engine turns a single prompt into a single text reply.
type Engine interface {
	Name() string
	GetModel() string
	Generate(ctx context.Context, prompt string) (string, error)
}
