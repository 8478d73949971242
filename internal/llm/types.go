package llm

import (
	"context"

	"schema-mapper/internal/types"
)

// NoSuggestion is the answer the model is told to give when nothing fits
const NoSuggestion = "none"

// LLMClient defines the interface for LLM interactions
type LLMClient interface {
	// SuggestModel proposes one of models for an endpoint the heuristics could not map.
	// It returns "" when the model has no suggestion.
	SuggestModel(ctx context.Context, endpoint types.UnmappedEndpoint, models []string) (string, error)
}
