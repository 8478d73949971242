package llm

import (
	"context"
	"fmt"
	"strings"

	"schema-mapper/internal/logger"
	"schema-mapper/internal/mapping"
	"schema-mapper/internal/types"
)

// BaseClient builds prompts and interprets answers; a provider supplies complete
type BaseClient struct {
	config   *Config
	logger   *logger.Logger
	complete func(ctx context.Context, prompt string) (string, error)
}

// NewBaseClient creates a new base LLM client around a completion function
func NewBaseClient(config *Config, logger *logger.Logger, complete func(ctx context.Context, prompt string) (string, error)) *BaseClient {
	return &BaseClient{
		config:   config,
		logger:   logger,
		complete: complete,
	}
}

// SuggestModel implements the LLMClient interface
func (c *BaseClient) SuggestModel(ctx context.Context, endpoint types.UnmappedEndpoint, models []string) (string, error) {
	if len(models) == 0 {
		return "", nil
	}
	prompt := buildSuggestPrompt(endpoint, models)
	input := map[string]interface{}{
		"method": endpoint.Method,
		"path":   endpoint.Path,
		"models": models,
	}

	response, err := c.complete(ctx, prompt)
	if err != nil {
		c.log("SuggestModel", input, nil, err)
		return "", fmt.Errorf("failed to suggest model: %w", err)
	}

	answer := strings.Trim(strings.TrimSpace(response), "\"'`.")
	if strings.EqualFold(answer, NoSuggestion) {
		answer = ""
	}
	c.log("SuggestModel", input, answer, nil)
	return answer, nil
}

func (c *BaseClient) log(operation string, input, output interface{}, err error) {
	if c.logger != nil {
		c.logger.LogLLMInteraction(operation, input, output, err)
	}
}

func buildSuggestPrompt(endpoint types.UnmappedEndpoint, models []string) string {
	return fmt.Sprintf(`An API endpoint could not be matched to a data model by name.

Endpoint: %s %s
Reason: %s
Available models: %s

Which single model does this endpoint most likely read or write?
Answer with the model name exactly as listed, or "%s" if none fits. No other text.`,
		endpoint.Method, endpoint.Path, endpoint.Reason, strings.Join(models, ", "), NoSuggestion)
}

// Refine asks client about every unmapped endpoint of result and replaces its
// SuggestedModel when the answer resolves to an available model. Mappings are
// never created here. It returns how many suggestions changed.
func Refine(ctx context.Context, client LLMClient, result *types.InferenceResult) (int, error) {
	refined := 0
	for i := range result.Unmapped {
		if err := ctx.Err(); err != nil {
			return refined, err
		}
		answer, err := client.SuggestModel(ctx, result.Unmapped[i], result.AvailableModels)
		if err != nil || answer == "" {
			continue
		}
		match := mapping.FindMatchingModel(answer, result.AvailableModels)
		if match == nil || match.Model == result.Unmapped[i].SuggestedModel {
			continue
		}
		result.Unmapped[i].SuggestedModel = match.Model
		refined++
	}
	return refined, nil
}
