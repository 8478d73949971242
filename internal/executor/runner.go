package executor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"schema-mapper/internal/logger"
	"schema-mapper/internal/mapping"
	"schema-mapper/internal/types"
)

// SchemaLoader loads the endpoint schema behind one source
type SchemaLoader interface {
	ParseSchema(ctx context.Context) (*types.Schema, error)
}

// LoaderFactory creates the loader for a source
type LoaderFactory func(source string) SchemaLoader

// RunResult represents the outcome of mapping a single schema source
type RunResult struct {
	RunID    string
	Source   string
	Status   string
	Attempts int
	Duration time.Duration
	Schema   *types.Schema
	Result   *types.InferenceResult
	Error    error
}

const (
	StatusSuccess = "SUCCESS"
	StatusError   = "ERROR"
)

// Config holds configuration for batch execution
type Config struct {
	Concurrent bool
	MaxWorkers int
	Timeout    int
	Retry      RetryConfig
}

// RetryConfig holds configuration for retry behavior
type RetryConfig struct {
	Attempts int
	Delay    time.Duration
}

// Runner maps a batch of schema sources against one model list
type Runner struct {
	config    Config
	inferer   *mapping.Inferer
	newLoader LoaderFactory
	logger    *logger.Logger
}

// NewRunner creates a new batch runner
func NewRunner(config Config, inferer *mapping.Inferer, newLoader LoaderFactory, logger *logger.Logger) *Runner {
	if config.MaxWorkers <= 0 {
		config.MaxWorkers = 1
	}
	if config.Retry.Attempts <= 0 {
		config.Retry.Attempts = 1
	}
	return &Runner{
		config:    config,
		inferer:   inferer,
		newLoader: newLoader,
		logger:    logger,
	}
}

// RunInference loads and maps every source. Results keep the order of sources.
func (r *Runner) RunInference(ctx context.Context, sources []string, models []string) []RunResult {
	runID := uuid.New().String()
	results := make([]RunResult, len(sources))

	if !r.config.Concurrent {
		for i, source := range sources {
			results[i] = r.runOne(ctx, runID, source, models)
		}
		return results
	}

	var wg sync.WaitGroup
	// Create a channel to limit concurrent executions
	sem := make(chan struct{}, r.config.MaxWorkers)

	for i, source := range sources {
		wg.Add(1)
		go func(i int, source string) {
			defer wg.Done()

			// Acquire semaphore
			sem <- struct{}{}
			defer func() { <-sem }()

			results[i] = r.runOne(ctx, runID, source, models)
		}(i, source)
	}

	wg.Wait()
	return results
}

// runOne loads a single source with retries, then maps it
func (r *Runner) runOne(ctx context.Context, runID, source string, models []string) RunResult {
	start := time.Now()
	result := RunResult{RunID: runID, Source: source}

	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(r.config.Timeout)*time.Second)
		defer cancel()
	}

	loader := r.newLoader(source)
	var schema *types.Schema
	var err error
	for attempt := 1; attempt <= r.config.Retry.Attempts; attempt++ {
		result.Attempts = attempt
		schema, err = loader.ParseSchema(ctx)
		if err == nil || ctx.Err() != nil || attempt == r.config.Retry.Attempts {
			break
		}
		if r.logger != nil {
			r.logger.Printf("[%s] attempt %d for %s failed: %v", runID, attempt, source, err)
		}
		select {
		case <-ctx.Done():
		case <-time.After(r.config.Retry.Delay):
		}
	}

	result.Duration = time.Since(start)
	if err != nil {
		result.Status = StatusError
		result.Error = fmt.Errorf("failed to load schema %s: %w", source, err)
		if r.logger != nil {
			r.logger.LogInferenceRun(source, nil, result.Error)
		}
		return result
	}

	result.Schema = schema
	result.Result = r.inferer.Infer(schema, models)
	result.Status = StatusSuccess
	result.Duration = time.Since(start)
	if r.logger != nil {
		r.logger.LogInferenceRun(source, result.Result, nil)
	}
	return result
}
