package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/davecgh/go-spew/spew"

	"schema-mapper/internal/types"
)

// Logger provides logging functionality
type Logger struct {
	*log.Logger
	file     *os.File
	detailed bool
}

// NewLogger creates a logger writing to a timestamped file in logDir
func NewLogger(logDir string) (*Logger, error) {
	// Create log directory if it doesn't exist
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	logPath := filepath.Join(logDir, fmt.Sprintf("mapper_%s.log", timestamp))
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	return &Logger{
		Logger: log.New(file, "", log.LstdFlags),
		file:   file,
	}, nil
}

// New creates a logger writing to w
func New(w io.Writer) *Logger {
	return &Logger{Logger: log.New(w, "", log.LstdFlags)}
}

// SetDetailed makes the Log* helpers dump full values
func (l *Logger) SetDetailed(detailed bool) {
	l.detailed = detailed
}

// Path returns the log file path, or "" when not logging to a file
func (l *Logger) Path() string {
	if l.file == nil {
		return ""
	}
	return l.file.Name()
}

// Close closes the log file
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// LogInferenceRun logs the outcome of mapping one schema source
func (l *Logger) LogInferenceRun(source string, result *types.InferenceResult, err error) {
	l.Printf("Inference source: %s\n", source)
	if err != nil {
		l.Printf("Error: %v\n", err)
		l.Println("---")
		return
	}
	l.Printf("Mapped: %d, Unmapped: %d, Skipped: %d\n",
		len(result.Mappings), len(result.Unmapped), len(result.Skipped))
	for _, s := range result.Skipped {
		l.Printf("Skipped %s %s: %s\n", s.Method, s.Path, s.Reason)
	}
	for _, u := range result.Unmapped {
		l.Printf("Unmapped %s %s: %s\n", u.Method, u.Path, u.Reason)
	}
	if l.detailed {
		l.Print(spew.Sdump(result.Mappings))
	}
	l.Println("---")
}

// LogDatasetParse logs the outcome of parsing one CSV source
func (l *Logger) LogDatasetParse(source string, dataset *types.Dataset, err error) {
	l.Printf("Dataset source: %s\n", source)
	if err != nil {
		l.Printf("Error: %v\n", err)
	} else {
		l.Printf("Columns: %v\n", dataset.Columns)
		l.Printf("Types: %v\n", dataset.ColumnTypes)
		l.Printf("Rows: %d (truncated: %t)\n", len(dataset.Rows), dataset.Truncated)
	}
	l.Println("---")
}

// LogLLMInteraction logs an LLM interaction
func (l *Logger) LogLLMInteraction(operation string, input interface{}, output interface{}, err error) {
	l.Printf("LLM Operation: %s\n", operation)
	if l.detailed {
		l.Printf("Input: %s", spew.Sdump(input))
	} else {
		l.Printf("Input: %+v\n", input)
	}
	if err != nil {
		l.Printf("Error: %v\n", err)
	} else {
		l.Printf("Output: %+v\n", output)
	}
	l.Println("---")
}
