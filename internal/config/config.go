package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks for its configuration
const DefaultPath = "config/config.yaml"

// Config holds the application configuration
type Config struct {
	Mapping   MappingConfig   `yaml:"mapping"`
	CSV       CSVConfig       `yaml:"csv"`
	Runner    RunnerConfig    `yaml:"runner"`
	Reporting ReportingConfig `yaml:"reporting"`
	Database  DatabaseConfig  `yaml:"database"`
	LLM       LLMConfig       `yaml:"llm"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// MappingConfig holds inference and CRUD synthesis settings
type MappingConfig struct {
	BasePath     string        `yaml:"base_path"`
	SkipPatterns []SkipPattern `yaml:"skip_patterns"`
}

// SkipPattern adds a path substring to the default skip taxonomy
type SkipPattern struct {
	Pattern  string `yaml:"pattern"`
	Category string `yaml:"category"`
}

// CSVConfig holds dataset parsing limits
type CSVConfig struct {
	MaxRows  int `yaml:"max_rows"`
	MaxBytes int `yaml:"max_bytes"`
}

// RunnerConfig holds batch execution configuration
type RunnerConfig struct {
	Concurrent bool        `yaml:"concurrent"`
	MaxWorkers int         `yaml:"max_workers"`
	Timeout    int         `yaml:"timeout"`
	Retry      RetryConfig `yaml:"retry"`
}

// RetryConfig holds retry configuration
type RetryConfig struct {
	Attempts int `yaml:"attempts"`
	Delay    int `yaml:"delay"`
}

// ReportingConfig holds reporting configuration
type ReportingConfig struct {
	Format    []string `yaml:"format"`
	OutputDir string   `yaml:"output_dir"`
	Detailed  bool     `yaml:"detailed"`
}

// DatabaseConfig points at a database whose tables are the available models
type DatabaseConfig struct {
	Type     string `yaml:"type"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// LLMConfig holds configuration for suggesting models for unmapped endpoints
type LLMConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Provider    string  `yaml:"provider"`
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model"`
	BaseURL     string  `yaml:"base_url"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// LoggingConfig holds log file settings
type LoggingConfig struct {
	Dir string `yaml:"dir"`
}

// LoadConfig loads the configuration file at path, then applies environment
// overrides and defaults. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	var config Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	config.applyEnv()
	config.applyDefaults()
	return &config, nil
}

// Default returns the configuration used when no file is present
func Default() *Config {
	var config Config
	config.applyEnv()
	config.applyDefaults()
	return &config
}

func (c *Config) applyEnv() {
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		c.Database.Password = password
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		c.LLM.APIKey = key
	}
}

func (c *Config) applyDefaults() {
	if c.Mapping.BasePath == "" {
		c.Mapping.BasePath = "/api"
	}
	if c.CSV.MaxRows == 0 {
		c.CSV.MaxRows = 1000
	}
	if c.CSV.MaxBytes == 0 {
		c.CSV.MaxBytes = 5 << 20
	}
	if c.Runner.MaxWorkers == 0 {
		c.Runner.MaxWorkers = 5
	}
	if c.Runner.Timeout == 0 {
		c.Runner.Timeout = 30
	}
	if c.Runner.Retry.Attempts == 0 {
		c.Runner.Retry.Attempts = 3
	}
	if c.Runner.Retry.Delay == 0 {
		c.Runner.Retry.Delay = 1
	}
	if len(c.Reporting.Format) == 0 {
		c.Reporting.Format = []string{"json"}
	}
	if c.Reporting.OutputDir == "" {
		c.Reporting.OutputDir = filepath.Join("reports")
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "openai"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gpt-4"
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 50
	}
	if c.Logging.Dir == "" {
		c.Logging.Dir = "logs"
	}
}

// Validate checks fields that have no sensible default
func (c *Config) Validate() error {
	if c.Runner.MaxWorkers < 1 {
		return fmt.Errorf("runner.max_workers must be positive, got %d", c.Runner.MaxWorkers)
	}
	if c.CSV.MaxRows < 1 {
		return fmt.Errorf("csv.max_rows must be positive, got %d", c.CSV.MaxRows)
	}
	if c.LLM.Enabled && c.LLM.APIKey == "" {
		return fmt.Errorf("llm.api_key is required when llm.enabled is true")
	}
	for _, f := range c.Reporting.Format {
		if f != "json" && f != "yaml" {
			return fmt.Errorf("unsupported report format: %s", f)
		}
	}
	return nil
}
