package reporter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"schema-mapper/internal/types"
)

// Report kinds
const (
	KindInference = "inference"
	KindCRUD      = "crud"
	KindDataset   = "dataset"
)

// Report represents the output of one CLI run
type Report struct {
	ID        uuid.UUID               `json:"id" yaml:"id"`
	Timestamp time.Time               `json:"timestamp" yaml:"timestamp"`
	Kind      string                  `json:"kind" yaml:"kind"`
	Source    string                  `json:"source,omitempty" yaml:"source,omitempty"`
	Inference *types.InferenceResult  `json:"inference,omitempty" yaml:"inference,omitempty"`
	Endpoints []types.EndpointMapping `json:"endpoints,omitempty" yaml:"endpoints,omitempty"`
	Dataset   *types.Dataset          `json:"dataset,omitempty" yaml:"dataset,omitempty"`
	Error     string                  `json:"error,omitempty" yaml:"error,omitempty"`
	Summary   Summary                 `json:"summary" yaml:"summary"`
}

// Summary holds the headline counts of a report
type Summary struct {
	Mapped   int `json:"mapped" yaml:"mapped"`
	Unmapped int `json:"unmapped" yaml:"unmapped"`
	Skipped  int `json:"skipped" yaml:"skipped"`
	Columns  int `json:"columns" yaml:"columns"`
	Rows     int `json:"rows" yaml:"rows"`
}

// Reporter handles the generation of reports
type Reporter struct {
	config ReportingConfig
}

// ReportingConfig holds the configuration for reporting
type ReportingConfig struct {
	Format    []string
	OutputDir string
	Detailed  bool
}

// NewReporter creates a new instance of Reporter
func NewReporter(config ReportingConfig) *Reporter {
	return &Reporter{
		config: config,
	}
}

// NewReport creates a report of kind with a fresh ID and timestamp
func NewReport(kind, source string) *Report {
	return &Report{
		ID:        uuid.New(),
		Timestamp: time.Now(),
		Kind:      kind,
		Source:    source,
	}
}

// Summarize fills Summary from whatever results the report carries
func (r *Report) Summarize() {
	s := Summary{Mapped: len(r.Endpoints)}
	if r.Inference != nil {
		s.Mapped += len(r.Inference.Mappings)
		s.Unmapped = len(r.Inference.Unmapped)
		s.Skipped = len(r.Inference.Skipped)
	}
	if r.Dataset != nil {
		s.Columns = len(r.Dataset.Columns)
		s.Rows = len(r.Dataset.Rows)
	}
	r.Summary = s
}

// GenerateReport writes report in every configured format and returns the file paths
func (r *Reporter) GenerateReport(report *Report) ([]string, error) {
	report.Summarize()

	out := *report
	if !r.config.Detailed && out.Dataset != nil {
		// Rows can be large; summaries keep columns and types only.
		ds := *out.Dataset
		ds.Rows = nil
		out.Dataset = &ds
	}

	var paths []string
	for _, format := range r.config.Format {
		var (
			path string
			err  error
		)
		switch format {
		case "json":
			path, err = r.write(out, "json", func(v interface{}) ([]byte, error) {
				return json.MarshalIndent(v, "", "  ")
			})
		case "yaml":
			path, err = r.write(out, "yaml", yaml.Marshal)
		default:
			err = fmt.Errorf("unsupported format %q", format)
		}
		if err != nil {
			return paths, fmt.Errorf("failed to generate %s report: %w", format, err)
		}
		paths = append(paths, path)
	}

	return paths, nil
}

func (r *Reporter) write(report Report, ext string, marshal func(interface{}) ([]byte, error)) (string, error) {
	// Create output directory if it doesn't exist
	if err := os.MkdirAll(r.config.OutputDir, 0755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("report_%s_%s.%s", report.Timestamp.Format("20060102_150405"), report.ID.String()[:8], ext)
	reportPath := filepath.Join(r.config.OutputDir, name)

	data, err := marshal(report)
	if err != nil {
		return "", err
	}

	return reportPath, os.WriteFile(reportPath, data, 0644)
}
