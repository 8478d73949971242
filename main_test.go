package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestConfig points logs and reports into a temp dir
func writeTestConfig(t *testing.T) (configPath, logDir, reportDir string) {
	t.Helper()
	dir := t.TempDir()
	logDir = filepath.Join(dir, "logs")
	reportDir = filepath.Join(dir, "reports")
	configPath = filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf("logging:\n  dir: %s\nreporting:\n  output_dir: %s\n  format: [json]\n", logDir, reportDir)
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))
	return configPath, logDir, reportDir
}

func readLog(t *testing.T, logDir string) string {
	t.Helper()
	files, err := filepath.Glob(filepath.Join(logDir, "mapper_*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	return string(data)
}

func TestRunCRUDWritesReport(t *testing.T) {
	configPath, _, reportDir := writeTestConfig(t)

	require.NoError(t, run([]string{"-config", configPath, "crud", "-models", "users,orders"}))

	reports, err := filepath.Glob(filepath.Join(reportDir, "report_*.json"))
	require.NoError(t, err)
	require.Len(t, reports, 1)
	data, err := os.ReadFile(reports[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"pattern": "/api/orders/:id"`)
}

func TestRunReturnsErrorsInsteadOfExiting(t *testing.T) {
	configPath, logDir, _ := writeTestConfig(t)
	missing := filepath.Join(t.TempDir(), "missing.csv")

	err := run([]string{"-config", configPath, "csv", "-file", missing})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read CSV file")
	assert.True(t, strings.Contains(readLog(t, logDir), "Error: failed to read CSV file"))
}

func TestRunUsageErrors(t *testing.T) {
	configPath, _, _ := writeTestConfig(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "no subcommand", args: []string{"-config", configPath}},
		{name: "unknown subcommand", args: []string{"-config", configPath, "serve"}},
		{name: "crud without models", args: []string{"-config", configPath, "crud"}},
		{name: "infer without schema", args: []string{"-config", configPath, "infer"}},
		{name: "csv without file", args: []string{"-config", configPath, "csv"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, run(tt.args), errUsage)
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"users", "orders"}, splitList(" users, ,orders,"))
	assert.Empty(t, splitList(""))
}
