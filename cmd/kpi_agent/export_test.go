package main

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCommand_WithValidation(t *testing.T) {
	binaryPath := getBinaryPath(t)

	input := writeTempCSV(t, legacyLearningCSV)
	output := filepath.Join(t.TempDir(), "records.json")

	cmd := exec.Command(binaryPath, "export", "--in", input, "--out", output, "--validate")
	out, err := cmd.CombinedOutput()

	require.NoError(t, err, "export should succeed, output: %s", out)
	assert.Contains(t, string(out), "Exported 2 records")

	data, err := os.ReadFile(output)
	require.NoError(t, err)

	var recs []map[string]any
	require.NoError(t, json.Unmarshal(data, &recs))
	require.Len(t, recs, 2)

	// Normalized output uses the canonical column name.
	_, hasLegacy := recs[0]["learning_hrs"]
	assert.False(t, hasLegacy)
	assert.Contains(t, recs[0], "time_spent_hrs")
}

func TestExportCommand_ReportsSkippedRows(t *testing.T) {
	binaryPath := getBinaryPath(t)

	input := writeTempCSV(t, legacyLearningCSV)
	output := filepath.Join(t.TempDir(), "records.json")

	cmd := exec.Command(binaryPath, "export", "--in", input, "--out", output)
	out, err := cmd.CombinedOutput()

	require.NoError(t, err)
	assert.Contains(t, string(out), "Skipped")
}

func TestExportCommand_MissingFlags(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "export", "--in", "whatever.csv")
	out, err := cmd.CombinedOutput()

	assert.Error(t, err, "command should fail without --out")
	assert.Contains(t, string(out), "required")
}
