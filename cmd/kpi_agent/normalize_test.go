package main

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/kpi-dashboard/internal/types"
)

const legacyLearningCSV = `date,core_skill,skills_tech_tags,learning_hrs,notes
2024-06-01,Backend,"go, pgx",4.5,interfaces
2024-06-15,Backend,go,2,
not-a-date,Backend,go,1,
`

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "learning.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNormalizeCommand_LegacyMigration(t *testing.T) {
	binaryPath := getBinaryPath(t)

	input := writeTempCSV(t, legacyLearningCSV)
	output := filepath.Join(t.TempDir(), "normalized.json")

	cmd := exec.Command(binaryPath, "normalize", "--in", input, "--out", output, "--format", "json")
	out, err := cmd.CombinedOutput()

	// Row errors are reported but never fail the command.
	assert.NoError(t, err, "normalize should succeed despite row errors, output: %s", out)
	assert.Contains(t, string(out), "line 4")

	data, err := os.ReadFile(output)
	require.NoError(t, err)

	var recs []types.LearningRecord
	require.NoError(t, json.Unmarshal(data, &recs))
	require.Len(t, recs, 2)
	assert.Equal(t, 4.5, recs[0].TimeSpentHrs)
	assert.ElementsMatch(t, []string{"go", "pgx"}, recs[0].SkillsTechTags)
}

func TestNormalizeCommand_CSVOutput(t *testing.T) {
	binaryPath := getBinaryPath(t)

	input := writeTempCSV(t, legacyLearningCSV)
	output := filepath.Join(t.TempDir(), "normalized.csv")

	cmd := exec.Command(binaryPath, "normalize", "--in", input, "--out", output)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "output: %s", out)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "time_spent_hrs")
	assert.NotContains(t, string(data), "learning_hrs")
}

func TestNormalizeCommand_MissingInput(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "normalize")
	out, err := cmd.CombinedOutput()

	assert.Error(t, err, "command should fail without --in")
	assert.Contains(t, string(out), "required")
}

func TestNormalizeCommand_UnreadableInput(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "normalize", "--in", filepath.Join(t.TempDir(), "missing.csv"))
	_, err := cmd.CombinedOutput()

	assert.Error(t, err, "I/O failure should exit non-zero")
}

func TestNormalizeCommand_BadFormat(t *testing.T) {
	binaryPath := getBinaryPath(t)

	input := writeTempCSV(t, legacyLearningCSV)
	cmd := exec.Command(binaryPath, "normalize", "--in", input, "--format", "yaml")
	out, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(out), "invalid format")
}
