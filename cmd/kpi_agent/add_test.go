package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCommand(t *testing.T) {
	binaryPath := getBinaryPath(t)
	dir := t.TempDir()

	cmd := exec.Command(binaryPath, "add",
		"--kpi", "tickets",
		"--data-dir", dir,
		"--field", "ticket_id=T-1,date_closed=2024-06-10")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "output: %s", out)

	data, err := os.ReadFile(filepath.Join(dir, "tickets.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "ticket_id,date_closed")
	assert.Contains(t, string(data), "T-1,2024-06-10")
}

func TestAddCommand_DerivesWeekLabel(t *testing.T) {
	binaryPath := getBinaryPath(t)
	dir := t.TempDir()

	cmd := exec.Command(binaryPath, "add",
		"--kpi", "time_mgmt",
		"--data-dir", dir,
		"--field", "week_start=2024-06-03,development=20")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "output: %s", out)

	data, err := os.ReadFile(filepath.Join(dir, "time_mgmt.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "2024-W23")
}

func TestAddCommand_RejectsUnknownColumn(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "add",
		"--kpi", "tickets",
		"--data-dir", t.TempDir(),
		"--field", "nonsense=1")
	out, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(out), "not part of the tickets schema")
}

func TestAddCommand_RejectsValueOutsideVocabulary(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "add",
		"--kpi", "mentoring",
		"--data-dir", t.TempDir(),
		"--field", "session_id=1,date=2024-06-10,dept=Marketing,mentoring_type=prompt_eng")
	out, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(out), "vocabulary")
}

func TestAddCommand_AcceptsConfiguredVocabulary(t *testing.T) {
	binaryPath := getBinaryPath(t)
	dir := t.TempDir()

	cmd := exec.Command(binaryPath, "add",
		"--kpi", "mentoring",
		"--data-dir", dir,
		"--field", "session_id=1,date=2024-06-10,dept=IT,mentoring_type=prompt_eng,mentor_hrs=2")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "output: %s", out)

	data, err := os.ReadFile(filepath.Join(dir, "mentoring.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "1,2024-06-10,IT,prompt_eng,2")
}

func TestAddCommand_RejectsBadDate(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "add",
		"--kpi", "tickets",
		"--data-dir", t.TempDir(),
		"--field", "ticket_id=T-1,date_closed=June 10")
	_, err := cmd.CombinedOutput()

	assert.Error(t, err)
}
