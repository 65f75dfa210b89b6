package main

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSampleData(t *testing.T, binaryPath string) string {
	t.Helper()
	dir := t.TempDir()
	cmd := exec.Command(binaryPath, "sample-data", "--data-dir", dir)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "output: %s", out)
	return dir
}

func TestReportCommand_AllKPIs(t *testing.T) {
	binaryPath := getBinaryPath(t)
	dir := seedSampleData(t, binaryPath)

	cmd := exec.Command(binaryPath, "report", "--data-dir", dir)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "output: %s", out)

	assert.Contains(t, string(out), "Tickets Resolved")
	assert.Contains(t, string(out), "Apps – Total Saved")
}

func TestReportCommand_SingleKPIWithTrend(t *testing.T) {
	binaryPath := getBinaryPath(t)
	dir := seedSampleData(t, binaryPath)

	cmd := exec.Command(binaryPath, "report", "--data-dir", dir, "--kpi", "tickets", "--trend")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "output: %s", out)

	assert.Contains(t, string(out), "Tickets Resolved")
	assert.Contains(t, string(out), "2025-06")
	assert.NotContains(t, string(out), "Apps – Total Saved")
}

func TestReportCommand_Breakdown(t *testing.T) {
	binaryPath := getBinaryPath(t)
	dir := seedSampleData(t, binaryPath)

	cmd := exec.Command(binaryPath, "report", "--data-dir", dir, "--kpi", "mentoring", "--breakdown")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "output: %s", out)

	assert.Contains(t, string(out), "MENTORING BY DEPT")
	assert.Contains(t, string(out), "MENTORING BY MENTORING_TYPE")
	assert.Contains(t, string(out), "QA")
	assert.Contains(t, string(out), "prompt_eng")
}

func TestReportCommand_UnknownKPI(t *testing.T) {
	binaryPath := getBinaryPath(t)
	dir := seedSampleData(t, binaryPath)

	cmd := exec.Command(binaryPath, "report", "--data-dir", dir, "--kpi", "nonsense")
	out, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(out), "no data file")
}

func TestReportCommand_List(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "report", "--list")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "output: %s", out)

	assert.Contains(t, string(out), "tickets")
	assert.Contains(t, string(out), "learning")
}

func TestReportCommand_EmptyDataDir(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "report", "--data-dir", t.TempDir())
	out, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(out), "no KPI CSV files")
}
