package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tickets.csv"), []byte("ticket_id,date_closed\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "learning.csv"), []byte("date,core_skill,skills_tech_tags,time_spent_hrs\n"), 0644))
	// Not a registered KPI key and not a CSV: both ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.csv"), []byte("a,b\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("hi"), 0644))

	found, err := Discover(dir)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Contains(t, found, "tickets")
	assert.Contains(t, found, "learning")
}

func TestDiscover_MissingDir(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tickets.csv"),
		[]byte("ticket_id,date_closed\nT-1,2024-06-10\nT-2,2024-06-12\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "issues.csv"),
		[]byte("issue_id,date_closed,type\nI-1,2024-06-05,bug\n"), 0644))

	loaded, err := LoadAll(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Len(t, loaded["tickets"], 2)
	assert.Len(t, loaded["issues"], 1)
	assert.Equal(t, "bug", loaded["issues"][0].Get("type"))
}

func TestWriteSampleData(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	require.NoError(t, WriteSampleData(dir))

	loaded, err := LoadAll(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, loaded, len(Schemas))
	for key, rows := range loaded {
		assert.NotEmpty(t, rows, "sample file for %s should have rows", key)
	}
}

func TestWriteSampleData_NeverClobbers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tickets.csv")
	require.NoError(t, os.WriteFile(path, []byte("ticket_id,date_closed\nT-99,2024-01-01\n"), 0644))

	require.NoError(t, WriteSampleData(dir))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "T-99")
}
