package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCalendarDate_Valid(t *testing.T) {
	d, err := ParseCalendarDate("2024-01-05")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-05", d.String())
	assert.Equal(t, "2024-01", d.MonthKey())
}

func TestParseCalendarDate_TrimsWhitespace(t *testing.T) {
	d, err := ParseCalendarDate("  2024-02-29 ")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", d.String())
}

func TestParseCalendarDate_Invalid(t *testing.T) {
	_, err := ParseCalendarDate("05/01/2024")
	assert.Error(t, err)

	_, err = ParseCalendarDate("")
	assert.Error(t, err)
}

func TestLearningRecord_JSONRoundTrip(t *testing.T) {
	applied := 1.5
	apps := 4
	delta := -3.5

	d, err := ParseCalendarDate("2024-02-01")
	require.NoError(t, err)

	rec := LearningRecord{
		Date:                d,
		CoreSkill:           "Data",
		SkillsTechTags:      []string{"duckdb", "sql"},
		TimeSpentHrs:        2,
		AppliedHrs:          &applied,
		Applications:        &apps,
		DeltaPerformancePct: &delta,
		Notes:               "lab",
	}

	data, err := json.Marshal(&rec)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"date":"2024-02-01"`)

	var back LearningRecord
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, rec.CoreSkill, back.CoreSkill)
	assert.Equal(t, rec.SkillsTechTags, back.SkillsTechTags)
	assert.Equal(t, rec.TimeSpentHrs, back.TimeSpentHrs)
	require.NotNil(t, back.DeltaPerformancePct)
	assert.Equal(t, -3.5, *back.DeltaPerformancePct)
	assert.Nil(t, back.TimeSavedHrs)
}

func TestLearningRecord_OmitsUntrackedFields(t *testing.T) {
	d, err := ParseCalendarDate("2024-01-05")
	require.NoError(t, err)

	rec := LearningRecord{
		Date:           d,
		CoreSkill:      "Cloud",
		SkillsTechTags: []string{"aws"},
		TimeSpentHrs:   3.5,
	}

	data, err := json.Marshal(&rec)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "applied_hrs")
	assert.NotContains(t, string(data), "cost_eur")
}

func TestLearningRecord_HasTag(t *testing.T) {
	rec := LearningRecord{SkillsTechTags: []string{"aws", "terraform"}}
	assert.True(t, rec.HasTag("terraform"))
	assert.False(t, rec.HasTag("gcp"))
}
