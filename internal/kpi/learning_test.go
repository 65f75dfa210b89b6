package kpi

import (
	"testing"

	"github.com/jonathan/kpi-dashboard/internal/dataset"
	"github.com/jonathan/kpi-dashboard/internal/records"
	"github.com/jonathan/kpi-dashboard/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func learningRecords(t *testing.T) []types.LearningRecord {
	t.Helper()
	rows := []dataset.Row{
		// Legacy schema: only hours tracked.
		row(map[string]string{
			"date": "2025-06-01", "core_skill": "Cloud",
			"skills_tech_tags": "aws,terraform", "learning_hrs": "10",
		}),
		// Current schema, fully populated.
		row(map[string]string{
			"date": "2025-06-15", "core_skill": "Data",
			"time_spent_hrs": "8", "applied_hrs": "6",
			"delta_performance_pct": "-3.5", "time_saved_hrs": "0.5", "cost_eur": "49.99",
		}),
		row(map[string]string{
			"date": "2025-07-01", "core_skill": "Data",
			"time_spent_hrs": "4", "applied_hrs": "2",
			"delta_performance_pct": "12", "time_saved_hrs": "1",
		}),
	}
	result := records.NewNormalizer(nil).NormalizeAll(rows)
	require.Empty(t, result.Errors)
	return result.Records
}

func TestLearningMonthlyStats(t *testing.T) {
	monthly := LearningMonthlyStats(learningRecords(t), DateRange{})
	require.Len(t, monthly, 2)

	june := monthly[0]
	assert.Equal(t, "2025-06", june.Month)
	assert.InDelta(t, 18, june.TimeSpentHrs, 1e-9)
	// Only the second record tracks applied hours: 6/8.
	assert.InDelta(t, 0.75, june.AvgEfficiency, 1e-9)
	assert.InDelta(t, -3.5, june.AvgDeltaPerfPct, 1e-9)
	assert.InDelta(t, 0.5, june.TimeSavedHrs, 1e-9)
	assert.InDelta(t, 49.99, june.CostEUR, 1e-9)

	july := monthly[1]
	assert.InDelta(t, 0.5, july.AvgEfficiency, 1e-9)
	assert.Zero(t, july.CostEUR, "untracked cost contributes nothing")
}

func TestLearningMonthlyStats_UntrackedIsNotZero(t *testing.T) {
	// A record with no optional metrics must not drag averages toward zero.
	recs := learningRecords(t)[:1]
	monthly := LearningMonthlyStats(recs, DateRange{})
	require.Len(t, monthly, 1)
	assert.Zero(t, monthly[0].AvgEfficiency)
	assert.Zero(t, monthly[0].AvgDeltaPerfPct)
}

func TestSummarizeLearning_FromRawRows(t *testing.T) {
	rows := []dataset.Row{
		row(map[string]string{
			"date": "2025-06-01", "core_skill": "Cloud",
			"learning_hrs": "10", "applied_hrs": "4",
		}),
		// A broken row is skipped by the KPI, not fatal.
		row(map[string]string{"core_skill": "Cloud", "time_spent_hrs": "1"}),
	}

	card, err := summarizeLearning(rows, DateRange{})
	require.NoError(t, err)
	assert.InDelta(t, 0.4, card.Value, 1e-9)
	assert.Equal(t, "learning", card.KPI)
}

func TestTrendLearning_Columns(t *testing.T) {
	series, err := trendLearning([]dataset.Row{
		row(map[string]string{"date": "2025-06-01", "core_skill": "Data", "time_spent_hrs": "2"}),
	}, DateRange{})
	require.NoError(t, err)
	require.Len(t, series.Points, 1)
	assert.Equal(t, "2025-06", series.Points[0].Period)
	assert.Contains(t, series.Points[0].Values, "avg_delta_performance_pct")
}
