package kpi

import (
	"testing"

	"github.com/jonathan/kpi-dashboard/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func engagementRows() []dataset.Row {
	return []dataset.Row{
		row(map[string]string{
			"month": "2025-06", "dept": "Support",
			"active_users": "12", "ai_calls": "340", "survey_score": "4.2",
		}),
		row(map[string]string{
			"month": "2025-06", "dept": "Sales",
			"active_users": "8", "ai_calls": "120", "survey_score": "3.8",
		}),
		row(map[string]string{
			"month": "2025-07", "dept": "Support",
			"active_users": "15", "ai_calls": "410", "survey_score": "4.4",
		}),
	}
}

func TestEngagementMonthlyStats(t *testing.T) {
	monthly := EngagementMonthlyStats(engagementRows(), DateRange{})
	require.Len(t, monthly, 2)

	june := monthly[0]
	assert.Equal(t, "2025-06", june.Month)
	assert.InDelta(t, 20, june.ActiveUsers, 1e-9)
	assert.InDelta(t, 460, june.AICalls, 1e-9)
	assert.InDelta(t, 4.0, june.AvgSurvey, 1e-9)
}

func TestEngagementByDept(t *testing.T) {
	byDept := EngagementByDept(engagementRows(), DateRange{})
	require.Len(t, byDept, 2)

	// Sorted by AI calls descending.
	assert.Equal(t, "Support", byDept[0].Dept)
	assert.InDelta(t, 750, byDept[0].AICalls, 1e-9)
	assert.InDelta(t, 4.3, byDept[0].AvgSurvey, 1e-9)
	assert.Equal(t, "Sales", byDept[1].Dept)
}

func TestBreakdownEngagement(t *testing.T) {
	breakdowns := breakdownEngagement(engagementRows(), DateRange{})
	require.Len(t, breakdowns, 1)

	b := breakdowns[0]
	assert.Equal(t, "dept", b.Dimension)
	require.Len(t, b.Groups, 2)
	assert.Equal(t, "Support", b.Groups[0].Name)
	assert.InDelta(t, 750, b.Groups[0].Values["ai_calls"], 1e-9)
}

func TestSummarizeEngagement(t *testing.T) {
	card, err := summarizeEngagement(engagementRows(), mustRange(t, "2025-06", "2025-06"))
	require.NoError(t, err)
	assert.InDelta(t, 460, card.Value, 1e-9)
	assert.Equal(t, "460 events", card.Formatted)
}
