package kpi

import (
	"testing"

	"github.com/jonathan/kpi-dashboard/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectionRows() []dataset.Row {
	return []dataset.Row{
		row(map[string]string{
			"proc_name": "SurveyCollector", "month": "2025-06",
			"fields_before": "10", "fields_after": "15",
			"time_before_sec": "900", "time_after_sec": "300",
		}),
		row(map[string]string{
			"proc_name": "LogIngest", "month": "2025-06",
			"fields_before": "20", "fields_after": "22",
			"time_before_sec": "1800", "time_after_sec": "900",
		}),
	}
}

func TestCollectionMonthlyStats(t *testing.T) {
	monthly := CollectionMonthlyStats(collectionRows(), DateRange{})
	require.Len(t, monthly, 1)
	m := monthly[0]

	// Per-proc gains: 50% and 10% -> avg 30%.
	assert.InDelta(t, 30, m.AvgInfoGainPct, 1e-9)
	// Weighted: (15+22)/(10+20) - 1 = 23.33%.
	assert.InDelta(t, (37.0/30.0-1)*100, m.WeightedInfoGainPct, 1e-9)
	// Speed: 66.67% and 50% -> avg 58.33%.
	assert.InDelta(t, (200.0/3.0+50)/2, m.AvgSpeedImprPct, 1e-9)
	// Deltas: -600 and -900 -> avg -750 (negative == faster).
	assert.InDelta(t, -750, m.AvgSpeedDeltaSec, 1e-9)
	assert.InDelta(t, 7, m.TotalFieldsAdded, 1e-9)
}

func TestCollectionMonthlyStats_ZeroBeforeGuards(t *testing.T) {
	rows := []dataset.Row{
		row(map[string]string{
			"month": "2025-06", "fields_before": "0", "fields_after": "5",
			"time_before_sec": "0", "time_after_sec": "10",
		}),
	}
	monthly := CollectionMonthlyStats(rows, DateRange{})
	require.Len(t, monthly, 1)
	assert.Zero(t, monthly[0].AvgInfoGainPct)
	assert.Zero(t, monthly[0].AvgSpeedImprPct)
	assert.InDelta(t, 5, monthly[0].TotalFieldsAdded, 1e-9)
}

func TestSummarizeCollection(t *testing.T) {
	card, err := summarizeCollection(collectionRows(), DateRange{})
	require.NoError(t, err)
	assert.InDelta(t, (37.0/30.0-1)*100, card.Value, 1e-9)
	assert.Equal(t, "%", card.Unit)
}
