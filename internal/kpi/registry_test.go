package kpi

import (
	"testing"

	"github.com/jonathan/kpi-dashboard/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(fields map[string]string) dataset.Row {
	return dataset.Row{Line: 2, Fields: fields}
}

func TestRegistry_CoversEveryDatasetSchema(t *testing.T) {
	for _, key := range dataset.Keys() {
		def, err := Get(key)
		require.NoError(t, err, key)
		assert.Equal(t, key, def.Meta.Key)
		assert.Equal(t, key+".csv", def.Meta.SourceCSV)
		assert.NotNil(t, def.Summarize, key)
		assert.NotNil(t, def.Trend, key)
	}
	assert.Len(t, Registry, len(dataset.Schemas))
}

func TestGet_UnknownKey(t *testing.T) {
	_, err := Get("velocity")
	assert.Error(t, err)
}

func TestList_SortedByKey(t *testing.T) {
	metas := List()
	require.Len(t, metas, len(Registry))
	for i := 1; i < len(metas); i++ {
		assert.Less(t, metas[i-1].Key, metas[i].Key)
	}
}

func TestRegistry_BreakdownsWhereGroupedViewsExist(t *testing.T) {
	grouped := map[string]bool{
		"apps":          true,
		"mentoring":     true,
		"ai_engagement": true,
		"issues":        true,
	}
	for key, def := range Registry {
		if grouped[key] {
			assert.NotNil(t, def.Breakdowns, key)
		} else {
			assert.Nil(t, def.Breakdowns, key)
		}
	}
}

func TestEveryDefinition_HandlesEmptyRows(t *testing.T) {
	rng := DateRange{}
	for key, def := range Registry {
		card, err := def.Summarize(nil, rng)
		require.NoError(t, err, key)
		require.NotNil(t, card, key)
		assert.Equal(t, key, card.KPI)

		series, err := def.Trend(nil, rng)
		require.NoError(t, err, key)
		require.NotNil(t, series, key)
		assert.Empty(t, series.Points, key)

		if def.Breakdowns != nil {
			for _, b := range def.Breakdowns(nil, rng) {
				assert.Equal(t, key, b.KPI)
				assert.Empty(t, b.Groups, key)
			}
		}
	}
}
