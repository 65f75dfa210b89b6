package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/kpi-dashboard/internal/kpi"
	"github.com/jonathan/kpi-dashboard/internal/records"
)

func TestPrintCard(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	card := &kpi.Card{
		KPI:       "learning",
		Label:     "Learning Efficiency",
		Value:     0.72,
		Unit:      "ratio",
		Formatted: "0.72",
		Help:      "Applied hours over invested hours",
	}

	p.PrintCard(card)
	output := buf.String()

	assert.Contains(t, output, "LEARNING")
	assert.Contains(t, output, "Learning Efficiency")
	assert.Contains(t, output, "0.72")
	assert.Contains(t, output, "Applied hours over invested hours")
}

func TestPrintCard_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCard(nil)

	assert.Empty(t, buf.String())
}

func TestPrintSeries(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	series := &kpi.Series{
		KPI:     "tickets",
		Columns: []string{"count"},
		Points: []kpi.Point{
			{Period: "2025-05", Values: map[string]float64{"count": 12}},
			{Period: "2025-06", Values: map[string]float64{"count": 9}},
		},
	}

	p.PrintSeries(series)
	output := buf.String()

	assert.Contains(t, output, "TREND: TICKETS")
	assert.Contains(t, output, "2025-05")
	assert.Contains(t, output, "2025-06")
	assert.Contains(t, output, "count: 9.00")
}

func TestPrintSeries_TruncatesOldPeriods(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	series := &kpi.Series{KPI: "tickets", Columns: []string{"count"}}
	for _, period := range []string{"2025-01", "2025-02", "2025-03", "2025-04", "2025-05", "2025-06", "2025-07"} {
		series.Points = append(series.Points, kpi.Point{
			Period: period, Values: map[string]float64{"count": 1},
		})
	}

	p.PrintSeries(series)
	output := buf.String()

	assert.Contains(t, output, "2 earlier periods")
	assert.NotContains(t, output, "2025-01")
	assert.Contains(t, output, "2025-07")
}

func TestPrintBreakdown(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	b := &kpi.Breakdown{
		KPI:       "mentoring",
		Dimension: "dept",
		Columns:   []string{"mentor_hrs", "roi"},
		Groups: []kpi.Group{
			{Name: "IT", Values: map[string]float64{"mentor_hrs": 2, "roi": 2.5}},
			{Name: "QA", Values: map[string]float64{"mentor_hrs": 3, "roi": 3.33}},
		},
	}

	p.PrintBreakdown(b)
	output := buf.String()

	assert.Contains(t, output, "MENTORING BY DEPT")
	assert.Contains(t, output, "IT")
	assert.Contains(t, output, "roi: 2.50")
	assert.Contains(t, output, "mentor_hrs: 3.00")
}

func TestPrintBreakdown_EmptyGroups(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintBreakdown(&kpi.Breakdown{KPI: "mentoring", Dimension: "dept"})
	p.PrintBreakdown(nil)

	assert.Empty(t, buf.String())
}

func TestPrintBatchResult_NoProblems(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintBatchResult(&records.BatchResult{})
	output := buf.String()

	assert.Contains(t, output, "NORMALIZED CLEANLY")
}

func TestPrintBatchResult_WithErrorsAndWarnings(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := &records.BatchResult{
		Errors: []*records.NormalizationError{
			{Line: 3, Field: "time_spent_hrs", Kind: records.KindUnparseableValue, Message: "cannot parse \"abc\""},
		},
		Warnings: []*records.NormalizationError{
			{Line: 5, Field: "core_skill", Kind: records.KindUnknownSkillCategory, Message: "unknown skill category \"Quantum\""},
		},
	}

	p.PrintBatchResult(result)
	output := buf.String()

	assert.Contains(t, output, "NORMALIZATION REPORT")
	assert.Contains(t, output, "line 3 [time_spent_hrs]")
	assert.Contains(t, output, "line 5")
	assert.Contains(t, output, "Quantum")
}

func TestPrintMetaTable(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMetaTable(kpi.List())
	output := buf.String()

	assert.Contains(t, output, "KPI REFERENCE")
	assert.Contains(t, output, "learning")
	assert.Contains(t, output, "time_mgmt")
}

func TestPrintBox_LongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	card := &kpi.Card{
		KPI:       "mentoring",
		Label:     "A Very Long Card Label That Should Be Truncated To Fit The Box",
		Formatted: "3.20x",
		Help:      "An extremely long help text that goes far past the box width and must be cut",
	}

	p.PrintCard(card)
	output := buf.String()

	// Should contain box characters
	assert.True(t, strings.Contains(output, "┌"))
	assert.True(t, strings.Contains(output, "└"))
	assert.True(t, strings.Contains(output, "│"))
}
