package kpi

import (
	"fmt"

	"github.com/jonathan/kpi-dashboard/internal/dataset"
	"github.com/jonathan/kpi-dashboard/internal/records"
	"github.com/jonathan/kpi-dashboard/internal/types"
)

// LearningMonthly is one month of learning efficiency and impact, computed
// from normalized records. Untracked optional metrics are excluded from the
// averages and sums rather than counted as zero.
type LearningMonthly struct {
	Month           string  `json:"month"`
	TimeSpentHrs    float64 `json:"time_spent_hrs"`
	AvgEfficiency   float64 `json:"avg_efficiency"`
	AvgDeltaPerfPct float64 `json:"avg_delta_performance_pct"`
	TimeSavedHrs    float64 `json:"time_saved_hrs"`
	CostEUR         float64 `json:"cost_eur"`
}

// LearningMonthlyStats aggregates normalized learning records per month.
// Efficiency is applied_hrs / time_spent_hrs for records tracking both.
func LearningMonthlyStats(recs []types.LearningRecord, rng DateRange) []LearningMonthly {
	type accum struct {
		spent      float64
		effSum     float64
		effCount   float64
		deltaSum   float64
		deltaCount float64
		saved      float64
		cost       float64
	}
	accums := make(map[string]*accum)

	for _, rec := range recs {
		if !rng.Contains(rec.Date.Time) {
			continue
		}
		month := rec.Date.MonthKey()
		acc := accums[month]
		if acc == nil {
			acc = &accum{}
			accums[month] = acc
		}
		acc.spent += rec.TimeSpentHrs
		if rec.AppliedHrs != nil && rec.TimeSpentHrs > 0 {
			acc.effSum += *rec.AppliedHrs / rec.TimeSpentHrs
			acc.effCount++
		}
		if rec.DeltaPerformancePct != nil {
			acc.deltaSum += *rec.DeltaPerformancePct
			acc.deltaCount++
		}
		if rec.TimeSavedHrs != nil {
			acc.saved += *rec.TimeSavedHrs
		}
		if rec.CostEUR != nil {
			acc.cost += *rec.CostEUR
		}
	}

	out := make([]LearningMonthly, 0, len(accums))
	for _, month := range sortedKeys(accums) {
		acc := accums[month]
		m := LearningMonthly{
			Month:        month,
			TimeSpentHrs: acc.spent,
			TimeSavedHrs: acc.saved,
			CostEUR:      acc.cost,
		}
		if acc.effCount > 0 {
			m.AvgEfficiency = acc.effSum / acc.effCount
		}
		if acc.deltaCount > 0 {
			m.AvgDeltaPerfPct = acc.deltaSum / acc.deltaCount
		}
		out = append(out, m)
	}
	return out
}

// normalizeLearning runs the row normalizer over raw rows, keeping the clean
// records. Bad rows surface in the normalize endpoints and CLI, not here.
func normalizeLearning(rows []dataset.Row) []types.LearningRecord {
	return records.NewNormalizer(nil).NormalizeAll(rows).Records
}

func summarizeLearning(rows []dataset.Row, rng DateRange) (*Card, error) {
	monthly := LearningMonthlyStats(normalizeLearning(rows), rng)
	var sum float64
	var n float64
	for _, m := range monthly {
		if m.AvgEfficiency > 0 {
			sum += m.AvgEfficiency
			n++
		}
	}
	var avg float64
	if n > 0 {
		avg = sum / n
	}
	return &Card{
		KPI:       "learning",
		Label:     "Learning Efficiency",
		Value:     avg,
		Unit:      "ratio",
		Formatted: fmt.Sprintf("%.2f ratio", avg),
		Help:      "Applied hours per learning hour, averaged over months in range",
	}, nil
}

func trendLearning(rows []dataset.Row, rng DateRange) (*Series, error) {
	series := &Series{
		KPI: "learning",
		Columns: []string{
			"time_spent_hrs", "avg_efficiency", "avg_delta_performance_pct",
			"time_saved_hrs", "cost_eur",
		},
	}
	for _, m := range LearningMonthlyStats(normalizeLearning(rows), rng) {
		series.Points = append(series.Points, Point{
			Period: m.Month,
			Values: map[string]float64{
				"time_spent_hrs":            m.TimeSpentHrs,
				"avg_efficiency":            m.AvgEfficiency,
				"avg_delta_performance_pct": m.AvgDeltaPerfPct,
				"time_saved_hrs":            m.TimeSavedHrs,
				"cost_eur":                  m.CostEUR,
			},
		})
	}
	return series, nil
}
