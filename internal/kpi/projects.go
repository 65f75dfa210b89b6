package kpi

import (
	"fmt"

	"github.com/jonathan/kpi-dashboard/internal/dataset"
)

// ProjectDelivery is one project's MVP delivery outcome.
type ProjectDelivery struct {
	ProjectName string  `json:"project_name"`
	Dept        string  `json:"dept"`
	Month       string  `json:"month"`
	CycleDays   float64 `json:"mvp_cycle_days"`
	OnTime      bool    `json:"on_time"`
}

// ProjectsMonthly is one month of MVP delivery performance.
type ProjectsMonthly struct {
	Month        string  `json:"month"`
	MVPs         int     `json:"mvps"`
	AvgCycleDays float64 `json:"avg_cycle_days"`
	OnTimeRate   float64 `json:"on_time_rate"`
}

// ProjectsDelivered lists projects whose MVP shipped inside the range, with
// cycle length (actual - start, days) and whether they beat the target date.
func ProjectsDelivered(rows []dataset.Row, rng DateRange) []ProjectDelivery {
	var out []ProjectDelivery
	for _, row := range rows {
		start, okS := rowDate(row, "start_date")
		actual, okA := rowDate(row, "mvp_actual_date")
		if !okS || !okA || !rng.Contains(actual) {
			continue
		}
		d := ProjectDelivery{
			ProjectName: row.Get("project_name"),
			Dept:        row.Get("dept"),
			Month:       actual.Format("2006-01"),
			CycleDays:   actual.Sub(start).Hours() / 24,
		}
		if target, ok := rowDate(row, "mvp_target_date"); ok {
			d.OnTime = !actual.After(target)
		}
		out = append(out, d)
	}
	return out
}

// ProjectsMonthlyStats rolls delivered projects up by delivery month.
func ProjectsMonthlyStats(rows []dataset.Row, rng DateRange) []ProjectsMonthly {
	type accum struct {
		mvps   int
		cycle  float64
		onTime int
	}
	accums := make(map[string]*accum)
	for _, d := range ProjectsDelivered(rows, rng) {
		acc := accums[d.Month]
		if acc == nil {
			acc = &accum{}
			accums[d.Month] = acc
		}
		acc.mvps++
		acc.cycle += d.CycleDays
		if d.OnTime {
			acc.onTime++
		}
	}

	out := make([]ProjectsMonthly, 0, len(accums))
	for _, month := range sortedKeys(accums) {
		acc := accums[month]
		out = append(out, ProjectsMonthly{
			Month:        month,
			MVPs:         acc.mvps,
			AvgCycleDays: acc.cycle / float64(acc.mvps),
			OnTimeRate:   float64(acc.onTime) / float64(acc.mvps),
		})
	}
	return out
}

// ProjectsRunning counts projects active during the range: started before the
// range ends and not delivered before it starts.
func ProjectsRunning(rows []dataset.Row, rng DateRange) int {
	count := 0
	for _, row := range rows {
		start, ok := rowDate(row, "start_date")
		if !ok {
			continue
		}
		if !rng.End.IsZero() && start.After(rng.End) {
			continue
		}
		if actual, ok := rowDate(row, "mvp_actual_date"); ok {
			if !rng.Start.IsZero() && actual.Before(rng.Start) {
				continue
			}
		}
		count++
	}
	return count
}

func summarizeProjects(rows []dataset.Row, rng DateRange) (*Card, error) {
	running := ProjectsRunning(rows, rng)
	return &Card{
		KPI:       "project_mgmt",
		Label:     "Projects Running",
		Value:     float64(running),
		Unit:      "count",
		Formatted: fmt.Sprintf("%d", running),
		Help:      "Started before range end and not delivered before range start",
	}, nil
}

func trendProjects(rows []dataset.Row, rng DateRange) (*Series, error) {
	series := &Series{
		KPI:     "project_mgmt",
		Columns: []string{"mvps", "avg_cycle_days", "on_time_rate"},
	}
	for _, m := range ProjectsMonthlyStats(rows, rng) {
		series.Points = append(series.Points, Point{
			Period: m.Month,
			Values: map[string]float64{
				"mvps":           float64(m.MVPs),
				"avg_cycle_days": m.AvgCycleDays,
				"on_time_rate":   m.OnTimeRate,
			},
		})
	}
	return series, nil
}
