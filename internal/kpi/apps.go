package kpi

import (
	"fmt"

	"github.com/jonathan/kpi-dashboard/internal/dataset"
)

// AppsMonthly is one month of automation impact.
type AppsMonthly struct {
	Month      string  `json:"month"`
	TotalSaved float64 `json:"total_saved"`
}

// TypeCycle is the average development cycle for one app type.
type TypeCycle struct {
	AppType     string  `json:"app_type"`
	AvgDevDays  float64 `json:"avg_dev_days"`
	Deployments int     `json:"deployments"`
}

// AppsMonthlySaved aggregates hours saved per month:
// (time_before - time_after) * frequency_per_month, summed over apps.
func AppsMonthlySaved(rows []dataset.Row, rng DateRange) []AppsMonthly {
	totals := make(map[string]float64)
	for _, row := range rows {
		month, ok := rowMonth(row, "month")
		if !ok || !rng.ContainsMonth(month) {
			continue
		}
		before, ok1 := num(row, "time_before_hrs")
		after, ok2 := num(row, "time_after_hrs")
		freq, ok3 := num(row, "frequency_per_month")
		if !ok1 || !ok2 || !ok3 {
			continue
		}
		totals[month] += (before - after) * freq
	}

	out := make([]AppsMonthly, 0, len(totals))
	for _, month := range sortedKeys(totals) {
		out = append(out, AppsMonthly{Month: month, TotalSaved: totals[month]})
	}
	return out
}

// AppsDevCycle averages deploy_date - idea_date in days over apps deployed in
// the range, overall and per app type.
func AppsDevCycle(rows []dataset.Row, rng DateRange) (overall float64, byType []TypeCycle) {
	var totalDays, count float64
	typeDays := make(map[string]float64)
	typeCount := make(map[string]int)

	for _, row := range rows {
		idea, ok1 := rowDate(row, "idea_date")
		deploy, ok2 := rowDate(row, "deploy_date")
		if !ok1 || !ok2 || !rng.Contains(deploy) {
			continue
		}
		days := deploy.Sub(idea).Hours() / 24
		totalDays += days
		count++
		if appType := row.Get("app_type"); appType != "" {
			typeDays[appType] += days
			typeCount[appType]++
		}
	}

	if count > 0 {
		overall = totalDays / count
	}
	for _, appType := range sortedKeys(typeDays) {
		byType = append(byType, TypeCycle{
			AppType:     appType,
			AvgDevDays:  typeDays[appType] / float64(typeCount[appType]),
			Deployments: typeCount[appType],
		})
	}
	return overall, byType
}

func breakdownApps(rows []dataset.Row, rng DateRange) []Breakdown {
	_, byType := AppsDevCycle(rows, rng)
	b := Breakdown{
		KPI:       "apps",
		Dimension: "app_type",
		Columns:   []string{"avg_dev_days", "deployments"},
	}
	for _, tc := range byType {
		b.Groups = append(b.Groups, Group{
			Name: tc.AppType,
			Values: map[string]float64{
				"avg_dev_days": tc.AvgDevDays,
				"deployments":  float64(tc.Deployments),
			},
		})
	}
	return []Breakdown{b}
}

func summarizeApps(rows []dataset.Row, rng DateRange) (*Card, error) {
	var total float64
	for _, m := range AppsMonthlySaved(rows, rng) {
		total += m.TotalSaved
	}
	return &Card{
		KPI:       "apps",
		Label:     "Apps – Total Saved",
		Value:     total,
		Unit:      "hours",
		Formatted: fmt.Sprintf("%.1f hours", total),
		Help:      "Sum of (time_before - time_after) * frequency across apps in range",
	}, nil
}

func trendApps(rows []dataset.Row, rng DateRange) (*Series, error) {
	monthly := AppsMonthlySaved(rows, rng)
	series := &Series{KPI: "apps", Columns: []string{"total_saved"}}
	for _, m := range monthly {
		series.Points = append(series.Points, Point{
			Period: m.Month,
			Values: map[string]float64{"total_saved": m.TotalSaved},
		})
	}
	return series, nil
}
