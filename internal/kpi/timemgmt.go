package kpi

import (
	"fmt"
	"sort"

	"github.com/jonathan/kpi-dashboard/internal/dataset"
)

// TimeCategories are the weekly allocation buckets, in display order.
var TimeCategories = []string{
	"development",
	"debugging_tickets",
	"mentoring",
	"devops",
	"project_management",
	"meetings",
}

// WeeklyAllocation is one logged week of hours split across categories.
type WeeklyAllocation struct {
	WeekStart  string             `json:"week_start"`
	KW         string             `json:"kw"`
	TotalHours float64            `json:"total_hours"`
	Hours      map[string]float64 `json:"hours"`
	Pct        map[string]float64 `json:"pct"`
}

// WeeklyAllocations computes per-week totals and percentage splits. Weeks with
// zero total hours keep an empty percentage map rather than dividing by zero.
func WeeklyAllocations(rows []dataset.Row, rng DateRange) []WeeklyAllocation {
	var out []WeeklyAllocation
	for _, row := range rows {
		weekStart, ok := rowDate(row, "week_start")
		if !ok || !rng.Contains(weekStart) {
			continue
		}

		w := WeeklyAllocation{
			WeekStart: weekStart.Format("2006-01-02"),
			KW:        row.Get("kw"),
			Hours:     make(map[string]float64, len(TimeCategories)),
			Pct:       make(map[string]float64, len(TimeCategories)),
		}
		for _, cat := range TimeCategories {
			if v, ok := num(row, cat); ok {
				w.Hours[cat] = v
				w.TotalHours += v
			}
		}
		if w.TotalHours > 0 {
			for cat, v := range w.Hours {
				w.Pct[cat] = v / w.TotalHours * 100
			}
		}
		out = append(out, w)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].WeekStart < out[j].WeekStart })
	return out
}

// DevFocus averages the development share (%) over weeks in the range.
func DevFocus(rows []dataset.Row, rng DateRange) float64 {
	var sum, n float64
	for _, w := range WeeklyAllocations(rows, rng) {
		if w.TotalHours > 0 {
			sum += w.Pct["development"]
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / n
}

func summarizeTimeMgmt(rows []dataset.Row, rng DateRange) (*Card, error) {
	focus := DevFocus(rows, rng)
	return &Card{
		KPI:       "time_mgmt",
		Label:     "Dev Focus (avg)",
		Value:     focus,
		Unit:      "%",
		Formatted: fmt.Sprintf("%.1f %%", focus),
		Help:      "Average share of weekly hours spent on Development in range",
	}, nil
}

func trendTimeMgmt(rows []dataset.Row, rng DateRange) (*Series, error) {
	columns := append([]string{"total_hours"}, TimeCategories...)
	series := &Series{KPI: "time_mgmt", Columns: columns}

	for _, w := range WeeklyAllocations(rows, rng) {
		values := map[string]float64{"total_hours": w.TotalHours}
		for _, cat := range TimeCategories {
			values[cat] = w.Hours[cat]
		}
		series.Points = append(series.Points, Point{Period: w.WeekStart, Values: values})
	}
	return series, nil
}
