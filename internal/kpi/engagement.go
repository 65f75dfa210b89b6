package kpi

import (
	"fmt"
	"sort"

	"github.com/jonathan/kpi-dashboard/internal/dataset"
)

// EngagementMonthly is one month of AI adoption across departments.
type EngagementMonthly struct {
	Month       string  `json:"month"`
	ActiveUsers float64 `json:"active_users"`
	AICalls     float64 `json:"ai_calls"`
	AvgSurvey   float64 `json:"avg_survey"`
}

// DeptEngagement is AI adoption grouped by department.
type DeptEngagement struct {
	Dept        string  `json:"dept"`
	ActiveUsers float64 `json:"active_users"`
	AICalls     float64 `json:"ai_calls"`
	AvgSurvey   float64 `json:"avg_survey"`
}

// EngagementMonthlyStats sums usage and averages survey scores per month.
func EngagementMonthlyStats(rows []dataset.Row, rng DateRange) []EngagementMonthly {
	type accum struct {
		users, calls float64
		surveySum    float64
		surveyCount  float64
	}
	accums := make(map[string]*accum)

	for _, row := range rows {
		month, ok := rowMonth(row, "month")
		if !ok || !rng.ContainsMonth(month) {
			continue
		}
		acc := accums[month]
		if acc == nil {
			acc = &accum{}
			accums[month] = acc
		}
		if v, ok := num(row, "active_users"); ok {
			acc.users += v
		}
		if v, ok := num(row, "ai_calls"); ok {
			acc.calls += v
		}
		if v, ok := num(row, "survey_score"); ok {
			acc.surveySum += v
			acc.surveyCount++
		}
	}

	out := make([]EngagementMonthly, 0, len(accums))
	for _, month := range sortedKeys(accums) {
		acc := accums[month]
		m := EngagementMonthly{Month: month, ActiveUsers: acc.users, AICalls: acc.calls}
		if acc.surveyCount > 0 {
			m.AvgSurvey = acc.surveySum / acc.surveyCount
		}
		out = append(out, m)
	}
	return out
}

// EngagementByDept groups AI adoption by department, sorted by calls descending.
func EngagementByDept(rows []dataset.Row, rng DateRange) []DeptEngagement {
	type accum struct {
		users, calls float64
		surveySum    float64
		surveyCount  float64
	}
	accums := make(map[string]*accum)

	for _, row := range rows {
		month, ok := rowMonth(row, "month")
		if !ok || !rng.ContainsMonth(month) {
			continue
		}
		dept := row.Get("dept")
		if dept == "" {
			continue
		}
		acc := accums[dept]
		if acc == nil {
			acc = &accum{}
			accums[dept] = acc
		}
		if v, ok := num(row, "active_users"); ok {
			acc.users += v
		}
		if v, ok := num(row, "ai_calls"); ok {
			acc.calls += v
		}
		if v, ok := num(row, "survey_score"); ok {
			acc.surveySum += v
			acc.surveyCount++
		}
	}

	out := make([]DeptEngagement, 0, len(accums))
	for dept, acc := range accums {
		d := DeptEngagement{Dept: dept, ActiveUsers: acc.users, AICalls: acc.calls}
		if acc.surveyCount > 0 {
			d.AvgSurvey = acc.surveySum / acc.surveyCount
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AICalls != out[j].AICalls {
			return out[i].AICalls > out[j].AICalls
		}
		return out[i].Dept < out[j].Dept
	})
	return out
}

func breakdownEngagement(rows []dataset.Row, rng DateRange) []Breakdown {
	b := Breakdown{
		KPI:       "ai_engagement",
		Dimension: "dept",
		Columns:   []string{"active_users", "ai_calls", "avg_survey"},
	}
	for _, d := range EngagementByDept(rows, rng) {
		b.Groups = append(b.Groups, Group{
			Name: d.Dept,
			Values: map[string]float64{
				"active_users": d.ActiveUsers,
				"ai_calls":     d.AICalls,
				"avg_survey":   d.AvgSurvey,
			},
		})
	}
	return []Breakdown{b}
}

func summarizeEngagement(rows []dataset.Row, rng DateRange) (*Card, error) {
	var calls float64
	for _, m := range EngagementMonthlyStats(rows, rng) {
		calls += m.AICalls
	}
	return &Card{
		KPI:       "ai_engagement",
		Label:     "Total AI Calls",
		Value:     calls,
		Unit:      "events",
		Formatted: fmt.Sprintf("%.0f events", calls),
		Help:      "AI calls across departments in range",
	}, nil
}

func trendEngagement(rows []dataset.Row, rng DateRange) (*Series, error) {
	series := &Series{
		KPI:     "ai_engagement",
		Columns: []string{"active_users", "ai_calls", "avg_survey"},
	}
	for _, m := range EngagementMonthlyStats(rows, rng) {
		series.Points = append(series.Points, Point{
			Period: m.Month,
			Values: map[string]float64{
				"active_users": m.ActiveUsers,
				"ai_calls":     m.AICalls,
				"avg_survey":   m.AvgSurvey,
			},
		})
	}
	return series, nil
}
