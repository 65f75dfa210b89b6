package kpi

import (
	"fmt"
	"sort"

	"github.com/jonathan/kpi-dashboard/internal/dataset"
)

// MentoringMonthly is one month of mentoring effort and payoff.
type MentoringMonthly struct {
	Month        string  `json:"month"`
	MentorHrs    float64 `json:"mentor_hrs"`
	TeamSavedHrs float64 `json:"team_saved_hrs"`
	AvgROI       float64 `json:"avg_roi"`
}

// GroupImpact is mentoring effort grouped by department or mentoring type.
type GroupImpact struct {
	Group        string  `json:"group"`
	MentorHrs    float64 `json:"mentor_hrs"`
	TeamSavedHrs float64 `json:"team_saved_hrs"`
	ROI          float64 `json:"roi"`
}

// MentoringMonthlyStats aggregates mentor hours, team hours saved, and the
// average per-session ROI by month.
func MentoringMonthlyStats(rows []dataset.Row, rng DateRange) []MentoringMonthly {
	type accum struct {
		mentor, saved float64
		roiSum        float64
		roiCount      float64
	}
	accums := make(map[string]*accum)

	for _, row := range rows {
		date, ok := rowDate(row, "date")
		if !ok || !rng.Contains(date) {
			continue
		}
		mentor, ok1 := num(row, "mentor_hrs")
		saved, ok2 := num(row, "team_time_saved_hrs")
		if !ok1 || !ok2 {
			continue
		}
		month := date.Format("2006-01")
		acc := accums[month]
		if acc == nil {
			acc = &accum{}
			accums[month] = acc
		}
		acc.mentor += mentor
		acc.saved += saved
		if mentor > 0 {
			acc.roiSum += saved / mentor
			acc.roiCount++
		}
	}

	out := make([]MentoringMonthly, 0, len(accums))
	for _, month := range sortedKeys(accums) {
		acc := accums[month]
		m := MentoringMonthly{Month: month, MentorHrs: acc.mentor, TeamSavedHrs: acc.saved}
		if acc.roiCount > 0 {
			m.AvgROI = acc.roiSum / acc.roiCount
		}
		out = append(out, m)
	}
	return out
}

// MentoringRangeROI computes ROI over the whole range: total team hours saved
// divided by total mentor hours, 0 when no mentor hours were logged.
func MentoringRangeROI(rows []dataset.Row, rng DateRange) float64 {
	var mentor, saved float64
	for _, row := range rows {
		date, ok := rowDate(row, "date")
		if !ok || !rng.Contains(date) {
			continue
		}
		if v, ok := num(row, "mentor_hrs"); ok {
			mentor += v
		}
		if v, ok := num(row, "team_time_saved_hrs"); ok {
			saved += v
		}
	}
	if mentor <= 0 {
		return 0
	}
	return saved / mentor
}

// MentoringBy groups mentoring impact by the given column ("dept" or
// "mentoring_type"), sorted by ROI descending.
func MentoringBy(rows []dataset.Row, rng DateRange, column string) []GroupImpact {
	type accum struct{ mentor, saved float64 }
	accums := make(map[string]*accum)

	for _, row := range rows {
		date, ok := rowDate(row, "date")
		if !ok || !rng.Contains(date) {
			continue
		}
		group := row.Get(column)
		if group == "" {
			continue
		}
		acc := accums[group]
		if acc == nil {
			acc = &accum{}
			accums[group] = acc
		}
		if v, ok := num(row, "mentor_hrs"); ok {
			acc.mentor += v
		}
		if v, ok := num(row, "team_time_saved_hrs"); ok {
			acc.saved += v
		}
	}

	out := make([]GroupImpact, 0, len(accums))
	for group, acc := range accums {
		g := GroupImpact{Group: group, MentorHrs: acc.mentor, TeamSavedHrs: acc.saved}
		if acc.mentor > 0 {
			g.ROI = acc.saved / acc.mentor
		}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ROI != out[j].ROI {
			return out[i].ROI > out[j].ROI
		}
		return out[i].Group < out[j].Group
	})
	return out
}

func breakdownMentoring(rows []dataset.Row, rng DateRange) []Breakdown {
	out := make([]Breakdown, 0, 2)
	for _, dim := range []string{"dept", "mentoring_type"} {
		b := Breakdown{
			KPI:       "mentoring",
			Dimension: dim,
			Columns:   []string{"mentor_hrs", "team_saved_hrs", "roi"},
		}
		for _, g := range MentoringBy(rows, rng, dim) {
			b.Groups = append(b.Groups, Group{
				Name: g.Group,
				Values: map[string]float64{
					"mentor_hrs":     g.MentorHrs,
					"team_saved_hrs": g.TeamSavedHrs,
					"roi":            g.ROI,
				},
			})
		}
		out = append(out, b)
	}
	return out
}

func summarizeMentoring(rows []dataset.Row, rng DateRange) (*Card, error) {
	roi := MentoringRangeROI(rows, rng)
	return &Card{
		KPI:       "mentoring",
		Label:     "Mentoring ROI",
		Value:     roi,
		Unit:      "ratio",
		Formatted: fmt.Sprintf("%.2f ratio", roi),
		Help:      "Team hours saved per mentor hour in range",
	}, nil
}

func trendMentoring(rows []dataset.Row, rng DateRange) (*Series, error) {
	series := &Series{
		KPI:     "mentoring",
		Columns: []string{"mentor_hrs", "team_saved_hrs", "avg_roi"},
	}
	for _, m := range MentoringMonthlyStats(rows, rng) {
		series.Points = append(series.Points, Point{
			Period: m.Month,
			Values: map[string]float64{
				"mentor_hrs":     m.MentorHrs,
				"team_saved_hrs": m.TeamSavedHrs,
				"avg_roi":        m.AvgROI,
			},
		})
	}
	return series, nil
}
