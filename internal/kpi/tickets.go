package kpi

import (
	"fmt"
	"sort"

	"github.com/jonathan/kpi-dashboard/internal/dataset"
)

// TypeCount is a per-type tally of closed issues.
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// CountClosed counts rows whose dateField falls inside the range.
func CountClosed(rows []dataset.Row, rng DateRange, dateField string) int {
	count := 0
	for _, row := range rows {
		if date, ok := rowDate(row, dateField); ok && rng.Contains(date) {
			count++
		}
	}
	return count
}

// IssuesByType tallies closed issues per type, sorted by count descending.
func IssuesByType(rows []dataset.Row, rng DateRange) []TypeCount {
	counts := make(map[string]int)
	for _, row := range rows {
		date, ok := rowDate(row, "date_closed")
		if !ok || !rng.Contains(date) {
			continue
		}
		if t := row.Get("type"); t != "" {
			counts[t]++
		}
	}

	out := make([]TypeCount, 0, len(counts))
	for t, c := range counts {
		out = append(out, TypeCount{Type: t, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Type < out[j].Type
	})
	return out
}

// monthlyClosedCounts buckets closed rows by month for trend output.
func monthlyClosedCounts(rows []dataset.Row, rng DateRange, dateField string) map[string]float64 {
	counts := make(map[string]float64)
	for _, row := range rows {
		date, ok := rowDate(row, dateField)
		if !ok || !rng.Contains(date) {
			continue
		}
		counts[date.Format("2006-01")]++
	}
	return counts
}

func summarizeTickets(rows []dataset.Row, rng DateRange) (*Card, error) {
	n := CountClosed(rows, rng, "date_closed")
	return &Card{
		KPI:       "tickets",
		Label:     "Tickets Resolved",
		Value:     float64(n),
		Unit:      "count",
		Formatted: fmt.Sprintf("%d", n),
	}, nil
}

func trendTickets(rows []dataset.Row, rng DateRange) (*Series, error) {
	return countSeries("tickets", monthlyClosedCounts(rows, rng, "date_closed")), nil
}

func breakdownIssues(rows []dataset.Row, rng DateRange) []Breakdown {
	b := Breakdown{
		KPI:       "issues",
		Dimension: "type",
		Columns:   []string{"count"},
	}
	for _, tc := range IssuesByType(rows, rng) {
		b.Groups = append(b.Groups, Group{
			Name:   tc.Type,
			Values: map[string]float64{"count": float64(tc.Count)},
		})
	}
	return []Breakdown{b}
}

func summarizeIssues(rows []dataset.Row, rng DateRange) (*Card, error) {
	n := CountClosed(rows, rng, "date_closed")
	return &Card{
		KPI:       "issues",
		Label:     "Issues & Bugs Resolved",
		Value:     float64(n),
		Unit:      "count",
		Formatted: fmt.Sprintf("%d", n),
	}, nil
}

func trendIssues(rows []dataset.Row, rng DateRange) (*Series, error) {
	return countSeries("issues", monthlyClosedCounts(rows, rng, "date_closed")), nil
}

func countSeries(kpiKey string, counts map[string]float64) *Series {
	series := &Series{KPI: kpiKey, Columns: []string{"count"}}
	for _, month := range sortedKeys(counts) {
		series.Points = append(series.Points, Point{
			Period: month,
			Values: map[string]float64{"count": counts[month]},
		})
	}
	return series
}
