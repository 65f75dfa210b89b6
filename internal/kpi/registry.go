package kpi

import (
	"fmt"
	"sort"

	"github.com/jonathan/kpi-dashboard/internal/dataset"
)

// Meta describes one KPI for the reference table and the API.
type Meta struct {
	Key         string `json:"key"`
	DisplayName string `json:"display_name"`
	Unit        string `json:"unit"`
	Description string `json:"description"`
	SourceCSV   string `json:"source_csv"`
	DateField   string `json:"date_field"`
}

// Card is the headline metric for a KPI over a date range.
type Card struct {
	KPI       string  `json:"kpi"`
	Label     string  `json:"label"`
	Value     float64 `json:"value"`
	Unit      string  `json:"unit"`
	Formatted string  `json:"formatted"`
	Help      string  `json:"help,omitempty"`
}

// Point is one period (month or week) of a trend series.
type Point struct {
	Period string             `json:"period"`
	Values map[string]float64 `json:"values"`
}

// Series is a per-period trend table for a KPI.
type Series struct {
	KPI     string   `json:"kpi"`
	Columns []string `json:"columns"`
	Points  []Point  `json:"points"`
}

// Group is one group (a department, an app type, ...) of a KPI breakdown.
type Group struct {
	Name   string             `json:"name"`
	Values map[string]float64 `json:"values"`
}

// Breakdown is a KPI's values grouped along one dimension over a date range.
type Breakdown struct {
	KPI       string   `json:"kpi"`
	Dimension string   `json:"dimension"`
	Columns   []string `json:"columns"`
	Groups    []Group  `json:"groups"`
}

// SummarizeFunc computes a KPI's headline card from its raw rows.
type SummarizeFunc func(rows []dataset.Row, rng DateRange) (*Card, error)

// TrendFunc computes a KPI's per-period trend from its raw rows.
type TrendFunc func(rows []dataset.Row, rng DateRange) (*Series, error)

// BreakdownFunc computes a KPI's grouped views from its raw rows.
type BreakdownFunc func(rows []dataset.Row, rng DateRange) []Breakdown

// Definition binds a KPI's metadata to its computations. Breakdowns is nil
// for KPIs without a grouped view.
type Definition struct {
	Meta       Meta
	Summarize  SummarizeFunc
	Trend      TrendFunc
	Breakdowns BreakdownFunc
}

// Registry holds every KPI the dashboard knows about, keyed by the basename of
// its backing CSV file.
var Registry = map[string]Definition{
	"apps": {
		Meta: Meta{
			Key:         "apps",
			DisplayName: "Apps – Time Saved & Dev Speed",
			Unit:        "hours",
			Description: "Total time saved by apps (hours) and average development speed per app type.",
			SourceCSV:   "apps.csv",
			DateField:   "month",
		},
		Summarize:  summarizeApps,
		Trend:      trendApps,
		Breakdowns: breakdownApps,
	},
	"data_collection": {
		Meta: Meta{
			Key:         "data_collection",
			DisplayName: "Information Gain & Speed",
			Unit:        "%",
			Description: "Weighted info gain (% fields up) and speed improvement (% time down). Time stored in seconds.",
			SourceCSV:   "data_collection.csv",
			DateField:   "month",
		},
		Summarize: summarizeCollection,
		Trend:     trendCollection,
	},
	"mentoring": {
		Meta: Meta{
			Key:         "mentoring",
			DisplayName: "Mentoring Impact (by Dept & Type)",
			Unit:        "ratio",
			Description: "Mentor hours, team hours saved, and ROI (saved / mentor) across departments and mentoring types.",
			SourceCSV:   "mentoring.csv",
			DateField:   "date",
		},
		Summarize:  summarizeMentoring,
		Trend:      trendMentoring,
		Breakdowns: breakdownMentoring,
	},
	"ai_engagement": {
		Meta: Meta{
			Key:         "ai_engagement",
			DisplayName: "AI Engagement (Dept Usage)",
			Unit:        "events",
			Description: "Active users, AI calls, and survey score by department.",
			SourceCSV:   "ai_engagement.csv",
			DateField:   "month",
		},
		Summarize:  summarizeEngagement,
		Trend:      trendEngagement,
		Breakdowns: breakdownEngagement,
	},
	"project_mgmt": {
		Meta: Meta{
			Key:         "project_mgmt",
			DisplayName: "Project Management (MVP Delivery)",
			Unit:        "count",
			Description: "Projects running, average MVP cycle (days), and on-time delivery rate.",
			SourceCSV:   "project_mgmt.csv",
			DateField:   "start_date",
		},
		Summarize: summarizeProjects,
		Trend:     trendProjects,
	},
	"tickets": {
		Meta: Meta{
			Key:         "tickets",
			DisplayName: "Tickets Resolved",
			Unit:        "count",
			Description: "Total number of resolved tickets in selected date range.",
			SourceCSV:   "tickets.csv",
			DateField:   "date_closed",
		},
		Summarize: summarizeTickets,
		Trend:     trendTickets,
	},
	"issues": {
		Meta: Meta{
			Key:         "issues",
			DisplayName: "Issues & Bugs Resolved",
			Unit:        "count",
			Description: "Total issues in range and per-type breakdown.",
			SourceCSV:   "issues.csv",
			DateField:   "date_closed",
		},
		Summarize:  summarizeIssues,
		Trend:      trendIssues,
		Breakdowns: breakdownIssues,
	},
	"learning": {
		Meta: Meta{
			Key:         "learning",
			DisplayName: "Learning – Efficiency & Impact",
			Unit:        "ratio",
			Description: "Applied/learning efficiency, performance delta, and time saved from normalized learning records.",
			SourceCSV:   "learning.csv",
			DateField:   "date",
		},
		Summarize: summarizeLearning,
		Trend:     trendLearning,
	},
	"time_mgmt": {
		Meta: Meta{
			Key:         "time_mgmt",
			DisplayName: "Time Management (Weekly Allocation)",
			Unit:        "hours",
			Description: "Weekly allocation of hours across Development, Debugging/Tickets, Mentoring, DevOps, Project Management, and Meetings.",
			SourceCSV:   "time_mgmt.csv",
			DateField:   "week_start",
		},
		Summarize: summarizeTimeMgmt,
		Trend:     trendTimeMgmt,
	},
}

// Get returns the definition for a KPI key.
func Get(key string) (Definition, error) {
	def, ok := Registry[key]
	if !ok {
		return Definition{}, fmt.Errorf("unknown KPI %q (available: %v)", key, Keys())
	}
	return def, nil
}

// Keys returns registered KPI keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(Registry))
	for k := range Registry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// List returns meta for every KPI, sorted by key.
func List() []Meta {
	metas := make([]Meta, 0, len(Registry))
	for _, k := range Keys() {
		metas = append(metas, Registry[k].Meta)
	}
	return metas
}
