package dataset

import "sort"

// Schemas maps each KPI key to the canonical column order of its CSV file.
// A data file is recognized by its basename: <key>.csv in the data directory.
var Schemas = map[string][]string{
	// Apps: merged apps + dev speed
	"apps": {
		"app_id",
		"app_name",
		"app_type",
		"idea_date",
		"deploy_date",
		"month",
		"time_before_hrs",
		"time_after_hrs",
		"frequency_per_month",
	},
	// Data Collection: info gain + speed (time in seconds)
	"data_collection": {
		"proc_id",
		"proc_name",
		"month",
		"fields_before",
		"fields_after",
		"time_before_sec",
		"time_after_sec",
	},
	// Mentoring: dept + mentoring type
	"mentoring": {
		"session_id",
		"date",
		"dept",
		"mentoring_type",
		"mentor_hrs",
		"team_time_saved_hrs",
	},
	// AI Engagement: dept usage
	"ai_engagement": {"month", "dept", "active_users", "ai_calls", "survey_score"},
	// Project Mgmt: MVP timelines
	"project_mgmt": {
		"project_name",
		"dept",
		"start_date",
		"mvp_target_date",
		"mvp_actual_date",
	},
	// Tickets & Issues
	"tickets": {"ticket_id", "date_closed"},
	"issues":  {"issue_id", "date_closed", "type"},
	// Learning: current (revamped) schema; legacy files using learning_hrs
	// are migrated by the records normalizer.
	"learning": {
		"date",
		"core_skill",
		"skills_tech_tags",
		"time_spent_hrs",
		"applied_hrs",
		"applications",
		"delta_performance_pct",
		"time_saved_hrs",
		"cost_eur",
		"notes",
	},
	// Time Management: weekly allocation
	"time_mgmt": {
		"week_start",
		"kw",
		"development",
		"debugging_tickets",
		"mentoring",
		"devops",
		"project_management",
		"meetings",
	},
}

// dateColumns are the columns holding full calendar dates (YYYY-MM-DD).
var dateColumns = map[string]bool{
	"date":            true,
	"date_closed":     true,
	"idea_date":       true,
	"deploy_date":     true,
	"start_date":      true,
	"mvp_target_date": true,
	"mvp_actual_date": true,
	"week_start":      true,
}

// IsDateColumn reports whether the column holds a YYYY-MM-DD calendar date.
func IsDateColumn(name string) bool {
	return dateColumns[name]
}

// IsMonthColumn reports whether the column holds a YYYY-MM month key.
func IsMonthColumn(name string) bool {
	return name == "month"
}

// Keys returns the registered KPI keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(Schemas))
	for k := range Schemas {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Columns returns the canonical column order for a KPI key, or nil when the
// key is not registered.
func Columns(key string) []string {
	return Schemas[key]
}
