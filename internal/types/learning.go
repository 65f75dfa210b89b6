// Package types provides type definitions for structured data used throughout the kpi-dashboard system.
package types

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical calendar-date layout used in CSV files and JSON exports.
const DateLayout = "2006-01-02"

// MonthLayout is the canonical month-key layout used by monthly aggregates.
const MonthLayout = "2006-01"

// CalendarDate is a calendar day without a time component.
// It marshals to and from the YYYY-MM-DD form used by the CSV files.
type CalendarDate struct {
	time.Time
}

// ParseCalendarDate parses a YYYY-MM-DD string into a CalendarDate.
func ParseCalendarDate(s string) (CalendarDate, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return CalendarDate{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return CalendarDate{Time: t}, nil
}

// String returns the date in YYYY-MM-DD form.
func (d CalendarDate) String() string {
	return d.Format(DateLayout)
}

// MonthKey returns the YYYY-MM month the date falls in.
func (d CalendarDate) MonthKey() string {
	return d.Format(MonthLayout)
}

// MarshalJSON encodes the date as a YYYY-MM-DD string.
func (d CalendarDate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a YYYY-MM-DD string.
func (d *CalendarDate) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseCalendarDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// LearningRecord is one logged learning event in its canonical, normalized shape.
// Optional metrics use pointers: nil means "not tracked", which downstream
// aggregation must distinguish from "tracked as zero".
type LearningRecord struct {
	Date                CalendarDate `json:"date"`
	CoreSkill           string       `json:"core_skill"`
	SkillsTechTags      []string     `json:"skills_tech_tags"`
	TimeSpentHrs        float64      `json:"time_spent_hrs"`
	AppliedHrs          *float64     `json:"applied_hrs,omitempty"`
	Applications        *int         `json:"applications,omitempty"`
	DeltaPerformancePct *float64     `json:"delta_performance_pct,omitempty"`
	TimeSavedHrs        *float64     `json:"time_saved_hrs,omitempty"`
	CostEUR             *float64     `json:"cost_eur,omitempty"`
	Notes               string       `json:"notes,omitempty"`
}

// HasTag reports whether the record carries the given technology tag.
func (r *LearningRecord) HasTag(tag string) bool {
	for _, t := range r.SkillsTechTags {
		if t == tag {
			return true
		}
	}
	return false
}
