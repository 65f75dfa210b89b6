// Package kpi computes derived career metrics from the raw KPI data files.
package kpi

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/jonathan/kpi-dashboard/internal/dataset"
	"github.com/jonathan/kpi-dashboard/internal/types"
)

// DateRange is an inclusive [Start, End] filter. A zero bound is open.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseRange builds a DateRange from optional YYYY-MM-DD (or YYYY-MM) bounds.
func ParseRange(start, end string) (DateRange, error) {
	var rng DateRange
	if start != "" {
		t, err := parseDay(start)
		if err != nil {
			return rng, fmt.Errorf("invalid start %q: %w", start, err)
		}
		rng.Start = t
	}
	if end != "" {
		t, err := parseDay(end)
		if err != nil {
			return rng, fmt.Errorf("invalid end %q: %w", end, err)
		}
		// A month-precision end bound covers the whole month.
		if len(end) == len(types.MonthLayout) {
			t = t.AddDate(0, 1, -1)
		}
		rng.End = t
	}
	if !rng.Start.IsZero() && !rng.End.IsZero() && rng.End.Before(rng.Start) {
		return rng, fmt.Errorf("range end %s precedes start %s", end, start)
	}
	return rng, nil
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && t.After(r.End) {
		return false
	}
	return true
}

// ContainsMonth reports whether any day of the YYYY-MM month falls inside the
// range. Monthly rows are kept when the month overlaps the range at all.
func (r DateRange) ContainsMonth(month string) bool {
	first, err := time.Parse(types.MonthLayout, month)
	if err != nil {
		return false
	}
	last := first.AddDate(0, 1, -1)
	if !r.Start.IsZero() && last.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && first.After(r.End) {
		return false
	}
	return true
}

func parseDay(s string) (time.Time, error) {
	if t, err := time.Parse(types.DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(types.MonthLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// rowDate parses a row's date column. The bool is false for missing or
// unparseable values, which aggregations silently skip (bad cells taint one
// row, never the whole file).
func rowDate(row dataset.Row, field string) (time.Time, bool) {
	raw := row.Get(field)
	if raw == "" {
		return time.Time{}, false
	}
	t, err := parseDay(raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// rowMonth returns the YYYY-MM month key a row belongs to, derived from the
// given date or month column.
func rowMonth(row dataset.Row, field string) (string, bool) {
	t, ok := rowDate(row, field)
	if !ok {
		return "", false
	}
	return t.Format(types.MonthLayout), true
}

// num parses a numeric cell. Missing and malformed cells report false.
func num(row dataset.Row, key string) (float64, bool) {
	raw := row.Get(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// sortedKeys returns map keys in ascending order, for deterministic output.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
