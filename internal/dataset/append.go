package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/jonathan/kpi-dashboard/internal/types"
)

// WeekLabel derives the ISO-week label (e.g. "2024-W05") recorded in the
// time_mgmt "kw" column from its week_start date.
func WeekLabel(weekStart string) (string, error) {
	d, err := types.ParseCalendarDate(weekStart)
	if err != nil {
		return "", err
	}
	year, week := d.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week), nil
}

// PrepareEntry validates one entry against the KPI's schema and fills derived
// columns. It rejects columns outside the schema, malformed date or month
// values, and values outside the configured vocabulary for constrained
// columns (vocab maps column name to its allowed values; nil means every
// column is free-form). The time_mgmt "kw" label is always recomputed from
// week_start.
func PrepareEntry(key string, fields map[string]string, vocab map[string][]string) (map[string]string, error) {
	columns := Columns(key)
	if columns == nil {
		return nil, fmt.Errorf("unknown KPI %q", key)
	}

	allowed := make(map[string]bool, len(columns))
	for _, c := range columns {
		allowed[c] = true
	}

	prepared := make(map[string]string, len(columns))
	for name, value := range fields {
		if !allowed[name] {
			return nil, fmt.Errorf("column %q is not part of the %s schema", name, key)
		}
		if value == "" {
			continue
		}
		switch {
		case IsDateColumn(name):
			if _, err := types.ParseCalendarDate(value); err != nil {
				return nil, fmt.Errorf("column %q: %w", name, err)
			}
		case IsMonthColumn(name):
			if _, err := time.Parse(types.MonthLayout, value); err != nil {
				return nil, fmt.Errorf("column %q: invalid month %q (want YYYY-MM)", name, value)
			}
		}
		if values := vocab[name]; len(values) > 0 && !slices.Contains(values, value) {
			return nil, fmt.Errorf("column %q: %q is not in the configured vocabulary %v", name, value, values)
		}
		prepared[name] = value
	}

	if key == "time_mgmt" {
		ws := prepared["week_start"]
		if ws == "" {
			return nil, fmt.Errorf("time_mgmt entries require week_start")
		}
		kw, err := WeekLabel(ws)
		if err != nil {
			return nil, fmt.Errorf("column \"week_start\": %w", err)
		}
		prepared["kw"] = kw
	}

	return prepared, nil
}

// AppendRow appends one prepared entry to a KPI CSV file, creating the file
// with its canonical header when it does not exist yet. Columns missing from
// the entry are written empty.
func AppendRow(path string, columns []string, fields map[string]string) error {
	_, statErr := os.Stat(path)
	writeHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s for append: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(columns); err != nil {
			return fmt.Errorf("failed to write header to %s: %w", path, err)
		}
	}

	record := make([]string, len(columns))
	for i, name := range columns {
		record[i] = fields[name]
	}
	if err := w.Write(record); err != nil {
		return fmt.Errorf("failed to append row to %s: %w", path, err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}
