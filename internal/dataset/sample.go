package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// sampleRows holds a couple of representative rows per KPI, in schema column
// order. Useful for first-run setup and for exercising the dashboard end to
// end without real data.
var sampleRows = map[string][][]string{
	"apps": {
		{"1", "AutoReport", "simple", "2025-06-01", "2025-06-05", "2025-06", "10", "2", "20"},
		{"2", "InvoiceGen", "ai_full", "2025-06-10", "2025-06-18", "2025-06", "8", "1", "10"},
	},
	"data_collection": {
		{"1", "SurveyCollector", "2025-06", "12", "18", "900", "300"},
		{"2", "LogIngest", "2025-06", "20", "26", "1800", "600"},
	},
	"mentoring": {
		{"1", "2025-06-15", "IT", "prompt_eng", "2", "5"},
		{"2", "2025-06-20", "QA", "nocode_guidance", "3", "10"},
	},
	"ai_engagement": {
		{"2025-06", "IT", "12", "450", "4.2"},
		{"2025-06", "Sales", "8", "210", "3.8"},
	},
	"project_mgmt": {
		{"Inventory MVP", "Logistics", "2025-05-01", "2025-06-15", "2025-06-10"},
		{"QC Tracker", "QC-prod", "2025-06-01", "2025-07-15", ""},
	},
	"tickets": {
		{"101", "2025-06-10"},
		{"102", "2025-06-12"},
	},
	"issues": {
		{"201", "2025-06-05", "PR"},
		{"202", "2025-06-08", "bug"},
	},
	"learning": {
		{"2025-06-01", "Cloud", "aws,terraform", "10", "4", "2", "12.5", "1.5", "0", "IaC lab"},
		{"2025-06-15", "Data", "duckdb,sql", "8", "6", "4", "-3.5", "0.5", "49.99", ""},
	},
	"time_mgmt": {
		{"2025-06-02", "2025-W23", "18", "6", "3", "4", "5", "4"},
		{"2025-06-09", "2025-W24", "20", "4", "2", "3", "6", "5"},
	},
}

// WriteSampleData writes one sample CSV per KPI into dir, creating the
// directory when needed. Existing files are not overwritten.
func WriteSampleData(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}

	for _, key := range Keys() {
		path := filepath.Join(dir, key+".csv")
		if _, err := os.Stat(path); err == nil {
			continue // never clobber real data
		}
		if err := writeSampleFile(path, Schemas[key], sampleRows[key]); err != nil {
			return err
		}
	}
	return nil
}

func writeSampleFile(path string, columns []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return fmt.Errorf("failed to write header to %s: %w", path, err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write sample row to %s: %w", path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}
