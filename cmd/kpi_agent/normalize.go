// Package main implements the kpi_agent CLI tool for the career KPI dashboard.
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jonathan/kpi-dashboard/internal/dataset"
	"github.com/jonathan/kpi-dashboard/internal/observability"
	"github.com/jonathan/kpi-dashboard/internal/records"
	"github.com/jonathan/kpi-dashboard/internal/types"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Normalize a learning CSV into its canonical schema",
	Long:  "Reads a learning CSV (legacy or current schema), migrates legacy columns, validates every row, and writes the clean records. Rows that fail validation are reported per line and never abort the batch.",
	RunE:  runNormalize,
}

var (
	normalizeInput  string
	normalizeOutput string
	normalizeFormat string
	normalizeConfig string
)

func init() {
	normalizeCmd.Flags().StringVarP(&normalizeInput, "in", "i", "", "Path to learning CSV file (required)")
	normalizeCmd.Flags().StringVarP(&normalizeOutput, "out", "o", "", "Path to output file (optional; report only when omitted)")
	normalizeCmd.Flags().StringVar(&normalizeFormat, "format", "csv", "Output format: csv or json")
	normalizeCmd.Flags().StringVar(&normalizeConfig, "config", "", "Path to JSON config file (optional)")

	if err := normalizeCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(_ *cobra.Command, _ []string) error {
	if normalizeFormat != "csv" && normalizeFormat != "json" {
		return fmt.Errorf("invalid format %q (want csv or json)", normalizeFormat)
	}

	cfg, err := loadAppConfig(normalizeConfig)
	if err != nil {
		return err
	}

	rows, err := dataset.ReadFile(normalizeInput)
	if err != nil {
		return err
	}

	normalizer := records.NewNormalizer(cfg.CoreSkills)
	result := normalizer.NormalizeAll(rows)

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintBatchResult(result)

	if normalizeOutput == "" {
		return nil
	}

	if dir := filepath.Dir(normalizeOutput); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	switch normalizeFormat {
	case "json":
		data, err := json.MarshalIndent(result.Records, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal records to JSON: %w", err)
		}
		if err := os.WriteFile(normalizeOutput, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", normalizeOutput, err)
		}
	case "csv":
		if err := writeCanonicalCSV(normalizeOutput, result.Records); err != nil {
			return err
		}
	}

	fmt.Fprintf(os.Stdout, "Wrote %d records to %s\n", len(result.Records), normalizeOutput)
	return nil
}

// writeCanonicalCSV writes normalized records in the canonical learning
// schema. Untracked optional metrics stay empty cells.
func writeCanonicalCSV(path string, recs []types.LearningRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	columns := dataset.Columns("learning")
	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return fmt.Errorf("failed to write header to %s: %w", path, err)
	}
	for i := range recs {
		fields := recordFields(&recs[i])
		row := make([]string, len(columns))
		for j, name := range columns {
			row[j] = fields[name]
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row to %s: %w", path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}

// recordFields maps a normalized record back to its CSV column values.
func recordFields(rec *types.LearningRecord) map[string]string {
	fields := map[string]string{
		"date":             rec.Date.String(),
		"core_skill":       rec.CoreSkill,
		"skills_tech_tags": records.JoinTags(rec.SkillsTechTags),
		"time_spent_hrs":   formatFloat(rec.TimeSpentHrs),
		"notes":            rec.Notes,
	}
	if rec.AppliedHrs != nil {
		fields["applied_hrs"] = formatFloat(*rec.AppliedHrs)
	}
	if rec.Applications != nil {
		fields["applications"] = strconv.Itoa(*rec.Applications)
	}
	if rec.DeltaPerformancePct != nil {
		fields["delta_performance_pct"] = formatFloat(*rec.DeltaPerformancePct)
	}
	if rec.TimeSavedHrs != nil {
		fields["time_saved_hrs"] = formatFloat(*rec.TimeSavedHrs)
	}
	if rec.CostEUR != nil {
		fields["cost_eur"] = formatFloat(*rec.CostEUR)
	}
	return fields
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
