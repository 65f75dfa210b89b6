// Package main implements the kpi_agent CLI tool for the career KPI dashboard.
package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jonathan/kpi-dashboard/internal/dataset"
	"github.com/jonathan/kpi-dashboard/internal/kpi"
	"github.com/jonathan/kpi-dashboard/internal/observability"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print KPI cards and trends for the data directory",
	Long:  "Discovers KPI CSV files in the data directory and prints the headline card (and optionally the per-period trend and grouped breakdowns) of each KPI over a date range.",
	RunE:  runReport,
}

var (
	reportDataDir string
	reportConfig  string
	reportKPI     string
	reportStart   string
	reportEnd     string
	reportTrend   bool
	reportBreak   bool
	reportList    bool
)

func init() {
	reportCmd.Flags().StringVarP(&reportDataDir, "data-dir", "d", "", "Directory holding the KPI CSV files (default from config)")
	reportCmd.Flags().StringVar(&reportConfig, "config", "", "Path to JSON config file (optional)")
	reportCmd.Flags().StringVarP(&reportKPI, "kpi", "k", "", "Report a single KPI key (default: all discovered)")
	reportCmd.Flags().StringVar(&reportStart, "start", "", "Range start (YYYY-MM-DD or YYYY-MM)")
	reportCmd.Flags().StringVar(&reportEnd, "end", "", "Range end (YYYY-MM-DD or YYYY-MM)")
	reportCmd.Flags().BoolVar(&reportTrend, "trend", false, "Also print the per-period trend table")
	reportCmd.Flags().BoolVar(&reportBreak, "breakdown", false, "Also print grouped views (by department, app type, issue type)")
	reportCmd.Flags().BoolVar(&reportList, "list", false, "Print the KPI reference table and exit")

	rootCmd.AddCommand(reportCmd)
}

func runReport(_ *cobra.Command, _ []string) error {
	printer := observability.NewPrinter(os.Stdout)

	if reportList {
		printer.PrintMetaTable(kpi.List())
		return nil
	}

	cfg, err := loadAppConfig(reportConfig)
	if err != nil {
		return err
	}
	if reportDataDir != "" {
		cfg.DataDir = reportDataDir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	rng, err := kpi.ParseRange(reportStart, reportEnd)
	if err != nil {
		return err
	}

	loaded, err := dataset.LoadAll(context.Background(), cfg.DataDir)
	if err != nil {
		return err
	}
	if len(loaded) == 0 {
		return fmt.Errorf("no KPI CSV files found in %s (run 'kpi_agent sample-data' for a starter set)", cfg.DataDir)
	}

	keys := make([]string, 0, len(loaded))
	for key := range loaded {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	if reportKPI != "" {
		if _, ok := loaded[reportKPI]; !ok {
			return fmt.Errorf("no data file for KPI %q in %s", reportKPI, cfg.DataDir)
		}
		keys = []string{reportKPI}
	}

	for _, key := range keys {
		def, err := kpi.Get(key)
		if err != nil {
			return err
		}

		card, err := def.Summarize(loaded[key], rng)
		if err != nil {
			return fmt.Errorf("failed to summarize %s: %w", key, err)
		}
		printer.PrintCard(card)

		if reportTrend {
			series, err := def.Trend(loaded[key], rng)
			if err != nil {
				return fmt.Errorf("failed to compute trend for %s: %w", key, err)
			}
			printer.PrintSeries(series)
		}

		if reportBreak && def.Breakdowns != nil {
			for _, b := range def.Breakdowns(loaded[key], rng) {
				printer.PrintBreakdown(&b)
			}
		}
	}

	return nil
}
