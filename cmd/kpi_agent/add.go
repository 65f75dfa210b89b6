// Package main implements the kpi_agent CLI tool for the career KPI dashboard.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/kpi-dashboard/internal/dataset"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Append one entry to a KPI data file",
	Long:  "Appends a single entry to a KPI CSV file, validating the columns against the KPI's schema and the configured vocabulary (departments, mentoring types, app types), and deriving computed columns (the time_mgmt week label). The file is created with its header when missing.",
	RunE:  runAdd,
}

var (
	addKPI     string
	addDataDir string
	addConfig  string
	addFields  map[string]string
)

func init() {
	addCmd.Flags().StringVarP(&addKPI, "kpi", "k", "", "KPI key, e.g. tickets or learning (required)")
	addCmd.Flags().StringVarP(&addDataDir, "data-dir", "d", "", "Directory holding the KPI CSV files (default from config)")
	addCmd.Flags().StringVar(&addConfig, "config", "", "Path to JSON config file (optional)")
	addCmd.Flags().StringToStringVarP(&addFields, "field", "f", nil, "Column value as name=value (repeatable)")

	if err := addCmd.MarkFlagRequired("kpi"); err != nil {
		panic(fmt.Sprintf("failed to mark kpi flag as required: %v", err))
	}
	if err := addCmd.MarkFlagRequired("field"); err != nil {
		panic(fmt.Sprintf("failed to mark field flag as required: %v", err))
	}

	rootCmd.AddCommand(addCmd)
}

func runAdd(_ *cobra.Command, _ []string) error {
	cfg, err := loadAppConfig(addConfig)
	if err != nil {
		return err
	}
	if addDataDir != "" {
		cfg.DataDir = addDataDir
	}

	fields, err := dataset.PrepareEntry(addKPI, addFields, cfg.EntryVocabulary())
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", cfg.DataDir, err)
	}

	path := filepath.Join(cfg.DataDir, addKPI+".csv")
	if err := dataset.AppendRow(path, dataset.Columns(addKPI), fields); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Appended 1 entry to %s\n", path)
	return nil
}
