// Package main implements the kpi_agent CLI tool for the career KPI dashboard.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/kpi-dashboard/internal/dataset"
	"github.com/jonathan/kpi-dashboard/internal/db"
	"github.com/jonathan/kpi-dashboard/internal/observability"
	"github.com/jonathan/kpi-dashboard/internal/records"
	"github.com/jonathan/kpi-dashboard/internal/types"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Archive a normalized learning batch into Postgres",
	Long:  "Reads a learning CSV, normalizes it, and stores the clean records as one import batch in the archive database. Rows that fail validation are reported and counted on the batch, not imported.",
	RunE:  runImport,
}

var (
	importInput       string
	importConfig      string
	importDatabaseURL string
)

func init() {
	importCmd.Flags().StringVarP(&importInput, "in", "i", "", "Path to learning CSV file (required)")
	importCmd.Flags().StringVar(&importConfig, "config", "", "Path to JSON config file (optional)")
	importCmd.Flags().StringVar(&importDatabaseURL, "db-url", "", "Database URL (defaults to DATABASE_URL)")

	if err := importCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	if importDatabaseURL == "" {
		importDatabaseURL = os.Getenv("DATABASE_URL")
	}
	if importDatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL not set (set DATABASE_URL environment variable or use --db-url flag)")
	}

	cfg, err := loadAppConfig(importConfig)
	if err != nil {
		return err
	}

	rows, err := dataset.ReadFile(importInput)
	if err != nil {
		return err
	}

	normalizer := records.NewNormalizer(cfg.CoreSkills)
	result := normalizer.NormalizeAll(rows)

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintBatchResult(result)

	database, err := db.Connect(ctx, importDatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return err
	}

	recs := make([]*types.LearningRecord, len(result.Records))
	for i := range result.Records {
		recs[i] = &result.Records[i]
	}

	batchID, err := database.ImportLearningRecords(ctx, filepath.Base(importInput), recs, len(result.Errors), len(result.Warnings))
	if err != nil {
		return fmt.Errorf("failed to import batch: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Imported %d records (batch: %s)\n", len(recs), batchID)
	return nil
}
