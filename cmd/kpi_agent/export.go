// Package main implements the kpi_agent CLI tool for the career KPI dashboard.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/kpi-dashboard/internal/dataset"
	"github.com/jonathan/kpi-dashboard/internal/records"
	"github.com/jonathan/kpi-dashboard/internal/schemas"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export normalized learning records as JSON",
	Long:  "Reads a learning CSV, normalizes it, and writes the clean records as a JSON array. With --validate the output is checked against the learning record schema.",
	RunE:  runExport,
}

var (
	exportInput    string
	exportOutput   string
	exportConfig   string
	exportValidate bool
)

func init() {
	exportCmd.Flags().StringVarP(&exportInput, "in", "i", "", "Path to learning CSV file (required)")
	exportCmd.Flags().StringVarP(&exportOutput, "out", "o", "", "Path to output JSON file (required)")
	exportCmd.Flags().StringVar(&exportConfig, "config", "", "Path to JSON config file (optional)")
	exportCmd.Flags().BoolVar(&exportValidate, "validate", false, "Validate the output against the learning record schema")

	if err := exportCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}
	if err := exportCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	cfg, err := loadAppConfig(exportConfig)
	if err != nil {
		return err
	}

	rows, err := dataset.ReadFile(exportInput)
	if err != nil {
		return err
	}

	normalizer := records.NewNormalizer(cfg.CoreSkills)
	result := normalizer.NormalizeAll(rows)
	for _, rowErr := range result.Errors {
		fmt.Fprintf(os.Stderr, "Skipped %s\n", rowErr.Error())
	}

	if dir := filepath.Dir(exportOutput); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(result.Records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal records to JSON: %w", err)
	}
	if err := os.WriteFile(exportOutput, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", exportOutput, err)
	}

	if exportValidate {
		schemaPath := schemas.ResolveSchemaPath(schemas.LearningRecordSchema)
		if schemaPath == "" {
			fmt.Fprintf(os.Stderr, "Warning: learning record schema not found, skipping validation\n")
		} else if err := schemas.ValidateJSON(schemaPath, exportOutput); err != nil {
			var validationErr *schemas.ValidationError
			if errors.As(err, &validationErr) {
				return fmt.Errorf("exported records do not validate against schema: %w", err)
			}
			// Schema loading issue - log warning and continue
			fmt.Fprintf(os.Stderr, "Warning: could not validate output against schema: %v\n", err)
		}
	}

	fmt.Fprintf(os.Stdout, "Exported %d records to %s\n", len(result.Records), exportOutput)
	return nil
}
