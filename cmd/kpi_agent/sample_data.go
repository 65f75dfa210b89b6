// Package main implements the kpi_agent CLI tool for the career KPI dashboard.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/kpi-dashboard/internal/dataset"
)

var sampleDataCmd = &cobra.Command{
	Use:   "sample-data",
	Short: "Write sample CSV files for every KPI",
	Long:  "Seeds the data directory with one small sample CSV per KPI so the dashboard can be exercised end to end. Existing files are never overwritten.",
	RunE:  runSampleData,
}

var sampleDataDir string

func init() {
	sampleDataCmd.Flags().StringVarP(&sampleDataDir, "data-dir", "d", "data", "Directory to write the sample CSV files into")
	rootCmd.AddCommand(sampleDataCmd)
}

func runSampleData(_ *cobra.Command, _ []string) error {
	if err := dataset.WriteSampleData(sampleDataDir); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Sample data ready in %s:\n", sampleDataDir)
	for _, key := range dataset.Keys() {
		fmt.Fprintf(os.Stdout, "  %s.csv\n", key)
	}
	return nil
}
