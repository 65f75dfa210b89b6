// Package main provides the entry point for the Career KPI Dashboard CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/kpi-dashboard/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "kpi_agent",
	Short: "Career KPI Dashboard",
	Long:  "Career KPI Dashboard normalizes logged career data (learning, mentoring, apps, tickets and more) from CSV files and computes the KPI cards and trends behind the dashboard.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadAppConfig resolves the effective configuration: the optional JSON config
// file, filled from defaults. Commands that need an existing data directory
// validate the merged config themselves.
func loadAppConfig(path string) (config.Config, error) {
	cfg := config.Config{}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = *loaded
	}
	return cfg.MergeWithDefaults(config.DefaultConfig()), nil
}
