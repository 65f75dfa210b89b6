// Package main implements the kpi_agent CLI tool for the career KPI dashboard.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/kpi-dashboard/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  "Starts the HTTP server that exposes the dashboard REST endpoints. DATABASE_URL enables the archive endpoints; without it the server runs from CSV files alone.",
	RunE:  runServe,
}

var (
	servePort    int
	serveDataDir string
	serveConfig  string
)

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config)")
	serveCmd.Flags().StringVarP(&serveDataDir, "data-dir", "d", "", "Directory holding the KPI CSV files (default from config)")
	serveCmd.Flags().StringVar(&serveConfig, "config", "", "Path to JSON config file (optional)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadAppConfig(serveConfig)
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	if serveDataDir != "" {
		cfg.DataDir = serveDataDir
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Port:        cfg.Port,
		DataDir:     cfg.DataDir,
		DatabaseURL: cfg.DatabaseURL,
		CoreSkills:  cfg.CoreSkills,
		EntryVocab:  cfg.EntryVocabulary(),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
