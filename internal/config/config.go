// Package config provides configuration loading and validation for the dashboard.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Config represents the dashboard configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	DataDir string `json:"data_dir,omitempty"` // Directory holding the KPI CSV files

	// Server
	Port        int    `json:"port,omitempty"`         // HTTP listen port
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Domain vocabulary. Categories and group labels live in config, never in code,
	// so a new skill area or department is a config edit, not a release.
	CoreSkills     []string          `json:"core_skills,omitempty"`
	Departments    []string          `json:"departments,omitempty"`
	MentoringTypes []string          `json:"mentoring_types,omitempty"`
	AppTypes       map[string]string `json:"app_types,omitempty"` // label -> code

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}

	if c.DataDir != "" {
		if _, err := os.Stat(c.DataDir); os.IsNotExist(err) {
			return fmt.Errorf("config error: data directory not found: %s", c.DataDir)
		}
	}

	for _, skill := range c.CoreSkills {
		if skill == "" {
			return fmt.Errorf("config error: 'core_skills' contains an empty entry")
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Port == 0 {
		if defaults.Port > 0 {
			result.Port = defaults.Port
		} else {
			result.Port = 8080
		}
	}

	if len(result.CoreSkills) == 0 {
		result.CoreSkills = defaults.CoreSkills
	}
	if len(result.Departments) == 0 {
		result.Departments = defaults.Departments
	}
	if len(result.MentoringTypes) == 0 {
		result.MentoringTypes = defaults.MentoringTypes
	}
	if len(result.AppTypes) == 0 {
		result.AppTypes = defaults.AppTypes
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// EntryVocabulary returns, per entry column, the closed set of values the
// dashboard accepts when appending rows. Columns not listed are free-form.
func (c *Config) EntryVocabulary() map[string][]string {
	appTypeCodes := make([]string, 0, len(c.AppTypes))
	for _, code := range c.AppTypes {
		appTypeCodes = append(appTypeCodes, code)
	}
	sort.Strings(appTypeCodes)

	return map[string][]string{
		"dept":           c.Departments,
		"mentoring_type": c.MentoringTypes,
		"app_type":       appTypeCodes,
	}
}

// DefaultConfig is the baseline the owner's config file overrides. The
// vocabulary mirrors the seeded sample data.
func DefaultConfig() Config {
	return Config{
		DataDir: "data",
		Port:    8080,
		CoreSkills: []string{
			"AI Engineering", "Data Engineering", "DevOps", "Backend", "Architecture",
		},
		Departments: []string{
			"IT", "QA", "QC-prod", "Logistics", "Sales", "Finance",
		},
		MentoringTypes: []string{
			"prompt_eng", "nocode_guidance", "ai_assistant_util",
		},
		AppTypes: map[string]string{
			"Simple Data Collection": "simple",
			"AI Full App":            "ai_full",
			"AI Assistant App":       "ai_assistant",
		},
	}
}
