package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the tracker directory.
const FileName = "fintrack.yaml"

// Config represents the top-level fintrack.yaml configuration.
type Config struct {
	Tracker    TrackerConfig    `yaml:"tracker"`
	Budget     BudgetConfig     `yaml:"budget"`
	Categories CategoriesConfig `yaml:"categories"`
	Storage    StorageConfig    `yaml:"storage"`
	History    HistoryConfig    `yaml:"history"`
	Log        LogConfig        `yaml:"log"`
	DateFormat string           `yaml:"date_format"` // Go layout for user input
}

// TrackerConfig identifies the tracker.
type TrackerConfig struct {
	Name string `yaml:"name"`
}

// BudgetConfig controls how amounts are shown.
type BudgetConfig struct {
	Currency string `yaml:"currency"`
}

// CategoriesConfig controls category matching.
type CategoriesConfig struct {
	CaseInsensitive bool `yaml:"case_insensitive"`
}

// StorageConfig locates the data files, relative to the tracker directory.
type StorageConfig struct {
	RecordsFile string `yaml:"records_file"`
	BudgetFile  string `yaml:"budget_file"`
	ActivityLog string `yaml:"activity_log"`
}

// HistoryConfig controls the undo history.
type HistoryConfig struct {
	Limit int `yaml:"limit"` // 0 = unbounded
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// Load reads a fintrack.yaml file from disk. Unset fields keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate checks field values that would otherwise fail later.
func (c *Config) Validate() error {
	if c.History.Limit < 0 {
		return errors.New("history.limit must not be negative")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if c.DateFormat == "" {
		return errors.New("date_format must not be empty")
	}
	probe := time.Date(2019, 3, 14, 0, 0, 0, 0, time.UTC)
	if got, err := time.Parse(c.DateFormat, probe.Format(c.DateFormat)); err != nil || !got.Equal(probe) {
		return fmt.Errorf("date_format %q does not round-trip a calendar date", c.DateFormat)
	}
	if c.Storage.RecordsFile == "" || c.Storage.BudgetFile == "" {
		return errors.New("storage.records_file and storage.budget_file must be set")
	}
	return nil
}

// Default returns a Config with sensible defaults for a new tracker.
func Default(name string) *Config {
	return &Config{
		Tracker: TrackerConfig{
			Name: name,
		},
		Budget: BudgetConfig{
			Currency: "$",
		},
		Storage: StorageConfig{
			RecordsFile: "data/records.csv",
			BudgetFile:  "data/budget.yaml",
			ActivityLog: "logs/activity.csv",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		DateFormat: "02/01/2006",
	}
}
