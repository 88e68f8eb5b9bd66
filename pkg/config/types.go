// Package config provides configuration management for kutir-report.
//
// Configuration is loaded with the following precedence:
// 1. Environment variables (highest priority)
// 2. Configuration file (YAML)
// 3. Default values (lowest priority)
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Data dirs: %v\n", cfg.DataDirs)
package config

import (
	"time"
)

// Config represents the complete application configuration.
//
// Invariants:
// - DataDirs must have at least one directory
// - Watch.Debounce must be > 0
// - Display.DefaultFormat must be a known format
// - Logging.Level and Logging.Format must be recognized.
type Config struct {
	// Directories scanned for attendance CSV exports
	DataDirs []string `yaml:"data_dirs"`

	// Ingestion settings
	Ingest IngestConfig `yaml:"ingest"`

	// Watch settings
	Watch WatchConfig `yaml:"watch"`

	// Display settings
	Display DisplayConfig `yaml:"display"`

	// Storage settings
	Storage StorageConfig `yaml:"storage"`

	// Logging settings
	Logging LoggingConfig `yaml:"logging"`
}

// IngestConfig contains ingestion-related settings.
type IngestConfig struct {
	// ExtraAliases maps additional raw header variants to canonical
	// column names, extending the built-in schema. Keys are matched
	// case-insensitively after trimming.
	ExtraAliases map[string]string `yaml:"extra_aliases"`
}

// WatchConfig contains data-file watching settings.
type WatchConfig struct {
	// Debounce is how long to coalesce rapid file events before
	// triggering a snapshot reload.
	Debounce time.Duration `yaml:"debounce"`
}

// DisplayConfig contains display-related settings.
type DisplayConfig struct {
	// Default output format (table, json, simple, csv)
	DefaultFormat string `yaml:"default_format"`

	// Maximum table width in columns; 0 means detect from the terminal.
	MaxWidth int `yaml:"max_width"`
}

// StorageConfig contains storage-related settings.
type StorageConfig struct {
	// Path to the BoltDB file holding saved views and source fingerprints
	DBPath string `yaml:"db_path"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Log level (debug, info, warn, error)
	Level string `yaml:"level"`

	// Log output destination (stdout, stderr, file path)
	Output string `yaml:"output"`

	// Log format (text, json)
	Format string `yaml:"format"`
}

// Validate checks if the configuration satisfies all invariants.
func (c *Config) Validate() error {
	if len(c.DataDirs) == 0 {
		return ErrNoDataDirs
	}

	if c.Watch.Debounce <= 0 {
		return ErrInvalidDebounce
	}

	validFormats := map[string]bool{
		"table":  true,
		"json":   true,
		"simple": true,
		"csv":    true,
	}
	if !validFormats[c.Display.DefaultFormat] {
		return ErrInvalidDisplayFormat
	}
	if c.Display.MaxWidth < 0 {
		return ErrInvalidMaxWidth
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[c.Logging.Format] {
		return ErrInvalidLogFormat
	}

	return nil
}

// Default returns a configuration with sensible default values.
func Default() *Config {
	return &Config{
		DataDirs: defaultDataDirs(),
		Watch: WatchConfig{
			Debounce: 300 * time.Millisecond,
		},
		Display: DisplayConfig{
			DefaultFormat: "table",
			MaxWidth:      0,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: "stderr",
			Format: "text",
		},
	}
}
