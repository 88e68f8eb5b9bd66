package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()

	if len(cfg.DataDirs) == 0 {
		t.Error("Default().DataDirs is empty")
	}
	if cfg.Watch.Debounce != 300*time.Millisecond {
		t.Errorf("Default().Watch.Debounce = %v, want 300ms", cfg.Watch.Debounce)
	}
	if cfg.Display.DefaultFormat != "table" {
		t.Errorf("Default().Display.DefaultFormat = %q, want table", cfg.Display.DefaultFormat)
	}
	if cfg.Storage.DBPath == "" {
		t.Error("Default().Storage.DBPath is empty")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Default().Logging.Level = %q, want info", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default() does not validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"no data dirs", func(c *Config) { c.DataDirs = nil }, ErrNoDataDirs},
		{"zero debounce", func(c *Config) { c.Watch.Debounce = 0 }, ErrInvalidDebounce},
		{"negative debounce", func(c *Config) { c.Watch.Debounce = -time.Second }, ErrInvalidDebounce},
		{"unknown display format", func(c *Config) { c.Display.DefaultFormat = "xml" }, ErrInvalidDisplayFormat},
		{"negative max width", func(c *Config) { c.Display.MaxWidth = -1 }, ErrInvalidMaxWidth},
		{"unknown log level", func(c *Config) { c.Logging.Level = "verbose" }, ErrInvalidLogLevel},
		{"unknown log format", func(c *Config) { c.Logging.Format = "xml" }, ErrInvalidLogFormat},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tt.mutate(cfg)

			if err := cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `data_dirs:
  - /srv/kutir/data
watch:
  debounce: 500ms
display:
  default_format: json
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if len(cfg.DataDirs) != 1 || cfg.DataDirs[0] != "/srv/kutir/data" {
		t.Errorf("DataDirs = %v, want [/srv/kutir/data]", cfg.DataDirs)
	}
	if cfg.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("Watch.Debounce = %v, want 500ms", cfg.Watch.Debounce)
	}
	if cfg.Display.DefaultFormat != "json" {
		t.Errorf("Display.DefaultFormat = %q, want json", cfg.Display.DefaultFormat)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}

	// Unspecified fields keep their defaults after the merge.
	if cfg.Storage.DBPath == "" {
		t.Error("Storage.DBPath lost its default")
	}
	if cfg.Logging.Format == "" {
		t.Error("Logging.Format lost its default")
	}
}

func TestLoadFromFile_NotFound(t *testing.T) {
	t.Parallel()

	_, err := LoadFromFile("/nonexistent/config.yaml")
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("LoadFromFile() error = %v, want ErrConfigNotFound", err)
	}
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("data_dirs: [unterminated"), 0600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	_, err := LoadFromFile(path)
	if !errors.Is(err, ErrInvalidYAML) {
		t.Errorf("LoadFromFile() error = %v, want ErrInvalidYAML", err)
	}
}

func TestLoadFromFile_InvalidValues(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("display:\n  default_format: xml\n"), 0600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	_, err := LoadFromFile(path)
	if !errors.Is(err, ErrInvalidDisplayFormat) {
		t.Errorf("LoadFromFile() error = %v, want ErrInvalidDisplayFormat", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	// t.Setenv is incompatible with t.Parallel.
	t.Setenv("KUTIR_DATA_DIR", "/env/one, /env/two")
	t.Setenv("KUTIR_REPORT_DB", "/env/kutir.db")
	t.Setenv("KUTIR_REPORT_LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.DataDirs) != 2 || cfg.DataDirs[0] != "/env/one" || cfg.DataDirs[1] != "/env/two" {
		t.Errorf("DataDirs = %v, want trimmed env split", cfg.DataDirs)
	}
	if cfg.Storage.DBPath != "/env/kutir.db" {
		t.Errorf("Storage.DBPath = %q, want /env/kutir.db", cfg.Storage.DBPath)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want lowercased debug", cfg.Logging.Level)
	}
}

func TestSave(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	if err := Save(Default(), path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() after Save error = %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("saved config does not validate: %v", err)
	}
}

func TestSave_Invalid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.DataDirs = nil

	if err := Save(cfg, filepath.Join(t.TempDir(), "config.yaml")); err == nil {
		t.Error("Save() of invalid config succeeded, want error")
	}
}
