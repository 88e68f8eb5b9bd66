package main

import (
	"flag"
	"testing"
	"time"

	"github.com/parivaar/kutir-report/pkg/config"
	"github.com/parivaar/kutir-report/pkg/display"
	"github.com/parivaar/kutir-report/pkg/record"
)

// parseFilterFlags registers the shared filter flags on a throwaway
// flag set and parses args into them.
func parseFilterFlags(t *testing.T, args []string) filterFlags {
	t.Helper()

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	flags := newFilterFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse(%v) error = %v", args, err)
	}
	return flags
}

// TestBuildFilter tests filter flag conversion.
func TestBuildFilter(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantFilter record.Filter
		wantError  bool
	}{
		{
			name:       "no flags",
			args:       []string{},
			wantFilter: record.Filter{},
		},
		{
			name: "district and shift",
			args: []string{"-district", "Indore", "-shift", "Morning"},
			wantFilter: record.Filter{
				District: "Indore",
				Shift:    "Morning",
			},
		},
		{
			name: "all selection flags",
			args: []string{
				"-state", "Madhya Pradesh",
				"-district", "Dhar",
				"-shift", "Evening",
				"-kutir", "Kutir X",
				"-type", "FRC",
			},
			wantFilter: record.Filter{
				State:     "Madhya Pradesh",
				District:  "Dhar",
				Shift:     "Evening",
				KutirName: "Kutir X",
				KutirType: "FRC",
			},
		},
		{
			name: "date range",
			args: []string{"-from", "2024-06-01", "-to", "2024-06-30"},
			wantFilter: record.Filter{
				From: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
				To:   time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name:      "invalid from date",
			args:      []string{"-from", "June 1st"},
			wantError: true,
		},
		{
			name:      "invalid to date",
			args:      []string{"-to", "2024-13-01"},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := parseFilterFlags(t, tt.args)

			filter, err := buildFilter(flags)
			if tt.wantError {
				if err == nil {
					t.Fatal("buildFilter() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("buildFilter() error = %v", err)
			}

			if filter.State != tt.wantFilter.State ||
				filter.District != tt.wantFilter.District ||
				filter.Shift != tt.wantFilter.Shift ||
				filter.KutirName != tt.wantFilter.KutirName ||
				filter.KutirType != tt.wantFilter.KutirType {
				t.Errorf("buildFilter() = %+v, want %+v", filter, tt.wantFilter)
			}
			if !filter.From.Equal(tt.wantFilter.From) {
				t.Errorf("From = %v, want %v", filter.From, tt.wantFilter.From)
			}
			if !filter.To.Equal(tt.wantFilter.To) {
				t.Errorf("To = %v, want %v", filter.To, tt.wantFilter.To)
			}
		})
	}
}

// TestIngestSchema tests alias merging from configuration.
func TestIngestSchema(t *testing.T) {
	cfg := config.Default()
	cfg.Ingest.ExtraAliases = map[string]string{
		"session date": record.ColDate,
		"students":     record.ColAttendance,
	}

	schema := ingestSchema(cfg)

	if got := schema.Aliases["session date"]; got != record.ColDate {
		t.Errorf("Aliases[\"session date\"] = %q, want %q", got, record.ColDate)
	}
	if got := schema.Aliases["students"]; got != record.ColAttendance {
		t.Errorf("Aliases[\"students\"] = %q, want %q", got, record.ColAttendance)
	}

	// Default aliases survive the merge.
	if got := schema.Aliases["date of session"]; got != record.ColDate {
		t.Errorf("Aliases[\"date of session\"] = %q, want %q", got, record.ColDate)
	}
}

// TestResolveFormat tests format resolution with config fallback.
func TestResolveFormat(t *testing.T) {
	tests := []struct {
		name          string
		flagValue     string
		defaultFormat string
		want          display.Format
	}{
		{
			name:          "flag wins over config",
			flagValue:     "json",
			defaultFormat: "table",
			want:          display.FormatJSON,
		},
		{
			name:          "empty flag falls back to config",
			flagValue:     "",
			defaultFormat: "simple",
			want:          display.FormatSimple,
		},
		{
			name:          "csv",
			flagValue:     "csv",
			defaultFormat: "table",
			want:          display.FormatCSV,
		},
		{
			name:          "unknown value defaults to table",
			flagValue:     "fancy",
			defaultFormat: "json",
			want:          display.FormatTable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Display.DefaultFormat = tt.defaultFormat

			if got := resolveFormat(tt.flagValue, cfg); got != tt.want {
				t.Errorf("resolveFormat(%q) = %v, want %v", tt.flagValue, got, tt.want)
			}
		})
	}
}

// TestNewFilterFlags tests that every shared flag is registered.
func TestNewFilterFlags(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	newFilterFlags(fs)

	for _, name := range []string{"state", "district", "shift", "kutir", "type", "from", "to"} {
		if fs.Lookup(name) == nil {
			t.Errorf("flag -%s not registered", name)
		}
	}
}

// TestLoadConfig_ExplicitPathMissing tests that an explicit config
// path failing to load is reported rather than silently defaulted.
func TestLoadConfig_ExplicitPathMissing(t *testing.T) {
	if _, err := loadConfig("/nonexistent/config.yaml"); err == nil {
		t.Error("loadConfig() expected error for missing explicit path")
	}
}

// TestResolveFormat_BlankEverywhere tests the fallthrough when both
// flag and config are unset.
func TestResolveFormat_BlankEverywhere(t *testing.T) {
	cfg := config.Default()
	cfg.Display.DefaultFormat = ""

	if got := resolveFormat("", cfg); got != display.FormatTable {
		t.Errorf("resolveFormat() = %v, want %v", got, display.FormatTable)
	}
}

