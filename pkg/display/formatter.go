package display

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/term"

	"github.com/parivaar/kutir-report/pkg/aggregator"
)

// New creates a new formatter based on configuration.
//
// Parameters:
//   - cfg: Formatter configuration
//
// Returns a configured Formatter.
func New(cfg Config) Formatter {
	if cfg.Format == "" {
		cfg.Format = FormatTable
	}

	switch cfg.Format {
	case FormatJSON:
		return &jsonFormatter{config: cfg}
	case FormatSimple:
		return &simpleFormatter{config: cfg}
	case FormatCSV:
		return &csvFormatter{config: cfg}
	case FormatTable:
		fallthrough
	default:
		return &tableFormatter{config: cfg}
	}
}

// sortedOverall returns the overall series sorted by period label.
//
// Labels are zero-padded in every granularity, so lexical order is
// chronological.
func sortedOverall(result aggregator.Result) []aggregator.PeriodAggregate {
	rows := make([]aggregator.PeriodAggregate, len(result.Overall))
	copy(rows, result.Overall)
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Period < rows[j].Period
	})
	return rows
}

// sortedByType returns the type series sorted by period, then type.
func sortedByType(rows []aggregator.TypeAggregate) []aggregator.TypeAggregate {
	out := make([]aggregator.TypeAggregate, len(rows))
	copy(out, rows)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Period != out[j].Period {
			return out[i].Period < out[j].Period
		}
		return out[i].KutirType < out[j].KutirType
	})
	return out
}

// weekSpan renders a period row's week range, empty when absent.
func weekSpan(row aggregator.PeriodAggregate) string {
	if row.Week == nil {
		return ""
	}
	return row.Week.Start.Format("2006-01-02") + " to " + row.Week.End.Format("2006-01-02")
}

// regionLabel flattens a structured region key for display. This is
// the one place a district and period collapse into a single string.
func regionLabel(district, qualifier string) string {
	if district == "" {
		return qualifier
	}
	return district + " / " + qualifier
}

// formatFloat formats a float with the given precision.
func formatFloat(f float64, precision int) string {
	format := fmt.Sprintf("%%.%df", precision)
	return fmt.Sprintf(format, f)
}

// formatCount formats an integer count.
func formatCount(n int) string {
	return fmt.Sprintf("%d", n)
}

// terminalWidth resolves the table width budget.
func terminalWidth(cfg Config) int {
	if cfg.MaxWidth > 0 {
		return cfg.MaxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 120
}

// writeHeader writes a section header.
func writeHeader(w io.Writer, title string, compact bool) error {
	if compact {
		_, err := fmt.Fprintf(w, "%s\n", title)
		return err
	}

	_, err := fmt.Fprintf(w, "\n%s\n%s\n\n", title, strings.Repeat("=", len(title)))
	return err
}
