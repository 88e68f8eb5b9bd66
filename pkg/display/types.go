// Package display provides output formatting for attendance aggregates.
//
// It renders the overall period series, breakdowns by kutir type,
// KPI summaries, and district distributions as tables, JSON, simple
// text, or CSV (the export format consumed by spreadsheets). The
// engine stays agnostic to all of this: formatters only see ordered
// rows of named fields.
package display

import (
	"io"

	"github.com/parivaar/kutir-report/pkg/aggregator"
	"github.com/parivaar/kutir-report/pkg/distribution"
)

// Format represents an output format.
type Format string

const (
	// FormatTable renders aligned text tables.
	FormatTable Format = "table"

	// FormatJSON renders JSON documents.
	FormatJSON Format = "json"

	// FormatSimple renders one-line summaries.
	FormatSimple Format = "simple"

	// FormatCSV renders CSV suitable for spreadsheet import.
	FormatCSV Format = "csv"
)

// Formatter renders aggregation output.
type Formatter interface {
	// FormatOverall renders the overall period series.
	//
	// Rows are rendered in chronological label order regardless of the
	// engine's insertion order.
	FormatOverall(w io.Writer, result aggregator.Result) error

	// FormatByType renders the breakdown-by-type series.
	FormatByType(w io.Writer, rows []aggregator.TypeAggregate) error

	// FormatKPIs renders the KPI summary.
	FormatKPIs(w io.Writer, kpis aggregator.KPISummary) error

	// FormatDistribution renders the district distribution (wide pivot
	// plus the district mean column).
	FormatDistribution(w io.Writer, dist distribution.Distribution) error
}

// Config contains formatter configuration.
type Config struct {
	// Format specifies the output format.
	// Default: FormatTable.
	Format Format

	// Compact reduces whitespace in table output.
	Compact bool

	// MaxWidth caps table width in columns; 0 means detect from the
	// terminal, falling back to 120 when stdout is not a terminal.
	MaxWidth int
}
