// Package aggregator computes attendance aggregates over period buckets.
//
// Given an immutable record set and a granularity it derives an overall
// period series for trend display and a per-kutir detail series for
// breakdowns, plus summary KPIs. Weekly aggregation applies a two-stage
// averaging rule so that kutirs logging more days do not dominate the
// weekly figure; all other granularities sum directly.
//
// Example usage:
//
//	agg := aggregator.New(aggregator.Config{Logger: logger.Default()})
//	result := agg.Aggregate(records, period.Weekly)
//	kpis := aggregator.KPIs(result.Overall)
//	fmt.Printf("periods=%d max=%.1f mean=%.1f\n", kpis.Periods, kpis.Max, kpis.Mean)
package aggregator

import (
	"github.com/parivaar/kutir-report/pkg/period"
	"github.com/parivaar/kutir-report/pkg/record"
)

// PeriodAggregate is one row of the overall period series.
type PeriodAggregate struct {
	// Period is the canonical period label.
	Period string

	// Attendance is the aggregated figure for the period: a plain sum
	// for daily/monthly/yearly, the mean of per-kutir weekly averages
	// for weekly.
	Attendance float64

	// Week is the joined Monday..Sunday range for weekly rows. Nil for
	// other granularities, and nil for weekly rows whose label could
	// not be resolved to a real ISO week.
	Week *period.WeekRange
}

// EntityAggregate is one row of the per-kutir detail series.
type EntityAggregate struct {
	// Period is the canonical period label.
	Period string

	// Kutir is the kutir name.
	Kutir string

	// KutirType is the kutir's type, carried through for breakdown-by-type.
	KutirType string

	// District is the kutir's district, carried through for the region
	// distribution builder.
	District string

	// Attendance is the summed attendance for daily/monthly/yearly, or
	// the per-kutir weekly average for weekly.
	Attendance float64

	// Days is the number of distinct recorded days behind a weekly
	// average. Zero for non-weekly rows.
	Days int
}

// TypeAggregate is one row of the breakdown-by-type series.
type TypeAggregate struct {
	Period     string
	KutirType  string
	Attendance float64
}

// Result holds everything one aggregation call derives.
//
// All slices are freshly allocated per call; nothing is cached or
// mutated in place. The week-range table is safe to share read-only.
type Result struct {
	// Granularity the result was computed at.
	Granularity period.Granularity

	// Overall is the period series, in first-occurrence order of the
	// period label. Callers sort when they need chronological order.
	Overall []PeriodAggregate

	// Detail is the per-kutir series, in first-occurrence order of the
	// (period, kutir) grouping key.
	Detail []EntityAggregate

	// WeekRanges maps each resolvable weekly label to its date range.
	// Empty for non-weekly granularities.
	WeekRanges map[string]period.WeekRange
}

// KPISummary reduces an overall series to headline figures.
type KPISummary struct {
	// Periods is the number of distinct periods present.
	Periods int

	// Max is the highest period attendance figure.
	Max float64

	// Mean is the mean period attendance figure.
	Mean float64
}

// Logger defines the logging interface used by the aggregator package.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// Aggregator derives attendance aggregates from record sets.
//
// Implementations are pure: each call is independent, retains no state
// across calls, and is safe to run from concurrent callers.
type Aggregator interface {
	// Aggregate buckets records at the given granularity.
	//
	// Parameters:
	//   - records: Immutable record set (already filtered upstream)
	//   - g: Period granularity
	//
	// Returns the overall and detail series. An empty record set or an
	// unsupported granularity yields empty series, never an error.
	Aggregate(records []record.AttendanceRecord, g period.Granularity) Result
}

// Config contains aggregator configuration.
type Config struct {
	// Logger receives diagnostics (unresolvable week labels).
	// Defaults to a no-op logger when nil.
	Logger Logger
}
