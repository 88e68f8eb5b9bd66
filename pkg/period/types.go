// Package period assigns calendar period labels to attendance dates.
//
// It supports four granularities (daily, weekly, monthly, yearly) and
// builds the week-range lookup table that maps each ISO week label to
// its Monday..Sunday date span.
//
// Example usage:
//
//	label := period.Label(rec.Date, period.Weekly)  // "2024-W23"
//	ranges := period.BuildWeekRanges([]string{label}, logger.Default())
//	fmt.Printf("%s runs %s to %s\n", label,
//	    ranges[label].Start.Format("2006-01-02"),
//	    ranges[label].End.Format("2006-01-02"))
package period

import (
	"time"
)

// Granularity selects the calendar bucketing applied to records.
type Granularity string

const (
	// Daily buckets records by calendar date (YYYY-MM-DD).
	Daily Granularity = "daily"

	// Weekly buckets records by ISO-8601 week (YYYY-Www).
	Weekly Granularity = "weekly"

	// Monthly buckets records by calendar month (YYYY-MM).
	Monthly Granularity = "monthly"

	// Yearly buckets records by calendar year (YYYY).
	Yearly Granularity = "yearly"
)

// Valid reports whether g is one of the supported granularities.
func (g Granularity) Valid() bool {
	switch g {
	case Daily, Weekly, Monthly, Yearly:
		return true
	default:
		return false
	}
}

// Parse normalizes a granularity string.
//
// Accepts the canonical lowercase names and their capitalized forms
// ("Daily", "weekly", ...). An unrecognized value is returned as-is and
// reports false; callers treat that as fail-soft empty output rather
// than an error.
func Parse(s string) (Granularity, bool) {
	g := Granularity(lower(s))
	return g, g.Valid()
}

// lower is a small ASCII-only strings.ToLower.
func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// WeekRange is the Monday..Sunday date span of one ISO week.
//
// Both bounds are midnight UTC dates; End is the Sunday, not an
// exclusive bound.
type WeekRange struct {
	Start time.Time
	End   time.Time
}
