package period

import (
	"fmt"
	"time"
)

// Logger defines the logging interface used by the period package.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// Label returns the canonical period label for t at granularity g.
//
// Labels:
//   - Daily:   "2006-01-02"
//   - Weekly:  "2004-W53" (ISO week-numbering year, zero-padded week)
//   - Monthly: "2006-01"
//   - Yearly:  "2006"
//
// The weekly label uses the ISO-8601 rule: the week containing a date's
// Thursday determines both the year and the week number. Dates near
// year boundaries may therefore carry a different year than their
// calendar year (2024-12-30 is "2025-W01"). This is intentional.
//
// An unsupported granularity yields an empty label.
func Label(t time.Time, g Granularity) string {
	switch g {
	case Daily:
		return t.Format("2006-01-02")
	case Weekly:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case Monthly:
		return t.Format("2006-01")
	case Yearly:
		return t.Format("2006")
	default:
		return ""
	}
}

// ParseWeekLabel inverts a weekly label into its ISO year and week.
//
// Returns ErrMalformedWeekLabel if the label does not match the
// "YYYY-Www" shape or names a week that does not exist in that ISO
// year (e.g. W53 in a 52-week year, W00, W60).
func ParseWeekLabel(label string) (year, week int, err error) {
	var y, w int
	if _, scanErr := fmt.Sscanf(label, "%4d-W%2d", &y, &w); scanErr != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedWeekLabel, label)
	}
	if len(label) != 8 || label[4] != '-' || label[5] != 'W' {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedWeekLabel, label)
	}
	if w < 1 || w > 53 {
		return 0, 0, fmt.Errorf("%w: %q: week out of range", ErrMalformedWeekLabel, label)
	}

	// W53 only exists in long ISO years. Verify by resolving the bounds
	// and checking the round trip.
	start := isoWeekStart(y, w)
	if gotYear, gotWeek := start.ISOWeek(); gotYear != y || gotWeek != w {
		return 0, 0, fmt.Errorf("%w: %q: no such week", ErrMalformedWeekLabel, label)
	}

	return y, w, nil
}

// Bounds returns the Monday..Sunday range of the given ISO week label.
//
// Returns ErrMalformedWeekLabel for labels that cannot be resolved to a
// real ISO week.
func Bounds(label string) (WeekRange, error) {
	year, week, err := ParseWeekLabel(label)
	if err != nil {
		return WeekRange{}, err
	}

	start := isoWeekStart(year, week)
	return WeekRange{
		Start: start,
		End:   start.AddDate(0, 0, 6),
	}, nil
}

// BuildWeekRanges resolves each distinct weekly label to its date range.
//
// Parameters:
//   - labels: Weekly labels present in the data (duplicates allowed)
//   - log: Logger for diagnostics on malformed labels
//
// Returns a map keyed by label. A label that cannot be resolved is
// logged and omitted; consumers joining against the table see an absent
// range rather than a failure.
func BuildWeekRanges(labels []string, log Logger) map[string]WeekRange {
	ranges := make(map[string]WeekRange, len(labels))

	for _, label := range labels {
		if _, done := ranges[label]; done {
			continue
		}
		r, err := Bounds(label)
		if err != nil {
			log.Warn("skipping unresolvable week label", "label", label, "error", err)
			continue
		}
		ranges[label] = r
	}

	return ranges
}

// isoWeekStart returns the Monday beginning the given ISO week.
//
// January 4th always falls in week 1 of its ISO year, so the Monday of
// week 1 is found by stepping back from it, and every other week is a
// whole number of weeks later.
func isoWeekStart(year, week int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)

	weekday := int(jan4.Weekday())
	if weekday == 0 { // Sunday
		weekday = 7
	}

	week1Monday := jan4.AddDate(0, 0, -(weekday - 1))
	return week1Monday.AddDate(0, 0, (week-1)*7)
}

// Truncate normalizes a timestamp to its midnight UTC date.
//
// Attendance is a per-day fact; time-of-day on raw rows is noise.
func Truncate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
