package record

import (
	"time"
)

// Filter narrows a record set before aggregation.
//
// Filtering is upstream selection: the aggregation engine itself never
// filters. Empty fields match everything; the zero Filter passes every
// record through.
type Filter struct {
	// State matches records with this state (exact).
	State string

	// District matches records with this district (exact).
	District string

	// Shift matches records with this shift (exact).
	Shift string

	// KutirName matches records for one kutir (exact).
	KutirName string

	// KutirType matches records for one kutir type (exact).
	KutirType string

	// From, when non-zero, excludes records dated before it.
	From time.Time

	// To, when non-zero, excludes records dated after it.
	To time.Time
}

// Match reports whether rec passes the filter.
func (f Filter) Match(rec AttendanceRecord) bool {
	if f.State != "" && rec.State != f.State {
		return false
	}
	if f.District != "" && rec.District != f.District {
		return false
	}
	if f.Shift != "" && rec.Shift != f.Shift {
		return false
	}
	if f.KutirName != "" && rec.KutirName != f.KutirName {
		return false
	}
	if f.KutirType != "" && rec.KutirType != f.KutirType {
		return false
	}
	if !f.From.IsZero() && rec.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && rec.Date.After(f.To) {
		return false
	}
	return true
}

// Apply returns the records passing the filter, preserving order.
//
// The input slice is never mutated; the result is freshly allocated
// unless the filter is empty, in which case the input is returned
// as-is (records are immutable, sharing is safe).
func (f Filter) Apply(records []AttendanceRecord) []AttendanceRecord {
	if f == (Filter{}) {
		return records
	}

	out := make([]AttendanceRecord, 0, len(records))
	for _, rec := range records {
		if f.Match(rec) {
			out = append(out, rec)
		}
	}
	return out
}
