// Package record provides attendance record ingestion for kutir-report.
//
// It reads raw tabular attendance exports (CSV), normalizes header
// variants against an explicit alias schema, coerces date and numeric
// columns, and drops rows that cannot be used for aggregation. Rows
// that survive ingestion satisfy the engine's invariants: a valid date
// and a non-negative numeric attendance count.
//
// Example usage:
//
//	src := record.NewSource(record.DefaultSchema(), logger.Default())
//	records, _, err := src.ReadFile("attendance.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, rec := range records {
//	    fmt.Printf("%s %s: %d\n", rec.Date.Format("2006-01-02"), rec.KutirName, rec.StudentAttendance)
//	}
package record

import (
	"time"
)

// AttendanceRecord is one per-session attendance row.
//
// Invariant: Date is a midnight UTC date, never the zero value.
// Invariant: StudentAttendance is >= 0.
//
// Categorical fields may be empty in raw input; they pass through
// untouched. Records are immutable inputs to the aggregation engine;
// nothing downstream mutates them.
type AttendanceRecord struct {
	Date              time.Time
	State             string
	District          string
	Cluster           string
	KutirName         string
	KutirType         string
	Shift             string
	TeacherName       string
	StudentAttendance int
}

// Validate checks if the record satisfies the engine's invariants.
func (r *AttendanceRecord) Validate() error {
	if r.Date.IsZero() {
		return ErrInvalidDate
	}
	if r.StudentAttendance < 0 {
		return ErrNegativeAttendance
	}
	return nil
}

// Canonical column names recognized by the ingestion schema.
const (
	ColDate        = "Date"
	ColState       = "State"
	ColDistrict    = "District"
	ColCluster     = "Cluster"
	ColKutirName   = "Kutir Name"
	ColKutirType   = "Type of Kutir"
	ColShift       = "Shift"
	ColTeacherName = "Teachers Name"
	ColAttendance  = "Attendance of Students"
)

// Schema maps raw header variants to canonical column names.
//
// Raw exports carry inconsistent headers ("Date of Session",
// "Attendance of Students (count)", ...). The schema is an explicit
// alias table built once at ingestion: an exact, case-insensitive match
// of the trimmed raw header against Aliases. Required canonical columns
// that cannot be resolved produce a typed failure, never a silent
// proceed with absent columns.
type Schema struct {
	// Aliases maps a lowercased raw header to its canonical name.
	Aliases map[string]string

	// Required lists canonical columns that must resolve for the file
	// to be ingested at all.
	Required []string
}

// DefaultSchema returns the alias schema for Parivaar kutir exports.
//
// Date and attendance are required; the categorical columns are
// optional and default to empty strings when absent.
func DefaultSchema() Schema {
	aliases := map[string]string{}
	add := func(canonical string, variants ...string) {
		aliases[lowerTrim(canonical)] = canonical
		for _, v := range variants {
			aliases[lowerTrim(v)] = canonical
		}
	}

	add(ColDate, "Timestamp", "Datetime", "Date of Session")
	add(ColState)
	add(ColDistrict)
	add(ColCluster)
	add(ColKutirName, "Name of Kutir", "Kutir")
	add(ColKutirType, "Kutir Type")
	add(ColShift, "Shift (Morning/Evening)")
	add(ColTeacherName, "Teacher Name", "Teachers Name ")
	add(ColAttendance, "Student Attendance", "Attendance of Students (count)", "No of Students")

	return Schema{
		Aliases:  aliases,
		Required: []string{ColDate, ColAttendance},
	}
}

// Stats summarizes one ingestion run.
type Stats struct {
	// Rows is the number of data rows seen (excluding the header).
	Rows int

	// Kept is the number of rows that produced a valid record.
	Kept int

	// DroppedBadDate counts rows whose date column was missing or
	// unparseable.
	DroppedBadDate int

	// DroppedBadAttendance counts rows whose attendance column was
	// missing or non-numeric. These are dropped, not coerced to zero:
	// a phantom zero would drag down per-entity weekly averages.
	DroppedBadAttendance int
}
