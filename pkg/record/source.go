package record

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/parivaar/kutir-report/pkg/period"
)

// dateLayouts are the accepted raw date formats, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
	"01/02/2006 15:04",
}

// Logger defines the logging interface used by the record package.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
}

// Source reads raw attendance exports into validated records.
type Source interface {
	// ReadFile ingests one CSV export.
	//
	// Parameters:
	//   - path: Path to the CSV file
	//
	// Returns:
	//   - Records that passed validation, in file order
	//   - Ingestion statistics (rows seen, kept, dropped per reason)
	//   - Error if the file cannot be opened, has no header, or a
	//     required canonical column cannot be resolved
	//
	// Individual bad rows never fail the batch: a row with an
	// unparseable date or a missing attendance value is dropped with a
	// diagnostic and counted in Stats.
	ReadFile(path string) ([]AttendanceRecord, Stats, error)

	// Read ingests CSV data from a reader. Same contract as ReadFile.
	Read(r io.Reader) ([]AttendanceRecord, Stats, error)
}

// csvSource implements the Source interface.
type csvSource struct {
	schema Schema
	logger Logger
}

// NewSource creates a new CSV record source.
//
// Parameters:
//   - schema: Header alias schema (use DefaultSchema() for kutir exports)
//   - log: Logger instance
//
// Returns a configured Source.
func NewSource(schema Schema, log Logger) Source {
	return &csvSource{
		schema: schema,
		logger: log,
	}
}

// ReadFile implements Source.ReadFile.
func (s *csvSource) ReadFile(path string) ([]AttendanceRecord, Stats, error) {
	f, err := os.Open(path) // nolint:gosec
	if err != nil {
		return nil, Stats{}, fmt.Errorf("failed to open data file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			s.logger.Warn("failed to close data file", "path", path, "error", closeErr)
		}
	}()

	records, stats, err := s.Read(f)
	if err != nil {
		return nil, stats, fmt.Errorf("%s: %w", path, err)
	}

	s.logger.Info("ingested data file",
		"path", path,
		"rows", stats.Rows,
		"kept", stats.Kept,
		"dropped_bad_date", stats.DroppedBadDate,
		"dropped_bad_attendance", stats.DroppedBadAttendance)

	return records, stats, nil
}

// Read implements Source.Read.
func (s *csvSource) Read(r io.Reader) ([]AttendanceRecord, Stats, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // raw exports have ragged rows
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, Stats{}, ErrEmptyFile
	}
	if err != nil {
		return nil, Stats{}, fmt.Errorf("failed to read header: %w", err)
	}

	columns, err := s.resolveHeader(header)
	if err != nil {
		return nil, Stats{}, err
	}

	var stats Stats
	records := make([]AttendanceRecord, 0, 256)

	for {
		row, readErr := cr.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			// A malformed row degrades output for that row only.
			s.logger.Warn("skipping malformed row", "error", readErr)
			stats.Rows++
			continue
		}

		stats.Rows++

		rec, ok := s.buildRecord(row, columns, &stats)
		if !ok {
			continue
		}

		records = append(records, rec)
		stats.Kept++
	}

	return records, stats, nil
}

// resolveHeader maps each canonical column to its index in the header.
//
// Matching is exact against the alias table after trimming and
// lowercasing. When the same canonical column appears more than once
// (re-exported sheets duplicate columns), the first occurrence wins and
// the duplicate is reported at debug level.
func (s *csvSource) resolveHeader(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))

	for i, raw := range header {
		canonical, known := s.schema.Aliases[lowerTrim(raw)]
		if !known {
			s.logger.Debug("ignoring unrecognized column", "header", raw)
			continue
		}
		if _, dup := columns[canonical]; dup {
			s.logger.Debug("ignoring duplicate column", "header", raw, "canonical", canonical)
			continue
		}
		columns[canonical] = i
	}

	for _, required := range s.schema.Required {
		if _, ok := columns[required]; !ok {
			return nil, &MissingColumnError{Column: required, Headers: header}
		}
	}

	return columns, nil
}

// buildRecord converts one raw row into a validated record.
//
// Returns false when the row must be dropped; the reason is counted in
// stats and logged.
func (s *csvSource) buildRecord(row []string, columns map[string]int, stats *Stats) (AttendanceRecord, bool) {
	cell := func(canonical string) string {
		idx, ok := columns[canonical]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	date, ok := parseDate(cell(ColDate))
	if !ok {
		s.logger.Debug("dropping row with unparseable date", "value", cell(ColDate))
		stats.DroppedBadDate++
		return AttendanceRecord{}, false
	}

	attendance, ok := parseAttendance(cell(ColAttendance))
	if !ok {
		// Dropped, not coerced to zero. See Stats.DroppedBadAttendance.
		s.logger.Debug("dropping row with missing attendance",
			"date", date.Format("2006-01-02"),
			"kutir", cell(ColKutirName))
		stats.DroppedBadAttendance++
		return AttendanceRecord{}, false
	}

	return AttendanceRecord{
		Date:              date,
		State:             cell(ColState),
		District:          cell(ColDistrict),
		Cluster:           cell(ColCluster),
		KutirName:         cell(ColKutirName),
		KutirType:         cell(ColKutirType),
		Shift:             cell(ColShift),
		TeacherName:       cell(ColTeacherName),
		StudentAttendance: attendance,
	}, true
}

// parseDate parses a raw date cell and normalizes it to midnight UTC.
func parseDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return period.Truncate(t), true
		}
	}

	return time.Time{}, false
}

// parseAttendance parses a raw attendance cell into a non-negative count.
func parseAttendance(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}

	// Some exports render counts as floats ("23.0").
	if f, err := strconv.ParseFloat(raw, 64); err == nil && f >= 0 {
		return int(f), true
	}

	return 0, false
}

// lowerTrim normalizes a raw header for alias lookup.
func lowerTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
