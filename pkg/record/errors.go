package record

import (
	"errors"
	"fmt"
)

// Common errors returned by the record package.
var (
	// ErrInvalidDate is returned when a record has a zero date.
	ErrInvalidDate = errors.New("invalid date: must not be zero")

	// ErrNegativeAttendance is returned when a record has a negative
	// attendance count.
	ErrNegativeAttendance = errors.New("invalid attendance: must be non-negative")

	// ErrEmptyFile is returned when a CSV file has no header row.
	ErrEmptyFile = errors.New("empty file: no header row")
)

// MissingColumnError is returned when a required canonical column
// cannot be resolved from the raw headers.
type MissingColumnError struct {
	Column  string   // Canonical column name that failed to resolve
	Headers []string // Raw headers seen in the file
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("required column %q not found in headers %v", e.Column, e.Headers)
}
