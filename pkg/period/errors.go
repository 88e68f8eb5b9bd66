package period

import "errors"

// Common errors returned by the period package.
var (
	// ErrMalformedWeekLabel is returned when a weekly label cannot be
	// resolved to a real ISO week.
	ErrMalformedWeekLabel = errors.New("malformed week label")
)
