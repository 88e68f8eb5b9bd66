package discovery

import "errors"

// Common errors returned by the discovery package.
var (
	// ErrDirNotFound is returned when a data directory does not exist.
	ErrDirNotFound = errors.New("data directory not found")

	// ErrNoFilesFound is returned when no data files are discovered.
	ErrNoFilesFound = errors.New("no data files found")
)
