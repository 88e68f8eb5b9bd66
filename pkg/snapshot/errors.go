package snapshot

import "errors"

// Common errors returned by the snapshot package.
var (
	// ErrNoFiles is returned when discovery finds no data files at all.
	ErrNoFiles = errors.New("no data files to load")

	// ErrAllFilesFailed is returned when every discovered file failed
	// to ingest.
	ErrAllFilesFailed = errors.New("all data files failed to ingest")
)
