package watcher

import "errors"

// Common errors returned by the watcher package.
var (
	// ErrWatcherClosed is returned when operating on a closed watcher.
	ErrWatcherClosed = errors.New("watcher is closed")

	// ErrAlreadyStarted is returned when Start is called twice.
	ErrAlreadyStarted = errors.New("watcher already started")

	// ErrNotStarted is returned when Stop is called before Start.
	ErrNotStarted = errors.New("watcher not started")

	// ErrNoWatchPaths is returned when none of the requested paths exist.
	ErrNoWatchPaths = errors.New("no watchable paths")
)
