// Package watcher provides file system monitoring of attendance data
// directories.
//
// It uses fsnotify to watch for new or re-exported CSV files and
// debounces rapid event bursts so one spreadsheet save triggers one
// reload, not dozens.
//
// Example usage:
//
//	w, err := watcher.New(watcher.Config{
//	    Debounce: 300 * time.Millisecond,
//	}, logger.Default())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Close()
//
//	if err := w.Start(ctx, []string{"./data"}); err != nil {
//	    log.Fatal(err)
//	}
//
//	for event := range w.Events() {
//	    fmt.Printf("data file %s: %s\n", event.Path, event.Op)
//	}
package watcher

import (
	"context"
	"time"
)

// Op describes a file operation type.
type Op uint32

// File operation types.
const (
	OpCreate Op = 1 << iota // File created
	OpWrite                 // File modified
	OpRemove                // File deleted
	OpRename                // File renamed/moved
)

// String returns a human-readable operation name.
func (op Op) String() string {
	switch op {
	case OpCreate:
		return "CREATE"
	case OpWrite:
		return "WRITE"
	case OpRemove:
		return "REMOVE"
	case OpRename:
		return "RENAME"
	default:
		return "UNKNOWN"
	}
}

// Event represents a data file change.
type Event struct {
	// Path is the path of the CSV file that changed.
	Path string

	// Op is the operation that triggered the event.
	Op Op

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// Watcher provides data directory monitoring.
type Watcher interface {
	// Start begins watching the specified directories.
	//
	// Parameters:
	//   - ctx: Context for cancellation
	//   - paths: Directories to watch (subdirectories included)
	//
	// Returns error if watching cannot be started. The event loop runs
	// in the background until the context is cancelled or Stop is called.
	Start(ctx context.Context, paths []string) error

	// Stop gracefully shuts down the event loop.
	Stop() error

	// Events returns the channel for receiving debounced file events.
	//
	// The channel is closed when the watcher is closed.
	Events() <-chan Event

	// Errors returns the channel for receiving non-fatal watcher errors.
	Errors() <-chan error

	// Close releases watcher resources.
	Close() error
}

// Config contains watcher configuration.
type Config struct {
	// Debounce is the time to wait before emitting an event. Multiple
	// events for the same file within this window coalesce into one.
	// Default: 300ms.
	Debounce time.Duration
}
