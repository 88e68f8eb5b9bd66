package monitor

import "errors"

// Common errors returned by the monitor package.
var (
	// ErrMonitorClosed is returned when operating on a closed monitor.
	ErrMonitorClosed = errors.New("monitor is closed")

	// ErrMonitorRunning is returned when Start is called twice.
	ErrMonitorRunning = errors.New("monitor already running")

	// ErrNotRunning is returned when Stop is called before Start.
	ErrNotRunning = errors.New("monitor not running")
)
