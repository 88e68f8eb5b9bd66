package config

import "errors"

// Common errors returned by the config package.
var (
	// ErrNoDataDirs is returned when no data directories are specified.
	ErrNoDataDirs = errors.New("no data directories specified")

	// ErrInvalidDebounce is returned when the watch debounce is <= 0.
	ErrInvalidDebounce = errors.New("invalid watch debounce: must be > 0")

	// ErrInvalidDisplayFormat is returned when the display format is not recognized.
	ErrInvalidDisplayFormat = errors.New("invalid display format: must be table, json, simple, or csv")

	// ErrInvalidMaxWidth is returned when the display width is negative.
	ErrInvalidMaxWidth = errors.New("invalid max width: must be >= 0")

	// ErrInvalidLogLevel is returned when the log level is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level: must be debug, info, warn, or error")

	// ErrInvalidLogFormat is returned when the log format is not recognized.
	ErrInvalidLogFormat = errors.New("invalid log format: must be text or json")

	// ErrConfigNotFound is returned when the config file is not found.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrInvalidYAML is returned when the config file has invalid YAML syntax.
	ErrInvalidYAML = errors.New("invalid YAML syntax in config file")
)
