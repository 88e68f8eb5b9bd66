package views

import "errors"

var (
	// ErrViewNotFound indicates the named view does not exist.
	ErrViewNotFound = errors.New("view not found")

	// ErrEmptyName indicates a view with no name.
	ErrEmptyName = errors.New("view name is empty")
)
