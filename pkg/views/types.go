// Package views persists named report views.
//
// A view bundles the parameters of one report — granularity, filter,
// output format — under a memorable name, so field coordinators can
// rerun "indore-weekly" without retyping flags. Views are stored in
// BoltDB alongside the ingest fingerprints.
package views

import (
	"time"

	"github.com/parivaar/kutir-report/pkg/record"
	bolt "go.etcd.io/bbolt"
)

// View is one saved report definition.
type View struct {
	// Name is the unique view name.
	Name string `json:"name"`

	// Granularity is the period granularity ("daily", "weekly", ...).
	Granularity string `json:"granularity"`

	// Filter is the upstream record selection.
	Filter record.Filter `json:"filter"`

	// Format is the output format ("table", "json", "simple", "csv").
	Format string `json:"format"`

	// CreatedAt is when the view was first saved.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the view was last saved.
	UpdatedAt time.Time `json:"updated_at"`
}

// Manager provides CRUD over saved views.
type Manager interface {
	// Save creates or updates a view by name.
	//
	// Returns ErrEmptyName when the view has no name.
	Save(view *View) error

	// Get returns the view with the given name.
	//
	// Returns ErrViewNotFound when no such view exists.
	Get(name string) (*View, error)

	// List returns all views sorted by name.
	List() ([]View, error)

	// Delete removes the view with the given name.
	//
	// Returns ErrViewNotFound when no such view exists.
	Delete(name string) error

	// DB exposes the underlying database so other stores can share it.
	DB() *bolt.DB

	// Close releases the underlying database.
	Close() error
}

// Config contains view manager configuration.
type Config struct {
	// DBPath is the BoltDB file path.
	DBPath string

	// Timeout is the database open timeout.
	// Default: 1s.
	Timeout time.Duration
}
