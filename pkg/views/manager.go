package views

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/parivaar/kutir-report/pkg/logger"
	bolt "go.etcd.io/bbolt"
)

// bucketViews maps view name -> JSON-encoded View.
var bucketViews = []byte("report_views")

// manager implements the Manager interface using BoltDB.
type manager struct {
	db     *bolt.DB
	logger logger.Logger
	config Config
}

// New creates a new view manager.
//
// Parameters:
//   - cfg: Manager configuration
//   - log: Logger instance
//
// Returns:
//   - Configured Manager
//   - Error if database cannot be opened
func New(cfg Config, log logger.Logger) (Manager, error) {
	// Set default timeout.
	if cfg.Timeout == 0 {
		cfg.Timeout = time.Second
	}

	// Expand home directory in path.
	dbPath := expandHome(cfg.DBPath)

	// Create directory if it doesn't exist.
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database.
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Initialize bucket.
	if err := db.Update(func(tx *bolt.Tx) error {
		if _, createErr := tx.CreateBucketIfNotExists(bucketViews); createErr != nil {
			return fmt.Errorf("failed to create views bucket: %w", createErr)
		}
		return nil
	}); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("failed to close database after initialization error",
				"error", closeErr)
		}
		return nil, err
	}

	log.Info("view manager initialized", "db_path", dbPath)

	return &manager{
		db:     db,
		logger: log,
		config: cfg,
	}, nil
}

// Save implements Manager.Save.
func (m *manager) Save(view *View) error {
	if view == nil || view.Name == "" {
		return ErrEmptyName
	}

	return m.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketViews)

		// Preserve creation time on overwrite.
		now := time.Now()
		view.UpdatedAt = now
		view.CreatedAt = now
		if existing := bucket.Get([]byte(view.Name)); existing != nil {
			var prior View
			if err := json.Unmarshal(existing, &prior); err == nil {
				view.CreatedAt = prior.CreatedAt
			}
		}

		data, err := json.Marshal(view)
		if err != nil {
			return fmt.Errorf("failed to marshal view: %w", err)
		}

		if err := bucket.Put([]byte(view.Name), data); err != nil {
			return fmt.Errorf("failed to store view: %w", err)
		}

		m.logger.Info("view saved",
			"name", view.Name,
			"granularity", view.Granularity)

		return nil
	})
}

// Get implements Manager.Get.
func (m *manager) Get(name string) (*View, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	var view *View

	err := m.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketViews)

		data := bucket.Get([]byte(name))
		if data == nil {
			return ErrViewNotFound
		}

		var v View
		if unmarshalErr := json.Unmarshal(data, &v); unmarshalErr != nil {
			return fmt.Errorf("failed to unmarshal view: %w", unmarshalErr)
		}

		view = &v
		return nil
	})

	if err != nil {
		return nil, err
	}

	return view, nil
}

// List implements Manager.List.
func (m *manager) List() ([]View, error) {
	views := make([]View, 0, 10)

	err := m.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketViews)

		return bucket.ForEach(func(key, data []byte) error {
			var v View
			if unmarshalErr := json.Unmarshal(data, &v); unmarshalErr != nil {
				m.logger.Warn("skipping corrupt view entry",
					"name", string(key),
					"error", unmarshalErr)
				return nil
			}
			views = append(views, v)
			return nil
		})
	})

	if err != nil {
		return nil, err
	}

	sort.Slice(views, func(i, j int) bool {
		return views[i].Name < views[j].Name
	})

	return views, nil
}

// Delete implements Manager.Delete.
func (m *manager) Delete(name string) error {
	if name == "" {
		return ErrEmptyName
	}

	return m.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketViews)

		if bucket.Get([]byte(name)) == nil {
			return ErrViewNotFound
		}

		if err := bucket.Delete([]byte(name)); err != nil {
			return fmt.Errorf("failed to delete view: %w", err)
		}

		m.logger.Info("view deleted", "name", name)

		return nil
	})
}

// DB implements Manager.DB.
func (m *manager) DB() *bolt.DB {
	return m.db
}

// Close implements Manager.Close.
func (m *manager) Close() error {
	return m.db.Close()
}

// expandHome expands a leading ~ to the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
