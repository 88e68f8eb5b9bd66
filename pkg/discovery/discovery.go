// Package discovery locates attendance CSV exports under the
// configured data directories.
//
// Exports land either directly in a data directory or in one level of
// subdirectory (state or district folders); both layouts are scanned.
//
// Example usage:
//
//	d := discovery.New([]string{"./data"}, logger.Default())
//	files, err := d.Discover()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, f := range files {
//	    fmt.Printf("export: %s (%d bytes)\n", f.Path, f.Size)
//	}
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Logger defines the logging interface used by the discovery package.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// DataFile represents a discovered attendance CSV export.
type DataFile struct {
	// Path is the absolute or configured-relative path to the file.
	Path string

	// Dir is the directory containing the file.
	Dir string

	// Size is the file size in bytes.
	Size int64

	// ModTime is the last modification time as a Unix timestamp.
	ModTime int64
}

// Discoverer finds attendance data files.
type Discoverer interface {
	// Discover scans the configured directories and returns all CSV
	// exports found.
	//
	// Missing directories are skipped with a warning; other access
	// errors fail the scan.
	Discover() ([]DataFile, error)

	// DiscoverDir returns the CSV exports in a specific directory.
	DiscoverDir(dir string) ([]DataFile, error)
}

// discoverer implements the Discoverer interface.
type discoverer struct {
	baseDirs []string
	logger   Logger
}

// New creates a new Discoverer instance.
//
// Parameters:
//   - baseDirs: Data directories to scan
//   - logger: Logger instance for diagnostics
//
// Returns a configured Discoverer.
func New(baseDirs []string, logger Logger) Discoverer {
	return &discoverer{
		baseDirs: baseDirs,
		logger:   logger,
	}
}

// Discover implements Discoverer.Discover.
func (d *discoverer) Discover() ([]DataFile, error) {
	var all []DataFile

	for _, baseDir := range d.baseDirs {
		expanded := expandHome(baseDir)

		if _, err := os.Stat(expanded); err != nil {
			if os.IsNotExist(err) {
				d.logger.Warn("data directory not found, skipping", "path", expanded)
				continue
			}
			return nil, fmt.Errorf("failed to stat directory %s: %w", expanded, err)
		}

		files, err := d.scanDir(expanded, true)
		if err != nil {
			return nil, fmt.Errorf("failed to scan directory %s: %w", expanded, err)
		}

		all = append(all, files...)
	}

	d.logger.Info("discovery complete", "files", len(all))
	return all, nil
}

// DiscoverDir implements Discoverer.DiscoverDir.
func (d *discoverer) DiscoverDir(dir string) ([]DataFile, error) {
	expanded := expandHome(dir)

	if _, err := os.Stat(expanded); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDirNotFound, expanded)
		}
		return nil, fmt.Errorf("failed to stat directory %s: %w", expanded, err)
	}

	return d.scanDir(expanded, false)
}

// scanDir collects CSV files in dir; with descend set, one level of
// subdirectories is scanned too.
func (d *discoverer) scanDir(dir string, descend bool) ([]DataFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	files := make([]DataFile, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() {
			if !descend {
				continue
			}
			sub, subErr := d.scanDir(filepath.Join(dir, entry.Name()), false)
			if subErr != nil {
				d.logger.Warn("failed to scan subdirectory",
					"path", filepath.Join(dir, entry.Name()),
					"error", subErr)
				continue
			}
			files = append(files, sub...)
			continue
		}

		if !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			d.logger.Debug("skipping non-csv file", "file", entry.Name())
			continue
		}

		info, infoErr := entry.Info()
		if infoErr != nil {
			d.logger.Warn("failed to get file info",
				"path", filepath.Join(dir, entry.Name()),
				"error", infoErr)
			continue
		}

		files = append(files, DataFile{
			Path:    filepath.Join(dir, entry.Name()),
			Dir:     dir,
			Size:    info.Size(),
			ModTime: info.ModTime().Unix(),
		})
	}

	d.logger.Debug("scanned directory", "path", dir, "files_found", len(files))
	return files, nil
}

// expandHome expands ~ in file paths to the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	if path == "~" {
		return homeDir
	}

	return filepath.Join(homeDir, path[2:])
}
