package config

import (
	"os"
	"path/filepath"
)

// defaultDataDirs returns the default attendance data directories.
//
// Searches in order:
// 1. ./data (working copy exports)
// 2. ~/.local/share/kutir-report/data
//
// Returns all directories that exist; falls back to ./data when none do.
func defaultDataDirs() []string {
	candidates := []string{"./data"}

	if homeDir, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(homeDir, ".local", "share", "kutir-report", "data"))
	}

	var dirs []string
	for _, dir := range candidates {
		if _, err := os.Stat(dir); err == nil {
			dirs = append(dirs, dir)
		}
	}

	if len(dirs) == 0 {
		return []string{"./data"}
	}

	return dirs
}

// defaultDBPath returns the default database file path.
//
// Returns: ~/.config/kutir-report/kutir-report.db.
func defaultDBPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./kutir-report.db"
	}

	return filepath.Join(homeDir, ".config", "kutir-report", "kutir-report.db")
}

// defaultConfigPath returns the default configuration file path.
//
// Returns: ~/.config/kutir-report/config.yaml.
func defaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./config.yaml"
	}

	return filepath.Join(homeDir, ".config", "kutir-report", "config.yaml")
}
