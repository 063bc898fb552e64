// Package cache provides cache directory resolution for electripy.
//
// Priority order: --cache-dir flag > ELECTRIPY_CACHE_DIR env > ~/.electripy default.
package cache

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvVar overrides the default cache root.
const EnvVar = "ELECTRIPY_CACHE_DIR"

var global struct {
	cacheDir string
}

// SetCacheDir sets an override for the cache directory.
// This is typically called when parsing the --cache-dir flag.
func SetCacheDir(dir string) {
	global.cacheDir = dir
}

// Root returns the cache root directory.
// Priority: --cache-dir flag > ELECTRIPY_CACHE_DIR env > ~/.electripy default.
func Root() (string, error) {
	if global.cacheDir != "" {
		return global.cacheDir, nil
	}

	if envDir := os.Getenv(EnvVar); envDir != "" {
		return envDir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}

	return filepath.Join(home, ".electripy"), nil
}

// AssetsDB returns the path of the fetched-asset database.
// Returns: <cache_root>/assets.db
func AssetsDB() (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "assets.db"), nil
}
