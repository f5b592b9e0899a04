package config

import (
	"os"
	"path/filepath"
)

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "libretype", "config.toml")
}

// DefaultBooksDir returns the directory scanned for book texts, one
// subdirectory per language.
func DefaultBooksDir() string {
	return filepath.Join(XDGDataHome(), "libretype", "books")
}

// DefaultCatalogPath returns the path of the library catalog database.
func DefaultCatalogPath() string {
	return filepath.Join(XDGDataHome(), "libretype", "catalog.db")
}

// DefaultLogPath returns the session log file path.
func DefaultLogPath() string {
	return filepath.Join(XDGDataHome(), "libretype", "libretype.log")
}
