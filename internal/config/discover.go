// internal/config/discover.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultPath returns the XDG-compliant default config path.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./extsort.toml"
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "extsort", "config.toml")
}

// DefaultHistoryPath returns the XDG-compliant default history database path.
func DefaultHistoryPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./extsort.db"
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "extsort", "history.db")
}

// Discover finds the config file using the standard search order.
// Search order:
//  1. EXTSORT_CONFIG environment variable
//  2. ./extsort.toml (current directory)
//  3. $XDG_CONFIG_HOME/extsort/config.toml
//  4. /etc/extsort/config.toml
//
// Returns an error wrapping ErrNotFound when none exist.
func Discover() (string, error) {
	// 1. Check EXTSORT_CONFIG env var
	if envPath := os.Getenv("EXTSORT_CONFIG"); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("EXTSORT_CONFIG=%s: %w", envPath, err)
		}
		return envPath, nil
	}

	paths := []string{
		"./extsort.toml",
		DefaultPath(),
		"/etc/extsort/config.toml",
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w, checked: %s", ErrNotFound, strings.Join(paths, ", "))
}
