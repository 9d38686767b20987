// internal/config/validate.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}

	if c.Sort.Workers < 0 {
		errs = append(errs, fmt.Sprintf("sort.workers: must be 0 (unbounded) or positive, got %d", c.Sort.Workers))
	}

	if c.History.Path != "" {
		if info, err := os.Stat(c.History.Path); err == nil && info.IsDir() {
			errs = append(errs, fmt.Sprintf("history.path: %q is a directory", c.History.Path))
		}
		if dir := filepath.Dir(c.History.Path); dir != "." {
			if info, err := os.Stat(dir); err == nil && !info.IsDir() {
				errs = append(errs, fmt.Sprintf("history.path: parent %q is not a directory", dir))
			}
		}
	}

	return errs
}
