// internal/config/validate_test.go
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func containsError(errs []string, substr string) bool {
	for _, e := range errs {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"unbounded workers", func(c *Config) { c.Sort.Workers = 0 }, ""},
		{"negative workers", func(c *Config) { c.Sort.Workers = -3 }, "sort.workers"},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }, "log.level"},
		{"empty log level", func(c *Config) { c.Log.Level = "" }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			errs := cfg.Validate()
			if tt.wantErr == "" {
				assert.Empty(t, errs)
				return
			}
			assert.True(t, containsError(errs, tt.wantErr), "expected %s error, got %v", tt.wantErr, errs)
		})
	}
}

func TestValidate_HistoryPathIsDirectory(t *testing.T) {
	cfg := Default()
	cfg.History.Path = t.TempDir()

	errs := cfg.Validate()
	assert.True(t, containsError(errs, "history.path"), "got %v", errs)
}

func TestValidate_HistoryParentIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	cfg := Default()
	cfg.History.Path = filepath.Join(file, "history.db")

	errs := cfg.Validate()
	assert.True(t, containsError(errs, "not a directory"), "got %v", errs)
}
