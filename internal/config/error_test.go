// internal/config/error_test.go
package config

import (
	"strings"
	"testing"
)

func TestConfigError_Error_Empty(t *testing.T) {
	e := &ConfigError{Path: "/etc/extsort/config.toml"}
	if got := e.Error(); got != "" {
		t.Errorf("expected empty string for no errors, got %q", got)
	}
	if e.HasErrors() {
		t.Error("HasErrors should be false")
	}
}

func TestConfigError_Error_MissingVars(t *testing.T) {
	e := &ConfigError{
		Path:    "/etc/extsort/config.toml",
		Missing: []string{"HISTORY_DB", "OTHER"},
	}
	got := e.Error()
	if !strings.Contains(got, "/etc/extsort/config.toml") {
		t.Errorf("expected path in error, got %q", got)
	}
	if !strings.Contains(got, "HISTORY_DB, OTHER") {
		t.Errorf("expected var names in error, got %q", got)
	}
}

func TestConfigError_Error_ValidationErrors(t *testing.T) {
	e := &ConfigError{
		Path:   "extsort.toml",
		Errors: []string{"sort.workers: must be 0 (unbounded) or positive, got -2", "log.level: bad"},
	}
	got := e.Error()
	if !strings.Contains(got, "  - sort.workers") || !strings.Contains(got, "  - log.level") {
		t.Errorf("expected each validation error listed, got %q", got)
	}
	if !e.HasErrors() {
		t.Error("HasErrors should be true")
	}
}
