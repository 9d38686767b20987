// internal/config/load_test.go
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "write config")
	return path
}

func TestLoad_TOML(t *testing.T) {
	path := writeConfig(t, "extsort.toml", `
[log]
level = "DEBUG"

[sort]
workers = 4
dry_run = true

[history]
path = "/var/lib/extsort/history.db"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 4, cfg.Sort.Workers)
	assert.True(t, cfg.Sort.DryRun)
	assert.Equal(t, "/var/lib/extsort/history.db", cfg.History.Path)
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "extsort.yaml", `
log:
  level: warn
sort:
  workers: 0
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 0, cfg.Sort.Workers, "explicit zero means unbounded")
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, "extsort.toml", "[history]\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 32, cfg.Sort.Workers)
	assert.False(t, cfg.Sort.DryRun)
	assert.Empty(t, cfg.History.Path)
}

func TestLoad_EnvSubstitution(t *testing.T) {
	t.Setenv("EXTSORT_TEST_HISTORY", "/tmp/h.db")
	path := writeConfig(t, "extsort.toml", `
[history]
path = "${EXTSORT_TEST_HISTORY}"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/h.db", cfg.History.Path)
}

func TestLoad_MissingEnvVar(t *testing.T) {
	path := writeConfig(t, "extsort.toml", `
[history]
path = "${EXTSORT_TEST_NONEXISTENT_VAR_98765}"
`)

	_, err := Load(path)
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr), "expected ConfigError, got %T", err)
	assert.Equal(t, []string{"EXTSORT_TEST_NONEXISTENT_VAR_98765"}, cfgErr.Missing)
}

func TestLoad_ValidationError(t *testing.T) {
	path := writeConfig(t, "extsort.toml", `
[sort]
workers = -1
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "sort.workers"), "got %v", err)
}

func TestLoad_InvalidSyntax(t *testing.T) {
	path := writeConfig(t, "extsort.toml", "[sort\nworkers = ")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 32, cfg.Sort.Workers)
	assert.Empty(t, cfg.Validate())
}
