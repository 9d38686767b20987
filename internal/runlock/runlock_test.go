package runlock

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathFor_Stable(t *testing.T) {
	dir := t.TempDir()

	a, err := PathFor(dir, "/data/out")
	require.NoError(t, err)
	b, err := PathFor(dir, "/data/out/")
	require.NoError(t, err)
	c, err := PathFor(dir, "/data/other")
	require.NoError(t, err)

	assert.Equal(t, a, b, "trailing separator must not matter")
	assert.NotEqual(t, a, c)
	assert.Equal(t, dir, filepath.Dir(a))
}

func TestAcquire_Exclusive(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(t.TempDir(), "out")

	first, err := Acquire(dir, output)
	require.NoError(t, err)

	_, err = Acquire(dir, output)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLocked)

	require.NoError(t, first.Release())

	again, err := Acquire(dir, output)
	require.NoError(t, err, "lock must be reusable after release")
	assert.NoError(t, again.Release())
}

func TestAcquire_DifferentOutputs(t *testing.T) {
	dir := t.TempDir()

	a, err := Acquire(dir, filepath.Join(t.TempDir(), "a"))
	require.NoError(t, err)
	defer func() { _ = a.Release() }()

	b, err := Acquire(dir, filepath.Join(t.TempDir(), "b"))
	require.NoError(t, err, "different outputs must not contend")
	defer func() { _ = b.Release() }()

	assert.NotEqual(t, a.Path(), b.Path())
}
