// Package runlock keeps two sort runs from writing into the same output
// directory at once.
package runlock

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked indicates another process holds the lock for an output directory.
var ErrLocked = errors.New("another run is writing to this output directory")

// Lock is an advisory, process-wide lock on one output directory.
// The lock file lives outside the output tree so the output layout is
// never touched.
type Lock struct {
	flock  *flock.Flock
	output string
}

// PathFor returns the lock file used for output, inside dir.
func PathFor(dir, output string) (string, error) {
	abs, err := filepath.Abs(output)
	if err != nil {
		return "", fmt.Errorf("resolve output: %w", err)
	}
	sum := sha256.Sum256([]byte(filepath.Clean(abs)))
	return filepath.Join(dir, "extsort-"+hex.EncodeToString(sum[:8])+".lock"), nil
}

// Acquire takes the lock for output without blocking. It returns an error
// wrapping ErrLocked when another run holds it.
func Acquire(dir, output string) (*Lock, error) {
	path, err := PathFor(dir, output)
	if err != nil {
		return nil, err
	}

	fl := flock.New(path)
	acquired, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to try lock on %s: %w", path, err)
	}
	if !acquired {
		return nil, fmt.Errorf("%w: %s", ErrLocked, output)
	}

	return &Lock{flock: fl, output: output}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.flock.Path()
}

// Release frees the lock.
func (l *Lock) Release() error {
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", l.output, err)
	}
	return nil
}
