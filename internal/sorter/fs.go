package sorter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// metadataFS is implemented by filesystems that can carry permission bits
// and modification times over to a copied file.
type metadataFS interface {
	Chmod(name string, mode os.FileMode) error
	Chtimes(name string, atime, mtime time.Time) error
}

// hostFS is an OS directory exposed as a billy filesystem, extended with
// metadata support.
type hostFS struct {
	billy.Filesystem
	root string
}

// Dir returns a filesystem rooted at the OS directory root. The directory
// does not need to exist yet; it is created on first write.
func Dir(root string) billy.Filesystem {
	return &hostFS{
		Filesystem: osfs.New(root),
		root:       root,
	}
}

func (h *hostFS) Chmod(name string, mode os.FileMode) error {
	return os.Chmod(filepath.Join(h.root, name), mode)
}

func (h *hostFS) Chtimes(name string, atime, mtime time.Time) error {
	return os.Chtimes(filepath.Join(h.root, name), atime, mtime)
}

// CheckSource verifies that path exists and is a directory.
func CheckSource(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return fmt.Errorf("stat source: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrSourceNotDir, path)
	}
	return nil
}

// NestedOutput returns the output directory relative to source when output
// lies inside source, so a walk can skip it.
func NestedOutput(source, output string) (string, bool) {
	absSource, err := filepath.Abs(source)
	if err != nil {
		return "", false
	}
	absOutput, err := filepath.Abs(output)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(absSource, absOutput)
	if err != nil || rel == "." || rel == ".." ||
		strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}

// displayPath joins a filesystem-relative path with the filesystem root.
func displayPath(fsys billy.Filesystem, name string) string {
	return filepath.Join(fsys.Root(), name)
}
