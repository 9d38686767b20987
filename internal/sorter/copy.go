// internal/sorter/copy.go
package sorter

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
)

// tempPrefix names in-progress copies inside an extension folder.
const tempPrefix = ".extsort-"

// CopyFile copies from on src to to on dst, replacing any existing file.
// It stats the source first; use Copy for a Task planned during a walk.
func CopyFile(src billy.Filesystem, from string, dst billy.Filesystem, to string) (int64, error) {
	info, err := src.Stat(from)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, fmt.Errorf("%w: %w", ErrSourceVanished, err)
		}
		return 0, fmt.Errorf("%w: stat source: %w", ErrCopyFailed, err)
	}

	file := SourceFile{
		Path:    from,
		Name:    filepath.Base(from),
		Size:    info.Size(),
		Mode:    info.Mode(),
		ModTime: info.ModTime(),
	}
	return Copy(src, dst, Task{Source: file, Folder: filepath.Dir(to), Target: to})
}

// Copy executes task, replacing any existing file at task.Target.
// Creates task.Folder if it doesn't exist; concurrent callers may race on
// the same folder safely.
//
// Content is written to a temporary file inside task.Folder and renamed into
// place, so readers never see a partial file and concurrent writers to the
// same target leave exactly one complete copy behind.
// The permission bits and modification time captured when the source was
// discovered are applied when dst supports it. The source is not re-checked
// before opening.
func Copy(src, dst billy.Filesystem, task Task) (int64, error) {
	// Create destination directory
	if err := dst.MkdirAll(task.Folder, 0755); err != nil {
		return 0, fmt.Errorf("%w: create directory: %w", ErrCopyFailed, err)
	}

	// Open source
	srcFile, err := src.Open(task.Source.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, fmt.Errorf("%w: %w", ErrSourceVanished, err)
		}
		return 0, fmt.Errorf("%w: open source: %w", ErrCopyFailed, err)
	}
	defer func() { _ = srcFile.Close() }()

	tmp, err := dst.TempFile(task.Folder, tempPrefix)
	if err != nil {
		return 0, fmt.Errorf("%w: create temp file: %w", ErrCopyFailed, err)
	}
	tmpName := tmp.Name()

	// Copy content
	size, err := io.Copy(tmp, srcFile)
	if err != nil {
		// Clean up partial file on error
		_ = tmp.Close()
		_ = dst.Remove(tmpName)
		return 0, fmt.Errorf("%w: copy content: %w", ErrCopyFailed, err)
	}

	if err := tmp.Close(); err != nil {
		_ = dst.Remove(tmpName)
		return 0, fmt.Errorf("%w: close temp file: %w", ErrCopyFailed, err)
	}

	if err := copyMetadata(dst, tmpName, task.Source); err != nil {
		_ = dst.Remove(tmpName)
		return 0, fmt.Errorf("%w: preserve metadata: %w", ErrCopyFailed, err)
	}

	if err := dst.Rename(tmpName, task.Target); err != nil {
		_ = dst.Remove(tmpName)
		return 0, fmt.Errorf("%w: rename into place: %w", ErrCopyFailed, err)
	}

	return size, nil
}

func copyMetadata(dst billy.Filesystem, name string, file SourceFile) error {
	m, ok := dst.(metadataFS)
	if !ok {
		return nil
	}
	if file.Mode != 0 {
		if err := m.Chmod(name, file.Mode.Perm()); err != nil {
			return err
		}
	}
	if file.ModTime.IsZero() {
		return nil
	}
	return m.Chtimes(name, file.ModTime, file.ModTime)
}
