// internal/sorter/errors.go
package sorter

import "errors"

var (
	// ErrSourceNotFound indicates the source root does not exist.
	ErrSourceNotFound = errors.New("source folder does not exist")

	// ErrSourceNotDir indicates the source root exists but is not a directory.
	ErrSourceNotDir = errors.New("source is not a directory")

	// ErrCopyFailed indicates the file copy operation failed.
	ErrCopyFailed = errors.New("failed to copy file")

	// ErrSourceVanished indicates the source file disappeared between discovery and copy.
	ErrSourceVanished = errors.New("source file vanished")
)
