// Package sorter copies every regular file of a source tree into folders
// named after each file's extension.
package sorter

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// UnknownLabel is the folder used for files without an extension.
const UnknownLabel = "unknown"

// SourceFile is a regular file discovered under the source root.
type SourceFile struct {
	// Path is relative to the source filesystem root.
	Path string

	// Name is the base name, copied unchanged to the destination.
	Name string

	Size    int64
	Mode    os.FileMode
	ModTime time.Time
}

// Label returns the extension label for the file.
func (f SourceFile) Label() string {
	return ExtensionLabel(f.Name)
}

// Task is a planned copy of one SourceFile. Folder and Target are relative
// to the destination filesystem root.
type Task struct {
	Source SourceFile
	Folder string
	Target string
}

// ExtensionLabel returns the text after the last dot of name, or
// UnknownLabel when there is no dot or nothing follows it.
// Case is preserved: "photo.JPG" yields "JPG". A leading dot counts like any
// other, so ".bashrc" yields "bashrc" while "." and "notes." yield UnknownLabel.
func ExtensionLabel(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 || i == len(name)-1 {
		return UnknownLabel
	}
	return name[i+1:]
}

// Resolve computes where file lands under outputRoot:
// outputRoot/<label>/<name>. Names are never rewritten, so files sharing a
// name and label collide and the last write wins.
func Resolve(file SourceFile, outputRoot string) Task {
	folder := filepath.Join(outputRoot, file.Label())
	return Task{
		Source: file,
		Folder: folder,
		Target: filepath.Join(folder, file.Name),
	}
}
