package sorter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtensionLabel(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"photo.jpg", "jpg"},
		{"photo.JPG", "JPG"},
		{"archive.tar.gz", "gz"},
		{"README", UnknownLabel},
		{"trailing.", UnknownLabel},
		{".", UnknownLabel},
		{".bashrc", "bashrc"},
		{"..", UnknownLabel},
		{"notes.v2.md", "md"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtensionLabel(tt.name))
		})
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		file       SourceFile
		wantFolder string
		wantTarget string
	}{
		{
			name:       "simple extension",
			file:       SourceFile{Path: "docs/report.pdf", Name: "report.pdf"},
			wantFolder: filepath.Join("/out", "pdf"),
			wantTarget: filepath.Join("/out", "pdf", "report.pdf"),
		},
		{
			name:       "last dot only",
			file:       SourceFile{Path: "a/b/archive.tar.gz", Name: "archive.tar.gz"},
			wantFolder: filepath.Join("/out", "gz"),
			wantTarget: filepath.Join("/out", "gz", "archive.tar.gz"),
		},
		{
			name:       "no extension",
			file:       SourceFile{Path: "README", Name: "README"},
			wantFolder: filepath.Join("/out", "unknown"),
			wantTarget: filepath.Join("/out", "unknown", "README"),
		},
		{
			name:       "subdirectory is dropped",
			file:       SourceFile{Path: "x/y/z/a.txt", Name: "a.txt"},
			wantFolder: filepath.Join("/out", "txt"),
			wantTarget: filepath.Join("/out", "txt", "a.txt"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := Resolve(tt.file, "/out")
			assert.Equal(t, tt.wantFolder, task.Folder)
			assert.Equal(t, tt.wantTarget, task.Target)
			assert.Equal(t, tt.file, task.Source)
		})
	}
}

func TestNestedOutput(t *testing.T) {
	src := t.TempDir()

	rel, ok := NestedOutput(src, filepath.Join(src, "sorted"))
	assert.True(t, ok)
	assert.Equal(t, "sorted", rel)

	_, ok = NestedOutput(src, src)
	assert.False(t, ok, "same directory is not nested")

	_, ok = NestedOutput(filepath.Join(src, "in"), filepath.Join(src, "out"))
	assert.False(t, ok, "sibling is not nested")

	_, ok = NestedOutput(filepath.Join(src, "in"), src)
	assert.False(t, ok, "parent is not nested")
}
