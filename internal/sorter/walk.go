// internal/sorter/walk.go
package sorter

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// Walk calls fn once for every regular file reachable from root.
// Directories are descended into but never passed to fn, and directories
// listed in exclude (relative to the filesystem root) are pruned.
// Symbolic links are followed only far enough to see whether they point at a
// regular file. Unreadable entries below root are logged and skipped.
// Walking stops when ctx is canceled or fn returns an error.
func Walk(ctx context.Context, fsys billy.Filesystem, root string, exclude []string, log *slog.Logger, fn func(SourceFile) error) error {
	if log == nil {
		log = slog.Default()
	}

	skip := make(map[string]bool, len(exclude))
	for _, p := range exclude {
		skip[filepath.Clean(p)] = true
	}

	return util.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			if path == root {
				return err
			}
			log.Warn("skipping unreadable path", "path", displayPath(fsys, path), "error", err)
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() {
			if path != root && skip[filepath.Clean(path)] {
				log.Debug("skipping excluded directory", "path", displayPath(fsys, path))
				return filepath.SkipDir
			}
			return nil
		}

		if info.Mode()&os.ModeSymlink != 0 {
			target, err := fsys.Stat(path)
			if err != nil {
				log.Warn("skipping broken link", "path", displayPath(fsys, path), "error", err)
				return nil
			}
			info = target
		}

		if !info.Mode().IsRegular() {
			return nil
		}

		return fn(SourceFile{
			Path:    path,
			Name:    filepath.Base(path),
			Size:    info.Size(),
			Mode:    info.Mode(),
			ModTime: info.ModTime(),
		})
	})
}
