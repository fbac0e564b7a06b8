// Package discovery enumerates registry data files under the category
// directories.
package discovery

import (
	"errors"
	"io/fs"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Options controls a discovery walk.
type Options struct {
	// Root is the directory the category names are resolved against.
	Root string
	// Categories are visited once each, in order. Missing ones are skipped.
	Categories []string
	// Extensions are exact, case-sensitive file name suffixes (e.g. ".yaml").
	Extensions []string
	// Logger receives warnings for unreadable subtrees. Nil means slog.Default().
	Logger *slog.Logger
}

// Files returns a lazy sequence of data file paths. Paths are Root joined
// with the category and the path inside it. Category order is preserved;
// within a category files follow filepath.WalkDir order.
//
// Unreadable directories are logged and skipped rather than reported, so a
// permission problem deep in one category never hides the remaining files.
func Files(opts Options) iter.Seq[string] {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return func(yield func(string) bool) {
		for _, category := range opts.Categories {
			dir := filepath.Join(opts.Root, category)
			info, err := os.Stat(dir)
			if err != nil || !info.IsDir() {
				logger.Debug("skipping category", "dir", dir)
				continue
			}

			stopped := false
			walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					logger.Warn("skipping unreadable path", "path", path, "error", err)
					if d != nil && d.IsDir() {
						return fs.SkipDir
					}
					return nil
				}
				if d.IsDir() || !HasExtension(d.Name(), opts.Extensions) {
					return nil
				}
				if !yield(path) {
					stopped = true
					return fs.SkipAll
				}
				return nil
			})
			if walkErr != nil && !errors.Is(walkErr, fs.SkipAll) {
				logger.Warn("walk aborted", "dir", dir, "error", walkErr)
			}
			if stopped {
				return
			}
		}
	}
}

// HasExtension reports whether name ends with one of exts (case-sensitive).
func HasExtension(name string, exts []string) bool {
	for _, ext := range exts {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
