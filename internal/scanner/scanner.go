package scanner

import (
	"context"
	"iter"
)

// Directories that never contain a plugin, in addition to the packaging
// directory itself
var DefaultExcludes = []string{".git", ".pc", "redhat"}

// Scanner interface for discovering plugins below a base directory
type Scanner interface {
	// Discover returns the sorted names of all plugin directories in baseDir
	Discover(ctx context.Context, baseDir string) ([]string, error)

	// IsPlugin reports whether the named entry of baseDir is a plugin
	IsPlugin(baseDir, name string) (bool, error)
}

// All returns a restartable iterator over plugin names
func All(names []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, name := range names {
			if !yield(name) {
				return
			}
		}
	}
}
