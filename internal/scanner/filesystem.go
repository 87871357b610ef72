package scanner

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
)

// FileSystemScanner implements Scanner interface for filesystem scanning
type FileSystemScanner struct {
	exclusions Exclusions
}

// NewFileSystemScanner creates a new filesystem scanner that skips the
// packaging directory and the default exclusions
func NewFileSystemScanner(packagingDir string, extra ...string) *FileSystemScanner {
	return &FileSystemScanner{
		exclusions: NewExclusions(packagingDir, extra...),
	}
}

// Discover lists the plugin directories directly below dir
func (s *FileSystemScanner) Discover(ctx context.Context, dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var plugins []string
	for _, entry := range entries {
		// Check context cancellation
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		ok, err := s.IsPlugin(dir, entry.Name())
		if err != nil {
			logrus.Warnf("Failed to inspect %s: %v", entry.Name(), err)
			continue
		}
		if !ok {
			continue
		}

		logrus.Debugf("Found plugin: %s", entry.Name())
		plugins = append(plugins, entry.Name())
	}

	sort.Strings(plugins)

	logrus.Infof("Found %d plugins in %s", len(plugins), dir)
	return plugins, nil
}

// IsPlugin determines whether an entry of dir is a plugin directory
func (s *FileSystemScanner) IsPlugin(dir, name string) (bool, error) {
	return DetectPlugin(dir, name, s.exclusions)
}
