package scanner

import (
	"os"
	"path/filepath"
)

// Exclusions is the set of directory names that are never plugins
type Exclusions map[string]struct{}

// NewExclusions builds the exclusion set for a packaging directory
func NewExclusions(packagingDir string, extra ...string) Exclusions {
	ex := make(Exclusions, len(DefaultExcludes)+len(extra)+1)
	ex[packagingDir] = struct{}{}
	for _, name := range DefaultExcludes {
		ex[name] = struct{}{}
	}
	for _, name := range extra {
		if name != "" {
			ex[name] = struct{}{}
		}
	}
	return ex
}

// Contains reports whether name is excluded
func (e Exclusions) Contains(name string) bool {
	_, ok := e[name]
	return ok
}

// DetectPlugin determines whether baseDir/name is a plugin directory.
// Symlinks are followed.
func DetectPlugin(baseDir, name string, exclusions Exclusions) (bool, error) {
	if exclusions.Contains(name) {
		return false, nil
	}

	info, err := os.Stat(filepath.Join(baseDir, name))
	if err != nil {
		return false, err
	}

	return info.IsDir(), nil
}
