// Package testutil builds plugin trees on disk for tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteFile writes content to base/rel, creating parent directories
func WriteFile(t *testing.T, base, rel, content string) string {
	t.Helper()

	path := filepath.Join(base, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// WritePlugin creates base/name with the given files (name -> content)
func WritePlugin(t *testing.T, base, name string, files map[string]string) string {
	t.Helper()

	dir := filepath.Join(base, name)
	require.NoError(t, os.MkdirAll(dir, 0755))
	for file, content := range files {
		WriteFile(t, dir, file, content)
	}
	return dir
}

// ReadFile returns the content of base/rel
func ReadFile(t *testing.T, base, rel string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(base, rel))
	require.NoError(t, err)
	return string(data)
}
