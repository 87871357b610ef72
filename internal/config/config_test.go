package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/nagios-plugins-contrib/packaging-helper/internal/models"
	"github.com/nagios-plugins-contrib/packaging-helper/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PH_AGENT", "my-agent/2.0")
	path := testutil.WriteFile(t, dir, FileName, `
packaging_dir: pkg
exclude:
  - vendor
  - docs
user_agent: ${PH_AGENT}
workers: 3
timeout: 5s
`)

	cfg := models.Config{BaseDir: "/srv/plugins", Workers: 8}
	require.NoError(t, Load(path, &cfg))

	assert.Equal(t, "/srv/plugins", cfg.BaseDir, "keys absent from the file are kept")
	assert.Equal(t, "pkg", cfg.PackagingDir)
	assert.Equal(t, []string{"vendor", "docs"}, cfg.Exclude)
	assert.Equal(t, "my-agent/2.0", cfg.UserAgent)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestLoadUnsetVariable(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, FileName, "base_dir: ${PH_SURELY_UNSET_VARIABLE}/plugins\n")

	var cfg models.Config
	require.NoError(t, Load(path, &cfg))
	assert.Equal(t, "/plugins", cfg.BaseDir)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	bad := testutil.WriteFile(t, dir, "bad.yaml", "workers: [1, 2\n")

	for _, path := range []string{bad, filepath.Join(dir, "missing.yaml")} {
		var cfg models.Config
		err := Load(path, &cfg)

		require.Error(t, err)
		typ, _ := models.ErrorTypeOf(err)
		assert.Equal(t, models.ErrInvalidConfig, typ)
		assert.False(t, models.IsStructural(err))
	}
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	assert.Empty(t, FindConfigFile(dir))

	path := testutil.WriteFile(t, dir, FileName, "workers: 1\n")
	assert.Equal(t, path, FindConfigFile(dir))
}

func TestValidate(t *testing.T) {
	t.Run("fills defaults", func(t *testing.T) {
		cfg := models.Config{BaseDir: "."}
		require.NoError(t, Validate(&cfg))

		assert.Equal(t, models.DefaultPackagingDir, cfg.PackagingDir)
		assert.Equal(t, models.DefaultUserAgent, cfg.UserAgent)
		assert.Equal(t, models.DefaultWorkers, cfg.Workers)
		assert.Equal(t, models.DefaultTimeout, cfg.Timeout)
	})

	t.Run("requires a base dir", func(t *testing.T) {
		err := Validate(&models.Config{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "base-dir")
	})

	for _, dir := range []string{"/debian", "debian/sub", "../debian"} {
		t.Run("rejects packaging dir "+dir, func(t *testing.T) {
			err := Validate(&models.Config{BaseDir: ".", PackagingDir: dir})
			require.Error(t, err)
			typ, _ := models.ErrorTypeOf(err)
			assert.Equal(t, models.ErrInvalidConfig, typ)
		})
	}
}
