package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/nagios-plugins-contrib/packaging-helper/internal/models"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the base directory when no
// explicit path is given.
const FileName = ".packaging-helper.yaml"

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// Load reads a YAML configuration file into cfg. Values already present in
// cfg are overwritten only by keys present in the file.
func Load(path string, cfg *models.Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &models.HelperError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("failed to read config file %q: %w", path, err),
		}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return &models.HelperError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("failed to parse config file %q: %w", path, err),
		}
	}

	cfg.BaseDir = expandEnv(cfg.BaseDir)
	cfg.UserAgent = expandEnv(cfg.UserAgent)

	logrus.Debugf("Loaded configuration from %s", path)
	return nil
}

// FindConfigFile returns the path of the default configuration file in
// baseDir, or "" if there is none.
func FindConfigFile(baseDir string) string {
	p := filepath.Join(baseDir, FileName)
	if info, err := os.Stat(p); err == nil && !info.IsDir() {
		return p
	}
	return ""
}

// Validate checks required values and fills in defaults
func Validate(cfg *models.Config) error {
	if cfg.BaseDir == "" {
		return models.NewError(models.ErrInvalidConfig, "", "", "base-dir is required")
	}

	if cfg.PackagingDir == "" {
		cfg.PackagingDir = models.DefaultPackagingDir
	}
	if filepath.IsAbs(cfg.PackagingDir) || filepath.Base(cfg.PackagingDir) != cfg.PackagingDir {
		return models.NewError(models.ErrInvalidConfig, "", "",
			"packaging-dir must be a directory name inside base-dir, got %q", cfg.PackagingDir)
	}

	if cfg.UserAgent == "" {
		cfg.UserAgent = models.DefaultUserAgent
	}
	if cfg.Workers <= 0 {
		cfg.Workers = models.DefaultWorkers
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = models.DefaultTimeout
	}

	return nil
}

// expandEnv expands ${VAR} references, warning about unset variables
func expandEnv(raw string) string {
	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		name := envVarPattern.FindStringSubmatch(match)[1]
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		logrus.Warnf("Environment variable %q is not set", name)
		return ""
	})
}
