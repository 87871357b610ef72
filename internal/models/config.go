package models

import "time"

// Defaults
const (
	DefaultPackagingDir = "debian"
	DefaultUserAgent    = "Debian nagios-plugins-contrib 1.0"
	DefaultWorkers      = 8
	DefaultTimeout      = 30 * time.Second
)

// Config contains configuration for a packaging-helper run
type Config struct {
	// Layout
	BaseDir      string   `yaml:"base_dir"`
	PackagingDir string   `yaml:"packaging_dir"` // Relative to BaseDir, holds the templates and outputs
	Exclude      []string `yaml:"exclude"`       // Extra directory names that are not plugins

	// Watch
	UserAgent string        `yaml:"user_agent"`
	Workers   int           `yaml:"workers"`
	Timeout   time.Duration `yaml:"timeout"`

	// Actions, in execution order
	Control        bool `yaml:"-"`
	Tests          bool `yaml:"-"`
	Copyright      bool `yaml:"-"`
	Watch          bool `yaml:"-"`
	GenerateReadme bool `yaml:"-"`
}

// AnyAction reports whether at least one action was requested
func (c *Config) AnyAction() bool {
	return c.Control || c.Tests || c.Copyright || c.Watch || c.GenerateReadme
}
