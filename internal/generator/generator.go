package generator

import (
	"context"
	"path/filepath"

	"github.com/nagios-plugins-contrib/packaging-helper/internal/models"
	"github.com/nagios-plugins-contrib/packaging-helper/internal/utils"
	"github.com/sirupsen/logrus"
)

// Generator interface for packaging file generators
type Generator interface {
	// Generate writes the output file from the provided plugins
	Generate(ctx context.Context, config *models.Config, plugins []models.Plugin) error

	// ValidatePlugins checks if plugins are acceptable for this generator
	ValidatePlugins(plugins []models.Plugin) error

	// Name returns the name of the generated file
	Name() string
}

// PackagingPath returns a path inside the packaging directory
func PackagingPath(config *models.Config, elem ...string) string {
	return filepath.Join(append([]string{config.BaseDir, config.PackagingDir}, elem...)...)
}

// RenderTemplate fills <name>.in from the packaging directory with values
// and writes the result to <name>
func RenderTemplate(config *models.Config, name string, values map[string]string) error {
	tmpl, err := utils.LoadTemplate(PackagingPath(config, name+".in"))
	if err != nil {
		return err
	}

	out, err := tmpl.Render(values)
	if err != nil {
		return err
	}

	return WriteOutput(config, name, []byte(out))
}

// WriteOutput atomically writes a generated file into the packaging directory
func WriteOutput(config *models.Config, name string, data []byte) error {
	path := PackagingPath(config, name)
	if err := utils.WriteFileAtomic(path, data, 0644); err != nil {
		return &models.HelperError{Type: models.ErrFileOp, Field: path, Err: err}
	}

	logrus.Infof("Wrote %s", path)
	return nil
}
