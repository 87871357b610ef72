package tests

import (
	"bytes"
	"context"
	"path/filepath"

	"github.com/nagios-plugins-contrib/packaging-helper/internal/generator"
	"github.com/nagios-plugins-contrib/packaging-helper/internal/metadata"
	"github.com/nagios-plugins-contrib/packaging-helper/internal/models"
	"github.com/sirupsen/logrus"
)

// FileName of the generated autopkgtest control file, relative to the
// packaging directory
var FileName = filepath.Join("tests", "control")

// Banner heads the generated file
const Banner = `# This file is machine-generated by packaging-helper --tests
# from the per-plugin "tests" stanzas. Do not edit it by hand.
`

// Generator implements the generator.Generator interface for tests/control
type Generator struct{}

// NewGenerator creates a new tests/control generator
func NewGenerator() generator.Generator {
	return &Generator{}
}

// GenerateTestsFile concatenates the test stanzas of all plugins that have one
func GenerateTestsFile(plugins []models.Plugin) []byte {
	var buf bytes.Buffer
	buf.WriteString(Banner)

	for _, plugin := range plugins {
		if plugin.Tests == nil {
			continue
		}
		logrus.Debugf("Adding tests of %s", plugin.Name)

		// Blank line between stanzas
		buf.WriteString("\n")
		buf.Write(metadata.FormatStanza(*plugin.Tests))
	}

	return buf.Bytes()
}

// Generate writes debian/tests/control
func (g *Generator) Generate(ctx context.Context, config *models.Config, plugins []models.Plugin) error {
	logrus.Info("Generating tests/control file...")

	if err := ctx.Err(); err != nil {
		return err
	}

	return generator.WriteOutput(config, FileName, GenerateTestsFile(plugins))
}

// ValidatePlugins checks that test stanzas are not empty
func (g *Generator) ValidatePlugins(plugins []models.Plugin) error {
	for _, plugin := range plugins {
		if plugin.Tests != nil && !plugin.Tests.Has(models.FieldTests) && !plugin.Tests.Has(models.FieldTestCommand) {
			return models.NewError(models.ErrMissingRequiredField, plugin.Name, metadata.TestsFile,
				"tests stanza of plugin %s needs Tests or Test-Command", plugin.Name)
		}
	}
	return nil
}

// Name returns the name of the generated file
func (g *Generator) Name() string {
	return FileName
}
