package copyright

import (
	"context"
	"fmt"
	"strings"

	"github.com/nagios-plugins-contrib/packaging-helper/internal/generator"
	"github.com/nagios-plugins-contrib/packaging-helper/internal/metadata"
	"github.com/nagios-plugins-contrib/packaging-helper/internal/models"
	"github.com/sirupsen/logrus"
)

// FileName of the generated copyright file
const FileName = "copyright"

// Placeholder field in copyright.in
const Field = "Copyright"

// Separator between plugin blocks
var Separator = "\n\n" + strings.Repeat("-", 78) + "\n\n"

// Generator implements the generator.Generator interface for debian/copyright
type Generator struct {
	reader *metadata.Reader
}

// NewGenerator creates a copyright generator reading plugin files via reader
func NewGenerator(reader *metadata.Reader) generator.Generator {
	return &Generator{reader: reader}
}

// Block formats the copyright section of one plugin
func Block(plugin models.Plugin, body string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:\n\n", plugin.Name)

	if plugin.Control.Has(models.FieldHomepage) {
		fmt.Fprintf(&b, "The plugin was downloaded from: \n%s\n\n", strings.TrimSpace(plugin.Control.Get(models.FieldHomepage)))
	}

	b.WriteString("  ")
	b.WriteString(metadata.Reindent(strings.TrimRight(body, "\n"), "  "))
	return b.String()
}

// Generate writes debian/copyright from debian/copyright.in
func (g *Generator) Generate(ctx context.Context, config *models.Config, plugins []models.Plugin) error {
	logrus.Info("Generating copyright file...")

	blocks := make([]string, 0, len(plugins))
	for _, plugin := range plugins {
		if err := ctx.Err(); err != nil {
			return err
		}

		body, err := g.reader.ReadCopyright(plugin.Name)
		if err != nil {
			return err
		}
		blocks = append(blocks, Block(plugin, body))
	}

	return generator.RenderTemplate(config, FileName, map[string]string{
		Field: strings.Join(blocks, Separator),
	})
}

// ValidatePlugins has nothing to check before reading the copyright files
func (g *Generator) ValidatePlugins(plugins []models.Plugin) error {
	return nil
}

// Name returns the name of the generated file
func (g *Generator) Name() string {
	return FileName
}
