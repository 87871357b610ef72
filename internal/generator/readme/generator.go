package readme

import (
	"context"
	"fmt"
	"strings"

	"github.com/nagios-plugins-contrib/packaging-helper/internal/generator"
	"github.com/nagios-plugins-contrib/packaging-helper/internal/metadata"
	"github.com/nagios-plugins-contrib/packaging-helper/internal/models"
	"github.com/sirupsen/logrus"
)

// FileName of the generated README
const FileName = "README.Debian.plugins"

// Placeholder field in README.Debian.plugins.in
const Field = "README"

// Generator implements the generator.Generator interface for
// README.Debian.plugins
type Generator struct {
	reader *metadata.Reader
}

// NewGenerator creates a README generator reading substvars via reader
func NewGenerator(reader *metadata.Reader) generator.Generator {
	return &Generator{reader: reader}
}

// Block lists the required and optional packages of one plugin. It returns
// "" when the plugin has neither.
func Block(name string, required, optional *metadata.RelationSet) string {
	if required.Len() == 0 && optional.Len() == 0 {
		return ""
	}

	lines := []string{name + ":"}
	if required.Len() > 0 {
		lines = append(lines, "  Required Packages: "+required.String())
	}
	if optional.Len() > 0 {
		lines = append(lines, "  Optional Packages: "+optional.String())
	}
	return strings.Join(lines, "\n")
}

// pluginBlock collects the relations of one plugin, including the shlibs
// dependencies found in its substvars file
func (g *Generator) pluginBlock(plugin models.Plugin) (string, error) {
	required := metadata.NewRelationSet()
	optional := metadata.NewRelationSet()

	shlibs, err := g.reader.ShlibsDepends(plugin.Name)
	if err != nil {
		return "", err
	}

	sources := []struct {
		field string
		value string
		set   *metadata.RelationSet
	}{
		{models.FieldRecommends, plugin.Control.Get(models.FieldRecommends), required},
		{metadata.SubstvarsFile, shlibs, required},
		{models.FieldSuggests, plugin.Control.Get(models.FieldSuggests), optional},
	}

	for _, src := range sources {
		rels, err := metadata.ParseRelations(src.value)
		if err != nil {
			return "", &models.HelperError{
				Type:   models.ErrStanzaParse,
				Plugin: plugin.Name,
				Field:  src.field,
				Err:    fmt.Errorf("failed to parse relations: %w", err),
			}
		}
		src.set.Add(rels...)
	}

	return Block(plugin.Name, required, optional), nil
}

// Generate writes README.Debian.plugins from its template
func (g *Generator) Generate(ctx context.Context, config *models.Config, plugins []models.Plugin) error {
	logrus.Info("Generating README.Debian.plugins...")

	var blocks []string
	for _, plugin := range plugins {
		if err := ctx.Err(); err != nil {
			return err
		}

		block, err := g.pluginBlock(plugin)
		if err != nil {
			return err
		}
		if block == "" {
			logrus.Debugf("%s has no package relations, skipping", plugin.Name)
			continue
		}
		blocks = append(blocks, block)
	}

	return generator.RenderTemplate(config, FileName, map[string]string{
		Field: strings.Join(blocks, "\n\n"),
	})
}

// ValidatePlugins has nothing to check
func (g *Generator) ValidatePlugins(plugins []models.Plugin) error {
	return nil
}

// Name returns the name of the generated file
func (g *Generator) Name() string {
	return FileName
}
