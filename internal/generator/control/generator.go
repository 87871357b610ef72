package control

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/nagios-plugins-contrib/packaging-helper/internal/generator"
	"github.com/nagios-plugins-contrib/packaging-helper/internal/metadata"
	"github.com/nagios-plugins-contrib/packaging-helper/internal/models"
	"github.com/sirupsen/logrus"
)

// FileName of the generated control file
const FileName = "control"

// RelationFields are merged across all plugins into the umbrella package
var RelationFields = []string{
	models.FieldBuildDepends,
	models.FieldSuggests,
	models.FieldRecommends,
}

var uploadersSeparator = regexp.MustCompile(`,\s*`)

// Generator implements the generator.Generator interface for debian/control
type Generator struct{}

// NewGenerator creates a new control generator
func NewGenerator() generator.Generator {
	return &Generator{}
}

// Aggregate holds the merged values of all plugin control stanzas
type Aggregate struct {
	Relations    map[string]*metadata.RelationSet
	Descriptions []string
	Uploaders    []string
}

// Collect merges the control stanzas of plugins in order
func Collect(plugins []models.Plugin) (*Aggregate, error) {
	agg := &Aggregate{Relations: make(map[string]*metadata.RelationSet, len(RelationFields))}
	for _, field := range RelationFields {
		agg.Relations[field] = metadata.NewRelationSet()
	}

	seenUploaders := make(map[string]struct{})

	for _, plugin := range plugins {
		ctrl := plugin.Control

		for _, field := range RelationFields {
			if !ctrl.Has(field) {
				continue
			}
			rels, err := metadata.ParseRelations(ctrl.Get(field))
			if err != nil {
				return nil, &models.HelperError{
					Type:   models.ErrStanzaParse,
					Plugin: plugin.Name,
					Field:  field,
					Err:    fmt.Errorf("failed to parse relations: %w", err),
				}
			}
			added := agg.Relations[field].Add(rels...)
			logrus.Debugf("%s: %d new %s relations", plugin.Name, added, field)
		}

		desc, err := DescriptionLine(plugin)
		if err != nil {
			return nil, err
		}
		agg.Descriptions = append(agg.Descriptions, desc)

		if ctrl.Has(models.FieldUploaders) {
			for _, uploader := range uploadersSeparator.Split(ctrl.Get(models.FieldUploaders), -1) {
				uploader = strings.TrimSpace(uploader)
				if uploader == "" {
					continue
				}
				if _, ok := seenUploaders[uploader]; ok {
					continue
				}
				seenUploaders[uploader] = struct{}{}
				agg.Uploaders = append(agg.Uploaders, uploader)
			}
		}
	}

	return agg, nil
}

// descriptionIndent prefixes description continuation lines. Stanza values
// carry continuation lines without their leading space, so the indent is one
// column wider than the bullet text.
const descriptionIndent = "     "

// DescriptionLine formats the bullet describing one plugin
func DescriptionLine(plugin models.Plugin) (string, error) {
	ctrl := plugin.Control
	if !ctrl.Has(models.FieldDescription) {
		return "", models.NewError(models.ErrMissingRequiredField, plugin.Name,
			models.FieldDescription, "description for plugin %s missing", plugin.Name)
	}

	line := "   * " + plugin.Name
	if ctrl.Has(models.FieldVersion) {
		line = fmt.Sprintf("%s (%s)", line, strings.TrimSpace(ctrl.Get(models.FieldVersion)))
	}
	return fmt.Sprintf("%s: %s", line, metadata.Reindent(ctrl.Get(models.FieldDescription), descriptionIndent)), nil
}

// Values returns the template substitutions
func (a *Aggregate) Values() map[string]string {
	values := map[string]string{
		models.FieldDescription: strings.Join(a.Descriptions, "\n"),
		models.FieldUploaders:   strings.Join(a.Uploaders, ", "),
	}
	for field, set := range a.Relations {
		values[field] = set.String()
	}
	return values
}

// Generate writes debian/control from debian/control.in
func (g *Generator) Generate(ctx context.Context, config *models.Config, plugins []models.Plugin) error {
	logrus.Info("Generating control file...")

	if err := ctx.Err(); err != nil {
		return err
	}

	agg, err := Collect(plugins)
	if err != nil {
		return err
	}

	return generator.RenderTemplate(config, FileName, agg.Values())
}

// ValidatePlugins rejects plugins that declare Depends. Plugin requirements
// belong in Recommends.
func (g *Generator) ValidatePlugins(plugins []models.Plugin) error {
	for _, plugin := range plugins {
		if plugin.Control.Has(models.FieldDepends) {
			return models.NewError(models.ErrPolicyViolation, plugin.Name, models.FieldDepends,
				"plugin %s declares Depends, use Recommends instead", plugin.Name)
		}
	}
	return nil
}

// Name returns the name of the generated file
func (g *Generator) Name() string {
	return FileName
}
