package metadata

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/nagios-plugins-contrib/packaging-helper/internal/models"
	"github.com/sirupsen/logrus"
)

// Per-plugin file names
const (
	ControlFile   = "control"
	TestsFile     = "tests"
	CopyrightFile = "copyright"
	SubstvarsFile = "substvars"
)

var shlibsPattern = regexp.MustCompile(`(?m)^shlibs:Depends=(.*)$`)

// TestDefaultsMarker makes autopkgtest pull in the package's own dependencies
const TestDefaultsMarker = "@"

// Reader loads plugin metadata from a base directory
type Reader struct {
	baseDir string
}

// NewReader creates a new metadata reader for baseDir
func NewReader(baseDir string) *Reader {
	return &Reader{baseDir: baseDir}
}

// PluginDir returns the directory of a plugin
func (r *Reader) PluginDir(plugin string) string {
	return filepath.Join(r.baseDir, plugin)
}

// LoadPlugins reads the control and tests stanzas of every plugin in names.
// The first structural problem aborts the load.
func (r *Reader) LoadPlugins(ctx context.Context, names iter.Seq[string]) ([]models.Plugin, error) {
	var plugins []models.Plugin

	for name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		logrus.Debugf("Reading metadata for %s", name)

		ctrl, err := r.ReadControl(name)
		if err != nil {
			return nil, err
		}

		tests, err := r.ReadTests(name)
		if err != nil {
			return nil, err
		}

		plugins = append(plugins, models.Plugin{
			Name:    name,
			Dir:     r.PluginDir(name),
			Control: ctrl,
			Tests:   tests,
		})
	}

	return plugins, nil
}

// ReadControl parses <plugin>/control and enforces the control allow-list
func (r *Reader) ReadControl(plugin string) (models.Stanza, error) {
	stanza, err := r.readStanza(plugin, ControlFile)
	if err != nil {
		return models.Stanza{}, err
	}

	if err := Validate(stanza, models.ControlFields); err != nil {
		return models.Stanza{}, &models.HelperError{
			Type:   models.ErrSchemaViolation,
			Plugin: plugin,
			Field:  ControlFile,
			Err:    err,
		}
	}

	if !stanza.Has(models.FieldDescription) {
		return models.Stanza{}, models.NewError(models.ErrMissingRequiredField, plugin,
			models.FieldDescription, "description for plugin %s missing", plugin)
	}

	return stanza, nil
}

// ReadTests parses the optional <plugin>/tests stanza. A plugin without the
// file has no tests and nil is returned.
func (r *Reader) ReadTests(plugin string) (*models.Stanza, error) {
	path := filepath.Join(r.PluginDir(plugin), TestsFile)
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, &models.HelperError{Type: models.ErrFileOp, Plugin: plugin, Field: TestsFile, Err: err}
		}
		return nil, nil
	}

	stanza, err := r.readStanza(plugin, TestsFile)
	if err != nil {
		return nil, err
	}

	if err := Validate(stanza, models.TestsFields); err != nil {
		return nil, &models.HelperError{
			Type:   models.ErrSchemaViolation,
			Plugin: plugin,
			Field:  TestsFile,
			Err:    err,
		}
	}

	if stanza.Has(models.FieldDepends) {
		stanza.Set(models.FieldDepends, withDefaultsMarker(stanza.Get(models.FieldDepends)))
	}

	return &stanza, nil
}

// ReadCopyright returns the raw contents of <plugin>/copyright
func (r *Reader) ReadCopyright(plugin string) (string, error) {
	data, err := os.ReadFile(filepath.Join(r.PluginDir(plugin), CopyrightFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", models.NewError(models.ErrMissingCollaboratorFile, plugin, CopyrightFile,
				"copyright file for plugin %s missing", plugin)
		}
		return "", &models.HelperError{Type: models.ErrFileOp, Plugin: plugin, Field: CopyrightFile, Err: err}
	}
	return string(data), nil
}

// ShlibsDepends returns the shlibs:Depends value recorded in the optional
// <plugin>/substvars file, or "" when there is none
func (r *Reader) ShlibsDepends(plugin string) (string, error) {
	data, err := os.ReadFile(filepath.Join(r.PluginDir(plugin), SubstvarsFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", &models.HelperError{Type: models.ErrFileOp, Plugin: plugin, Field: SubstvarsFile, Err: err}
	}

	m := shlibsPattern.FindSubmatch(data)
	if m == nil {
		return "", nil
	}
	return strings.TrimSpace(string(m[1])), nil
}

func (r *Reader) readStanza(plugin, file string) (models.Stanza, error) {
	f, err := os.Open(filepath.Join(r.PluginDir(plugin), file))
	if err != nil {
		t := models.ErrFileOp
		if errors.Is(err, os.ErrNotExist) {
			t = models.ErrMissingCollaboratorFile
		}
		return models.Stanza{}, &models.HelperError{Type: t, Plugin: plugin, Field: file, Err: err}
	}
	defer f.Close()

	stanza, err := ParseStanza(f)
	if err != nil {
		return models.Stanza{}, &models.HelperError{
			Type:   models.ErrStanzaParse,
			Plugin: plugin,
			Field:  file,
			Err:    fmt.Errorf("failed to parse %s: %w", file, err),
		}
	}

	return stanza, nil
}

func withDefaultsMarker(depends string) string {
	depends = strings.TrimSpace(depends)
	if depends == "" {
		return TestDefaultsMarker
	}
	if strings.HasSuffix(depends, TestDefaultsMarker) {
		return depends
	}
	return depends + ", " + TestDefaultsMarker
}
