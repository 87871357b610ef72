package control

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nagios-plugins-contrib/packaging-helper/internal/metadata"
	"github.com/nagios-plugins-contrib/packaging-helper/internal/models"
	"github.com/nagios-plugins-contrib/packaging-helper/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const controlIn = `Source: nagios-plugins-contrib
Uploaders: #AUTO_UPDATE_Uploaders#
Build-Depends: debhelper-compat (= 13), #AUTO_UPDATE_Build-Depends#

Package: nagios-plugins-contrib
Recommends: #AUTO_UPDATE_Recommends#
Suggests: #AUTO_UPDATE_Suggests#
Description: Plugins for nagios compatible monitoring systems
 This package provides:
 .
#AUTO_UPDATE_Description#
`

func plugin(name string, fields ...string) models.Plugin {
	stanza := models.NewStanza()
	for i := 0; i+1 < len(fields); i += 2 {
		stanza.Set(fields[i], fields[i+1])
	}
	return models.Plugin{Name: name, Control: stanza}
}

func setup(t *testing.T) *models.Config {
	t.Helper()

	base := t.TempDir()
	testutil.WriteFile(t, base, "debian/control.in", controlIn)
	return &models.Config{BaseDir: base, PackagingDir: "debian"}
}

func TestGenerate(t *testing.T) {
	config := setup(t)
	plugins := []models.Plugin{
		plugin("check_a",
			"Recommends", "libssl3, curl",
			"Build-Depends", "libssl-dev",
			"Version", "1.0",
			"Uploaders", "Jan <jan@example.org>, Bernd <bernd@example.org>",
			"Description", "checks A\nin depth"),
		plugin("check_b",
			"Recommends", "curl | wget",
			"Suggests", "python3",
			"Build-Depends", "libssl-dev",
			"Uploaders", "Bernd <bernd@example.org>",
			"Description", "checks B"),
	}

	gen := NewGenerator()
	require.NoError(t, gen.ValidatePlugins(plugins))
	require.NoError(t, gen.Generate(context.Background(), config, plugins))

	got := testutil.ReadFile(t, config.BaseDir, "debian/control")
	want := `Source: nagios-plugins-contrib
Uploaders: Jan <jan@example.org>, Bernd <bernd@example.org>
Build-Depends: debhelper-compat (= 13), libssl-dev

Package: nagios-plugins-contrib
Recommends: libssl3, curl, curl | wget
Suggests: python3
Description: Plugins for nagios compatible monitoring systems
 This package provides:
 .
   * check_a (1.0): checks A
     in depth
   * check_b: checks B
`
	assert.Equal(t, want, got)
}

func TestGenerateIsDeterministic(t *testing.T) {
	config := setup(t)
	plugins := []models.Plugin{
		plugin("check_a", "Recommends", "libfoo, libbar", "Description", "a"),
		plugin("check_b", "Recommends", "libbar, libbaz", "Description", "b"),
	}

	gen := NewGenerator()
	require.NoError(t, gen.Generate(context.Background(), config, plugins))
	first := testutil.ReadFile(t, config.BaseDir, "debian/control")

	require.NoError(t, gen.Generate(context.Background(), config, plugins))
	second := testutil.ReadFile(t, config.BaseDir, "debian/control")

	assert.Equal(t, first, second)
}

func TestCollectDeduplicatesRelations(t *testing.T) {
	plugins := []models.Plugin{
		plugin("check_a", "Suggests", "libfoo (>= 1.0)", "Description", "a"),
		plugin("check_b", "Suggests", "libfoo (>= 1.0),\nlibbar", "Description", "b"),
	}

	agg, err := Collect(plugins)
	require.NoError(t, err)

	assert.Equal(t, "libfoo (>= 1.0), libbar", agg.Relations[models.FieldSuggests].String())
	assert.Equal(t, "", agg.Relations[models.FieldRecommends].String())
}

func TestCollectUploaders(t *testing.T) {
	plugins := []models.Plugin{
		plugin("check_a", "Uploaders", "A <a@x>,B <b@x>", "Description", "a"),
		plugin("check_b", "Uploaders", "B <b@x>,   C <c@x>", "Description", "b"),
		plugin("check_c", "Description", "c"),
	}

	agg, err := Collect(plugins)
	require.NoError(t, err)
	assert.Equal(t, []string{"A <a@x>", "B <b@x>", "C <c@x>"}, agg.Uploaders)
}

func TestCollectInvalidRelation(t *testing.T) {
	_, err := Collect([]models.Plugin{
		plugin("check_a", "Recommends", "libfoo (>= 1.0", "Description", "a"),
	})

	require.Error(t, err)
	typ, _ := models.ErrorTypeOf(err)
	assert.Equal(t, models.ErrStanzaParse, typ)
}

func TestCollectMissingDescription(t *testing.T) {
	_, err := Collect([]models.Plugin{plugin("check_a", "Version", "1")})

	require.Error(t, err)
	typ, _ := models.ErrorTypeOf(err)
	assert.Equal(t, models.ErrMissingRequiredField, typ)
}

func TestValidatePluginsRejectsDepends(t *testing.T) {
	err := NewGenerator().ValidatePlugins([]models.Plugin{
		plugin("check_a", "Depends", "libfoo", "Description", "a"),
	})

	require.Error(t, err)
	typ, _ := models.ErrorTypeOf(err)
	assert.Equal(t, models.ErrPolicyViolation, typ)
	assert.Contains(t, err.Error(), "check_a")
}

func TestGenerateMissingPlaceholderWritesNothing(t *testing.T) {
	base := t.TempDir()
	testutil.WriteFile(t, base, "debian/control.in", "Recommends: #AUTO_UPDATE_Recommends#\n")
	config := &models.Config{BaseDir: base, PackagingDir: "debian"}

	err := NewGenerator().Generate(context.Background(), config, []models.Plugin{
		plugin("check_a", "Description", "a"),
	})

	require.Error(t, err)
	typ, _ := models.ErrorTypeOf(err)
	assert.Equal(t, models.ErrTemplate, typ)

	_, statErr := os.Stat(filepath.Join(base, "debian", "control"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestDescriptionLineKeepsVerbatimLines(t *testing.T) {
	ctrl, err := metadata.ParseStanza(strings.NewReader(
		"Description: short\n long line\n .\n   verbatim indented\n"))
	require.NoError(t, err)

	got, err := DescriptionLine(models.Plugin{Name: "check_a", Control: ctrl})
	require.NoError(t, err)

	want := "   * check_a: short\n" +
		"     long line\n" +
		"     .\n" +
		"       verbatim indented"
	assert.Equal(t, want, got)
}
