package readme

import (
	"context"
	"testing"

	"github.com/nagios-plugins-contrib/packaging-helper/internal/metadata"
	"github.com/nagios-plugins-contrib/packaging-helper/internal/models"
	"github.com/nagios-plugins-contrib/packaging-helper/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plugin(name string, fields ...string) models.Plugin {
	stanza := models.NewStanza()
	for i := 0; i+1 < len(fields); i += 2 {
		stanza.Set(fields[i], fields[i+1])
	}
	return models.Plugin{Name: name, Control: stanza}
}

func TestGenerate(t *testing.T) {
	base := t.TempDir()
	testutil.WriteFile(t, base, "debian/README.Debian.plugins.in", "Plugin dependencies\n\n#AUTO_UPDATE_README#\n")
	testutil.WritePlugin(t, base, "check_ssl", nil)
	testutil.WritePlugin(t, base, "check_none", nil)
	testutil.WritePlugin(t, base, "check_both", nil)
	testutil.WritePlugin(t, base, "check_bin", map[string]string{
		"substvars": "shlibs:Depends=libc6 (>= 2.34), libssl3\n",
	})
	config := &models.Config{BaseDir: base, PackagingDir: "debian"}

	plugins := []models.Plugin{
		plugin("check_bin", "Recommends", "libssl3", "Description", "bin"),
		plugin("check_both", "Recommends", "curl", "Suggests", "python3, python3-yaml", "Description", "both"),
		plugin("check_none", "Description", "none"),
		plugin("check_ssl", "Recommends", "libssl", "Description", "ssl"),
	}

	gen := NewGenerator(metadata.NewReader(base))
	require.NoError(t, gen.ValidatePlugins(plugins))
	require.NoError(t, gen.Generate(context.Background(), config, plugins))

	want := "Plugin dependencies\n\n" +
		"check_bin:\n" +
		"  Required Packages: libssl3, libc6 (>= 2.34)\n" +
		"\n" +
		"check_both:\n" +
		"  Required Packages: curl\n" +
		"  Optional Packages: python3, python3-yaml\n" +
		"\n" +
		"check_ssl:\n" +
		"  Required Packages: libssl\n"

	got := testutil.ReadFile(t, base, "debian/README.Debian.plugins")
	assert.Equal(t, want, got)
	assert.NotContains(t, got, "check_none")
}

func TestBlockWithoutRelations(t *testing.T) {
	assert.Equal(t, "", Block("check_none", metadata.NewRelationSet(), metadata.NewRelationSet()))
}
