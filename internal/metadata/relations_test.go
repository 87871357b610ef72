package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAndFormatRelations(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single", "libssl3", "libssl3"},
		{"version", "libc6 (>= 2.14)", "libc6 (>= 2.14)"},
		{"alternatives", "bind9-host | knot-host", "bind9-host | knot-host"},
		{"normalizes spacing", "libfoo(>=1.0) ,  libbar|libbaz", "libfoo (>= 1.0), libbar | libbaz"},
		{"multi-line", "libfoo,\nlibbar", "libfoo, libbar"},
		{"substvar", "${shlibs:Depends}, libfoo", "${shlibs:Depends}, libfoo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rels, err := ParseRelations(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, FormatRelations(rels))
		})
	}
}

func TestParseRelationsEmpty(t *testing.T) {
	rels, err := ParseRelations("  ")
	require.NoError(t, err)
	assert.Empty(t, rels)
}

func TestParseRelationsInvalid(t *testing.T) {
	_, err := ParseRelations("libfoo (>= 1.0")
	assert.Error(t, err)
}

func TestRelationSetDeduplicatesStructurally(t *testing.T) {
	set := NewRelationSet()

	first, err := ParseRelations("libfoo (>= 1.0), libbar | libbaz")
	require.NoError(t, err)
	second, err := ParseRelations("libfoo(>=1.0), libqux, libbar|libbaz")
	require.NoError(t, err)

	assert.Equal(t, 2, set.Add(first...))
	assert.Equal(t, 1, set.Add(second...))

	assert.Equal(t, 3, set.Len())
	assert.Equal(t, "libfoo (>= 1.0), libbar | libbaz, libqux", set.String())
}

func TestRelationSetDifferentVersionsAreDistinct(t *testing.T) {
	set := NewRelationSet()

	rels, err := ParseRelations("libfoo (>= 1.0), libfoo (>= 2.0), libfoo")
	require.NoError(t, err)
	set.Add(rels...)

	assert.Equal(t, 3, set.Len())
}

func TestRelationSetIdempotent(t *testing.T) {
	set := NewRelationSet()
	rels, err := ParseRelations("libssl3")
	require.NoError(t, err)

	set.Add(rels...)
	set.Add(rels...)

	assert.Equal(t, "libssl3", set.String())
}
