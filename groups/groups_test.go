package groups

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/typeforge/ufo/plist"
	"github.com/typeforge/ufo/ufocore"
)

// glyph X in both public.kern1.Alpha and public.kern1.Beta is an overlap.
func TestValidateOverlappingKerningGroups(t *testing.T) {
	g := New()
	g.Set("public.kern1.Alpha", []string{"X", "Y"})
	g.Set("public.kern1.Beta", []string{"X"})
	err := Validate(g)
	require.Error(t, err)
	assert.True(t, ufocore.HasReason(err, "OverlappingKerningGroups"))
}

func TestValidateInvalidName(t *testing.T) {
	g := New()
	g.Set("public.kern1.", []string{"X"})
	err := Validate(g)
	require.Error(t, err)
	assert.True(t, ufocore.HasReason(err, "InvalidName"))
}

func TestValidateAllowsDifferentSidePrefixes(t *testing.T) {
	g := New()
	g.Set("public.kern1.Alpha", []string{"X"})
	g.Set("public.kern2.Alpha", []string{"X"})
	require.NoError(t, Validate(g))
}

func TestUpconvertV1RenamesLegacyGroups(t *testing.T) {
	g := New()
	g.Set("@MMK_L_Alpha", []string{"X"})
	g.Set("@MMK_R_Beta", []string{"Y"})
	out := UpconvertV1(g)
	assert.ElementsMatch(t, []string{"public.kern1.Alpha", "public.kern2.Beta"}, out.Names())
	assert.Equal(t, []string{"X"}, out.Members("public.kern1.Alpha"))
}

func TestLoadAndSaveRoundTrip(t *testing.T) {
	d := plist.Dict{
		"public.kern1.Alpha": []interface{}{"A", "B"},
	}
	g, err := Load(d)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, g.Members("public.kern1.Alpha"))

	saved := Save(g)
	assert.Equal(t, []interface{}{"A", "B"}, saved["public.kern1.Alpha"])
}
