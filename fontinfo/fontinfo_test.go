package fontinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/typeforge/ufo/glyph"
	"github.com/typeforge/ufo/plist"
	"github.com/typeforge/ufo/ufocore"
)

func TestLoadBasicFields(t *testing.T) {
	d := plist.Dict{
		"familyName": "Example Sans",
		"styleName":  "Regular",
		"unitsPerEm": float64(1000),
		"ascender":   float64(800),
	}
	fi, err := Load(d)
	require.NoError(t, err)
	assert.Equal(t, "Example Sans", fi.FamilyName)
	require.NotNil(t, fi.UnitsPerEm)
	assert.Equal(t, float64(1000), *fi.UnitsPerEm)
}

func TestValidateDisallowedSelectionBits(t *testing.T) {
	fi := &FontInfo{OpenTypeOS2Selection: []int{1, 5}}
	err := Validate(fi)
	require.Error(t, err)
	assert.True(t, reasonIs(err, "DisallowedSelectionBits"))
}

func TestValidateInvalidOs2FamilyClass(t *testing.T) {
	fi := &FontInfo{OpenTypeOS2FamilyClass: []int{20, 3}}
	err := Validate(fi)
	require.Error(t, err)
	assert.True(t, reasonIs(err, "InvalidOs2FamilyClass"))
}

func TestValidatePostscriptListTooLong(t *testing.T) {
	fi := &FontInfo{PostscriptStemSnapH: make([]float64, 13)}
	err := Validate(fi)
	require.Error(t, err)
	assert.True(t, reasonIs(err, "InvalidPostscriptListLength"))
}

func TestValidateUnknownWidthClass(t *testing.T) {
	bad := 42
	fi := &FontInfo{OpenTypeOS2WidthClass: &bad}
	err := Validate(fi)
	require.Error(t, err)
	assert.True(t, reasonIs(err, "UnknownWidthClass"))
}

func TestUpconvertFontStyle(t *testing.T) {
	fi := &FontInfo{Extra: plist.Dict{"fontStyle": int64(1)}}
	require.NoError(t, UpconvertV1(fi))
	assert.Equal(t, "Italic", fi.StyleName)
	_, stillThere := fi.Extra["fontStyle"]
	assert.False(t, stillThere)
}

func TestUpconvertUnknownFontStyle(t *testing.T) {
	fi := &FontInfo{Extra: plist.Dict{"fontStyle": int64(999)}}
	err := UpconvertV1(fi)
	require.Error(t, err)
	assert.True(t, reasonIs(err, "UnknownFontStyle"))
}

func TestUpconvertMsCharSet(t *testing.T) {
	fi := &FontInfo{Extra: plist.Dict{"msCharSet": int64(0)}}
	require.NoError(t, UpconvertV1(fi))
	assert.Equal(t, []int{0}, fi.OpenTypeOS2CodePageRanges)
}

func TestSaveRoundTripsKnownFields(t *testing.T) {
	em := float64(1000)
	fi := &FontInfo{FamilyName: "Example Sans", UnitsPerEm: &em, Extra: plist.Dict{}}
	d := Save(fi)
	assert.Equal(t, "Example Sans", d["familyName"])
	assert.Equal(t, float64(1000), d["unitsPerEm"])

	reloaded, err := Load(d)
	require.NoError(t, err)
	assert.Equal(t, fi.FamilyName, reloaded.FamilyName)
}

func TestPromoteGuidelinesFromLibRedistributesObjectLibs(t *testing.T) {
	fi := &FontInfo{Guidelines: []glyph.Guideline{{Name: "baseline", Identifier: "id-1"}}}
	lib := plist.Dict{
		"public.objectLibs": plist.Dict{
			"id-1": plist.Dict{"note": "hi"},
		},
	}
	require.NoError(t, PromoteGuidelinesFromLib(fi, lib))
	assert.Equal(t, "hi", fi.Guidelines[0].Lib["note"])
	_, hasKey := lib["public.objectLibs"]
	assert.False(t, hasKey, "public.objectLibs must not survive in lib after promotion")
}

func TestPromoteGuidelinesFromLibLegacyListPlusObjectLibs(t *testing.T) {
	fi := &FontInfo{}
	lib := plist.Dict{
		"public.fontInfoGuidelines": []interface{}{
			plist.Dict{"name": "baseline", "identifier": "id-1"},
		},
		"public.objectLibs": plist.Dict{
			"id-1": plist.Dict{"note": "hi"},
		},
	}
	require.NoError(t, PromoteGuidelinesFromLib(fi, lib))
	require.Len(t, fi.Guidelines, 1)
	assert.Equal(t, "baseline", fi.Guidelines[0].Name)
	assert.Equal(t, "hi", fi.Guidelines[0].Lib["note"])
	_, hasLibGuidelines := lib["public.fontInfoGuidelines"]
	assert.False(t, hasLibGuidelines)
}

func TestCollectGuidelineLibsForSaveSynthesizesIdentifier(t *testing.T) {
	fi := &FontInfo{Guidelines: []glyph.Guideline{{Name: "baseline", Lib: plist.Dict{"note": "hi"}}}}
	objectLibs := CollectGuidelineLibsForSave(fi)
	require.NotEmpty(t, fi.Guidelines[0].Identifier)
	sub, ok := objectLibs[string(fi.Guidelines[0].Identifier)].(plist.Dict)
	require.True(t, ok)
	assert.Equal(t, "hi", sub["note"])
}

func TestCollectGuidelineLibsForSaveSkipsGuidelinesWithoutLib(t *testing.T) {
	fi := &FontInfo{Guidelines: []glyph.Guideline{{Name: "baseline"}}}
	objectLibs := CollectGuidelineLibsForSave(fi)
	assert.Empty(t, objectLibs)
	assert.Empty(t, fi.Guidelines[0].Identifier)
}

func reasonIs(err error, reason string) bool {
	return ufocore.HasReason(err, reason)
}
