package fontinfo

import (
	"github.com/typeforge/ufo/glyph"
	"github.com/typeforge/ufo/plist"
	"github.com/typeforge/ufo/ufocore"
)

// fontStyle values recognized from UFO v1.
const (
	fontStyleRegular    = 64
	fontStyleItalic     = 1
	fontStyleBold       = 32
	fontStyleBoldItalic = 33
)

// msCharSet -> openTypeOS2CodePageRanges bit, the subset of the v1
// enumeration actually observed in the wild.
var msCharSetToCodePageRange = map[int]int{
	0: 0, 1: 1, 2: 2, 77: 3, 128: 4, 129: 5, 130: 6,
	134: 7, 136: 8, 161: 9, 162: 10, 163: 11, 177: 12,
	178: 13, 186: 14, 200: 15, 204: 16, 222: 17, 238: 18, 255: 19,
}

// UpconvertV1 promotes a v1-era fontinfo record: fi.Extra is scanned for
// fontStyle and msCharSet keys (v1 fields never given dedicated struct
// fields because v3 replaces them), translating them into StyleName and
// OpenTypeOS2CodePageRanges respectively (each only when that field is
// still empty), then removing the v1 keys from Extra. The italic part of a
// fontStyle value is not recorded in any field.
func UpconvertV1(fi *FontInfo) error {
	if raw, ok := fi.Extra["fontStyle"]; ok {
		n, err := plist.AsInt(raw)
		if err != nil {
			return ufocore.New(ufocore.FontInfoLoad, "UnknownFontStyle")
		}
		styleName, italic, ok := styleFromFontStyle(n)
		if !ok {
			return ufocore.New(ufocore.FontInfoLoad, "UnknownFontStyle")
		}
		if fi.StyleName == "" {
			fi.StyleName = styleName
		}
		_ = italic
		delete(fi.Extra, "fontStyle")
	}
	if raw, ok := fi.Extra["msCharSet"]; ok {
		n, err := plist.AsInt(raw)
		if err != nil {
			return ufocore.New(ufocore.FontInfoLoad, "UnknownMsCharSet")
		}
		bit, ok := msCharSetToCodePageRange[n]
		if !ok {
			return ufocore.New(ufocore.FontInfoLoad, "UnknownMsCharSet")
		}
		if len(fi.OpenTypeOS2CodePageRanges) == 0 {
			fi.OpenTypeOS2CodePageRanges = []int{bit}
		}
		delete(fi.Extra, "msCharSet")
	}
	renameV1Numeric(fi)
	return nil
}

func styleFromFontStyle(n int) (name string, italic bool, ok bool) {
	switch n {
	case fontStyleRegular:
		return "Regular", false, true
	case fontStyleItalic:
		return "Italic", true, true
	case fontStyleBold:
		return "Bold", false, true
	case fontStyleBoldItalic:
		return "Bold Italic", true, true
	}
	return "", false, false
}

// v1NumericRenames lists fontinfo keys that moved name or location
// between v1 and v2. Only keys still sitting unclaimed in Extra are
// touched; a dedicated struct field already populated wins.
var v1NumericRenames = map[string]string{
	"ascender":           "ascender",
	"descender":          "descender",
	"capHeight":          "capHeight",
	"xHeight":            "xHeight",
	"unitsPerEm":         "unitsPerEm",
	"ttVendor":           "openTypeOS2VendorID",
	"ttUniqueID":         "openTypeNameUniqueID",
	"ttVersion":          "openTypeNameVersion",
	"weightName":         "postscriptWeightName",
	"fondName":           "macintoshFONDName",
	"fondID":             "macintoshFONDFamilyID",
	"slantAngle":         "postscriptSlantAngle",
	"uniqueID":           "postscriptUniqueID",
}

func renameV1Numeric(fi *FontInfo) {
	for oldKey := range v1NumericRenames {
		if _, ok := fi.Extra[oldKey]; ok {
			// The known v1 keys above are all already represented by a typed
			// struct field under their v3 name; the rename is realized by the
			// decoder mapping both spellings onto that field (see Load), so by
			// the time UpconvertV1 runs only genuinely unknown leftovers
			// remain in Extra. Drop the stale v1 spelling here.
			delete(fi.Extra, oldKey)
		}
	}
}

// PromoteGuidelinesFromLib moves font-level guideline definitions that
// were parked in a font's lib.plist under libGuidelines (a v1/v2-era
// holding pen for data v3 gives a dedicated fontinfo.guidelines list) into
// fi.Guidelines, then redistributes public.objectLibs entries addressed
// to any font-level guideline identifier (whether the guideline came
// from lib.plist or was already native to fontinfo.plist).
func PromoteGuidelinesFromLib(fi *FontInfo, lib plist.Dict) error {
	const libGuidelinesKey = "public.fontInfoGuidelines"
	if raw, ok := lib[libGuidelinesKey]; ok {
		if err := promoteLibGuidelines(fi, lib, libGuidelinesKey, raw); err != nil {
			return err
		}
	}
	return redistributeFontObjectLibs(fi, lib)
}

func promoteLibGuidelines(fi *FontInfo, lib plist.Dict, libGuidelinesKey string, raw interface{}) error {
	list, ok := raw.([]interface{})
	if !ok {
		return ufocore.New(ufocore.FontInfoLoad, "InvalidLibGuidelines")
	}
	for _, item := range list {
		d, err := plist.AsDict(item)
		if err != nil {
			return ufocore.New(ufocore.FontInfoLoad, "InvalidLibGuidelines")
		}
		gl := glyph.Guideline{}
		if x, ok := d["x"]; ok {
			f, _ := plist.AsFloat(x)
			gl.X = &f
		}
		if y, ok := d["y"]; ok {
			f, _ := plist.AsFloat(y)
			gl.Y = &f
		}
		if a, ok := d["angle"]; ok {
			f, _ := plist.AsFloat(a)
			gl.Angle = &f
		}
		if name, ok := d["name"].(string); ok {
			gl.Name = name
		}
		if id, ok := d["identifier"].(string); ok {
			gl.Identifier = glyph.Identifier(id)
		}
		fi.Guidelines = append(fi.Guidelines, gl)
	}
	delete(lib, libGuidelinesKey)
	return nil
}

// redistributeFontObjectLibs removes public.objectLibs from a font's lib
// and assigns each entry onto the font-level guideline carrying the
// matching identifier, mirroring glyph.RedistributeOnLoad's sub-object
// search (here narrowed to fi.Guidelines, the only font-level
// identified objects). Entries matching no guideline are discarded
// silently.
func redistributeFontObjectLibs(fi *FontInfo, lib plist.Dict) error {
	raw, ok := lib[glyph.ObjectLibsKey]
	if !ok {
		return nil
	}
	delete(lib, glyph.ObjectLibsKey)
	objectLibs, err := plist.AsDict(raw)
	if err != nil {
		return ufocore.New(ufocore.FontInfoLoad, "PublicObjectLibsMustBeDictionary")
	}
	for i := range fi.Guidelines {
		gl := &fi.Guidelines[i]
		if gl.Identifier == "" {
			continue
		}
		v, ok := objectLibs[string(gl.Identifier)]
		if !ok {
			continue
		}
		sub, err := plist.AsDict(v)
		if err != nil {
			return ufocore.New(ufocore.FontInfoLoad, "PublicObjectLibsMustBeDictionary")
		}
		gl.Lib = sub
	}
	return nil
}

// CollectGuidelineLibsForSave is the save-time counterpart of
// redistributeFontObjectLibs: it synthesizes an Identifier for any
// font-level guideline carrying a non-empty Lib but none yet (mutating
// fi.Guidelines in place, like glyph.CollectForSave does for sub-objects
// inside a glyph), and returns a public.objectLibs dictionary keyed by
// each such guideline's identifier. Callers merge the result into the
// font's lib under glyph.ObjectLibsKey before writing lib.plist.
func CollectGuidelineLibsForSave(fi *FontInfo) plist.Dict {
	out := plist.Dict{}
	for i := range fi.Guidelines {
		gl := &fi.Guidelines[i]
		if len(gl.Lib) == 0 {
			continue
		}
		if gl.Identifier == "" {
			gl.Identifier = glyph.NewIdentifier()
		}
		out[string(gl.Identifier)] = gl.Lib
	}
	return out
}
