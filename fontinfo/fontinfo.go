/*
Package fontinfo implements fontinfo.plist loading, validation, and
v1/v2 to v3 upconversion.

The record carries every field fontinfo.plist may hold as a named,
optional field covering generic metadata, OS/2, head, hhea, name, vhea,
postscript, woff, and macintosh groups, plus a catch-all Extra map that
preserves any key this package does not know by name.
*/
package fontinfo

import (
	"github.com/typeforge/ufo/glyph"
	"github.com/typeforge/ufo/plist"
	"github.com/typeforge/ufo/ufocore"
)

// FontInfo is the typed, v3-shaped fontinfo.plist record.
type FontInfo struct {
	// Generic identification
	FamilyName          string
	StyleName           string
	StyleMapFamilyName  string
	StyleMapStyleName   string
	VersionMajor        *int
	VersionMinor        *int
	Copyright           string
	Trademark           string
	UnitsPerEm          *float64
	Descender           *float64
	XHeight             *float64
	CapHeight           *float64
	Ascender            *float64
	ItalicAngle         *float64
	Note                string

	// head
	OpenTypeHeadCreated     string
	OpenTypeHeadLowestRecPPEM *int
	OpenTypeHeadFlags         []int

	// hhea
	OpenTypeHheaAscender          *int
	OpenTypeHheaDescender         *int
	OpenTypeHheaLineGap           *int
	OpenTypeHheaCaretSlopeRise    *int
	OpenTypeHheaCaretSlopeRun     *int
	OpenTypeHheaCaretOffset       *int

	// name
	OpenTypeNameDesigner         string
	OpenTypeNameDesignerURL      string
	OpenTypeNameManufacturer     string
	OpenTypeNameManufacturerURL  string
	OpenTypeNameLicense          string
	OpenTypeNameLicenseURL       string
	OpenTypeNameVersion          string
	OpenTypeNameUniqueID         string
	OpenTypeNameDescription      string
	OpenTypeNamePreferredFamilyName string
	OpenTypeNamePreferredSubfamilyName string
	OpenTypeNameCompatibleFullName string
	OpenTypeNameSampleText       string
	OpenTypeNameWWSFamilyName    string
	OpenTypeNameWWSSubfamilyName string

	// OS/2
	OpenTypeOS2WidthClass      *int
	OpenTypeOS2WeightClass     *int
	OpenTypeOS2Selection       []int
	OpenTypeOS2VendorID        string
	OpenTypeOS2Panose          []int
	OpenTypeOS2FamilyClass     []int
	OpenTypeOS2UnicodeRanges   []int
	OpenTypeOS2CodePageRanges  []int
	OpenTypeOS2TypoAscender    *int
	OpenTypeOS2TypoDescender   *int
	OpenTypeOS2TypoLineGap     *int
	OpenTypeOS2WinAscent       *int
	OpenTypeOS2WinDescent      *int
	OpenTypeOS2SubscriptXSize  *int
	OpenTypeOS2SubscriptYSize  *int
	OpenTypeOS2SubscriptXOffset *int
	OpenTypeOS2SubscriptYOffset *int
	OpenTypeOS2SuperscriptXSize *int
	OpenTypeOS2SuperscriptYSize *int
	OpenTypeOS2SuperscriptXOffset *int
	OpenTypeOS2SuperscriptYOffset *int
	OpenTypeOS2StrikeoutSize   *int
	OpenTypeOS2StrikeoutPosition *int

	// vhea
	OpenTypeVheaVertTypoAscender  *int
	OpenTypeVheaVertTypoDescender *int
	OpenTypeVheaVertTypoLineGap   *int
	OpenTypeVheaCaretSlopeRise    *int
	OpenTypeVheaCaretSlopeRun     *int
	OpenTypeVheaCaretOffset       *int

	// postscript
	PostscriptFontName        string
	PostscriptFullName        string
	PostscriptSlantAngle      *float64
	PostscriptUniqueID        *int
	PostscriptUnderlineThickness *float64
	PostscriptUnderlinePosition *float64
	PostscriptIsFixedPitch    *bool
	PostscriptBlueValues      []float64
	PostscriptOtherBlues      []float64
	PostscriptFamilyBlues     []float64
	PostscriptFamilyOtherBlues []float64
	PostscriptStemSnapH       []float64
	PostscriptStemSnapV       []float64
	PostscriptBlueFuzz        *float64
	PostscriptBlueShift       *float64
	PostscriptBlueScale       *float64
	PostscriptForceBold       *bool
	PostscriptDefaultWidthX   *float64
	PostscriptNominalWidthX   *float64
	PostscriptWeightName      string
	PostscriptDefaultCharacter string
	PostscriptWindowsCharacterSet *int

	// macintosh
	MacintoshFONDName     string
	MacintoshFONDFamilyID *int

	// woff
	WoffMajorVersion *int
	WoffMinorVersion *int
	WoffMetadataUniqueID      plist.Dict
	WoffMetadataVendor        plist.Dict
	WoffMetadataCredits       plist.Dict
	WoffMetadataDescription   plist.Dict
	WoffMetadataLicense       plist.Dict
	WoffMetadataCopyright     plist.Dict
	WoffMetadataTrademark     plist.Dict
	WoffMetadataLicensee      plist.Dict
	WoffMetadataExtensions    []interface{}

	// gasp
	OpenTypeGaspRangeRecords []GaspRangeRecord

	Guidelines []glyph.Guideline

	// Extra preserves every key not named above, verbatim.
	Extra plist.Dict
}

// GaspRangeRecord is one entry of openTypeGaspRangeRecords; ranges must be
// given in ascending rangeMaxPPEM order.
type GaspRangeRecord struct {
	RangeMaxPPEM    int
	RangeGaspBehavior []int
}

var widthClassNames = map[int]string{
	1: "Ultra-condensed", 2: "Extra-condensed", 3: "Condensed",
	4: "Semi-condensed", 5: "Medium (normal)", 6: "Semi-expanded",
	7: "Expanded", 8: "Extra-expanded", 9: "Ultra-expanded",
}

// Validate checks fi against every fontinfo consistency rule, returning
// the first violation found.
func Validate(fi *FontInfo) error {
	for _, bit := range fi.OpenTypeOS2Selection {
		if bit == 0 || bit == 5 || bit == 6 {
			return ufocore.New(ufocore.FontInfoLoad, "DisallowedSelectionBits")
		}
	}
	if len(fi.OpenTypeHeadCreated) > 0 && !isValidHeadCreated(fi.OpenTypeHeadCreated) {
		return ufocore.New(ufocore.FontInfoLoad, "InvalidOpenTypeHeadCreatedDate")
	}
	if len(fi.OpenTypeOS2FamilyClass) > 0 {
		if len(fi.OpenTypeOS2FamilyClass) != 2 ||
			fi.OpenTypeOS2FamilyClass[0] < 0 || fi.OpenTypeOS2FamilyClass[0] > 14 ||
			fi.OpenTypeOS2FamilyClass[1] < 0 || fi.OpenTypeOS2FamilyClass[1] > 15 {
			return ufocore.New(ufocore.FontInfoLoad, "InvalidOs2FamilyClass")
		}
	}
	checks := []struct {
		vals []float64
		max  int
	}{
		{fi.PostscriptBlueValues, 14},
		{fi.PostscriptOtherBlues, 10},
		{fi.PostscriptFamilyBlues, 14},
		{fi.PostscriptFamilyOtherBlues, 10},
		{fi.PostscriptStemSnapH, 12},
		{fi.PostscriptStemSnapV, 12},
	}
	for _, c := range checks {
		if len(c.vals) > c.max {
			return ufocore.New(ufocore.FontInfoLoad, "InvalidPostscriptListLength")
		}
	}
	if fi.OpenTypeOS2WidthClass != nil {
		if _, ok := widthClassNames[*fi.OpenTypeOS2WidthClass]; !ok {
			return ufocore.New(ufocore.FontInfoLoad, "UnknownWidthClass")
		}
	}
	for i := 1; i < len(fi.OpenTypeGaspRangeRecords); i++ {
		if fi.OpenTypeGaspRangeRecords[i].RangeMaxPPEM <= fi.OpenTypeGaspRangeRecords[i-1].RangeMaxPPEM {
			return ufocore.New(ufocore.FontInfoLoad, "UnsortedGaspEntries")
		}
	}
	seen := make(map[glyph.Identifier]bool, len(fi.Guidelines))
	for _, gl := range fi.Guidelines {
		if gl.Identifier == "" {
			continue
		}
		if seen[gl.Identifier] {
			return ufocore.New(ufocore.FontInfoLoad, "DuplicateGuidelineIdentifiers")
		}
		seen[gl.Identifier] = true
	}
	for attr, v := range map[string]plist.Dict{
		"uniqueID": fi.WoffMetadataUniqueID, "vendor": fi.WoffMetadataVendor,
		"credits": fi.WoffMetadataCredits, "description": fi.WoffMetadataDescription,
		"license": fi.WoffMetadataLicense, "copyright": fi.WoffMetadataCopyright,
		"trademark": fi.WoffMetadataTrademark, "licensee": fi.WoffMetadataLicensee,
	} {
		if v != nil && len(v) == 0 {
			return ufocore.New(ufocore.FontInfoLoad, "EmptyWoffAttribute").WithPath(attr)
		}
	}
	return nil
}

// isValidHeadCreated checks the "YYYY/MM/DD HH:MM:SS" form
// openTypeHeadCreated is specified in.
func isValidHeadCreated(s string) bool {
	if len(s) != 19 {
		return false
	}
	layout := "dddd/dd/dd dd:dd:dd"
	for i, c := range s {
		want := layout[i]
		if want == 'd' {
			if c < '0' || c > '9' {
				return false
			}
		} else if byte(c) != want {
			return false
		}
	}
	return true
}
