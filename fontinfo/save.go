package fontinfo

import (
	"github.com/typeforge/ufo/glyph"
	"github.com/typeforge/ufo/plist"
)

func formatColorForSave(c glyph.Color) string { return glyph.FormatColorString(c) }

// Save renders fi as a raw fontinfo.plist dict, ready for plist.Marshal.
// Extra is merged in first so that typed fields always win over a stale
// passthrough entry of the same name.
func Save(fi *FontInfo) plist.Dict {
	d := plist.Dict{}
	for k, v := range fi.Extra {
		d[k] = v
	}
	setStr(d, "familyName", fi.FamilyName)
	setStr(d, "styleName", fi.StyleName)
	setStr(d, "styleMapFamilyName", fi.StyleMapFamilyName)
	setStr(d, "styleMapStyleName", fi.StyleMapStyleName)
	setIntPtr(d, "versionMajor", fi.VersionMajor)
	setIntPtr(d, "versionMinor", fi.VersionMinor)
	setStr(d, "copyright", fi.Copyright)
	setStr(d, "trademark", fi.Trademark)
	setFloatPtr(d, "unitsPerEm", fi.UnitsPerEm)
	setFloatPtr(d, "descender", fi.Descender)
	setFloatPtr(d, "xHeight", fi.XHeight)
	setFloatPtr(d, "capHeight", fi.CapHeight)
	setFloatPtr(d, "ascender", fi.Ascender)
	setFloatPtr(d, "italicAngle", fi.ItalicAngle)
	setStr(d, "note", fi.Note)

	setStr(d, "openTypeHeadCreated", fi.OpenTypeHeadCreated)
	setIntPtr(d, "openTypeHeadLowestRecPPEM", fi.OpenTypeHeadLowestRecPPEM)
	setIntList(d, "openTypeHeadFlags", fi.OpenTypeHeadFlags)

	setIntPtr(d, "openTypeHheaAscender", fi.OpenTypeHheaAscender)
	setIntPtr(d, "openTypeHheaDescender", fi.OpenTypeHheaDescender)
	setIntPtr(d, "openTypeHheaLineGap", fi.OpenTypeHheaLineGap)
	setIntPtr(d, "openTypeHheaCaretSlopeRise", fi.OpenTypeHheaCaretSlopeRise)
	setIntPtr(d, "openTypeHheaCaretSlopeRun", fi.OpenTypeHheaCaretSlopeRun)
	setIntPtr(d, "openTypeHheaCaretOffset", fi.OpenTypeHheaCaretOffset)

	setStr(d, "openTypeNameDesigner", fi.OpenTypeNameDesigner)
	setStr(d, "openTypeNameDesignerURL", fi.OpenTypeNameDesignerURL)
	setStr(d, "openTypeNameManufacturer", fi.OpenTypeNameManufacturer)
	setStr(d, "openTypeNameManufacturerURL", fi.OpenTypeNameManufacturerURL)
	setStr(d, "openTypeNameLicense", fi.OpenTypeNameLicense)
	setStr(d, "openTypeNameLicenseURL", fi.OpenTypeNameLicenseURL)
	setStr(d, "openTypeNameVersion", fi.OpenTypeNameVersion)
	setStr(d, "openTypeNameUniqueID", fi.OpenTypeNameUniqueID)
	setStr(d, "openTypeNameDescription", fi.OpenTypeNameDescription)
	setStr(d, "openTypeNamePreferredFamilyName", fi.OpenTypeNamePreferredFamilyName)
	setStr(d, "openTypeNamePreferredSubfamilyName", fi.OpenTypeNamePreferredSubfamilyName)
	setStr(d, "openTypeNameCompatibleFullName", fi.OpenTypeNameCompatibleFullName)
	setStr(d, "openTypeNameSampleText", fi.OpenTypeNameSampleText)
	setStr(d, "openTypeNameWWSFamilyName", fi.OpenTypeNameWWSFamilyName)
	setStr(d, "openTypeNameWWSSubfamilyName", fi.OpenTypeNameWWSSubfamilyName)

	setIntPtr(d, "openTypeOS2WidthClass", fi.OpenTypeOS2WidthClass)
	setIntPtr(d, "openTypeOS2WeightClass", fi.OpenTypeOS2WeightClass)
	setIntList(d, "openTypeOS2Selection", fi.OpenTypeOS2Selection)
	setStr(d, "openTypeOS2VendorID", fi.OpenTypeOS2VendorID)
	setIntList(d, "openTypeOS2Panose", fi.OpenTypeOS2Panose)
	setIntList(d, "openTypeOS2FamilyClass", fi.OpenTypeOS2FamilyClass)
	setIntList(d, "openTypeOS2UnicodeRanges", fi.OpenTypeOS2UnicodeRanges)
	setIntList(d, "openTypeOS2CodePageRanges", fi.OpenTypeOS2CodePageRanges)
	setIntPtr(d, "openTypeOS2TypoAscender", fi.OpenTypeOS2TypoAscender)
	setIntPtr(d, "openTypeOS2TypoDescender", fi.OpenTypeOS2TypoDescender)
	setIntPtr(d, "openTypeOS2TypoLineGap", fi.OpenTypeOS2TypoLineGap)
	setIntPtr(d, "openTypeOS2WinAscent", fi.OpenTypeOS2WinAscent)
	setIntPtr(d, "openTypeOS2WinDescent", fi.OpenTypeOS2WinDescent)

	setStr(d, "postscriptFontName", fi.PostscriptFontName)
	setStr(d, "postscriptFullName", fi.PostscriptFullName)
	setFloatPtr(d, "postscriptSlantAngle", fi.PostscriptSlantAngle)
	setIntPtr(d, "postscriptUniqueID", fi.PostscriptUniqueID)
	setFloatPtr(d, "postscriptUnderlineThickness", fi.PostscriptUnderlineThickness)
	setFloatPtr(d, "postscriptUnderlinePosition", fi.PostscriptUnderlinePosition)
	setBoolPtr(d, "postscriptIsFixedPitch", fi.PostscriptIsFixedPitch)
	setFloatList(d, "postscriptBlueValues", fi.PostscriptBlueValues)
	setFloatList(d, "postscriptOtherBlues", fi.PostscriptOtherBlues)
	setFloatList(d, "postscriptFamilyBlues", fi.PostscriptFamilyBlues)
	setFloatList(d, "postscriptFamilyOtherBlues", fi.PostscriptFamilyOtherBlues)
	setFloatList(d, "postscriptStemSnapH", fi.PostscriptStemSnapH)
	setFloatList(d, "postscriptStemSnapV", fi.PostscriptStemSnapV)
	setFloatPtr(d, "postscriptBlueFuzz", fi.PostscriptBlueFuzz)
	setFloatPtr(d, "postscriptBlueShift", fi.PostscriptBlueShift)
	setFloatPtr(d, "postscriptBlueScale", fi.PostscriptBlueScale)
	setBoolPtr(d, "postscriptForceBold", fi.PostscriptForceBold)
	setFloatPtr(d, "postscriptDefaultWidthX", fi.PostscriptDefaultWidthX)
	setFloatPtr(d, "postscriptNominalWidthX", fi.PostscriptNominalWidthX)
	setStr(d, "postscriptWeightName", fi.PostscriptWeightName)
	setStr(d, "postscriptDefaultCharacter", fi.PostscriptDefaultCharacter)
	setIntPtr(d, "postscriptWindowsCharacterSet", fi.PostscriptWindowsCharacterSet)

	setStr(d, "macintoshFONDName", fi.MacintoshFONDName)
	setIntPtr(d, "macintoshFONDFamilyID", fi.MacintoshFONDFamilyID)

	setIntPtr(d, "woffMajorVersion", fi.WoffMajorVersion)
	setIntPtr(d, "woffMinorVersion", fi.WoffMinorVersion)
	setDict(d, "woffMetadataUniqueID", fi.WoffMetadataUniqueID)
	setDict(d, "woffMetadataVendor", fi.WoffMetadataVendor)
	setDict(d, "woffMetadataCredits", fi.WoffMetadataCredits)
	setDict(d, "woffMetadataDescription", fi.WoffMetadataDescription)
	setDict(d, "woffMetadataLicense", fi.WoffMetadataLicense)
	setDict(d, "woffMetadataCopyright", fi.WoffMetadataCopyright)
	setDict(d, "woffMetadataTrademark", fi.WoffMetadataTrademark)
	setDict(d, "woffMetadataLicensee", fi.WoffMetadataLicensee)

	if len(fi.OpenTypeGaspRangeRecords) > 0 {
		records := make([]interface{}, 0, len(fi.OpenTypeGaspRangeRecords))
		for _, r := range fi.OpenTypeGaspRangeRecords {
			behavior := make([]interface{}, len(r.RangeGaspBehavior))
			for i, b := range r.RangeGaspBehavior {
				behavior[i] = b
			}
			records = append(records, plist.Dict{
				"rangeMaxPPEM":      r.RangeMaxPPEM,
				"rangeGaspBehavior": behavior,
			})
		}
		d["openTypeGaspRangeRecords"] = records
	}
	if len(fi.Guidelines) > 0 {
		list := make([]interface{}, 0, len(fi.Guidelines))
		for _, gl := range fi.Guidelines {
			gd := plist.Dict{}
			if gl.X != nil {
				gd["x"] = *gl.X
			}
			if gl.Y != nil {
				gd["y"] = *gl.Y
			}
			if gl.Angle != nil {
				gd["angle"] = *gl.Angle
			}
			if gl.Name != "" {
				gd["name"] = gl.Name
			}
			if gl.Color != nil {
				gd["color"] = formatColorForSave(*gl.Color)
			}
			if gl.Identifier != "" {
				gd["identifier"] = string(gl.Identifier)
			}
			list = append(list, gd)
		}
		d["guidelines"] = list
	}
	return d
}

func setStr(d plist.Dict, key, v string) {
	if v != "" {
		d[key] = v
	}
}

func setIntPtr(d plist.Dict, key string, v *int) {
	if v != nil {
		d[key] = *v
	}
}

func setFloatPtr(d plist.Dict, key string, v *float64) {
	if v != nil {
		d[key] = *v
	}
}

func setBoolPtr(d plist.Dict, key string, v *bool) {
	if v != nil {
		d[key] = *v
	}
}

func setIntList(d plist.Dict, key string, v []int) {
	if len(v) == 0 {
		return
	}
	list := make([]interface{}, len(v))
	for i, n := range v {
		list[i] = n
	}
	d[key] = list
}

func setFloatList(d plist.Dict, key string, v []float64) {
	if len(v) == 0 {
		return
	}
	list := make([]interface{}, len(v))
	for i, n := range v {
		list[i] = n
	}
	d[key] = list
}

func setDict(d plist.Dict, key string, v plist.Dict) {
	if v != nil {
		d[key] = v
	}
}
