package fontinfo

import (
	"github.com/typeforge/ufo/glyph"
	"github.com/typeforge/ufo/plist"
	"github.com/typeforge/ufo/ufocore"
)

// knownKeys lists every fontinfo.plist key this package maps onto a typed
// field. Anything else found in the raw dict is preserved verbatim in
// Extra.
var knownKeys = map[string]bool{
	"familyName": true, "styleName": true, "styleMapFamilyName": true,
	"styleMapStyleName": true, "versionMajor": true, "versionMinor": true,
	"copyright": true, "trademark": true, "unitsPerEm": true, "descender": true,
	"xHeight": true, "capHeight": true, "ascender": true, "italicAngle": true,
	"note": true, "guidelines": true,
	"openTypeHeadCreated": true, "openTypeHeadLowestRecPPEM": true, "openTypeHeadFlags": true,
	"openTypeHheaAscender": true, "openTypeHheaDescender": true, "openTypeHheaLineGap": true,
	"openTypeHheaCaretSlopeRise": true, "openTypeHheaCaretSlopeRun": true, "openTypeHheaCaretOffset": true,
	"openTypeNameDesigner": true, "openTypeNameDesignerURL": true,
	"openTypeNameManufacturer": true, "openTypeNameManufacturerURL": true,
	"openTypeNameLicense": true, "openTypeNameLicenseURL": true, "openTypeNameVersion": true,
	"openTypeNameUniqueID": true, "openTypeNameDescription": true,
	"openTypeNamePreferredFamilyName": true, "openTypeNamePreferredSubfamilyName": true,
	"openTypeNameCompatibleFullName": true, "openTypeNameSampleText": true,
	"openTypeNameWWSFamilyName": true, "openTypeNameWWSSubfamilyName": true,
	"openTypeOS2WidthClass": true, "openTypeOS2WeightClass": true, "openTypeOS2Selection": true,
	"openTypeOS2VendorID": true, "openTypeOS2Panose": true, "openTypeOS2FamilyClass": true,
	"openTypeOS2UnicodeRanges": true, "openTypeOS2CodePageRanges": true,
	"openTypeOS2TypoAscender": true, "openTypeOS2TypoDescender": true, "openTypeOS2TypoLineGap": true,
	"openTypeOS2WinAscent": true, "openTypeOS2WinDescent": true,
	"openTypeOS2SubscriptXSize": true, "openTypeOS2SubscriptYSize": true,
	"openTypeOS2SubscriptXOffset": true, "openTypeOS2SubscriptYOffset": true,
	"openTypeOS2SuperscriptXSize": true, "openTypeOS2SuperscriptYSize": true,
	"openTypeOS2SuperscriptXOffset": true, "openTypeOS2SuperscriptYOffset": true,
	"openTypeOS2StrikeoutSize": true, "openTypeOS2StrikeoutPosition": true,
	"openTypeVheaVertTypoAscender": true, "openTypeVheaVertTypoDescender": true,
	"openTypeVheaVertTypoLineGap": true, "openTypeVheaCaretSlopeRise": true,
	"openTypeVheaCaretSlopeRun": true, "openTypeVheaCaretOffset": true,
	"postscriptFontName": true, "postscriptFullName": true, "postscriptSlantAngle": true,
	"postscriptUniqueID": true, "postscriptUnderlineThickness": true,
	"postscriptUnderlinePosition": true, "postscriptIsFixedPitch": true,
	"postscriptBlueValues": true, "postscriptOtherBlues": true, "postscriptFamilyBlues": true,
	"postscriptFamilyOtherBlues": true, "postscriptStemSnapH": true, "postscriptStemSnapV": true,
	"postscriptBlueFuzz": true, "postscriptBlueShift": true, "postscriptBlueScale": true,
	"postscriptForceBold": true, "postscriptDefaultWidthX": true, "postscriptNominalWidthX": true,
	"postscriptWeightName": true, "postscriptDefaultCharacter": true,
	"postscriptWindowsCharacterSet": true,
	"macintoshFONDName": true, "macintoshFONDFamilyID": true,
	"woffMajorVersion": true, "woffMinorVersion": true,
	"woffMetadataUniqueID": true, "woffMetadataVendor": true, "woffMetadataCredits": true,
	"woffMetadataDescription": true, "woffMetadataLicense": true, "woffMetadataCopyright": true,
	"woffMetadataTrademark": true, "woffMetadataLicensee": true, "woffMetadataExtensions": true,
	"openTypeGaspRangeRecords": true,
}

func strVal(d plist.Dict, key string) string {
	s, _ := d[key].(string)
	return s
}

func intPtr(d plist.Dict, key string) *int {
	v, ok := d[key]
	if !ok {
		return nil
	}
	n, err := plist.AsInt(v)
	if err != nil {
		return nil
	}
	return &n
}

func floatPtr(d plist.Dict, key string) *float64 {
	v, ok := d[key]
	if !ok {
		return nil
	}
	f, err := plist.AsFloat(v)
	if err != nil {
		return nil
	}
	return &f
}

func boolPtr(d plist.Dict, key string) *bool {
	v, ok := d[key]
	if !ok {
		return nil
	}
	b, err := plist.AsBool(v)
	if err != nil {
		return nil
	}
	return &b
}

func intList(d plist.Dict, key string) []int {
	raw, ok := d[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]int, 0, len(raw))
	for _, v := range raw {
		n, err := plist.AsInt(v)
		if err == nil {
			out = append(out, n)
		}
	}
	return out
}

func floatList(d plist.Dict, key string) []float64 {
	raw, ok := d[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]float64, 0, len(raw))
	for _, v := range raw {
		f, err := plist.AsFloat(v)
		if err == nil {
			out = append(out, f)
		}
	}
	return out
}

func dictVal(d plist.Dict, key string) plist.Dict {
	v, ok := d[key]
	if !ok {
		return nil
	}
	sub, err := plist.AsDict(v)
	if err != nil {
		return nil
	}
	return sub
}

// Load decodes a raw fontinfo.plist dict into a FontInfo, upconverting v1
// fields and validating the result.
func Load(d plist.Dict) (*FontInfo, error) {
	fi := &FontInfo{
		FamilyName:         strVal(d, "familyName"),
		StyleName:          strVal(d, "styleName"),
		StyleMapFamilyName: strVal(d, "styleMapFamilyName"),
		StyleMapStyleName:  strVal(d, "styleMapStyleName"),
		VersionMajor:       intPtr(d, "versionMajor"),
		VersionMinor:       intPtr(d, "versionMinor"),
		Copyright:          strVal(d, "copyright"),
		Trademark:          strVal(d, "trademark"),
		UnitsPerEm:         floatPtr(d, "unitsPerEm"),
		Descender:          floatPtr(d, "descender"),
		XHeight:            floatPtr(d, "xHeight"),
		CapHeight:          floatPtr(d, "capHeight"),
		Ascender:           floatPtr(d, "ascender"),
		ItalicAngle:        floatPtr(d, "italicAngle"),
		Note:               strVal(d, "note"),

		OpenTypeHeadCreated:       strVal(d, "openTypeHeadCreated"),
		OpenTypeHeadLowestRecPPEM: intPtr(d, "openTypeHeadLowestRecPPEM"),
		OpenTypeHeadFlags:         intList(d, "openTypeHeadFlags"),

		OpenTypeHheaAscender:       intPtr(d, "openTypeHheaAscender"),
		OpenTypeHheaDescender:      intPtr(d, "openTypeHheaDescender"),
		OpenTypeHheaLineGap:        intPtr(d, "openTypeHheaLineGap"),
		OpenTypeHheaCaretSlopeRise: intPtr(d, "openTypeHheaCaretSlopeRise"),
		OpenTypeHheaCaretSlopeRun:  intPtr(d, "openTypeHheaCaretSlopeRun"),
		OpenTypeHheaCaretOffset:    intPtr(d, "openTypeHheaCaretOffset"),

		OpenTypeNameDesigner:               strVal(d, "openTypeNameDesigner"),
		OpenTypeNameDesignerURL:            strVal(d, "openTypeNameDesignerURL"),
		OpenTypeNameManufacturer:           strVal(d, "openTypeNameManufacturer"),
		OpenTypeNameManufacturerURL:        strVal(d, "openTypeNameManufacturerURL"),
		OpenTypeNameLicense:                strVal(d, "openTypeNameLicense"),
		OpenTypeNameLicenseURL:             strVal(d, "openTypeNameLicenseURL"),
		OpenTypeNameVersion:                strVal(d, "openTypeNameVersion"),
		OpenTypeNameUniqueID:               strVal(d, "openTypeNameUniqueID"),
		OpenTypeNameDescription:            strVal(d, "openTypeNameDescription"),
		OpenTypeNamePreferredFamilyName:    strVal(d, "openTypeNamePreferredFamilyName"),
		OpenTypeNamePreferredSubfamilyName: strVal(d, "openTypeNamePreferredSubfamilyName"),
		OpenTypeNameCompatibleFullName:     strVal(d, "openTypeNameCompatibleFullName"),
		OpenTypeNameSampleText:             strVal(d, "openTypeNameSampleText"),
		OpenTypeNameWWSFamilyName:          strVal(d, "openTypeNameWWSFamilyName"),
		OpenTypeNameWWSSubfamilyName:       strVal(d, "openTypeNameWWSSubfamilyName"),

		OpenTypeOS2WidthClass:     intPtr(d, "openTypeOS2WidthClass"),
		OpenTypeOS2WeightClass:    intPtr(d, "openTypeOS2WeightClass"),
		OpenTypeOS2Selection:      intList(d, "openTypeOS2Selection"),
		OpenTypeOS2VendorID:       strVal(d, "openTypeOS2VendorID"),
		OpenTypeOS2Panose:         intList(d, "openTypeOS2Panose"),
		OpenTypeOS2FamilyClass:    intList(d, "openTypeOS2FamilyClass"),
		OpenTypeOS2UnicodeRanges:  intList(d, "openTypeOS2UnicodeRanges"),
		OpenTypeOS2CodePageRanges: intList(d, "openTypeOS2CodePageRanges"),
		OpenTypeOS2TypoAscender:   intPtr(d, "openTypeOS2TypoAscender"),
		OpenTypeOS2TypoDescender:  intPtr(d, "openTypeOS2TypoDescender"),
		OpenTypeOS2TypoLineGap:    intPtr(d, "openTypeOS2TypoLineGap"),
		OpenTypeOS2WinAscent:      intPtr(d, "openTypeOS2WinAscent"),
		OpenTypeOS2WinDescent:     intPtr(d, "openTypeOS2WinDescent"),

		PostscriptFontName:            strVal(d, "postscriptFontName"),
		PostscriptFullName:            strVal(d, "postscriptFullName"),
		PostscriptSlantAngle:          floatPtr(d, "postscriptSlantAngle"),
		PostscriptUniqueID:            intPtr(d, "postscriptUniqueID"),
		PostscriptUnderlineThickness:  floatPtr(d, "postscriptUnderlineThickness"),
		PostscriptUnderlinePosition:   floatPtr(d, "postscriptUnderlinePosition"),
		PostscriptIsFixedPitch:        boolPtr(d, "postscriptIsFixedPitch"),
		PostscriptBlueValues:          floatList(d, "postscriptBlueValues"),
		PostscriptOtherBlues:          floatList(d, "postscriptOtherBlues"),
		PostscriptFamilyBlues:         floatList(d, "postscriptFamilyBlues"),
		PostscriptFamilyOtherBlues:    floatList(d, "postscriptFamilyOtherBlues"),
		PostscriptStemSnapH:           floatList(d, "postscriptStemSnapH"),
		PostscriptStemSnapV:           floatList(d, "postscriptStemSnapV"),
		PostscriptBlueFuzz:            floatPtr(d, "postscriptBlueFuzz"),
		PostscriptBlueShift:           floatPtr(d, "postscriptBlueShift"),
		PostscriptBlueScale:           floatPtr(d, "postscriptBlueScale"),
		PostscriptForceBold:           boolPtr(d, "postscriptForceBold"),
		PostscriptDefaultWidthX:       floatPtr(d, "postscriptDefaultWidthX"),
		PostscriptNominalWidthX:       floatPtr(d, "postscriptNominalWidthX"),
		PostscriptWeightName:          strVal(d, "postscriptWeightName"),
		PostscriptDefaultCharacter:    strVal(d, "postscriptDefaultCharacter"),
		PostscriptWindowsCharacterSet: intPtr(d, "postscriptWindowsCharacterSet"),

		MacintoshFONDName:     strVal(d, "macintoshFONDName"),
		MacintoshFONDFamilyID: intPtr(d, "macintoshFONDFamilyID"),

		WoffMajorVersion:        intPtr(d, "woffMajorVersion"),
		WoffMinorVersion:        intPtr(d, "woffMinorVersion"),
		WoffMetadataUniqueID:    dictVal(d, "woffMetadataUniqueID"),
		WoffMetadataVendor:      dictVal(d, "woffMetadataVendor"),
		WoffMetadataCredits:     dictVal(d, "woffMetadataCredits"),
		WoffMetadataDescription: dictVal(d, "woffMetadataDescription"),
		WoffMetadataLicense:     dictVal(d, "woffMetadataLicense"),
		WoffMetadataCopyright:   dictVal(d, "woffMetadataCopyright"),
		WoffMetadataTrademark:   dictVal(d, "woffMetadataTrademark"),
		WoffMetadataLicensee:    dictVal(d, "woffMetadataLicensee"),

		Extra: plist.Dict{},
	}
	if records, ok := d["openTypeGaspRangeRecords"].([]interface{}); ok {
		for _, r := range records {
			rd, err := plist.AsDict(r)
			if err != nil {
				continue
			}
			ppem, _ := plist.AsInt(rd["rangeMaxPPEM"])
			fi.OpenTypeGaspRangeRecords = append(fi.OpenTypeGaspRangeRecords, GaspRangeRecord{
				RangeMaxPPEM:      ppem,
				RangeGaspBehavior: intList(rd, "rangeGaspBehavior"),
			})
		}
	}
	if guidelines, ok := d["guidelines"].([]interface{}); ok {
		for _, item := range guidelines {
			gd, err := plist.AsDict(item)
			if err != nil {
				continue
			}
			gl := decodeGuideline(gd)
			fi.Guidelines = append(fi.Guidelines, gl)
		}
	}
	for k, v := range d {
		if !knownKeys[k] {
			fi.Extra[k] = v
			if !ufocore.AllowUnknownFontInfoKeysQuietly() {
				ufocore.T().Infof("fontinfo: preserving unknown key %q verbatim", k)
			}
		}
	}

	if err := UpconvertV1(fi); err != nil {
		return nil, err
	}
	if err := Validate(fi); err != nil {
		return nil, err
	}
	return fi, nil
}

func decodeGuideline(d plist.Dict) glyph.Guideline {
	gl := glyph.Guideline{
		Name: strVal(d, "name"),
	}
	gl.X = floatPtr(d, "x")
	gl.Y = floatPtr(d, "y")
	gl.Angle = floatPtr(d, "angle")
	if id, ok := d["identifier"].(string); ok {
		gl.Identifier = glyph.Identifier(id)
	}
	if c, ok := d["color"].(string); ok {
		if col, ok := glyph.ParseColorString(c); ok {
			gl.Color = &col
		}
	}
	return gl
}
