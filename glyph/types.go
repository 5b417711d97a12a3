/*
Package glyph implements the .glif glyph format: its data model, its
streaming parser, its canonical serializer, and the public.objectLibs
redistribution algorithm that threads lib content between a glyph's lib
dictionary and the identified sub-objects it describes.

This package is a dependency leaf: it knows nothing about layers, fonts,
or on-disk package layout, only about a single glyph's bytes in and bytes
out.
*/
package glyph

import "github.com/typeforge/ufo/plist"

// GlifVersion is the .glif format version a Glyph was parsed from (or is
// to be written as). Only V2 is ever written by this library; V1 is
// accepted on read and preserved on the in-memory Glyph until rewritten.
type GlifVersion int

const (
	V1 GlifVersion = 1
	V2 GlifVersion = 2
)

// PointType distinguishes on-curve and off-curve contour points, and the
// special leading Move point of an open contour.
type PointType int

const (
	// OffCurve is the default point type when a <point> carries no type
	// attribute at all.
	OffCurve PointType = iota
	Move
	Line
	Curve
	QCurve
)

func (pt PointType) String() string {
	switch pt {
	case Move:
		return "move"
	case Line:
		return "line"
	case Curve:
		return "curve"
	case QCurve:
		return "qcurve"
	case OffCurve:
		return "offcurve"
	}
	return "unknown"
}

// Color is a UFO rrggbbaa color value: four channels in [0,1], each
// round-tripped through a two-digit hex byte.
type Color struct {
	Red, Green, Blue, Alpha float64
}

// Identifier is an opaque, glyph-unique name for a sub-object: 1-100
// printable ASCII characters (0x20-0x7E). See IsValidIdentifier.
type Identifier string

// AffineTransform is the six-member 2D affine transform used by
// components and images: [xScale xyScale yxScale yScale xOffset yOffset]
// in UFO's naming (note UFO calls the off-diagonal terms xyScale/yxScale).
type AffineTransform struct {
	XScale, XYScale, YXScale, YScale, XOffset, YOffset float64
}

// Identity is the default affine transform; its components are the ones
// the serializer omits from <component>/<image> attributes.
var Identity = AffineTransform{XScale: 1, YScale: 1}

// Guideline is positional metadata attached to a glyph or to a font's
// fontinfo. Exactly one of (X set, Y set) must hold for a pure horizontal
// or vertical guideline; Angle requires both X and Y to be set.
type Guideline struct {
	X, Y       *float64
	Angle      *float64
	Name       string
	Color      *Color
	Identifier Identifier
	Lib        plist.Dict
}

// Anchor is a named point of interest in a glyph (e.g. for diacritic
// attachment), optionally colored and lib-bearing.
type Anchor struct {
	X, Y       float64
	Name       string
	Color      *Color
	Identifier Identifier
	Lib        plist.Dict
}

// ContourPoint is one vertex of a Contour.
type ContourPoint struct {
	X, Y       float64
	Type       PointType
	Smooth     bool
	Name       string
	Identifier Identifier
	Lib        plist.Dict
}

// Contour is an ordered sequence of points describing a path. It is open
// iff its first point has Type == Move.
type Contour struct {
	Identifier Identifier
	Points     []ContourPoint
	Lib        plist.Dict
}

// IsOpen reports whether c is an open contour (begins with a Move point).
// An empty contour is considered closed, matching the parser: it can only
// have been produced by an <outline> that contained an empty <contour/>.
func (c Contour) IsOpen() bool {
	return len(c.Points) > 0 && c.Points[0].Type == Move
}

// Component references another glyph's outline under an affine transform.
// Base is not resolved at load time; resolving it against a Layer/Font is
// the caller's concern.
type Component struct {
	Base       string
	Transform  AffineTransform
	Identifier Identifier
	Lib        plist.Dict
}

// Outline is the drawing of a glyph: its contours and component
// references, in the order encountered inside <outline>.
type Outline struct {
	Contours   []Contour
	Components []Component
}

// Advance is a glyph's advance width/height, in the font's units.
type Advance struct {
	Width, Height float64
}

// Image references a background image with a placement transform, V2 only.
type Image struct {
	FileName   string
	Color      *Color
	Transform  AffineTransform
	Identifier Identifier
}

// Glyph is the in-memory form of a single .glif file.
type Glyph struct {
	Name       string
	Format     GlifVersion
	Advance    *Advance
	Codepoints []rune
	Note       string
	Guidelines []Guideline
	// Anchors holds every <anchor> element plus, for a V1 glyph, any
	// named Move point that stood outside a contour path: the parser
	// lifts those out of Outline.Contours and into Anchors, without
	// touching Format.
	Anchors []Anchor
	Outline    *Outline
	Image      *Image
	Lib        plist.Dict
}

// New returns an empty V2 glyph with the given name.
func New(name string) *Glyph {
	return &Glyph{Name: name, Format: V2}
}
