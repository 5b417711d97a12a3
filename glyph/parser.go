package glyph

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/typeforge/ufo/intern"
	"github.com/typeforge/ufo/plist"
	"github.com/typeforge/ufo/ufocore"
)

// Parse reads raw .glif bytes into a Glyph. names may be nil, in which
// case glyph/component/point names are not interned. sourcePath is used
// only for error context and may be empty.
func Parse(data []byte, names *intern.Table, sourcePath string) (*Glyph, error) {
	p := &parser{
		dec:  xml.NewDecoder(bytes.NewReader(data)),
		data: data,
		ids:  newIdentifierSet(),
		path: sourcePath,
	}
	if names != nil {
		p.intern = names.Intern
	} else {
		p.intern = func(s string) string { return s }
	}
	g, err := p.parseGlyph()
	if err != nil {
		return nil, err
	}
	extractV1Anchors(g)
	if err := RedistributeOnLoad(g); err != nil {
		if oe, ok := err.(*objectLibsError); ok {
			return nil, p.err(oe.reason)
		}
		return nil, p.err(ReasonBadLib)
	}
	return g, nil
}

type parser struct {
	dec    *xml.Decoder
	data   []byte
	ids    identifierSet
	path   string
	intern func(string) string
}

func (p *parser) err(reason string) error {
	e := ufocore.New(ufocore.GlifLoad, reason).WithPos(p.dec.InputOffset())
	if p.path != "" {
		e = e.WithPath(p.path)
	}
	return e
}

func (p *parser) errNamed(reason, glyphName string) error {
	e := p.err(reason).(*ufocore.Error)
	e.Glyph = glyphName
	return e
}

// nextStart skips leading ProcInst/Comment/whitespace CharData and returns
// the first StartElement token, or an error if none is found.
func (p *parser) nextStart() (xml.StartElement, error) {
	for {
		tok, err := p.dec.Token()
		if err != nil {
			if err == io.EOF {
				return xml.StartElement{}, p.err(ReasonUnexpectedEOF)
			}
			return xml.StartElement{}, p.err(ReasonUnexpectedTag)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return t, nil
		case xml.CharData:
			if len(bytes.TrimSpace(t)) != 0 {
				return xml.StartElement{}, p.err(ReasonUnexpectedTag)
			}
		default:
			// comments, directives, proc-insts: skip.
		}
	}
}

var glyphAttrs = map[string]bool{"name": true, "format": true, "formatMinor": true}

func (p *parser) parseGlyph() (*Glyph, error) {
	root, err := p.nextStart()
	if err != nil {
		return nil, err
	}
	if root.Name.Local != "glyph" {
		return nil, p.err(ReasonWrongFirstElement)
	}
	as := newAttrSet(root.Attr, glyphAttrs)
	if !as.ok() {
		return nil, p.err(ReasonUnexpectedAttribute)
	}
	name, _ := as.get("name")
	formatStr, _ := as.get("format")
	var format GlifVersion
	switch formatStr {
	case "1":
		format = V1
	case "2":
		format = V2
	default:
		return nil, p.err(ReasonUnsupportedGlifVersion)
	}
	g := &Glyph{Name: p.intern(name), Format: format}

	var sawAdvance, sawNote, sawImage, sawOutline, sawLib bool
	for {
		tok, err := p.dec.Token()
		if err != nil {
			if err == io.EOF {
				return nil, p.errNamed(ReasonMissingCloseTag, g.Name)
			}
			return nil, p.errNamed(ReasonUnexpectedTag, g.Name)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == "glyph" {
				return g, nil
			}
		case xml.StartElement:
			switch t.Name.Local {
			case "advance":
				if sawAdvance {
					return nil, p.errNamed(ReasonUnexpectedDuplicate, g.Name)
				}
				sawAdvance = true
				adv, err := p.parseAdvance(t)
				if err != nil {
					return nil, err
				}
				g.Advance = adv
			case "unicode":
				cp, err := p.parseUnicode(t)
				if err != nil {
					return nil, err
				}
				g.Codepoints = append(g.Codepoints, cp)
			case "note":
				if sawNote {
					return nil, p.errNamed(ReasonUnexpectedDuplicate, g.Name)
				}
				sawNote = true
				note, err := p.readText("note")
				if err != nil {
					return nil, err
				}
				g.Note = note
			case "image":
				if format == V1 {
					return nil, p.errNamed(ReasonUnexpectedTag, g.Name)
				}
				if sawImage {
					return nil, p.errNamed(ReasonUnexpectedDuplicate, g.Name)
				}
				sawImage = true
				img, err := p.parseImage(t)
				if err != nil {
					return nil, err
				}
				g.Image = img
			case "guideline":
				if format == V1 {
					return nil, p.errNamed(ReasonUnexpectedTag, g.Name)
				}
				gl, err := p.parseGuideline(t)
				if err != nil {
					return nil, err
				}
				g.Guidelines = append(g.Guidelines, gl)
			case "anchor":
				if format == V1 {
					return nil, p.errNamed(ReasonUnexpectedTag, g.Name)
				}
				a, err := p.parseAnchor(t)
				if err != nil {
					return nil, err
				}
				g.Anchors = append(g.Anchors, a)
			case "outline":
				if sawOutline {
					return nil, p.errNamed(ReasonUnexpectedDuplicate, g.Name)
				}
				sawOutline = true
				outline, err := p.parseOutline(g.Name)
				if err != nil {
					return nil, err
				}
				g.Outline = outline
			case "lib":
				if format == V1 {
					return nil, p.errNamed(ReasonUnexpectedTag, g.Name)
				}
				if sawLib {
					return nil, p.errNamed(ReasonUnexpectedDuplicate, g.Name)
				}
				sawLib = true
				lib, err := p.parseLib()
				if err != nil {
					return nil, err
				}
				g.Lib = lib
			default:
				return nil, p.errNamed(ReasonUnexpectedElement, g.Name)
			}
		}
	}
}

var advanceAttrs = map[string]bool{"width": true, "height": true}

func (p *parser) parseAdvance(start xml.StartElement) (*Advance, error) {
	as := newAttrSet(start.Attr, advanceAttrs)
	if !as.ok() {
		return nil, p.err(ReasonUnexpectedAttribute)
	}
	w, _, err := as.getFloat("width", 0)
	if err != nil {
		return nil, p.err(ReasonBadNumber)
	}
	h, _, err := as.getFloat("height", 0)
	if err != nil {
		return nil, p.err(ReasonBadNumber)
	}
	if err := p.expectEnd("advance"); err != nil {
		return nil, err
	}
	return &Advance{Width: w, Height: h}, nil
}

var unicodeAttrs = map[string]bool{"hex": true}

func (p *parser) parseUnicode(start xml.StartElement) (rune, error) {
	as := newAttrSet(start.Attr, unicodeAttrs)
	if !as.ok() {
		return 0, p.err(ReasonUnexpectedAttribute)
	}
	hex, ok := as.get("hex")
	if !ok {
		return 0, p.err(ReasonBadHexValue)
	}
	v, err := parseHexRune(hex)
	if err != nil {
		return 0, p.err(ReasonBadHexValue)
	}
	if err := p.expectEnd("unicode"); err != nil {
		return 0, err
	}
	return v, nil
}

func parseHexRune(s string) (rune, error) {
	var v uint64
	if len(s) == 0 {
		return 0, errBadHex
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		var d uint64
		switch {
		case c >= '0' && c <= '9':
			d = uint64(c - '0')
		case c >= 'a' && c <= 'f':
			d = uint64(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = uint64(c-'A') + 10
		default:
			return 0, errBadHex
		}
		v = v*16 + d
	}
	return rune(v), nil
}

var errBadHex = xmlSentinel("bad hex value")

type xmlSentinel string

func (e xmlSentinel) Error() string { return string(e) }

// readText reads CharData until the matching end element named tag,
// concatenating all text content (comments are ignored, any nested start
// element is an error).
func (p *parser) readText(tag string) (string, error) {
	var sb strings.Builder
	for {
		tok, err := p.dec.Token()
		if err != nil {
			if err == io.EOF {
				return "", p.err(ReasonMissingCloseTag)
			}
			return "", p.err(ReasonUnexpectedTag)
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.EndElement:
			if t.Name.Local == tag {
				return sb.String(), nil
			}
			return "", p.err(ReasonUnexpectedTag)
		case xml.StartElement:
			return "", p.err(ReasonUnexpectedElement)
		}
	}
}

// expectEnd consumes tokens until the matching EndElement for tag,
// erroring if any StartElement or non-whitespace CharData is seen first
// (i.e. the element must be empty or self-closing).
func (p *parser) expectEnd(tag string) error {
	for {
		tok, err := p.dec.Token()
		if err != nil {
			if err == io.EOF {
				return p.err(ReasonMissingCloseTag)
			}
			return p.err(ReasonUnexpectedTag)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == tag {
				return nil
			}
			return p.err(ReasonUnexpectedTag)
		case xml.CharData:
			if len(bytes.TrimSpace(t)) != 0 {
				return p.err(ReasonUnexpectedElement)
			}
		case xml.StartElement:
			return p.err(ReasonUnexpectedElement)
		}
	}
}

var imageAttrs = map[string]bool{
	"fileName": true, "file": true, "color": true, "identifier": true,
	"xScale": true, "xyScale": true, "yxScale": true, "yScale": true,
	"xOffset": true, "yOffset": true,
}

func (p *parser) parseImage(start xml.StartElement) (*Image, error) {
	as := newAttrSet(start.Attr, imageAttrs)
	if !as.ok() {
		return nil, p.err(ReasonUnexpectedAttribute)
	}
	file, ok := as.get("file")
	if !ok {
		file, ok = as.get("fileName")
	}
	if !ok || file == "" {
		return nil, p.err(ReasonBadImage)
	}
	img := &Image{FileName: file, Transform: Identity}
	t, err := p.parseTransformAttrs(as)
	if err != nil {
		return nil, p.err(ReasonBadImage)
	}
	img.Transform = t
	if cv, ok := as.get("color"); ok {
		c, ok := parseColor(cv)
		if !ok {
			return nil, p.err(ReasonBadColor)
		}
		img.Color = &c
	}
	if idv, ok := as.get("identifier"); ok {
		if !IsValidIdentifier(idv) {
			return nil, p.err(ReasonBadIdentifier)
		}
		if !p.ids.add(Identifier(idv)) {
			return nil, p.err(ReasonDuplicateIdentifier)
		}
		img.Identifier = Identifier(idv)
	}
	if err := p.expectEnd("image"); err != nil {
		return nil, err
	}
	return img, nil
}

func (p *parser) parseTransformAttrs(as attrSet) (AffineTransform, error) {
	t := Identity
	fields := []struct {
		name string
		dst  *float64
	}{
		{"xScale", &t.XScale}, {"xyScale", &t.XYScale}, {"yxScale", &t.YXScale},
		{"yScale", &t.YScale}, {"xOffset", &t.XOffset}, {"yOffset", &t.YOffset},
	}
	for _, f := range fields {
		v, present, err := as.getFloat(f.name, *f.dst)
		if err != nil {
			return t, err
		}
		if present {
			*f.dst = v
		}
	}
	return t, nil
}

var guidelineAttrs = map[string]bool{
	"x": true, "y": true, "angle": true, "name": true, "color": true, "identifier": true,
}

func (p *parser) parseGuideline(start xml.StartElement) (Guideline, error) {
	as := newAttrSet(start.Attr, guidelineAttrs)
	if !as.ok() {
		return Guideline{}, p.err(ReasonUnexpectedAttribute)
	}
	var gl Guideline
	x, hasX, err := as.getFloat("x", 0)
	if err != nil {
		return Guideline{}, p.err(ReasonBadGuideline)
	}
	y, hasY, err := as.getFloat("y", 0)
	if err != nil {
		return Guideline{}, p.err(ReasonBadGuideline)
	}
	angle, hasAngle, err := as.getFloat("angle", 0)
	if err != nil {
		return Guideline{}, p.err(ReasonBadGuideline)
	}
	if !hasX && !hasY {
		return Guideline{}, p.err(ReasonBadGuideline)
	}
	if hasAngle && (!hasX || !hasY) {
		return Guideline{}, p.err(ReasonBadGuideline)
	}
	if hasX {
		gl.X = &x
	}
	if hasY {
		gl.Y = &y
	}
	if hasAngle {
		gl.Angle = &angle
	}
	gl.Name, _ = as.get("name")
	if cv, ok := as.get("color"); ok {
		c, ok := parseColor(cv)
		if !ok {
			return Guideline{}, p.err(ReasonBadColor)
		}
		gl.Color = &c
	}
	if idv, ok := as.get("identifier"); ok {
		if !IsValidIdentifier(idv) {
			return Guideline{}, p.err(ReasonBadIdentifier)
		}
		if !p.ids.add(Identifier(idv)) {
			return Guideline{}, p.err(ReasonDuplicateIdentifier)
		}
		gl.Identifier = Identifier(idv)
	}
	if err := p.expectEnd("guideline"); err != nil {
		return Guideline{}, err
	}
	return gl, nil
}

var anchorAttrs = map[string]bool{"x": true, "y": true, "name": true, "color": true, "identifier": true}

func (p *parser) parseAnchor(start xml.StartElement) (Anchor, error) {
	as := newAttrSet(start.Attr, anchorAttrs)
	if !as.ok() {
		return Anchor{}, p.err(ReasonUnexpectedAttribute)
	}
	x, hasX, err := as.getFloat("x", 0)
	if err != nil || !hasX {
		return Anchor{}, p.err(ReasonBadAnchor)
	}
	y, hasY, err := as.getFloat("y", 0)
	if err != nil || !hasY {
		return Anchor{}, p.err(ReasonBadAnchor)
	}
	a := Anchor{X: x, Y: y}
	a.Name, _ = as.get("name")
	if cv, ok := as.get("color"); ok {
		c, ok := parseColor(cv)
		if !ok {
			return Anchor{}, p.err(ReasonBadColor)
		}
		a.Color = &c
	}
	if idv, ok := as.get("identifier"); ok {
		if !IsValidIdentifier(idv) {
			return Anchor{}, p.err(ReasonBadIdentifier)
		}
		if !p.ids.add(Identifier(idv)) {
			return Anchor{}, p.err(ReasonDuplicateIdentifier)
		}
		a.Identifier = Identifier(idv)
	}
	if err := p.expectEnd("anchor"); err != nil {
		return Anchor{}, err
	}
	return a, nil
}

func (p *parser) parseOutline(glyphName string) (*Outline, error) {
	out := &Outline{}
	for {
		tok, err := p.dec.Token()
		if err != nil {
			if err == io.EOF {
				return nil, p.errNamed(ReasonMissingCloseTag, glyphName)
			}
			return nil, p.errNamed(ReasonUnexpectedTag, glyphName)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == "outline" {
				return out, nil
			}
		case xml.StartElement:
			switch t.Name.Local {
			case "contour":
				c, err := p.parseContour(t, glyphName)
				if err != nil {
					return nil, err
				}
				out.Contours = append(out.Contours, c)
			case "component":
				c, err := p.parseComponent(t)
				if err != nil {
					return nil, err
				}
				out.Components = append(out.Components, c)
			default:
				return nil, p.errNamed(ReasonUnexpectedElement, glyphName)
			}
		}
	}
}

// extractV1Anchors lifts V1-style anchors out of a glyph's outline: a
// named Move point lying outside a path (i.e. a contour consisting of
// that single point) is moved into g.Anchors, leaving g.Format
// untouched. V2 glyphs encode anchors with their own <anchor> element
// and never reach this path.
func extractV1Anchors(g *Glyph) {
	if g.Format != V1 || g.Outline == nil {
		return
	}
	kept := g.Outline.Contours[:0:0]
	for _, c := range g.Outline.Contours {
		if isV1AnchorContour(c) {
			pt := c.Points[0]
			g.Anchors = append(g.Anchors, Anchor{
				X:          pt.X,
				Y:          pt.Y,
				Name:       pt.Name,
				Identifier: pt.Identifier,
				Lib:        pt.Lib,
			})
			continue
		}
		kept = append(kept, c)
	}
	g.Outline.Contours = kept
}

func isV1AnchorContour(c Contour) bool {
	return len(c.Points) == 1 && c.Points[0].Type == Move && c.Points[0].Name != ""
}

var contourAttrs = map[string]bool{"identifier": true}
var pointAttrs = map[string]bool{
	"x": true, "y": true, "type": true, "smooth": true, "name": true, "identifier": true,
}

func (p *parser) parseContour(start xml.StartElement, glyphName string) (Contour, error) {
	as := newAttrSet(start.Attr, contourAttrs)
	if !as.ok() {
		return Contour{}, p.err(ReasonUnexpectedAttribute)
	}
	var contourID Identifier
	if idv, ok := as.get("identifier"); ok {
		if !IsValidIdentifier(idv) {
			return Contour{}, p.err(ReasonBadIdentifier)
		}
		if !p.ids.add(Identifier(idv)) {
			return Contour{}, p.err(ReasonDuplicateIdentifier)
		}
		contourID = Identifier(idv)
	}
	cb := newContourBuilder()
	cb.beginPath()
	for {
		tok, err := p.dec.Token()
		if err != nil {
			if err == io.EOF {
				return Contour{}, p.errNamed(ReasonMissingCloseTag, glyphName)
			}
			return Contour{}, p.errNamed(ReasonUnexpectedTag, glyphName)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == "contour" {
				c, reason := cb.endPath()
				if reason != "" {
					return Contour{}, p.errNamed(reason, glyphName)
				}
				c.Identifier = contourID
				return c, nil
			}
		case xml.StartElement:
			if t.Name.Local != "point" {
				return Contour{}, p.errNamed(ReasonUnexpectedElement, glyphName)
			}
			pt, err := p.parsePoint(t)
			if err != nil {
				return Contour{}, err
			}
			if oe := cb.addPoint(pt); oe != nil {
				return Contour{}, p.errNamed(oe.reason, glyphName)
			}
		}
	}
}

func (p *parser) parsePoint(start xml.StartElement) (ContourPoint, error) {
	as := newAttrSet(start.Attr, pointAttrs)
	if !as.ok() {
		return ContourPoint{}, p.err(ReasonUnexpectedAttribute)
	}
	x, hasX, err := as.getFloat("x", 0)
	if err != nil || !hasX {
		return ContourPoint{}, p.err(ReasonBadPoint)
	}
	y, hasY, err := as.getFloat("y", 0)
	if err != nil || !hasY {
		return ContourPoint{}, p.err(ReasonBadPoint)
	}
	pt := ContourPoint{X: x, Y: y, Type: OffCurve}
	if tv, ok := as.get("type"); ok {
		switch tv {
		case "move":
			pt.Type = Move
		case "line":
			pt.Type = Line
		case "curve":
			pt.Type = Curve
		case "qcurve":
			pt.Type = QCurve
		case "offcurve":
			pt.Type = OffCurve
		default:
			return ContourPoint{}, p.err(ReasonBadPoint)
		}
	}
	if sv, ok := as.get("smooth"); ok {
		switch sv {
		case "yes":
			pt.Smooth = true
		case "no":
			pt.Smooth = false
		default:
			return ContourPoint{}, p.err(ReasonBadPoint)
		}
		if pt.Smooth && pt.Type == OffCurve {
			return ContourPoint{}, p.err(ReasonUnexpectedSmooth)
		}
	}
	ptName, _ := as.get("name")
	pt.Name = p.intern(ptName)
	if idv, ok := as.get("identifier"); ok {
		if !IsValidIdentifier(idv) {
			return ContourPoint{}, p.err(ReasonBadIdentifier)
		}
		if !p.ids.add(Identifier(idv)) {
			return ContourPoint{}, p.err(ReasonDuplicateIdentifier)
		}
		pt.Identifier = Identifier(idv)
	}
	if err := p.expectEnd("point"); err != nil {
		return ContourPoint{}, err
	}
	return pt, nil
}

var componentAttrs = map[string]bool{
	"base": true, "xScale": true, "xyScale": true, "yxScale": true,
	"yScale": true, "xOffset": true, "yOffset": true, "identifier": true,
}

func (p *parser) parseComponent(start xml.StartElement) (Component, error) {
	as := newAttrSet(start.Attr, componentAttrs)
	if !as.ok() {
		return Component{}, p.err(ReasonUnexpectedAttribute)
	}
	base, ok := as.get("base")
	if !ok || base == "" {
		return Component{}, p.err(ReasonBadComponent)
	}
	t, err := p.parseTransformAttrs(as)
	if err != nil {
		return Component{}, p.err(ReasonBadComponent)
	}
	c := Component{Base: p.intern(base), Transform: t}
	if idv, ok := as.get("identifier"); ok {
		if !IsValidIdentifier(idv) {
			return Component{}, p.err(ReasonBadIdentifier)
		}
		if !p.ids.add(Identifier(idv)) {
			return Component{}, p.err(ReasonDuplicateIdentifier)
		}
		c.Identifier = Identifier(idv)
	}
	if err := p.expectEnd("component"); err != nil {
		return Component{}, err
	}
	return c, nil
}

// parseLib captures the raw bytes of <lib>...</lib>'s single <dict> child
// and re-parses them as a standalone plist document, the inverse of how
// the serializer embeds one.
func (p *parser) parseLib() (plist.Dict, error) {
	start := p.dec.InputOffset()
	depth := 1
	end := start
	for {
		tok, err := p.dec.Token()
		if err != nil {
			if err == io.EOF {
				return nil, p.err(ReasonMissingCloseTag)
			}
			return nil, p.err(ReasonBadLib)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			_ = t
		case xml.EndElement:
			depth--
			if depth == 0 {
				goto doneLib
			}
		}
		end = p.dec.InputOffset()
	}
doneLib:
	inner := bytes.TrimSpace(p.data[start:end])
	if len(inner) == 0 {
		return plist.Dict{}, nil
	}
	var doc bytes.Buffer
	doc.WriteString(`<?xml version="1.0" encoding="UTF-8"?><plist version="1.0">`)
	doc.Write(inner)
	doc.WriteString(`</plist>`)
	v, err := plist.Read(&doc)
	if err != nil {
		return nil, p.err(ReasonBadLib)
	}
	d, err := plist.AsDict(v)
	if err != nil {
		return nil, p.err(ReasonBadLib)
	}
	return d, nil
}
