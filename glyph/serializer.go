package glyph

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/typeforge/ufo/plist"
	"github.com/typeforge/ufo/ufocore"
)

// Serialize renders g as canonical V2 .glif XML bytes. It never mutates
// g.Lib permanently: any public.objectLibs dictionary
// collected from sub-object libs is merged in only for the duration of
// this call.
func Serialize(g *Glyph) ([]byte, error) {
	if g.Format != V2 {
		return nil, ufocore.New(ufocore.GlifWrite, ReasonDowngrade).WithGlyph(g.Name)
	}
	if g.Lib != nil {
		if _, ok := g.Lib[ObjectLibsKey]; ok {
			return nil, ufocore.New(ufocore.GlifWrite, ReasonPreexistingPublicObjectLibsKey).WithGlyph(g.Name)
		}
	}
	objectLibs := CollectForSave(g)

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&buf, "<glyph name=%s format=\"2\">\n", quoteAttr(g.Name))

	if g.Advance != nil && (g.Advance.Width != 0 || g.Advance.Height != 0) {
		buf.WriteString("  <advance")
		if g.Advance.Width != 0 {
			fmt.Fprintf(&buf, " width=%s", quoteAttr(formatNumber(g.Advance.Width)))
		}
		if g.Advance.Height != 0 {
			fmt.Fprintf(&buf, " height=%s", quoteAttr(formatNumber(g.Advance.Height)))
		}
		buf.WriteString("/>\n")
	}
	for _, cp := range g.Codepoints {
		fmt.Fprintf(&buf, "  <unicode hex=%s/>\n", quoteAttr(fmt.Sprintf("%04X", cp)))
	}
	if g.Note != "" {
		buf.WriteString("  <note>")
		writeEscapedText(&buf, g.Note)
		buf.WriteString("</note>\n")
	}
	if g.Image != nil {
		buf.WriteString("  <image")
		fmt.Fprintf(&buf, " fileName=%s", quoteAttr(g.Image.FileName))
		writeTransformAttrs(&buf, g.Image.Transform)
		if g.Image.Color != nil {
			fmt.Fprintf(&buf, " color=%s", quoteAttr(formatColor(*g.Image.Color)))
		}
		writeIdentifierAttr(&buf, g.Image.Identifier)
		buf.WriteString("/>\n")
	}
	for _, gl := range g.Guidelines {
		buf.WriteString("  <guideline")
		if gl.X != nil {
			fmt.Fprintf(&buf, " x=%s", quoteAttr(formatNumber(*gl.X)))
		}
		if gl.Y != nil {
			fmt.Fprintf(&buf, " y=%s", quoteAttr(formatNumber(*gl.Y)))
		}
		if gl.Angle != nil {
			fmt.Fprintf(&buf, " angle=%s", quoteAttr(formatNumber(*gl.Angle)))
		}
		if gl.Name != "" {
			fmt.Fprintf(&buf, " name=%s", quoteAttr(gl.Name))
		}
		if gl.Color != nil {
			fmt.Fprintf(&buf, " color=%s", quoteAttr(formatColor(*gl.Color)))
		}
		writeIdentifierAttr(&buf, gl.Identifier)
		buf.WriteString("/>\n")
	}
	for _, a := range g.Anchors {
		buf.WriteString("  <anchor")
		fmt.Fprintf(&buf, " x=%s y=%s", quoteAttr(formatNumber(a.X)), quoteAttr(formatNumber(a.Y)))
		if a.Name != "" {
			fmt.Fprintf(&buf, " name=%s", quoteAttr(a.Name))
		}
		if a.Color != nil {
			fmt.Fprintf(&buf, " color=%s", quoteAttr(formatColor(*a.Color)))
		}
		writeIdentifierAttr(&buf, a.Identifier)
		buf.WriteString("/>\n")
	}
	if g.Outline != nil && (len(g.Outline.Contours) > 0 || len(g.Outline.Components) > 0) {
		buf.WriteString("  <outline>\n")
		for _, c := range g.Outline.Contours {
			writeContour(&buf, c)
		}
		for _, comp := range g.Outline.Components {
			writeComponent(&buf, comp)
		}
		buf.WriteString("  </outline>\n")
	} else if g.Outline != nil {
		buf.WriteString("  <outline/>\n")
	}

	emitLib := plist.Dict{}
	for k, v := range g.Lib {
		emitLib[k] = v
	}
	if len(objectLibs) > 0 {
		emitLib[ObjectLibsKey] = objectLibs
	}
	if len(emitLib) > 0 {
		body, err := writeLib(emitLib)
		if err != nil {
			return nil, ufocore.Wrap(err, ufocore.GlifWrite, ReasonInternalLibWriteError).WithGlyph(g.Name)
		}
		buf.WriteString("  <lib>\n")
		buf.Write(body)
		buf.WriteString("\n  </lib>\n")
	}

	buf.WriteString("</glyph>\n")
	return buf.Bytes(), nil
}

func writeContour(buf *bytes.Buffer, c Contour) {
	buf.WriteString("    <contour")
	writeIdentifierAttr(buf, c.Identifier)
	if len(c.Points) == 0 {
		buf.WriteString("/>\n")
		return
	}
	buf.WriteString(">\n")
	for _, pt := range c.Points {
		buf.WriteString("      <point")
		fmt.Fprintf(buf, " x=%s y=%s", quoteAttr(formatNumber(pt.X)), quoteAttr(formatNumber(pt.Y)))
		if pt.Type != OffCurve {
			fmt.Fprintf(buf, " type=%s", quoteAttr(pt.Type.String()))
		}
		if pt.Smooth {
			buf.WriteString(` smooth="yes"`)
		}
		if pt.Name != "" {
			fmt.Fprintf(buf, " name=%s", quoteAttr(pt.Name))
		}
		writeIdentifierAttr(buf, pt.Identifier)
		buf.WriteString("/>\n")
	}
	buf.WriteString("    </contour>\n")
}

func writeComponent(buf *bytes.Buffer, c Component) {
	buf.WriteString("    <component")
	fmt.Fprintf(buf, " base=%s", quoteAttr(c.Base))
	writeTransformAttrs(buf, c.Transform)
	writeIdentifierAttr(buf, c.Identifier)
	buf.WriteString("/>\n")
}

func writeTransformAttrs(buf *bytes.Buffer, t AffineTransform) {
	if t == Identity {
		return
	}
	if t.XScale != Identity.XScale {
		fmt.Fprintf(buf, " xScale=%s", quoteAttr(formatNumber(t.XScale)))
	}
	if t.XYScale != Identity.XYScale {
		fmt.Fprintf(buf, " xyScale=%s", quoteAttr(formatNumber(t.XYScale)))
	}
	if t.YXScale != Identity.YXScale {
		fmt.Fprintf(buf, " yxScale=%s", quoteAttr(formatNumber(t.YXScale)))
	}
	if t.YScale != Identity.YScale {
		fmt.Fprintf(buf, " yScale=%s", quoteAttr(formatNumber(t.YScale)))
	}
	if t.XOffset != Identity.XOffset {
		fmt.Fprintf(buf, " xOffset=%s", quoteAttr(formatNumber(t.XOffset)))
	}
	if t.YOffset != Identity.YOffset {
		fmt.Fprintf(buf, " yOffset=%s", quoteAttr(formatNumber(t.YOffset)))
	}
}

func writeIdentifierAttr(buf *bytes.Buffer, id Identifier) {
	if id == "" {
		return
	}
	fmt.Fprintf(buf, " identifier=%s", quoteAttr(string(id)))
}

// writeLib renders dict through the external plist codec and strips its
// document preamble, leaving a bare <dict>...</dict> body suitable for
// embedding inside a .glif <lib> element.
func writeLib(dict plist.Dict) ([]byte, error) {
	full, err := plist.Marshal(dict)
	if err != nil {
		return nil, err
	}
	return plist.Body(full)
}

// formatNumber renders f in the shortest decimal form that round-trips
// through strconv.ParseFloat, without exponent notation.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func quoteAttr(s string) string {
	var buf bytes.Buffer
	buf.WriteByte('"')
	_ = xml.EscapeText(&buf, []byte(s))
	buf.WriteByte('"')
	return buf.String()
}

func writeEscapedText(buf *bytes.Buffer, s string) {
	_ = xml.EscapeText(buf, []byte(s))
}
