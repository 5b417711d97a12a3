package ufo

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"github.com/typeforge/ufo/glyph"
	"github.com/typeforge/ufo/intern"
	"github.com/typeforge/ufo/plist"
	"github.com/typeforge/ufo/ufocore"
)

// Layer is a named collection of glyphs, backed on disk by a single
// directory holding a contents.plist, an optional layerinfo.plist, and
// one .glif file per glyph.
type Layer struct {
	Name      string
	DirName   string
	Color     *glyph.Color
	Lib       plist.Dict
	glyphs    *linkedhashmap.Map // glyph name -> *glyph.Glyph, insertion ordered
}

// NewLayer returns an empty layer named name, stored under dirName.
func NewLayer(name, dirName string) *Layer {
	return &Layer{Name: name, DirName: dirName, glyphs: linkedhashmap.New()}
}

// Put inserts or replaces g under its own name.
func (l *Layer) Put(g *glyph.Glyph) {
	l.glyphs.Put(g.Name, g)
}

// Get returns the glyph named name, if present.
func (l *Layer) Get(name string) (*glyph.Glyph, bool) {
	v, ok := l.glyphs.Get(name)
	if !ok {
		return nil, false
	}
	return v.(*glyph.Glyph), true
}

// Remove deletes the glyph named name.
func (l *Layer) Remove(name string) {
	l.glyphs.Remove(name)
}

// GlyphNames returns every glyph name, in insertion order.
func (l *Layer) GlyphNames() []string {
	keys := l.glyphs.Keys()
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.(string)
	}
	return out
}

// Len reports the number of glyphs in the layer.
func (l *Layer) Len() int { return l.glyphs.Size() }

// loadLayer reads dir as a layer named name.
func loadLayer(dir, name string, names *intern.Table) (*Layer, error) {
	contentsPath := filepath.Join(dir, "contents.plist")
	contents, err := plist.ReadDictFile(contentsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ufocore.New(ufocore.LayerLoad, "MissingContentsFile").WithPath(contentsPath).WithLayer(name)
		}
		return nil, ufocore.Wrap(err, ufocore.LayerLoad, "Io").WithPath(contentsPath).WithLayer(name)
	}

	l := NewLayer(name, filepath.Base(dir))
	// contents is a plist.Dict (a plain Go map), which carries no memory
	// of contents.plist's on-disk key order. Iterate in a fixed,
	// deterministic order instead of map range order, so re-loading the
	// same directory always produces the same glyph order and a
	// subsequent Save doesn't rewrite contents.plist with a different,
	// spurious diff each run.
	glyphNames := make([]string, 0, len(contents))
	for gn := range contents {
		glyphNames = append(glyphNames, gn)
	}
	sort.Strings(glyphNames)
	for _, gn := range glyphNames {
		fn, ok := contents[gn].(string)
		if !ok {
			return nil, ufocore.New(ufocore.LayerLoad, "InvalidContentsEntry").WithPath(gn).WithLayer(name)
		}
		glifPath := filepath.Join(dir, fn)
		data, err := os.ReadFile(glifPath)
		if err != nil {
			return nil, ufocore.Wrap(err, ufocore.LayerLoad, "Io").WithPath(glifPath).WithLayer(name)
		}
		g, err := glyph.Parse(data, names, glifPath)
		if err != nil {
			return nil, err
		}
		l.Put(g)
	}

	infoPath := filepath.Join(dir, "layerinfo.plist")
	if info, err := plist.ReadDictFile(infoPath); err == nil {
		if c, ok := info["color"].(string); ok {
			if col, ok := glyph.ParseColorString(c); ok {
				l.Color = &col
			}
		}
		if lib, ok := info["lib"]; ok {
			if d, err := plist.AsDict(lib); err == nil {
				l.Lib = d
			}
		}
	} else if !os.IsNotExist(err) {
		return nil, ufocore.Wrap(err, ufocore.LayerLoad, "Io").WithPath(infoPath).WithLayer(name)
	}
	return l, nil
}

// writeLayer writes l into dir, creating it if necessary.
func writeLayer(dir string, l *Layer) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return ufocore.Wrap(err, ufocore.LayerWrite, "Io").WithPath(dir).WithLayer(l.Name)
	}
	names := l.GlyphNames()
	filenames := uniqueFilenames(names)

	contents := plist.Dict{}
	for _, name := range names {
		g, _ := l.Get(name)
		fn := filenames[name]
		contents[name] = fn
		out, err := glyph.Serialize(g)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, fn), out, 0644); err != nil {
			return ufocore.Wrap(err, ufocore.LayerWrite, "Io").WithPath(fn).WithLayer(l.Name)
		}
	}
	if err := plist.WriteFile(filepath.Join(dir, "contents.plist"), contents); err != nil {
		return ufocore.Wrap(err, ufocore.LayerWrite, "Io").WithPath(dir).WithLayer(l.Name)
	}

	if l.Color != nil || len(l.Lib) > 0 {
		info := plist.Dict{}
		if l.Color != nil {
			info["color"] = glyph.FormatColorString(*l.Color)
		}
		if len(l.Lib) > 0 {
			info["lib"] = l.Lib
		}
		if err := plist.WriteFile(filepath.Join(dir, "layerinfo.plist"), info); err != nil {
			return ufocore.Wrap(err, ufocore.LayerWrite, "Io").WithPath(dir).WithLayer(l.Name)
		}
	}
	return nil
}
