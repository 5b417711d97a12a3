/*
Package ufo is the top-level orchestration package: it discovers a UFO
package's layers via layercontents.plist, drives the layer loader, the
fontinfo/groups loaders and upconverters, and the data/image stores, and
threads font-level public.objectLibs into the result. It is the only
package in this module that knows how an on-disk .ufo directory is laid
out; every other package here is a dependency leaf.
*/
package ufo

import (
	"os"
	"path/filepath"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"github.com/typeforge/ufo/fontinfo"
	"github.com/typeforge/ufo/glyph"
	"github.com/typeforge/ufo/groups"
	"github.com/typeforge/ufo/intern"
	"github.com/typeforge/ufo/plist"
	"github.com/typeforge/ufo/store"
	"github.com/typeforge/ufo/ufocore"
)

const defaultLayerDirName = "glyphs"

// Font is the in-memory form of a .ufo package.
type Font struct {
	MetaInfo *MetaInfo
	FontInfo *fontinfo.FontInfo
	Groups   *groups.Groups
	Kerning  *Kerning
	Lib      plist.Dict
	Features string

	Data   *store.Store
	Images *store.Store

	layers       *linkedhashmap.Map // name -> *Layer, insertion ordered
	defaultLayer string
}

// New returns an empty Font with a single default layer named "public.default".
func New() *Font {
	f := &Font{
		MetaInfo: &MetaInfo{FormatVersion: FormatVersion},
		Groups:   groups.New(),
		Kerning:  NewKerning(),
		Data:     store.New(store.Data),
		Images:   store.New(store.Images),
		layers:   linkedhashmap.New(),
	}
	def := NewLayer("public.default", defaultLayerDirName)
	f.layers.Put(def.Name, def)
	f.defaultLayer = def.Name
	return f
}

// Layers returns every layer, default first, in layercontents order.
func (f *Font) Layers() []*Layer {
	values := f.layers.Values()
	out := make([]*Layer, 0, len(values))
	var def *Layer
	for _, v := range values {
		l := v.(*Layer)
		if l.Name == f.defaultLayer {
			def = l
			continue
		}
		out = append(out, l)
	}
	if def != nil {
		out = append([]*Layer{def}, out...)
	}
	return out
}

// Layer returns the named layer, if present.
func (f *Font) Layer(name string) (*Layer, bool) {
	v, ok := f.layers.Get(name)
	if !ok {
		return nil, false
	}
	return v.(*Layer), true
}

// DefaultLayer returns the font's one required default layer.
func (f *Font) DefaultLayer() *Layer {
	l, _ := f.Layer(f.defaultLayer)
	return l
}

// AddLayer appends a non-default layer.
func (f *Font) AddLayer(l *Layer) {
	f.layers.Put(l.Name, l)
}

// Load reads the UFO package rooted at path.
func Load(path string) (*Font, error) {
	ufocore.T().Debugf("loading ufo package at %s (trace-level=%s)", path, ufocore.TraceLevel())
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return nil, ufocore.New(ufocore.FontLoad, "UfoNotADir").WithPath(path)
	}

	miDict, err := plist.ReadDictFile(filepath.Join(path, "metainfo.plist"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ufocore.New(ufocore.FontLoad, "MissingMetaInfoFile").WithPath(path)
		}
		return nil, ufocore.Wrap(err, ufocore.FontLoad, "Io").WithPath(path)
	}
	mi, err := loadMetaInfo(miDict)
	if err != nil {
		return nil, err
	}

	layerList, err := readLayerContents(path)
	if err != nil {
		return nil, err
	}

	f := &Font{
		MetaInfo: mi,
		Kerning:  NewKerning(),
		layers:   linkedhashmap.New(),
	}

	names := intern.New()
	foundDefault := false
	for _, entry := range layerList {
		dir := filepath.Join(path, entry.dirName)
		if entry.dirName == defaultLayerDirName {
			foundDefault = true
		}
		if _, err := os.Stat(dir); err != nil {
			return nil, ufocore.New(ufocore.FontLoad, "LoadLayer").WithPath(dir).WithLayer(entry.name)
		}
		l, err := loadLayer(dir, entry.name, names)
		if err != nil {
			return nil, err
		}
		f.layers.Put(entry.name, l)
		if entry.dirName == defaultLayerDirName {
			f.defaultLayer = entry.name
		}
	}
	if !foundDefault {
		return nil, ufocore.New(ufocore.FontLoad, "MissingDefaultLayer").WithPath(path)
	}

	if fiDict, err := plist.ReadDictFile(filepath.Join(path, "fontinfo.plist")); err == nil {
		fi, err := fontinfo.Load(fiDict)
		if err != nil {
			return nil, err
		}
		f.FontInfo = fi
	} else if !os.IsNotExist(err) {
		return nil, ufocore.Wrap(err, ufocore.FontLoad, "Io").WithPath(path)
	}

	if gDict, err := plist.ReadDictFile(filepath.Join(path, "groups.plist")); err == nil {
		g, err := groups.Load(gDict)
		if err != nil {
			return nil, err
		}
		f.Groups = g
	} else if os.IsNotExist(err) {
		f.Groups = groups.New()
	} else {
		return nil, ufocore.Wrap(err, ufocore.FontLoad, "Io").WithPath(path)
	}

	if kDict, err := plist.ReadDictFile(filepath.Join(path, "kerning.plist")); err == nil {
		k, err := loadKerning(kDict)
		if err != nil {
			return nil, err
		}
		f.Kerning = k
	} else if !os.IsNotExist(err) {
		return nil, ufocore.Wrap(err, ufocore.FontLoad, "Io").WithPath(path)
	}

	if libDict, err := plist.ReadDictFile(filepath.Join(path, "lib.plist")); err == nil {
		f.Lib = libDict
		if f.FontInfo != nil {
			if err := fontinfo.PromoteGuidelinesFromLib(f.FontInfo, f.Lib); err != nil {
				return nil, err
			}
		}
	} else if !os.IsNotExist(err) {
		return nil, ufocore.Wrap(err, ufocore.FontLoad, "Io").WithPath(path)
	}

	if data, err := os.ReadFile(filepath.Join(path, "features.fea")); err == nil {
		f.Features = string(data)
	} else if !os.IsNotExist(err) {
		return nil, ufocore.Wrap(err, ufocore.FontLoad, "Io").WithPath(path)
	}

	dataStore, err := store.LoadDir(store.Data, filepath.Join(path, "data"))
	if err != nil {
		return nil, err
	}
	f.Data = dataStore
	imgStore, err := store.LoadDir(store.Images, filepath.Join(path, "images"))
	if err != nil {
		return nil, err
	}
	f.Images = imgStore

	ufocore.T().Infof("loaded ufo package %s: %d layer(s)", path, f.layers.Size())
	return f, nil
}

// Save writes f to path, replacing any existing directory there.
func Save(f *Font, path string) error {
	ufocore.T().Debugf("saving ufo package to %s", path)
	if _, err := os.Stat(path); err == nil {
		if err := os.RemoveAll(path); err != nil {
			return ufocore.Wrap(err, ufocore.FontWrite, "Io").WithPath(path)
		}
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return ufocore.Wrap(err, ufocore.FontWrite, "Io").WithPath(path)
	}

	if err := plist.WriteFile(filepath.Join(path, "metainfo.plist"), saveMetaInfo(f.MetaInfo)); err != nil {
		return ufocore.Wrap(err, ufocore.FontWrite, "Io").WithPath(path)
	}

	lib := plist.Dict{}
	for k, v := range f.Lib {
		lib[k] = v
	}
	if f.FontInfo != nil {
		if err := fontinfo.Validate(f.FontInfo); err != nil {
			return err
		}
		if objectLibs := fontinfo.CollectGuidelineLibsForSave(f.FontInfo); len(objectLibs) > 0 {
			lib[glyph.ObjectLibsKey] = objectLibs
		}
		fiDict := fontinfo.Save(f.FontInfo)
		if err := plist.WriteFile(filepath.Join(path, "fontinfo.plist"), fiDict); err != nil {
			return ufocore.Wrap(err, ufocore.FontWrite, "Io").WithPath(path)
		}
	}
	if f.Groups != nil && len(f.Groups.Names()) > 0 {
		if err := groups.Validate(f.Groups); err != nil {
			return err
		}
		if err := plist.WriteFile(filepath.Join(path, "groups.plist"), groups.Save(f.Groups)); err != nil {
			return ufocore.Wrap(err, ufocore.FontWrite, "Io").WithPath(path)
		}
	}
	if f.Kerning != nil && len(f.Kerning.Pairs()) > 0 {
		if err := plist.WriteFile(filepath.Join(path, "kerning.plist"), saveKerning(f.Kerning)); err != nil {
			return ufocore.Wrap(err, ufocore.FontWrite, "Io").WithPath(path)
		}
	}
	if len(lib) > 0 {
		if err := plist.WriteFile(filepath.Join(path, "lib.plist"), lib); err != nil {
			return ufocore.Wrap(err, ufocore.FontWrite, "Io").WithPath(path)
		}
	}
	if f.Features != "" {
		if err := os.WriteFile(filepath.Join(path, "features.fea"), []byte(f.Features), 0644); err != nil {
			return ufocore.Wrap(err, ufocore.FontWrite, "Io").WithPath(path)
		}
	}

	if err := writeLayerContents(path, f); err != nil {
		return err
	}
	for _, l := range f.Layers() {
		dir := filepath.Join(path, l.DirName)
		if err := writeLayer(dir, l); err != nil {
			return err
		}
	}

	if err := store.WriteDir(f.Data, filepath.Join(path, "data")); err != nil {
		return err
	}
	if err := store.WriteDir(f.Images, filepath.Join(path, "images")); err != nil {
		return err
	}
	return nil
}

type layerEntry struct {
	name, dirName string
}

func readLayerContents(path string) ([]layerEntry, error) {
	lcPath := filepath.Join(path, "layercontents.plist")
	raw, err := plist.ReadFile(lcPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ufocore.New(ufocore.FontLoad, "MissingLayerContentsFile").WithPath(lcPath)
		}
		return nil, ufocore.Wrap(err, ufocore.FontLoad, "Io").WithPath(lcPath)
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, ufocore.New(ufocore.FontLoad, "InvalidLayerContents").WithPath(lcPath)
	}
	out := make([]layerEntry, 0, len(list))
	for _, item := range list {
		pair, ok := item.([]interface{})
		if !ok || len(pair) != 2 {
			return nil, ufocore.New(ufocore.FontLoad, "InvalidLayerContents").WithPath(lcPath)
		}
		name, ok1 := pair[0].(string)
		dirName, ok2 := pair[1].(string)
		if !ok1 || !ok2 {
			return nil, ufocore.New(ufocore.FontLoad, "InvalidLayerContents").WithPath(lcPath)
		}
		out = append(out, layerEntry{name: name, dirName: dirName})
	}
	return out, nil
}

func writeLayerContents(path string, f *Font) error {
	list := make([]interface{}, 0, f.layers.Size())
	for _, l := range f.Layers() {
		list = append(list, []interface{}{l.Name, l.DirName})
	}
	return plist.WriteFile(filepath.Join(path, "layercontents.plist"), list)
}
