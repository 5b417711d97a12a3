package glyph

import "github.com/typeforge/ufo/plist"

// ObjectLibsKey is the reserved lib key holding the public.objectLibs
// dictionary.
const ObjectLibsKey = "public.objectLibs"

// RedistributeOnLoad is the load-time half of object-lib redistribution:
// it removes ObjectLibsKey from g.Lib (if present) and moves each entry's
// value onto the first sub-object carrying a matching identifier,
// searched in the order anchors, guidelines, contours, contour points,
// components. Entries matching nothing are discarded silently; this is
// the one documented case of acceptable round-trip loss.
func RedistributeOnLoad(g *Glyph) error {
	if g.Lib == nil {
		return nil
	}
	raw, ok := g.Lib[ObjectLibsKey]
	if !ok {
		return nil
	}
	delete(g.Lib, ObjectLibsKey)
	objectLibs, err := plist.AsDict(raw)
	if err != nil {
		return &objectLibsError{reason: ReasonPublicObjectLibsMustBeDictionary}
	}
	for key, v := range objectLibs {
		sub, err := plist.AsDict(v)
		if err != nil {
			return &objectLibsError{reason: ReasonPublicObjectLibsMustBeDictionary}
		}
		assignSubLib(g, Identifier(key), sub)
	}
	return nil
}

// objectLibsError is a small sentinel carrying only a Reason; the caller
// (Parse) wraps it into a full *ufocore.Error with position/glyph context.
type objectLibsError struct{ reason string }

func (e *objectLibsError) Error() string { return e.reason }

// assignSubLib finds the first sub-object identified by id, in the
// canonical search order, and replaces its Lib.
func assignSubLib(g *Glyph, id Identifier, lib plist.Dict) {
	for i := range g.Anchors {
		if g.Anchors[i].Identifier == id {
			g.Anchors[i].Lib = lib
			return
		}
	}
	for i := range g.Guidelines {
		if g.Guidelines[i].Identifier == id {
			g.Guidelines[i].Lib = lib
			return
		}
	}
	if g.Outline != nil {
		for i := range g.Outline.Contours {
			if g.Outline.Contours[i].Identifier == id {
				g.Outline.Contours[i].Lib = lib
				return
			}
		}
		for i := range g.Outline.Contours {
			pts := g.Outline.Contours[i].Points
			for j := range pts {
				if pts[j].Identifier == id {
					pts[j].Lib = lib
					return
				}
			}
		}
		for i := range g.Outline.Components {
			if g.Outline.Components[i].Identifier == id {
				g.Outline.Components[i].Lib = lib
				return
			}
		}
	}
}

// CollectForSave is the save-time half of object-lib redistribution:
// walking the same canonical order, it synthesizes an Identifier for any
// sub-object that
// carries a non-empty Lib but none yet, and returns a fresh
// public.objectLibs dictionary keyed by each such sub-object's identifier.
// It mutates the sub-objects' Identifier fields in place (so the synthesis
// is visible to the rest of the serializer and to the caller after save)
// but never touches g.Lib itself.
func CollectForSave(g *Glyph) plist.Dict {
	out := plist.Dict{}
	assign := func(id *Identifier, lib plist.Dict) {
		if len(lib) == 0 {
			return
		}
		if *id == "" {
			*id = NewIdentifier()
		}
		out[string(*id)] = lib
	}
	for i := range g.Anchors {
		assign(&g.Anchors[i].Identifier, g.Anchors[i].Lib)
	}
	for i := range g.Guidelines {
		assign(&g.Guidelines[i].Identifier, g.Guidelines[i].Lib)
	}
	if g.Outline != nil {
		for i := range g.Outline.Contours {
			assign(&g.Outline.Contours[i].Identifier, g.Outline.Contours[i].Lib)
		}
		for i := range g.Outline.Contours {
			pts := g.Outline.Contours[i].Points
			for j := range pts {
				assign(&pts[j].Identifier, pts[j].Lib)
			}
		}
		for i := range g.Outline.Components {
			assign(&g.Outline.Components[i].Identifier, g.Outline.Components[i].Lib)
		}
	}
	return out
}
