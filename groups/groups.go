/*
Package groups implements groups.plist loading, kerning-group name
validation, and v1/v2 to v3 upconversion.
*/
package groups

import (
	"sort"
	"strings"

	"github.com/typeforge/ufo/plist"
	"github.com/typeforge/ufo/ufocore"
)

const (
	Kern1Prefix = "public.kern1."
	Kern2Prefix = "public.kern2."
)

// Groups maps a group name to its member glyph names, preserving the
// order both of groups and of each group's membership list.
type Groups struct {
	names   []string
	members map[string][]string
}

// New returns an empty Groups.
func New() *Groups {
	return &Groups{members: make(map[string][]string)}
}

// Set replaces (or creates) a group's membership list.
func (g *Groups) Set(name string, glyphs []string) {
	if _, ok := g.members[name]; !ok {
		g.names = append(g.names, name)
	}
	g.members[name] = glyphs
}

// Names returns every group name, in insertion order.
func (g *Groups) Names() []string {
	out := make([]string, len(g.names))
	copy(out, g.names)
	return out
}

// Members returns the glyph list for name.
func (g *Groups) Members(name string) []string {
	return g.members[name]
}

// kerningPrefix reports whether name carries one of the two kerning
// side prefixes, and which one.
func kerningPrefix(name string) (prefix string, ok bool) {
	switch {
	case strings.HasPrefix(name, Kern1Prefix):
		return Kern1Prefix, true
	case strings.HasPrefix(name, Kern2Prefix):
		return Kern2Prefix, true
	}
	return "", false
}

// Validate checks every kerning group name for a non-empty suffix after
// its side prefix (InvalidName), and that no glyph appears in two
// kerning groups sharing the same side prefix (OverlappingKerningGroups,
// reporting the first offending glyph and the last group encountered
// holding it).
func Validate(g *Groups) error {
	for _, name := range g.names {
		if prefix, ok := kerningPrefix(name); ok {
			if len(name) == len(prefix) {
				return ufocore.New(ufocore.GroupsLoad, "InvalidName").WithPath(name)
			}
		}
	}

	owner := map[string]map[string]string{Kern1Prefix: {}, Kern2Prefix: {}}
	sortedNames := append([]string(nil), g.names...)
	sort.Strings(sortedNames)
	for _, name := range sortedNames {
		prefix, ok := kerningPrefix(name)
		if !ok {
			continue
		}
		for _, glyph := range g.members[name] {
			if prevGroup, seen := owner[prefix][glyph]; seen && prevGroup != name {
				return ufocore.New(ufocore.GroupsLoad, "OverlappingKerningGroups").
					WithGlyph(glyph).WithPath(name)
			}
			owner[prefix][glyph] = name
		}
	}
	return nil
}

// Load decodes a raw groups.plist dict (string -> []string) into Groups.
func Load(d plist.Dict) (*Groups, error) {
	g := New()
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		raw, ok := d[name].([]interface{})
		if !ok {
			return nil, ufocore.New(ufocore.GroupsLoad, "InvalidMemberList").WithPath(name)
		}
		members := make([]string, 0, len(raw))
		for _, v := range raw {
			s, err := plist.AsString(v)
			if err != nil {
				return nil, ufocore.New(ufocore.GroupsLoad, "InvalidMemberList").WithPath(name)
			}
			members = append(members, s)
		}
		g.Set(name, members)
	}
	g = UpconvertV1(g)
	if err := Validate(g); err != nil {
		return nil, err
	}
	return g, nil
}

// Save renders g as a raw groups.plist dict.
func Save(g *Groups) plist.Dict {
	d := plist.Dict{}
	for _, name := range g.names {
		members := g.members[name]
		list := make([]interface{}, len(members))
		for i, m := range members {
			list[i] = m
		}
		d[name] = list
	}
	return d
}
