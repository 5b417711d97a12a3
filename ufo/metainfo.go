package ufo

import (
	"github.com/typeforge/ufo/plist"
	"github.com/typeforge/ufo/ufocore"
)

// FormatVersion is the only UFO schema version this library writes; it
// never downgrades to v1/v2 on save.
const FormatVersion = 3

// MetaInfo is the required metainfo.plist record.
type MetaInfo struct {
	Creator       string
	FormatVersion int
}

func loadMetaInfo(d plist.Dict) (*MetaInfo, error) {
	mi := &MetaInfo{FormatVersion: 3}
	if c, ok := d["creator"].(string); ok {
		mi.Creator = c
	}
	if v, ok := d["formatVersion"]; ok {
		n, err := plist.AsInt(v)
		if err != nil {
			return nil, ufocore.New(ufocore.FontLoad, "InvalidMetaInfo")
		}
		mi.FormatVersion = n
	}
	return mi, nil
}

func saveMetaInfo(mi *MetaInfo) plist.Dict {
	return plist.Dict{
		"creator":       mi.Creator,
		"formatVersion": FormatVersion,
	}
}
