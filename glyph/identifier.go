package glyph

import (
	"github.com/google/uuid"
)

// IsValidIdentifier reports whether s is 1-100 ASCII characters in the
// printable range 0x20-0x7E.
func IsValidIdentifier(s string) bool {
	if len(s) < 1 || len(s) > 100 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 0x20 || c > 0x7E {
			return false
		}
	}
	return true
}

// NewIdentifier synthesizes a fresh Identifier as a UUIDv4 textual form.
// Identifier synthesis is driven strictly by a sub-object acquiring a lib
// without already having one, never speculatively.
func NewIdentifier() Identifier {
	return Identifier(uuid.NewString())
}

// identifierSet tracks identifiers seen so far across an entire glyph
// (anchors, guidelines, contours, points, components), enforcing the
// per-glyph uniqueness invariant.
type identifierSet map[Identifier]struct{}

func newIdentifierSet() identifierSet {
	return make(identifierSet)
}

// add records id, returning false if id was already present (and thus a
// DuplicateIdentifier violation) or true otherwise. The empty identifier
// is never tracked, since "no identifier" is not a collision.
func (s identifierSet) add(id Identifier) bool {
	if id == "" {
		return true
	}
	if _, ok := s[id]; ok {
		return false
	}
	s[id] = struct{}{}
	return true
}
