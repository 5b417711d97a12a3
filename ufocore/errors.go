/*
Package ufocore holds the error taxonomy shared by every component of the
ufo module (font, layer, glyph, store, fontinfo and groups loaders).

Errors are a flat, tagged hierarchy rather than a deep one: a Kind names
the operation that failed (FontLoad, GlifWrite, ...), an optional Reason
narrows it further for parser/validator errors, and a wrapped cause and
structured context (path, glyph name, layer name, byte position) travel
alongside. Generalized from a single int code to a (Kind, Reason) pair
because this domain has many more named failure variants than a handful
of HTTP-style codes.
*/
package ufocore

import (
	"errors"
	"fmt"
)

// Kind identifies which top-level operation produced an error.
type Kind int

const (
	_ Kind = iota
	FontLoad
	FontWrite
	LayerLoad
	LayerWrite
	GlifLoad
	GlifWrite
	StoreEntry
	FontInfoLoad
	GroupsLoad
)

func (k Kind) String() string {
	switch k {
	case FontLoad:
		return "font-load"
	case FontWrite:
		return "font-write"
	case LayerLoad:
		return "layer-load"
	case LayerWrite:
		return "layer-write"
	case GlifLoad:
		return "glif-load"
	case GlifWrite:
		return "glif-write"
	case StoreEntry:
		return "store-entry"
	case FontInfoLoad:
		return "fontinfo-load"
	case GroupsLoad:
		return "groups-load"
	}
	return "undefined"
}

// Error is the concrete error type produced by every exported operation in
// this module. It always has a Kind and wraps a cause when built by Wrap
// (New leaves it without one); Path/Glyph/Layer and Pos are filled in when
// known.
type Error struct {
	Kind   Kind
	Reason string // e.g. "TooManyOffCurves", "MissingContentsFile"; empty if Kind alone is descriptive
	cause  error
	Path   string
	Glyph  string
	Layer  string
	Pos    int64 // byte offset, -1 if not applicable
}

func (e *Error) Error() string {
	var where string
	switch {
	case e.Layer != "" && e.Glyph != "":
		where = fmt.Sprintf(" (layer %q, glyph %q)", e.Layer, e.Glyph)
	case e.Glyph != "":
		where = fmt.Sprintf(" (glyph %q)", e.Glyph)
	case e.Layer != "":
		where = fmt.Sprintf(" (layer %q)", e.Layer)
	case e.Path != "":
		where = fmt.Sprintf(" (%s)", e.Path)
	}
	if e.Reason != "" {
		if e.cause != nil {
			return fmt.Sprintf("%s: %s%s: %v", e.Kind, e.Reason, where, e.cause)
		}
		return fmt.Sprintf("%s: %s%s", e.Kind, e.Reason, where)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s%s: %v", e.Kind, where, e.cause)
	}
	return fmt.Sprintf("%s%s", e.Kind, where)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates an Error of the given kind and reason, with no wrapped cause.
func New(kind Kind, reason string) *Error {
	return &Error{Kind: kind, Reason: reason, Pos: -1}
}

// Wrap attaches kind/reason context to a lower-level cause (typically an
// I/O error). If err is nil, Wrap returns nil.
func Wrap(err error, kind Kind, reason string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Reason: reason, cause: err, Pos: -1}
}

// WithPath returns a copy of e annotated with a file-system path.
func (e *Error) WithPath(path string) *Error {
	c := *e
	c.Path = path
	return &c
}

// WithGlyph returns a copy of e annotated with a glyph name.
func (e *Error) WithGlyph(name string) *Error {
	c := *e
	c.Glyph = name
	return &c
}

// WithLayer returns a copy of e annotated with a layer name.
func (e *Error) WithLayer(name string) *Error {
	c := *e
	c.Layer = name
	return &c
}

// WithPos returns a copy of e annotated with a byte offset into the source.
func (e *Error) WithPos(pos int64) *Error {
	c := *e
	c.Pos = pos
	return &c
}

// Is reports whether err is an *Error of the given kind, so callers can
// write `errors.Is`-style kind checks without exposing the struct fields.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// HasReason reports whether err is an *Error carrying the given reason
// string, regardless of kind.
func HasReason(err error, reason string) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason == reason
	}
	return false
}
