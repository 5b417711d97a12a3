/*
Package plist is the thin seam between the ufo module and the property-list
codec. The codec itself is treated as an external collaborator, not part
of this library's core. This package exists only to give every other
package one shared Dict type and a single place that imports
howett.net/plist, so that swapping the underlying codec later touches one
file.
*/
package plist

import (
	"bytes"
	"fmt"
	"io"
	"os"

	applist "howett.net/plist"
)

// Dict is the in-memory shape of a plist <dict>: string keys, values that
// are themselves one of string, int64, uint64, float64, bool, []byte,
// []interface{} or a nested dictionary. Nested dictionaries decoded by the
// codec arrive as map[string]interface{}, not Dict; AsDict accepts both.
type Dict map[string]interface{}

// ErrNotDictionary is returned by AsDict (and so by ReadDictFile) when the
// value is not a dictionary.
var ErrNotDictionary = fmt.Errorf("plist: top-level value is not a dictionary")

// ReadFile reads and parses an Apple-format property list file, returning
// its top-level value in whatever shape it has (a dictionary arrives as
// map[string]interface{}; ReadDictFile normalizes it to Dict).
func ReadFile(path string) (interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Read(bytes.NewReader(data))
}

// Read parses a property list from r into a generic interface{} tree.
func Read(r io.Reader) (interface{}, error) {
	dec := applist.NewDecoder(r)
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// ReadDictFile reads path and requires its top-level value to be a
// dictionary, normalizing it to Dict.
func ReadDictFile(path string) (Dict, error) {
	v, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return AsDict(v)
}

// AsDict normalizes a decoded plist value into a Dict, failing if v is not
// a dictionary-shaped value.
func AsDict(v interface{}) (Dict, error) {
	switch d := v.(type) {
	case Dict:
		return d, nil
	case map[string]interface{}:
		return Dict(d), nil
	default:
		return nil, ErrNotDictionary
	}
}

// Unmarshal decodes an already-read byte slice into v (typically a typed
// struct tagged with `plist:"key"`), delegating entirely to the underlying
// codec.
func Unmarshal(data []byte, v interface{}) error {
	_, err := applist.Unmarshal(data, v)
	return err
}

// UnmarshalFile reads path and unmarshals it into v.
func UnmarshalFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return Unmarshal(data, v)
}

// Marshal renders v (a Dict or a tagged struct) as XML-format plist bytes,
// UTF-8 encoded, beginning with the standard XML declaration.
func Marshal(v interface{}) ([]byte, error) {
	return applist.MarshalIndent(v, applist.XMLFormat, "\t")
}

// WriteFile renders v as an XML plist and writes it to path with mode 0644.
func WriteFile(path string, v interface{}) error {
	data, err := Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// AsInt normalizes a decoded plist numeric value (int64, uint64, or
// float64, depending on how the codec chose to represent it) into an int.
func AsInt(v interface{}) (int, error) {
	switch n := v.(type) {
	case int64:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float64:
		return int(n), nil
	case int:
		return n, nil
	default:
		return 0, fmt.Errorf("plist: value is not a number: %T", v)
	}
}

// AsFloat normalizes a decoded plist numeric value into a float64.
func AsFloat(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case int:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("plist: value is not a number: %T", v)
	}
}

// AsString normalizes a decoded plist string value.
func AsString(v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("plist: value is not a string: %T", v)
	}
	return s, nil
}

// AsBool normalizes a decoded plist boolean value.
func AsBool(v interface{}) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("plist: value is not a bool: %T", v)
	}
	return b, nil
}

// Body strips the `<?xml ...?><!DOCTYPE ...><plist version="1.0">` preamble
// and trailing `</plist>` from a full plist document, leaving only the
// top-level value's own markup (typically a <dict>...</dict>). This is how
// a lib's plist rendering gets embedded inside a .glif file's <lib>
// element.
//
// Returns an error if the preamble/suffix cannot be located, so callers can
// surface their own write error instead of emitting malformed XML.
func Body(fullDocument []byte) ([]byte, error) {
	const openTag = "<plist version=\"1.0\">"
	const closeTag = "</plist>"
	start := bytes.Index(fullDocument, []byte(openTag))
	if start < 0 {
		return nil, fmt.Errorf("plist: could not locate %q preamble", openTag)
	}
	start += len(openTag)
	end := bytes.LastIndex(fullDocument, []byte(closeTag))
	if end < 0 || end < start {
		return nil, fmt.Errorf("plist: could not locate closing %q", closeTag)
	}
	return bytes.TrimSpace(fullDocument[start:end]), nil
}
