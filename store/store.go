/*
Package store implements the validated flat/nested byte-blob store used
for a UFO package's data/ and images/ directories.

A Store is purely in-memory; LoadDir/WriteDir at the bottom of this file
are the only functions that touch a filesystem, mirroring the layer and
font packages' own load/write split.
*/
package store

import (
	"bytes"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/typeforge/ufo/ufocore"
)

// Kind distinguishes the two stores a Font owns; Images stores are flat
// and PNG-only, Data stores allow nested directories.
type Kind int

const (
	Data Kind = iota
	Images
)

// pngSignature is the eight leading bytes every PNG file begins with.
var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// Store holds a validated set of path -> bytes entries.
type Store struct {
	kind    Kind
	entries map[string][]byte
	order   []string
}

// New returns an empty store of the given kind.
func New(kind Kind) *Store {
	return &Store{kind: kind, entries: make(map[string][]byte)}
}

// Insert validates and adds (or replaces) the entry at key. Validation
// rules:
//   - key must be non-empty, relative (not absolute), forward-slash
//     normalized.
//   - Images: flat only (no "/" in key) and must start with the PNG
//     signature.
//   - Data: no key may be a strict prefix-directory of another key and
//     vice versa (no "file under file").
func (s *Store) Insert(key string, data []byte) error {
	key = normalizeKey(key)
	if key == "" {
		return ufocore.New(ufocore.StoreEntry, "EmptyPath").WithPath(key)
	}
	if path.IsAbs(key) {
		return ufocore.New(ufocore.StoreEntry, "PathIsAbsolute").WithPath(key)
	}
	if s.kind == Images {
		if strings.Contains(key, "/") {
			return ufocore.New(ufocore.StoreEntry, "Subdir").WithPath(key)
		}
		if len(data) < 8 || !bytes.Equal(data[:8], pngSignature) {
			return ufocore.New(ufocore.StoreEntry, "InvalidImage").WithPath(key)
		}
	} else {
		if err := s.checkFileUnderFile(key); err != nil {
			return err
		}
	}
	if _, existed := s.entries[key]; !existed {
		s.order = append(s.order, key)
	}
	s.entries[key] = data
	return nil
}

// checkFileUnderFile enforces the data-store-only DirUnderFile rule: no
// existing key may be a prefix directory of key, and key may not be a
// prefix directory of an existing key.
func (s *Store) checkFileUnderFile(key string) error {
	for existing := range s.entries {
		if existing == key {
			continue
		}
		if strings.HasPrefix(key, existing+"/") {
			return ufocore.New(ufocore.StoreEntry, "DirUnderFile").WithPath(key)
		}
		if strings.HasPrefix(existing, key+"/") {
			return ufocore.New(ufocore.StoreEntry, "DirUnderFile").WithPath(key)
		}
	}
	return nil
}

// Get returns the bytes stored at key, if any.
func (s *Store) Get(key string) ([]byte, bool) {
	b, ok := s.entries[normalizeKey(key)]
	return b, ok
}

// Remove deletes the entry at key, if present.
func (s *Store) Remove(key string) {
	key = normalizeKey(key)
	if _, ok := s.entries[key]; !ok {
		return
	}
	delete(s.entries, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Entry pairs a stored key with its bytes, as returned by Iter.
type Entry struct {
	Key  string
	Data []byte
}

// Iter returns every entry in insertion order.
func (s *Store) Iter() []Entry {
	out := make([]Entry, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, Entry{Key: k, Data: s.entries[k]})
	}
	return out
}

// Len reports the number of entries in the store.
func (s *Store) Len() int { return len(s.entries) }

func normalizeKey(key string) string {
	return filepath.ToSlash(strings.TrimSpace(key))
}

// LoadDir walks root (data/ or images/ of a UFO package) and inserts every
// regular file found, keyed by its path relative to root. Symlinks are
// rejected (NotPlainFile / NotPlainFileOrDir).
func LoadDir(kind Kind, root string) (*Store, error) {
	s := New(kind)
	info, err := os.Lstat(root)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, ufocore.Wrap(err, ufocore.StoreEntry, "Io").WithPath(root)
	}
	if info.Mode()&os.ModeSymlink != 0 || !info.IsDir() {
		return nil, ufocore.New(ufocore.StoreEntry, "NotPlainFileOrDir").WithPath(root)
	}
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type()&os.ModeSymlink != 0 {
			return ufocore.New(ufocore.StoreEntry, "NotPlainFile").WithPath(p)
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return ufocore.Wrap(err, ufocore.StoreEntry, "Io").WithPath(p)
		}
		return s.Insert(rel, data)
	})
	if err != nil {
		if _, ok := err.(*ufocore.Error); ok {
			return nil, err
		}
		return nil, ufocore.Wrap(err, ufocore.StoreEntry, "Io").WithPath(root)
	}
	return s, nil
}

// WriteDir writes every entry in s to disk under root, creating
// directories as needed.
func WriteDir(s *Store, root string) error {
	if s == nil || s.Len() == 0 {
		return nil
	}
	for _, e := range s.Iter() {
		full := filepath.Join(root, filepath.FromSlash(e.Key))
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			return ufocore.Wrap(err, ufocore.StoreEntry, "Io").WithPath(full)
		}
		if err := os.WriteFile(full, e.Data, 0644); err != nil {
			return ufocore.Wrap(err, ufocore.StoreEntry, "Io").WithPath(full)
		}
	}
	return nil
}
