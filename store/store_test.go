package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/typeforge/ufo/ufocore"
)

func TestDataStoreRejectsFileUnderFile(t *testing.T) {
	s := New(Data)
	require.NoError(t, s.Insert("com.example.foo/bar.txt", []byte("a")))
	err := s.Insert("com.example.foo/bar.txt/baz.txt", []byte("b"))
	require.Error(t, err)
	assert.True(t, ufocore.HasReason(err, "DirUnderFile"))
}

func TestDataStoreRejectsAbsolutePath(t *testing.T) {
	s := New(Data)
	err := s.Insert("/etc/passwd", []byte("x"))
	require.Error(t, err)
	assert.True(t, ufocore.HasReason(err, "PathIsAbsolute"))
}

func TestDataStoreRejectsEmptyPath(t *testing.T) {
	s := New(Data)
	err := s.Insert("", []byte("x"))
	require.Error(t, err)
	assert.True(t, ufocore.HasReason(err, "EmptyPath"))
}

func TestImageStoreRejectsSubdir(t *testing.T) {
	s := New(Images)
	png := append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, 0x00)
	err := s.Insert("sub/dir/glyph.png", png)
	require.Error(t, err)
	assert.True(t, ufocore.HasReason(err, "Subdir"))
}

func TestImageStoreRejectsNonPng(t *testing.T) {
	s := New(Images)
	err := s.Insert("glyph.png", []byte("not a png"))
	require.Error(t, err)
	assert.True(t, ufocore.HasReason(err, "InvalidImage"))
}

func TestImageStoreAcceptsValidPng(t *testing.T) {
	s := New(Images)
	png := append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, 0x00, 0x01)
	require.NoError(t, s.Insert("glyph.png", png))
	data, ok := s.Get("glyph.png")
	require.True(t, ok)
	assert.Equal(t, png, data)
}

func TestStoreIterOrderAndRemove(t *testing.T) {
	s := New(Data)
	require.NoError(t, s.Insert("a.txt", []byte("1")))
	require.NoError(t, s.Insert("b.txt", []byte("2")))
	entries := s.Iter()
	require.Len(t, entries, 2)
	assert.Equal(t, "a.txt", entries[0].Key)
	assert.Equal(t, "b.txt", entries[1].Key)

	s.Remove("a.txt")
	assert.Equal(t, 1, s.Len())
	_, ok := s.Get("a.txt")
	assert.False(t, ok)
}
