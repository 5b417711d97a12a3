package ufo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typeforge/ufo/glyph"
)

func TestFontSaveLoadRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ufo")
	defer teardown()

	dir := t.TempDir()
	ufoPath := filepath.Join(dir, "Example.ufo")

	f := New()
	f.MetaInfo.Creator = "com.example.tool"
	g := glyph.New("A")
	g.Advance = &glyph.Advance{Width: 500}
	g.Codepoints = []rune{'A'}
	f.DefaultLayer().Put(g)

	require.NoError(t, Save(f, ufoPath))

	loaded, err := Load(ufoPath)
	require.NoError(t, err)
	assert.Equal(t, "com.example.tool", loaded.MetaInfo.Creator)
	assert.Equal(t, FormatVersion, loaded.MetaInfo.FormatVersion)

	lg, ok := loaded.DefaultLayer().Get("A")
	require.True(t, ok)
	require.NotNil(t, lg.Advance)
	assert.Equal(t, float64(500), lg.Advance.Width)
	assert.Equal(t, []rune{'A'}, lg.Codepoints)
}

func TestLoadMissingDirFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.ufo"))
	require.Error(t, err)
}

func TestLoadMissingMetaInfoFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(dir, 0755))
	_, err := Load(dir)
	require.Error(t, err)
}
