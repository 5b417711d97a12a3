package ufo

import "testing"

// filename escaping: uppercase doubling, leading-dot escape, reserved chars.
func TestFilenameForGlyphScenarioE(t *testing.T) {
	cases := map[string]string{
		"A":       "A_.glif",
		".notdef": "_notdef.glif",
		"a*b":     "a_b.glif",
	}
	for in, want := range cases {
		if got := filenameForGlyph(in); got != want {
			t.Errorf("filenameForGlyph(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestUniqueFilenamesResolvesCollisions(t *testing.T) {
	names := []string{"a*b", "a:b"}
	out := uniqueFilenames(names)
	if out["a*b"] == out["a:b"] {
		t.Fatalf("expected distinct filenames, got %q and %q", out["a*b"], out["a:b"])
	}
}

func TestFilenameTruncatesLongNames(t *testing.T) {
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'x'
	}
	got := filenameForGlyph(string(long))
	if len(got) > 255 {
		t.Fatalf("filename exceeds 255 bytes: %d", len(got))
	}
	if got[len(got)-5:] != ".glif" {
		t.Fatalf("filename does not end in .glif: %q", got)
	}
}
