package ufo

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// reservedChars become '_' in a glyph filename.
var reservedChars = map[rune]bool{
	'\\': true, '*': true, '+': true, '/': true, ':': true,
	'<': true, '>': true, '?': true, '[': true, ']': true, '|': true,
}

// filenameForGlyph implements the canonical UFO filename algorithm: NFC
// normalization, reserved-character escaping, and a length cap. The
// returned name always ends in ".glif" and is at most 255 bytes.
func filenameForGlyph(name string) string {
	normalized := norm.NFC.String(name)
	var b strings.Builder
	for i, r := range normalized {
		switch {
		case i == 0 && r == '.':
			b.WriteRune('_')
		case r < 0x20 || r == 0x7F:
			b.WriteRune('_')
		case reservedChars[r]:
			b.WriteRune('_')
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r)
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	escaped := b.String()
	const suffix = ".glif"
	if len(escaped)+len(suffix) > 255 {
		escaped = truncateToByteBoundary(escaped, 255-len(suffix))
	}
	return escaped + suffix
}

// truncateToByteBoundary cuts s to at most n bytes, backing off to the
// nearest preceding rune boundary so no multi-byte UTF-8 sequence is split.
func truncateToByteBoundary(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !isRuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

// uniqueFilenames assigns each glyph name (in iteration order) a filename,
// resolving collisions with a "#<n>" suffix before ".glif". Collisions can
// arise both from escaping collapsing distinct names together and from
// case-insensitive filesystem aliasing.
func uniqueFilenames(glyphNames []string) map[string]string {
	used := make(map[string]bool, len(glyphNames))
	out := make(map[string]string, len(glyphNames))
	for _, name := range glyphNames {
		base := filenameForGlyph(name)
		candidate := base
		n := 1
		for used[strings.ToLower(candidate)] {
			stem := strings.TrimSuffix(base, ".glif")
			candidate = fmt.Sprintf("%s#%d.glif", stem, n)
			n++
		}
		used[strings.ToLower(candidate)] = true
		out[name] = candidate
	}
	return out
}
