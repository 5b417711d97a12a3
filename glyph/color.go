package glyph

import "strconv"

// parseColor parses a UFO color attribute value. It must be exactly eight
// hex digits, rrggbbaa, each channel in 0-255; this library does not
// accept the shorthand rgb()/rgba() forms some other tools allow.
func parseColor(s string) (Color, bool) {
	if len(s) != 8 {
		return Color{}, false
	}
	chans := make([]float64, 4)
	for i := 0; i < 4; i++ {
		pair := s[i*2 : i*2+2]
		v, err := strconv.ParseUint(pair, 16, 16)
		if err != nil {
			return Color{}, false
		}
		chans[i] = float64(v) / 255.0
	}
	return Color{Red: chans[0], Green: chans[1], Blue: chans[2], Alpha: chans[3]}, true
}

// ParseColorString is the exported form of parseColor, for packages
// outside glyph (fontinfo guideline colors) that need the same rrggbbaa
// parsing rule.
func ParseColorString(s string) (Color, bool) { return parseColor(s) }

// FormatColorString is the exported form of formatColor.
func FormatColorString(c Color) string { return formatColor(c) }

// formatColor renders c back into the rrggbbaa hex form.
func formatColor(c Color) string {
	const hex = "0123456789abcdef"
	byteOf := func(f float64) byte {
		v := int(f*255.0 + 0.5)
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		return byte(v)
	}
	buf := make([]byte, 8)
	vals := []byte{byteOf(c.Red), byteOf(c.Green), byteOf(c.Blue), byteOf(c.Alpha)}
	for i, v := range vals {
		buf[i*2] = hex[v>>4]
		buf[i*2+1] = hex[v&0xF]
	}
	return string(buf)
}
