package glyphbrush

import (
	"strings"

	"github.com/gogpu/glyphbrush/layout"
)

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1]. It is the color representation
// used by Extra and carried verbatim into emitted vertices.
type RGBA = layout.RGBA

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return layout.RGB(r, g, b)
}

// RGBA4 creates a color from RGBA components.
func RGBA4(r, g, b, a float64) RGBA {
	return layout.RGBA4(r, g, b, a)
}

// Hex parses "RGB", "RGBA", "RRGGBB" or "RRGGBBAA", with an optional
// leading '#', into an RGBA. Short forms expand each digit to a byte
// ("F" -> 0xFF). Malformed input yields opaque black.
func Hex(hex string) RGBA {
	hex = strings.TrimPrefix(hex, "#")

	var nibbles [8]uint8
	if len(hex) > len(nibbles) {
		return Black
	}
	for i := 0; i < len(hex); i++ {
		n, ok := hexNibble(hex[i])
		if !ok {
			return Black
		}
		nibbles[i] = n
	}

	var r, g, b uint8
	a := uint8(0xff)
	switch len(hex) {
	case 3:
		r, g, b = nibbles[0]*0x11, nibbles[1]*0x11, nibbles[2]*0x11
	case 4:
		r, g, b, a = nibbles[0]*0x11, nibbles[1]*0x11, nibbles[2]*0x11, nibbles[3]*0x11
	case 6:
		r, g, b = nibbles[0]<<4|nibbles[1], nibbles[2]<<4|nibbles[3], nibbles[4]<<4|nibbles[5]
	case 8:
		r = nibbles[0]<<4 | nibbles[1]
		g = nibbles[2]<<4 | nibbles[3]
		b = nibbles[4]<<4 | nibbles[5]
		a = nibbles[6]<<4 | nibbles[7]
	default:
		return Black
	}

	return RGBA{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// Common colors.
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Red         = RGB(1, 0, 0)
	Transparent = RGBA4(0, 0, 0, 0)
)
