package vtengine

import (
	"strconv"
	"strings"
)

// Palette16 is the canonical VGA-family 16-color table: the standard 8
// colors (indices 0-7) followed by their bright variants (8-15).
var Palette16 = [16]Color{
	NewColor(0x00, 0x00, 0x00), // black
	NewColor(0xCD, 0x00, 0x00), // red
	NewColor(0x00, 0xCD, 0x00), // green
	NewColor(0xCD, 0xCD, 0x00), // yellow
	NewColor(0x00, 0x00, 0xEE), // blue
	NewColor(0xCD, 0x00, 0xCD), // magenta
	NewColor(0x00, 0xCD, 0xCD), // cyan
	NewColor(0xE5, 0xE5, 0xE5), // white

	NewColor(0x7F, 0x7F, 0x7F), // bright black
	NewColor(0xFF, 0x00, 0x00), // bright red
	NewColor(0x00, 0xFF, 0x00), // bright green
	NewColor(0xFF, 0xFF, 0x00), // bright yellow
	NewColor(0x5C, 0x5C, 0xFF), // bright blue
	NewColor(0xFF, 0x00, 0xFF), // bright magenta
	NewColor(0x00, 0xFF, 0xFF), // bright cyan
	NewColor(0xFF, 0xFF, 0xFF), // bright white
}

// cubeLevels are the 6 intensity steps used by the 256-color cube
// (indices 16-231): component c maps to 0 if c==0, else 55+40*c.
var cubeLevels = [6]uint8{0, 95, 135, 175, 215, 255}

// Palette256 is the full xterm 256-color table: Palette16 at 0-15, a
// 6x6x6 RGB cube at 16-231, and 24 grayscale steps at 232-255.
var Palette256 = buildPalette256()

func buildPalette256() [256]Color {
	var p [256]Color
	copy(p[0:16], Palette16[:])

	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				p[i] = NewColor(cubeLevels[r], cubeLevels[g], cubeLevels[b])
				i++
			}
		}
	}

	for j := 0; j < 24; j++ {
		gray := uint8(8 + 10*j)
		p[232+j] = NewColor(gray, gray, gray)
	}

	return p
}

// FgFromSGR resolves a standard (30-37) or bright (90-97) SGR foreground
// color code to its Palette16 color. ok is false for any other code.
func FgFromSGR(code int) (Color, bool) {
	return paletteIndexFromSGR(code, 30, 90)
}

// BgFromSGR resolves a standard (40-47) or bright (100-107) SGR background
// color code to its Palette16 color. ok is false for any other code.
func BgFromSGR(code int) (Color, bool) {
	return paletteIndexFromSGR(code, 40, 100)
}

func paletteIndexFromSGR(code, standardBase, brightBase int) (Color, bool) {
	switch {
	case code >= standardBase && code <= standardBase+7:
		return Palette16[code-standardBase], true
	case code >= brightBase && code <= brightBase+7:
		return Palette16[code-brightBase+8], true
	default:
		return Color{}, false
	}
}

// ParseColorSpec parses an OSC color spec: "rgb:RR/GG/BB" or
// "rgb:RRRR/GGGG/BBBB" (the high byte of each 4-hex-digit component is
// used), or "#RRGGBB". Malformed specs return ok=false and leave the
// caller's state untouched.
func ParseColorSpec(s string) (Color, bool) {
	switch {
	case strings.HasPrefix(s, "rgb:"):
		return parseRGBSpec(s[len("rgb:"):])
	case strings.HasPrefix(s, "#"):
		return parseHashSpec(s[1:])
	default:
		return Color{}, false
	}
}

func parseRGBSpec(body string) (Color, bool) {
	parts := strings.Split(body, "/")
	if len(parts) != 3 {
		return Color{}, false
	}
	var comp [3]uint8
	for i, part := range parts {
		switch len(part) {
		case 2:
			v, err := strconv.ParseUint(part, 16, 8)
			if err != nil {
				return Color{}, false
			}
			comp[i] = uint8(v)
		case 4:
			v, err := strconv.ParseUint(part, 16, 16)
			if err != nil {
				return Color{}, false
			}
			comp[i] = uint8(v >> 8)
		default:
			return Color{}, false
		}
	}
	return NewColor(comp[0], comp[1], comp[2]), true
}

func parseHashSpec(body string) (Color, bool) {
	if len(body) != 6 {
		return Color{}, false
	}
	v, err := strconv.ParseUint(body, 16, 32)
	if err != nil {
		return Color{}, false
	}
	return NewColor(uint8(v>>16), uint8(v>>8), uint8(v)), true
}
