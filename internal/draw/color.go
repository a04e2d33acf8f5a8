package draw

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an opaque 24-bit color. Terminal output is quantized to the
// xterm 256-color palette.
type Color struct {
	R, G, B uint8
}

// Common colors.
var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
)

// RGB builds a color from 8-bit components.
func RGB(r, g, b uint8) Color {
	return Color{r, g, b}
}

// Hex parses "#rrggbb". Invalid input yields white.
func Hex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		return White
	}
	return c
}

// ParseHex parses "#rrggbb".
func ParseHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return fromColorful(c), nil
}

// HSL builds a color from hue in degrees and saturation and lightness in [0,1].
func HSL(h, s, l float64) Color {
	return fromColorful(colorful.Hsl(h, s, l).Clamped())
}

// Blend mixes c toward o by t in [0,1].
func (c Color) Blend(o Color, t float64) Color {
	if t <= 0 {
		return c
	}
	if t >= 1 {
		return o
	}
	return fromColorful(c.colorful().BlendRgb(o.colorful(), t).Clamped())
}

// Scale multiplies the color's brightness by f.
func (c Color) Scale(f float64) Color {
	if f < 0 {
		f = 0
	}
	return Color{scale8(c.R, f), scale8(c.G, f), scale8(c.B, f)}
}

func scale8(v uint8, f float64) uint8 {
	x := float64(v) * f
	if x > 255 {
		return 255
	}
	return uint8(x)
}

// Xterm256 returns the nearest index in the xterm 256-color palette,
// choosing between the 6x6x6 cube and the gray ramp.
func (c Color) Xterm256() uint8 {
	ri, gi, bi := cubeIndex(c.R), cubeIndex(c.G), cubeIndex(c.B)
	cube := Color{cubeLevels[ri], cubeLevels[gi], cubeLevels[bi]}

	avg := (int(c.R) + int(c.G) + int(c.B)) / 3
	grayIdx := 23
	if avg < 238 {
		grayIdx = (avg - 3) / 10
		if grayIdx < 0 {
			grayIdx = 0
		}
	}
	gv := uint8(8 + 10*grayIdx)
	gray := Color{gv, gv, gv}

	if distSq(c, gray) < distSq(c, cube) {
		return uint8(232 + grayIdx)
	}
	return uint8(16 + 36*ri + 6*gi + bi)
}

var cubeLevels = [6]uint8{0, 95, 135, 175, 215, 255}

func cubeIndex(v uint8) int {
	switch {
	case v < 48:
		return 0
	case v < 115:
		return 1
	default:
		return int((v-35)/40)
	}
}

func distSq(a, b Color) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.RGB255()
	return Color{r, g, b}
}
