package pixel

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Color is a non-premultiplied RGBA colour with 8 bits per channel.
type Color struct {
	R, G, B, A uint8
}

var (
	// Transparent is the colour of a freshly created canvas.
	Transparent = Color{}
	// Black is the default opaque drawing colour.
	Black = Color{0, 0, 0, 255}
	// White is opaque white.
	White = Color{255, 255, 255, 255}
)

// RGBA creates a Color from its channels.
func RGBA(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }

// FromColor converts any color.Color into a non-premultiplied Color.
func FromColor(c color.Color) Color {
	if p, ok := c.(Color); ok {
		return p
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// NRGBA returns the colour as a standard library color.NRGBA.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// IsTransparent reports whether the alpha channel is zero.
func (c Color) IsTransparent() bool { return c.A == 0 }

// WithAlpha returns c with its alpha channel replaced.
func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}

// Hex formats the colour as #RRGGBB, or #RRGGBBAA when not fully opaque.
func (c Color) Hex() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

func (c Color) String() string { return c.Hex() }

// Hue returns the HSV hue in degrees in the range [0, 360).
func (c Color) Hue() float64 {
	r, g, b := c.unit()
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	delta := max - min
	if delta == 0 {
		return 0
	}
	var h float64
	switch max {
	case r:
		h = math.Mod((g-b)/delta, 6)
	case g:
		h = (b-r)/delta + 2
	default:
		h = (r-g)/delta + 4
	}
	h *= 60
	if h < 0 {
		h += 360
	}
	return h
}

// Saturation returns the HSV saturation in the range [0, 1].
func (c Color) Saturation() float64 {
	r, g, b := c.unit()
	max := math.Max(r, math.Max(g, b))
	if max == 0 {
		return 0
	}
	min := math.Min(r, math.Min(g, b))
	return (max - min) / max
}

// Value returns the HSV value in the range [0, 1].
func (c Color) Value() float64 {
	r, g, b := c.unit()
	return math.Max(r, math.Max(g, b))
}

// DistanceSq returns the squared Euclidean distance between the RGB channels
// of c and o. Alpha is ignored.
func (c Color) DistanceSq(o Color) int {
	dr := int(c.R) - int(o.R)
	dg := int(c.G) - int(o.G)
	db := int(c.B) - int(o.B)
	return dr*dr + dg*dg + db*db
}

func (c Color) unit() (r, g, b float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255
}

// Nearest returns the entry of colors closest to c by DistanceSq. The first
// entry wins ties. ok is false when colors is empty.
func Nearest(colors []Color, c Color) (best Color, ok bool) {
	bestDist := -1
	for _, p := range colors {
		d := c.DistanceSq(p)
		if bestDist < 0 || d < bestDist {
			best, bestDist = p, d
			if d == 0 {
				break
			}
		}
	}
	return best, bestDist >= 0
}

// ParseHex parses #RGB, #RRGGBB or #RRGGBBAA. The leading # is optional.
func ParseHex(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		fallthrough
	case 6:
		hex += "ff"
	case 8:
	default:
		return Color{}, fmt.Errorf("invalid hex colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
