package vg

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an sRGB color with straight (non-premultiplied) alpha.
//
// Alpha is always in [0, 1]. The color channels are not clamped so
// extended values survive until a backend converts them; use [Color.Clamped]
// to get displayable components. Equality is exact component match.
type Color struct {
	R, G, B, A float64
}

// RGB creates an opaque color from components in [0, 1].
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// RGBA creates a color from components in [0, 1]. Alpha is clamped.
func RGBA(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: clamp01(a)}
}

// RGB8 creates an opaque color from 8-bit components.
func RGB8(r, g, b uint8) Color {
	return RGBA8(r, g, b, 0xff)
}

// RGBA8 creates a color from 8-bit straight-alpha components.
func RGBA8(r, g, b, a uint8) Color {
	return Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}
}

// Grey creates an opaque grey with the given lightness in [0, 1].
func Grey(v float64) Color {
	return RGB(v, v, v)
}

// FromColor converts any color.Color (which reports premultiplied
// channels) into a straight-alpha Color.
func FromColor(c color.Color) Color {
	nc := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return Color{
		R: float64(nc.R) / 0xffff,
		G: float64(nc.G) / 0xffff,
		B: float64(nc.B) / 0xffff,
		A: float64(nc.A) / 0xffff,
	}
}

// Hex parses a CSS hex color: #rgb, #rgba, #rrggbb or #rrggbbaa.
// The leading '#' is optional.
func Hex(s string) (Color, error) {
	h := strings.TrimPrefix(s, "#")
	switch len(h) {
	case 3, 6:
		if len(h) == 3 {
			h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
		}
		c, err := colorful.Hex("#" + h)
		if err != nil {
			return Color{}, InvalidInputf("hex color %q", s)
		}
		return Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
	case 4, 8:
		if len(h) == 4 {
			h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2], h[3], h[3]})
		}
		c, err := colorful.Hex("#" + h[:6])
		if err != nil {
			return Color{}, InvalidInputf("hex color %q", s)
		}
		a, err := strconv.ParseUint(h[6:], 16, 8)
		if err != nil {
			return Color{}, InvalidInputf("hex color %q", s)
		}
		return Color{R: c.R, G: c.G, B: c.B, A: float64(a) / 255}, nil
	}
	return Color{}, InvalidInputf("hex color %q", s)
}

// MustHex is like Hex but panics on malformed input. It is intended for
// package-level color tables.
func MustHex(s string) Color {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// WithAlpha returns c with alpha replaced (clamped to [0, 1]).
func (c Color) WithAlpha(a float64) Color {
	c.A = clamp01(a)
	return c
}

// MultiplyAlpha returns c with alpha scaled by f.
func (c Color) MultiplyAlpha(f float64) Color {
	c.A = clamp01(c.A * f)
	return c
}

// Clamped returns c with every component clamped to [0, 1]. NaN
// components become 0.
func (c Color) Clamped() Color {
	return Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B), A: clamp01(c.A)}
}

// IsOpaque reports whether alpha is 1.
func (c Color) IsOpaque() bool {
	return c.A >= 1
}

// AsRGBA8 returns clamped, rounded 8-bit straight-alpha components.
func (c Color) AsRGBA8() (r, g, b, a uint8) {
	cc := c.Clamped()
	return to8(cc.R), to8(cc.G), to8(cc.B), to8(cc.A)
}

// NRGBA converts to a straight-alpha color.NRGBA.
func (c Color) NRGBA() color.NRGBA {
	r, g, b, a := c.AsRGBA8()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// PremulRGBA converts to a premultiplied color.RGBA.
func (c Color) PremulRGBA() color.RGBA {
	cc := c.Clamped()
	return color.RGBA{
		R: to8(cc.R * cc.A),
		G: to8(cc.G * cc.A),
		B: to8(cc.B * cc.A),
		A: to8(cc.A),
	}
}

// RGBA implements color.Color with 16-bit premultiplied channels.
func (c Color) RGBA() (r, g, b, a uint32) {
	cc := c.Clamped()
	return to16(cc.R * cc.A), to16(cc.G * cc.A), to16(cc.B * cc.A), to16(cc.A)
}

// Lerp interpolates between c and o in sRGB space. Alpha is interpolated
// linearly as well; t is not clamped.
func (c Color) Lerp(o Color, t float64) Color {
	mixed := colorful.Color{R: c.R, G: c.G, B: c.B}.BlendRgb(colorful.Color{R: o.R, G: o.G, B: o.B}, t)
	return Color{R: mixed.R, G: mixed.G, B: mixed.B, A: clamp01(c.A + (o.A-c.A)*t)}
}

// String returns the CSS form: #rrggbb for opaque colors and
// rgba(r,g,b,a) otherwise.
func (c Color) String() string {
	r, g, b, a := c.AsRGBA8()
	if a == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", r, g, b)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", r, g, b, strconv.FormatFloat(float64(a)/255, 'g', 3, 64))
}

func clamp01(x float64) float64 {
	switch {
	case x > 1:
		return 1
	case x > 0:
		return x
	default:
		return 0 // also NaN
	}
}

func to8(x float64) uint8 {
	return uint8(math.Round(x * 255))
}

func to16(x float64) uint32 {
	return uint32(math.Round(x * 0xffff))
}

// Named colors.
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Red         = RGB(1, 0, 0)
	Green       = RGB(0, 1, 0)
	Blue        = RGB(0, 0, 1)
	Yellow      = RGB(1, 1, 0)
	Cyan        = RGB(0, 1, 1)
	Magenta     = RGB(1, 0, 1)
	Transparent = Color{}
)
