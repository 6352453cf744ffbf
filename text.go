package vg

import (
	"math"
	"strconv"
)

// FontFamily names a font family. Generic families (SansSerif, Serif,
// Monospace, SystemUI) are resolved by each backend to a concrete face.
type FontFamily struct {
	name    string
	generic bool
}

// Generic font families.
var (
	SansSerif = FontFamily{name: "sans-serif", generic: true}
	Serif     = FontFamily{name: "serif", generic: true}
	Monospace = FontFamily{name: "monospace", generic: true}
	SystemUI  = FontFamily{name: "system-ui", generic: true}
)

// NewFontFamily returns a named, non-generic family. Use Text.FontFamily
// to check that a backend knows it.
func NewFontFamily(name string) FontFamily {
	return FontFamily{name: name}
}

// Name returns the family name, e.g. "Go" or "sans-serif".
func (f FontFamily) Name() string { return f.name }

// IsGeneric reports whether f is one of the generic families.
func (f FontFamily) IsGeneric() bool { return f.generic }

func (f FontFamily) String() string { return f.name }

// FontWeight is a CSS-style font weight in [1, 1000].
type FontWeight uint16

// Named weights.
const (
	Thin       FontWeight = 100
	ExtraLight FontWeight = 200
	Light      FontWeight = 300
	Normal     FontWeight = 400
	Medium     FontWeight = 500
	SemiBold   FontWeight = 600
	Bold       FontWeight = 700
	ExtraBold  FontWeight = 800
	Heavy      FontWeight = 900
)

func (w FontWeight) String() string { return strconv.Itoa(int(w)) }

// FontStyle is the slant of a face.
type FontStyle uint8

const (
	// Regular is the upright style.
	Regular FontStyle = iota
	// Italic is the italic (or oblique) style.
	Italic
)

func (s FontStyle) String() string {
	if s == Italic {
		return "italic"
	}
	return "normal"
}

// TextAlignment positions lines within the layout width.
type TextAlignment uint8

const (
	// AlignStart aligns to the leading edge of the paragraph direction.
	AlignStart TextAlignment = iota
	// AlignEnd aligns to the trailing edge of the paragraph direction.
	AlignEnd
	// AlignCenter centers each line.
	AlignCenter
	// AlignJustified is accepted and laid out like AlignStart.
	AlignJustified
)

func (a TextAlignment) String() string {
	switch a {
	case AlignEnd:
		return "end"
	case AlignCenter:
		return "center"
	case AlignJustified:
		return "justified"
	}
	return "start"
}

// LineMetric describes one visual line of a layout. Offsets are UTF-8
// byte offsets into the layout text.
type LineMetric struct {
	StartOffset int
	// EndOffset includes trailing whitespace and a trailing newline.
	EndOffset int
	// TrailingWhitespace is the byte length of trailing whitespace
	// (including a newline) at the end of the line.
	TrailingWhitespace int
	// Baseline is the distance from the top of the line to its baseline.
	Baseline float64
	Height   float64
	// YOffset is the distance from the top of the layout to the top of
	// the line.
	YOffset float64
}

// HitTestPoint is the result of mapping a point to a text offset.
type HitTestPoint struct {
	Idx      int
	IsInside bool
}

// HitTestPosition is the result of mapping a text offset to a point.
// Point is on the baseline at the leading edge of the cluster.
type HitTestPosition struct {
	Point Point
	Line  int
}

// RangeColor paints the bytes [Start, End) of a layout with Color.
type RangeColor struct {
	Start, End int
	Color      Color
}

// LayoutConfig is the resolved set of layout options.
type LayoutConfig struct {
	Alignment TextAlignment
	Color     Color
	Weight    FontWeight
	Style     FontStyle
	Ranges    []RangeColor
}

// LayoutOption configures NewTextLayout.
type LayoutOption func(*LayoutConfig)

// WithAlignment sets the line alignment.
func WithAlignment(a TextAlignment) LayoutOption {
	return func(c *LayoutConfig) { c.Alignment = a }
}

// WithTextColor sets the default text color.
func WithTextColor(col Color) LayoutOption {
	return func(c *LayoutConfig) { c.Color = col }
}

// WithWeight selects the font weight.
func WithWeight(w FontWeight) LayoutOption {
	return func(c *LayoutConfig) { c.Weight = w }
}

// WithStyle selects the font style.
func WithStyle(s FontStyle) LayoutOption {
	return func(c *LayoutConfig) { c.Style = s }
}

// WithRangeColor paints the bytes [start, end) with col. Later ranges
// win where they overlap.
func WithRangeColor(start, end int, col Color) LayoutOption {
	return func(c *LayoutConfig) {
		c.Ranges = append(c.Ranges, RangeColor{Start: start, End: end, Color: col})
	}
}

// NewLayoutConfig applies opts over the defaults (start alignment,
// black, normal weight, regular style).
func NewLayoutConfig(opts ...LayoutOption) LayoutConfig {
	c := LayoutConfig{Alignment: AlignStart, Color: Black, Weight: Normal, Style: Regular}
	for _, o := range opts {
		if o != nil {
			o(&c)
		}
	}
	return c
}

// ColorAt returns the text color at byte offset idx.
func (c LayoutConfig) ColorAt(idx int) Color {
	col := c.Color
	for _, r := range c.Ranges {
		if idx >= r.Start && idx < r.End {
			col = r.Color
		}
	}
	return col
}

// Options turns the configuration back into options, for recording and
// replaying a layout request.
func (c LayoutConfig) Options() []LayoutOption {
	opts := []LayoutOption{WithAlignment(c.Alignment), WithTextColor(c.Color), WithWeight(c.Weight), WithStyle(c.Style)}
	for _, r := range c.Ranges {
		opts = append(opts, WithRangeColor(r.Start, r.End, r.Color))
	}
	return opts
}

// ValidateLayoutRequest checks the arguments shared by every text engine.
func ValidateLayoutRequest(size, maxWidth float64) error {
	if !(size > 0) || math.IsInf(size, 0) {
		return InvalidInputf("font size %v", size)
	}
	if math.IsNaN(maxWidth) {
		return InvalidInputf("max width %v", maxWidth)
	}
	return nil
}

// IsUnbounded reports whether maxWidth disables wrapping.
func IsUnbounded(maxWidth float64) bool {
	return maxWidth <= 0 || math.IsInf(maxWidth, 1)
}

// Text is the text engine of a backend.
type Text[L TextLayout] interface {
	// FontFamily reports whether the named family is available.
	FontFamily(name string) (FontFamily, bool)
	// LoadFont registers font data and returns its family.
	LoadFont(data []byte) (FontFamily, error)
	// NewTextLayout shapes and wraps text. A maxWidth of zero, a
	// negative value or +Inf disables wrapping.
	NewTextLayout(text string, font FontFamily, size, maxWidth float64, opts ...LayoutOption) (L, error)
}

// TextLayout is an immutable, measured block of text.
type TextLayout interface {
	Text() string
	// Size is the width of the widest line without trailing whitespace
	// by the total line height.
	Size() Size
	// TrailingWhitespaceWidth is the width of the widest line including
	// trailing whitespace.
	TrailingWhitespaceWidth() float64
	// ImageBounds bounds the inked area relative to the layout origin.
	ImageBounds() Rect
	LineCount() int
	LineText(line int) (string, bool)
	LineMetric(line int) (LineMetric, bool)
	HitTestPoint(p Point) HitTestPoint
	HitTestTextPosition(idx int) HitTestPosition
}
