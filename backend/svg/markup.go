package svg

import (
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"image"
	"image/png"
	"iter"
	"strconv"
	"strings"

	"github.com/gogpu/vg"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/tdewolff/minify/v2"
)

// svgMiterLimit is the stroke-miterlimit SVG assumes when the attribute
// is absent.
const svgMiterLimit = 4

// markup formats attribute values.
type markup struct {
	precision int // significant digits; -1 keeps all
}

// num formats v with the configured precision in the shortest form.
func (m markup) num(v float64) string {
	if v == 0 {
		return "0"
	}
	b := strconv.AppendFloat(nil, v, 'f', -1, 64)
	prec := m.precision
	if prec < 0 {
		prec = len(b)
	}
	return string(minify.Number(b, prec))
}

// nums formats values separated by spaces.
func (m markup) nums(vs ...float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = m.num(v)
	}
	return strings.Join(parts, " ")
}

// pathData renders a path element sequence as SVG path data.
func (m markup) pathData(seq iter.Seq[vg.PathElement]) string {
	var sb strings.Builder
	for e := range seq {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		switch e := e.(type) {
		case vg.MoveTo:
			sb.WriteString("M" + m.nums(e.Point.X, e.Point.Y))
		case vg.LineTo:
			sb.WriteString("L" + m.nums(e.Point.X, e.Point.Y))
		case vg.QuadTo:
			sb.WriteString("Q" + m.nums(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y))
		case vg.CubicTo:
			sb.WriteString("C" + m.nums(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y))
		case vg.Close:
			sb.WriteString("Z")
		}
	}
	return sb.String()
}

// matrix renders a transform attribute value.
func (m markup) matrix(a vg.Affine) string {
	c := a.Coefficients()
	return "matrix(" + m.nums(c[:]...) + ")"
}

// hex returns the opaque part of c as #rrggbb.
func hex(c vg.Color) string {
	cc := c.Clamped()
	return colorful.Color{R: cc.R, G: cc.G, B: cc.B}.Hex()
}

// colorAttrs returns attr="#rrggbb" and, for translucent colors, the
// matching opacity attribute.
func (m markup) colorAttrs(attr, opacity string, c vg.Color) string {
	s := fmt.Sprintf(` %s="%s"`, attr, hex(c))
	if a := c.Clamped().A; a < 1 {
		s += fmt.Sprintf(` %s="%s"`, opacity, m.num(a))
	}
	return s
}

// gradientDef renders g as a gradient element with the given id.
func (m markup) gradientDef(id string, g vg.FixedGradient) string {
	var sb strings.Builder
	var stops []vg.GradientStop
	switch g := g.(type) {
	case vg.FixedLinearGradient:
		fmt.Fprintf(&sb, `<linearGradient id="%s" gradientUnits="userSpaceOnUse" x1="%s" y1="%s" x2="%s" y2="%s">`,
			id, m.num(g.Start.X), m.num(g.Start.Y), m.num(g.End.X), m.num(g.End.Y))
		stops = g.Stops
	case vg.FixedRadialGradient:
		f := g.Focus()
		fmt.Fprintf(&sb, `<radialGradient id="%s" gradientUnits="userSpaceOnUse" cx="%s" cy="%s" r="%s"`,
			id, m.num(g.Center.X), m.num(g.Center.Y), m.num(g.Radius))
		if f != g.Center {
			fmt.Fprintf(&sb, ` fx="%s" fy="%s"`, m.num(f.X), m.num(f.Y))
		}
		sb.WriteString(">")
		stops = g.Stops
	}
	for _, s := range stops {
		fmt.Fprintf(&sb, `<stop offset="%s"%s/>`, m.num(s.Offset), m.colorAttrs("stop-color", "stop-opacity", s.Color))
	}
	switch g.(type) {
	case vg.FixedLinearGradient:
		sb.WriteString("</linearGradient>")
	case vg.FixedRadialGradient:
		sb.WriteString("</radialGradient>")
	}
	return sb.String()
}

// escape returns s with XML special characters escaped.
func escape(s string) string {
	var sb strings.Builder
	_ = xml.EscapeText(&sb, []byte(s))
	return sb.String()
}

// pngDataURI encodes img as a PNG data URI.
func pngDataURI(img image.Image) (string, error) {
	var sb strings.Builder
	sb.WriteString("data:image/png;base64,")
	enc := base64.NewEncoder(base64.StdEncoding, &sb)
	if err := png.Encode(enc, img); err != nil {
		return "", fmt.Errorf("svg: encode image: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
