// Package coverage turns device-space paths into antialiased alpha masks.
//
// Rasterization is done by a rasterx.Filler driving a scanx.Scanner whose
// spans are written into an *image.Alpha. Masks are the common currency
// of the raster backend: fills, clips and glyph runs all become masks
// that are combined and then used with x/image/draw.DrawMask.
package coverage

import (
	"image"
	"iter"
	"math"

	"github.com/gogpu/vg"
	"github.com/srwiley/rasterx"
	"github.com/srwiley/scanx"
	"golang.org/x/image/math/fixed"
)

// coordLimit keeps coordinates inside the 26.6 fixed-point range.
const coordLimit = 1 << 20

// Rasterizer converts paths to coverage masks of a fixed size. It keeps
// the scanner's cell buffers between calls. It is not safe for
// concurrent use.
type Rasterizer struct {
	width, height int
	spanner       *alphaSpanner
	filler        *rasterx.Filler
}

// NewRasterizer creates a rasterizer producing width x height masks.
func NewRasterizer(width, height int) *Rasterizer {
	sp := &alphaSpanner{}
	scanner := scanx.NewScanner(sp, width, height)
	return &Rasterizer{
		width:   width,
		height:  height,
		spanner: sp,
		filler:  rasterx.NewFiller(width, height, scanner),
	}
}

// Bounds returns the mask rectangle.
func (r *Rasterizer) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.width, r.height)
}

// Fill rasterizes seq with rule into a new mask. Open subpaths are
// closed implicitly.
func (r *Rasterizer) Fill(seq iter.Seq[vg.PathElement], rule vg.FillRule) *image.Alpha {
	dst := image.NewAlpha(r.Bounds())
	r.FillInto(dst, seq, rule)
	return dst
}

// FillInto rasterizes seq into dst, replacing coverage where the path
// has any and leaving other pixels untouched. dst must have the
// rasterizer's bounds.
func (r *Rasterizer) FillInto(dst *image.Alpha, seq iter.Seq[vg.PathElement], rule vg.FillRule) {
	f := r.filler
	f.Clear()
	f.SetWinding(rule == vg.NonZero)
	open := false
	for e := range seq {
		switch e := e.(type) {
		case vg.MoveTo:
			if open {
				f.Stop(true)
			}
			f.Start(fixedP(e.Point))
			open = true
		case vg.LineTo:
			f.Line(fixedP(e.Point))
		case vg.QuadTo:
			f.QuadBezier(fixedP(e.Control), fixedP(e.Point))
		case vg.CubicTo:
			f.CubeBezier(fixedP(e.Control1), fixedP(e.Control2), fixedP(e.Point))
		case vg.Close:
			if open {
				f.Stop(true)
				open = false
			}
		}
	}
	if open {
		f.Stop(true)
	}
	r.spanner.dst = dst
	f.Draw()
	r.spanner.dst = nil
}

func fixedP(p vg.Point) fixed.Point26_6 {
	return rasterx.ToFixedP(clampCoord(p.X), clampCoord(p.Y))
}

func clampCoord(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-coordLimit, math.Min(coordLimit, v))
}

// alphaSpanner writes scanner spans into an alpha mask.
type alphaSpanner struct {
	dst *image.Alpha
}

// SetColor implements scanx.Spanner. Masks carry no color.
func (s *alphaSpanner) SetColor(interface{}) {}

// GetSpanFunc implements scanx.Spanner.
func (s *alphaSpanner) GetSpanFunc() scanx.SpanFunc {
	return func(yi, xi0, xi1 int, alpha uint32) {
		if s.dst == nil {
			return
		}
		a := uint8(alpha >> 8)
		row := s.dst.Pix[yi*s.dst.Stride:]
		for x := xi0; x < xi1; x++ {
			row[x] = a
		}
	}
}
