package gpu

import (
	"iter"

	"github.com/gogpu/vg"
	"github.com/gogpu/vg/internal/geom"
)

// fanFlattenTolerance is the maximum deviation, in device pixels,
// between a curve and its flattened polyline.
const fanFlattenTolerance = 0.25

// fanCoverPadding pads cover quads so antialiased edges are shaded.
const fanCoverPadding = 1.0

// FanTessellator turns device-space paths into triangle fans for the
// stencil pass.
//
// Each subpath becomes triangles (v0, vi, vi+1) anchored at its first
// point. Overlapping and inverted triangles are resolved by the
// stencil counts, so the fan is correct for concave and
// self-intersecting paths. Subpaths are closed implicitly.
//
// The tessellator is reused across draws via Reset.
type FanTessellator struct {
	width, height float64
	vertices      []float32
	bounds        vg.Rect
	hasBounds     bool
}

// NewFanTessellator creates a tessellator for a width x height viewport.
func NewFanTessellator(width, height int) *FanTessellator {
	return &FanTessellator{
		width:    float64(width),
		height:   float64(height),
		vertices: make([]float32, 0, 256),
	}
}

// Reset clears the tessellator for the next path.
func (ft *FanTessellator) Reset() {
	ft.vertices = ft.vertices[:0]
	ft.bounds = vg.Rect{}
	ft.hasBounds = false
}

// TessellatePath appends the fan of a device-space path and returns the
// number of vertices emitted so far.
func (ft *FanTessellator) TessellatePath(seq iter.Seq[vg.PathElement]) int {
	for _, pl := range geom.Polylines(seq, fanFlattenTolerance) {
		pts := pl.Points
		for _, p := range pts {
			ft.updateBounds(p)
		}
		for i := 1; i+1 < len(pts); i++ {
			ft.emitTriangle(pts[0], pts[i], pts[i+1])
		}
	}
	return len(ft.vertices) / 2
}

// Vertices returns a copy of the NDC vertex data.
func (ft *FanTessellator) Vertices() []float32 {
	return append([]float32(nil), ft.vertices...)
}

// Bounds returns the device-space bounds of the tessellated points.
func (ft *FanTessellator) Bounds() (vg.Rect, bool) {
	return ft.bounds, ft.hasBounds
}

// TriangleCount returns the number of triangles emitted.
func (ft *FanTessellator) TriangleCount() int {
	return len(ft.vertices) / 6
}

// CoverQuad returns two triangles covering the padded bounds.
func (ft *FanTessellator) CoverQuad() []float32 {
	return ft.Quad(ft.bounds.Inset(-fanCoverPadding))
}

// Quad returns two triangles covering a device-space rectangle.
func (ft *FanTessellator) Quad(r vg.Rect) []float32 {
	return ft.Parallelogram(vg.Identity(), r)
}

// Parallelogram returns two triangles covering r mapped by m.
func (ft *FanTessellator) Parallelogram(m vg.Affine, r vg.Rect) []float32 {
	p0 := m.TransformPoint(vg.Pt(r.X0, r.Y0))
	p1 := m.TransformPoint(vg.Pt(r.X1, r.Y0))
	p2 := m.TransformPoint(vg.Pt(r.X1, r.Y1))
	p3 := m.TransformPoint(vg.Pt(r.X0, r.Y1))
	out := make([]float32, 0, 12)
	for _, p := range [...]vg.Point{p0, p1, p2, p0, p2, p3} {
		x, y := ft.ndc(p)
		out = append(out, x, y)
	}
	return out
}

// ndc maps a device pixel position to normalized device coordinates.
func (ft *FanTessellator) ndc(p vg.Point) (float32, float32) {
	return float32(2*p.X/ft.width - 1), float32(1 - 2*p.Y/ft.height)
}

// emitTriangle appends a triangle, skipping degenerate ones.
func (ft *FanTessellator) emitTriangle(a, b, c vg.Point) {
	if b.Sub(a).Cross(c.Sub(a)) == 0 {
		return
	}
	for _, p := range [...]vg.Point{a, b, c} {
		x, y := ft.ndc(p)
		ft.vertices = append(ft.vertices, x, y)
	}
}

func (ft *FanTessellator) updateBounds(p vg.Point) {
	if !ft.hasBounds {
		ft.bounds = vg.Rect{X0: p.X, Y0: p.Y, X1: p.X, Y1: p.Y}
		ft.hasBounds = true
		return
	}
	ft.bounds = ft.bounds.UnionPoint(p)
}
