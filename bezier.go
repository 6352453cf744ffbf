package vg

import (
	"math"
	"sort"
)

// QuadBez is a quadratic Bézier segment.
type QuadBez struct {
	P0, P1, P2 Point
}

// Eval evaluates the curve at t in [0, 1].
func (q QuadBez) Eval(t float64) Point {
	mt := 1 - t
	return Point{
		X: mt*mt*q.P0.X + 2*mt*t*q.P1.X + t*t*q.P2.X,
		Y: mt*mt*q.P0.Y + 2*mt*t*q.P1.Y + t*t*q.P2.Y,
	}
}

// Subdivide splits the curve at t=0.5.
func (q QuadBez) Subdivide() (QuadBez, QuadBez) {
	mid := q.Eval(0.5)
	return QuadBez{q.P0, q.P0.Midpoint(q.P1), mid}, QuadBez{mid, q.P1.Midpoint(q.P2), q.P2}
}

// Extrema returns the parameters in (0, 1) where a coordinate derivative
// vanishes, sorted.
func (q QuadBez) Extrema() []float64 {
	var out []float64
	d0 := q.P1.Sub(q.P0)
	dd := q.P2.Sub(q.P1).Sub(d0)
	if dd.X != 0 {
		if t := -d0.X / dd.X; t > 0 && t < 1 {
			out = append(out, t)
		}
	}
	if dd.Y != 0 {
		if t := -d0.Y / dd.Y; t > 0 && t < 1 {
			out = append(out, t)
		}
	}
	sort.Float64s(out)
	return out
}

// BoundingBox returns the tight bounding box of the curve.
func (q QuadBez) BoundingBox() Rect {
	bb := RectFromPoints(q.P0, q.P2)
	for _, t := range q.Extrema() {
		bb = bb.UnionPoint(q.Eval(t))
	}
	return bb
}

// Raise returns the exact cubic form of q.
func (q QuadBez) Raise() CubicBez {
	return CubicBez{
		P0: q.P0,
		P1: q.P0.Lerp(q.P1, 2.0/3),
		P2: q.P2.Lerp(q.P1, 2.0/3),
		P3: q.P2,
	}
}

// CubicBez is a cubic Bézier segment.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

// Eval evaluates the curve at t in [0, 1].
func (c CubicBez) Eval(t float64) Point {
	mt := 1 - t
	a, b, cc, d := mt*mt*mt, 3*mt*mt*t, 3*mt*t*t, t*t*t
	return Point{
		X: a*c.P0.X + b*c.P1.X + cc*c.P2.X + d*c.P3.X,
		Y: a*c.P0.Y + b*c.P1.Y + cc*c.P2.Y + d*c.P3.Y,
	}
}

// Subdivide splits the curve at t=0.5 with de Casteljau.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	p01 := c.P0.Midpoint(c.P1)
	p12 := c.P1.Midpoint(c.P2)
	p23 := c.P2.Midpoint(c.P3)
	p012 := p01.Midpoint(p12)
	p123 := p12.Midpoint(p23)
	mid := p012.Midpoint(p123)
	return CubicBez{c.P0, p01, p012, mid}, CubicBez{mid, p123, p23, c.P3}
}

// Extrema returns the parameters in (0, 1) where a coordinate derivative
// vanishes, sorted.
func (c CubicBez) Extrema() []float64 {
	out := make([]float64, 0, 4)
	d0 := c.P1.Sub(c.P0)
	d1 := c.P2.Sub(c.P1)
	d2 := c.P3.Sub(c.P2)
	out = appendUnitRoots(out, d0.X-2*d1.X+d2.X, 2*(d1.X-d0.X), d0.X)
	out = appendUnitRoots(out, d0.Y-2*d1.Y+d2.Y, 2*(d1.Y-d0.Y), d0.Y)
	sort.Float64s(out)
	return out
}

// BoundingBox returns the tight bounding box of the curve.
func (c CubicBez) BoundingBox() Rect {
	bb := RectFromPoints(c.P0, c.P3)
	for _, t := range c.Extrema() {
		bb = bb.UnionPoint(c.Eval(t))
	}
	return bb
}

// flatness returns the squared distance bound used by the subdivision
// flattener (16 times the squared maximum deviation from the chord).
func (c CubicBez) flatness() float64 {
	ux := 3*c.P1.X - 2*c.P0.X - c.P3.X
	uy := 3*c.P1.Y - 2*c.P0.Y - c.P3.Y
	vx := 3*c.P2.X - c.P0.X - 2*c.P3.X
	vy := 3*c.P2.Y - c.P0.Y - 2*c.P3.Y
	return math.Max(ux*ux, vx*vx) + math.Max(uy*uy, vy*vy)
}

// appendUnitRoots appends the roots of a*t^2 + b*t + c in (0, 1).
func appendUnitRoots(out []float64, a, b, c float64) []float64 {
	const eps = 1e-12
	in := func(t float64) bool { return t > 0 && t < 1 }
	if math.Abs(a) < eps {
		if math.Abs(b) < eps {
			return out
		}
		if t := -c / b; in(t) {
			out = append(out, t)
		}
		return out
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return out
	}
	sq := math.Sqrt(disc)
	if t := (-b + sq) / (2 * a); in(t) {
		out = append(out, t)
	}
	if disc > 0 {
		if t := (-b - sq) / (2 * a); in(t) {
			out = append(out, t)
		}
	}
	return out
}

// maxFlattenDepth bounds recursion for degenerate (NaN or huge) input.
const maxFlattenDepth = 16

func flattenQuad(q QuadBez, tolSq float64, depth int, emit func(Point)) {
	if depth >= maxFlattenDepth || q.P1.Sub(q.P0.Midpoint(q.P2)).Hypot2() <= tolSq {
		emit(q.P2)
		return
	}
	a, b := q.Subdivide()
	flattenQuad(a, tolSq, depth+1, emit)
	flattenQuad(b, tolSq, depth+1, emit)
}

func flattenCubic(c CubicBez, tolSq float64, depth int, emit func(Point)) {
	if depth >= maxFlattenDepth || c.flatness() <= 16*tolSq {
		emit(c.P3)
		return
	}
	a, b := c.Subdivide()
	flattenCubic(a, tolSq, depth+1, emit)
	flattenCubic(b, tolSq, depth+1, emit)
}
