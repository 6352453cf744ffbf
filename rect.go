package vg

import (
	"image"
	"iter"
	"math"
)

// Rect is an axis-aligned rectangle given by two corners.
// Most operations expect X0 <= X1 and Y0 <= Y1; use Abs to normalize.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// NewRect creates a rectangle from corner coordinates.
func NewRect(x0, y0, x1, y1 float64) Rect {
	return Rect{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// RectFromOriginSize creates a rectangle from its top-left corner and size.
func RectFromOriginSize(origin Point, size Size) Rect {
	return Rect{X0: origin.X, Y0: origin.Y, X1: origin.X + size.Width, Y1: origin.Y + size.Height}
}

// RectFromPoints creates the normalized rectangle spanning two points.
func RectFromPoints(a, b Point) Rect {
	return Rect{X0: a.X, Y0: a.Y, X1: b.X, Y1: b.Y}.Abs()
}

// Width returns X1 - X0.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns Y1 - Y0.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// Size returns the width and height.
func (r Rect) Size() Size { return Size{Width: r.Width(), Height: r.Height()} }

// Origin returns the (X0, Y0) corner.
func (r Rect) Origin() Point { return Point{X: r.X0, Y: r.Y0} }

// Center returns the center point.
func (r Rect) Center() Point {
	return Point{X: (r.X0 + r.X1) / 2, Y: (r.Y0 + r.Y1) / 2}
}

// Abs returns the rectangle with X0 <= X1 and Y0 <= Y1.
func (r Rect) Abs() Rect {
	return Rect{
		X0: math.Min(r.X0, r.X1), Y0: math.Min(r.Y0, r.Y1),
		X1: math.Max(r.X0, r.X1), Y1: math.Max(r.Y0, r.Y1),
	}
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return !(r.X1 > r.X0 && r.Y1 > r.Y0)
}

// Union returns the smallest rectangle containing both.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		X0: math.Min(r.X0, o.X0), Y0: math.Min(r.Y0, o.Y0),
		X1: math.Max(r.X1, o.X1), Y1: math.Max(r.Y1, o.Y1),
	}
}

// UnionPoint returns the smallest rectangle containing r and p.
func (r Rect) UnionPoint(p Point) Rect {
	return Rect{
		X0: math.Min(r.X0, p.X), Y0: math.Min(r.Y0, p.Y),
		X1: math.Max(r.X1, p.X), Y1: math.Max(r.Y1, p.Y),
	}
}

// Intersect returns the overlap of two rectangles. The result is empty
// (but not necessarily zero) when they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := math.Max(r.X0, o.X0), math.Max(r.Y0, o.Y0)
	x1, y1 := math.Min(r.X1, o.X1), math.Min(r.Y1, o.Y1)
	return Rect{X0: x0, Y0: y0, X1: math.Max(x0, x1), Y1: math.Max(y0, y1)}
}

// Inset moves every edge inwards by d (outwards when negative).
func (r Rect) Inset(d float64) Rect {
	return Rect{X0: r.X0 + d, Y0: r.Y0 + d, X1: r.X1 - d, Y1: r.Y1 - d}
}

// Contains reports whether p lies inside r (half-open on the far edges).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X0 && p.X < r.X1 && p.Y >= r.Y0 && p.Y < r.Y1
}

// Expand rounds the edges outwards to integer coordinates.
func (r Rect) Expand() Rect {
	return Rect{
		X0: math.Floor(r.X0), Y0: math.Floor(r.Y0),
		X1: math.Ceil(r.X1), Y1: math.Ceil(r.Y1),
	}
}

// ToImageRect converts to an integer image rectangle, rounding outwards.
func (r Rect) ToImageRect() image.Rectangle {
	e := r.Abs().Expand()
	return image.Rect(int(e.X0), int(e.Y0), int(e.X1), int(e.Y1))
}

// BoundingBox implements Shape.
func (r Rect) BoundingBox() Rect { return r.Abs() }

// PathElements implements Shape. The outline runs clockwise in screen
// coordinates starting at (X0, Y0).
func (r Rect) PathElements(float64) iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		_ = yield(MoveTo{Point{r.X0, r.Y0}}) &&
			yield(LineTo{Point{r.X1, r.Y0}}) &&
			yield(LineTo{Point{r.X1, r.Y1}}) &&
			yield(LineTo{Point{r.X0, r.Y1}}) &&
			yield(Close{})
	}
}

// AsRect implements the rectangle fast path used by backends.
func (r Rect) AsRect() (Rect, bool) { return r, true }

// Rectangular is implemented by shapes that are exactly an axis-aligned
// rectangle. Backends use it to skip path construction.
type Rectangular interface {
	AsRect() (Rect, bool)
}
