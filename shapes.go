package vg

import (
	"iter"
	"math"
)

// Line is a straight segment. It has no interior; filling it draws
// nothing.
type Line struct {
	P0, P1 Point
}

// NewLine creates a line segment.
func NewLine(p0, p1 Point) Line {
	return Line{P0: p0, P1: p1}
}

// PathElements implements Shape.
func (l Line) PathElements(float64) iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		_ = yield(MoveTo{l.P0}) && yield(LineTo{l.P1})
	}
}

// BoundingBox implements Shape.
func (l Line) BoundingBox() Rect { return RectFromPoints(l.P0, l.P1) }

// Length returns the length of the segment.
func (l Line) Length() float64 { return l.P0.Distance(l.P1) }

// Circle is a circle given by center and radius.
type Circle struct {
	Center Point
	Radius float64
}

// NewCircle creates a circle.
func NewCircle(center Point, radius float64) Circle {
	return Circle{Center: center, Radius: radius}
}

// PathElements implements Shape.
func (c Circle) PathElements(tolerance float64) iter.Seq[PathElement] {
	return Ellipse{Center: c.Center, Radii: Vec2{c.Radius, c.Radius}}.PathElements(tolerance)
}

// BoundingBox implements Shape.
func (c Circle) BoundingBox() Rect {
	r := math.Abs(c.Radius)
	return Rect{c.Center.X - r, c.Center.Y - r, c.Center.X + r, c.Center.Y + r}
}

// Ellipse is an ellipse with radii along its axes, rotated by Rotation
// radians about its center.
type Ellipse struct {
	Center   Point
	Radii    Vec2
	Rotation float64
}

// NewEllipse creates an axis-aligned ellipse.
func NewEllipse(center Point, rx, ry float64) Ellipse {
	return Ellipse{Center: center, Radii: Vec2{rx, ry}}
}

// PathElements implements Shape.
func (e Ellipse) PathElements(tolerance float64) iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		a := Arc{Center: e.Center, Radii: e.Radii, Sweep: 2 * math.Pi, XRotation: e.Rotation}
		if !yield(MoveTo{a.StartPoint()}) {
			return
		}
		for el := range a.AppendElements(tolerance) {
			if !yield(el) {
				return
			}
		}
		yield(Close{})
	}
}

// BoundingBox implements Shape.
func (e Ellipse) BoundingBox() Rect {
	sin, cos := math.Sincos(e.Rotation)
	rx, ry := math.Abs(e.Radii.X), math.Abs(e.Radii.Y)
	hw := math.Hypot(rx*cos, ry*sin)
	hh := math.Hypot(rx*sin, ry*cos)
	return Rect{e.Center.X - hw, e.Center.Y - hh, e.Center.X + hw, e.Center.Y + hh}
}

// RoundedRect is a rectangle with circular corners. Radii are clamped
// to half the shorter side when drawn.
type RoundedRect struct {
	Rect  Rect
	Radii RoundedRectRadii
}

// RoundedRectRadii holds per-corner radii.
type RoundedRectRadii struct {
	TopLeft, TopRight, BottomRight, BottomLeft float64
}

// UniformRadii returns equal radii for every corner.
func UniformRadii(r float64) RoundedRectRadii {
	return RoundedRectRadii{r, r, r, r}
}

// NewRoundedRect creates a rounded rectangle with equal corner radii.
func NewRoundedRect(r Rect, radius float64) RoundedRect {
	return RoundedRect{Rect: r, Radii: UniformRadii(radius)}
}

// BoundingBox implements Shape.
func (rr RoundedRect) BoundingBox() Rect { return rr.Rect.Abs() }

// AsRect reports whether the rounded rect has no rounding.
func (rr RoundedRect) AsRect() (Rect, bool) {
	return rr.Rect, rr.Radii == RoundedRectRadii{}
}

// PathElements implements Shape. The outline runs clockwise on screen.
func (rr RoundedRect) PathElements(tolerance float64) iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		r := rr.Rect.Abs()
		limit := math.Min(r.Width(), r.Height()) / 2
		clampR := func(v float64) float64 { return math.Max(0, math.Min(v, limit)) }
		tl, tr := clampR(rr.Radii.TopLeft), clampR(rr.Radii.TopRight)
		br, bl := clampR(rr.Radii.BottomRight), clampR(rr.Radii.BottomLeft)

		corner := func(cx, cy, rad, start float64) bool {
			if rad == 0 {
				return yield(LineTo{Point{cx, cy}})
			}
			a := Arc{Center: Point{cx, cy}, Radii: Vec2{rad, rad}, Start: start, Sweep: math.Pi / 2}
			if !yield(LineTo{a.StartPoint()}) {
				return false
			}
			for el := range a.AppendElements(tolerance) {
				if !yield(el) {
					return false
				}
			}
			return true
		}

		if !yield(MoveTo{Point{r.X0 + tl, r.Y0}}) {
			return
		}
		ok := corner(r.X1-tr, r.Y0+tr, tr, -math.Pi/2) &&
			corner(r.X1-br, r.Y1-br, br, 0) &&
			corner(r.X0+bl, r.Y1-bl, bl, math.Pi/2) &&
			corner(r.X0+tl, r.Y0+tl, tl, math.Pi)
		if ok {
			yield(Close{})
		}
	}
}

// Arc is an elliptical arc around Center starting at angle Start and
// spanning Sweep radians (positive is clockwise on screen). XRotation
// rotates the ellipse axes.
type Arc struct {
	Center    Point
	Radii     Vec2
	Start     float64
	Sweep     float64
	XRotation float64
}

func (a Arc) pointAt(angle float64) Point {
	sin, cos := math.Sincos(angle)
	v := Vec2{a.Radii.X * cos, a.Radii.Y * sin}
	return a.Center.Add(Rotate(a.XRotation).TransformVector(v))
}

// StartPoint returns the first point of the arc.
func (a Arc) StartPoint() Point { return a.pointAt(a.Start) }

// EndPoint returns the last point of the arc.
func (a Arc) EndPoint() Point { return a.pointAt(a.Start + a.Sweep) }

// AppendElements returns the cubic Béziers approximating the arc, without
// a leading MoveTo, so it can be spliced into a path at StartPoint.
func (a Arc) AppendElements(tolerance float64) iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		if a.Sweep == 0 || !isFinite(a.Sweep) {
			return
		}
		n := arcSegments(math.Max(math.Abs(a.Radii.X), math.Abs(a.Radii.Y)), math.Abs(a.Sweep), tolerance)
		step := a.Sweep / float64(n)
		// control arm length for a unit circle segment of angle step
		k := 4.0 / 3.0 * math.Tan(step/4)
		rot := Rotate(a.XRotation)
		deriv := func(angle float64) Vec2 {
			sin, cos := math.Sincos(angle)
			return rot.TransformVector(Vec2{-a.Radii.X * sin, a.Radii.Y * cos})
		}
		angle := a.Start
		p0 := a.pointAt(angle)
		for i := 0; i < n; i++ {
			next := angle + step
			p3 := a.pointAt(next)
			c1 := p0.Add(deriv(angle).Mul(k))
			c2 := p3.Add(deriv(next).Mul(-k))
			if !yield(CubicTo{c1, c2, p3}) {
				return
			}
			angle, p0 = next, p3
		}
	}
}

// PathElements implements Shape for an open arc.
func (a Arc) PathElements(tolerance float64) iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		if !yield(MoveTo{a.StartPoint()}) {
			return
		}
		for el := range a.AppendElements(tolerance) {
			if !yield(el) {
				return
			}
		}
	}
}

// BoundingBox implements Shape. It bounds the control polygon, which
// contains the arc.
func (a Arc) BoundingBox() Rect {
	return ElementsBoundingBox(a.PathElements(DefaultTolerance))
}

// arcSegments returns how many cubic segments approximate an arc of the
// given radius and sweep within tolerance. Each segment spans at most a
// quarter turn.
func arcSegments(radius, sweep, tolerance float64) int {
	if !(tolerance > 0) {
		tolerance = DefaultTolerance
	}
	n := max(1, int(math.Ceil(sweep/(math.Pi/2))))
	for n < 1024 {
		theta := sweep / float64(n)
		s, c := math.Sin(theta/4), math.Cos(theta/4)
		if radius*(4.0/27.0)*math.Pow(s, 6)/(c*c) <= tolerance {
			break
		}
		n++
	}
	return n
}
