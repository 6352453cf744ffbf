package vg

import "math"

// Affine is a 2D affine transformation in row-major order:
//
//	| A  B  C |
//	| D  E  F |
//
// which maps
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
//
// The zero value is not the identity; use [Identity].
type Affine struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation.
func Identity() Affine {
	return Affine{A: 1, E: 1}
}

// Translate returns a translation by (x, y).
func Translate(x, y float64) Affine {
	return Affine{A: 1, C: x, E: 1, F: y}
}

// Scale returns a non-uniform scale about the origin.
func Scale(sx, sy float64) Affine {
	return Affine{A: sx, E: sy}
}

// Uniform returns a uniform scale about the origin.
func Uniform(s float64) Affine {
	return Scale(s, s)
}

// Rotate returns a rotation by angle radians. Positive angles turn the
// x axis towards the y axis (clockwise on screen, where y points down).
func Rotate(angle float64) Affine {
	sin, cos := math.Sincos(angle)
	return Affine{A: cos, B: -sin, D: sin, E: cos}
}

// Shear returns a shear with x' = x + sx*y and y' = sy*x + y.
func Shear(sx, sy float64) Affine {
	return Affine{A: 1, B: sx, D: sy, E: 1}
}

// NewAffine builds a transform from coefficients in column order
// (xx, yx, xy, yy, x0, y0), the layout used by canvas and SVG matrix().
func NewAffine(c [6]float64) Affine {
	return Affine{A: c[0], B: c[2], C: c[4], D: c[1], E: c[3], F: c[5]}
}

// Coefficients returns the transform in the order accepted by [NewAffine].
func (m Affine) Coefficients() [6]float64 {
	return [6]float64{m.A, m.D, m.B, m.E, m.C, m.F}
}

// Multiply returns m * o: the result applies o first, then m.
func (m Affine) Multiply(o Affine) Affine {
	return Affine{
		A: m.A*o.A + m.B*o.D,
		B: m.A*o.B + m.B*o.E,
		C: m.A*o.C + m.B*o.F + m.C,
		D: m.D*o.A + m.E*o.D,
		E: m.D*o.B + m.E*o.E,
		F: m.D*o.C + m.E*o.F + m.F,
	}
}

// Then returns o * m: the result applies m first, then o.
func (m Affine) Then(o Affine) Affine {
	return o.Multiply(m)
}

// TransformPoint applies the transformation to a point.
func (m Affine) TransformPoint(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// TransformVector applies the linear part of the transformation.
func (m Affine) TransformVector(v Vec2) Vec2 {
	return Vec2{
		X: m.A*v.X + m.B*v.Y,
		Y: m.D*v.X + m.E*v.Y,
	}
}

// TransformRectBBox returns the bounding box of the transformed corners.
func (m Affine) TransformRectBBox(r Rect) Rect {
	p0 := m.TransformPoint(Point{r.X0, r.Y0})
	out := Rect{X0: p0.X, Y0: p0.Y, X1: p0.X, Y1: p0.Y}
	out = out.UnionPoint(m.TransformPoint(Point{r.X1, r.Y0}))
	out = out.UnionPoint(m.TransformPoint(Point{r.X1, r.Y1}))
	return out.UnionPoint(m.TransformPoint(Point{r.X0, r.Y1}))
}

// Determinant returns the determinant of the linear part.
func (m Affine) Determinant() float64 {
	return m.A*m.E - m.B*m.D
}

// Invert returns the inverse transformation. The second result is false
// when the transform is singular or not finite.
func (m Affine) Invert() (Affine, bool) {
	if !m.IsInvertible() {
		return Identity(), false
	}
	inv := 1.0 / m.Determinant()
	return Affine{
		A: m.E * inv,
		B: -m.B * inv,
		C: (m.B*m.F - m.C*m.E) * inv,
		D: -m.D * inv,
		E: m.A * inv,
		F: (m.C*m.D - m.A*m.F) * inv,
	}, true
}

// IsIdentity reports whether m is exactly the identity.
func (m Affine) IsIdentity() bool {
	return m == Identity()
}

// IsTranslation reports whether m only translates.
func (m Affine) IsTranslation() bool {
	return m.A == 1 && m.B == 0 && m.D == 0 && m.E == 1
}

// IsFinite reports whether every coefficient is finite.
func (m Affine) IsFinite() bool {
	return isFinite(m.A) && isFinite(m.B) && isFinite(m.C) &&
		isFinite(m.D) && isFinite(m.E) && isFinite(m.F)
}

// IsInvertible reports whether m is finite with a non-negligible
// determinant.
func (m Affine) IsInvertible() bool {
	if !m.IsFinite() {
		return false
	}
	det := m.Determinant()
	return isFinite(det) && math.Abs(det) > 1e-12
}

// ScaleFactor returns sqrt(|det|), the average linear scale of m.
// Backends use it to convert device tolerances into user space.
func (m Affine) ScaleFactor() float64 {
	return math.Sqrt(math.Abs(m.Determinant()))
}

// MaxScaleFactor returns the largest singular value of the linear part,
// the most a unit vector can be stretched by m.
func (m Affine) MaxScaleFactor() float64 {
	a, b, d, e := m.A, m.B, m.D, m.E
	s := a*a + b*b + d*d + e*e
	det := a*e - b*d
	disc := s*s - 4*det*det
	if disc < 0 {
		disc = 0
	}
	return math.Sqrt((s + math.Sqrt(disc)) / 2)
}
