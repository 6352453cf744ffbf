package vg

import (
	"iter"
	"slices"
)

// DefaultTolerance is the flattening tolerance, in device pixels, used
// when a backend has no better estimate.
const DefaultTolerance = 0.1

// PathElement is a single element of a path. It is implemented by
// MoveTo, LineTo, QuadTo, CubicTo and Close only.
type PathElement interface {
	isPathElement()
}

// MoveTo starts a new subpath at Point.
type MoveTo struct {
	Point Point
}

// LineTo draws a straight line to Point.
type LineTo struct {
	Point Point
}

// QuadTo draws a quadratic Bézier curve.
type QuadTo struct {
	Control Point
	Point   Point
}

// CubicTo draws a cubic Bézier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

// Close closes the current subpath with a straight line to its start.
type Close struct{}

func (MoveTo) isPathElement()  {}
func (LineTo) isPathElement()  {}
func (QuadTo) isPathElement()  {}
func (CubicTo) isPathElement() {}
func (Close) isPathElement()   {}

// Shape is anything that can be drawn as a path.
type Shape interface {
	// PathElements returns the outline. Curved shapes that are
	// approximated by Béziers stay within tolerance of the exact curve.
	PathElements(tolerance float64) iter.Seq[PathElement]
	// BoundingBox returns the tight axis-aligned bounds.
	BoundingBox() Rect
}

// FillRule selects which regions of a self-intersecting path are inside.
type FillRule uint8

const (
	// NonZero fills points with a nonzero winding number.
	NonZero FillRule = iota
	// EvenOdd fills points crossed an odd number of times.
	EvenOdd
)

func (r FillRule) String() string {
	if r == EvenOdd {
		return "evenodd"
	}
	return "nonzero"
}

// Path is a sequence of path elements (a Bézier path).
// The zero value is an empty path ready to use.
type Path struct {
	elements   []PathElement
	start      Point
	current    Point
	hasCurrent bool
}

// NewPath creates an empty path.
func NewPath() *Path {
	return &Path{elements: make([]PathElement, 0, 16)}
}

// PathFromElements creates a path holding exactly the given elements.
func PathFromElements(elems ...PathElement) *Path {
	p := &Path{elements: make([]PathElement, 0, len(elems))}
	for _, e := range elems {
		p.push(e)
	}
	return p
}

// PathFromShape collects the outline of s.
func PathFromShape(s Shape, tolerance float64) *Path {
	if p, ok := s.(*Path); ok {
		return p.Clone()
	}
	p := NewPath()
	for e := range s.PathElements(tolerance) {
		p.push(e)
	}
	return p
}

func (p *Path) push(e PathElement) {
	p.elements = append(p.elements, e)
	switch e := e.(type) {
	case MoveTo:
		p.start, p.current, p.hasCurrent = e.Point, e.Point, true
	case LineTo:
		p.current, p.hasCurrent = e.Point, true
	case QuadTo:
		p.current, p.hasCurrent = e.Point, true
	case CubicTo:
		p.current, p.hasCurrent = e.Point, true
	case Close:
		p.current = p.start
	}
}

// ensureStart begins a subpath at pt when there is no current point.
// It reports whether it did.
func (p *Path) ensureStart(pt Point) bool {
	if p.hasCurrent {
		return false
	}
	p.push(MoveTo{pt})
	return true
}

// MoveTo starts a new subpath.
func (p *Path) MoveTo(pt Point) {
	p.push(MoveTo{pt})
}

// LineTo adds a line. Without a current point it starts a subpath at pt.
func (p *Path) LineTo(pt Point) {
	if p.ensureStart(pt) {
		return
	}
	p.push(LineTo{pt})
}

// QuadTo adds a quadratic Bézier. Without a current point the curve
// starts at its control point.
func (p *Path) QuadTo(ctrl, pt Point) {
	p.ensureStart(ctrl)
	p.push(QuadTo{ctrl, pt})
}

// CubicTo adds a cubic Bézier. Without a current point the curve starts
// at its first control point.
func (p *Path) CubicTo(c1, c2, pt Point) {
	p.ensureStart(c1)
	p.push(CubicTo{c1, c2, pt})
}

// Close closes the current subpath. It does nothing on an empty path.
func (p *Path) Close() {
	if !p.hasCurrent {
		return
	}
	p.push(Close{})
}

// Append adds the outline of s to the path.
func (p *Path) Append(s Shape, tolerance float64) {
	for e := range s.PathElements(tolerance) {
		p.push(e)
	}
}

// Elements returns a copy of the elements.
func (p *Path) Elements() []PathElement {
	return slices.Clone(p.elements)
}

// Len returns the number of elements.
func (p *Path) Len() int { return len(p.elements) }

// IsEmpty reports whether the path has no elements.
func (p *Path) IsEmpty() bool { return len(p.elements) == 0 }

// CurrentPoint returns the end of the last element and whether there is
// one.
func (p *Path) CurrentPoint() (Point, bool) {
	return p.current, p.hasCurrent
}

// Clone returns a deep copy.
func (p *Path) Clone() *Path {
	c := *p
	c.elements = slices.Clone(p.elements)
	return &c
}

// Transform returns a new path with every point mapped by m.
func (p *Path) Transform(m Affine) *Path {
	out := &Path{elements: make([]PathElement, 0, len(p.elements))}
	for _, e := range p.elements {
		out.push(TransformElement(e, m))
	}
	return out
}

// TransformElement maps the points of one element by m.
func TransformElement(e PathElement, m Affine) PathElement {
	switch e := e.(type) {
	case MoveTo:
		return MoveTo{m.TransformPoint(e.Point)}
	case LineTo:
		return LineTo{m.TransformPoint(e.Point)}
	case QuadTo:
		return QuadTo{m.TransformPoint(e.Control), m.TransformPoint(e.Point)}
	case CubicTo:
		return CubicTo{m.TransformPoint(e.Control1), m.TransformPoint(e.Control2), m.TransformPoint(e.Point)}
	}
	return e
}

// PathElements implements Shape.
func (p *Path) PathElements(float64) iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		for _, e := range p.elements {
			if !yield(e) {
				return
			}
		}
	}
}

// BoundingBox implements Shape using the exact curve extrema.
func (p *Path) BoundingBox() Rect {
	return ElementsBoundingBox(p.PathElements(0))
}

// ElementsBoundingBox returns the tight bounds of a path element
// sequence. An empty sequence yields the zero Rect.
func ElementsBoundingBox(seq iter.Seq[PathElement]) Rect {
	var (
		bb      Rect
		started bool
		cur     Point
	)
	add := func(r Rect) {
		if !started {
			bb, started = r, true
			return
		}
		bb = bb.Union(r)
	}
	for e := range seq {
		switch e := e.(type) {
		case MoveTo:
			add(Rect{e.Point.X, e.Point.Y, e.Point.X, e.Point.Y})
			cur = e.Point
		case LineTo:
			add(RectFromPoints(cur, e.Point))
			cur = e.Point
		case QuadTo:
			add(QuadBez{cur, e.Control, e.Point}.BoundingBox())
			cur = e.Point
		case CubicTo:
			add(CubicBez{cur, e.Control1, e.Control2, e.Point}.BoundingBox())
			cur = e.Point
		}
	}
	return bb
}

// Polyline is one flattened subpath.
type Polyline struct {
	Points []Point
	Closed bool
}

// Flatten approximates the path with polylines within tolerance.
func (p *Path) Flatten(tolerance float64) []Polyline {
	return Flatten(p.PathElements(tolerance), tolerance)
}

// Flatten approximates a path element sequence with polylines. Closed
// polylines do not repeat their first point. Subpaths with a single
// point are kept so callers can draw caps for them.
func Flatten(seq iter.Seq[PathElement], tolerance float64) []Polyline {
	if !(tolerance > 0) {
		tolerance = DefaultTolerance
	}
	tolSq := tolerance * tolerance
	var (
		out []Polyline
		cur *Polyline
		pos Point
	)
	emit := func(pt Point) {
		cur.Points = append(cur.Points, pt)
		pos = pt
	}
	begin := func(pt Point) {
		out = append(out, Polyline{Points: []Point{pt}})
		cur = &out[len(out)-1]
		pos = pt
	}
	for e := range seq {
		if _, ok := e.(MoveTo); !ok && cur == nil {
			begin(pos)
		}
		switch e := e.(type) {
		case MoveTo:
			begin(e.Point)
		case LineTo:
			emit(e.Point)
		case QuadTo:
			flattenQuad(QuadBez{pos, e.Control, e.Point}, tolSq, 0, emit)
		case CubicTo:
			flattenCubic(CubicBez{pos, e.Control1, e.Control2, e.Point}, tolSq, 0, emit)
		case Close:
			cur.Closed = true
			if n := len(cur.Points); n > 1 && cur.Points[n-1] == cur.Points[0] {
				cur.Points = cur.Points[:n-1]
			}
			start := cur.Points[0]
			cur = nil
			pos = start
		}
	}
	return out
}
