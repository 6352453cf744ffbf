package vg

import (
	"math"
	"slices"
	"testing"
)

func TestPathRoundTrip(t *testing.T) {
	elems := []PathElement{
		MoveTo{Pt(0, 0)},
		LineTo{Pt(10, 0)},
		QuadTo{Pt(15, 5), Pt(10, 10)},
		CubicTo{Pt(8, 12), Pt(2, 12), Pt(0, 10)},
		Close{},
		MoveTo{Pt(20, 20)},
		LineTo{Pt(30, 25)},
	}
	p := PathFromElements(elems...)
	if got := p.Elements(); !slices.Equal(got, elems) {
		t.Errorf("Elements() = %v, want %v", got, elems)
	}

	built := NewPath()
	built.MoveTo(Pt(0, 0))
	built.LineTo(Pt(10, 0))
	built.QuadTo(Pt(15, 5), Pt(10, 10))
	built.CubicTo(Pt(8, 12), Pt(2, 12), Pt(0, 10))
	built.Close()
	built.MoveTo(Pt(20, 20))
	built.LineTo(Pt(30, 25))
	if got := built.Elements(); !slices.Equal(got, elems) {
		t.Errorf("builder Elements() = %v, want %v", got, elems)
	}
}

func TestPathElementsIsCopy(t *testing.T) {
	p := PathFromElements(MoveTo{Pt(1, 1)}, LineTo{Pt(2, 2)})
	e := p.Elements()
	e[0] = MoveTo{Pt(9, 9)}
	if got := p.Elements()[0]; got != (MoveTo{Pt(1, 1)}) {
		t.Errorf("mutating Elements() changed path: %v", got)
	}
}

func TestPathImplicitMoveTo(t *testing.T) {
	var p Path
	p.LineTo(Pt(5, 5))
	p.LineTo(Pt(6, 6))
	want := []PathElement{MoveTo{Pt(5, 5)}, LineTo{Pt(6, 6)}}
	if got := p.Elements(); !slices.Equal(got, want) {
		t.Errorf("Elements() = %v, want %v", got, want)
	}
	var empty Path
	empty.Close()
	if !empty.IsEmpty() {
		t.Error("Close on empty path added an element")
	}
}

func TestPathCurrentPoint(t *testing.T) {
	p := NewPath()
	if _, ok := p.CurrentPoint(); ok {
		t.Error("empty path has a current point")
	}
	p.MoveTo(Pt(1, 2))
	p.LineTo(Pt(3, 4))
	if pt, _ := p.CurrentPoint(); pt != Pt(3, 4) {
		t.Errorf("CurrentPoint = %v, want (3,4)", pt)
	}
	p.Close()
	if pt, _ := p.CurrentPoint(); pt != Pt(1, 2) {
		t.Errorf("CurrentPoint after Close = %v, want (1,2)", pt)
	}
}

func TestPathBoundingBox(t *testing.T) {
	// The curve bulges to y = -5 at t = 0.5, beyond the endpoints.
	p := PathFromElements(MoveTo{Pt(0, 0)}, QuadTo{Pt(5, -10), Pt(10, 0)})
	got := p.BoundingBox()
	want := NewRect(0, -5, 10, 0)
	if math.Abs(got.Y0-want.Y0) > 1e-9 || got.X0 != want.X0 || got.X1 != want.X1 || got.Y1 != want.Y1 {
		t.Errorf("BoundingBox = %v, want %v", got, want)
	}

	c := PathFromElements(MoveTo{Pt(0, 0)}, CubicTo{Pt(0, 10), Pt(10, 10), Pt(10, 0)})
	if got := c.BoundingBox().Y1; math.Abs(got-7.5) > 1e-9 {
		t.Errorf("cubic bbox Y1 = %v, want 7.5", got)
	}
}

func TestPathTransform(t *testing.T) {
	p := PathFromElements(MoveTo{Pt(1, 0)}, LineTo{Pt(2, 0)}, Close{})
	got := p.Transform(Translate(5, 5).Multiply(Scale(2, 2))).Elements()
	want := []PathElement{MoveTo{Pt(7, 5)}, LineTo{Pt(9, 5)}, Close{}}
	if !slices.Equal(got, want) {
		t.Errorf("Transform = %v, want %v", got, want)
	}
}

func TestFlatten(t *testing.T) {
	p := PathFromElements(
		MoveTo{Pt(0, 0)}, LineTo{Pt(10, 0)}, LineTo{Pt(10, 10)}, LineTo{Pt(0, 0)}, Close{},
		MoveTo{Pt(20, 0)}, CubicTo{Pt(20, 10), Pt(30, 10), Pt(30, 0)},
	)
	lines := p.Flatten(0.1)
	if len(lines) != 2 {
		t.Fatalf("Flatten gave %d polylines, want 2", len(lines))
	}
	if !lines[0].Closed || len(lines[0].Points) != 3 {
		t.Errorf("first polyline = %+v, want closed triangle without repeated start", lines[0])
	}
	second := lines[1]
	if second.Closed {
		t.Error("open subpath flattened as closed")
	}
	if last := second.Points[len(second.Points)-1]; last != Pt(30, 0) {
		t.Errorf("curve ends at %v, want (30,0)", last)
	}
	if len(second.Points) < 4 {
		t.Errorf("curve flattened to %d points, want a subdivided curve", len(second.Points))
	}
	// every flattened point stays within the curve hull
	for _, pt := range second.Points {
		if pt.Y < -1e-9 || pt.Y > 7.5+1e-9 {
			t.Errorf("flattened point %v outside curve bounds", pt)
		}
	}
}

func TestFillRuleString(t *testing.T) {
	if NonZero.String() != "nonzero" || EvenOdd.String() != "evenodd" {
		t.Errorf("FillRule strings = %q, %q", NonZero, EvenOdd)
	}
}
