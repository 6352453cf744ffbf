package vg

import (
	"math"
	"testing"
)

// maxRadialError returns the largest deviation of the flattened outline
// from a circle around c with radius r.
func maxRadialError(s Shape, c Point, r float64) float64 {
	worst := 0.0
	for _, pl := range Flatten(s.PathElements(0.01), 0.01) {
		for _, p := range pl.Points {
			worst = math.Max(worst, math.Abs(p.Distance(c)-r))
		}
	}
	return worst
}

func TestCircleApproximation(t *testing.T) {
	for _, r := range []float64{1, 10, 500} {
		c := NewCircle(Pt(100, 100), r)
		if err := maxRadialError(c, c.Center, r); err > 0.02 {
			t.Errorf("circle r=%v deviates by %v", r, err)
		}
	}
}

func TestCircleBoundingBox(t *testing.T) {
	c := NewCircle(Pt(5, 5), 2)
	if got, want := c.BoundingBox(), NewRect(3, 3, 7, 7); got != want {
		t.Errorf("BoundingBox = %v, want %v", got, want)
	}
	// the outline agrees with the analytic box
	got := ElementsBoundingBox(c.PathElements(0.01))
	if math.Abs(got.X0-3) > 1e-3 || math.Abs(got.Y1-7) > 1e-3 {
		t.Errorf("outline bbox = %v, want ~(3,3)-(7,7)", got)
	}
}

func TestEllipseRotatedBoundingBox(t *testing.T) {
	e := Ellipse{Center: Pt(0, 0), Radii: Vec2{10, 2}, Rotation: math.Pi / 2}
	bb := e.BoundingBox()
	if math.Abs(bb.Width()-4) > 1e-9 || math.Abs(bb.Height()-20) > 1e-9 {
		t.Errorf("rotated ellipse bbox = %v, want 4x20", bb)
	}
}

func TestRoundedRect(t *testing.T) {
	rr := NewRoundedRect(NewRect(0, 0, 100, 50), 10)
	bb := ElementsBoundingBox(rr.PathElements(0.1))
	if math.Abs(bb.X0) > 1e-9 || math.Abs(bb.Y1-50) > 1e-9 {
		t.Errorf("outline bbox = %v, want (0,0)-(100,50)", bb)
	}
	lines := Flatten(rr.PathElements(0.1), 0.1)
	if len(lines) != 1 || !lines[0].Closed {
		t.Fatalf("rounded rect flattened to %+v, want one closed polyline", lines)
	}
	// the corner is cut: (0,0) lies outside the outline
	for _, p := range lines[0].Points {
		if p.Distance(Pt(0, 0)) < 10*(math.Sqrt2-1)-0.1 {
			t.Errorf("point %v too close to the cut corner", p)
		}
	}
	if _, ok := rr.AsRect(); ok {
		t.Error("rounded rect with radius reported as plain rect")
	}
	if _, ok := NewRoundedRect(NewRect(0, 0, 1, 1), 0).AsRect(); !ok {
		t.Error("zero-radius rounded rect not reported as rect")
	}
}

func TestRoundedRectClampsRadius(t *testing.T) {
	rr := NewRoundedRect(NewRect(0, 0, 20, 20), 100)
	if err := maxRadialError(rr, Pt(10, 10), 10); err > 0.02 {
		t.Errorf("fully rounded square is not a circle: deviation %v", err)
	}
}

func TestArcEndpoints(t *testing.T) {
	a := Arc{Center: Pt(0, 0), Radii: Vec2{5, 5}, Start: 0, Sweep: math.Pi}
	if !pointNear(a.StartPoint(), Pt(5, 0), 1e-12) {
		t.Errorf("StartPoint = %v", a.StartPoint())
	}
	if !pointNear(a.EndPoint(), Pt(-5, 0), 1e-12) {
		t.Errorf("EndPoint = %v", a.EndPoint())
	}
	n := 0
	for range a.AppendElements(0.1) {
		n++
	}
	if n < 2 {
		t.Errorf("half circle used %d cubics, want at least 2", n)
	}
}

func TestLine(t *testing.T) {
	l := NewLine(Pt(0, 0), Pt(3, 4))
	if l.Length() != 5 {
		t.Errorf("Length = %v, want 5", l.Length())
	}
	if got := PathFromShape(l, 0.1).Len(); got != 2 {
		t.Errorf("line path has %d elements, want 2", got)
	}
}
