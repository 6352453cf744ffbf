package geom

import (
	"math"
	"slices"
	"testing"

	"github.com/gogpu/vg"
)

func rectNear(a, b vg.Rect, eps float64) bool {
	return math.Abs(a.X0-b.X0) <= eps && math.Abs(a.Y0-b.Y0) <= eps &&
		math.Abs(a.X1-b.X1) <= eps && math.Abs(a.Y1-b.Y1) <= eps
}

func TestRoundTripCurve(t *testing.T) {
	p := vg.MustParsePath("M1 2 L3 4 Q5 6 7 8 C9 10 11 12 13 14 Z")
	got := slices.Collect(FromCurve(ToCurve(p.PathElements(0))))
	want := p.Elements()
	if !slices.Equal(got, want) {
		t.Errorf("round trip = %v, want %v", got, want)
	}
}

func TestTransformed(t *testing.T) {
	r := vg.NewRect(0, 0, 1, 1)
	got := Bounds(Fill(r, vg.Translate(5, 5).Multiply(vg.Scale(2, 3)), Tolerance))
	if want := vg.NewRect(5, 5, 7, 8); !rectNear(got, want, 1e-12) {
		t.Errorf("Fill bounds = %v, want %v", got, want)
	}
}

func TestUserTolerance(t *testing.T) {
	if got := UserTolerance(vg.Uniform(4), 0.1); math.Abs(got-0.025) > 1e-12 {
		t.Errorf("UserTolerance = %v, want 0.025", got)
	}
	if got := UserTolerance(vg.Identity(), 0.1); got != 0.1 {
		t.Errorf("UserTolerance(identity) = %v, want 0.1", got)
	}
}

func TestStrokeButtLine(t *testing.T) {
	line := vg.NewLine(vg.Pt(0, 0), vg.Pt(10, 0))
	got := Bounds(Stroke(line, vg.Identity(), 2, false, vg.DefaultStrokeStyle(), Tolerance))
	if want := vg.NewRect(0, -1, 10, 1); !rectNear(got, want, 1e-6) {
		t.Errorf("stroke bounds = %v, want %v", got, want)
	}
}

func TestStrokeSquareCap(t *testing.T) {
	line := vg.NewLine(vg.Pt(0, 0), vg.Pt(10, 0))
	style := vg.DefaultStrokeStyle().WithCap(vg.CapSquare)
	got := Bounds(Stroke(line, vg.Identity(), 2, false, style, Tolerance))
	if want := vg.NewRect(-1, -1, 11, 1); !rectNear(got, want, 1e-6) {
		t.Errorf("stroke bounds = %v, want %v", got, want)
	}
}

func TestStrokeScalesWithTransform(t *testing.T) {
	line := vg.NewLine(vg.Pt(0, 0), vg.Pt(1, 0))
	got := Bounds(Stroke(line, vg.Uniform(10), 0.2, false, vg.DefaultStrokeStyle(), Tolerance))
	if want := vg.NewRect(0, -1, 10, 1); !rectNear(got, want, 1e-6) {
		t.Errorf("scaled stroke bounds = %v, want %v", got, want)
	}
}

func TestHairlineIgnoresTransform(t *testing.T) {
	line := vg.NewLine(vg.Pt(0, 0), vg.Pt(1, 0))
	got := Bounds(Stroke(line, vg.Uniform(10), 0, true, vg.DefaultStrokeStyle(), Tolerance))
	if want := vg.NewRect(0, -0.5, 10, 0.5); !rectNear(got, want, 1e-6) {
		t.Errorf("hairline bounds = %v, want %v", got, want)
	}
}

func TestStrokeDashed(t *testing.T) {
	line := vg.NewLine(vg.Pt(0, 0), vg.Pt(10, 0))
	style := vg.DefaultStrokeStyle().WithDash([]float64{2}, 0)
	subpaths := 0
	for e := range Stroke(line, vg.Identity(), 1, false, style, Tolerance) {
		if _, ok := e.(vg.MoveTo); ok {
			subpaths++
		}
	}
	// dashes at 0-2, 4-6, 8-10
	if subpaths != 3 {
		t.Errorf("dashed stroke has %d subpaths, want 3", subpaths)
	}
}

func TestPolylines(t *testing.T) {
	lines := Polylines(Fill(vg.NewCircle(vg.Pt(0, 0), 10), vg.Identity(), 0.05), 0.05)
	if len(lines) != 1 || !lines[0].Closed || len(lines[0].Points) < 16 {
		t.Fatalf("circle flattened to %d polylines", len(lines))
	}
}
