package vg

import (
	"errors"
	"math"
	"slices"
	"strings"
	"testing"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		name string
		d    string
		want []PathElement
	}{
		{
			name: "absolute",
			d:    "M10 20 L30 40 Q50 60 70 80 C1 2 3 4 5 6 Z",
			want: []PathElement{
				MoveTo{Pt(10, 20)}, LineTo{Pt(30, 40)}, QuadTo{Pt(50, 60), Pt(70, 80)},
				CubicTo{Pt(1, 2), Pt(3, 4), Pt(5, 6)}, Close{},
			},
		},
		{
			name: "relative and shorthand",
			d:    "m10,10 h5 v5 H0 V0 l-1-1z",
			want: []PathElement{
				MoveTo{Pt(10, 10)}, LineTo{Pt(15, 10)}, LineTo{Pt(15, 15)},
				LineTo{Pt(0, 15)}, LineTo{Pt(0, 0)}, LineTo{Pt(-1, -1)}, Close{},
			},
		},
		{
			name: "implicit lineto after moveto",
			d:    "M0 0 10 0 10 10",
			want: []PathElement{MoveTo{Pt(0, 0)}, LineTo{Pt(10, 0)}, LineTo{Pt(10, 10)}},
		},
		{
			name: "smooth cubic reflects previous control",
			d:    "M0 0 C0 10 10 10 10 0 S20 -10 20 0",
			want: []PathElement{
				MoveTo{Pt(0, 0)}, CubicTo{Pt(0, 10), Pt(10, 10), Pt(10, 0)},
				CubicTo{Pt(10, -10), Pt(20, -10), Pt(20, 0)},
			},
		},
		{
			name: "smooth quad",
			d:    "M0 0 Q5 5 10 0 T20 0",
			want: []PathElement{
				MoveTo{Pt(0, 0)}, QuadTo{Pt(5, 5), Pt(10, 0)}, QuadTo{Pt(15, -5), Pt(20, 0)},
			},
		},
		{
			name: "compact numbers",
			d:    "M.5.5L1e1-2.5",
			want: []PathElement{MoveTo{Pt(0.5, 0.5)}, LineTo{Pt(10, -2.5)}},
		},
		{
			name: "empty",
			d:    "  ",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePath(tt.d)
			if err != nil {
				t.Fatalf("ParsePath(%q) error: %v", tt.d, err)
			}
			if got := p.Elements(); !slices.Equal(got, tt.want) {
				t.Errorf("ParsePath(%q) = %v, want %v", tt.d, got, tt.want)
			}
		})
	}
}

func TestParsePathArc(t *testing.T) {
	// Half circle of radius 10 from (0,0) to (20,0). With the sweep flag set
	// the arc runs clockwise on screen (y down), through (10,-10).
	for _, d := range []string{"M0 0 A10 10 0 0 1 20 0", "M0 0 a10,10 0 0,1 20,0", "M0 0a10 10 0 0120 0"} {
		p, err := ParsePath(d)
		if err != nil {
			t.Fatalf("ParsePath(%q) error: %v", d, err)
		}
		end, _ := p.CurrentPoint()
		if end != Pt(20, 0) {
			t.Errorf("%q ends at %v, want (20,0)", d, end)
		}
		bb := p.BoundingBox()
		if math.Abs(bb.Y0+10) > 1e-2 || bb.Y1 > 1e-9 {
			t.Errorf("%q bbox = %v, want arc above the chord reaching y=-10", d, bb)
		}
	}
}

func TestParsePathErrors(t *testing.T) {
	tests := []string{
		"L10 10",              // no initial moveto
		"M10",                 // odd coordinates
		"M0 0 Z 5",            // closepath takes no arguments
		"M0 0 X1 1",           // unknown command
		"M0 0 A1 1 0 2 0 5 5", // bad flag
		"M0 0 C1 2 3 4",       // short cubic
	}
	for _, d := range tests {
		_, err := ParsePath(d)
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("ParsePath(%q) error = %v, want ErrInvalidInput", d, err)
			continue
		}
		if !strings.Contains(err.Error(), ":") {
			t.Errorf("ParsePath(%q) error %q has no position", d, err)
		}
	}
}

func TestPathStringRoundTrip(t *testing.T) {
	p := PathFromElements(
		MoveTo{Pt(0.1, -2)}, LineTo{Pt(1e-7, 3)}, QuadTo{Pt(1, 2), Pt(3, 4)},
		CubicTo{Pt(1.25, 2), Pt(3, 4.5), Pt(-5, 6)}, Close{},
	)
	s := p.String()
	back, err := ParsePath(s)
	if err != nil {
		t.Fatalf("ParsePath(%q) error: %v", s, err)
	}
	if !slices.Equal(back.Elements(), p.Elements()) {
		t.Errorf("round trip of %q = %v, want %v", s, back.Elements(), p.Elements())
	}
}
