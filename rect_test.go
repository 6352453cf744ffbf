package vg

import (
	"image"
	"testing"
)

func TestRectBasics(t *testing.T) {
	r := NewRect(10, 20, 30, 60)
	if r.Width() != 20 || r.Height() != 40 {
		t.Errorf("size = %vx%v, want 20x40", r.Width(), r.Height())
	}
	if got := r.Center(); got != Pt(20, 40) {
		t.Errorf("Center = %v, want (20,40)", got)
	}
	if got := RectFromOriginSize(Pt(10, 20), Sz(20, 40)); got != r {
		t.Errorf("RectFromOriginSize = %v, want %v", got, r)
	}
	if got := RectFromPoints(Pt(30, 60), Pt(10, 20)); got != r {
		t.Errorf("RectFromPoints = %v, want %v", got, r)
	}
	if got := NewRect(5, 5, 1, 1).Abs(); got != NewRect(1, 1, 5, 5) {
		t.Errorf("Abs = %v", got)
	}
}

func TestRectSetOps(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(5, 5, 20, 20)
	if got := a.Union(b); got != NewRect(0, 0, 20, 20) {
		t.Errorf("Union = %v", got)
	}
	if got := a.Intersect(b); got != NewRect(5, 5, 10, 10) {
		t.Errorf("Intersect = %v", got)
	}
	if got := a.Intersect(NewRect(50, 50, 60, 60)); !got.IsEmpty() {
		t.Errorf("disjoint Intersect = %v, want empty", got)
	}
	if got := a.Inset(2); got != NewRect(2, 2, 8, 8) {
		t.Errorf("Inset = %v", got)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(0, 0, 10, 10)
	tests := []struct {
		p    Point
		want bool
	}{
		{Pt(0, 0), true},
		{Pt(5, 5), true},
		{Pt(10, 5), false},
		{Pt(-0.1, 5), false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestRectExpand(t *testing.T) {
	r := NewRect(0.5, 1.2, 9.1, 9.9)
	if got := r.Expand(); got != NewRect(0, 1, 10, 10) {
		t.Errorf("Expand = %v", got)
	}
	if got := r.ToImageRect(); got != image.Rect(0, 1, 10, 10) {
		t.Errorf("ToImageRect = %v", got)
	}
}

func TestRectPathElements(t *testing.T) {
	r := NewRect(1, 2, 3, 4)
	p := PathFromShape(r, 0)
	if p.Len() != 5 {
		t.Fatalf("rect path has %d elements, want 5", p.Len())
	}
	if got := p.BoundingBox(); got != r {
		t.Errorf("BoundingBox = %v, want %v", got, r)
	}
}
