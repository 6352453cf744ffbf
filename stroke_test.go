package vg

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func TestDefaultStrokeStyle(t *testing.T) {
	s := DefaultStrokeStyle()
	if s.LineJoin != JoinMiter || s.LineCap != CapButt || s.MiterLimit != 10 || s.IsDashed() {
		t.Errorf("DefaultStrokeStyle() = %+v", s)
	}
	if got := ResolveStrokeStyle(nil); !slices.Equal(got.Dash, s.Dash) || got.MiterLimit != s.MiterLimit {
		t.Errorf("ResolveStrokeStyle(nil) = %+v, want default", got)
	}
}

func TestStrokeStyleBuilders(t *testing.T) {
	base := DefaultStrokeStyle()
	pattern := []float64{4, 2}
	s := base.WithJoin(JoinRound).WithCap(CapSquare).WithMiterLimit(3).WithDash(pattern, 1)
	if s.LineJoin != JoinRound || s.LineCap != CapSquare || s.MiterLimit != 3 || s.DashOffset != 1 {
		t.Errorf("built style = %+v", s)
	}
	pattern[0] = 99
	if s.Dash[0] != 4 {
		t.Error("WithDash kept a reference to the caller's slice")
	}
	if base.LineJoin != JoinMiter || base.IsDashed() {
		t.Error("builders modified the receiver")
	}
}

func TestDashPatternOddLength(t *testing.T) {
	s := DefaultStrokeStyle().WithDash([]float64{3}, 0)
	if got, want := s.DashPattern(), []float64{3, 3}; !slices.Equal(got, want) {
		t.Errorf("DashPattern() = %v, want %v", got, want)
	}
}

func TestStrokeStyleValidate(t *testing.T) {
	tests := []struct {
		name  string
		style StrokeStyle
		ok    bool
	}{
		{"default", DefaultStrokeStyle(), true},
		{"dashed", DefaultStrokeStyle().WithDash([]float64{1, 0}, 0), true},
		{"zero miter", DefaultStrokeStyle().WithMiterLimit(0), false},
		{"nan miter", DefaultStrokeStyle().WithMiterLimit(math.NaN()), false},
		{"negative dash", DefaultStrokeStyle().WithDash([]float64{1, -1}, 0), false},
		{"all zero dash", DefaultStrokeStyle().WithDash([]float64{0, 0}, 0), false},
		{"inf offset", DefaultStrokeStyle().WithDash([]float64{1}, math.Inf(1)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.style.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Validate() = %v, want ErrInvalidInput", err)
			}
		})
	}
}
