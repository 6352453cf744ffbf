package vg

import (
	"errors"
	"math"
	"testing"
)

func TestLayoutConfigDefaults(t *testing.T) {
	c := NewLayoutConfig()
	if c.Alignment != AlignStart || c.Color != Black || c.Weight != Normal || c.Style != Regular {
		t.Errorf("NewLayoutConfig() = %+v", c)
	}
}

func TestLayoutConfigColorAt(t *testing.T) {
	c := NewLayoutConfig(
		WithTextColor(Blue),
		WithRangeColor(2, 5, Red),
		WithRangeColor(4, 6, Green),
	)
	tests := []struct {
		idx  int
		want Color
	}{
		{0, Blue},
		{2, Red},
		{4, Green},
		{5, Green},
		{6, Blue},
	}
	for _, tt := range tests {
		if got := c.ColorAt(tt.idx); got != tt.want {
			t.Errorf("ColorAt(%d) = %v, want %v", tt.idx, got, tt.want)
		}
	}
	again := NewLayoutConfig(c.Options()...)
	if again.ColorAt(4) != Green || again.ColorAt(0) != Blue || len(again.Ranges) != 2 {
		t.Errorf("Options() did not round trip: %+v", again)
	}
}

func TestFontFamily(t *testing.T) {
	if !SansSerif.IsGeneric() || SansSerif.Name() != "sans-serif" {
		t.Errorf("SansSerif = %v", SansSerif)
	}
	f := NewFontFamily("Go")
	if f.IsGeneric() || f.Name() != "Go" {
		t.Errorf("NewFontFamily = %v", f)
	}
	if f != NewFontFamily("Go") {
		t.Error("families with the same name differ")
	}
}

func TestValidateLayoutRequest(t *testing.T) {
	tests := []struct {
		size, max float64
		ok        bool
	}{
		{12, 0, true},
		{12, math.Inf(1), true},
		{12, -5, true},
		{0, 100, false},
		{-1, 100, false},
		{math.NaN(), 100, false},
		{12, math.NaN(), false},
	}
	for _, tt := range tests {
		err := ValidateLayoutRequest(tt.size, tt.max)
		if tt.ok != (err == nil) {
			t.Errorf("ValidateLayoutRequest(%v, %v) = %v", tt.size, tt.max, err)
		}
		if err != nil && !errors.Is(err, ErrInvalidInput) {
			t.Errorf("error %v does not wrap ErrInvalidInput", err)
		}
	}
	if !IsUnbounded(0) || !IsUnbounded(math.Inf(1)) || IsUnbounded(50) {
		t.Error("IsUnbounded misclassifies widths")
	}
}
