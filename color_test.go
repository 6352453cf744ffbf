package vg

import (
	"errors"
	"image/color"
	"math"
	"testing"
)

func colorNear(a, b Color, eps float64) bool {
	return math.Abs(a.R-b.R) <= eps && math.Abs(a.G-b.G) <= eps &&
		math.Abs(a.B-b.B) <= eps && math.Abs(a.A-b.A) <= eps
}

func TestHex(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#ff0000", Red},
		{"00ff00", Green},
		{"#00f", Blue},
		{"#fff8", RGBA8(255, 255, 255, 0x88)},
		{"#11223344", RGBA8(0x11, 0x22, 0x33, 0x44)},
		{"#FFFFFF", White},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Hex(tt.in)
			if err != nil {
				t.Fatalf("Hex(%q) error: %v", tt.in, err)
			}
			if !colorNear(got, tt.want, 1e-9) {
				t.Errorf("Hex(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestHexInvalid(t *testing.T) {
	for _, in := range []string{"", "#", "#12", "#12345", "#gg0000", "#1234567", "#zzzz"} {
		if _, err := Hex(in); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Hex(%q) error = %v, want ErrInvalidInput", in, err)
		}
	}
}

func TestRGBAClampsAlpha(t *testing.T) {
	if got := RGBA(0.5, 0.5, 0.5, 2).A; got != 1 {
		t.Errorf("RGBA alpha 2 -> %v, want 1", got)
	}
	if got := RGBA(0.5, 0.5, 0.5, -1).A; got != 0 {
		t.Errorf("RGBA alpha -1 -> %v, want 0", got)
	}
	if got := RGBA(0.5, 0.5, 0.5, math.NaN()).A; got != 0 {
		t.Errorf("RGBA alpha NaN -> %v, want 0", got)
	}
	// color channels stay unclamped
	if got := RGBA(1.5, 0, 0, 1).R; got != 1.5 {
		t.Errorf("RGBA red 1.5 -> %v, want 1.5", got)
	}
}

func TestColorConversions(t *testing.T) {
	c := RGBA8(200, 100, 50, 128)
	if got, want := c.NRGBA(), (color.NRGBA{200, 100, 50, 128}); got != want {
		t.Errorf("NRGBA() = %v, want %v", got, want)
	}
	p := c.PremulRGBA()
	if p.A != 128 || p.R != 100 {
		t.Errorf("PremulRGBA() = %v, want R=100 A=128", p)
	}
	back := FromColor(c.NRGBA())
	if !colorNear(back, c, 1.0/255) {
		t.Errorf("FromColor(NRGBA()) = %v, want %v", back, c)
	}
	if got := FromColor(color.Transparent); got != Transparent {
		t.Errorf("FromColor(transparent) = %v, want %v", got, Transparent)
	}
}

func TestColorLerp(t *testing.T) {
	mid := White.Lerp(Black, 0.5)
	if !colorNear(mid, RGB(0.5, 0.5, 0.5), 1e-9) {
		t.Errorf("White.Lerp(Black, 0.5) = %v, want 50%% grey", mid)
	}
	if got := Red.Lerp(Blue, 0); got != Red {
		t.Errorf("Lerp t=0 = %v, want %v", got, Red)
	}
	a := Red.WithAlpha(0).Lerp(Red, 0.25)
	if math.Abs(a.A-0.25) > 1e-12 {
		t.Errorf("alpha lerp = %v, want 0.25", a.A)
	}
}

func TestColorString(t *testing.T) {
	tests := []struct {
		c    Color
		want string
	}{
		{Red, "#ff0000"},
		{RGB8(1, 2, 3), "#010203"},
		{Black.WithAlpha(0.5), "rgba(0,0,0,0.502)"},
		{Transparent, "rgba(0,0,0,0)"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("%#v.String() = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestColorEquality(t *testing.T) {
	if RGB(1, 0, 0) != Red {
		t.Error("RGB(1,0,0) != Red")
	}
	if RGB(1, 0, 0) == RGB(1, 0, 1e-12) {
		t.Error("colors differing in one component compare equal")
	}
}
