package vg

import (
	"errors"
	"image/color"
	"testing"
)

func TestValidateImageBuffer(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		n      int
		format ImageFormat
		ok     bool
	}{
		{"gray", 2, 3, 6, FormatGrayscale, true},
		{"rgb", 2, 2, 12, FormatRGB, true},
		{"rgba", 1, 1, 4, FormatRGBASeparate, true},
		{"short", 2, 2, 15, FormatRGBAPremul, false},
		{"long", 1, 1, 5, FormatRGBASeparate, false},
		{"zero size", 0, 1, 0, FormatRGB, false},
		{"bad format", 1, 1, 1, ImageFormat(42), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImageBuffer(tt.w, tt.h, make([]byte, tt.n), tt.format)
			if tt.ok && err != nil {
				t.Errorf("ValidateImageBuffer = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidImage) {
				t.Errorf("ValidateImageBuffer = %v, want ErrInvalidImage", err)
			}
		})
	}
}

func TestToNRGBA(t *testing.T) {
	tests := []struct {
		name   string
		buf    []byte
		format ImageFormat
		want   color.NRGBA
	}{
		{"gray", []byte{0x40}, FormatGrayscale, color.NRGBA{0x40, 0x40, 0x40, 0xff}},
		{"rgb", []byte{1, 2, 3}, FormatRGB, color.NRGBA{1, 2, 3, 0xff}},
		{"separate", []byte{10, 20, 30, 40}, FormatRGBASeparate, color.NRGBA{10, 20, 30, 40}},
		{"premul", []byte{64, 32, 0, 128}, FormatRGBAPremul, color.NRGBA{128, 64, 0, 128}},
		{"premul transparent", []byte{0, 0, 0, 0}, FormatRGBAPremul, color.NRGBA{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := ToNRGBA(1, 1, tt.buf, tt.format)
			if err != nil {
				t.Fatalf("ToNRGBA error: %v", err)
			}
			if got := img.NRGBAAt(0, 0); got != tt.want {
				t.Errorf("pixel = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToRGBA(t *testing.T) {
	img, err := ToRGBA(1, 1, []byte{200, 100, 50, 128}, FormatRGBASeparate)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := img.RGBAAt(0, 0), (color.RGBA{100, 50, 25, 128}); got != want {
		t.Errorf("pixel = %v, want %v", got, want)
	}
}

func TestImageSourceRect(t *testing.T) {
	r, ok := ImageSourceRect(NewRect(-5, 2, 50, 8), Sz(10, 10))
	if !ok || r != NewRect(0, 2, 10, 8) {
		t.Errorf("ImageSourceRect = %v, %v", r, ok)
	}
	if _, ok := ImageSourceRect(NewRect(20, 20, 30, 30), Sz(10, 10)); ok {
		t.Error("disjoint source rect reported non-empty")
	}
}
