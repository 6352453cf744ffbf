package device

import (
	"errors"
	"image/color"
	"testing"

	"github.com/gogpu/vg"
)

func TestRender(t *testing.T) {
	img, err := Render(8, 8, 1, func(rc *RenderContext) error {
		rc.Clear(vg.White)
		rc.Fill(vg.NewRect(0, 0, 4, 8), rc.SolidBrush(vg.Red))
		return rc.Status()
	})
	if Backend == "svg" {
		if !errors.Is(err, vg.ErrNotSupported) {
			t.Fatalf("Render err = %v, want ErrNotSupported", err)
		}
		return
	}
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Fatalf("bounds = %v, want 8x8", b)
	}
	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{1, 1, color.RGBA{R: 255, A: 255}},
		{6, 6, color.RGBA{R: 255, G: 255, B: 255, A: 255}},
	}
	for _, tt := range tests {
		got := color.RGBAModel.Convert(img.At(tt.x, tt.y)).(color.RGBA)
		if got != tt.want {
			t.Errorf("At(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRenderDrawError(t *testing.T) {
	errDraw := errors.New("draw failed")
	_, err := Render(4, 4, 1, func(rc *RenderContext) error {
		rc.Clear(vg.Black)
		return errDraw
	})
	if !errors.Is(err, errDraw) {
		t.Errorf("Render err = %v, want %v", err, errDraw)
	}
}

func TestRenderInvalidSize(t *testing.T) {
	called := false
	_, err := Render(0, 4, 1, func(rc *RenderContext) error {
		called = true
		return nil
	})
	if !errors.Is(err, vg.ErrInvalidInput) {
		t.Errorf("Render err = %v, want ErrInvalidInput", err)
	}
	if called {
		t.Error("draw called for an invalid target")
	}
}
