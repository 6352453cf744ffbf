package compose

import (
	"image"

	"github.com/gogpu/vg"
)

// Brush keeps the vocabulary description of a paint so a replay target
// can rebuild it.
type Brush struct {
	color    vg.Color
	gradient vg.Gradient // normalized; nil for solid brushes
}

// Color returns the color of a solid brush.
func (b Brush) Color() (vg.Color, bool) {
	return b.color, b.gradient == nil
}

// Gradient returns the gradient of a gradient brush.
func (b Brush) Gradient() (vg.Gradient, bool) {
	return b.gradient, b.gradient != nil
}

// flatColor returns the brush as one color. Gradients give their
// midpoint color and report false.
func (b Brush) flatColor() (vg.Color, bool) {
	if b.gradient == nil {
		return b.color, true
	}
	return vg.MidpointColor(b.gradient), false
}

// Image keeps premultiplied pixels.
type Image struct {
	rgba *image.RGBA
}

// Size returns the size in pixels.
func (i *Image) Size() vg.Size {
	return vg.Sz(float64(i.rgba.Rect.Dx()), float64(i.rgba.Rect.Dy()))
}

// RGBA returns the pixels. The result must not be modified.
func (i *Image) RGBA() *image.RGBA { return i.rgba }
