package gpu

import (
	"image"

	"github.com/gogpu/vg"
)

// Brush is a solid color or a gradient. Unit-point gradients are
// resolved against the bounding box of each shape they paint.
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

// paint encodes the brush for a shape with user-space box bbox drawn
// with the user-to-device transform m.
func (b Brush) paint(bbox vg.Rect, m vg.Affine) Paint {
	if b.gradient == nil {
		return Paint{Color: premul(b.color)}
	}
	inv, _ := m.Invert()
	return Paint{Gradient: b.gradient.Resolve(bbox), ToUser: inv}
}

// Image is an immutable texture.
type Image struct {
	tex *Texture
}

// Size returns the size in pixels.
func (i *Image) Size() vg.Size {
	r := i.tex.Pixels.Rect
	return vg.Sz(float64(r.Dx()), float64(r.Dy()))
}

// RGBA returns the premultiplied pixels. The result must not be
// modified.
func (i *Image) RGBA() *image.RGBA { return i.tex.Pixels }
