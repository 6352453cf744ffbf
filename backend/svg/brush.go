package svg

import (
	"image"

	"github.com/gogpu/vg"
)

// Brush is a solid color or a gradient. Gradients become
// userSpaceOnUse gradient definitions, resolved against the bounding
// box of each shape they paint.
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

// Image is an immutable premultiplied pixel image, embedded as PNG
// when drawn.
type Image struct {
	rgba *image.RGBA
}

// Size returns the size in pixels.
func (i *Image) Size() vg.Size {
	return vg.Sz(float64(i.rgba.Rect.Dx()), float64(i.rgba.Rect.Dy()))
}

// RGBA returns the pixels. The result must not be modified.
func (i *Image) RGBA() *image.RGBA { return i.rgba }
