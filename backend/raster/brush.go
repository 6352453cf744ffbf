package raster

import (
	"image"
	"image/color"

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

// source returns the image composited through a coverage mask. m maps
// user space to device space; bbox is the user-space box of the shape.
func (b Brush) source(bbox vg.Rect, m vg.Affine) image.Image {
	if b.gradient == nil {
		return image.NewUniform(b.color.PremulRGBA())
	}
	inv, ok := m.Invert()
	if !ok {
		return image.Transparent
	}
	return &gradientImage{g: b.gradient.Resolve(bbox), inv: inv}
}

// gradientImage evaluates a gradient at device pixel centers.
type gradientImage struct {
	g   vg.FixedGradient
	inv vg.Affine
}

func (g *gradientImage) ColorModel() color.Model { return color.RGBAModel }

func (g *gradientImage) Bounds() image.Rectangle {
	return image.Rect(-1e9, -1e9, 1e9, 1e9)
}

func (g *gradientImage) At(x, y int) color.Color {
	p := g.inv.TransformPoint(vg.Pt(float64(x)+0.5, float64(y)+0.5))
	return g.g.ColorAt(p).PremulRGBA()
}
