package web

import (
	"github.com/gogpu/vg"
)

// Brush is a solid color or a gradient. Canvas gradients are created
// when the brush is used, resolved against the painted shape.
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

// Image is a canvas image source with its size.
type Image struct {
	src           ImageSource
	width, height int
}

// Size returns the size in pixels.
func (i *Image) Size() vg.Size {
	return vg.Sz(float64(i.width), float64(i.height))
}

// Source returns the canvas drawable.
func (i *Image) Source() ImageSource { return i.src }

// canvasGradient creates the canvas form of a user-space gradient.
func canvasGradient(c Canvas2D, g vg.FixedGradient) CanvasGradient {
	var cg CanvasGradient
	var stops []vg.GradientStop
	switch g := g.(type) {
	case vg.FixedLinearGradient:
		cg = c.CreateLinearGradient(g.Start.X, g.Start.Y, g.End.X, g.End.Y)
		stops = g.Stops
	case vg.FixedRadialGradient:
		f := g.Focus()
		cg = c.CreateRadialGradient(f.X, f.Y, 0, g.Center.X, g.Center.Y, g.Radius)
		stops = g.Stops
	default:
		return nil
	}
	for _, s := range stops {
		cg.AddColorStop(s.Offset, s.Color.String())
	}
	return cg
}
