package gpu

import (
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/vg"
)

// DrawKind selects how a draw is executed.
type DrawKind uint8

const (
	// DrawFill is a stencil pass over Fan followed by a cover pass over
	// Quad.
	DrawFill DrawKind = iota
	// DrawClear replaces the pixels under Quad, ignoring the clip.
	DrawClear
	// DrawTexture samples Texture over Quad.
	DrawTexture
	// DrawBlurRect shades Quad with the analytic coverage of a blurred
	// rectangle.
	DrawBlurRect
)

var drawKindNames = [...]string{
	DrawFill:     "Fill",
	DrawClear:    "Clear",
	DrawTexture:  "Texture",
	DrawBlurRect: "BlurRect",
}

func (k DrawKind) String() string {
	if int(k) < len(drawKindNames) {
		return drawKindNames[k]
	}
	return "Unknown"
}

// Paint is the fragment color of a draw. Color is premultiplied. When
// Gradient is set it replaces Color and is evaluated at the user-space
// point ToUser maps the pixel center to.
type Paint struct {
	Color    [4]float32
	Gradient vg.FixedGradient
	ToUser   vg.Affine
}

// Texture is an immutable premultiplied RGBA texture.
type Texture struct {
	Pixels *image.RGBA
}

// Sampling describes how a textured quad reads its texture.
type Sampling struct {
	Filter gputypes.FilterMode
	// ToTexel maps device pixels to texel coordinates.
	ToTexel vg.Affine
	// Src bounds the texels that may be read.
	Src image.Rectangle
}

// BlurRect describes the analytic shading of DrawBlurRect.
type BlurRect struct {
	Rect   vg.Rect   // user space
	Sigma  float64   // user space
	ToUser vg.Affine // device pixels to user space
}

// Draw is one encoded draw. Vertex data is float32 NDC x, y pairs,
// three vertices per triangle.
type Draw struct {
	Kind    DrawKind
	Stencil *Pipeline
	Pass    *Pipeline
	Fan     []float32
	Quad    []float32
	Paint   Paint
	Texture *Texture
	Sample  Sampling
	Blur    BlurRect
	// Clip indexes Frame.Clips; -1 means unclipped.
	Clip int
}

// ClipMask is a clip attachment: the parent mask intersected with the
// coverage of Fan.
type ClipMask struct {
	Parent int // -1 for the full surface
	Fan    []float32
}

// Frame is everything a context drew between its first call and Finish.
type Frame struct {
	Width, Height int
	Clips         []ClipMask
	Draws         []Draw
}

// Triangles returns the number of triangles in the frame.
func (f *Frame) Triangles() int {
	n := 0
	for _, c := range f.Clips {
		n += len(c.Fan) / 6
	}
	for _, d := range f.Draws {
		n += (len(d.Fan) + len(d.Quad)) / 6
	}
	return n
}
