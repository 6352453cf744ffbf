package vg

// RenderContext is the drawing contract every backend implements.
//
// B is the backend brush type, I its image type, T its text engine and L
// the layout type that engine produces. A context is bound to one
// surface and is not safe for concurrent use.
//
// Most methods do not return errors. Failures are recorded in a sticky
// status slot: the first error wins, Status reads and clears it, and
// Finish returns whatever is left. Misuse (Restore without Save,
// drawing after Finish) is reported as a *MisuseError.
type RenderContext[B any, I Image, T Text[L], L TextLayout] interface {
	// Status returns the first error recorded since the last call and
	// clears it.
	Status() error

	// SolidBrush creates a brush painting a single color.
	SolidBrush(c Color) B
	// GradientBrush creates a gradient brush. Malformed gradients are
	// reported immediately.
	GradientBrush(g Gradient) (B, error)

	// Clear fills the whole surface with c, ignoring transform and clip.
	Clear(c Color)
	// ClearRegion fills region (in base coordinates) with c, ignoring
	// transform and clip.
	ClearRegion(region Rect, c Color)

	// Fill paints the interior of shape with the nonzero rule.
	Fill(shape Shape, brush B)
	// FillEvenOdd paints the interior of shape with the even-odd rule.
	FillEvenOdd(shape Shape, brush B)
	// Clip intersects the current clip with shape (nonzero rule).
	Clip(shape Shape)
	// Stroke strokes shape with the default style. Zero width draws a
	// hairline one device pixel wide.
	Stroke(shape Shape, brush B, width float64)
	// StrokeStyled strokes shape with style; nil means the default.
	StrokeStyled(shape Shape, brush B, width float64, style *StrokeStyle)

	// Text returns the text engine for this surface.
	Text() T
	// DrawText draws layout with its top-left corner at pos.
	DrawText(layout L, pos Point)

	// Save pushes the transform, clip and backend state.
	Save() error
	// Restore pops the state pushed by the matching Save.
	Restore() error
	// Finish flushes pending work and returns the final status. The
	// context is unusable afterwards.
	Finish() error

	// Transform post-multiplies the current transform by a.
	Transform(a Affine)
	// CurrentTransform returns the transform relative to the base.
	CurrentTransform() Affine

	// MakeImage copies a raw pixel buffer into a backend image.
	MakeImage(width, height int, buf []byte, format ImageFormat) (I, error)
	// DrawImage draws the whole image scaled into dst.
	DrawImage(img I, dst Rect, interp InterpolationMode)
	// DrawImageArea draws the src part of the image scaled into dst.
	DrawImageArea(img I, src, dst Rect, interp InterpolationMode)
	// CaptureImageArea copies surface pixels under src (in the current
	// user space) into a new image.
	CaptureImageArea(src Rect) (I, error)

	// BlurredRect draws rect blurred by a Gaussian with standard
	// deviation blurRadius.
	BlurredRect(rect Rect, blurRadius float64, brush B)
}
