package gpu

import (
	"iter"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/vg"
	"github.com/gogpu/vg/internal/geom"
	"github.com/gogpu/vg/internal/session"
	"github.com/gogpu/vg/text"
)

const backendName = "gpu"

// blurExtent is how many standard deviations a blurred rectangle's
// cover quad extends past the rectangle.
const blurExtent = 3

// state is the per-frame state saved by Save.
type state struct {
	clip int // index into Frame.Clips; -1 when unclipped
}

// RenderContext encodes drawing into a Frame that is executed on
// Finish. It implements
// vg.RenderContext[Brush, *Image, *text.Engine, *text.Layout].
type RenderContext struct {
	sess   *session.Session[state]
	bitmap *Bitmap
	frame  *Frame
	base   vg.Affine
	tess   *FanTessellator
	engine *text.Engine
}

var _ vg.RenderContext[Brush, *Image, *text.Engine, *text.Layout] = (*RenderContext)(nil)

func newRenderContext(b *Bitmap) *RenderContext {
	w, h := b.Width(), b.Height()
	return &RenderContext{
		sess:   session.New(backendName, state{clip: -1}, nil),
		bitmap: b,
		frame:  &Frame{Width: w, Height: h},
		base:   vg.Uniform(b.scale),
		tess:   NewFanTessellator(w, h),
		engine: b.device.engine,
	}
}

// device returns the user-to-device transform.
func (rc *RenderContext) device() vg.Affine {
	return rc.base.Multiply(rc.sess.Transform())
}

func (rc *RenderContext) surface() vg.Rect {
	return vg.NewRect(0, 0, float64(rc.frame.Width), float64(rc.frame.Height))
}

// Frame returns the draws encoded so far. It must not be modified.
func (rc *RenderContext) Frame() *Frame { return rc.frame }

// Status returns and clears the first recorded error.
func (rc *RenderContext) Status() error { return rc.sess.Status() }

// SolidBrush creates a brush painting c.
func (rc *RenderContext) SolidBrush(c vg.Color) Brush {
	return Brush{color: c}
}

// GradientBrush creates a gradient brush.
func (rc *RenderContext) GradientBrush(g vg.Gradient) (Brush, error) {
	ng, err := vg.NormalizeGradient(g)
	if err != nil {
		return Brush{}, err
	}
	return Brush{gradient: ng}, nil
}

// Clear fills the whole surface with c.
func (rc *RenderContext) Clear(c vg.Color) {
	if !rc.sess.Begin("Clear") {
		return
	}
	rc.clear(rc.surface(), c)
}

// ClearRegion fills region, given in base coordinates, with c. The
// region is snapped to whole pixels.
func (rc *RenderContext) ClearRegion(region vg.Rect, c vg.Color) {
	if !rc.sess.Begin("ClearRegion") {
		return
	}
	if !region.Origin().IsFinite() || !vg.Pt(region.X1, region.Y1).IsFinite() {
		rc.sess.Record(vg.InvalidInputf("clear region %v", region))
		return
	}
	r := rc.base.TransformRectBBox(region)
	r = vg.Rect{X0: math.Round(r.X0), Y0: math.Round(r.Y0), X1: math.Round(r.X1), Y1: math.Round(r.Y1)}
	rc.clear(r.Intersect(rc.surface()), c)
}

func (rc *RenderContext) clear(r vg.Rect, c vg.Color) {
	if r.IsEmpty() {
		return
	}
	rc.frame.Draws = append(rc.frame.Draws, Draw{
		Kind:  DrawClear,
		Pass:  Clear,
		Quad:  rc.tess.Quad(r),
		Paint: Paint{Color: premul(c)},
		Clip:  -1,
	})
}

// Fill paints shape with the nonzero rule.
func (rc *RenderContext) Fill(shape vg.Shape, brush Brush) {
	rc.fill("Fill", shape, brush, vg.NonZero)
}

// FillEvenOdd paints shape with the even-odd rule.
func (rc *RenderContext) FillEvenOdd(shape vg.Shape, brush Brush) {
	rc.fill("FillEvenOdd", shape, brush, vg.EvenOdd)
}

func (rc *RenderContext) fill(op string, shape vg.Shape, brush Brush, rule vg.FillRule) {
	if !rc.sess.Begin(op) || !rc.sess.CheckShape(op, shape) {
		return
	}
	m := rc.device()
	rc.encodeFill(geom.Fill(shape, m, geom.Tolerance), rule, brush.paint(shape.BoundingBox(), m))
}

// encodeFill appends a stencil-then-cover draw for a device-space path.
func (rc *RenderContext) encodeFill(seq iter.Seq[vg.PathElement], rule vg.FillRule, paint Paint) {
	rc.tess.Reset()
	if rc.tess.TessellatePath(seq) == 0 {
		return
	}
	rc.frame.Draws = append(rc.frame.Draws, Draw{
		Kind:    DrawFill,
		Stencil: stencilPipeline(rule == vg.EvenOdd),
		Pass:    Cover,
		Fan:     rc.tess.Vertices(),
		Quad:    rc.tess.CoverQuad(),
		Paint:   paint,
		Clip:    rc.sess.State().clip,
	})
}

// Clip intersects the clip with shape. The clip mask is rendered with
// the nonzero rule.
func (rc *RenderContext) Clip(shape vg.Shape) {
	if !rc.sess.Begin("Clip") || !rc.sess.CheckShape("Clip", shape) {
		return
	}
	rc.tess.Reset()
	rc.tess.TessellatePath(geom.Fill(shape, rc.device(), geom.Tolerance))
	st := rc.sess.State()
	rc.frame.Clips = append(rc.frame.Clips, ClipMask{Parent: st.clip, Fan: rc.tess.Vertices()})
	st.clip = len(rc.frame.Clips) - 1
}

// Stroke strokes shape with the default style.
func (rc *RenderContext) Stroke(shape vg.Shape, brush Brush, width float64) {
	rc.stroke("Stroke", shape, brush, width, nil)
}

// StrokeStyled strokes shape with style.
func (rc *RenderContext) StrokeStyled(shape vg.Shape, brush Brush, width float64, style *vg.StrokeStyle) {
	rc.stroke("StrokeStyled", shape, brush, width, style)
}

func (rc *RenderContext) stroke(op string, shape vg.Shape, brush Brush, width float64, style *vg.StrokeStyle) {
	if !rc.sess.Begin(op) || !rc.sess.CheckShape(op, shape) {
		return
	}
	st, hairline, ok := rc.sess.CheckStroke(op, width, style)
	if !ok {
		return
	}
	m := rc.device()
	outline := geom.Stroke(shape, m, width, hairline, st, geom.Tolerance)
	rc.encodeFill(outline, vg.NonZero, brush.paint(shape.BoundingBox(), m))
}

// Text returns the text engine.
func (rc *RenderContext) Text() *text.Engine { return rc.engine }

// DrawText fills the glyph outlines of layout with its colors.
func (rc *RenderContext) DrawText(layout *text.Layout, pos vg.Point) {
	if !rc.sess.Begin("DrawText") {
		return
	}
	if layout == nil {
		rc.sess.Record(vg.InvalidInputf("DrawText: nil layout"))
		return
	}
	m := rc.device().Multiply(vg.Translate(pos.X, pos.Y))
	for _, run := range layout.Paths() {
		rc.encodeFill(geom.Fill(run.Path, m, geom.Tolerance), vg.NonZero, Paint{Color: premul(run.Color)})
	}
}

// Save pushes the transform and clip.
func (rc *RenderContext) Save() error { return rc.sess.Save() }

// Restore pops the state pushed by the matching Save.
func (rc *RenderContext) Restore() error {
	_, err := rc.sess.Restore()
	return err
}

// Finish submits the frame to the device executor.
func (rc *RenderContext) Finish() error {
	return rc.sess.Finish(func() error {
		return rc.bitmap.submit(rc.frame)
	})
}

// Transform post-multiplies the current transform by a.
func (rc *RenderContext) Transform(a vg.Affine) { rc.sess.ApplyTransform(a) }

// CurrentTransform returns the transform relative to the base.
func (rc *RenderContext) CurrentTransform() vg.Affine { return rc.sess.Transform() }

// MakeImage uploads buf into a new texture.
func (rc *RenderContext) MakeImage(width, height int, buf []byte, format vg.ImageFormat) (*Image, error) {
	rgba, err := vg.ToRGBA(width, height, buf, format)
	if err != nil {
		return nil, err
	}
	return &Image{tex: &Texture{Pixels: rgba}}, nil
}

// DrawImage draws the whole image scaled into dst.
func (rc *RenderContext) DrawImage(img *Image, dst vg.Rect, interp vg.InterpolationMode) {
	src := vg.Rect{}
	if img != nil {
		src = img.Size().ToRect()
	}
	rc.DrawImageArea(img, src, dst, interp)
}

// DrawImageArea draws the src part of img scaled into dst as a
// textured quad.
func (rc *RenderContext) DrawImageArea(img *Image, src, dst vg.Rect, interp vg.InterpolationMode) {
	if !rc.sess.Begin("DrawImageArea") {
		return
	}
	if img == nil {
		rc.sess.Record(vg.InvalidInputf("DrawImageArea: nil image"))
		return
	}
	src, ok := vg.ImageSourceRect(src, img.Size())
	if !ok {
		return
	}
	dst = dst.Abs()
	if dst.IsEmpty() {
		return
	}
	// texels -> user space -> device
	t2u := vg.Translate(dst.X0, dst.Y0).
		Multiply(vg.Scale(dst.Width()/src.Width(), dst.Height()/src.Height())).
		Multiply(vg.Translate(-src.X0, -src.Y0))
	m := rc.device()
	toTexel, ok := m.Multiply(t2u).Invert()
	if !ok {
		return
	}
	filter := gputypes.FilterModeNearest
	if interp == vg.Bilinear {
		filter = gputypes.FilterModeLinear
	}
	rc.frame.Draws = append(rc.frame.Draws, Draw{
		Kind:    DrawTexture,
		Pass:    Textured,
		Quad:    rc.tess.Parallelogram(m, dst),
		Texture: img.tex,
		Sample: Sampling{
			Filter:  filter,
			ToTexel: toTexel,
			Src:     src.Expand().ToImageRect(),
		},
		Clip: rc.sess.State().clip,
	})
}

// CaptureImageArea is not supported: the frame is not executed until
// Finish.
func (rc *RenderContext) CaptureImageArea(vg.Rect) (*Image, error) {
	if !rc.sess.Begin("CaptureImageArea") {
		return nil, &vg.MisuseError{Op: "CaptureImageArea", Err: vg.ErrFinished}
	}
	return nil, &vg.UnsupportedError{Backend: backendName, Op: "CaptureImageArea", Detail: "render targets are not readable while encoding"}
}

// BlurredRect draws rect blurred by a Gaussian with standard deviation
// blurRadius in user units. Coverage is computed per fragment.
func (rc *RenderContext) BlurredRect(rect vg.Rect, blurRadius float64, brush Brush) {
	if !rc.sess.Begin("BlurredRect") {
		return
	}
	if math.IsNaN(blurRadius) || math.IsInf(blurRadius, 0) || blurRadius < 0 {
		rc.sess.Record(vg.InvalidInputf("blur radius %v", blurRadius))
		return
	}
	if !rc.sess.CheckShape("BlurredRect", rect) {
		return
	}
	rect = rect.Abs()
	if rect.IsEmpty() {
		return
	}
	m := rc.device()
	inv, _ := m.Invert()
	rc.frame.Draws = append(rc.frame.Draws, Draw{
		Kind:  DrawBlurRect,
		Pass:  Analytic,
		Quad:  rc.tess.Parallelogram(m, rect.Inset(-blurExtent*blurRadius-1/m.ScaleFactor())),
		Paint: brush.paint(rect, m),
		Blur:  BlurRect{Rect: rect, Sigma: blurRadius, ToUser: inv},
		Clip:  rc.sess.State().clip,
	})
}
