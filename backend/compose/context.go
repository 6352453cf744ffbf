package compose

import (
	"math"

	"github.com/gogpu/vg"
	"github.com/gogpu/vg/internal/session"
	"github.com/gogpu/vg/text"
)

const backendName = "compose"

// RenderContext records drawing into the scene of a bitmap. It
// implements vg.RenderContext[Brush, *Image, *text.Engine, *text.Layout].
type RenderContext struct {
	sess     *session.Session[struct{}]
	bitmap   *Bitmap
	commands []Command
	engine   *text.Engine
}

var _ vg.RenderContext[Brush, *Image, *text.Engine, *text.Layout] = (*RenderContext)(nil)

func newRenderContext(b *Bitmap) *RenderContext {
	return &RenderContext{
		sess:   session.New(backendName, struct{}{}, nil),
		bitmap: b,
		engine: b.engine,
	}
}

func (rc *RenderContext) record(c Command) {
	rc.commands = append(rc.commands, c)
}

func (rc *RenderContext) pool() *ResourcePool { return rc.bitmap.scene.pool }

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

// Clear records a fill of the whole surface.
func (rc *RenderContext) Clear(c vg.Color) {
	if !rc.sess.Begin("Clear") {
		return
	}
	rc.record(ClearCommand{Color: c})
}

// ClearRegion records a fill of region in base coordinates.
func (rc *RenderContext) ClearRegion(region vg.Rect, c vg.Color) {
	if !rc.sess.Begin("ClearRegion") {
		return
	}
	if !region.Origin().IsFinite() || !vg.Pt(region.X1, region.Y1).IsFinite() {
		rc.sess.Record(vg.InvalidInputf("clear region %v", region))
		return
	}
	rc.record(ClearRegionCommand{Region: region, Color: c})
}

// Fill records a nonzero fill.
func (rc *RenderContext) Fill(shape vg.Shape, brush Brush) {
	rc.fill("Fill", shape, brush, vg.NonZero)
}

// FillEvenOdd records an even-odd fill.
func (rc *RenderContext) FillEvenOdd(shape vg.Shape, brush Brush) {
	rc.fill("FillEvenOdd", shape, brush, vg.EvenOdd)
}

func (rc *RenderContext) fill(op string, shape vg.Shape, brush Brush, rule vg.FillRule) {
	if !rc.sess.Begin(op) || !rc.sess.CheckShape(op, shape) {
		return
	}
	p := rc.pool()
	rc.record(FillCommand{Shape: p.AddShape(shape), Brush: p.AddBrush(brush), Rule: rule})
}

// Clip records a clip.
func (rc *RenderContext) Clip(shape vg.Shape) {
	if !rc.sess.Begin("Clip") || !rc.sess.CheckShape("Clip", shape) {
		return
	}
	rc.record(ClipCommand{Shape: rc.pool().AddShape(shape)})
}

// Stroke records a stroke with the default style.
func (rc *RenderContext) Stroke(shape vg.Shape, brush Brush, width float64) {
	rc.stroke("Stroke", shape, brush, width, nil)
}

// StrokeStyled records a stroke with style.
func (rc *RenderContext) StrokeStyled(shape vg.Shape, brush Brush, width float64, style *vg.StrokeStyle) {
	rc.stroke("StrokeStyled", shape, brush, width, style)
}

func (rc *RenderContext) stroke(op string, shape vg.Shape, brush Brush, width float64, style *vg.StrokeStyle) {
	if !rc.sess.Begin(op) || !rc.sess.CheckShape(op, shape) {
		return
	}
	st, _, ok := rc.sess.CheckStroke(op, width, style)
	if !ok {
		return
	}
	st = st.WithDash(st.Dash, st.DashOffset)
	p := rc.pool()
	rc.record(StrokeCommand{Shape: p.AddShape(shape), Brush: p.AddBrush(brush), Width: width, Style: st})
}

// Text returns the text engine.
func (rc *RenderContext) Text() *text.Engine { return rc.engine }

// DrawText records a text layout.
func (rc *RenderContext) DrawText(layout *text.Layout, pos vg.Point) {
	if !rc.sess.Begin("DrawText") {
		return
	}
	if layout == nil {
		rc.sess.Record(vg.InvalidInputf("DrawText: nil layout"))
		return
	}
	rc.record(DrawTextCommand{Layout: rc.pool().AddLayout(layout), Pos: pos})
}

// Save records a save.
func (rc *RenderContext) Save() error {
	if err := rc.sess.Save(); err != nil {
		return err
	}
	rc.record(SaveCommand{})
	return nil
}

// Restore records a restore.
func (rc *RenderContext) Restore() error {
	if _, err := rc.sess.Restore(); err != nil {
		return err
	}
	rc.record(RestoreCommand{})
	return nil
}

// Finish commits the recorded commands to the bitmap's scene.
func (rc *RenderContext) Finish() error {
	open := rc.sess.Depth() - 1
	return rc.sess.Finish(func() error {
		rc.bitmap.commit(rc.commands, open)
		rc.commands = nil
		return nil
	})
}

// Transform records a transform.
func (rc *RenderContext) Transform(a vg.Affine) {
	if rc.sess.ApplyTransform(a) {
		rc.record(TransformCommand{Affine: a})
	}
}

// CurrentTransform returns the transform relative to the base.
func (rc *RenderContext) CurrentTransform() vg.Affine { return rc.sess.Transform() }

// MakeImage copies buf into a new image.
func (rc *RenderContext) MakeImage(width, height int, buf []byte, format vg.ImageFormat) (*Image, error) {
	rgba, err := vg.ToRGBA(width, height, buf, format)
	if err != nil {
		return nil, err
	}
	return &Image{rgba: rgba}, nil
}

// DrawImage records the whole image scaled into dst.
func (rc *RenderContext) DrawImage(img *Image, dst vg.Rect, interp vg.InterpolationMode) {
	src := vg.Rect{}
	if img != nil {
		src = img.Size().ToRect()
	}
	rc.DrawImageArea(img, src, dst, interp)
}

// DrawImageArea records the src part of img scaled into dst.
func (rc *RenderContext) DrawImageArea(img *Image, src, dst vg.Rect, interp vg.InterpolationMode) {
	if !rc.sess.Begin("DrawImageArea") {
		return
	}
	if img == nil {
		rc.sess.Record(vg.InvalidInputf("DrawImageArea: nil image"))
		return
	}
	src, ok := vg.ImageSourceRect(src, img.Size())
	if !ok || dst.Abs().IsEmpty() {
		return
	}
	rc.record(DrawImageCommand{Image: rc.pool().AddImage(img), Src: src, Dst: dst.Abs(), Interp: interp})
}

// CaptureImageArea is not supported: a scene has no pixels to read.
func (rc *RenderContext) CaptureImageArea(vg.Rect) (*Image, error) {
	if !rc.sess.Begin("CaptureImageArea") {
		return nil, &vg.MisuseError{Op: "CaptureImageArea", Err: vg.ErrFinished}
	}
	return nil, &vg.UnsupportedError{Backend: backendName, Op: "CaptureImageArea", Detail: "scenes are not rasterized while recording"}
}

// BlurredRect records a blurred rectangle.
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
	rc.record(BlurredRectCommand{Rect: rect, Radius: blurRadius, Brush: rc.pool().AddBrush(brush)})
}
