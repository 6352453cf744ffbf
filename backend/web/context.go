package web

import (
	"image"
	"iter"
	"math"
	"slices"

	"github.com/gogpu/vg"
	"github.com/gogpu/vg/internal/session"
	xdraw "golang.org/x/image/draw"
)

const backendName = "web"

// curveTolerance is passed to shapes without an exact Bézier form.
const curveTolerance = 0.1

// strokeState is what the canvas currently holds for the stroke
// attributes of one save level.
type strokeState struct {
	valid      bool // false until the first stroke or after a replay
	width      float64
	lineCap    vg.LineCap
	join       vg.LineJoin
	miterLimit float64
	dash       []float64
	dashOffset float64
}

// replayOp is a transform or a clip applied at one save level, kept so
// the canvas state can be rebuilt after clearing.
type replayOp struct {
	transform vg.Affine
	clip      []vg.PathElement // nil for transforms
}

// state is the per-frame state saved by Save.
type state struct {
	stroke strokeState
	ops    []replayOp
}

// RenderContext draws onto a Canvas2D. It implements
// vg.RenderContext[Brush, *Image, *Text, *TextLayout].
//
// The canvas is saved once when the context is created and restored
// on Finish, so drawing never leaks state into the canvas.
type RenderContext struct {
	sess          *session.Session[state]
	canvas        Canvas2D
	width, height int
	scale         float64
	text          *Text
}

var _ vg.RenderContext[Brush, *Image, *Text, *TextLayout] = (*RenderContext)(nil)

// NewRenderContext creates a context for a canvas of width by height
// device pixels, with scale user-to-pixel units.
func NewRenderContext(c Canvas2D, width, height int, scale float64) *RenderContext {
	rc := &RenderContext{
		sess:   session.New(backendName, state{}, nil),
		canvas: c,
		width:  width,
		height: height,
		scale:  scale,
		text:   NewText(c),
	}
	c.Save()
	c.SetTransform(scale, 0, 0, scale, 0, 0)
	return rc
}

// device returns the user-to-pixel transform.
func (rc *RenderContext) device() vg.Affine {
	return vg.Uniform(rc.scale).Multiply(rc.sess.Transform())
}

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

// Clear replaces every pixel with c, ignoring transform and clip.
func (rc *RenderContext) Clear(c vg.Color) {
	if !rc.sess.Begin("Clear") {
		return
	}
	rc.clearPixels(vg.NewRect(0, 0, float64(rc.width), float64(rc.height)), c)
}

// ClearRegion replaces the pixels of region, given in base coordinates
// and snapped to whole pixels, with c.
func (rc *RenderContext) ClearRegion(region vg.Rect, c vg.Color) {
	if !rc.sess.Begin("ClearRegion") {
		return
	}
	if !region.Origin().IsFinite() || !vg.Pt(region.X1, region.Y1).IsFinite() {
		rc.sess.Record(vg.InvalidInputf("clear region %v", region))
		return
	}
	r := vg.Uniform(rc.scale).TransformRectBBox(region)
	r = vg.Rect{X0: math.Round(r.X0), Y0: math.Round(r.Y0), X1: math.Round(r.X1), Y1: math.Round(r.Y1)}
	if r.IsEmpty() {
		return
	}
	rc.clearPixels(r, c)
}

// clearPixels unwinds the canvas to the state it had before the
// context, clears r in device pixels and replays every save level.
func (rc *RenderContext) clearPixels(r vg.Rect, c vg.Color) {
	for range rc.sess.Depth() {
		rc.canvas.Restore()
	}
	rc.canvas.Save()
	rc.canvas.SetTransform(1, 0, 0, 1, 0, 0)
	rc.canvas.ClearRect(r.X0, r.Y0, r.Width(), r.Height())
	if c.Clamped().A > 0 {
		rc.canvas.SetFillStyle(c.String())
		rc.canvas.FillRect(r.X0, r.Y0, r.Width(), r.Height())
	}
	rc.canvas.Restore()

	level := 0
	rc.sess.Frames(func(f *session.Frame[state]) {
		rc.canvas.Save()
		if level == 0 {
			rc.canvas.SetTransform(rc.scale, 0, 0, rc.scale, 0, 0)
		}
		level++
		for _, op := range f.State.ops {
			rc.apply(op)
		}
		f.State.stroke.valid = false
	})
}

func (rc *RenderContext) apply(op replayOp) {
	if op.clip == nil {
		c := op.transform.Coefficients()
		rc.canvas.Transform(c[0], c[1], c[2], c[3], c[4], c[5])
		return
	}
	rc.setPath(slices.Values(op.clip))
	rc.canvas.Clip(vg.NonZero.String())
}

// setPath replaces the current canvas path.
func (rc *RenderContext) setPath(seq iter.Seq[vg.PathElement]) {
	rc.canvas.BeginPath()
	for e := range seq {
		switch e := e.(type) {
		case vg.MoveTo:
			rc.canvas.MoveTo(e.Point.X, e.Point.Y)
		case vg.LineTo:
			rc.canvas.LineTo(e.Point.X, e.Point.Y)
		case vg.QuadTo:
			rc.canvas.QuadraticCurveTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
		case vg.CubicTo:
			rc.canvas.BezierCurveTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
		case vg.Close:
			rc.canvas.ClosePath()
		}
	}
}

// setBrush sets the fill or stroke style for a shape with bounds bbox.
func (rc *RenderContext) setBrush(brush Brush, bbox vg.Rect, fill bool) {
	if brush.gradient != nil {
		g := canvasGradient(rc.canvas, brush.gradient.Resolve(bbox))
		if fill {
			rc.canvas.SetFillGradient(g)
		} else {
			rc.canvas.SetStrokeGradient(g)
		}
		return
	}
	if fill {
		rc.canvas.SetFillStyle(brush.color.String())
	} else {
		rc.canvas.SetStrokeStyle(brush.color.String())
	}
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
	rc.setPath(shape.PathElements(curveTolerance))
	rc.setBrush(brush, shape.BoundingBox(), true)
	rc.canvas.Fill(rule.String())
}

// Clip intersects the clip with shape.
func (rc *RenderContext) Clip(shape vg.Shape) {
	if !rc.sess.Begin("Clip") || !rc.sess.CheckShape("Clip", shape) {
		return
	}
	op := replayOp{clip: slices.Collect(shape.PathElements(curveTolerance))}
	if op.clip == nil {
		op.clip = []vg.PathElement{}
	}
	rc.apply(op)
	st := rc.sess.State()
	st.ops = append(st.ops, op)
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
	if hairline {
		width = 1 / rc.device().ScaleFactor()
	}
	rc.setPath(shape.PathElements(curveTolerance))
	rc.setStroke(width, st)
	rc.setBrush(brush, shape.BoundingBox(), false)
	rc.canvas.Stroke()
}

// setStroke sends the stroke attributes that differ from what the
// canvas holds at the current save level.
func (rc *RenderContext) setStroke(width float64, st vg.StrokeStyle) {
	cs := &rc.sess.State().stroke
	all := !cs.valid
	if all || width != cs.width {
		rc.canvas.SetLineWidth(width)
		cs.width = width
	}
	if all || st.LineCap != cs.lineCap {
		rc.canvas.SetLineCap(st.LineCap.String())
		cs.lineCap = st.LineCap
	}
	if all || st.LineJoin != cs.join {
		rc.canvas.SetLineJoin(st.LineJoin.String())
		cs.join = st.LineJoin
	}
	if all || st.MiterLimit != cs.miterLimit {
		rc.canvas.SetMiterLimit(st.MiterLimit)
		cs.miterLimit = st.MiterLimit
	}
	dash := st.DashPattern()
	if all || !slices.Equal(dash, cs.dash) {
		rc.canvas.SetLineDash(dash)
		cs.dash = slices.Clone(dash)
	}
	if all || st.DashOffset != cs.dashOffset {
		rc.canvas.SetLineDashOffset(st.DashOffset)
		cs.dashOffset = st.DashOffset
	}
	cs.valid = true
}

// Text returns the canvas text engine.
func (rc *RenderContext) Text() *Text { return rc.text }

// DrawText fills layout with fillText, one call per run of equal color.
func (rc *RenderContext) DrawText(layout *TextLayout, pos vg.Point) {
	if !rc.sess.Begin("DrawText") {
		return
	}
	if layout == nil {
		rc.sess.Record(vg.InvalidInputf("DrawText: nil layout"))
		return
	}
	if len(layout.runs) == 0 {
		return
	}
	rc.canvas.Save()
	rc.canvas.SetFont(layout.font)
	for _, r := range layout.runs {
		rc.canvas.SetFillStyle(r.color.String())
		rc.canvas.FillText(r.text, pos.X+r.x, pos.Y+r.y)
	}
	rc.canvas.Restore()
}

// Save pushes the canvas state.
func (rc *RenderContext) Save() error {
	if err := rc.sess.Save(); err != nil {
		return err
	}
	rc.canvas.Save()
	rc.sess.State().ops = nil
	return nil
}

// Restore pops the canvas state pushed by the matching Save.
func (rc *RenderContext) Restore() error {
	if _, err := rc.sess.Restore(); err != nil {
		return err
	}
	rc.canvas.Restore()
	return nil
}

// Finish restores the canvas to the state it had before the context.
func (rc *RenderContext) Finish() error {
	return rc.sess.Finish(func() error {
		for range rc.sess.Depth() {
			rc.canvas.Restore()
		}
		return nil
	})
}

// Transform post-multiplies the current transform by a.
func (rc *RenderContext) Transform(a vg.Affine) {
	if !rc.sess.ApplyTransform(a) {
		return
	}
	op := replayOp{transform: a}
	rc.apply(op)
	st := rc.sess.State()
	st.ops = append(st.ops, op)
}

// CurrentTransform returns the transform relative to the base.
func (rc *RenderContext) CurrentTransform() vg.Affine { return rc.sess.Transform() }

// MakeImage creates a canvas image source from buf.
func (rc *RenderContext) MakeImage(width, height int, buf []byte, format vg.ImageFormat) (*Image, error) {
	rgba, err := vg.ToRGBA(width, height, buf, format)
	if err != nil {
		return nil, err
	}
	// canvas image data is not premultiplied
	straight := image.NewNRGBA(rgba.Rect)
	xdraw.Copy(straight, image.Point{}, rgba, rgba.Rect, xdraw.Src, nil)
	src, err := rc.canvas.CreateImage(width, height, straight.Pix)
	if err != nil {
		return nil, &vg.BackendError{Backend: backendName, Op: "MakeImage", Err: err}
	}
	return &Image{src: src, width: width, height: height}, nil
}

// DrawImage draws the whole image scaled into dst.
func (rc *RenderContext) DrawImage(img *Image, dst vg.Rect, interp vg.InterpolationMode) {
	src := vg.Rect{}
	if img != nil {
		src = img.Size().ToRect()
	}
	rc.DrawImageArea(img, src, dst, interp)
}

// DrawImageArea draws the src part of img scaled into dst. Smoothing
// is enabled for bilinear interpolation only.
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
	rc.canvas.Save()
	rc.canvas.SetImageSmoothingEnabled(interp == vg.Bilinear)
	err := rc.canvas.DrawImage(img.src, src.X0, src.Y0, src.Width(), src.Height(), dst.X0, dst.Y0, dst.Width(), dst.Height())
	rc.canvas.Restore()
	if err != nil {
		rc.sess.Record(&vg.BackendError{Backend: backendName, Op: "DrawImageArea", Err: err})
	}
}

// CaptureImageArea is not supported.
func (rc *RenderContext) CaptureImageArea(vg.Rect) (*Image, error) {
	if !rc.sess.Begin("CaptureImageArea") {
		return nil, &vg.MisuseError{Op: "CaptureImageArea", Err: vg.ErrFinished}
	}
	return nil, &vg.UnsupportedError{Backend: backendName, Op: "CaptureImageArea", Detail: "canvas capture is not implemented"}
}

// BlurredRect draws the canvas shadow of rect with a shadow blur of
// twice blurRadius in device pixels. The rectangle itself is drawn
// outside the canvas and only its shadow lands on rect. Gradient
// brushes are not supported.
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
	if brush.gradient != nil {
		rc.sess.Unsupported("BlurredRect", "canvas shadows take a solid color")
		return
	}
	rect = rect.Abs()
	if rect.IsEmpty() {
		return
	}
	if blurRadius == 0 {
		rc.canvas.SetFillStyle(brush.color.String())
		rc.canvas.FillRect(rect.X0, rect.Y0, rect.Width(), rect.Height())
		return
	}
	m := rc.device()
	inv, ok := m.Invert()
	if !ok {
		return
	}
	blur := 2 * blurRadius * m.ScaleFactor()
	bbox := m.TransformRectBBox(rect)
	off := float64(rc.width+rc.height) + bbox.Width() + 3*blur
	v := inv.TransformVector(vg.Vec2{X: -off})
	rc.canvas.Save()
	rc.canvas.SetShadowColor(brush.color.String())
	rc.canvas.SetShadowBlur(blur)
	rc.canvas.SetShadowOffset(off, 0)
	rc.canvas.SetFillStyle(vg.Black.String())
	rc.canvas.FillRect(rect.X0+v.X, rect.Y0+v.Y, rect.Width(), rect.Height())
	rc.canvas.Restore()
}
