package raster

import (
	"image"
	"math"

	"github.com/gogpu/vg"
	"github.com/gogpu/vg/internal/coverage"
	"github.com/gogpu/vg/internal/geom"
	"github.com/gogpu/vg/internal/session"
	"github.com/gogpu/vg/text"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

const backendName = "raster"

// blurExtent is how many standard deviations of a blurred rectangle
// are rendered around it.
const blurExtent = 3

// state is the per-frame state saved by Save. Clip masks are never
// modified in place, so frames can share them.
type state struct {
	clip *image.Alpha // nil: no clip
}

// RenderContext draws into a bitmap. It implements
// vg.RenderContext[Brush, *Image, *text.Engine, *text.Layout].
type RenderContext struct {
	sess   *session.Session[state]
	dst    *image.RGBA
	base   vg.Affine
	raster *coverage.Rasterizer
	engine *text.Engine
}

var _ vg.RenderContext[Brush, *Image, *text.Engine, *text.Layout] = (*RenderContext)(nil)

func newRenderContext(dst *image.RGBA, base vg.Affine, engine *text.Engine) *RenderContext {
	return &RenderContext{
		sess:   session.New(backendName, state{}, nil),
		dst:    dst,
		base:   base,
		raster: coverage.NewRasterizer(dst.Rect.Dx(), dst.Rect.Dy()),
		engine: engine,
	}
}

// device returns the user-to-device transform.
func (rc *RenderContext) device() vg.Affine {
	return rc.base.Multiply(rc.sess.Transform())
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

// Clear fills the whole surface with c.
func (rc *RenderContext) Clear(c vg.Color) {
	if !rc.sess.Begin("Clear") {
		return
	}
	draw.Draw(rc.dst, rc.dst.Rect, image.NewUniform(c.PremulRGBA()), image.Point{}, draw.Src)
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
	r := snapRect(rc.base.TransformRectBBox(region)).Intersect(rc.dst.Rect)
	draw.Draw(rc.dst, r, image.NewUniform(c.PremulRGBA()), image.Point{}, draw.Src)
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
	mask := rc.raster.Fill(geom.Fill(shape, m, geom.Tolerance), rule)
	rc.paint(mask, brush.source(shape.BoundingBox(), m))
}

// Clip intersects the clip with shape.
func (rc *RenderContext) Clip(shape vg.Shape) {
	if !rc.sess.Begin("Clip") || !rc.sess.CheckShape("Clip", shape) {
		return
	}
	mask := rc.raster.Fill(geom.Fill(shape, rc.device(), geom.Tolerance), vg.NonZero)
	st := rc.sess.State()
	coverage.Intersect(mask, st.clip)
	st.clip = mask
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
	mask := rc.raster.Fill(outline, vg.NonZero)
	rc.paint(mask, brush.source(shape.BoundingBox(), m))
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
		mask := rc.raster.Fill(geom.Fill(run.Path, m, geom.Tolerance), vg.NonZero)
		rc.paint(mask, image.NewUniform(run.Color.PremulRGBA()))
	}
}

// Save pushes the transform and clip.
func (rc *RenderContext) Save() error { return rc.sess.Save() }

// Restore pops the state pushed by the matching Save.
func (rc *RenderContext) Restore() error {
	_, err := rc.sess.Restore()
	return err
}

// Finish ends drawing. The pixels are already in the bitmap.
func (rc *RenderContext) Finish() error { return rc.sess.Finish(nil) }

// Transform post-multiplies the current transform by a.
func (rc *RenderContext) Transform(a vg.Affine) { rc.sess.ApplyTransform(a) }

// CurrentTransform returns the transform relative to the base.
func (rc *RenderContext) CurrentTransform() vg.Affine { return rc.sess.Transform() }

// paint composites src through mask and the current clip.
func (rc *RenderContext) paint(mask *image.Alpha, src image.Image) {
	coverage.Intersect(mask, rc.sess.State().clip)
	r := maskBounds(mask)
	if r.Empty() {
		return
	}
	draw.DrawMask(rc.dst, r, src, r.Min, mask, r.Min, draw.Over)
}

// MakeImage copies buf into a new image.
func (rc *RenderContext) MakeImage(width, height int, buf []byte, format vg.ImageFormat) (*Image, error) {
	rgba, err := vg.ToRGBA(width, height, buf, format)
	if err != nil {
		return nil, err
	}
	return &Image{rgba: rgba}, nil
}

// DrawImage draws the whole image scaled into dst.
func (rc *RenderContext) DrawImage(img *Image, dst vg.Rect, interp vg.InterpolationMode) {
	if img == nil {
		rc.DrawImageArea(nil, vg.Rect{}, dst, interp)
		return
	}
	rc.DrawImageArea(img, img.Size().ToRect(), dst, interp)
}

// DrawImageArea draws the src part of img scaled into dst.
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
	// image pixels -> user space -> device
	s2u := vg.Translate(dst.X0, dst.Y0).
		Multiply(vg.Scale(dst.Width()/src.Width(), dst.Height()/src.Height())).
		Multiply(vg.Translate(-src.X0, -src.Y0))
	m := rc.device().Multiply(s2u)

	// the destination rectangle, antialiased and clipped, masks the copy
	clip := rc.raster.Fill(geom.Fill(dst, rc.device(), geom.Tolerance), vg.NonZero)
	coverage.Intersect(clip, rc.sess.State().clip)
	sr := image.Rect(int(math.Floor(src.X0)), int(math.Floor(src.Y0)), int(math.Ceil(src.X1)), int(math.Ceil(src.Y1)))

	var t draw.Transformer = draw.NearestNeighbor
	if interp == vg.Bilinear {
		t = draw.BiLinear
	}
	aff := f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F}
	t.Transform(rc.dst, aff, img.rgba, sr, draw.Over, &draw.Options{DstMask: clip})
}

// CaptureImageArea copies the pixels under src, given in user space,
// into a new image.
func (rc *RenderContext) CaptureImageArea(src vg.Rect) (*Image, error) {
	if !rc.sess.Begin("CaptureImageArea") {
		return nil, &vg.MisuseError{Op: "CaptureImageArea", Err: vg.ErrFinished}
	}
	r := snapRect(rc.device().TransformRectBBox(src.Abs())).Intersect(rc.dst.Rect)
	if r.Empty() {
		return nil, vg.InvalidInputf("capture area %v is outside the surface", src)
	}
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Rect, rc.dst, r.Min, draw.Src)
	return &Image{rgba: out}, nil
}

// BlurredRect draws rect blurred by a Gaussian with standard deviation
// blurRadius in user units.
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
	m := rc.device()
	mask := rc.raster.Fill(geom.Fill(rect, m, geom.Tolerance), vg.NonZero)
	sigma := blurRadius * m.ScaleFactor()
	bounds := mask.Rect
	area := m.TransformRectBBox(rect.Abs()).Inset(-blurExtent * sigma).
		Intersect(vg.NewRect(float64(bounds.Min.X), float64(bounds.Min.Y), float64(bounds.Max.X), float64(bounds.Max.Y)))
	if area.IsEmpty() {
		return
	}
	mask = coverage.Blur(mask, sigma, area.ToImageRect())
	rc.paint(mask, brush.source(rect.Abs(), m))
}

// snapRect rounds r to whole pixels.
func snapRect(r vg.Rect) image.Rectangle {
	return image.Rect(
		int(math.Round(r.X0)), int(math.Round(r.Y0)),
		int(math.Round(r.X1)), int(math.Round(r.Y1)),
	)
}

// maskBounds returns the smallest rectangle holding all coverage of m.
func maskBounds(m *image.Alpha) image.Rectangle {
	b := m.Rect
	minX, minY, maxX, maxY := b.Max.X, b.Max.Y, b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := m.Pix[(y-b.Min.Y)*m.Stride : (y-b.Min.Y)*m.Stride+b.Dx()]
		for x, v := range row {
			if v == 0 {
				continue
			}
			minX = min(minX, b.Min.X+x)
			maxX = max(maxX, b.Min.X+x)
			minY = min(minY, y)
			maxY = y
		}
	}
	if maxX < minX {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}
