package svg

import (
	"bytes"
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/gogpu/vg"
	"github.com/gogpu/vg/internal/session"
	"github.com/gogpu/vg/text"
)

const backendName = "svg"

// curveTolerance is used for shapes without an exact Bézier form, in
// user units.
const curveTolerance = 0.1

// blurExtent is how many standard deviations the filter region extends
// past a blurred rectangle.
const blurExtent = 3

// state is the per-frame state saved by Save.
type state struct {
	groups int // <g> elements opened in this frame
}

// RenderContext writes drawing as SVG markup. It implements
// vg.RenderContext[Brush, *Image, *text.Engine, *text.Layout].
//
// Transforms and clips open <g> elements that are closed by the
// matching Restore, or by Finish.
type RenderContext struct {
	sess   *session.Session[state]
	bitmap *Bitmap
	m      markup
	engine *text.Engine

	body    bytes.Buffer
	open    []string // opening tags of the open groups, outermost first
	cleared bool
	warned  bool
}

var _ vg.RenderContext[Brush, *Image, *text.Engine, *text.Layout] = (*RenderContext)(nil)

func newRenderContext(b *Bitmap) *RenderContext {
	rc := &RenderContext{
		sess:   session.New(backendName, state{}, nil),
		bitmap: b,
		m:      b.m,
		engine: b.opts.engine,
	}
	rc.pushGroup(fmt.Sprintf(`<g transform="%s">`, rc.m.matrix(vg.Uniform(b.scale))))
	return rc
}

func (rc *RenderContext) pushGroup(tag string) {
	rc.body.WriteString(tag)
	rc.open = append(rc.open, tag)
}

func (rc *RenderContext) popGroups(n int) {
	for range n {
		rc.body.WriteString("</g>")
		rc.open = rc.open[:len(rc.open)-1]
	}
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

// Clear replaces the whole document with c. Everything drawn before,
// by this context or earlier ones, is dropped.
func (rc *RenderContext) Clear(c vg.Color) {
	if !rc.sess.Begin("Clear") {
		return
	}
	rc.body.Reset()
	rc.cleared = true
	if c.Clamped().A > 0 {
		rc.body.WriteString(rc.rect(vg.NewRect(0, 0, float64(rc.bitmap.width), float64(rc.bitmap.height)), c))
	}
	for _, tag := range rc.open {
		rc.body.WriteString(tag)
	}
}

// ClearRegion paints region, given in base coordinates and snapped to
// whole pixels, with c outside every transform and clip. Translucent
// colors are composited instead of replacing what is below.
func (rc *RenderContext) ClearRegion(region vg.Rect, c vg.Color) {
	if !rc.sess.Begin("ClearRegion") {
		return
	}
	if !region.Origin().IsFinite() || !vg.Pt(region.X1, region.Y1).IsFinite() {
		rc.sess.Record(vg.InvalidInputf("clear region %v", region))
		return
	}
	if !c.IsOpaque() && !rc.warned {
		rc.warned = true
		vg.Logger().Warn("svg: translucent ClearRegion is composited", "color", c)
	}
	r := vg.Uniform(rc.bitmap.scale).TransformRectBBox(region)
	r = vg.Rect{X0: math.Round(r.X0), Y0: math.Round(r.Y0), X1: math.Round(r.X1), Y1: math.Round(r.Y1)}
	if r.IsEmpty() {
		return
	}
	open := rc.open
	for range open {
		rc.body.WriteString("</g>")
	}
	rc.body.WriteString(rc.rect(r, c))
	for _, tag := range open {
		rc.body.WriteString(tag)
	}
}

// rect renders an untransformed solid rectangle.
func (rc *RenderContext) rect(r vg.Rect, c vg.Color) string {
	return fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s"%s/>`,
		rc.m.num(r.X0), rc.m.num(r.Y0), rc.m.num(r.Width()), rc.m.num(r.Height()),
		rc.m.colorAttrs("fill", "fill-opacity", c))
}

// paint returns the attributes painting brush as attr over a shape
// with user-space box bbox.
func (rc *RenderContext) paint(attr string, brush Brush, bbox vg.Rect) string {
	if brush.gradient == nil {
		return rc.m.colorAttrs(attr, attr+"-opacity", brush.color)
	}
	id := rc.bitmap.newID("g")
	rc.bitmap.define(rc.m.gradientDef(id, brush.gradient.Resolve(bbox)))
	return fmt.Sprintf(` %s="url(#%s)"`, attr, id)
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
	attrs := rc.paint("fill", brush, shape.BoundingBox())
	if rule == vg.EvenOdd {
		attrs += ` fill-rule="evenodd"`
	}
	fmt.Fprintf(&rc.body, `<path d="%s"%s/>`, rc.m.pathData(shape.PathElements(curveTolerance)), attrs)
}

// Clip intersects the clip with shape by opening a clipped group.
func (rc *RenderContext) Clip(shape vg.Shape) {
	if !rc.sess.Begin("Clip") || !rc.sess.CheckShape("Clip", shape) {
		return
	}
	id := rc.bitmap.newID("c")
	rc.bitmap.define(fmt.Sprintf(`<clipPath id="%s" clipPathUnits="userSpaceOnUse"><path d="%s"/></clipPath>`,
		id, rc.m.pathData(shape.PathElements(curveTolerance))))
	rc.pushGroup(fmt.Sprintf(`<g clip-path="url(#%s)">`, id))
	rc.sess.State().groups++
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
	var attrs strings.Builder
	attrs.WriteString(` fill="none"`)
	attrs.WriteString(rc.paint("stroke", brush, shape.BoundingBox()))
	if hairline {
		attrs.WriteString(` stroke-width="1" vector-effect="non-scaling-stroke"`)
	} else {
		fmt.Fprintf(&attrs, ` stroke-width="%s"`, rc.m.num(width))
	}
	if st.LineCap != vg.CapButt {
		fmt.Fprintf(&attrs, ` stroke-linecap="%s"`, st.LineCap)
	}
	if st.LineJoin != vg.JoinMiter {
		fmt.Fprintf(&attrs, ` stroke-linejoin="%s"`, st.LineJoin)
	} else if st.MiterLimit != svgMiterLimit {
		fmt.Fprintf(&attrs, ` stroke-miterlimit="%s"`, rc.m.num(st.MiterLimit))
	}
	if dash := st.DashPattern(); len(dash) > 0 {
		fmt.Fprintf(&attrs, ` stroke-dasharray="%s"`, rc.m.nums(dash...))
		if st.DashOffset != 0 {
			fmt.Fprintf(&attrs, ` stroke-dashoffset="%s"`, rc.m.num(st.DashOffset))
		}
	}
	fmt.Fprintf(&rc.body, `<path d="%s"%s/>`, rc.m.pathData(shape.PathElements(curveTolerance)), attrs.String())
}

// Text returns the text engine used to lay out text.
func (rc *RenderContext) Text() *text.Engine { return rc.engine }

// DrawText writes layout as a <text> element with one <tspan> per span
// of equal direction and color. Span positions come from the engine's
// layout, so lines wrap where they do on every other backend.
func (rc *RenderContext) DrawText(layout *text.Layout, pos vg.Point) {
	if !rc.sess.Begin("DrawText") {
		return
	}
	if layout == nil {
		rc.sess.Record(vg.InvalidInputf("DrawText: nil layout"))
		return
	}
	spans := layout.Spans()
	if len(spans) == 0 {
		return
	}
	cfg := layout.Config()
	fmt.Fprintf(&rc.body, `<text font-family="%s" font-size="%s"`, escape(layout.Family().Name()), rc.m.num(layout.FontSize()))
	if cfg.Weight != 0 && cfg.Weight != vg.Normal {
		fmt.Fprintf(&rc.body, ` font-weight="%d"`, cfg.Weight)
	}
	if cfg.Style == vg.Italic {
		rc.body.WriteString(` font-style="italic"`)
	}
	rc.body.WriteString(` xml:space="preserve">`)
	for _, sp := range spans {
		x := pos.X + sp.X0
		dir := ""
		if sp.RTL {
			x = pos.X + sp.X1
			dir = ` direction="rtl" unicode-bidi="embed"`
		}
		fmt.Fprintf(&rc.body, `<tspan x="%s" y="%s"%s%s>%s</tspan>`,
			rc.m.num(x), rc.m.num(pos.Y+sp.Baseline), dir,
			rc.m.colorAttrs("fill", "fill-opacity", sp.Color), escape(sp.Text(layout)))
	}
	rc.body.WriteString("</text>")
}

// Save pushes the transform and clip.
func (rc *RenderContext) Save() error {
	if err := rc.sess.Save(); err != nil {
		return err
	}
	rc.sess.State().groups = 0
	return nil
}

// Restore closes the groups opened since the matching Save.
func (rc *RenderContext) Restore() error {
	popped, err := rc.sess.Restore()
	if err != nil {
		return err
	}
	rc.popGroups(popped.State.groups)
	return nil
}

// Finish closes every open group and adds the markup to the document.
func (rc *RenderContext) Finish() error {
	return rc.sess.Finish(func() error {
		rc.popGroups(len(rc.open))
		rc.bitmap.commit(rc.body.Bytes(), rc.cleared)
		rc.body = bytes.Buffer{}
		return nil
	})
}

// Transform post-multiplies the current transform by a, opening a
// transformed group.
func (rc *RenderContext) Transform(a vg.Affine) {
	if !rc.sess.ApplyTransform(a) {
		return
	}
	rc.pushGroup(fmt.Sprintf(`<g transform="%s">`, rc.m.matrix(a)))
	rc.sess.State().groups++
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

// DrawImage draws the whole image scaled into dst.
func (rc *RenderContext) DrawImage(img *Image, dst vg.Rect, interp vg.InterpolationMode) {
	src := vg.Rect{}
	if img != nil {
		src = img.Size().ToRect()
	}
	rc.DrawImageArea(img, src, dst, interp)
}

// DrawImageArea embeds the pixels under src, widened to whole pixels,
// as a PNG <image> scaled into dst.
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
	crop := src.Expand().ToImageRect().Intersect(img.rgba.Rect)
	if crop.Empty() {
		return
	}
	// the widened crop maps to a proportionally widened destination
	sx, sy := dst.Width()/src.Width(), dst.Height()/src.Height()
	out := vg.Rect{
		X0: dst.X0 + (float64(crop.Min.X)-src.X0)*sx,
		Y0: dst.Y0 + (float64(crop.Min.Y)-src.Y0)*sy,
		X1: dst.X0 + (float64(crop.Max.X)-src.X0)*sx,
		Y1: dst.Y0 + (float64(crop.Max.Y)-src.Y0)*sy,
	}
	uri, err := pngDataURI(img.rgba.SubImage(crop).(*image.RGBA))
	if err != nil {
		rc.sess.Record(&vg.BackendError{Backend: backendName, Op: "DrawImageArea", Err: err})
		return
	}
	rendering := "optimizeQuality"
	if interp == vg.NearestNeighbor {
		rendering = "optimizeSpeed"
	}
	wrapped := out != dst
	if wrapped {
		id := rc.bitmap.newID("c")
		rc.bitmap.define(fmt.Sprintf(`<clipPath id="%s" clipPathUnits="userSpaceOnUse"><path d="%s"/></clipPath>`,
			id, rc.m.pathData(dst.PathElements(0))))
		fmt.Fprintf(&rc.body, `<g clip-path="url(#%s)">`, id)
	}
	fmt.Fprintf(&rc.body, `<image x="%s" y="%s" width="%s" height="%s" preserveAspectRatio="none" image-rendering="%s" xlink:href="%s"/>`,
		rc.m.num(out.X0), rc.m.num(out.Y0), rc.m.num(out.Width()), rc.m.num(out.Height()), rendering, uri)
	if wrapped {
		rc.body.WriteString("</g>")
	}
}

// CaptureImageArea is not supported: a document has no pixels to read.
func (rc *RenderContext) CaptureImageArea(vg.Rect) (*Image, error) {
	if !rc.sess.Begin("CaptureImageArea") {
		return nil, &vg.MisuseError{Op: "CaptureImageArea", Err: vg.ErrFinished}
	}
	return nil, &vg.UnsupportedError{Backend: backendName, Op: "CaptureImageArea", Detail: "svg documents are not rasterized"}
}

// BlurredRect draws rect through a Gaussian blur filter with standard
// deviation blurRadius in user units.
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
	attrs := rc.paint("fill", brush, rect)
	if blurRadius > 0 {
		id := rc.bitmap.newID("f")
		region := rect.Inset(-blurExtent * blurRadius)
		rc.bitmap.define(fmt.Sprintf(`<filter id="%s" filterUnits="userSpaceOnUse" x="%s" y="%s" width="%s" height="%s"><feGaussianBlur stdDeviation="%s"/></filter>`,
			id, rc.m.num(region.X0), rc.m.num(region.Y0), rc.m.num(region.Width()), rc.m.num(region.Height()), rc.m.num(blurRadius)))
		attrs += fmt.Sprintf(` filter="url(#%s)"`, id)
	}
	fmt.Fprintf(&rc.body, `<rect x="%s" y="%s" width="%s" height="%s"%s/>`,
		rc.m.num(rect.X0), rc.m.num(rect.Y0), rc.m.num(rect.Width()), rc.m.num(rect.Height()), attrs)
}
