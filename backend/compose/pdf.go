package compose

import (
	"fmt"
	"image"
	"io"
	"iter"
	"math"

	"github.com/gogpu/vg"
	"github.com/gogpu/vg/internal/geom"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
)

// mmPerPixel maps target pixels to PDF millimeters at 96 DPI.
const mmPerPixel = 25.4 / 96

// pdfExport draws a scene onto a canvas page. Paths, strokes and glyphs
// export exactly as filled outlines; gradients, clips and blur degrade.
type pdfExport struct {
	scene  *Scene
	ctx    *canvas.Context
	page   vg.Affine // user to page at the base transform
	ctm    vg.Affine
	stack  []vg.Affine
	warned map[string]bool
}

func writePDF(w io.Writer, s *Scene) (int64, error) {
	width := float64(s.width) * mmPerPixel
	height := float64(s.height) * mmPerPixel

	cw := &countingWriter{w: w}
	writer := pdf.New(cw, width, height, nil)
	c := canvas.New(width, height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)

	e := &pdfExport{
		scene:  s,
		ctx:    ctx,
		page:   vg.Uniform(mmPerPixel * s.scale),
		ctm:    vg.Identity(),
		warned: make(map[string]bool),
	}
	e.run()

	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return cw.n, &vg.BackendError{Backend: backendName, Op: "WriteTo", Err: fmt.Errorf("write pdf: %w", err)}
	}
	return cw.n, nil
}

func (e *pdfExport) warn(kind, msg string) {
	if e.warned[kind] {
		return
	}
	e.warned[kind] = true
	vg.Logger().Warn(msg, "backend", backendName, "format", "pdf")
}

func (e *pdfExport) device() vg.Affine { return e.page.Multiply(e.ctm) }

func (e *pdfExport) tolerance() float64 { return geom.Tolerance * mmPerPixel }

func (e *pdfExport) run() {
	pool := e.scene.pool
	for _, cmd := range e.scene.commands {
		switch c := cmd.(type) {
		case SaveCommand:
			e.stack = append(e.stack, e.ctm)
		case RestoreCommand:
			if n := len(e.stack); n > 0 {
				e.ctm = e.stack[n-1]
				e.stack = e.stack[:n-1]
			}
		case TransformCommand:
			e.ctm = e.ctm.Multiply(c.Affine)
		case ClipCommand:
			e.warn("clip", "compose: clip ignored in pdf export")
		case ClearCommand:
			r := vg.NewRect(0, 0, float64(e.scene.width), float64(e.scene.height))
			e.fillSeq(r.PathElements(0), vg.Uniform(mmPerPixel), c.Color, vg.NonZero)
		case ClearRegionCommand:
			e.fillSeq(c.Region.PathElements(0), vg.Uniform(mmPerPixel*e.scene.scale), c.Color, vg.NonZero)
		case FillCommand:
			b, _ := pool.Brush(c.Brush)
			e.fillSeq(geom.Fill(pool.Shape(c.Shape), e.device(), e.tolerance()), vg.Identity(), e.color(b), c.Rule)
		case StrokeCommand:
			b, _ := pool.Brush(c.Brush)
			e.fillSeq(e.strokeOutline(pool.Shape(c.Shape), c.Width, c.Style), vg.Identity(), e.color(b), vg.NonZero)
		case DrawTextCommand:
			l := pool.Layout(c.Layout)
			if l == nil {
				continue
			}
			m := e.device().Multiply(vg.Translate(c.Pos.X, c.Pos.Y))
			for _, run := range l.Paths() {
				e.fillSeq(geom.Fill(run.Path, m, e.tolerance()), vg.Identity(), run.Color, vg.NonZero)
			}
		case DrawImageCommand:
			e.drawImage(pool.Image(c.Image), c.Src, c.Dst)
		case BlurredRectCommand:
			e.warn("blur", "compose: blur dropped in pdf export")
			b, _ := pool.Brush(c.Brush)
			e.fillSeq(geom.Fill(c.Rect, e.device(), e.tolerance()), vg.Identity(), e.color(b), vg.NonZero)
		}
	}
}

func (e *pdfExport) color(b Brush) vg.Color {
	col, exact := b.flatColor()
	if !exact {
		e.warn("gradient", "compose: gradient exported as its midpoint color")
	}
	return col
}

func (e *pdfExport) strokeOutline(shape vg.Shape, width float64, style vg.StrokeStyle) iter.Seq[vg.PathElement] {
	tol := e.tolerance()
	if width == 0 {
		// one target pixel, independent of the transform
		return geom.StrokeOutline(geom.Fill(shape, e.device(), tol), mmPerPixel, style, tol)
	}
	return geom.Stroke(shape, e.device(), width, false, style, tol)
}

func (e *pdfExport) fillSeq(seq iter.Seq[vg.PathElement], m vg.Affine, col vg.Color, rule vg.FillRule) {
	if col.A <= 0 {
		return
	}
	p := toCanvasPath(geom.Transformed(seq, m))
	if p.Empty() {
		return
	}
	e.ctx.SetFillColor(col.Clamped().PremulRGBA())
	if rule == vg.EvenOdd {
		e.ctx.SetFillRule(canvas.EvenOdd)
	} else {
		e.ctx.SetFillRule(canvas.NonZero)
	}
	e.ctx.DrawPath(0, 0, p)
}

func (e *pdfExport) drawImage(img *Image, src, dst vg.Rect) {
	if img == nil {
		return
	}
	sr := image.Rect(int(math.Floor(src.X0)), int(math.Floor(src.Y0)), int(math.Ceil(src.X1)), int(math.Ceil(src.Y1)))
	sub := img.rgba.SubImage(sr)
	// cropped image pixels to page millimeters
	m := e.device().
		Multiply(vg.Translate(dst.X0, dst.Y0)).
		Multiply(vg.Scale(dst.Width()/float64(sr.Dx()), dst.Height()/float64(sr.Dy())))
	e.ctx.Push()
	e.ctx.SetView(canvas.Matrix{{m.A, m.B, m.C}, {m.D, m.E, m.F}})
	e.ctx.DrawImage(0, 0, sub, canvas.DPMM(1))
	e.ctx.Pop()
}

func toCanvasPath(seq iter.Seq[vg.PathElement]) *canvas.Path {
	p := &canvas.Path{}
	for el := range seq {
		switch el := el.(type) {
		case vg.MoveTo:
			p.MoveTo(el.Point.X, el.Point.Y)
		case vg.LineTo:
			p.LineTo(el.Point.X, el.Point.Y)
		case vg.QuadTo:
			p.QuadTo(el.Control.X, el.Control.Y, el.Point.X, el.Point.Y)
		case vg.CubicTo:
			p.CubeTo(el.Control1.X, el.Control1.Y, el.Control2.X, el.Control2.Y, el.Point.X, el.Point.Y)
		case vg.Close:
			p.Close()
		}
	}
	return p
}

// countingWriter counts the bytes the PDF writer produces.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
