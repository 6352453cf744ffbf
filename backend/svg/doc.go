// Package svg is a vector backend that writes SVG 1.1 documents.
//
// Each Bitmap is one document. Contexts append their markup when they
// finish; a context that called Clear replaces what earlier contexts
// drew. Transforms and clips become nested <g> elements, gradients,
// clip paths and blur filters go to <defs>, and images are embedded as
// PNG data URIs.
//
// Text is written as <text> elements with one <tspan> per laid out
// span, so the viewer renders the glyphs but the positions match the
// other backends.
//
// Documents are vector only: Bitmap.ToImage and
// RenderContext.CaptureImageArea report vg.ErrNotSupported.
//
//	dev, _ := svg.NewDevice(svg.WithMinify(true))
//	bm, _ := dev.BitmapTarget(200, 100, 1)
//	rc := bm.RenderContext()
//	rc.Fill(vg.NewRect(10, 10, 190, 90), rc.SolidBrush(vg.Blue))
//	_ = rc.Finish()
//	err := bm.SaveFile("out.svg")
package svg
