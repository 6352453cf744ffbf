// Package raster is the software backend. It draws into a premultiplied
// *image.RGBA.
//
// Every fill, stroke, clip and glyph run goes through the same steps:
//
//  1. The shape is flattened or stroked and mapped to device space
//     (internal/geom).
//  2. The outline is rasterized to an antialiased coverage mask with the
//     nonzero or even-odd rule (internal/coverage).
//  3. The mask is intersected with the clip mask of the current frame.
//  4. The brush is composited through the mask with
//     golang.org/x/image/draw.DrawMask and the Over operator.
//
// Clips are coverage masks too, so clipped edges stay antialiased.
// Images are resampled with x/image/draw's NearestNeighbor or BiLinear
// transformers using the clip as the destination mask.
//
// # Example
//
//	dev, _ := raster.NewDevice()
//	bm, _ := dev.BitmapTarget(256, 256, 2)
//	rc := bm.RenderContext()
//	rc.Fill(vg.NewCircle(vg.Pt(64, 64), 40), rc.SolidBrush(vg.Red))
//	if err := rc.Finish(); err != nil {
//	    log.Fatal(err)
//	}
//	_ = bm.SaveFile("circle.png")
package raster
