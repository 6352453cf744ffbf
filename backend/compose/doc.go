// Package compose is the composition backend: drawing is recorded into
// a retained display list instead of being rasterized.
//
// A RenderContext appends typed commands to the Scene of its Bitmap.
// Shapes, brushes, images and text layouts live in a ResourcePool and
// are referenced by index, so a scene can be inspected, replayed many
// times and exported.
//
// # Replay
//
// Replay plays a scene onto any backend context. Brushes, images and
// layouts are rebuilt through the target's own constructors:
//
//	rc := rasterBitmap.RenderContext()
//	err := compose.Replay[raster.Brush, *raster.Image, *text.Engine, *text.Layout](scene, rc)
//
// # Output
//
// Bitmap.ToImage replays onto a raster bitmap. Bitmap.WriteTo exports a
// one-page PDF through github.com/tdewolff/canvas. Fills, strokes and
// glyphs export as exact outlines. Gradients become their midpoint
// color, clips are ignored and blurred rectangles lose their blur; each
// degradation is logged once per export at warn level.
package compose
