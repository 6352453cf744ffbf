// Package gpu is the GPU-accelerated backend.
//
// A RenderContext does not touch pixels while drawing. It encodes a
// Frame of draws for stencil-then-cover rendering and submits it to the
// device Executor on Finish:
//
//   - Fills become triangle fans anchored at the first point of each
//     subpath. A stencil pipeline counts winding (IncrementWrap and
//     DecrementWrap by face) or parity (Invert), then a cover quad
//     tests the stencil with CompareFunctionNotEqual and zeroes it.
//   - Strokes and glyphs are expanded to outlines and filled the same
//     way.
//   - Clips render into R8 clip attachments with the same two passes,
//     intersected with their parent clip.
//   - Images are textured quads with nearest or linear filtering.
//   - Blurred rectangles are quads shaded with the analytic coverage of
//     a Gaussian-blurred box.
//
// Vertices are float32 NDC coordinates. Pipeline state is described
// with github.com/gogpu/gputypes and github.com/gogpu/wgpu/hal types, so
// a hardware Executor can build its pipelines directly from a Frame.
//
// # Software execution
//
// The default executor is SoftwareExecutor, a CPU interpreter of the
// same pipeline state with 1x or 4x multisampling. It makes the backend
// usable headless:
//
//	dev, _ := gpu.NewDevice(gpu.WithSampleCount(4))
//	defer dev.Close()
//	bm, _ := dev.BitmapTarget(256, 256, 1)
//	rc := bm.RenderContext()
//	rc.Fill(vg.NewCircle(vg.Pt(128, 128), 100), rc.SolidBrush(vg.Blue))
//	err := rc.Finish()
package gpu
