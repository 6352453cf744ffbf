// Package vg provides a device-independent 2D vector graphics vocabulary
// and the drawing contract implemented by its backends.
//
// # Overview
//
// Drawing code is written once against [RenderContext] and compiled
// against exactly one backend. The backend is picked at build time by the
// device package, which re-exports the active backend's concrete types
// under stable names, so calls resolve statically with no interface
// dispatch:
//
//	import "github.com/gogpu/vg/device"
//
//	dev, _ := device.New()
//	bm, _ := dev.BitmapTarget(256, 256, 1)
//	rc := bm.RenderContext()
//	rc.Clear(vg.White)
//	rc.Fill(vg.NewRect(16, 16, 240, 240), rc.SolidBrush(vg.Red))
//	if err := rc.Finish(); err != nil {
//		log.Fatal(err)
//	}
//	_ = bm.SaveFile("out.png")
//
// # Backends
//
// Five backends implement the contract:
//   - backend/raster: CPU rasterization into an RGBA image (default)
//   - backend/compose: retained display list, replay and PDF export (tag vg_compose)
//   - backend/gpu: stencil-then-cover frames for a GPU executor (tag vg_gpu)
//   - backend/svg: SVG document export (tag vg_svg)
//   - backend/web: HTML canvas 2D (js/wasm builds)
//
// # Coordinate System
//
// Origin at top-left, X increases right, Y increases down. Transforms use
// the [Affine] layout
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
//
// # Errors
//
// Drawing calls do not return errors. Failures are recorded in a sticky
// status slot read with RenderContext.Status and returned by
// RenderContext.Finish. Misuse of the contract (unbalanced Restore,
// drawing after Finish) is reported as a [*MisuseError].
package vg
