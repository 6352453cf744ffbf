// Package device selects one backend at build time and exposes it under
// backend-neutral names.
//
// The build tags vg_svg, vg_gpu and vg_compose select the svg, gpu and
// compose backends, in that order of precedence. Without a tag js/wasm
// builds use the web backend and every other build uses raster.
//
//	img, err := device.Render(256, 256, 1, func(rc *device.RenderContext) error {
//		rc.Clear(vg.White)
//		rc.Fill(vg.NewCircle(vg.Pt(128, 128), 100), rc.SolidBrush(vg.Red))
//		return rc.Status()
//	})
package device

import (
	"image"
	"io"

	"github.com/gogpu/vg"
)

// Render draws into a new width by height target of the selected
// backend and returns its pixels. Backends without a pixel readback
// return vg.ErrNotSupported.
func Render(width, height int, scale float64, draw func(rc *RenderContext) error) (image.Image, error) {
	dev, err := New()
	if err != nil {
		return nil, err
	}
	if c, ok := any(dev).(io.Closer); ok {
		defer func() { _ = c.Close() }()
	}
	bm, err := dev.BitmapTarget(width, height, scale)
	if err != nil {
		return nil, err
	}
	rc := bm.RenderContext()
	if err := draw(rc); err != nil {
		if ferr := rc.Finish(); ferr != nil {
			vg.Logger().Debug("device: finish after draw error", "backend", Backend, "err", ferr)
		}
		return nil, err
	}
	if err := rc.Finish(); err != nil {
		return nil, err
	}
	return bm.ToImage()
}
