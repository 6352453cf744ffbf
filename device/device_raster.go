//go:build !vg_svg && !vg_gpu && !vg_compose && !(js && wasm)

package device

import (
	"github.com/gogpu/vg"
	"github.com/gogpu/vg/backend/raster"
	"github.com/gogpu/vg/text"
)

// Backend names the backend this build selected.
const Backend = "raster"

// FileExt is the extension of files written by BitmapTarget.SaveFile.
const FileExt = "png"

type (
	Device        = raster.Device
	BitmapTarget  = raster.Bitmap
	RenderContext = raster.RenderContext
	Brush         = raster.Brush
	Image         = raster.Image
	Text          = text.Engine
	TextLayout    = text.Layout
	Option        = raster.Option
)

var _ vg.RenderContext[Brush, *Image, *Text, *TextLayout] = (*RenderContext)(nil)

// New creates the selected backend's device.
func New(opts ...Option) (*Device, error) {
	return raster.NewDevice(opts...)
}
