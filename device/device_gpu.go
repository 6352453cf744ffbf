//go:build vg_gpu && !vg_svg

package device

import (
	"github.com/gogpu/vg"
	"github.com/gogpu/vg/backend/gpu"
	"github.com/gogpu/vg/text"
)

// Backend names the backend this build selected.
const Backend = "gpu"

// FileExt is the extension of files written by BitmapTarget.SaveFile.
const FileExt = "png"

type (
	Device        = gpu.Device
	BitmapTarget  = gpu.Bitmap
	RenderContext = gpu.RenderContext
	Brush         = gpu.Brush
	Image         = gpu.Image
	Text          = text.Engine
	TextLayout    = text.Layout
	Option        = gpu.Option
)

var _ vg.RenderContext[Brush, *Image, *Text, *TextLayout] = (*RenderContext)(nil)

// New creates the selected backend's device.
func New(opts ...Option) (*Device, error) {
	return gpu.NewDevice(opts...)
}
