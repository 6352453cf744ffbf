//go:build js && wasm && !vg_svg && !vg_gpu && !vg_compose

package device

import (
	"github.com/gogpu/vg"
	"github.com/gogpu/vg/backend/web"
)

// Backend names the backend this build selected.
const Backend = "web"

// FileExt is the extension of files written by BitmapTarget.SaveFile.
const FileExt = "png"

type (
	Device        = web.Device
	BitmapTarget  = web.Bitmap
	RenderContext = web.RenderContext
	Brush         = web.Brush
	Image         = web.Image
	Text          = web.Text
	TextLayout    = web.TextLayout
	Option        = web.Option
)

var _ vg.RenderContext[Brush, *Image, *Text, *TextLayout] = (*RenderContext)(nil)

// New creates the selected backend's device.
func New(opts ...Option) (*Device, error) {
	return web.NewDevice(opts...)
}
