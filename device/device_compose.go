//go:build vg_compose && !vg_svg && !vg_gpu

package device

import (
	"github.com/gogpu/vg"
	"github.com/gogpu/vg/backend/compose"
	"github.com/gogpu/vg/text"
)

// Backend names the backend this build selected.
const Backend = "compose"

// FileExt is the extension of files written by BitmapTarget.SaveFile.
const FileExt = "pdf"

type (
	Device        = compose.Device
	BitmapTarget  = compose.Bitmap
	RenderContext = compose.RenderContext
	Brush         = compose.Brush
	Image         = compose.Image
	Text          = text.Engine
	TextLayout    = text.Layout
	Option        = compose.Option
)

var _ vg.RenderContext[Brush, *Image, *Text, *TextLayout] = (*RenderContext)(nil)

// New creates the selected backend's device.
func New(opts ...Option) (*Device, error) {
	return compose.NewDevice(opts...)
}
