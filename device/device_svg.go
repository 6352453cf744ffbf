//go:build vg_svg

package device

import (
	"github.com/gogpu/vg"
	"github.com/gogpu/vg/backend/svg"
	"github.com/gogpu/vg/text"
)

// Backend names the backend this build selected.
const Backend = "svg"

// FileExt is the extension of files written by BitmapTarget.SaveFile.
const FileExt = "svg"

type (
	Device        = svg.Device
	BitmapTarget  = svg.Bitmap
	RenderContext = svg.RenderContext
	Brush         = svg.Brush
	Image         = svg.Image
	Text          = text.Engine
	TextLayout    = text.Layout
	Option        = svg.Option
)

var _ vg.RenderContext[Brush, *Image, *Text, *TextLayout] = (*RenderContext)(nil)

// New creates the selected backend's device.
func New(opts ...Option) (*Device, error) {
	return svg.NewDevice(opts...)
}
