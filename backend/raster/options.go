package raster

import (
	"github.com/gogpu/vg"
	"github.com/gogpu/vg/text"
)

// Option configures a Device.
type Option func(*options)

type options struct {
	engine     *text.Engine
	background vg.Color
}

func defaultOptions() options {
	return options{
		engine:     nil, // text.Default() if nil
		background: vg.Transparent,
	}
}

// WithTextEngine sets the text engine used by contexts of the device.
// By default the process-wide text.Default engine is shared.
func WithTextEngine(e *text.Engine) Option {
	return func(o *options) {
		o.engine = e
	}
}

// WithBackground sets the color new bitmaps are filled with.
func WithBackground(c vg.Color) Option {
	return func(o *options) {
		o.background = c
	}
}
