package svg

import "github.com/gogpu/vg/text"

// Option configures a Device.
type Option func(*options)

type options struct {
	minify    bool
	precision int
	title     string
	engine    *text.Engine
}

func defaultOptions() options {
	return options{
		precision: 6,
		engine:    nil, // text.Default() if nil
	}
}

// WithMinify minifies documents written by Bitmap.WriteTo.
func WithMinify(on bool) Option {
	return func(o *options) {
		o.minify = on
	}
}

// WithPrecision sets the number of significant digits of coordinates.
// -1 keeps full precision. The default is 6.
func WithPrecision(digits int) Option {
	return func(o *options) {
		o.precision = digits
	}
}

// WithTitle adds a <title> element to every document.
func WithTitle(title string) Option {
	return func(o *options) {
		o.title = title
	}
}

// WithTextEngine sets the engine that measures and lays out text.
// By default the process-wide text.Default engine is shared.
func WithTextEngine(e *text.Engine) Option {
	return func(o *options) {
		o.engine = e
	}
}
