package gpu

import "github.com/gogpu/vg/text"

// Option configures a Device.
type Option func(*options)

type options struct {
	executor    Executor
	sampleCount int
	engine      *text.Engine
}

func defaultOptions() options {
	return options{
		executor:    nil, // SoftwareExecutor if nil
		sampleCount: 4,
		engine:      nil, // text.Default() if nil
	}
}

// WithExecutor sets the executor frames are submitted to. The device
// takes ownership and closes it in Device.Close.
func WithExecutor(e Executor) Option {
	return func(o *options) {
		o.executor = e
	}
}

// WithSampleCount sets the multisample count of the default
// SoftwareExecutor: 1 or 4. It is ignored when WithExecutor is given.
func WithSampleCount(n int) Option {
	return func(o *options) {
		o.sampleCount = n
	}
}

// WithTextEngine sets the text engine used by contexts of the device.
// By default the process-wide text.Default engine is shared.
func WithTextEngine(e *text.Engine) Option {
	return func(o *options) {
		o.engine = e
	}
}
