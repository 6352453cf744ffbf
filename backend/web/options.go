package web

// Option configures a Device.
type Option func(*options)

type options struct {
	factory CanvasFactory
}

// WithCanvasFactory sets how bitmap targets get their canvas. In the
// browser the default creates detached <canvas> elements; elsewhere a
// factory is required.
func WithCanvasFactory(f CanvasFactory) Option {
	return func(o *options) {
		o.factory = f
	}
}
