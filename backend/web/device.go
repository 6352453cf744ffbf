package web

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/gogpu/vg"
)

// Device creates canvas-backed targets.
type Device struct {
	factory CanvasFactory
}

// NewDevice creates a web device. Outside the browser it needs
// WithCanvasFactory and otherwise reports vg.ErrNotSupported.
func NewDevice(opts ...Option) (*Device, error) {
	o := options{factory: defaultCanvasFactory}
	for _, opt := range opts {
		opt(&o)
	}
	if o.factory == nil {
		return nil, &vg.UnsupportedError{Backend: backendName, Op: "NewDevice", Detail: "no canvas factory outside js/wasm"}
	}
	return &Device{factory: o.factory}, nil
}

// BitmapTarget creates a canvas of width by height pixels. scale maps
// user units to pixels.
func (d *Device) BitmapTarget(width, height int, scale float64) (*Bitmap, error) {
	if width <= 0 || height <= 0 {
		return nil, vg.InvalidInputf("bitmap size %dx%d", width, height)
	}
	if !(scale > 0) || math.IsInf(scale, 0) {
		return nil, vg.InvalidInputf("bitmap scale %v", scale)
	}
	c, err := d.factory(width, height)
	if err != nil {
		return nil, &vg.BackendError{Backend: backendName, Op: "BitmapTarget", Err: err}
	}
	vg.Logger().Debug("web: canvas created", "width", width, "height", height, "scale", scale)
	return &Bitmap{canvas: c, width: width, height: height, scale: scale}, nil
}

// Bitmap is a canvas with a fixed size and scale.
type Bitmap struct {
	canvas        Canvas2D
	width, height int
	scale         float64
}

// RenderContext returns a new context drawing onto the canvas.
func (b *Bitmap) RenderContext() *RenderContext {
	return NewRenderContext(b.canvas, b.width, b.height, b.scale)
}

// Canvas returns the underlying canvas.
func (b *Bitmap) Canvas() Canvas2D { return b.canvas }

// Width returns the width in pixels.
func (b *Bitmap) Width() int { return b.width }

// Height returns the height in pixels.
func (b *Bitmap) Height() int { return b.height }

// Scale returns the user-to-pixel scale.
func (b *Bitmap) Scale() float64 { return b.scale }

// ToImage reads the canvas pixels back.
func (b *Bitmap) ToImage() (image.Image, error) {
	buf, err := b.canvas.GetImageData(0, 0, b.width, b.height)
	if err != nil {
		return nil, &vg.BackendError{Backend: backendName, Op: "ToImage", Err: err}
	}
	if len(buf) != b.width*b.height*4 {
		return nil, &vg.BackendError{Backend: backendName, Op: "ToImage",
			Err: fmt.Errorf("web: image data has %d bytes, want %d", len(buf), b.width*b.height*4)}
	}
	return &image.NRGBA{Pix: buf, Stride: b.width * 4, Rect: image.Rect(0, 0, b.width, b.height)}, nil
}

// WriteTo encodes the canvas pixels as PNG.
func (b *Bitmap) WriteTo(w io.Writer) (int64, error) {
	img, err := b.ToImage()
	if err != nil {
		return 0, err
	}
	cw := &countingWriter{w: w}
	if err := png.Encode(cw, img); err != nil {
		return cw.n, fmt.Errorf("web: encode png: %w", err)
	}
	return cw.n, nil
}

// SaveFile writes the canvas pixels to path as PNG.
func (b *Bitmap) SaveFile(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if _, err := b.WriteTo(w); err != nil {
		_ = f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
