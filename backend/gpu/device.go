package gpu

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"sync"

	"github.com/gogpu/vg"
	"github.com/gogpu/vg/text"
)

// ErrDeviceClosed is recorded by contexts finished after Device.Close.
var ErrDeviceClosed = errors.New("gpu: device closed")

// Device owns an executor and creates bitmap targets rendered by it.
type Device struct {
	executor Executor
	engine   *text.Engine

	mu     sync.Mutex
	closed bool
}

// NewDevice creates a device. Without WithExecutor it runs frames on a
// SoftwareExecutor.
func NewDevice(opts ...Option) (*Device, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.executor == nil {
		sw, err := NewSoftwareExecutor(o.sampleCount)
		if err != nil {
			return nil, err
		}
		o.executor = sw
	}
	if o.engine == nil {
		o.engine = text.Default()
	}
	return &Device{executor: o.executor, engine: o.engine}, nil
}

// Close releases the executor. Contexts finished afterwards fail.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	return d.executor.Close()
}

// BitmapTarget creates a width by height pixel target. scale maps user
// units to pixels and becomes the base transform of its contexts.
func (d *Device) BitmapTarget(width, height int, scale float64) (*Bitmap, error) {
	if width <= 0 || height <= 0 {
		return nil, vg.InvalidInputf("bitmap size %dx%d", width, height)
	}
	if !(scale > 0) || math.IsInf(scale, 0) {
		return nil, vg.InvalidInputf("bitmap scale %v", scale)
	}
	return &Bitmap{
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		scale:  scale,
		device: d,
	}, nil
}

// Bitmap is the color target of frames. Its pixels change only when a
// context finishes.
type Bitmap struct {
	img    *image.RGBA
	scale  float64
	device *Device
}

// RenderContext returns a new context encoding a frame for the bitmap.
func (b *Bitmap) RenderContext() *RenderContext {
	return newRenderContext(b)
}

// submit executes f against the bitmap.
func (b *Bitmap) submit(f *Frame) error {
	if len(f.Draws) == 0 {
		return nil
	}
	d := b.device
	d.mu.Lock()
	closed := d.closed
	d.mu.Unlock()
	if closed {
		return ErrDeviceClosed
	}
	if err := d.executor.Execute(context.Background(), f, b.img); err != nil {
		return err
	}
	vg.Logger().Debug("gpu: frame submitted",
		"width", f.Width, "height", f.Height,
		"draws", len(f.Draws), "clips", len(f.Clips), "triangles", f.Triangles())
	return nil
}

// Width returns the width in pixels.
func (b *Bitmap) Width() int { return b.img.Rect.Dx() }

// Height returns the height in pixels.
func (b *Bitmap) Height() int { return b.img.Rect.Dy() }

// Scale returns the user-to-pixel scale.
func (b *Bitmap) Scale() float64 { return b.scale }

// ToImage returns a copy of the pixels.
func (b *Bitmap) ToImage() (image.Image, error) {
	return b.RGBA(), nil
}

// RGBA returns a copy of the premultiplied pixels.
func (b *Bitmap) RGBA() *image.RGBA {
	out := image.NewRGBA(b.img.Rect)
	copy(out.Pix, b.img.Pix)
	return out
}

// WriteTo encodes the bitmap as PNG.
func (b *Bitmap) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, b.img); err != nil {
		return 0, fmt.Errorf("gpu: encode png: %w", err)
	}
	return buf.WriteTo(w)
}

// SaveFile writes the bitmap to path as PNG.
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
