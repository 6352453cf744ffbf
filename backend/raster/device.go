package raster

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/gogpu/vg"
	"github.com/gogpu/vg/text"
)

// Device creates bitmap targets.
type Device struct {
	opts options
}

// NewDevice creates a software device.
func NewDevice(opts ...Option) (*Device, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.engine == nil {
		o.engine = text.Default()
	}
	return &Device{opts: o}, nil
}

// BitmapTarget creates a width by height pixel bitmap. scale maps user
// units to pixels and becomes the base transform of its contexts.
func (d *Device) BitmapTarget(width, height int, scale float64) (*Bitmap, error) {
	if err := validateTarget(width, height, scale); err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if bg := d.opts.background; bg.A > 0 {
		draw.Draw(img, img.Rect, image.NewUniform(bg.PremulRGBA()), image.Point{}, draw.Src)
	}
	return &Bitmap{img: img, scale: scale, engine: d.opts.engine}, nil
}

func validateTarget(width, height int, scale float64) error {
	if width <= 0 || height <= 0 {
		return vg.InvalidInputf("bitmap size %dx%d", width, height)
	}
	if !(scale > 0) || math.IsInf(scale, 0) {
		return vg.InvalidInputf("bitmap scale %v", scale)
	}
	return nil
}

// Bitmap is a pixel surface.
type Bitmap struct {
	img    *image.RGBA
	scale  float64
	engine *text.Engine
}

// RenderContext returns a new context drawing into the bitmap.
func (b *Bitmap) RenderContext() *RenderContext {
	return newRenderContext(b.img, vg.Uniform(b.scale), b.engine)
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
		return 0, fmt.Errorf("raster: encode png: %w", err)
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
