package compose

import (
	"bufio"
	"image"
	"io"
	"math"
	"os"
	"slices"

	"github.com/gogpu/vg"
	"github.com/gogpu/vg/backend/raster"
	"github.com/gogpu/vg/text"
)

// Option configures a Device.
type Option func(*options)

type options struct {
	engine *text.Engine
}

// WithTextEngine sets the text engine used to build layouts while
// recording. By default the process-wide text.Default engine is shared.
func WithTextEngine(e *text.Engine) Option {
	return func(o *options) {
		o.engine = e
	}
}

// Device creates scene-recording bitmaps.
type Device struct {
	opts options
}

// NewDevice creates a composition device.
func NewDevice(opts ...Option) (*Device, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.engine == nil {
		o.engine = text.Default()
	}
	return &Device{opts: o}, nil
}

// BitmapTarget creates a width by height target. scale maps user units
// to pixels when the scene is rasterized or exported.
func (d *Device) BitmapTarget(width, height int, scale float64) (*Bitmap, error) {
	if width <= 0 || height <= 0 {
		return nil, vg.InvalidInputf("bitmap size %dx%d", width, height)
	}
	if !(scale > 0) || math.IsInf(scale, 0) {
		return nil, vg.InvalidInputf("bitmap scale %v", scale)
	}
	return &Bitmap{scene: newScene(width, height, scale), engine: d.opts.engine}, nil
}

// Bitmap accumulates the scenes of its finished contexts.
type Bitmap struct {
	scene  *Scene
	engine *text.Engine
}

// RenderContext returns a new context recording into the bitmap. Its
// commands join the scene when it finishes.
func (b *Bitmap) RenderContext() *RenderContext {
	return newRenderContext(b)
}

// commit appends commands wrapped in a save so transform and clip do
// not leak into later contexts.
func (b *Bitmap) commit(cmds []Command, open int) {
	if len(cmds) == 0 {
		return
	}
	s := b.scene
	s.commands = append(s.commands, SaveCommand{})
	s.commands = append(s.commands, cmds...)
	for range open + 1 {
		s.commands = append(s.commands, RestoreCommand{})
	}
	vg.Logger().Debug("compose: scene committed", "commands", len(cmds), "total", len(s.commands))
}

// Scene returns a snapshot of the commands committed so far.
func (b *Bitmap) Scene() *Scene {
	s := *b.scene
	s.commands = slices.Clone(b.scene.commands)
	return &s
}

// Width returns the width in pixels.
func (b *Bitmap) Width() int { return b.scene.width }

// Height returns the height in pixels.
func (b *Bitmap) Height() int { return b.scene.height }

// ToImage replays the scene onto a raster bitmap of the same size and
// scale.
func (b *Bitmap) ToImage() (image.Image, error) {
	return Rasterize(b.Scene(), b.engine)
}

// Rasterize replays s onto a new raster bitmap using engine for text.
func Rasterize(s *Scene, engine *text.Engine) (*image.RGBA, error) {
	dev, err := raster.NewDevice(raster.WithTextEngine(engine))
	if err != nil {
		return nil, err
	}
	bm, err := dev.BitmapTarget(s.width, s.height, s.scale)
	if err != nil {
		return nil, err
	}
	rc := bm.RenderContext()
	if err := Replay[raster.Brush, *raster.Image, *text.Engine, *text.Layout](s, rc); err != nil {
		_ = rc.Finish()
		return nil, err
	}
	if err := rc.Finish(); err != nil {
		return nil, err
	}
	return bm.RGBA(), nil
}

// WriteTo writes the scene as a one-page PDF.
func (b *Bitmap) WriteTo(w io.Writer) (int64, error) {
	return writePDF(w, b.Scene())
}

// SaveFile writes the scene to path as PDF.
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
