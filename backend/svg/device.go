package svg

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"io"
	"math"
	"os"

	"github.com/gogpu/vg"
	"github.com/gogpu/vg/text"
	"github.com/tdewolff/minify/v2"
	svgmin "github.com/tdewolff/minify/v2/svg"
)

const mediaType = "image/svg+xml"

// Device creates SVG document targets.
type Device struct {
	opts options
}

// NewDevice creates an SVG device.
func NewDevice(opts ...Option) (*Device, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.precision == 0 || o.precision < -1 {
		return nil, vg.InvalidInputf("svg precision %d", o.precision)
	}
	if o.engine == nil {
		o.engine = text.Default()
	}
	return &Device{opts: o}, nil
}

// BitmapTarget creates a document of width by height pixels. scale maps
// user units to pixels and becomes the outermost transform of every
// context.
func (d *Device) BitmapTarget(width, height int, scale float64) (*Bitmap, error) {
	if width <= 0 || height <= 0 {
		return nil, vg.InvalidInputf("bitmap size %dx%d", width, height)
	}
	if !(scale > 0) || math.IsInf(scale, 0) {
		return nil, vg.InvalidInputf("bitmap scale %v", scale)
	}
	return &Bitmap{
		width:  width,
		height: height,
		scale:  scale,
		opts:   d.opts,
		m:      markup{precision: d.opts.precision},
	}, nil
}

// Bitmap is an SVG document. Finished contexts append their markup in
// order.
type Bitmap struct {
	width, height int
	scale         float64
	opts          options
	m             markup

	defs   bytes.Buffer
	body   bytes.Buffer
	nextID int
}

// RenderContext returns a new context writing into the document.
func (b *Bitmap) RenderContext() *RenderContext {
	return newRenderContext(b)
}

// newID returns a document-unique element id.
func (b *Bitmap) newID(prefix string) string {
	b.nextID++
	return fmt.Sprintf("%s%d", prefix, b.nextID)
}

// define adds an element to <defs>.
func (b *Bitmap) define(def string) {
	b.defs.WriteString(def)
}

// commit adds the markup of a finished context. A context that cleared
// the surface replaces everything drawn before it.
func (b *Bitmap) commit(body []byte, cleared bool) {
	if cleared {
		b.body.Reset()
	}
	b.body.Write(body)
	vg.Logger().Debug("svg: context committed", "bytes", len(body), "cleared", cleared)
}

// Width returns the width in pixels.
func (b *Bitmap) Width() int { return b.width }

// Height returns the height in pixels.
func (b *Bitmap) Height() int { return b.height }

// Scale returns the user-to-pixel scale.
func (b *Bitmap) Scale() float64 { return b.scale }

// Document returns the SVG document without minification.
func (b *Bitmap) Document() []byte {
	var buf bytes.Buffer
	w, h := b.m.num(float64(b.width)), b.m.num(float64(b.height))
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" version="1.1" width="%s" height="%s" viewBox="0 0 %s %s">`, w, h, w, h)
	if b.opts.title != "" {
		fmt.Fprintf(&buf, "<title>%s</title>", escape(b.opts.title))
	}
	if b.defs.Len() > 0 {
		buf.WriteString("<defs>")
		buf.Write(b.defs.Bytes())
		buf.WriteString("</defs>")
	}
	buf.Write(b.body.Bytes())
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// ToImage is not supported: documents are not rasterized.
func (b *Bitmap) ToImage() (image.Image, error) {
	return nil, &vg.UnsupportedError{Backend: backendName, Op: "ToImage", Detail: "svg documents are not rasterized"}
}

// WriteTo writes the document, minified when the device was created
// with WithMinify.
func (b *Bitmap) WriteTo(w io.Writer) (int64, error) {
	doc := b.Document()
	if b.opts.minify {
		m := minify.New()
		m.AddFunc(mediaType, svgmin.Minify)
		out, err := m.Bytes(mediaType, doc)
		if err != nil {
			return 0, fmt.Errorf("svg: minify: %w", err)
		}
		doc = out
	}
	n, err := w.Write(doc)
	return int64(n), err
}

// SaveFile writes the document to path.
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
