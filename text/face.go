package text

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/go-text/typesetting/font"
	"github.com/gogpu/vg"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Face is one parsed font of a family.
type Face struct {
	Family string
	Weight vg.FontWeight
	Style  vg.FontStyle

	shape *font.Font
	sfnt  *sfnt.Font

	// mu guards buf; sfnt.Buffer is not safe for concurrent use.
	mu  sync.Mutex
	buf sfnt.Buffer
}

// Metrics are the vertical metrics of a face at one size, in pixels.
type Metrics struct {
	Ascent  float64
	Descent float64 // positive, below the baseline
	Height  float64 // recommended line height
}

// ParseFace parses TrueType or OpenType data. Family, weight and style
// come from the font's name table.
func ParseFace(data []byte) (*Face, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty font data", vg.ErrFontLoad)
	}
	sf, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", vg.ErrFontLoad, err)
	}
	gf, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", vg.ErrFontLoad, err)
	}
	f := &Face{shape: gf.Font, sfnt: sf, Weight: vg.Normal, Style: vg.Regular}

	family, err := sf.Name(&f.buf, sfnt.NameIDTypographicFamily)
	if err != nil || family == "" {
		family, err = sf.Name(&f.buf, sfnt.NameIDFamily)
	}
	if err != nil || family == "" {
		return nil, fmt.Errorf("%w: font has no family name", vg.ErrFontLoad)
	}
	f.Family = family
	if sub, err := sf.Name(&f.buf, sfnt.NameIDSubfamily); err == nil {
		sub = strings.ToLower(sub)
		switch {
		case strings.Contains(sub, "bold"):
			f.Weight = vg.Bold
		case strings.Contains(sub, "medium"):
			f.Weight = vg.Medium
		}
		if strings.Contains(sub, "italic") || strings.Contains(sub, "oblique") {
			f.Style = vg.Italic
		}
	}
	return f, nil
}

// Metrics returns the vertical metrics at size pixels per em.
func (f *Face) Metrics(size float64) Metrics {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, err := f.sfnt.Metrics(&f.buf, toFixed(size), xfont.HintingNone)
	if err != nil {
		return Metrics{Ascent: size * 0.8, Descent: size * 0.2, Height: size * 1.2}
	}
	out := Metrics{
		Ascent:  fromFixed(m.Ascent),
		Descent: fromFixed(m.Descent),
		Height:  fromFixed(m.Height),
	}
	if out.Height < out.Ascent+out.Descent {
		out.Height = out.Ascent + out.Descent
	}
	return out
}

// Outline returns the outline of glyph gid at size pixels per em with
// the origin on the baseline and y pointing down. Glyphs without an
// outline return an empty path.
func (f *Face) Outline(gid sfnt.GlyphIndex, size float64) *vg.Path {
	f.mu.Lock()
	segs, err := f.sfnt.LoadGlyph(&f.buf, gid, toFixed(size), nil)
	f.mu.Unlock()
	p := vg.NewPath()
	if err != nil {
		return p
	}
	open := false
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				p.Close()
			}
			p.MoveTo(fromFixedP(s.Args[0]))
			open = true
		case sfnt.SegmentOpLineTo:
			p.LineTo(fromFixedP(s.Args[0]))
		case sfnt.SegmentOpQuadTo:
			p.QuadTo(fromFixedP(s.Args[0]), fromFixedP(s.Args[1]))
		case sfnt.SegmentOpCubeTo:
			p.CubicTo(fromFixedP(s.Args[0]), fromFixedP(s.Args[1]), fromFixedP(s.Args[2]))
		}
	}
	if open {
		p.Close()
	}
	return p
}

func (f *Face) matches(w vg.FontWeight, s vg.FontStyle) int {
	d := int(w) - int(f.Weight)
	if d < 0 {
		d = -d
	}
	if s != f.Style {
		d += 1000
	}
	return d
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func fromFixedP(p fixed.Point26_6) vg.Point {
	return vg.Point{X: fromFixed(p.X), Y: fromFixed(p.Y)}
}
