package text

import (
	"math"
	"sync"

	"github.com/gogpu/vg"
)

// Layout is an immutable, measured block of text. It implements
// vg.TextLayout and is safe for concurrent use.
type Layout struct {
	engine   *Engine
	text     string
	family   vg.FontFamily
	face     *Face
	fontSize float64
	maxWidth float64
	cfg      vg.LayoutConfig

	lines   []line
	size    vg.Size
	wsWidth float64
	ink     vg.Rect

	pathsOnce sync.Once
	paths     []ColoredPath
}

type line struct {
	metric   vg.LineMetric
	rtl      bool
	clusters []cluster // visual order, layout coordinates
	glyphs   []glyph
	content  int     // byte offset of the mandatory break, or EndOffset
	visible  int     // byte offset of the trailing whitespace
	caretEnd float64 // x of the end of the line content
	width    float64 // without trailing whitespace
	full     float64
}

func newLayout(e *Engine, text string, family vg.FontFamily, face *Face, size, maxWidth float64, cfg vg.LayoutConfig) *Layout {
	l := &Layout{
		engine:   e,
		text:     text,
		family:   family,
		face:     face,
		fontSize: size,
		maxWidth: maxWidth,
		cfg:      cfg,
	}
	wrapWidth := maxWidth
	if vg.IsUnbounded(maxWidth) {
		wrapWidth = math.Inf(1)
	}
	s := newShaper(text, face, size)
	m := face.Metrics(size)

	y := 0.0
	for _, sp := range s.wrap(wrapWidth) {
		clusters, glyphs, full := s.shapeLine(sp.start, sp.content, sp.rtl)
		ln := line{
			metric: vg.LineMetric{
				StartOffset:        s.offs[sp.start],
				EndOffset:          s.offs[sp.end],
				TrailingWhitespace: s.offs[sp.end] - s.offs[sp.ws],
				Baseline:           m.Ascent,
				Height:             m.Height,
				YOffset:            y,
			},
			rtl:      sp.rtl,
			clusters: clusters,
			glyphs:   glyphs,
			content:  s.offs[sp.content],
			visible:  s.offs[sp.ws],
			full:     full,
		}
		y += m.Height
		l.lines = append(l.lines, ln)
	}
	l.align(wrapWidth)
	l.measure()
	return l
}

// visibleExtent returns the horizontal extent of the clusters before the
// trailing whitespace.
func (ln *line) visibleExtent() (x0, x1 float64) {
	x0, x1 = math.Inf(1), math.Inf(-1)
	for _, c := range ln.clusters {
		if c.start < ln.visible {
			x0 = min(x0, c.x0)
			x1 = max(x1, c.x1)
		}
	}
	if x0 > x1 {
		if ln.rtl {
			return ln.full, ln.full
		}
		return 0, 0
	}
	return x0, x1
}

// align positions every line according to the configured alignment.
func (l *Layout) align(wrapWidth float64) {
	width := 0.0
	for i := range l.lines {
		x0, x1 := l.lines[i].visibleExtent()
		l.lines[i].width = x1 - x0
		width = max(width, x1-x0)
	}
	avail := width
	if !math.IsInf(wrapWidth, 1) {
		avail = wrapWidth
	}
	for i := range l.lines {
		ln := &l.lines[i]
		x0, x1 := ln.visibleExtent()
		// justified lines are set like start-aligned ones
		left := !ln.rtl
		if l.cfg.Alignment == vg.AlignEnd {
			left = ln.rtl
		}
		var dx float64
		switch {
		case l.cfg.Alignment == vg.AlignCenter:
			dx = (avail-(x1-x0))/2 - x0
		case left:
			dx = -x0
		default:
			dx = avail - x1
		}
		ln.shift(dx)
	}
}

func (ln *line) shift(dx float64) {
	for i := range ln.clusters {
		ln.clusters[i].x0 += dx
		ln.clusters[i].x1 += dx
	}
	for i := range ln.glyphs {
		ln.glyphs[i].x += dx
	}
	// the content end is the trailing edge of the logically last cluster
	ln.caretEnd = dx
	if ln.rtl {
		ln.caretEnd = dx + ln.full
	}
	last := -1
	for i, c := range ln.clusters {
		if last < 0 || c.start > ln.clusters[last].start {
			last = i
		}
	}
	if last >= 0 {
		ln.caretEnd = ln.clusters[last].trailing()
	}
}

// measure computes the size, the trailing whitespace width and the ink
// bounds.
func (l *Layout) measure() {
	first := true
	for i := range l.lines {
		ln := &l.lines[i]
		l.size.Width = max(l.size.Width, ln.width)
		l.size.Height += ln.metric.Height
		l.wsWidth = max(l.wsWidth, ln.full)
		base := ln.metric.YOffset + ln.metric.Baseline
		for _, g := range ln.glyphs {
			p := l.engine.outline(l.face, g.id, l.fontSize)
			if p.IsEmpty() {
				continue
			}
			bb := p.BoundingBox()
			bb = vg.NewRect(bb.X0+g.x, bb.Y0+base+g.y, bb.X1+g.x, bb.Y1+base+g.y)
			if first {
				l.ink, first = bb, false
			} else {
				l.ink = l.ink.Union(bb)
			}
		}
	}
}

// Text returns the layout text.
func (l *Layout) Text() string { return l.text }

// Size returns the width of the widest line without trailing whitespace
// by the total height.
func (l *Layout) Size() vg.Size { return l.size }

// TrailingWhitespaceWidth returns the width of the widest line including
// its trailing whitespace.
func (l *Layout) TrailingWhitespaceWidth() float64 { return l.wsWidth }

// ImageBounds returns the inked area relative to the layout origin. A
// layout without visible glyphs has empty bounds at the origin.
func (l *Layout) ImageBounds() vg.Rect { return l.ink }

// LineCount returns the number of visual lines, at least one.
func (l *Layout) LineCount() int { return len(l.lines) }

// LineText returns the text of a line including trailing whitespace.
func (l *Layout) LineText(i int) (string, bool) {
	if i < 0 || i >= len(l.lines) {
		return "", false
	}
	m := l.lines[i].metric
	return l.text[m.StartOffset:m.EndOffset], true
}

// LineMetric returns the metrics of a line.
func (l *Layout) LineMetric(i int) (vg.LineMetric, bool) {
	if i < 0 || i >= len(l.lines) {
		return vg.LineMetric{}, false
	}
	return l.lines[i].metric, true
}

// Face returns the face the layout was shaped with.
func (l *Layout) Face() *Face { return l.face }

// Family returns the requested family.
func (l *Layout) Family() vg.FontFamily { return l.family }

// FontSize returns the font size in pixels per em.
func (l *Layout) FontSize() float64 { return l.fontSize }

// MaxWidth returns the requested wrapping width.
func (l *Layout) MaxWidth() float64 { return l.maxWidth }

// Config returns the resolved layout options.
func (l *Layout) Config() vg.LayoutConfig { return l.cfg }

var _ vg.TextLayout = (*Layout)(nil)
