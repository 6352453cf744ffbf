package web

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-text/typesetting/segmenter"
	"github.com/gogpu/vg"
)

// Text lays out text with the canvas font engine. Lines wrap at the
// line break opportunities of the Unicode line breaking algorithm and
// are measured with measureText.
type Text struct {
	canvas Canvas2D
}

var _ vg.Text[*TextLayout] = (*Text)(nil)

// NewText creates a text engine measuring with c.
func NewText(c Canvas2D) *Text { return &Text{canvas: c} }

// FontFamily returns a family for any non-empty name. The browser falls
// back to a default face for names it does not know.
func (t *Text) FontFamily(name string) (vg.FontFamily, bool) {
	switch strings.ToLower(name) {
	case "":
		return vg.FontFamily{}, false
	case vg.SansSerif.Name():
		return vg.SansSerif, true
	case vg.Serif.Name():
		return vg.Serif, true
	case vg.Monospace.Name():
		return vg.Monospace, true
	case vg.SystemUI.Name():
		return vg.SystemUI, true
	}
	return vg.NewFontFamily(name), true
}

// LoadFont is not supported; fonts are loaded by the page with CSS.
func (t *Text) LoadFont([]byte) (vg.FontFamily, error) {
	return vg.FontFamily{}, &vg.UnsupportedError{Backend: backendName, Op: "LoadFont", Detail: "load fonts with CSS @font-face"}
}

// cssFont returns the canvas font shorthand.
func cssFont(family vg.FontFamily, size float64, cfg vg.LayoutConfig) string {
	var sb strings.Builder
	if cfg.Style == vg.Italic {
		sb.WriteString("italic ")
	}
	if cfg.Weight != 0 && cfg.Weight != vg.Normal {
		sb.WriteString(cfg.Weight.String())
		sb.WriteByte(' ')
	}
	sb.WriteString(strconv.FormatFloat(size, 'g', -1, 64))
	sb.WriteString("px ")
	if family.IsGeneric() {
		sb.WriteString(family.Name())
	} else {
		sb.WriteString(strconv.Quote(family.Name()))
	}
	return sb.String()
}

// NewTextLayout measures and wraps text.
func (t *Text) NewTextLayout(text string, font vg.FontFamily, size, maxWidth float64, opts ...vg.LayoutOption) (*TextLayout, error) {
	if err := vg.ValidateLayoutRequest(size, maxWidth); err != nil {
		return nil, err
	}
	if font.Name() == "" {
		return nil, vg.InvalidInputf("empty font family")
	}
	cfg := vg.NewLayoutConfig(opts...)
	l := &TextLayout{
		text:     text,
		font:     cssFont(font, size, cfg),
		family:   font,
		fontSize: size,
		maxWidth: maxWidth,
		cfg:      cfg,
	}
	t.canvas.Save()
	t.canvas.SetFont(l.font)
	b := newLayoutBuilder(t.canvas, text, size)
	b.build(l)
	t.canvas.Restore()
	return l, nil
}

// TextLayout is an immutable layout measured by the canvas. Lines run
// left to right; the canvas applies bidi reordering itself when
// drawing.
type TextLayout struct {
	text     string
	font     string
	family   vg.FontFamily
	fontSize float64
	maxWidth float64
	cfg      vg.LayoutConfig

	lines   []textLine
	runs    []textRun
	size    vg.Size
	wsWidth float64
	ink     vg.Rect
}

var _ vg.TextLayout = (*TextLayout)(nil)

type textLine struct {
	metric vg.LineMetric
	x      float64 // alignment offset
	width  float64 // without trailing whitespace
	edges  []edge  // cluster boundaries of the line without its break
}

// edge is a cluster boundary at a byte offset, x relative to the line
// start.
type edge struct {
	offset int
	x      float64
}

// textRun is drawn with one fillText call; x and y are relative to the
// layout origin, y on the baseline.
type textRun struct {
	text  string
	x, y  float64
	color vg.Color
}

// lineRange is one line in rune indices.
type lineRange struct {
	start, end int // end includes trailing whitespace and the break
	content    int // start of the mandatory break, or end
	ws         int // start of the trailing whitespace
}

type layoutBuilder struct {
	canvas   Canvas2D
	runes    []rune
	offsets  []int // byte offset of each rune, plus len(text)
	ascent   float64
	descent  float64
	maxWidth float64
}

func newLayoutBuilder(c Canvas2D, text string, size float64) *layoutBuilder {
	b := &layoutBuilder{canvas: c, runes: []rune(text)}
	b.offsets = make([]int, 0, len(b.runes)+1)
	for i := range text {
		b.offsets = append(b.offsets, i)
	}
	b.offsets = append(b.offsets, len(text))
	m := c.MeasureText(text)
	b.ascent, b.descent = m.FontBoundingBoxAscent, m.FontBoundingBoxDescent
	if b.ascent+b.descent <= 0 {
		b.ascent, b.descent = 0.8*size, 0.2*size
	}
	return b
}

func (b *layoutBuilder) width(start, end int) float64 {
	if end <= start {
		return 0
	}
	return b.canvas.MeasureText(string(b.runes[start:end])).Width
}

func isBreakRune(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', 0x85, 0x2028, 0x2029:
		return true
	}
	return false
}

func (b *layoutBuilder) trimBreaks(start, end int) int {
	for end > start && isBreakRune(b.runes[end-1]) {
		end--
	}
	return end
}

func (b *layoutBuilder) trimSpace(start, end int) int {
	for end > start && unicode.IsSpace(b.runes[end-1]) {
		end--
	}
	return end
}

func (b *layoutBuilder) lineRange(start, end int) lineRange {
	return lineRange{start: start, end: end, content: b.trimBreaks(start, end), ws: b.trimSpace(start, end)}
}

// wrap breaks the text greedily at line break opportunities. A word
// wider than maxWidth is broken between graphemes.
func (b *layoutBuilder) wrap(maxWidth float64) []lineRange {
	bounded := !vg.IsUnbounded(maxWidth)
	var lines []lineRange
	var seg segmenter.Segmenter
	seg.Init(b.runes)
	it := seg.LineIterator()
	start, hard := 0, false
	for it.Next() {
		l := it.Line()
		end := l.Offset + len(l.Text)
		if bounded && l.Offset > start && b.width(start, b.trimSpace(start, end)) > maxWidth {
			lines = append(lines, b.lineRange(start, l.Offset))
			start = l.Offset
		}
		if bounded && b.width(start, b.trimSpace(start, end)) > maxWidth {
			var gseg segmenter.Segmenter
			gseg.Init(b.runes[l.Offset:b.trimSpace(l.Offset, end)])
			git := gseg.GraphemeIterator()
			for git.Next() {
				g := git.Grapheme()
				gs := l.Offset + g.Offset
				if gs > start && b.width(start, gs+len(g.Text)) > maxWidth {
					lines = append(lines, b.lineRange(start, gs))
					start = gs
				}
			}
		}
		hard = end > l.Offset && isBreakRune(b.runes[end-1])
		if hard {
			lines = append(lines, b.lineRange(start, end))
			start = end
		}
	}
	n := len(b.runes)
	if start < n {
		lines = append(lines, b.lineRange(start, n))
	}
	if len(lines) == 0 || hard {
		// empty text or a trailing break: one more empty line
		lines = append(lines, lineRange{start: n, end: n, content: n, ws: n})
	}
	return lines
}

func (b *layoutBuilder) build(l *TextLayout) {
	ranges := b.wrap(l.maxWidth)
	y := 0.0
	for _, r := range ranges {
		ln := textLine{
			metric: vg.LineMetric{
				StartOffset:        b.offsets[r.start],
				EndOffset:          b.offsets[r.end],
				TrailingWhitespace: b.offsets[r.end] - b.offsets[r.ws],
				Baseline:           b.ascent,
				Height:             b.ascent + b.descent,
				YOffset:            y,
			},
			width: b.width(r.start, r.ws),
		}
		ln.edges = b.edges(r)
		y += ln.metric.Height
		l.size.Width = math.Max(l.size.Width, ln.width)
		l.wsWidth = math.Max(l.wsWidth, b.width(r.start, r.content))
		l.lines = append(l.lines, ln)
	}
	l.size.Height = y

	alignWidth := l.size.Width
	if !vg.IsUnbounded(l.maxWidth) {
		alignWidth = l.maxWidth
	}
	first := true
	for i, r := range ranges {
		ln := &l.lines[i]
		switch l.cfg.Alignment {
		case vg.AlignEnd:
			ln.x = alignWidth - ln.width
		case vg.AlignCenter:
			ln.x = (alignWidth - ln.width) / 2
		}
		if r.ws == r.start {
			continue
		}
		base := ln.metric.YOffset + ln.metric.Baseline
		m := b.canvas.MeasureText(string(b.runes[r.start:r.ws]))
		ink := vg.Rect{X0: ln.x - m.ActualBoundingBoxLeft, Y0: base - m.ActualBoundingBoxAscent, X1: ln.x + m.ActualBoundingBoxRight, Y1: base + m.ActualBoundingBoxDescent}
		if ink.IsEmpty() {
			ink = vg.Rect{X0: ln.x, Y0: ln.metric.YOffset, X1: ln.x + ln.width, Y1: ln.metric.YOffset + ln.metric.Height}
		}
		if first {
			l.ink, first = ink, false
		} else {
			l.ink = l.ink.Union(ink)
		}
		l.runs = b.colorRuns(l.runs, l.cfg, r, ln.x, base)
	}
}

// edges returns the grapheme boundaries of the line content.
func (b *layoutBuilder) edges(r lineRange) []edge {
	out := []edge{{offset: b.offsets[r.start]}}
	if r.content == r.start {
		return out
	}
	var seg segmenter.Segmenter
	seg.Init(b.runes[r.start:r.content])
	it := seg.GraphemeIterator()
	for it.Next() {
		g := it.Grapheme()
		end := r.start + g.Offset + len(g.Text)
		out = append(out, edge{offset: b.offsets[end], x: b.width(r.start, end)})
	}
	return out
}

// colorRuns splits the visible text of a line where its color changes.
func (b *layoutBuilder) colorRuns(runs []textRun, cfg vg.LayoutConfig, r lineRange, x, base float64) []textRun {
	start := r.start
	col := cfg.ColorAt(b.offsets[start])
	for i := r.start + 1; i <= r.ws; i++ {
		var c vg.Color
		if i < r.ws {
			c = cfg.ColorAt(b.offsets[i])
			if c == col {
				continue
			}
		}
		runs = append(runs, textRun{
			text:  string(b.runes[start:i]),
			x:     x + b.width(r.start, start),
			y:     base,
			color: col,
		})
		start, col = i, c
	}
	return runs
}

// Text returns the laid out text.
func (l *TextLayout) Text() string { return l.text }

// Font returns the CSS font shorthand used to measure and draw.
func (l *TextLayout) Font() string { return l.font }

// Family returns the font family.
func (l *TextLayout) Family() vg.FontFamily { return l.family }

// FontSize returns the font size in user units.
func (l *TextLayout) FontSize() float64 { return l.fontSize }

// Config returns the resolved layout options.
func (l *TextLayout) Config() vg.LayoutConfig { return l.cfg }

// Size returns the widest line without trailing whitespace by the total
// line height.
func (l *TextLayout) Size() vg.Size { return l.size }

// TrailingWhitespaceWidth returns the widest line including trailing
// whitespace.
func (l *TextLayout) TrailingWhitespaceWidth() float64 { return l.wsWidth }

// ImageBounds bounds the inked area reported by measureText.
func (l *TextLayout) ImageBounds() vg.Rect { return l.ink }

// LineCount returns the number of visual lines.
func (l *TextLayout) LineCount() int { return len(l.lines) }

// LineText returns the text of line i including trailing whitespace.
func (l *TextLayout) LineText(i int) (string, bool) {
	if i < 0 || i >= len(l.lines) {
		return "", false
	}
	m := l.lines[i].metric
	return l.text[m.StartOffset:m.EndOffset], true
}

// LineMetric returns the metrics of line i.
func (l *TextLayout) LineMetric(i int) (vg.LineMetric, bool) {
	if i < 0 || i >= len(l.lines) {
		return vg.LineMetric{}, false
	}
	return l.lines[i].metric, true
}

// HitTestPoint maps p, relative to the layout origin, to the nearest
// cluster boundary.
func (l *TextLayout) HitTestPoint(p vg.Point) vg.HitTestPoint {
	li, inside := len(l.lines)-1, false
	switch first := l.lines[0].metric; {
	case p.Y < first.YOffset:
		li = 0
	default:
		for i, ln := range l.lines {
			if p.Y < ln.metric.YOffset+ln.metric.Height {
				li, inside = i, true
				break
			}
		}
	}
	ln := &l.lines[li]
	x := p.X - ln.x
	if x < 0 || x > ln.width {
		inside = false
	}
	edges := ln.edges
	switch {
	case x <= 0:
		return vg.HitTestPoint{Idx: edges[0].offset, IsInside: inside}
	case x >= edges[len(edges)-1].x:
		return vg.HitTestPoint{Idx: edges[len(edges)-1].offset, IsInside: inside}
	}
	for k := 1; k < len(edges); k++ {
		if x < edges[k].x {
			if x > (edges[k-1].x+edges[k].x)/2 {
				return vg.HitTestPoint{Idx: edges[k].offset, IsInside: inside}
			}
			return vg.HitTestPoint{Idx: edges[k-1].offset, IsInside: inside}
		}
	}
	return vg.HitTestPoint{Idx: edges[len(edges)-1].offset, IsInside: inside}
}

// HitTestTextPosition returns the baseline point at the leading edge of
// the cluster containing idx.
func (l *TextLayout) HitTestTextPosition(idx int) vg.HitTestPosition {
	idx = max(0, min(idx, len(l.text)))
	li := 0
	for i, ln := range l.lines {
		if ln.metric.StartOffset <= idx {
			li = i
		}
	}
	ln := &l.lines[li]
	e := ln.edges[0]
	for _, c := range ln.edges {
		if c.offset <= idx {
			e = c
		}
	}
	return vg.HitTestPosition{
		Point: vg.Pt(ln.x+e.x, ln.metric.YOffset+ln.metric.Baseline),
		Line:  li,
	}
}
