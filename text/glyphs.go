package text

import (
	"iter"

	"github.com/gogpu/vg"
)

// Glyph is a positioned glyph of a layout.
type Glyph struct {
	ID uint16
	// Origin is the pen position on the baseline relative to the layout
	// origin.
	Origin vg.Point
	// Offset is the byte offset of the glyph's cluster.
	Offset int
	Color  vg.Color
}

// Glyphs iterates over the glyphs of every line in visual order.
func (l *Layout) Glyphs() iter.Seq[Glyph] {
	return func(yield func(Glyph) bool) {
		for i := range l.lines {
			ln := &l.lines[i]
			base := ln.metric.YOffset + ln.metric.Baseline
			for _, g := range ln.glyphs {
				off := ln.clusters[g.cluster].start
				if !yield(Glyph{
					ID:     g.id,
					Origin: vg.Pt(g.x, base+g.y),
					Offset: off,
					Color:  l.cfg.ColorAt(off),
				}) {
					return
				}
			}
		}
	}
}

// GlyphOutline returns the outline of g in layout coordinates.
func (l *Layout) GlyphOutline(g Glyph) *vg.Path {
	return l.engine.outline(l.face, g.ID, l.fontSize).Transform(vg.Translate(g.Origin.X, g.Origin.Y))
}

// ColoredPath is a glyph outline run painted with one color.
type ColoredPath struct {
	Path  *vg.Path
	Color vg.Color
}

// Paths returns the outlines of all glyphs in layout coordinates,
// merged into one path per run of equal color.
func (l *Layout) Paths() []ColoredPath {
	l.pathsOnce.Do(func() {
		var cur *ColoredPath
		for g := range l.Glyphs() {
			outline := l.GlyphOutline(g)
			if outline.IsEmpty() {
				continue
			}
			if cur == nil || cur.Color != g.Color {
				l.paths = append(l.paths, ColoredPath{Path: vg.NewPath(), Color: g.Color})
				cur = &l.paths[len(l.paths)-1]
			}
			cur.Path.Append(outline, 0)
		}
	})
	return l.paths
}

// Span is a run of one line that shares direction and color. X0 and X1
// are its visual extent relative to the layout origin.
type Span struct {
	Line       int
	Start, End int // byte offsets
	X0, X1     float64
	Baseline   float64
	RTL        bool
	Color      vg.Color
}

// Text returns the text of the span within layout l.
func (s Span) Text(l *Layout) string { return l.text[s.Start:s.End] }

// Spans returns the visible text of each line split into runs of equal
// direction and color, for backends that render text natively. Trailing
// whitespace is omitted.
func (l *Layout) Spans() []Span {
	var spans []Span
	for i := range l.lines {
		ln := &l.lines[i]
		base := ln.metric.YOffset + ln.metric.Baseline
		first := len(spans)
		for _, c := range ln.clusters {
			if c.start >= ln.visible {
				continue
			}
			col := l.cfg.ColorAt(c.start)
			if n := len(spans); n > first {
				sp := &spans[n-1]
				if sp.RTL == c.rtl && sp.Color == col && sp.X1 == c.x0 && (sp.End == c.start || sp.Start == c.end) {
					sp.Start = min(sp.Start, c.start)
					sp.End = max(sp.End, c.end)
					sp.X1 = c.x1
					continue
				}
			}
			spans = append(spans, Span{
				Line:     i,
				Start:    c.start,
				End:      c.end,
				X0:       c.x0,
				X1:       c.x1,
				Baseline: base,
				RTL:      c.rtl,
				Color:    col,
			})
		}
	}
	return spans
}
