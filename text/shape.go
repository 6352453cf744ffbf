package text

import (
	"slices"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/sfnt"
)

// shaperPool reuses HarfbuzzShaper instances. HarfbuzzShaper keeps
// internal buffers and is not safe for concurrent use.
var shaperPool = sync.Pool{
	New: func() any {
		return &shaping.HarfbuzzShaper{}
	},
}

var defaultLanguage = language.NewLanguage("en")

// cluster is the smallest unit of text that maps to glyphs: one or more
// runes shaped together. x0 and x1 are its visual extent.
type cluster struct {
	start, end int // byte offsets into the layout text
	x0, x1     float64
	rtl        bool
}

// leading returns the x of the edge where the cluster's text begins.
func (c cluster) leading() float64 {
	if c.rtl {
		return c.x1
	}
	return c.x0
}

// trailing returns the x of the edge where the cluster's text ends.
func (c cluster) trailing() float64 {
	if c.rtl {
		return c.x0
	}
	return c.x1
}

// glyph is a positioned glyph. x and y are relative to the line origin
// on the baseline, y down.
type glyph struct {
	id      uint16
	x, y    float64
	cluster int // index into the line's clusters
}

// shaper shapes spans of one text with one face.
type shaper struct {
	text  string
	runes []rune
	offs  []int // byte offset of each rune, plus len(text)
	face  *Face
	gf    *font.Face
	size  float64
}

func newShaper(text string, face *Face, size float64) *shaper {
	s := &shaper{
		text: text,
		face: face,
		gf:   font.NewFace(face.shape),
		size: size,
	}
	s.runes = make([]rune, 0, len(text))
	s.offs = make([]int, 0, len(text)+1)
	for i, r := range text {
		s.runes = append(s.runes, r)
		s.offs = append(s.offs, i)
	}
	s.offs = append(s.offs, len(text))
	return s
}

// runeIndex returns the index of the rune starting at byte offset b.
func (s *shaper) runeIndex(b int) int {
	i, _ := slices.BinarySearch(s.offs, b)
	return i
}

// shapeLine lays out the runes [start, end) on one line. Clusters are
// returned in visual order starting at x = 0.
func (s *shaper) shapeLine(start, end int, rtl bool) ([]cluster, []glyph, float64) {
	if start >= end {
		return nil, nil, 0
	}
	levels := bidiLevels(s.runes[start:end], rtl)
	var (
		clusters []cluster
		glyphs   []glyph
		pen      float64
	)
	for _, r := range visualRuns(levels) {
		out := s.shapeRun(start+r.start, start+r.end, r.rtl())
		clusters, glyphs, pen = s.appendRun(clusters, glyphs, pen, &out, start+r.end, r.rtl())
	}
	return clusters, glyphs, pen
}

// advance returns the width of the runes [start, end) on one line.
func (s *shaper) advance(start, end int, rtl bool) float64 {
	_, _, w := s.shapeLine(start, end, rtl)
	return w
}

func (s *shaper) shapeRun(start, end int, rtl bool) shaping.Output {
	dir := di.DirectionLTR
	if rtl {
		dir = di.DirectionRTL
	}
	input := shaping.Input{
		Text:      s.runes,
		RunStart:  start,
		RunEnd:    end,
		Direction: dir,
		Face:      s.gf,
		Size:      toFixed(s.size),
		Script:    detectScript(s.runes[start:end]),
		Language:  defaultLanguage,
	}
	hb := shaperPool.Get().(*shaping.HarfbuzzShaper)
	defer shaperPool.Put(hb)
	return hb.Shape(input)
}

// appendRun converts shaper output into clusters and glyphs. Glyphs of
// out are in visual order; cluster indices are rune indices into s.runes.
func (s *shaper) appendRun(clusters []cluster, glyphs []glyph, pen float64, out *shaping.Output, runEnd int, rtl bool) ([]cluster, []glyph, float64) {
	starts := make([]int, 0, len(out.Glyphs))
	for _, g := range out.Glyphs {
		starts = append(starts, g.TextIndex())
	}
	slices.Sort(starts)
	starts = slices.Compact(starts)
	next := func(ci int) int {
		i, _ := slices.BinarySearch(starts, ci)
		if i+1 < len(starts) {
			return starts[i+1]
		}
		return runEnd
	}

	for i := 0; i < len(out.Glyphs); {
		ci := out.Glyphs[i].TextIndex()
		c := cluster{
			start: s.offs[ci],
			end:   s.offs[next(ci)],
			x0:    pen,
			rtl:   rtl,
		}
		idx := len(clusters)
		for ; i < len(out.Glyphs) && out.Glyphs[i].TextIndex() == ci; i++ {
			g := out.Glyphs[i]
			glyphs = append(glyphs, glyph{
				id:      uint16(g.GlyphID),
				x:       pen + fromFixed(g.XOffset),
				y:       -fromFixed(g.YOffset),
				cluster: idx,
			})
			pen += fromFixed(g.XAdvance)
		}
		c.x1 = pen
		clusters = append(clusters, c)
	}
	return clusters, glyphs, pen
}

// detectScript returns the script of the first rune with a strong
// script property.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if sc := language.LookupScript(r); sc.Strong() {
			return sc
		}
	}
	return language.Latin
}

func sfntIndex(gid uint16) sfnt.GlyphIndex {
	return sfnt.GlyphIndex(gid)
}
