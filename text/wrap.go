package text

import (
	"math"
	"unicode"

	"github.com/go-text/typesetting/segmenter"
)

// lineSpan is one visual line in rune indices.
type lineSpan struct {
	start, end int  // end includes trailing whitespace and the break
	content    int  // start of the mandatory break characters, or end
	ws         int  // start of the trailing whitespace
	rtl        bool // paragraph direction
}

// isBreakRune reports whether r is a mandatory line break character.
func isBreakRune(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', 0x85, 0x2028, 0x2029:
		return true
	}
	return false
}

// segment is a span between two break opportunities.
type segment struct {
	start, end int
	hard       bool
}

func (s *shaper) segments() []segment {
	var seg segmenter.Segmenter
	seg.Init(s.runes)
	it := seg.LineIterator()
	var out []segment
	for it.Next() {
		l := it.Line()
		end := l.Offset + len(l.Text)
		out = append(out, segment{
			start: l.Offset,
			end:   end,
			hard:  end > l.Offset && isBreakRune(s.runes[end-1]),
		})
	}
	return out
}

// wrap splits the text into lines no wider than maxWidth (excluding
// trailing whitespace). A maxWidth of +Inf disables wrapping.
func (s *shaper) wrap(maxWidth float64) []lineSpan {
	var lines []lineSpan
	segs := s.segments()
	for i := 0; i < len(segs); {
		// a paragraph runs up to and including a hard break
		j := i
		for j < len(segs) && !segs[j].hard {
			j++
		}
		if j < len(segs) {
			j++
		}
		para := segs[i:j]
		rtl := paragraphRTL(s.runes[para[0].start:para[len(para)-1].end])
		if math.IsInf(maxWidth, 1) {
			lines = append(lines, s.span(para[0].start, para[len(para)-1].end, rtl))
		} else {
			lines = s.fill(lines, para, maxWidth, rtl)
		}
		i = j
	}
	if len(lines) == 0 || segs[len(segs)-1].hard {
		// empty text or a trailing break: one more empty line
		n := len(s.runes)
		lines = append(lines, lineSpan{start: n, end: n, content: n, ws: n, rtl: len(lines) > 0 && lines[len(lines)-1].rtl})
	}
	return lines
}

// fill breaks one paragraph greedily.
func (s *shaper) fill(lines []lineSpan, para []segment, maxWidth float64, rtl bool) []lineSpan {
	start := para[0].start
	width := 0.0
	for _, sg := range para {
		trim := s.trimSpace(sg.start, sg.end)
		w := s.advance(sg.start, trim, rtl)
		if sg.start > start && width+w > maxWidth {
			lines = append(lines, s.span(start, sg.start, rtl))
			start, width = sg.start, 0
		}
		if w > maxWidth {
			// the word alone is too wide: break between graphemes
			var gseg segmenter.Segmenter
			gseg.Init(s.runes[sg.start:trim])
			it := gseg.GraphemeIterator()
			for it.Next() {
				g := it.Grapheme()
				gs := sg.start + g.Offset
				gw := s.advance(gs, gs+len(g.Text), rtl)
				if gs > start && width+gw > maxWidth {
					lines = append(lines, s.span(start, gs, rtl))
					start, width = gs, 0
				}
				width += gw
			}
			width += s.advance(trim, s.trimBreaks(sg.start, sg.end), rtl)
			continue
		}
		width += s.advance(sg.start, s.trimBreaks(sg.start, sg.end), rtl)
	}
	return append(lines, s.span(start, para[len(para)-1].end, rtl))
}

func (s *shaper) span(start, end int, rtl bool) lineSpan {
	return lineSpan{start: start, end: end, content: s.trimBreaks(start, end), ws: s.trimSpace(start, end), rtl: rtl}
}

// trimBreaks returns the start of the mandatory break at the end of
// [start, end), or end.
func (s *shaper) trimBreaks(start, end int) int {
	for end > start && isBreakRune(s.runes[end-1]) {
		end--
	}
	return end
}

// trimSpace returns the start of the trailing whitespace of [start, end).
func (s *shaper) trimSpace(start, end int) int {
	for end > start && unicode.IsSpace(s.runes[end-1]) {
		end--
	}
	return end
}
