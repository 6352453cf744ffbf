package text

import (
	"sort"

	"github.com/gogpu/vg"
)

// HitTestPoint maps a point relative to the layout origin to the nearest
// cluster boundary.
func (l *Layout) HitTestPoint(p vg.Point) vg.HitTestPoint {
	inside := true
	var ln *line
	switch last := &l.lines[len(l.lines)-1]; {
	case p.Y < 0:
		ln, inside = &l.lines[0], false
	case p.Y >= last.metric.YOffset+last.metric.Height:
		ln, inside = last, false
	default:
		i := sort.Search(len(l.lines), func(i int) bool {
			m := l.lines[i].metric
			return m.YOffset+m.Height > p.Y
		})
		ln = &l.lines[min(i, len(l.lines)-1)]
	}

	cs := ln.clusters
	if len(cs) == 0 {
		return vg.HitTestPoint{Idx: ln.metric.StartOffset, IsInside: inside}
	}
	first, last := cs[0], cs[len(cs)-1]
	switch {
	case p.X < first.x0:
		return vg.HitTestPoint{Idx: edge(first, true)}
	case p.X > last.x1:
		return vg.HitTestPoint{Idx: edge(last, false)}
	}
	i := sort.Search(len(cs), func(i int) bool { return cs[i].x1 >= p.X })
	c := cs[i]
	mid := (c.x0 + c.x1) / 2
	// on the midpoint the lower offset wins
	left := p.X < mid || (p.X == mid && !c.rtl)
	return vg.HitTestPoint{Idx: edge(c, left), IsInside: inside}
}

// edge returns the text offset at the left or right edge of c.
func edge(c cluster, left bool) int {
	if left != c.rtl {
		return c.start
	}
	return c.end
}

// HitTestTextPosition returns the baseline point at the leading edge of
// the cluster containing idx. idx is clamped to the text and snapped
// down to a cluster boundary.
func (l *Layout) HitTestTextPosition(idx int) vg.HitTestPosition {
	idx = max(0, min(idx, len(l.text)))
	n := sort.Search(len(l.lines), func(i int) bool {
		return l.lines[i].metric.StartOffset > idx
	}) - 1
	n = max(n, 0)
	ln := &l.lines[n]
	y := ln.metric.YOffset + ln.metric.Baseline

	x := ln.caretEnd
	for _, c := range ln.clusters {
		if idx >= c.start && idx < c.end {
			x = c.leading()
			break
		}
	}
	return vg.HitTestPosition{Point: vg.Pt(x, y), Line: n}
}
