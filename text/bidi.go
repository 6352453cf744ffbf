package text

import (
	"unicode"

	"golang.org/x/text/unicode/bidi"
)

// Directional runs use the implicit rules of the bidi algorithm only:
// explicit embeddings and isolates are treated as neutrals.

func bidiClass(r rune) bidi.Class {
	p, _ := bidi.LookupRune(r)
	return p.Class()
}

func isStrongRTL(c bidi.Class) bool { return c == bidi.R || c == bidi.AL }

// paragraphRTL reports whether the first strong character of runes is
// right-to-left. Text without strong characters is left-to-right.
func paragraphRTL(runes []rune) bool {
	for _, r := range runes {
		switch c := bidiClass(r); {
		case c == bidi.L:
			return false
		case isStrongRTL(c):
			return true
		}
	}
	return false
}

// bidiLevels returns the embedding level of each rune of a line.
func bidiLevels(runes []rune, rtl bool) []uint8 {
	base := uint8(0)
	if rtl {
		base = 1
	}
	cls := make([]bidi.Class, len(runes))
	lastStrong := bidi.L
	if rtl {
		lastStrong = bidi.R
	}
	for i, r := range runes {
		c := bidiClass(r)
		if c == bidi.NSM {
			if i > 0 {
				c = cls[i-1]
			} else {
				c = bidi.ON
			}
		}
		switch c {
		case bidi.L, bidi.R, bidi.AL:
			lastStrong = c
			if c == bidi.AL {
				c = bidi.R
			}
		case bidi.EN:
			switch lastStrong {
			case bidi.AL:
				c = bidi.AN
			case bidi.L:
				c = bidi.L
			}
		}
		cls[i] = c
	}

	// strong direction of a resolved class for neutral resolution;
	// numbers count as right-to-left
	strong := func(c bidi.Class) (isRTL, ok bool) {
		switch c {
		case bidi.L:
			return false, true
		case bidi.R, bidi.EN, bidi.AN:
			return true, true
		}
		return false, false
	}

	levels := make([]uint8, len(runes))
	for i := 0; i < len(cls); {
		if _, ok := strong(cls[i]); ok {
			i++
			continue
		}
		j := i
		for j < len(cls) {
			if _, ok := strong(cls[j]); ok {
				break
			}
			j++
		}
		before, after := rtl, rtl
		if i > 0 {
			before, _ = strong(cls[i-1])
		}
		if j < len(cls) {
			after, _ = strong(cls[j])
		}
		dir := rtl
		if before == after {
			dir = before
		}
		for k := i; k < j; k++ {
			if dir {
				cls[k] = bidi.R
			} else {
				cls[k] = bidi.L
			}
		}
		i = j
	}

	for i, c := range cls {
		lvl := base
		switch {
		case base == 0 && c == bidi.R:
			lvl = 1
		case base == 0 && (c == bidi.EN || c == bidi.AN):
			lvl = 2
		case base == 1 && (c == bidi.L || c == bidi.EN || c == bidi.AN):
			lvl = 2
		}
		levels[i] = lvl
	}

	// trailing whitespace takes the paragraph level
	for i := len(runes) - 1; i >= 0 && unicode.IsSpace(runes[i]); i-- {
		levels[i] = base
	}
	return levels
}

// bidiRun is a maximal span of runes at one level, in rune indices.
type bidiRun struct {
	start, end int
	level      uint8
}

func (r bidiRun) rtl() bool { return r.level%2 == 1 }

// visualRuns splits a line into level runs and returns them in visual
// order, left to right.
func visualRuns(levels []uint8) []bidiRun {
	var runs []bidiRun
	for i := 0; i < len(levels); {
		j := i + 1
		for j < len(levels) && levels[j] == levels[i] {
			j++
		}
		runs = append(runs, bidiRun{start: i, end: j, level: levels[i]})
		i = j
	}
	var maxLevel, minLevel uint8 = 0, 255
	for _, r := range runs {
		maxLevel = max(maxLevel, r.level)
		minLevel = min(minLevel, r.level)
	}
	for lvl := maxLevel; lvl >= minLevel|1 && lvl > 0; lvl-- {
		for i := 0; i < len(runs); {
			if runs[i].level < lvl {
				i++
				continue
			}
			j := i
			for j < len(runs) && runs[j].level >= lvl {
				j++
			}
			for a, b := i, j-1; a < b; a, b = a+1, b-1 {
				runs[a], runs[b] = runs[b], runs[a]
			}
			i = j
		}
	}
	return runs
}
