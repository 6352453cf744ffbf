// Package text is the text engine shared by the raster, compose, gpu and
// svg backends.
//
// The pipeline separates concerns the same way for every layout:
//
//   - Engine: font registry. Families are registered once and shared by
//     every layout built from the engine. The Go fonts are always present.
//   - Face: one parsed font (regular, bold, italic...) of a family. The
//     same data is parsed twice: go-text/typesetting for shaping and
//     golang.org/x/image/font/sfnt for metrics and outlines.
//   - Layout: an immutable, measured block of text implementing
//     vg.TextLayout.
//
// Layouts are built in four steps. The text is split into break
// opportunities with the go-text UAX #14 segmenter and measured by
// shaping each paragraph. Lines are filled greedily, breaking between
// grapheme clusters when a single word does not fit. Each line is split
// into directional runs (paragraph direction from the first strong
// character) and shaped again for final glyph positions. Finally lines
// are aligned and stacked.
//
// # Example usage
//
//	engine := text.NewEngine()
//	layout, err := engine.NewTextLayout("Hello, world", vg.SansSerif, 14, 200)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	size := layout.Size()
//
// Offsets are UTF-8 byte offsets into the layout text throughout.
package text
