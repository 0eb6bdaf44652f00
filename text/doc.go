// Package text loads fonts and rasterizes glyphs into coverage grids for
// the distance field engine.
//
// A [Face] wraps a parsed TrueType/OpenType font. Rasterize renders one
// glyph outline at a given pixel size into a [Bitmap]: a coverage grid plus
// the placement metrics needed to draw the glyph later.
//
//	face, err := text.ParseFace(goregular.TTF)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	bm, err := face.RasterizeRune('g', 64)
//
// Glyph selection happens either per rune ([Face.GlyphIndex], [Charset]) or
// through HarfBuzz shaping ([Shaper]), which also yields ligature and
// contextual glyphs that have no rune of their own.
//
// Outlines are parsed with golang.org/x/image/font/sfnt and filled with
// golang.org/x/image/vector; shaping uses github.com/go-text/typesetting.
package text
