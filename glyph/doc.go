// Package glyph turns font glyphs into distance field bitmaps and packs
// them into an atlas.
//
// A [Generator] runs the per-glyph pipeline: rasterize at a multiple of the
// target size, pad with background, compute the signed field, downsample
// to the target size and quantize to bytes. Placement metrics are scaled
// along with the bitmap.
//
// A [Builder] runs the generator over many glyphs in parallel and writes
// the results into an [atlas.Atlas]. Missing glyphs and a full atlas are
// not fatal: those glyphs are skipped, logged and listed in the [Report].
package glyph
