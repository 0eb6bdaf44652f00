package text

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/gogpu/distfield"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Metrics places a glyph bitmap relative to the pen position, in pixels.
type Metrics struct {
	// BearingX is the offset from the pen to the left edge of the bitmap.
	BearingX float64

	// BearingY is the distance from the baseline up to the top edge of the
	// bitmap.
	BearingY float64

	// Advance is how far the pen moves after this glyph.
	Advance float64

	// Width and Height are the bitmap size.
	Width, Height float64
}

// Scale returns m with every field multiplied by s.
func (m Metrics) Scale(s float64) Metrics {
	return Metrics{
		BearingX: m.BearingX * s,
		BearingY: m.BearingY * s,
		Advance:  m.Advance * s,
		Width:    m.Width * s,
		Height:   m.Height * s,
	}
}

// Bitmap is a rasterized glyph.
type Bitmap struct {
	GID      GlyphID
	Coverage *distfield.Grid[float64]
	Metrics  Metrics
}

// Empty reports whether the glyph has no ink, like the space character.
func (b *Bitmap) Empty() bool {
	return b.Coverage.W == 0 || b.Coverage.H == 0
}

// Rasterize renders glyph gid at ppem pixels per em.
//
// Glyphs without an outline yield an empty bitmap that still carries the
// advance. Out-of-range glyph indices return ErrGlyphNotFound.
func (f *Face) Rasterize(gid GlyphID, ppem float64) (*Bitmap, error) {
	if int(gid) >= f.font.NumGlyphs() {
		return nil, fmt.Errorf("%w: index %d", ErrGlyphNotFound, gid)
	}

	buf := f.buffer()
	defer f.release(buf)

	size := toFixed(ppem)
	idx := sfnt.GlyphIndex(gid)
	segments, err := f.font.LoadGlyph(buf, idx, size, nil)
	if err != nil {
		return nil, fmt.Errorf("text: load glyph %d: %w", gid, err)
	}
	advance, err := f.font.GlyphAdvance(buf, idx, size, font.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("text: glyph %d advance: %w", gid, err)
	}

	bm := &Bitmap{
		GID:      gid,
		Coverage: distfield.NewGrid[float64](0, 0),
		Metrics:  Metrics{Advance: fixedToFloat(advance)},
	}
	if !hasInk(segments) {
		return bm, nil
	}

	b := segments.Bounds()
	minX, minY := b.Min.X.Floor(), b.Min.Y.Floor()
	w, h := b.Max.X.Ceil()-minX, b.Max.Y.Ceil()-minY
	if w <= 0 || h <= 0 {
		return bm, nil
	}

	bm.Coverage = scanConvert(segments, minX, minY, w, h)
	bm.Metrics.BearingX = float64(minX)
	bm.Metrics.BearingY = float64(-minY)
	bm.Metrics.Width = float64(w)
	bm.Metrics.Height = float64(h)
	return bm, nil
}

// RasterizeRune renders the glyph mapped to r.
func (f *Face) RasterizeRune(r rune, ppem float64) (*Bitmap, error) {
	gid, err := f.GlyphIndex(r)
	if err != nil {
		return nil, err
	}
	return f.Rasterize(gid, ppem)
}

func hasInk(segments sfnt.Segments) bool {
	for _, s := range segments {
		if s.Op != sfnt.SegmentOpMoveTo {
			return true
		}
	}
	return false
}

// scanConvert fills the outline into a w x h coverage grid whose origin
// is at (minX, minY) in glyph space.
func scanConvert(segments sfnt.Segments, minX, minY, w, h int) *distfield.Grid[float64] {
	ox, oy := float32(minX), float32(minY)
	pt := func(p fixed.Point26_6) (float32, float32) {
		return float32(p.X)/64 - ox, float32(p.Y)/64 - oy
	}

	r := vector.NewRasterizer(w, h)
	r.DrawOp = draw.Src
	open := false
	for _, s := range segments {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				r.ClosePath()
			}
			r.MoveTo(pt(s.Args[0]))
			open = true
		case sfnt.SegmentOpLineTo:
			r.LineTo(pt(s.Args[0]))
		case sfnt.SegmentOpQuadTo:
			x1, y1 := pt(s.Args[0])
			x2, y2 := pt(s.Args[1])
			r.QuadTo(x1, y1, x2, y2)
		case sfnt.SegmentOpCubeTo:
			x1, y1 := pt(s.Args[0])
			x2, y2 := pt(s.Args[1])
			x3, y3 := pt(s.Args[2])
			r.CubeTo(x1, y1, x2, y2, x3, y3)
		}
	}
	if open {
		r.ClosePath()
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	r.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	g := distfield.NewGrid[float64](w, h)
	for i, a := range mask.Pix {
		g.Pix[i] = float64(a) / 255
	}
	return g
}
