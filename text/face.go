package text

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// GlyphID is a glyph index within a font.
type GlyphID uint16

// Face is a parsed font. It is safe for concurrent use.
type Face struct {
	font *sfnt.Font
	data []byte

	// sfnt.Buffer is not safe for concurrent use; each call borrows one.
	buffers sync.Pool

	shaperOnce sync.Once
	shaper     *Shaper
	shaperErr  error
}

// ParseFace parses TrueType or OpenType font data. data must not be
// modified while the face is in use.
func ParseFace(data []byte) (*Face, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, &FaceError{Err: err}
	}
	return &Face{
		font: f,
		data: data,
		buffers: sync.Pool{
			New: func() any { return new(sfnt.Buffer) },
		},
	}, nil
}

func (f *Face) buffer() *sfnt.Buffer   { return f.buffers.Get().(*sfnt.Buffer) }
func (f *Face) release(b *sfnt.Buffer) { f.buffers.Put(b) }

// toFixed converts a pixel size to 26.6 fixed point, rounding to nearest.
func toFixed(ppem float64) fixed.Int26_6 {
	return fixed.Int26_6(ppem*64 + 0.5)
}

// Name returns the font family name, or "" if the font has none.
func (f *Face) Name() string {
	buf := f.buffer()
	defer f.release(buf)
	name, err := f.font.Name(buf, sfnt.NameIDFamily)
	if err != nil {
		return ""
	}
	return name
}

// NumGlyphs returns the number of glyphs in the font.
func (f *Face) NumGlyphs() int {
	return f.font.NumGlyphs()
}

// UnitsPerEm returns the design units per em.
func (f *Face) UnitsPerEm() int {
	return int(f.font.UnitsPerEm())
}

// GlyphIndex returns the glyph for r. It returns ErrGlyphNotFound when the
// font maps r to the missing glyph.
func (f *Face) GlyphIndex(r rune) (GlyphID, error) {
	buf := f.buffer()
	defer f.release(buf)
	idx, err := f.font.GlyphIndex(buf, r)
	if err != nil {
		return 0, fmt.Errorf("text: rune %q: %w", r, err)
	}
	if idx == 0 {
		return 0, fmt.Errorf("%w: rune %q", ErrGlyphNotFound, r)
	}
	return GlyphID(idx), nil
}

// LineMetrics holds the vertical metrics of a face at one size, in pixels.
type LineMetrics struct {
	Ascent     float64
	Descent    float64
	LineHeight float64
}

// LineMetrics returns the vertical metrics at ppem pixels per em.
func (f *Face) LineMetrics(ppem float64) (LineMetrics, error) {
	buf := f.buffer()
	defer f.release(buf)
	m, err := f.font.Metrics(buf, toFixed(ppem), font.HintingNone)
	if err != nil {
		return LineMetrics{}, fmt.Errorf("text: metrics: %w", err)
	}
	return LineMetrics{
		Ascent:     fixedToFloat(m.Ascent),
		Descent:    fixedToFloat(m.Descent),
		LineHeight: fixedToFloat(m.Height),
	}, nil
}

// Shaper returns a HarfBuzz shaper for this face's font data. The shaper
// is created on first use.
func (f *Face) Shaper() (*Shaper, error) {
	f.shaperOnce.Do(func() {
		f.shaper, f.shaperErr = NewShaper(f.data)
	})
	return f.shaper, f.shaperErr
}

func fixedToFloat(x fixed.Int26_6) float64 {
	return float64(x) / 64
}
