package text

import (
	"bytes"
	"sync"
	"unicode"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// ShapedGlyph is one glyph of a shaped run.
type ShapedGlyph struct {
	GID GlyphID

	// Cluster is the index of the first rune this glyph was produced from.
	Cluster int

	// XAdvance is the horizontal pen advance in pixels.
	XAdvance float64
}

// Shaper shapes text with HarfBuzz to find the glyphs a renderer will
// actually draw, including ligatures and contextual forms.
//
// Shaper is safe for concurrent use. It holds the parsed font (read-only)
// and pools HarfbuzzShaper instances, which are not.
type Shaper struct {
	font *font.Font
	pool sync.Pool
}

// NewShaper parses font data for shaping.
func NewShaper(data []byte) (*Shaper, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, &FaceError{Err: err}
	}
	return &Shaper{
		font: face.Font,
		pool: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
	}, nil
}

// Shape shapes s left to right at ppem pixels per em.
func (s *Shaper) Shape(text string, ppem float64) []ShapedGlyph {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		// font.Face is not safe for concurrent use; NewFace is cheap.
		Face:     font.NewFace(s.font),
		Size:     fixed.Int26_6(ppem*64 + 0.5),
		Script:   detectScript(runes),
		Language: language.NewLanguage("en"),
	}

	hb := s.pool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	s.pool.Put(hb)

	glyphs := make([]ShapedGlyph, len(out.Glyphs))
	for i, g := range out.Glyphs {
		glyphs[i] = ShapedGlyph{
			GID:      GlyphID(uint16(g.GlyphID)), //nolint:gosec // fonts have at most 65535 glyphs
			Cluster:  g.ClusterIndex,
			XAdvance: float64(g.Advance) / 64,
		}
	}
	return glyphs
}

// GlyphIDs returns the distinct glyphs used to draw text, in order of first
// appearance. Glyph 0 (missing glyph) is dropped.
func (s *Shaper) GlyphIDs(text string) []GlyphID {
	seen := make(map[GlyphID]bool)
	var ids []GlyphID
	for _, g := range s.Shape(text, 16) {
		if g.GID == 0 || seen[g.GID] {
			continue
		}
		seen[g.GID] = true
		ids = append(ids, g.GID)
	}
	return ids
}

// detectScript returns the script of the first letter in runes.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if unicode.IsLetter(r) {
			return language.LookupScript(r)
		}
	}
	return language.Latin
}
