package glyph

import (
	"fmt"

	"github.com/gogpu/distfield"
	"github.com/gogpu/distfield/internal/cache"
	"github.com/gogpu/distfield/text"
)

// Glyph is a quantized distance field bitmap ready for an atlas.
type Glyph struct {
	GID text.GlyphID

	// Width and Height of Pix. Both are zero for glyphs without ink.
	Width, Height int

	// Pix holds one byte per pixel, 255 inside and 0 outside.
	Pix []byte

	// Metrics place the bitmap, padding included, at the output size.
	Metrics text.Metrics
}

// Generator runs the glyph pipeline. It is safe for concurrent use.
type Generator struct {
	opts  options
	cache *cache.Cache[cacheKey, *Glyph]
}

type cacheKey struct {
	face *text.Face
	gid  text.GlyphID
	ppem float64
}

// NewGenerator creates a generator.
func NewGenerator(opts ...Option) (*Generator, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	g := &Generator{opts: o}
	if o.cache > 0 {
		g.cache = cache.New[cacheKey, *Glyph](o.cache)
	}
	return g, nil
}

// Upscale returns the factor glyphs are rasterized above the output size.
func (g *Generator) Upscale() int { return g.opts.upscale }

// Padding returns the margin in output pixels.
func (g *Generator) Padding() int { return g.opts.padding }

// Generate rasterizes gid at Upscale times ppem and converts it.
// Glyphs may come from the cache; callers must not modify Pix.
func (g *Generator) Generate(face *text.Face, gid text.GlyphID, ppem float64) (*Glyph, error) {
	key := cacheKey{face: face, gid: gid, ppem: ppem}
	if g.cache != nil {
		if gl, ok := g.cache.Get(key); ok {
			return gl, nil
		}
	}

	bm, err := face.Rasterize(gid, ppem*float64(g.opts.upscale))
	if err != nil {
		return nil, err
	}
	gl, err := g.FromCoverage(bm)
	if err != nil {
		return nil, err
	}
	if g.cache != nil {
		g.cache.Set(key, gl)
	}
	return gl, nil
}

// CacheHits returns how many Generate calls were served from the cache.
func (g *Generator) CacheHits() uint64 {
	if g.cache == nil {
		return 0
	}
	return g.cache.Stats().Hits
}

// GenerateRune is Generate for the glyph mapped to r.
func (g *Generator) GenerateRune(face *text.Face, r rune, ppem float64) (*Glyph, error) {
	gid, err := face.GlyphIndex(r)
	if err != nil {
		return nil, err
	}
	return g.Generate(face, gid, ppem)
}

// FromCoverage converts a bitmap rasterized at Upscale times the output
// size: pad, compute the field, downsample and quantize.
func (g *Generator) FromCoverage(bm *text.Bitmap) (*Glyph, error) {
	up := g.opts.upscale
	inv := 1 / float64(up)
	if bm.Empty() {
		return &Glyph{GID: bm.GID, Metrics: bm.Metrics.Scale(inv)}, nil
	}

	pad := g.opts.padding * up
	padded := bm.Coverage.Pad(pad)

	field, err := g.opts.engine.DistanceField(padded)
	if err != nil {
		return nil, fmt.Errorf("glyph %d: %w", bm.GID, err)
	}

	w, h := distfield.ScaledSize(padded.W, padded.H, up)
	if w != padded.W || h != padded.H {
		field, err = g.opts.engine.Resample(field, w, h)
		if err != nil {
			return nil, fmt.Errorf("glyph %d: %w", bm.GID, err)
		}
	}

	// The resampler maps the whole padded extent onto w x h, so bearings
	// scale by the actual size ratio rather than 1/upscale.
	sx := float64(w) / float64(padded.W)
	sy := float64(h) / float64(padded.H)

	distfield.Logger().Debug("glyph: field",
		"gid", bm.GID, "src", fmt.Sprintf("%dx%d", padded.W, padded.H), "dst", fmt.Sprintf("%dx%d", w, h))

	return &Glyph{
		GID:    bm.GID,
		Width:  w,
		Height: h,
		Pix:    distfield.Quantize(field).Pix,
		Metrics: text.Metrics{
			BearingX: (bm.Metrics.BearingX - float64(pad)) * sx,
			BearingY: (bm.Metrics.BearingY + float64(pad)) * sy,
			Advance:  bm.Metrics.Advance * inv,
			Width:    float64(w),
			Height:   float64(h),
		},
	}, nil
}
