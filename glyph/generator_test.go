package glyph

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/distfield"
	"github.com/gogpu/distfield/text"
	"golang.org/x/image/font/gofont/goregular"
)

func loadTestFace(t testing.TB) *text.Face {
	t.Helper()
	face, err := text.ParseFace(goregular.TTF)
	if err != nil {
		t.Fatalf("failed to load test font: %v", err)
	}
	return face
}

func mustGenerator(t testing.TB, opts ...Option) *Generator {
	t.Helper()
	gen, err := NewGenerator(opts...)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	return gen
}

func TestNewGeneratorDefaults(t *testing.T) {
	gen := mustGenerator(t)
	if gen.Upscale() != 4 {
		t.Errorf("Upscale() = %d, want 4", gen.Upscale())
	}
	if gen.Padding() != 4 {
		t.Errorf("Padding() = %d, want 4", gen.Padding())
	}
}

func TestNewGeneratorInvalid(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"negative padding", WithPadding(-1)},
		{"huge padding", WithPadding(65)},
		{"zero upscale", WithUpscale(0)},
		{"huge upscale", WithUpscale(17)},
		{"nil engine", WithEngine(nil)},
		{"zero workers", WithWorkers(0)},
		{"negative cache", WithCache(-1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewGenerator(tt.opt); !errors.Is(err, ErrInvalidOption) {
				t.Errorf("NewGenerator() = %v, want ErrInvalidOption", err)
			}
		})
	}
}

func TestFromCoverageDisc(t *testing.T) {
	gen := mustGenerator(t, WithUpscale(4), WithPadding(2))
	bm := &text.Bitmap{
		GID:      7,
		Coverage: distfield.Disc(32, 32, 16, 16, 10),
		Metrics:  text.Metrics{BearingX: 0, BearingY: 32, Advance: 40, Width: 32, Height: 32},
	}

	g, err := gen.FromCoverage(bm)
	if err != nil {
		t.Fatalf("FromCoverage: %v", err)
	}

	// 32 + 2*2*4 = 48 high-res pixels, 12 output pixels.
	if g.Width != 12 || g.Height != 12 {
		t.Fatalf("size = %dx%d, want 12x12", g.Width, g.Height)
	}
	if len(g.Pix) != g.Width*g.Height {
		t.Fatalf("len(Pix) = %d, want %d", len(g.Pix), g.Width*g.Height)
	}
	if g.GID != 7 {
		t.Errorf("GID = %d, want 7", g.GID)
	}

	centre := g.Pix[6*g.Width+6]
	corner := g.Pix[0]
	if centre < 200 {
		t.Errorf("centre = %d, want > 200", centre)
	}
	if corner > 32 {
		t.Errorf("corner = %d, want < 32", corner)
	}

	want := text.Metrics{BearingX: -2, BearingY: 10, Advance: 10, Width: 12, Height: 12}
	if g.Metrics != want {
		t.Errorf("Metrics = %+v, want %+v", g.Metrics, want)
	}
}

func TestFromCoverageNoUpscale(t *testing.T) {
	gen := mustGenerator(t, WithUpscale(1), WithPadding(3))
	bm := &text.Bitmap{Coverage: distfield.Disc(10, 8, 5, 4, 3)}

	g, err := gen.FromCoverage(bm)
	if err != nil {
		t.Fatalf("FromCoverage: %v", err)
	}
	if g.Width != 16 || g.Height != 14 {
		t.Errorf("size = %dx%d, want 16x14", g.Width, g.Height)
	}
}

func TestFromCoverageEmpty(t *testing.T) {
	gen := mustGenerator(t)
	bm := &text.Bitmap{GID: 3, Coverage: distfield.NewGrid[float64](0, 0), Metrics: text.Metrics{Advance: 20}}

	g, err := gen.FromCoverage(bm)
	if err != nil {
		t.Fatalf("FromCoverage: %v", err)
	}
	if g.Width != 0 || g.Height != 0 || len(g.Pix) != 0 {
		t.Errorf("empty glyph has size %dx%d, %d bytes", g.Width, g.Height, len(g.Pix))
	}
	if g.Metrics.Advance != 5 {
		t.Errorf("Advance = %v, want 5", g.Metrics.Advance)
	}
}

func TestGenerateRune(t *testing.T) {
	face := loadTestFace(t)
	gen := mustGenerator(t)

	g, err := gen.GenerateRune(face, 'H', 16)
	if err != nil {
		t.Fatalf("GenerateRune('H'): %v", err)
	}
	if g.Width == 0 || g.Height == 0 {
		t.Fatal("'H' produced an empty glyph")
	}
	// Padding alone is 8 pixels on each axis.
	if g.Width <= 8 || g.Height <= 8 {
		t.Errorf("size %dx%d does not exceed the padding", g.Width, g.Height)
	}

	direct, err := face.RasterizeRune('H', 16)
	if err != nil {
		t.Fatalf("RasterizeRune: %v", err)
	}
	if math.Abs(g.Metrics.Advance-direct.Metrics.Advance) > 0.05 {
		t.Errorf("Advance = %v, want about %v", g.Metrics.Advance, direct.Metrics.Advance)
	}
	if g.Metrics.BearingY <= direct.Metrics.BearingY {
		t.Errorf("BearingY = %v, want above %v once padded", g.Metrics.BearingY, direct.Metrics.BearingY)
	}

	inside := 0
	for _, b := range g.Pix {
		if b > 127 {
			inside++
		}
	}
	if inside == 0 || inside == len(g.Pix) {
		t.Errorf("%d of %d pixels inside, want a mix", inside, len(g.Pix))
	}
}

func TestGenerateSpace(t *testing.T) {
	face := loadTestFace(t)
	gen := mustGenerator(t)

	g, err := gen.GenerateRune(face, ' ', 16)
	if err != nil {
		t.Fatalf("GenerateRune(' '): %v", err)
	}
	if g.Width != 0 || g.Height != 0 {
		t.Errorf("space size = %dx%d, want 0x0", g.Width, g.Height)
	}
	if g.Metrics.Advance <= 0 {
		t.Errorf("space Advance = %v, want > 0", g.Metrics.Advance)
	}
}

func TestGenerateMissing(t *testing.T) {
	face := loadTestFace(t)
	gen := mustGenerator(t)

	if _, err := gen.GenerateRune(face, '中', 16); !errors.Is(err, text.ErrGlyphNotFound) {
		t.Errorf("GenerateRune('中') = %v, want ErrGlyphNotFound", err)
	}
}

func TestGenerateCache(t *testing.T) {
	face := loadTestFace(t)
	gid, err := face.GlyphIndex('e')
	if err != nil {
		t.Fatal(err)
	}

	gen := mustGenerator(t, WithCache(4))
	first, err := gen.Generate(face, gid, 16)
	if err != nil {
		t.Fatal(err)
	}
	second, err := gen.Generate(face, gid, 16)
	if err != nil {
		t.Fatal(err)
	}
	if first != second || gen.CacheHits() != 1 {
		t.Errorf("second Generate not served from cache (hits %d)", gen.CacheHits())
	}
	if _, err := gen.Generate(face, gid, 20); err != nil {
		t.Fatal(err)
	}
	if gen.CacheHits() != 1 {
		t.Errorf("different size hit the cache")
	}

	off := mustGenerator(t, WithCache(0))
	for range 2 {
		if _, err := off.Generate(face, gid, 16); err != nil {
			t.Fatal(err)
		}
	}
	if off.CacheHits() != 0 {
		t.Errorf("CacheHits() = %d with the cache disabled", off.CacheHits())
	}
}

func BenchmarkGenerate(b *testing.B) {
	face := loadTestFace(b)
	gen := mustGenerator(b, WithCache(0))
	gid, err := face.GlyphIndex('g')
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for b.Loop() {
		if _, err := gen.Generate(face, gid, 32); err != nil {
			b.Fatal(err)
		}
	}
}
