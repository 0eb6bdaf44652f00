package text

import (
	"errors"
	"math"
	"testing"
)

func TestRasterizeGlyph(t *testing.T) {
	face := loadTestFace(t)

	tests := []struct {
		r    rune
		desc bool // descends below the baseline
	}{
		{'H', false},
		{'o', false},
		{'g', true},
		{'p', true},
	}
	for _, tt := range tests {
		t.Run(string(tt.r), func(t *testing.T) {
			bm, err := face.RasterizeRune(tt.r, 48)
			if err != nil {
				t.Fatal(err)
			}
			if bm.Empty() {
				t.Fatal("bitmap is empty")
			}
			m := bm.Metrics
			if m.Width != float64(bm.Coverage.W) || m.Height != float64(bm.Coverage.H) {
				t.Errorf("metrics size %vx%v, grid %dx%d", m.Width, m.Height, bm.Coverage.W, bm.Coverage.H)
			}
			if m.Advance <= 0 || m.Advance > 48 {
				t.Errorf("Advance = %v", m.Advance)
			}
			if m.BearingY <= 0 {
				t.Errorf("BearingY = %v, want above baseline", m.BearingY)
			}
			below := m.Height - m.BearingY
			if tt.desc != (below > 2) {
				t.Errorf("extends %v px below baseline, descender = %v", below, tt.desc)
			}

			var full, partial int
			for _, v := range bm.Coverage.Pix {
				if v < 0 || v > 1 {
					t.Fatalf("coverage %v outside [0,1]", v)
				}
				switch {
				case v == 1:
					full++
				case v > 0:
					partial++
				}
			}
			if full == 0 || partial == 0 {
				t.Errorf("full = %d, partial = %d; want solid and antialiased pixels", full, partial)
			}
		})
	}
}

func TestRasterizeSpace(t *testing.T) {
	face := loadTestFace(t)
	bm, err := face.RasterizeRune(' ', 32)
	if err != nil {
		t.Fatal(err)
	}
	if !bm.Empty() {
		t.Errorf("space bitmap is %dx%d, want empty", bm.Coverage.W, bm.Coverage.H)
	}
	if bm.Metrics.Advance <= 0 {
		t.Errorf("space advance = %v, want > 0", bm.Metrics.Advance)
	}
}

func TestRasterizeScalesWithSize(t *testing.T) {
	face := loadTestFace(t)
	small, err := face.RasterizeRune('O', 16)
	if err != nil {
		t.Fatal(err)
	}
	large, err := face.RasterizeRune('O', 64)
	if err != nil {
		t.Fatal(err)
	}
	ratio := large.Metrics.Advance / small.Metrics.Advance
	if math.Abs(ratio-4) > 0.1 {
		t.Errorf("advance ratio = %v, want ~4", ratio)
	}
	if large.Coverage.W < 3*small.Coverage.W {
		t.Errorf("width %d at 64px vs %d at 16px", large.Coverage.W, small.Coverage.W)
	}
}

func TestRasterizeOutOfRange(t *testing.T) {
	face := loadTestFace(t)
	_, err := face.Rasterize(GlyphID(face.NumGlyphs()), 16)
	if !errors.Is(err, ErrGlyphNotFound) {
		t.Errorf("err = %v, want ErrGlyphNotFound", err)
	}
}

func TestMetricsScale(t *testing.T) {
	m := Metrics{BearingX: 2, BearingY: 8, Advance: 10, Width: 6, Height: 12}
	got := m.Scale(0.25)
	want := Metrics{BearingX: 0.5, BearingY: 2, Advance: 2.5, Width: 1.5, Height: 3}
	if got != want {
		t.Errorf("Scale(0.25) = %+v, want %+v", got, want)
	}
}
