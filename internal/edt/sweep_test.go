package edt

import (
	"math"
	"math/rand/v2"
	"testing"
)

func transformOf(img []float64, w, h int, opts Options) *Scratch {
	s := NewScratch(w * h)
	Transform(img, w, h, opts, s)
	return s
}

func TestTransform_FullyCovered(t *testing.T) {
	w, h := 6, 4
	img := make([]float64, w*h)
	for i := range img {
		img[i] = 1
	}

	s := transformOf(img, w, h, Options{})
	for i, d := range s.Dist {
		if d != 0 {
			t.Fatalf("pixel %d: distance %v, want 0", i, d)
		}
	}
}

func TestTransform_Empty(t *testing.T) {
	w, h := 5, 5
	s := transformOf(make([]float64, w*h), w, h, Options{})
	for i, d := range s.Dist {
		if !math.IsInf(d, 1) {
			t.Fatalf("pixel %d: distance %v, want Far", i, d)
		}
	}
}

func TestTransform_SinglePoint(t *testing.T) {
	const w, h = 9, 9
	const cx, cy = 4, 4
	img := make([]float64, w*h)
	img[cy*w+cx] = 1

	s := transformOf(img, w, h, Options{})
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			vx, vy := cx-x, cy-y
			if s.DX[i] != vx || s.DY[i] != vy {
				t.Errorf("(%d,%d): vector (%d,%d), want (%d,%d)", x, y, s.DX[i], s.DY[i], vx, vy)
			}

			want := 0.0
			if vx != 0 || vy != 0 {
				fx, fy := float64(vx), float64(vy)
				want = math.Hypot(fx, fy) + EdgeDistance(fx, fy, 1)
			}
			if math.Abs(s.Dist[i]-want) > 1e-9 {
				t.Errorf("(%d,%d): distance %v, want %v", x, y, s.Dist[i], want)
			}
		}
	}
}

func TestTransform_AxisDistances(t *testing.T) {
	// A fully covered column: every other pixel sits |dx| - 0.5 away.
	const w, h = 7, 5
	img := make([]float64, w*h)
	for y := 0; y < h; y++ {
		img[y*w+3] = 1
	}

	s := transformOf(img, w, h, Options{})
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			want := math.Max(math.Abs(float64(x-3))-0.5, 0)
			if got := s.Dist[y*w+x]; math.Abs(got-want) > 1e-9 {
				t.Errorf("(%d,%d): distance %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestTransform_SingleRow(t *testing.T) {
	img := []float64{0, 0, 0, 0.5, 1, 0, 0}
	s := transformOf(img, len(img), 1, Options{})

	want := []float64{3, 2, 1, 0, 0, 0.5, 1.5}
	for i := range want {
		if math.Abs(s.Dist[i]-want[i]) > 1e-9 {
			t.Errorf("pixel %d: distance %v, want %v", i, s.Dist[i], want[i])
		}
	}
}

func TestTransform_FiniteAndBounded(t *testing.T) {
	const w, h = 24, 17
	rng := rand.New(rand.NewPCG(7, 11))
	img := make([]float64, w*h)
	for i := range img {
		switch rng.IntN(4) {
		case 0:
			img[i] = rng.Float64()
		case 1:
			img[i] = 1
		}
	}

	s := transformOf(img, w, h, Options{})
	for i, d := range s.Dist {
		if math.IsInf(d, 0) || math.IsNaN(d) {
			t.Fatalf("pixel %d: distance %v is not finite", i, d)
		}
		if d < -math.Sqrt2/2-1e-12 {
			t.Errorf("pixel %d: distance %v below the sub-pixel bound", i, d)
		}
		if img[i] == 0 && d <= 0 {
			t.Errorf("background pixel %d: distance %v, want > 0", i, d)
		}
	}
}

func TestTransform_MoreRoundsNeverWorse(t *testing.T) {
	const w, h = 32, 32
	rng := rand.New(rand.NewPCG(3, 5))
	img := make([]float64, w*h)
	for i := range img {
		if rng.IntN(9) == 0 {
			img[i] = rng.Float64()
		}
	}

	one := transformOf(img, w, h, Options{Rounds: 1})
	many := transformOf(img, w, h, Options{Rounds: 4})
	for i := range one.Dist {
		if many.Dist[i] > one.Dist[i]+1e-12 {
			t.Errorf("pixel %d: %v after 4 rounds, %v after 1", i, many.Dist[i], one.Dist[i])
		}
	}
}

func TestScratch_Reuse(t *testing.T) {
	s := NewScratch(4)
	Transform([]float64{0, 1, 0, 0, 0, 0}, 3, 2, Options{}, s)
	if s.Len() != 6 {
		t.Fatalf("Len() = %d, want 6", s.Len())
	}

	Transform([]float64{1, 0}, 2, 1, Options{}, s)
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if got := s.Dist[1]; math.Abs(got-0.5) > 1e-9 {
		t.Errorf("distance %v, want 0.5", got)
	}
}

func BenchmarkTransform(b *testing.B) {
	const w, h = 128, 128
	img := make([]float64, w*h)
	for y := 32; y < 96; y++ {
		for x := 40; x < 88; x++ {
			img[y*w+x] = 1
		}
	}
	s := NewScratch(w * h)

	b.ResetTimer()
	for b.Loop() {
		Transform(img, w, h, Options{}, s)
	}
}
