package atlas

import (
	"errors"
	"image"
	"sync"
	"testing"
)

func newTestAtlas(t *testing.T, w, h, pad int) *Atlas {
	t.Helper()
	a, err := New(Config{Width: w, Height: h, Padding: pad})
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		field string
	}{
		{"default", DefaultConfig(), ""},
		{"narrow", Config{Width: 8, Height: 64}, "Width"},
		{"huge", Config{Width: 64, Height: 10000}, "Height"},
		{"negative padding", Config{Width: 64, Height: 64, Padding: -1}, "Padding"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.field == "" {
				if err != nil {
					t.Fatalf("Validate() = %v", err)
				}
				return
			}
			var ce *ConfigError
			if !errors.As(err, &ce) || ce.Field != tt.field {
				t.Errorf("Validate() = %v, want ConfigError on %s", err, tt.field)
			}
		})
	}
	if _, err := New(Config{}); err == nil {
		t.Error("New(Config{}) should fail")
	}
}

func TestAllocateExhaustion(t *testing.T) {
	a := newTestAtlas(t, 32, 32, 0)
	for i := range 4 {
		if _, err := a.Allocate(16, 16); err != nil {
			t.Fatalf("allocation %d: %v", i, err)
		}
	}
	_, err := a.Allocate(16, 16)
	if !errors.Is(err, ErrAllocationFailed) {
		t.Fatalf("err = %v, want ErrAllocationFailed", err)
	}
	if a.Len() != 4 {
		t.Errorf("Len() = %d, want 4", a.Len())
	}
	if u := a.Utilization(); u != 1 {
		t.Errorf("Utilization() = %v, want 1", u)
	}
}

func TestAllocateEmpty(t *testing.T) {
	a := newTestAtlas(t, 32, 32, 0)
	r, err := a.Allocate(0, 0)
	if err != nil || !r.Empty() {
		t.Errorf("Allocate(0, 0) = %+v, %v", r, err)
	}
	if a.Len() != 0 {
		t.Error("empty allocation counted as a region")
	}
	if err := a.Set(r, nil); err != nil {
		t.Errorf("Set(empty) = %v", err)
	}
}

func TestSetCopiesRows(t *testing.T) {
	a := newTestAtlas(t, 16, 16, 1)
	if _, err := a.Allocate(3, 3); err != nil {
		t.Fatal(err)
	}
	r, err := a.Allocate(2, 3)
	if err != nil {
		t.Fatal(err)
	}
	if r.X != 4 || r.Y != 0 {
		t.Fatalf("second region at (%d,%d), want (4,0)", r.X, r.Y)
	}

	if err := a.Set(r, []byte{1, 2, 3, 4, 5, 6}); err != nil {
		t.Fatal(err)
	}
	want := map[[2]int]byte{
		{4, 0}: 1, {5, 0}: 2,
		{4, 1}: 3, {5, 1}: 4,
		{4, 2}: 5, {5, 2}: 6,
		{3, 0}: 0, {6, 0}: 0, {4, 3}: 0,
	}
	for p, v := range want {
		if got := a.At(p[0], p[1]); got != v {
			t.Errorf("At(%d,%d) = %d, want %d", p[0], p[1], got, v)
		}
	}
	if rect, ok := a.Dirty(); !ok || rect != image.Rect(4, 0, 6, 3) {
		t.Errorf("Dirty() = %v, %v", rect, ok)
	}
}

func TestSetErrors(t *testing.T) {
	a := newTestAtlas(t, 16, 16, 0)
	if err := a.Set(Region{W: 2, H: 2}, []byte{1}); !errors.Is(err, ErrDataSize) {
		t.Errorf("short data: %v, want ErrDataSize", err)
	}
	if err := a.Set(Region{X: 15, Y: 0, W: 2, H: 1}, []byte{1, 2}); !errors.Is(err, ErrRegionBounds) {
		t.Errorf("out of bounds: %v, want ErrRegionBounds", err)
	}
}

func TestUV(t *testing.T) {
	a := newTestAtlas(t, 64, 32, 0)
	u0, v0, u1, v1 := a.UV(Region{X: 16, Y: 8, W: 16, H: 8})
	if u0 != 0.25 || v0 != 0.25 || u1 != 0.5 || v1 != 0.5 {
		t.Errorf("UV = %v %v %v %v", u0, v0, u1, v1)
	}
}

func TestResetAndImage(t *testing.T) {
	a := newTestAtlas(t, 16, 16, 0)
	r, _ := a.Allocate(2, 1)
	if err := a.Set(r, []byte{9, 9}); err != nil {
		t.Fatal(err)
	}
	if img := a.Image(); img.GrayAt(1, 0).Y != 9 {
		t.Error("Image() missing written pixel")
	}
	a.Reset()
	if a.At(1, 0) != 0 || a.Len() != 0 {
		t.Error("Reset() left data behind")
	}
	if _, ok := a.Dirty(); !ok {
		t.Error("Reset() should mark the atlas dirty")
	}
}

func TestConcurrentAllocate(t *testing.T) {
	a := newTestAtlas(t, 256, 256, 1)
	var wg sync.WaitGroup
	regions := make(chan Region, 64)
	for range 64 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := a.Allocate(12, 12)
			if err != nil {
				t.Error(err)
				return
			}
			regions <- r
		}()
	}
	wg.Wait()
	close(regions)

	var seen []image.Rectangle
	for r := range regions {
		for _, s := range seen {
			if s.Overlaps(r.Rect()) {
				t.Fatalf("regions %v and %v overlap", s, r.Rect())
			}
		}
		seen = append(seen, r.Rect())
	}
}
