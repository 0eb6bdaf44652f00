package atlas

import (
	"fmt"
	"image"
	"sync"
)

// Region is a rectangle of the atlas in pixels.
type Region struct {
	X, Y, W, H int
}

// Empty reports whether the region has no pixels. Glyphs without ink, such
// as the space character, get an empty region.
func (r Region) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Rect returns the region as an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// Atlas is a single-channel texture holding packed glyph fields.
//
// Thread safety: All methods are safe for concurrent use.
type Atlas struct {
	mu      sync.Mutex
	cfg     Config
	pix     []byte
	packer  *shelfPacker
	regions int
	dirty   image.Rectangle
}

// New creates an empty atlas.
func New(cfg Config) (*Atlas, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Atlas{
		cfg:    cfg,
		pix:    make([]byte, cfg.Width*cfg.Height),
		packer: newShelfPacker(cfg.Width, cfg.Height, cfg.Padding),
	}, nil
}

// Width returns the texture width.
func (a *Atlas) Width() int { return a.cfg.Width }

// Height returns the texture height.
func (a *Atlas) Height() int { return a.cfg.Height }

// Allocate reserves a w x h region. A zero-sized request returns an empty
// region without consuming space. When the region does not fit, the error
// wraps ErrAllocationFailed.
func (a *Atlas) Allocate(w, h int) (Region, error) {
	if w <= 0 || h <= 0 {
		return Region{}, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	x, y, ok := a.packer.allocate(w, h)
	if !ok {
		return Region{}, fmt.Errorf("%w: %dx%d in %dx%d atlas", ErrAllocationFailed, w, h, a.cfg.Width, a.cfg.Height)
	}
	a.regions++
	return Region{X: x, Y: y, W: w, H: h}, nil
}

// Set copies row-major pixel data into region r and marks it dirty.
func (a *Atlas) Set(r Region, data []byte) error {
	if r.Empty() {
		return nil
	}
	if len(data) != r.W*r.H {
		return fmt.Errorf("%w: %d bytes for %dx%d", ErrDataSize, len(data), r.W, r.H)
	}
	if !r.Rect().In(image.Rect(0, 0, a.cfg.Width, a.cfg.Height)) {
		return fmt.Errorf("%w: %v", ErrRegionBounds, r.Rect())
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	for row := 0; row < r.H; row++ {
		dst := (r.Y+row)*a.cfg.Width + r.X
		copy(a.pix[dst:dst+r.W], data[row*r.W:(row+1)*r.W])
	}
	a.dirty = a.dirty.Union(r.Rect())
	return nil
}

// At returns the pixel at (x, y), or 0 outside the atlas.
func (a *Atlas) At(x, y int) byte {
	if x < 0 || y < 0 || x >= a.cfg.Width || y >= a.cfg.Height {
		return 0
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pix[y*a.cfg.Width+x]
}

// UV returns the normalised texture coordinates of r's corners.
func (a *Atlas) UV(r Region) (u0, v0, u1, v1 float32) {
	w, h := float32(a.cfg.Width), float32(a.cfg.Height)
	return float32(r.X) / w, float32(r.Y) / h,
		float32(r.X+r.W) / w, float32(r.Y+r.H) / h
}

// Len returns the number of allocated regions.
func (a *Atlas) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.regions
}

// Utilization returns the fraction of the texture covered by regions.
func (a *Atlas) Utilization() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.packer.utilization()
}

// Dirty reports whether pixels changed since the last upload, and the
// bounding rectangle of the change.
func (a *Atlas) Dirty() (image.Rectangle, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dirty, !a.dirty.Empty()
}

// Reset clears all regions and pixels.
func (a *Atlas) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	clear(a.pix)
	a.packer.reset()
	a.regions = 0
	a.dirty = image.Rect(0, 0, a.cfg.Width, a.cfg.Height)
}

// Image returns a copy of the atlas as a greyscale image.
func (a *Atlas) Image() *image.Gray {
	a.mu.Lock()
	defer a.mu.Unlock()
	img := image.NewGray(image.Rect(0, 0, a.cfg.Width, a.cfg.Height))
	copy(img.Pix, a.pix)
	return img
}
