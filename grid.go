package distfield

import "fmt"

// Sample is the element type of a Grid.
type Sample interface {
	~float64 | ~uint8
}

// Grid is a dense row-major 2D buffer. The sample at (x, y) is
// Pix[y*W+x].
type Grid[T Sample] struct {
	W, H int
	Pix  []T
}

// NewGrid allocates a zeroed w x h grid. Negative sizes are treated as 0.
func NewGrid[T Sample](w, h int) *Grid[T] {
	w, h = max(w, 0), max(h, 0)
	return &Grid[T]{W: w, H: h, Pix: make([]T, w*h)}
}

// GridFrom wraps pix as a w x h grid without copying.
func GridFrom[T Sample](w, h int, pix []T) (*Grid[T], error) {
	g := &Grid[T]{W: w, H: h, Pix: pix}
	if err := g.check(); err != nil {
		return nil, err
	}
	return g, nil
}

// check reports whether the grid has usable dimensions.
func (g *Grid[T]) check() error {
	if g == nil {
		return ErrInvalidDimensions
	}
	if g.W <= 0 || g.H <= 0 || len(g.Pix) != g.W*g.H {
		return fmt.Errorf("%w: %dx%d with %d samples", ErrInvalidDimensions, g.W, g.H, len(g.Pix))
	}
	return nil
}

// In reports whether (x, y) lies inside the grid.
func (g *Grid[T]) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.W && y < g.H
}

// At returns the sample at (x, y), or zero outside the grid.
func (g *Grid[T]) At(x, y int) T {
	if !g.In(x, y) {
		var zero T
		return zero
	}
	return g.Pix[y*g.W+x]
}

// Set stores v at (x, y). Points outside the grid are ignored.
func (g *Grid[T]) Set(x, y int, v T) {
	if g.In(x, y) {
		g.Pix[y*g.W+x] = v
	}
}

// Row returns the samples of row y.
func (g *Grid[T]) Row(y int) []T {
	return g.Pix[y*g.W : (y+1)*g.W]
}

// Clone returns a deep copy of g.
func (g *Grid[T]) Clone() *Grid[T] {
	c := &Grid[T]{W: g.W, H: g.H, Pix: make([]T, len(g.Pix))}
	copy(c.Pix, g.Pix)
	return c
}

// MirrorX returns g flipped horizontally.
func (g *Grid[T]) MirrorX() *Grid[T] {
	m := NewGrid[T](g.W, g.H)
	for y := 0; y < g.H; y++ {
		src, dst := g.Row(y), m.Row(y)
		for x := range src {
			dst[g.W-1-x] = src[x]
		}
	}
	return m
}

// Pad returns a copy of g surrounded by margin samples of zero on every side.
func (g *Grid[T]) Pad(margin int) *Grid[T] {
	margin = max(margin, 0)
	p := NewGrid[T](g.W+2*margin, g.H+2*margin)
	for y := 0; y < g.H; y++ {
		copy(p.Pix[(y+margin)*p.W+margin:], g.Row(y))
	}
	return p
}

// Sub returns a copy of the w x h window at (x, y). Parts of the window
// outside g are zero.
func (g *Grid[T]) Sub(x, y, w, h int) *Grid[T] {
	s := NewGrid[T](w, h)
	for j := 0; j < s.H; j++ {
		for i := 0; i < s.W; i++ {
			s.Pix[j*s.W+i] = g.At(x+i, y+j)
		}
	}
	return s
}
