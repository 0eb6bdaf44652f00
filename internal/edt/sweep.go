package edt

import "math"

// Far is the distance of a pixel that no boundary information has reached.
var Far = math.Inf(1)

// DefaultEpsilon is the minimum improvement a candidate distance must bring
// before it replaces the current estimate.
const DefaultEpsilon = 1e-3

// neighbor is a pixel offset consulted during a scan.
type neighbor struct {
	ox, oy int
}

// Neighbour sets for the four scans. Order matters for ties: the first
// candidate within epsilon of the best one wins.
var (
	aboveLeft  = []neighbor{{-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	fromRight  = []neighbor{{1, 0}}
	belowRight = []neighbor{{1, 0}, {1, 1}, {0, 1}, {-1, 1}}
	fromLeft   = []neighbor{{-1, 0}}
)

// Scratch holds the working grids of one transform. A Scratch can be reused
// for any number of transforms, but not concurrently.
type Scratch struct {
	gx, gy []float64

	// Dist is the unsigned distance per pixel.
	Dist []float64

	// DX and DY hold the offset from each pixel to the boundary pixel
	// believed nearest.
	DX, DY []int
}

// NewScratch allocates working grids for images of n pixels.
func NewScratch(n int) *Scratch {
	s := &Scratch{}
	s.grow(n)
	return s
}

// Len returns the number of pixels the scratch grids hold.
func (s *Scratch) Len() int {
	return len(s.Dist)
}

func (s *Scratch) grow(n int) {
	if cap(s.Dist) < n {
		s.gx = make([]float64, n)
		s.gy = make([]float64, n)
		s.Dist = make([]float64, n)
		s.DX = make([]int, n)
		s.DY = make([]int, n)
		return
	}
	s.gx = s.gx[:n]
	s.gy = s.gy[:n]
	s.Dist = s.Dist[:n]
	s.DX = s.DX[:n]
	s.DY = s.DY[:n]
}

// Options control a transform.
type Options struct {
	// Epsilon is the update tolerance. Zero means DefaultEpsilon.
	Epsilon float64

	// Rounds is the maximum number of four-pass rounds. A round that
	// accepts no update ends the transform early. Zero means one round.
	Rounds int
}

// Transform computes the unsigned distance field of img (w*h samples in
// [0, 1], row-major) into s.Dist. The nearest-boundary vectors are left in
// s.DX and s.DY. s is grown as needed.
//
// Pixels that no boundary reaches keep distance Far. This only happens when
// img has no sample above zero.
func Transform(img []float64, w, h int, opts Options, s *Scratch) {
	s.grow(w * h)
	Gradient(img, w, h, s.gx, s.gy)

	t := &transform{
		img:  img,
		w:    w,
		h:    h,
		eps:  opts.Epsilon,
		s:    s,
		dist: s.Dist,
		dx:   s.DX,
		dy:   s.DY,
	}
	if t.eps <= 0 {
		t.eps = DefaultEpsilon
	}
	t.seed()

	rounds := max(opts.Rounds, 1)
	for range rounds {
		changed := t.sweepDown()
		if t.sweepUp() {
			changed = true
		}
		if !changed {
			break
		}
	}
}

// transform is the state of one sweep.
type transform struct {
	img  []float64
	w, h int
	eps  float64
	s    *Scratch

	dist   []float64
	dx, dy []int
}

// seed initialises every pixel to point at itself.
func (t *transform) seed() {
	for i, a := range t.img {
		t.dx[i] = 0
		t.dy[i] = 0
		switch {
		case a <= 0:
			t.dist[i] = Far
		case a < 1:
			// Border pixels have a zero gradient, which falls back to 0.5-a.
			t.dist[i] = EdgeDistance(t.s.gx[i], t.s.gy[i], a)
		default:
			t.dist[i] = 0
		}
	}
}

// sweepDown runs passes 1 and 2.
func (t *transform) sweepDown() bool {
	changed := false
	for y := 0; y < t.h; y++ {
		if t.scan(y, 0, t.w, 1, aboveLeft) {
			changed = true
		}
		if t.scan(y, t.w-2, -1, -1, fromRight) {
			changed = true
		}
	}
	return changed
}

// sweepUp runs passes 3 and 4.
func (t *transform) sweepUp() bool {
	changed := false
	for y := t.h - 1; y >= 0; y-- {
		if t.scan(y, t.w-1, -1, -1, belowRight) {
			changed = true
		}
		if t.scan(y, 1, t.w, 1, fromLeft) {
			changed = true
		}
	}
	return changed
}

// scan visits row y from x0 towards x1 (exclusive) and relaxes every pixel
// against the given neighbours. Neighbours outside the image are skipped.
func (t *transform) scan(y, x0, x1, step int, nbrs []neighbor) bool {
	changed := false
	for x := x0; x != x1; x += step {
		i := y*t.w + x
		for _, n := range nbrs {
			// Pixels at or inside the boundary cannot improve.
			if t.dist[i] <= 0 {
				break
			}
			nx, ny := x+n.ox, y+n.oy
			if nx < 0 || nx >= t.w || ny < 0 || ny >= t.h {
				continue
			}
			if t.relax(i, n.ox, n.oy) {
				changed = true
			}
		}
	}
	return changed
}

// relax offers pixel i the nearest boundary pixel of its neighbour at
// offset (ox, oy) and reports whether pixel i improved.
func (t *transform) relax(i, ox, oy int) bool {
	n := i + ox + oy*t.w
	ndx, ndy := t.dx[n], t.dy[n]
	vx, vy := ndx+ox, ndy+oy

	d := t.candidate(n+ndx+ndy*t.w, vx, vy)
	if d < t.dist[i]-t.eps {
		t.dist[i] = d
		t.dx[i] = vx
		t.dy[i] = vy
		return true
	}
	return false
}

// candidate returns the distance to boundary pixel c seen through the
// integer offset (vx, vy).
func (t *transform) candidate(c, vx, vy int) float64 {
	a := min(max(t.img[c], 0), 1)
	if a == 0 {
		return Far
	}

	if vx == 0 && vy == 0 {
		return EdgeDistance(t.s.gx[c], t.s.gy[c], a)
	}

	// Far from the edge the offset direction approximates the gradient
	// better than the local estimate does.
	fx, fy := float64(vx), float64(vy)
	return math.Sqrt(fx*fx+fy*fy) + EdgeDistance(fx, fy, a)
}
