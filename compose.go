package distfield

import (
	"fmt"
	"math"

	"github.com/gogpu/distfield/internal/edt"
)

// DistanceField computes the signed distance field of a coverage grid.
//
// Every sample of cov must lie in [0, 1]. The result has the same size as
// cov and holds values in [0, 1]: 0 deep inside, 0.5 on the boundary and 1
// outside. cov is not modified.
func (e *Engine) DistanceField(cov *Grid[float64]) (*Grid[float64], error) {
	if err := checkCoverage(cov); err != nil {
		return nil, err
	}
	out := NewGrid[float64](cov.W, cov.H)
	e.compose(cov.Pix, cov.W, cov.H, out.Pix)
	return out, nil
}

// DistanceFieldU8 computes the distance field of a byte coverage grid.
//
// Coverage byte b is read as b/255. The result uses the byte convention
// round(255 * (1 - v)): 255 far inside, 0 far outside.
func (e *Engine) DistanceFieldU8(cov *Grid[uint8]) (*Grid[uint8], error) {
	if err := cov.check(); err != nil {
		return nil, err
	}
	n := cov.W * cov.H

	norm := e.floats.Get(n)
	defer e.floats.Put(n, norm)
	for i, b := range cov.Pix {
		norm[i] = float64(b) / 255
	}

	field := e.floats.Get(n)
	defer e.floats.Put(n, field)
	e.compose(norm, cov.W, cov.H, field)

	out := NewGrid[uint8](cov.W, cov.H)
	quantize(out.Pix, field)
	return out, nil
}

// Unsigned runs the distance transform for one polarity: the distance from
// every pixel to the covered region of cov, in pixels, clamped to be
// non-negative. Pixels no boundary reaches are +Inf, which only happens
// when cov is entirely zero.
func (e *Engine) Unsigned(cov *Grid[float64]) (*Grid[float64], error) {
	if err := checkCoverage(cov); err != nil {
		return nil, err
	}
	out := NewGrid[float64](cov.W, cov.H)
	e.unsigned(cov.Pix, cov.W, cov.H, out.Pix)
	return out, nil
}

// Compose combines an outside and an inside unsigned field into a
// normalised signed field. Both grids must have the same size.
//
// The result is (clamp(outside-inside, -m, m) + m) / 2m where m is the
// magnitude of the most negative difference. If m is zero or not finite
// the result is flat 0.5.
func Compose(outside, inside *Grid[float64]) (*Grid[float64], error) {
	if err := outside.check(); err != nil {
		return nil, err
	}
	if err := inside.check(); err != nil {
		return nil, err
	}
	if outside.W != inside.W || outside.H != inside.H {
		return nil, fmt.Errorf("%w: outside %dx%d, inside %dx%d",
			ErrInvalidDimensions, outside.W, outside.H, inside.W, inside.H)
	}
	out := NewGrid[float64](outside.W, outside.H)
	combine(outside.Pix, inside.Pix, out.Pix)
	return out, nil
}

// compose writes the normalised signed field of cov into out.
func (e *Engine) compose(cov []float64, w, h int, out []float64) {
	var anyInk, anyBackground bool
	for _, v := range cov {
		if v > 0 {
			anyInk = true
		}
		if v < 1 {
			anyBackground = true
		}
	}
	switch {
	case !anyInk:
		Logger().Debug("distfield: flat field, no coverage", "w", w, "h", h)
		fill(out, 1)
		return
	case !anyBackground:
		Logger().Debug("distfield: flat field, full coverage", "w", w, "h", h)
		fill(out, 0)
		return
	}

	n := w * h
	inv := e.floats.Get(n)
	defer e.floats.Put(n, inv)
	inside := e.floats.Get(n)
	defer e.floats.Put(n, inside)

	e.unsigned(cov, w, h, out)
	for i, v := range cov {
		inv[i] = 1 - v
	}
	e.unsigned(inv, w, h, inside)

	if !combine(out, inside, out) {
		Logger().Debug("distfield: flat field, zero range", "w", w, "h", h)
	}
}

// unsigned writes the clamped single-polarity distances of img into dst.
func (e *Engine) unsigned(img []float64, w, h int, dst []float64) {
	n := w * h
	s := e.scratch.Get(n)
	defer e.scratch.Put(n, s)

	edt.Transform(img, w, h, e.cfg.edtOptions(), s)
	for i, d := range s.Dist {
		dst[i] = max(d, 0)
	}
}

// combine writes the normalised difference of outside and inside into out,
// which may alias outside. It reports false when the field had no usable
// range and was filled with 0.5.
func combine(outside, inside, out []float64) bool {
	vmin := math.Inf(1)
	for i := range out {
		c := max(outside[i], 0) - max(inside[i], 0)
		out[i] = c
		if c < vmin {
			vmin = c
		}
	}

	m := math.Abs(vmin)
	if m == 0 || math.IsInf(m, 0) || math.IsNaN(m) {
		fill(out, 0.5)
		return false
	}

	scale := 1 / (2 * m)
	for i, c := range out {
		if math.IsNaN(c) {
			out[i] = 0.5
			continue
		}
		out[i] = (min(max(c, -m), m) + m) * scale
	}
	return true
}

// checkCoverage validates the grid and every sample in it.
func checkCoverage(cov *Grid[float64]) error {
	if err := cov.check(); err != nil {
		return err
	}
	for i, v := range cov.Pix {
		if !(v >= 0 && v <= 1) {
			return &CoverageError{X: i % cov.W, Y: i / cov.W, Value: v}
		}
	}
	return nil
}

func fill(dst []float64, v float64) {
	for i := range dst {
		dst[i] = v
	}
}
