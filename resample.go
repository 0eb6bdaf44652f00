package distfield

import (
	"fmt"
	"math"

	"github.com/gogpu/distfield/internal/filter"
)

// Resample resizes a normalised field to w x h with the engine's
// Mitchell–Netravali filter. Results are clamped to [0, 1]. Resampling to
// the field's own size returns an exact copy. Reductions by more than two
// pass through halved levels, so Resample(f, 16, 16) on a 64 x 64 field
// equals resampling to 32 x 32 and then to 16 x 16.
func (e *Engine) Resample(f *Grid[float64], w, h int) (*Grid[float64], error) {
	if err := f.check(); err != nil {
		return nil, err
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: target %dx%d", ErrInvalidDimensions, w, h)
	}
	out := NewGrid[float64](w, h)
	filter.Resize(e.cfg.kernel(), f.Pix, f.W, f.H, out.Pix, w, h, e.floats)
	return out, nil
}

// ScaledSize returns the size of a w x h grid reduced by factor, rounded
// up so that no dimension reaches zero.
func ScaledSize(w, h, factor int) (int, int) {
	if factor <= 1 {
		return w, h
	}
	return max((w+factor-1)/factor, 1), max((h+factor-1)/factor, 1)
}

// Quantize converts a normalised field to bytes with round(255 * (1 - v)).
// Values outside [0, 1] are clamped; NaN maps to the boundary value.
func Quantize(f *Grid[float64]) *Grid[uint8] {
	out := NewGrid[uint8](f.W, f.H)
	quantize(out.Pix, f.Pix)
	return out
}

// QuantizeValue converts one normalised field value to a byte.
func QuantizeValue(v float64) uint8 {
	switch {
	case math.IsNaN(v):
		v = 0.5
	case v < 0:
		v = 0
	case v > 1:
		v = 1
	}
	return uint8(math.Round(255 * (1 - v)))
}

// Dequantize converts a byte back to a normalised field value.
func Dequantize(b uint8) float64 {
	return 1 - float64(b)/255
}

func quantize(dst []uint8, src []float64) {
	for i, v := range src {
		dst[i] = QuantizeValue(v)
	}
}
