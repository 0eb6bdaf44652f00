package filter

import "math"

// Kernel is a Mitchell–Netravali cubic reconstruction filter.
//
// B and C shape the filter: (1/3, 1/3) is the recommended compromise between
// blurring and ringing, (1, 0) is the cubic B-spline and (0, 1/2) is
// Catmull-Rom. Any B and C give weights that sum to one.
type Kernel struct {
	B, C float64
}

// Mitchell returns the Mitchell–Netravali kernel with B = C = 1/3.
func Mitchell() Kernel {
	return Kernel{B: 1.0 / 3, C: 1.0 / 3}
}

// CatmullRom returns the interpolating Catmull-Rom kernel.
func CatmullRom() Kernel {
	return Kernel{B: 0, C: 0.5}
}

// BSpline returns the smoothing cubic B-spline kernel.
func BSpline() Kernel {
	return Kernel{B: 1, C: 0}
}

// Support is the kernel radius in samples.
const Support = 2

// Weight evaluates the kernel at offset x.
func (k Kernel) Weight(x float64) float64 {
	b, c := k.B, k.C
	x = math.Abs(x)
	switch {
	case x < 1:
		return ((12-9*b-6*c)*x*x*x +
			(-18+12*b+6*c)*x*x +
			(6 - 2*b)) / 6
	case x < 2:
		return ((-b-6*c)*x*x*x +
			(6*b+30*c)*x*x +
			(-12*b-48*c)*x +
			(8*b + 24*c)) / 6
	default:
		return 0
	}
}

// Taps returns the weights of the four samples at offsets -1, 0, +1 and +2
// from floor(s), where t = s - floor(s) is in [0, 1).
func (k Kernel) Taps(t float64) [4]float64 {
	return [4]float64{
		k.Weight(t + 1),
		k.Weight(t),
		k.Weight(1 - t),
		k.Weight(2 - t),
	}
}
