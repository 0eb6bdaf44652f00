package edt

import "math"

// EdgeDistance estimates the signed distance from the centre of a pixel with
// coverage a to the edge crossing that pixel, given the edge gradient
// (gx, gy). The gradient need not be normalised.
//
// Positive results lie outside the shape, negative results inside. When
// either gradient component is zero the edge is treated as axis aligned and
// the linear estimate 0.5-a is returned.
func EdgeDistance(gx, gy, a float64) float64 {
	if gx == 0 || gy == 0 {
		return 0.5 - a
	}

	if l := math.Sqrt(gx*gx + gy*gy); l > 0 {
		gx /= l
		gy /= l
	}

	// Symmetric under sign flips and transposition: fold into the first
	// octant, gx >= gy >= 0.
	gx = math.Abs(gx)
	gy = math.Abs(gy)
	if gx < gy {
		gx, gy = gy, gx
	}

	a1 := 0.5 * gy / gx
	switch {
	case a < a1:
		// Edge clips a corner triangle of the pixel.
		return 0.5*(gx+gy) - math.Sqrt(2*gx*gy*a)
	case a < 1-a1:
		// Edge crosses two opposite sides.
		return (0.5 - a) * gx
	default:
		// Only a corner triangle is left uncovered.
		return -0.5*(gx+gy) + math.Sqrt(2*gx*gy*(1-a))
	}
}
