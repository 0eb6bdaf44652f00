package distfield

import "math"

// Analytic coverage images. Sample (x, y) covers the unit square whose
// centre is (x+0.5, y+0.5); its coverage is approximated from the signed
// distance d between that centre and the shape as clamp(0.5 - d, 0, 1),
// which is exact for an edge aligned with the pixel grid.

// Disc returns the coverage of a filled disc of radius r centred at
// (cx, cy) on a w x h grid.
func Disc(w, h int, cx, cy, r float64) *Grid[float64] {
	return coverage(w, h, func(px, py float64) float64 {
		return math.Hypot(px-cx, py-cy) - r
	})
}

// Ring returns the coverage of a circle of radius r stroked with the given
// width.
func Ring(w, h int, cx, cy, r, width float64) *Grid[float64] {
	half := width / 2
	return coverage(w, h, func(px, py float64) float64 {
		return math.Abs(math.Hypot(px-cx, py-cy)-r) - half
	})
}

// RoundedRect returns the coverage of a filled rectangle centred at
// (cx, cy) with half extents halfW, halfH and rounded corners.
func RoundedRect(w, h int, cx, cy, halfW, halfH, cornerRadius float64) *Grid[float64] {
	return coverage(w, h, func(px, py float64) float64 {
		return roundedRectDistance(px, py, cx, cy, halfW, halfH, cornerRadius)
	})
}

// roundedRectDistance is the signed distance from a point to a rounded
// rectangle. Negative values are inside.
func roundedRectDistance(px, py, cx, cy, halfW, halfH, cornerRadius float64) float64 {
	// First quadrant by symmetry.
	dx := math.Abs(px-cx) - halfW + cornerRadius
	dy := math.Abs(py-cy) - halfH + cornerRadius

	outside := math.Hypot(math.Max(dx, 0), math.Max(dy, 0))
	inside := math.Min(math.Max(dx, dy), 0)

	return outside + inside - cornerRadius
}

func coverage(w, h int, sdf func(px, py float64) float64) *Grid[float64] {
	g := NewGrid[float64](w, h)
	for y := 0; y < g.H; y++ {
		row := g.Row(y)
		for x := range row {
			d := sdf(float64(x)+0.5, float64(y)+0.5)
			row[x] = min(max(0.5-d, 0), 1)
		}
	}
	return g
}
