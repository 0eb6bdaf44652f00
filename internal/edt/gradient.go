package edt

import "math"

// sqrt2 weights the axis taps of the gradient kernel so that diagonal and
// axis neighbours contribute isotropically.
const sqrt2 = math.Sqrt2

// Gradient estimates the normalised edge gradient of img for boundary
// pixels (0 < a < 1) that have a full 3x3 neighbourhood. All other entries
// of gx and gy are set to zero.
func Gradient(img []float64, w, h int, gx, gy []float64) {
	clear(gx)
	clear(gy)

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			k := y*w + x
			if a := img[k]; a <= 0 || a >= 1 {
				continue
			}

			up, down := k-w, k+w
			sx := -img[up-1] - sqrt2*img[k-1] - img[down-1] +
				img[up+1] + sqrt2*img[k+1] + img[down+1]
			sy := -img[up-1] - sqrt2*img[up] - img[up+1] +
				img[down-1] + sqrt2*img[down] + img[down+1]

			if l := sx*sx + sy*sy; l > 0 {
				l = math.Sqrt(l)
				sx /= l
				sy /= l
			}
			gx[k] = sx
			gy[k] = sy
		}
	}
}
