package filter

import "math"

// tap is the four source indices and weights that make up one output sample.
type tap struct {
	idx [4]int
	w   [4]float64
}

// Buffers supplies temporary slices of exactly n samples.
// *scratch.Pool[[]float64] implements it.
type Buffers interface {
	Get(n int) []float64
	Put(n int, b []float64)
}

// heapBuffers allocates on every Get.
type heapBuffers struct{}

func (heapBuffers) Get(n int) []float64 { return make([]float64, n) }
func (heapBuffers) Put(int, []float64)   {}

// nextSize is the size of the next reduction level from cur towards dst.
// Reductions by more than two halve first, so a single resize passes
// through the same levels as a chain of halvings.
func nextSize(cur, dst int) int {
	if cur > 2*dst {
		return (cur + 1) / 2
	}
	return dst
}

// axisTaps computes the contributions for resampling an axis of srcN
// samples to dstN samples. Equal lengths give identity taps.
func axisTaps(k Kernel, srcN, dstN int) []tap {
	taps := make([]tap, dstN)
	if srcN == dstN {
		for i := range taps {
			taps[i] = tap{idx: [4]int{i, i, i, i}, w: [4]float64{0, 1, 0, 0}}
		}
		return taps
	}

	scale := float64(srcN) / float64(dstN)
	for i := range taps {
		s := (float64(i)+0.5)*scale - 0.5
		base := math.Floor(s)
		j := int(base)

		tp := tap{w: k.Taps(s - base)}
		for o := range tp.idx {
			tp.idx[o] = clampInt(j-1+o, 0, srcN-1)
		}
		taps[i] = tp
	}
	return taps
}

// Resize resamples the row-major grid src (sw x sh) into dst (dw x dh).
// Results are clamped to [0, 1]. When the dimensions match, src is copied.
//
// An axis reduced by more than a factor of two is first halved until the
// remaining ratio is at most two; the four-tap kernel only sees every
// source sample at those ratios. Temporary levels come from bufs, or the
// heap when bufs is nil.
//
// dst must hold dw*dh samples and must not alias src.
func Resize(k Kernel, src []float64, sw, sh int, dst []float64, dw, dh int, bufs Buffers) {
	if sw == dw && sh == dh {
		copy(dst, src[:sw*sh])
		return
	}
	if bufs == nil {
		bufs = heapBuffers{}
	}

	cur, cw, ch := src[:sw*sh], sw, sh
	var held []float64
	for {
		nw, nh := nextSize(cw, dw), nextSize(ch, dh)
		if nw == dw && nh == dh {
			resizeLevel(k, cur, cw, ch, dst, dw, dh, bufs)
			break
		}
		out := bufs.Get(nw * nh)
		resizeLevel(k, cur, cw, ch, out, nw, nh, bufs)
		if held != nil {
			bufs.Put(cw*ch, held)
		}
		held, cur, cw, ch = out, out, nw, nh
	}
	if held != nil {
		bufs.Put(cw*ch, held)
	}
}

// resizeLevel is one separable pass pair: rows to dw, then columns to dh.
func resizeLevel(k Kernel, src []float64, sw, sh int, dst []float64, dw, dh int, bufs Buffers) {
	tmp := bufs.Get(dw * sh)
	defer bufs.Put(dw*sh, tmp)

	resizeRows(src, sw, sh, tmp, dw, axisTaps(k, sw, dw))
	resizeColumns(tmp, dw, dst, axisTaps(k, sh, dh))
}

// resizeRows resamples every row of src (sw wide) to dw samples.
func resizeRows(src []float64, sw, h int, dst []float64, dw int, taps []tap) {
	for y := 0; y < h; y++ {
		row := src[y*sw : (y+1)*sw]
		out := dst[y*dw : (y+1)*dw]
		for x, tp := range taps {
			var sum float64
			for o := range tp.idx {
				sum += tp.w[o] * row[tp.idx[o]]
			}
			out[x] = clamp01(sum)
		}
	}
}

// resizeColumns resamples every column of src (w wide) to len(taps) samples.
func resizeColumns(src []float64, w int, dst []float64, taps []tap) {
	for y, tp := range taps {
		out := dst[y*w : (y+1)*w]
		for x := 0; x < w; x++ {
			var sum float64
			for o := range tp.idx {
				sum += tp.w[o] * src[tp.idx[o]*w+x]
			}
			out[x] = clamp01(sum)
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
