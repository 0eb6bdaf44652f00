// Package edt implements the anti-aliased Euclidean distance transform used
// by distfield.
//
// The transform takes a coverage image (samples in [0, 1]) and computes, for
// every pixel, the unsigned distance to the nearest object boundary. Pixels
// with fractional coverage are treated as boundary pixels: their distance is
// refined from the local edge gradient and the coverage value, which gives
// sub-pixel accuracy along the contour.
//
// The sweep visits the image in four directional passes:
//
//	1. top to bottom, left to right, consulting left, up-left, up, up-right
//	2. same rows, right to left, consulting right
//	3. bottom to top, right to left, consulting right, down-right, down, down-left
//	4. same rows, left to right, consulting left
//
// Each pixel carries an integer vector to the boundary pixel believed
// nearest. Neighbours hand their vector over; a candidate replaces the
// current estimate only when it is shorter by more than a tolerance, which
// keeps floating-point noise from oscillating between equal candidates.
package edt
