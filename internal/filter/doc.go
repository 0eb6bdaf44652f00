// Package filter provides the reconstruction kernels and separable resampling
// used to rescale distance fields.
//
// Resampling is done one axis at a time with a four-tap Mitchell–Netravali
// cubic. Each output sample maps to a continuous source coordinate; the four
// source samples around it are weighted by the kernel at their offsets and
// summed. Source indices are clamped to the grid, so borders repeat their
// edge samples.
//
// Sample centres are aligned: output pixel i covers source coordinate
// (i+0.5)*src/dst - 0.5. Reductions by more than two go through halved
// levels first (64 -> 32 -> 16), the way a mipmap chain is built, so a
// single resize and the equivalent chain of resizes give the same samples.
package filter
