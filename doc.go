// Package distfield turns antialiased coverage images into signed distance
// fields.
//
// # Overview
//
// A coverage image holds, per pixel, the fraction of the pixel covered by a
// shape: 0 is background, 1 is fully inside and anything in between is a
// boundary pixel. distfield runs an anti-aliased Euclidean distance transform
// on the image and on its complement, and combines the two unsigned fields
// into one signed field normalised to [0, 1].
//
//	cov := distfield.NewGrid[float64](64, 64)
//	// ... fill cov.Pix with coverage ...
//	field, err := distfield.DistanceField(cov)
//
// # Sign convention
//
// In the float field, 0 is the deepest inside point, 0.5 is the shape
// boundary and 1 is outside at least as far as the deepest inside point.
// Byte fields invert this: byte = round(255 * (1 - v)), so 255 is far inside,
// 0 is far outside and about 128 lies on the boundary. This matches the usual
// alpha-test convention of SDF text shaders (alpha > 0.5 means ink).
//
// # Normalisation
//
// Each field normalises itself by its own deepest inside distance m: signed
// distances are clamped to [-m, m] and mapped linearly to [0, 1]. Images
// without a boundary produce flat fields: all background gives 1 (byte 0),
// all foreground gives 0 (byte 255).
//
// # Resampling
//
// Fields computed at high resolution can be reduced with [Resample], a
// separable four-tap Mitchell–Netravali filter. Rendering glyphs several
// times larger than the target and downsampling the field gives
// noticeably better edges than transforming a small bitmap directly.
//
// # Concurrency
//
// All functions are safe for concurrent use. An [Engine] keeps pools of
// working buffers keyed by image size; the package-level functions share a
// default engine.
//
// # Logging
//
// distfield is silent by default. Call [SetLogger] to route diagnostics
// from this package and its sub-packages to a [log/slog] logger.
package distfield
