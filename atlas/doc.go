// Package atlas packs single-channel distance field glyphs into a shared
// texture.
//
// Regions are allocated with a shelf packer. Allocation failure is an
// ordinary, recoverable condition reported as [ErrAllocationFailed]; callers
// are expected to skip the glyph or start another atlas.
//
// The atlas tracks the rectangle written since the last upload. Upload hands
// the texture data to a GPU texture through gpucontext.TextureUpdater;
// TextureDescriptor describes a matching R8Unorm texture, and the embedded
// WGSL shader samples it with an adjustable edge, smoothing and outline.
package atlas
