package atlas

import (
	_ "embed"
	"fmt"
	"image"

	"github.com/gogpu/distfield"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
)

// TextureDescriptor describes an R8Unorm texture matching the atlas.
func (a *Atlas) TextureDescriptor(label string) gputypes.TextureDescriptor {
	return gputypes.TextureDescriptor{
		Label: label,
		Size: gputypes.Extent3D{
			Width:              uint32(a.cfg.Width),  //nolint:gosec // validated <= 8192
			Height:             uint32(a.cfg.Height), //nolint:gosec // validated <= 8192
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatR8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	}
}

// Upload writes the atlas into an R8 texture if anything changed since the
// last successful upload.
func (a *Atlas) Upload(u gpucontext.TextureUpdater) error {
	return a.upload(u, false)
}

// UploadRGBA writes the atlas into an RGBA8 texture with the field
// replicated into every channel, for renderers that only create RGBA
// textures. The shader reads the red channel either way.
func (a *Atlas) UploadRGBA(u gpucontext.TextureUpdater) error {
	return a.upload(u, true)
}

// NewTexture creates an RGBA8 texture holding the atlas, with the field
// replicated into every channel. Later changes are sent with UploadRGBA
// when the returned texture implements gpucontext.TextureUpdater.
func (a *Atlas) NewTexture(c gpucontext.TextureCreator) (gpucontext.Texture, error) {
	a.mu.Lock()
	data := a.rgbaLocked()
	a.dirty = image.Rectangle{}
	a.mu.Unlock()

	tex, err := c.NewTextureFromRGBA(a.cfg.Width, a.cfg.Height, data)
	if err != nil {
		return nil, fmt.Errorf("atlas: create texture: %w", err)
	}
	return tex, nil
}

func (a *Atlas) upload(u gpucontext.TextureUpdater, rgba bool) error {
	a.mu.Lock()
	if a.dirty.Empty() {
		a.mu.Unlock()
		return nil
	}
	var data []byte
	if rgba {
		data = a.rgbaLocked()
	} else {
		data = make([]byte, len(a.pix))
		copy(data, a.pix)
	}
	dirty := a.dirty
	a.mu.Unlock()

	if err := u.UpdateData(data); err != nil {
		return fmt.Errorf("atlas: texture update failed: %w", err)
	}
	distfield.Logger().Debug("atlas: uploaded", "dirty", dirty.String(), "bytes", len(data))

	a.mu.Lock()
	// Regions written during the upload stay dirty.
	if a.dirty == dirty {
		a.dirty = image.Rectangle{}
	}
	a.mu.Unlock()
	return nil
}

func (a *Atlas) rgbaLocked() []byte {
	out := make([]byte, len(a.pix)*4)
	for i, v := range a.pix {
		o := out[i*4 : i*4+4 : i*4+4]
		o[0], o[1], o[2], o[3] = v, v, v, v
	}
	return out
}

//go:embed shaders/sdf_text.wgsl
var sdfTextWGSL string

// ShaderSource returns the WGSL source of the SDF text shader. Bindings:
// group 0 binding 0 uniforms, binding 1 the atlas texture, binding 2 its
// sampler. Entry points are vs_main and fs_main.
func ShaderSource() string {
	return sdfTextWGSL
}

// CompileShader compiles the SDF text shader to SPIR-V.
func CompileShader() ([]byte, error) {
	spirv, err := naga.Compile(sdfTextWGSL)
	if err != nil {
		return nil, fmt.Errorf("atlas: compile shader: %w", err)
	}
	return spirv, nil
}
