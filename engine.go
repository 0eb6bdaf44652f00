package distfield

import (
	"github.com/gogpu/distfield/internal/edt"
	"github.com/gogpu/distfield/internal/scratch"
)

// Engine computes distance fields with a fixed configuration.
//
// An Engine pools its working buffers by image size, so transforming many
// glyphs of the same size allocates only once per concurrent caller.
//
// Thread safety: Engine is safe for concurrent use.
type Engine struct {
	cfg     Config
	scratch *scratch.Pool[*edt.Scratch]
	floats  *scratch.Pool[[]float64]
}

// NewEngine creates an engine. It returns a *ConfigError if cfg is invalid.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		cfg:     cfg,
		scratch: scratch.NewPool(4, edt.NewScratch),
		floats: scratch.NewPool(8, func(n int) []float64 {
			return make([]float64, n)
		}),
	}, nil
}

// defaultEngine backs the package-level functions.
var defaultEngine = func() *Engine {
	e, err := NewEngine(DefaultConfig())
	if err != nil {
		panic(err)
	}
	return e
}()

// Default returns the engine used by the package-level functions.
func Default() *Engine {
	return defaultEngine
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// DistanceField computes the signed distance field of cov with the default
// engine. See [Engine.DistanceField].
func DistanceField(cov *Grid[float64]) (*Grid[float64], error) {
	return defaultEngine.DistanceField(cov)
}

// DistanceFieldU8 computes the byte distance field of cov with the default
// engine. See [Engine.DistanceFieldU8].
func DistanceFieldU8(cov *Grid[uint8]) (*Grid[uint8], error) {
	return defaultEngine.DistanceFieldU8(cov)
}

// Unsigned computes the single-polarity distance field of cov with the
// default engine. See [Engine.Unsigned].
func Unsigned(cov *Grid[float64]) (*Grid[float64], error) {
	return defaultEngine.Unsigned(cov)
}

// Resample resizes f with the default engine. See [Engine.Resample].
func Resample(f *Grid[float64], w, h int) (*Grid[float64], error) {
	return defaultEngine.Resample(f, w, h)
}
