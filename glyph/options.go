package glyph

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gogpu/distfield"
)

// ErrInvalidOption is returned when an option value is out of range.
var ErrInvalidOption = errors.New("glyph: invalid option")

// Option configures a Generator or Builder.
//
// Example:
//
//	gen, err := glyph.NewGenerator(
//	    glyph.WithPadding(6),
//	    glyph.WithUpscale(8),
//	)
type Option func(*options)

type options struct {
	padding int
	upscale int
	engine  *distfield.Engine
	workers int
	cache   int
}

func defaultOptions() options {
	return options{
		padding: 4,
		upscale: 4,
		engine:  distfield.Default(),
		workers: runtime.GOMAXPROCS(0),
		cache:   512,
	}
}

func (o *options) validate() error {
	if o.padding < 0 || o.padding > 64 {
		return fmt.Errorf("%w: padding %d not in [0, 64]", ErrInvalidOption, o.padding)
	}
	if o.upscale < 1 || o.upscale > 16 {
		return fmt.Errorf("%w: upscale %d not in [1, 16]", ErrInvalidOption, o.upscale)
	}
	if o.engine == nil {
		return fmt.Errorf("%w: nil engine", ErrInvalidOption)
	}
	if o.workers < 1 {
		return fmt.Errorf("%w: workers %d", ErrInvalidOption, o.workers)
	}
	if o.cache < 0 {
		return fmt.Errorf("%w: cache %d", ErrInvalidOption, o.cache)
	}
	return nil
}

// WithPadding sets the background margin around each glyph, in output
// pixels. The margin bounds how far outside the outline the field reaches.
// Default: 4
func WithPadding(px int) Option {
	return func(o *options) {
		o.padding = px
	}
}

// WithUpscale renders glyphs at factor times the requested size and
// downsamples the field. 1 disables resampling.
// Default: 4
func WithUpscale(factor int) Option {
	return func(o *options) {
		o.upscale = factor
	}
}

// WithEngine sets the distance field engine.
// Default: distfield.Default()
func WithEngine(e *distfield.Engine) Option {
	return func(o *options) {
		o.engine = e
	}
}

// WithWorkers sets how many glyphs a Builder processes in parallel.
// Default: GOMAXPROCS
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithCache keeps up to n generated glyphs so rebuilding an atlas, for
// example after atlas.Atlas.Reset, skips the field computation. 0 disables
// the cache.
// Default: 512
func WithCache(n int) Option {
	return func(o *options) {
		o.cache = n
	}
}
