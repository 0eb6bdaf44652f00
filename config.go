package distfield

import (
	"math"

	"github.com/gogpu/distfield/internal/edt"
	"github.com/gogpu/distfield/internal/filter"
)

// Config holds the engine parameters.
type Config struct {
	// Epsilon is the minimum improvement a candidate distance must bring
	// during the sweep before it replaces the current estimate.
	// Default: 1e-3
	Epsilon float64

	// Rounds is the maximum number of four-pass sweep rounds. One round is
	// the classic transform; further rounds run only while the previous one
	// still changed something, and fix residual errors on long concave
	// shapes.
	// Default: 1
	Rounds int

	// FilterB and FilterC are the Mitchell–Netravali constants used by
	// Resample.
	// Default: 1/3, 1/3
	FilterB, FilterC float64
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		Epsilon: edt.DefaultEpsilon,
		Rounds:  1,
		FilterB: 1.0 / 3,
		FilterC: 1.0 / 3,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !(c.Epsilon > 0) || c.Epsilon >= 0.5 {
		return &ConfigError{Field: "Epsilon", Reason: "must be in (0, 0.5)"}
	}
	if c.Rounds < 1 {
		return &ConfigError{Field: "Rounds", Reason: "must be at least 1"}
	}
	if c.Rounds > 64 {
		return &ConfigError{Field: "Rounds", Reason: "must be at most 64"}
	}
	if !inUnit(c.FilterB) {
		return &ConfigError{Field: "FilterB", Reason: "must be in [0, 1]"}
	}
	if !inUnit(c.FilterC) {
		return &ConfigError{Field: "FilterC", Reason: "must be in [0, 1]"}
	}
	return nil
}

func (c *Config) edtOptions() edt.Options {
	return edt.Options{Epsilon: c.Epsilon, Rounds: c.Rounds}
}

func (c *Config) kernel() filter.Kernel {
	return filter.Kernel{B: c.FilterB, C: c.FilterC}
}

func inUnit(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}
