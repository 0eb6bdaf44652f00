package distfield

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the engine entry points.
var (
	// ErrInvalidDimensions is returned when a grid has a non-positive width
	// or height, or a pixel buffer whose length is not width*height.
	ErrInvalidDimensions = errors.New("distfield: invalid grid dimensions")

	// ErrCoverageRange is returned when a coverage sample lies outside
	// [0, 1] or is NaN. Use errors.As with *CoverageError for the location.
	ErrCoverageRange = errors.New("distfield: coverage sample out of range")
)

// CoverageError reports the first coverage sample outside [0, 1].
type CoverageError struct {
	X, Y  int
	Value float64
}

func (e *CoverageError) Error() string {
	return fmt.Sprintf("distfield: coverage at (%d, %d) is %v, want [0, 1]", e.X, e.Y, e.Value)
}

func (e *CoverageError) Unwrap() error { return ErrCoverageRange }

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "distfield: invalid config." + e.Field + ": " + e.Reason
}
