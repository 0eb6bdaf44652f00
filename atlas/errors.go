package atlas

import "errors"

// Sentinel errors for atlas package.
var (
	// ErrAllocationFailed is returned when a region does not fit in the
	// remaining space.
	ErrAllocationFailed = errors.New("atlas: no space for region")

	// ErrRegionBounds is returned when a region lies outside the atlas.
	ErrRegionBounds = errors.New("atlas: region out of bounds")

	// ErrDataSize is returned when pixel data does not match a region.
	ErrDataSize = errors.New("atlas: data size does not match region")
)

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "atlas: invalid config." + e.Field + ": " + e.Reason
}
