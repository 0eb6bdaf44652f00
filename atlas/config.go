package atlas

// Config holds atlas configuration.
type Config struct {
	// Width and Height of the texture in pixels.
	// Default: 512 x 512
	Width, Height int

	// Padding is the gap left between regions to stop bilinear sampling
	// from bleeding into neighbours.
	// Default: 1
	Padding int
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		Width:   512,
		Height:  512,
		Padding: 1,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Width < 16 {
		return &ConfigError{Field: "Width", Reason: "must be at least 16"}
	}
	if c.Width > 8192 {
		return &ConfigError{Field: "Width", Reason: "must be at most 8192"}
	}
	if c.Height < 16 {
		return &ConfigError{Field: "Height", Reason: "must be at least 16"}
	}
	if c.Height > 8192 {
		return &ConfigError{Field: "Height", Reason: "must be at most 8192"}
	}
	if c.Padding < 0 {
		return &ConfigError{Field: "Padding", Reason: "must be non-negative"}
	}
	if c.Padding > 16 {
		return &ConfigError{Field: "Padding", Reason: "must be at most 16"}
	}
	return nil
}
