package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrGlyphNotFound is returned when a face has no glyph for a rune or
	// the glyph index is out of range.
	ErrGlyphNotFound = errors.New("text: glyph not found")
)

// FaceError is returned when font data cannot be parsed.
type FaceError struct {
	Err error
}

func (e *FaceError) Error() string {
	return "text: cannot load face: " + e.Err.Error()
}

func (e *FaceError) Unwrap() error { return e.Err }
