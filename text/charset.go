package text

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Charset is an ordered set of distinct printable runes.
type Charset struct {
	runes []rune
	index map[rune]struct{}
}

// NewCharset builds a charset from the runes of s after NFC normalisation,
// so that a precomposed "é" and "e" + U+0301 select the same glyph.
// Control characters are dropped; order of first appearance is kept.
func NewCharset(s string) Charset {
	c := Charset{index: make(map[rune]struct{})}
	for _, r := range norm.NFC.String(s) {
		c.add(r)
	}
	return c
}

// RangeCharset returns the runes lo through hi inclusive. The range is
// limited to valid Unicode code points.
func RangeCharset(lo, hi rune) Charset {
	c := Charset{index: make(map[rune]struct{})}
	lo, hi = max(lo, 0), min(hi, unicode.MaxRune)
	for r := lo; r <= hi; r++ {
		c.add(r)
	}
	return c
}

// Presets.
var (
	ASCII  = RangeCharset(0x20, 0x7e)
	Latin1 = ASCII.Union(RangeCharset(0xa0, 0xff))
)

// Preset returns a named charset ("ascii" or "latin1").
func Preset(name string) (Charset, bool) {
	switch strings.ToLower(name) {
	case "ascii":
		return ASCII, true
	case "latin1", "latin-1":
		return Latin1, true
	}
	return Charset{}, false
}

func (c *Charset) add(r rune) {
	if !utf8.ValidRune(r) || unicode.IsControl(r) || r == unicode.ReplacementChar {
		return
	}
	if _, ok := c.index[r]; ok {
		return
	}
	c.index[r] = struct{}{}
	c.runes = append(c.runes, r)
}

// Runes returns the runes in order. The slice must not be modified.
func (c Charset) Runes() []rune { return c.runes }

// Len returns the number of runes.
func (c Charset) Len() int { return len(c.runes) }

// Contains reports whether r is in the set.
func (c Charset) Contains(r rune) bool {
	_, ok := c.index[r]
	return ok
}

// Union returns the runes of c followed by those of o not already in c.
func (c Charset) Union(o Charset) Charset {
	u := Charset{index: make(map[rune]struct{}, len(c.runes)+len(o.runes))}
	for _, r := range c.runes {
		u.add(r)
	}
	for _, r := range o.runes {
		u.add(r)
	}
	return u
}

func (c Charset) String() string { return string(c.runes) }
