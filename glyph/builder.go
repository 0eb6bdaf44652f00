package glyph

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/distfield"
	"github.com/gogpu/distfield/atlas"
	"github.com/gogpu/distfield/internal/parallel"
	"github.com/gogpu/distfield/text"
)

// Entry is a glyph placed in the atlas.
type Entry struct {
	GID     text.GlyphID
	Region  atlas.Region
	Metrics text.Metrics
}

// Skipped is a glyph a build could not place.
type Skipped struct {
	GID  text.GlyphID
	Rune rune // 0 when the glyph came from shaping
	Err  error
}

// Report summarises one Add call.
type Report struct {
	// Placed counts glyphs written to the atlas, including glyphs
	// without ink that only carry metrics.
	Placed int

	// Cached counts glyphs that were already in the builder.
	Cached int

	Skipped []Skipped
}

// Merge adds the counts and skipped glyphs of o to r.
func (r *Report) Merge(o Report) {
	r.Placed += o.Placed
	r.Cached += o.Cached
	r.Skipped = append(r.Skipped, o.Skipped...)
}

// Builder fills an atlas with glyphs of one face at one size.
//
// Glyph fields are generated in parallel; placement into the atlas follows
// request order, so the same requests give the same layout.
//
// Thread safety: All methods are safe for concurrent use.
type Builder struct {
	gen   *Generator
	face  *text.Face
	ppem  float64
	atlas *atlas.Atlas

	mu      sync.RWMutex
	entries map[text.GlyphID]Entry
	runes   map[rune]text.GlyphID
}

// NewBuilder creates a builder that renders face at ppem pixels per em
// into at.
func NewBuilder(face *text.Face, ppem float64, at *atlas.Atlas, opts ...Option) (*Builder, error) {
	if face == nil || at == nil {
		return nil, fmt.Errorf("%w: nil face or atlas", ErrInvalidOption)
	}
	if !(ppem > 0) {
		return nil, fmt.Errorf("%w: ppem %v", ErrInvalidOption, ppem)
	}
	gen, err := NewGenerator(opts...)
	if err != nil {
		return nil, err
	}
	return &Builder{
		gen:     gen,
		face:    face,
		ppem:    ppem,
		atlas:   at,
		entries: make(map[text.GlyphID]Entry),
		runes:   make(map[rune]text.GlyphID),
	}, nil
}

// Atlas returns the atlas being filled.
func (b *Builder) Atlas() *atlas.Atlas { return b.atlas }

// Reset clears the atlas and forgets every entry. Generated fields stay in
// the generator cache, so adding the same glyphs again is cheap.
func (b *Builder) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.atlas.Reset()
	clear(b.entries)
	clear(b.runes)
}

// request is one glyph to build.
type request struct {
	gid  text.GlyphID
	r    rune
	done bool // resolved without generating (cached)
}

// AddRunes adds the glyphs for every rune of cs. Runes the face cannot map
// are reported as skipped.
func (b *Builder) AddRunes(ctx context.Context, cs text.Charset) (Report, error) {
	var rep Report
	reqs := make([]request, 0, cs.Len())
	for _, r := range cs.Runes() {
		gid, err := b.face.GlyphIndex(r)
		if err != nil {
			b.skip(&rep, Skipped{Rune: r, Err: err})
			continue
		}
		b.mu.Lock()
		b.runes[r] = gid
		b.mu.Unlock()
		reqs = append(reqs, request{gid: gid, r: r})
	}
	return b.build(ctx, reqs, rep)
}

// AddText shapes s and adds every glyph the shaped text uses, including
// ligatures.
func (b *Builder) AddText(ctx context.Context, s string) (Report, error) {
	shaper, err := b.face.Shaper()
	if err != nil {
		return Report{}, err
	}
	gids := shaper.GlyphIDs(s)
	reqs := make([]request, len(gids))
	for i, gid := range gids {
		reqs[i] = request{gid: gid}
	}
	return b.build(ctx, reqs, Report{})
}

// AddGlyphs adds glyphs by index.
func (b *Builder) AddGlyphs(ctx context.Context, gids ...text.GlyphID) (Report, error) {
	reqs := make([]request, len(gids))
	for i, gid := range gids {
		reqs[i] = request{gid: gid}
	}
	return b.build(ctx, reqs, Report{})
}

// Lookup returns the entry for gid.
func (b *Builder) Lookup(gid text.GlyphID) (Entry, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	e, ok := b.entries[gid]
	return e, ok
}

// LookupRune returns the entry for the glyph r was mapped to by AddRunes.
func (b *Builder) LookupRune(r rune) (Entry, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	gid, ok := b.runes[r]
	if !ok {
		return Entry{}, false
	}
	e, ok := b.entries[gid]
	return e, ok
}

// RuneMap returns the glyph index of every rune added with AddRunes that
// was placed.
func (b *Builder) RuneMap() map[rune]text.GlyphID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make(map[rune]text.GlyphID, len(b.runes))
	for r, gid := range b.runes {
		if _, ok := b.entries[gid]; ok {
			out[r] = gid
		}
	}
	return out
}

// Entries returns all placed glyphs ordered by glyph index.
func (b *Builder) Entries() []Entry {
	b.mu.RLock()
	out := make([]Entry, 0, len(b.entries))
	for _, e := range b.entries {
		out = append(out, e)
	}
	b.mu.RUnlock()
	slices.SortFunc(out, func(a, c Entry) int { return int(a.GID) - int(c.GID) })
	return out
}

type result struct {
	g   *Glyph
	err error
}

// build generates the requested glyphs in parallel and places them in
// order.
func (b *Builder) build(ctx context.Context, reqs []request, rep Report) (Report, error) {
	// Drop glyphs already placed and duplicates within reqs.
	seen := make(map[text.GlyphID]bool, len(reqs))
	b.mu.RLock()
	for i := range reqs {
		gid := reqs[i].gid
		if _, ok := b.entries[gid]; ok || seen[gid] {
			reqs[i].done = true
			rep.Cached++
		}
		seen[gid] = true
	}
	b.mu.RUnlock()

	todo := make([]int, 0, len(reqs))
	for i := range reqs {
		if !reqs[i].done {
			todo = append(todo, i)
		}
	}
	results := make([]result, len(reqs))
	err := parallel.For(ctx, b.gen.opts.workers, len(todo), func(k int) {
		i := todo[k]
		g, err := b.gen.Generate(b.face, reqs[i].gid, b.ppem)
		results[i] = result{g: g, err: err}
	})
	if err != nil {
		return rep, err
	}

	for i, req := range reqs {
		if req.done {
			continue
		}
		res := results[i]
		if res.err != nil {
			b.skip(&rep, Skipped{GID: req.gid, Rune: req.r, Err: res.err})
			continue
		}
		placed, err := b.place(res.g)
		if err != nil {
			b.skip(&rep, Skipped{GID: req.gid, Rune: req.r, Err: err})
			continue
		}
		if placed {
			rep.Placed++
		} else {
			rep.Cached++
		}
	}

	distfield.Logger().Info("glyph: build done",
		"placed", rep.Placed, "cached", rep.Cached, "skipped", len(rep.Skipped),
		"utilization", b.atlas.Utilization())
	return rep, nil
}

// place allocates a region for g, copies it in and records the entry. It
// reports false when a concurrent build placed g first.
func (b *Builder) place(g *Glyph) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.entries[g.GID]; ok {
		return false, nil
	}
	region, err := b.atlas.Allocate(g.Width, g.Height)
	if err != nil {
		return false, err
	}
	if err := b.atlas.Set(region, g.Pix); err != nil {
		return false, err
	}
	b.entries[g.GID] = Entry{GID: g.GID, Region: region, Metrics: g.Metrics}
	return true, nil
}

func (b *Builder) skip(rep *Report, s Skipped) {
	rep.Skipped = append(rep.Skipped, s)
	reason := "error"
	switch {
	case errors.Is(s.Err, text.ErrGlyphNotFound):
		reason = "not found"
	case errors.Is(s.Err, atlas.ErrAllocationFailed):
		reason = "atlas full"
	}
	distfield.Logger().Warn("glyph: skipped",
		"gid", s.GID, "rune", string(s.Rune), "reason", reason, "err", s.Err)
}
