package atlas

// shelfPacker places rectangles on horizontal shelves.
//
// Each shelf is as tall as the tallest rectangle placed on it. A rectangle
// goes on the lowest-waste shelf that has room: the shortest shelf at least
// as tall as the rectangle. Failing that, the last shelf may grow if the
// space below it is free, and otherwise a new shelf is opened.
type shelfPacker struct {
	width, height int
	padding       int
	shelves       []shelf
	usedArea      int
}

type shelf struct {
	y, height int
	x         int // next free column
}

func newShelfPacker(width, height, padding int) *shelfPacker {
	return &shelfPacker{
		width:   width,
		height:  height,
		padding: padding,
		shelves: make([]shelf, 0, 16),
	}
}

// allocate reserves a w x h rectangle and returns its top-left corner.
func (p *shelfPacker) allocate(w, h int) (x, y int, ok bool) {
	if w <= 0 || h <= 0 || w > p.width || h > p.height {
		return -1, -1, false
	}

	best := -1
	for i := range p.shelves {
		s := &p.shelves[i]
		if s.x+w > p.width || h > s.height {
			continue
		}
		if best < 0 || s.height < p.shelves[best].height {
			best = i
		}
	}
	if best >= 0 {
		return p.place(&p.shelves[best], w, h)
	}

	// Grow the last shelf.
	if n := len(p.shelves); n > 0 {
		last := &p.shelves[n-1]
		if last.x+w <= p.width && last.y+h <= p.height {
			last.height = h
			return p.place(last, w, h)
		}
	}

	top := p.nextShelfY()
	if top+h > p.height {
		return -1, -1, false
	}
	p.shelves = append(p.shelves, shelf{y: top, height: h})
	return p.place(&p.shelves[len(p.shelves)-1], w, h)
}

func (p *shelfPacker) place(s *shelf, w, h int) (x, y int, ok bool) {
	x, y = s.x, s.y
	s.x += w + p.padding
	p.usedArea += w * h
	return x, y, true
}

// nextShelfY is where a new shelf would start.
func (p *shelfPacker) nextShelfY() int {
	if len(p.shelves) == 0 {
		return 0
	}
	last := p.shelves[len(p.shelves)-1]
	return last.y + last.height + p.padding
}

func (p *shelfPacker) reset() {
	p.shelves = p.shelves[:0]
	p.usedArea = 0
}

func (p *shelfPacker) utilization() float64 {
	if p.width <= 0 || p.height <= 0 {
		return 0
	}
	return float64(p.usedArea) / float64(p.width*p.height)
}
