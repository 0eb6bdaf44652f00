package atlas

import "testing"

func TestShelfPacker_Basic(t *testing.T) {
	p := newShelfPacker(100, 100, 2)

	x, y, ok := p.allocate(20, 20)
	if !ok || x != 0 || y != 0 {
		t.Fatalf("first = (%d,%d,%v), want (0,0,true)", x, y, ok)
	}
	x, y, ok = p.allocate(20, 20)
	if !ok || x != 22 || y != 0 { // 20 + 2 padding
		t.Errorf("second = (%d,%d,%v), want (22,0,true)", x, y, ok)
	}
}

func TestShelfPacker_Full(t *testing.T) {
	p := newShelfPacker(50, 50, 2)
	count := 0
	for {
		if _, _, ok := p.allocate(20, 20); !ok {
			break
		}
		count++
		if count > 100 {
			t.Fatal("packer never filled up")
		}
	}
	if count != 4 { // 2x2 cells of 20+2 in 50x50
		t.Errorf("packed %d cells, want 4", count)
	}
}

func TestShelfPacker_BestFitShelf(t *testing.T) {
	p := newShelfPacker(64, 128, 0)

	p.allocate(40, 30) // shelf 0, height 30
	p.allocate(40, 10) // too wide for shelf 0, opens shelf 1 at y=30

	// A 10px item fits on both shelves; the shorter one wastes less.
	_, y, ok := p.allocate(10, 10)
	if !ok {
		t.Fatal("allocation failed")
	}
	if y != 30 {
		t.Errorf("y = %d, want 30 (the 10px shelf)", y)
	}
}

func TestShelfPacker_GrowLastShelf(t *testing.T) {
	p := newShelfPacker(100, 100, 0)
	p.allocate(10, 10)
	x, y, ok := p.allocate(10, 30)
	if !ok || x != 10 || y != 0 {
		t.Errorf("taller item = (%d,%d,%v), want (10,0,true)", x, y, ok)
	}
	if p.shelves[0].height != 30 {
		t.Errorf("shelf height = %d, want 30", p.shelves[0].height)
	}
}

func TestShelfPacker_Rejects(t *testing.T) {
	p := newShelfPacker(32, 32, 1)
	for _, sz := range [][2]int{{0, 5}, {5, -1}, {33, 1}, {1, 33}} {
		if _, _, ok := p.allocate(sz[0], sz[1]); ok {
			t.Errorf("allocate(%d, %d) succeeded", sz[0], sz[1])
		}
	}
	if _, _, ok := p.allocate(32, 32); !ok {
		t.Error("full-size allocation failed")
	}
}

func TestShelfPacker_ResetAndUtilization(t *testing.T) {
	p := newShelfPacker(10, 10, 0)
	p.allocate(5, 10)
	if u := p.utilization(); u != 0.5 {
		t.Errorf("utilization = %v, want 0.5", u)
	}
	p.reset()
	if u := p.utilization(); u != 0 {
		t.Errorf("utilization after reset = %v", u)
	}
	if x, y, ok := p.allocate(10, 10); !ok || x != 0 || y != 0 {
		t.Errorf("after reset = (%d,%d,%v)", x, y, ok)
	}
}
