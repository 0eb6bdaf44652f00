// Package scratch provides size-keyed pools of working buffers.
package scratch

import "sync"

// Pool is a thread-safe pool of reusable values grouped by size.
//
// Pool keeps at most maxPerBucket idle values per size, so that a burst of
// glyphs of one size does not pin memory forever. Values of a size that has
// no idle entry are created with the pool's New function.
//
// Thread safety: All methods are safe for concurrent use.
type Pool[T any] struct {
	mu      sync.Mutex
	buckets map[int][]T
	maxSize int
	newFn   func(size int) T
}

// NewPool creates a pool that allocates with newFn and retains at most
// maxPerBucket idle values per size. A maxPerBucket of 0 means unlimited.
func NewPool[T any](maxPerBucket int, newFn func(size int) T) *Pool[T] {
	return &Pool[T]{
		buckets: make(map[int][]T),
		maxSize: maxPerBucket,
		newFn:   newFn,
	}
}

// Get returns an idle value of the given size or creates a new one.
func (p *Pool[T]) Get(size int) T {
	p.mu.Lock()
	bucket := p.buckets[size]
	if n := len(bucket); n > 0 {
		v := bucket[n-1]
		var zero T
		bucket[n-1] = zero
		p.buckets[size] = bucket[:n-1]
		p.mu.Unlock()
		return v
	}
	p.mu.Unlock()

	return p.newFn(size)
}

// Put returns a value of the given size to the pool. Values beyond the
// bucket limit are dropped for the garbage collector.
func (p *Pool[T]) Put(size int, v T) {
	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[size]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[size] = append(bucket, v)
}

// idle returns the number of idle values held for size.
func (p *Pool[T]) idle(size int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.buckets[size])
}
