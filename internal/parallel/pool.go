// Package parallel runs independent jobs across goroutines.
package parallel

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// span is one worker's share of the index range. Other workers steal from
// it through the same cursor once their own span runs dry.
type span struct {
	next atomic.Int64
	end  int64
}

func (s *span) take() (int, bool) {
	i := s.next.Add(1) - 1
	if i >= s.end {
		return 0, false
	}
	return int(i), true
}

// For calls fn(i) for every i in [0, n) using up to workers goroutines.
// If workers is 0 or negative, GOMAXPROCS is used.
//
// Each worker starts on a contiguous block of indices and steals from the
// other blocks when its own is exhausted, so a few slow jobs do not leave
// workers idle. fn must be safe to call concurrently for distinct i.
//
// When ctx is canceled no new job starts; For waits for running jobs and
// returns ctx.Err() if any index was left undone.
func For(ctx context.Context, workers, n int, fn func(i int)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, n)

	spans := make([]span, workers)
	for w := range spans {
		lo := int64(w * n / workers)
		spans[w].next.Store(lo)
		spans[w].end = int64((w + 1) * n / workers)
	}

	var (
		wg   sync.WaitGroup
		done atomic.Int64
	)
	wg.Add(workers)
	for w := range workers {
		go func() {
			defer wg.Done()
			for ctx.Err() == nil {
				i, ok := spans[w].take()
				if !ok {
					if i, ok = steal(spans, w); !ok {
						return
					}
				}
				fn(i)
				done.Add(1)
			}
		}()
	}
	wg.Wait()

	if int(done.Load()) < n {
		return ctx.Err()
	}
	return nil
}

// steal takes an index from the first other span with work left.
func steal(spans []span, self int) (int, bool) {
	for k := 1; k < len(spans); k++ {
		if i, ok := spans[(self+k)%len(spans)].take(); ok {
			return i, true
		}
	}
	return 0, false
}
