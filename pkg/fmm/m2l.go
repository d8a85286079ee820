package fmm

import (
	"runtime"
	"sync"

	"github.com/xuyanwen2012/fmm2d/internal/xsync"
)

// partialBuf is a worker-local accumulator the size of the whole arena,
// reused across M2L levels via the pass's xsync.Pool so a buffer is
// normally recycled rather than reallocated for every level.
type partialBuf struct {
	u []complex128
}

// computeMultipoles runs the M2L pass: for level l from 2 to the leaf
// level, each source node B adds its monopole contribution, weighted by
// the log kernel evaluated between centers, to every target in its
// interaction list.
//
// Source nodes at a single level are processed across a worker pool;
// each worker accumulates into its own partial buffer (avoiding a lock
// per target write) and the buffers are summed into the arena once the
// level finishes. Levels themselves run strictly in sequence, matching
// the level-synchronous discipline of the upward pass.
func (t *Tree) computeMultipoles() {
	n := t.arena.Len()
	workers := 1
	if t.parallel {
		workers = runtime.GOMAXPROCS(0)
		if workers < 1 {
			workers = 1
		}
	}

	pool := xsync.Pool[partialBuf]{
		New: func() *partialBuf { return &partialBuf{u: make([]complex128, n)} },
		Reset: func(b *partialBuf) {
			for i := range b.u {
				b.u[i] = 0
			}
		},
	}

	for level := 2; level <= t.level; level++ {
		nodes := t.arena.levelNodes(level)
		if len(nodes) == 0 {
			continue
		}

		chunk := (len(nodes) + workers - 1) / workers
		bufs := make([]*partialBuf, 0, workers)
		var mu sync.Mutex
		var wg sync.WaitGroup

		for start := 0; start < len(nodes); start += chunk {
			end := start + chunk
			if end > len(nodes) {
				end = len(nodes)
			}

			wg.Add(1)
			go func(start, end int) {
				defer wg.Done()

				buf := pool.Get()

				for i := start; i < end; i++ {
					src := &nodes[i]
					if src.Mass == 0 {
						continue
					}
					srcCenter := src.Center.Unwrap()
					for _, target := range src.InteractionList {
						dst := t.arena.at(target)
						buf.u[target] += kernel(dst.Center.Unwrap(), srcCenter) * complex(src.Mass, 0)
					}
				}

				mu.Lock()
				bufs = append(bufs, buf)
				mu.Unlock()
			}(start, end)
		}

		wg.Wait()

		for _, buf := range bufs {
			for idx, v := range buf.u {
				if v != 0 {
					t.arena.at(idx).Local += v
				}
			}
			pool.Put(buf)
		}
	}
}
