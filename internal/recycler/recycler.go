// Package recycler recycles scratch buffers for bulk task submission
// (RunAll, Map, ForEach build a slice of futures per call). It wraps
// sync.Pool rather than a bounded, fixed-population free list, since it
// serves an unbounded number of short-lived calls, not a capped population.
package recycler

import "sync"

// BufferPool recycles *[]T scratch slices. Get returns a slice with len 0
// (capacity from a prior Put, or freshly allocated); Put clears it and
// returns it to the pool.
type BufferPool[T any] struct {
	pool sync.Pool
}

// NewBufferPool constructs a BufferPool for slices of T.
func NewBufferPool[T any]() *BufferPool[T] {
	return &BufferPool[T]{
		pool: sync.Pool{
			New: func() interface{} {
				s := make([]T, 0)
				return &s
			},
		},
	}
}

// Get returns a zero-length slice, reused from a prior Put when available.
func (b *BufferPool[T]) Get() []T {
	s := b.pool.Get().(*[]T)
	return (*s)[:0]
}

// Put returns s to the pool for reuse. Elements are cleared first so the
// pool does not keep otherwise-unreachable values (e.g. captured closures)
// alive between calls.
func (b *BufferPool[T]) Put(s []T) {
	var zero T
	for i := range s {
		s[i] = zero
	}
	s = s[:0]
	b.pool.Put(&s)
}
