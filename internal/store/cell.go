package store

import (
	"sync"
	"sync/atomic"
)

// cell holds an immutable snapshot of a store's state. Writers are serialised by
// mu and publish a whole new snapshot; readers load the pointer without locking
// and never observe a half-applied mutation.
type cell[S any] struct {
	mu        sync.Mutex
	cur       atomic.Pointer[S]
	listeners []func()
}

func newCell[S any](initial *S) *cell[S] {
	c := &cell[S]{}
	c.cur.Store(initial)
	return c
}

func (c *cell[S]) load() *S {
	return c.cur.Load()
}

// update computes the next snapshot from the current one. fn returns nil when
// nothing changed, in which case listeners are not notified.
func (c *cell[S]) update(fn func(cur *S) *S) bool {
	c.mu.Lock()
	next := fn(c.cur.Load())
	if next == nil {
		c.mu.Unlock()
		return false
	}
	c.cur.Store(next)
	listeners := append([]func(){}, c.listeners...)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
	return true
}

// replace swaps in a snapshot without notifying listeners. Used when loading
// persisted state, which must not be written straight back.
func (c *cell[S]) replace(next *S) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur.Store(next)
}

func (c *cell[S]) subscribe(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}
