package alloc

import (
	"sync"
	"unsafe"
)

// Counting wraps an Allocator and records every allocation that has not been
// released yet. It is safe for concurrent use.
type Counting struct {
	inner Allocator

	mu      sync.Mutex
	live    map[*byte]int
	allocs  int
	frees   int
	failed  int
	foreign int
}

// NewCounting wraps inner. A nil inner wraps Heap.
func NewCounting(inner Allocator) *Counting {
	if inner == nil {
		inner = Heap{}
	}
	return &Counting{inner: inner, live: make(map[*byte]int)}
}

// Allocate forwards to the wrapped allocator and records the result.
func (c *Counting) Allocate(size int) []byte {
	b := c.inner.Allocate(size)

	c.mu.Lock()
	defer c.mu.Unlock()
	if len(b) == 0 {
		c.failed++
		return nil
	}
	c.allocs++
	c.live[unsafe.SliceData(b)] = len(b)
	return b
}

// Deallocate forwards to the wrapped allocator. Slices this allocator did not
// hand out, or already released, are counted as foreign and not forwarded.
func (c *Counting) Deallocate(b []byte) {
	if len(b) == 0 {
		return
	}
	key := unsafe.SliceData(b)

	c.mu.Lock()
	if _, ok := c.live[key]; !ok {
		c.foreign++
		c.mu.Unlock()
		return
	}
	delete(c.live, key)
	c.frees++
	c.mu.Unlock()

	c.inner.Deallocate(b)
}

// Stats is a snapshot of a Counting allocator.
type Stats struct {
	Allocations   int // Successful Allocate calls
	Deallocations int // Forwarded Deallocate calls
	Failures      int // Allocate calls that returned nil
	Foreign       int // Deallocate calls for unknown or released slices
	Live          int // Allocations not yet released
	LiveBytes     int // Bytes held by live allocations
}

// Stats returns the current counters.
func (c *Counting) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := Stats{
		Allocations:   c.allocs,
		Deallocations: c.frees,
		Failures:      c.failed,
		Foreign:       c.foreign,
		Live:          len(c.live),
	}
	for _, n := range c.live {
		s.LiveBytes += n
	}
	return s
}

// Live returns the number of allocations not yet released.
func (c *Counting) Live() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.live)
}
