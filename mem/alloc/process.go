package alloc

import "sync/atomic"

type cell struct {
	a Allocator
}

var installed atomic.Pointer[cell]

// Install makes a the process-wide allocator and returns the previous one.
// A nil a installs Heap.
func Install(a Allocator) Allocator {
	if a == nil {
		a = Heap{}
	}
	prev := installed.Swap(&cell{a: a})
	if prev == nil {
		return Heap{}
	}
	return prev.a
}

// Reset restores Heap as the process-wide allocator.
func Reset() {
	installed.Store(nil)
}

// Installed returns the process-wide allocator.
func Installed() Allocator {
	if c := installed.Load(); c != nil {
		return c.a
	}
	return Heap{}
}
