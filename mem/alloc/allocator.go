package alloc

// Allocator obtains and releases storage for growable buffers.
//
// Allocate returns a slice of exactly size bytes, or nil when the memory
// cannot be obtained. Deallocate receives a slice previously returned by the
// same allocator, unchanged, and is called at most once per allocation.
type Allocator interface {
	Allocate(size int) []byte
	Deallocate(b []byte)
}

// Heap allocates from the Go runtime. Deallocate is a no-op.
type Heap struct{}

// Allocate returns a zeroed slice of size bytes.
func (Heap) Allocate(size int) []byte {
	if size <= 0 {
		return nil
	}
	return make([]byte, size)
}

// Deallocate does nothing; the garbage collector reclaims the slice.
func (Heap) Deallocate([]byte) {}

// None never allocates.
type None struct{}

// Allocate always fails.
func (None) Allocate(int) []byte { return nil }

// Deallocate does nothing.
func (None) Deallocate([]byte) {}

// Funcs adapts a plain function pair to Allocator. A nil Alloc fails every
// request; a nil Free makes Deallocate a no-op.
type Funcs struct {
	Alloc func(size int) []byte
	Free  func(b []byte)
}

// Allocate calls f.Alloc. A result shorter than size counts as a failure.
func (f Funcs) Allocate(size int) []byte {
	if f.Alloc == nil || size <= 0 {
		return nil
	}
	b := f.Alloc(size)
	if len(b) < size {
		return nil
	}
	return b[:size]
}

// Deallocate calls f.Free.
func (f Funcs) Deallocate(b []byte) {
	if f.Free != nil && b != nil {
		f.Free(b)
	}
}
