//go:build !unix

package mmap

import "fmt"

// Supported reports whether Map returns real page mappings on this platform.
const Supported = false

// Map allocates size bytes on the Go heap when anonymous mappings are not available.
func Map(size int) ([]byte, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	length, ok := roundToPage(size)
	if !ok {
		return nil, fmt.Errorf("mmap: %w (%d bytes)", ErrInvalidSize, size)
	}
	return make([]byte, size, length), nil
}

// Unmap is a no-op; heap memory is reclaimed by the garbage collector.
func Unmap(b []byte) error {
	return nil
}
