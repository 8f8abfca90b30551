//go:build unix

package mmap

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Supported reports whether Map returns real page mappings on this platform.
const Supported = true

// Map returns a private anonymous read-write mapping of at least size bytes.
// The returned slice has length size; its capacity is the page-rounded
// mapping size and must be passed unchanged to Unmap.
func Map(size int) ([]byte, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	length, ok := roundToPage(size)
	if !ok {
		return nil, fmt.Errorf("mmap: %w (%d bytes)", ErrInvalidSize, size)
	}
	data, err := unix.Mmap(-1, 0, length, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("mmap: map %d bytes: %w", length, err)
	}
	return data[:size], nil
}

// Unmap releases a mapping returned by Map. Unmapping a slice that is not a
// live mapping is reported as ErrNotMapped.
func Unmap(b []byte) error {
	if cap(b) == 0 {
		return nil
	}
	err := unix.Munmap(b[:cap(b)])
	if errors.Is(err, unix.EINVAL) {
		return ErrNotMapped
	}
	return err
}
