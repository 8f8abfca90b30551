// Package mmap provides anonymous page mappings used by the page allocator.
package mmap

import (
	"errors"

	"github.com/joshuapare/safemem/internal/format"
)

var (
	// ErrInvalidSize is returned when a mapping size is not positive or cannot be page-rounded.
	ErrInvalidSize = errors.New("mmap: invalid mapping size")
	// ErrNotMapped is returned when unmapping memory that is not a live mapping.
	ErrNotMapped = errors.New("mmap: region not mapped")
)

func roundToPage(size int) (int, bool) {
	return format.AlignUp(size, format.PageSize)
}
