package alloc

import (
	"github.com/joshuapare/safemem/internal/logger"
	"github.com/joshuapare/safemem/internal/mmap"
)

// Pages allocates anonymous page mappings outside the Go heap. Each
// allocation occupies whole pages. On platforms without mmap it falls back to
// the Go heap.
type Pages struct{}

// Allocate maps size bytes. It returns nil when the mapping fails.
func (Pages) Allocate(size int) []byte {
	b, err := mmap.Map(size)
	if err != nil {
		logger.Warn("page allocation failed", "size", size, "error", err)
		return nil
	}
	return b
}

// Deallocate unmaps b. The slice must not be used afterward.
func (Pages) Deallocate(b []byte) {
	if err := mmap.Unmap(b); err != nil {
		logger.Warn("page release failed", "size", len(b), "error", err)
	}
}
