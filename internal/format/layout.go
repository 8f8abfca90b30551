package format

import "github.com/joshuapare/safemem/internal/buf"

// Layout describes a storage region:
//
//	Offset              Size   Description
//	------------------  -----  ----------------------------------------
//	0                   Head   leading marker (growable regions only)
//	Head                len    content
//	Head+len            1      terminator (always 0)
//	...                        spare capacity
//	storage-Tail        Tail   trailing marker
//
// Content begins immediately after the leading marker. Head and Tail are
// zero when guard markers are disabled.
type Layout struct {
	Head int // marker bytes before the content
	Tail int // marker bytes at the end of the region
}

// FixedLayout returns the layout of fixed buffer storage. The leading marker
// of a fixed buffer lives in its structure, so only the trailing one is in
// the storage.
func FixedLayout(markers bool) Layout {
	if !markers {
		return Layout{}
	}
	return Layout{Tail: MarkerSize}
}

// GrowableLayout returns the layout of a region allocated for a growable buffer.
func GrowableLayout(markers bool) Layout {
	if !markers {
		return Layout{}
	}
	return Layout{Head: MarkerSize, Tail: MarkerSize}
}

// Overhead is the number of storage bytes not available for content.
func (l Layout) Overhead() int {
	return l.Head + TerminatorSize + l.Tail
}

// StorageSize returns the region size needed to hold capacity content bytes.
// ok is false when the size does not fit in an int.
func (l Layout) StorageSize(capacity int) (int, bool) {
	if capacity < 0 {
		return 0, false
	}
	return buf.AddOverflowSafe(capacity, l.Overhead())
}

// Capacity returns the content capacity of a region of the given size,
// or -1 when the region cannot even hold the terminator and markers.
func (l Layout) Capacity(storage int) int {
	c := storage - l.Overhead()
	if c < 0 {
		return -1
	}
	return c
}

// ContentOffset is the offset of the first content byte.
func (l Layout) ContentOffset() int {
	return l.Head
}

// TerminatorOffset is the offset of the terminator for content of length n.
func (l Layout) TerminatorOffset(n int) int {
	return l.Head + n
}

// TailOffset is the offset of the trailing marker in a region of the given size.
func (l Layout) TailOffset(storage int) int {
	return storage - l.Tail
}

// Content returns the content view of region for length n, or nil when the
// range is out of bounds.
func (l Layout) Content(region []byte, n int) []byte {
	c, ok := buf.Slice(region, l.Head, n)
	if !ok {
		return nil
	}
	return c
}

// Stamp writes the leading and trailing markers of a region. It is a no-op
// for layouts without markers.
func (l Layout) Stamp(region []byte, head, tail uint32) {
	if l.Head > 0 {
		_ = WriteMarker(region, 0, head)
	}
	if l.Tail > 0 {
		_ = WriteMarker(region, l.TailOffset(len(region)), tail)
	}
}
