// Package format describes the byte layout of buffer storage: where content,
// the terminator byte and the guard markers live inside a region, and how
// markers are encoded. The layout is a public contract; code that produces or
// consumes raw buffer storage depends on it.
package format

// Guard marker values. Markers are stored little-endian.
const (
	// MarkerInit heads a fixed buffer that was declared but never written,
	// the structure of a growable buffer, and every allocated region.
	MarkerInit uint32 = 0xDEADBEEF

	// MarkerUpdate heads a fixed buffer once it has been written.
	MarkerUpdate uint32 = 0x5489A5B7

	// MarkerTrail closes a structure or region.
	MarkerTrail uint32 = 0xF0015BA7
)

const (
	// MarkerSize is the encoded size of a guard marker in bytes.
	MarkerSize = 4

	// TerminatorSize is the single reserved byte after the content which
	// always holds zero. It is not counted in the content length.
	TerminatorSize = 1
)
