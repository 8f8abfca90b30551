package format

import (
	"encoding/binary"

	"github.com/joshuapare/safemem/internal/buf"
)

// PutU32 writes a uint32 value to the buffer at the specified offset in little-endian format.
func PutU32(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:off+4], v)
}

// ReadMarker reads the guard marker at off, or returns ErrTruncated when the
// marker does not fit in b.
func ReadMarker(b []byte, off int) (uint32, error) {
	m, ok := buf.Slice(b, off, MarkerSize)
	if !ok {
		return 0, ErrTruncated
	}
	return buf.U32LE(m), nil
}

// WriteMarker writes a guard marker at off, or returns ErrTruncated when the
// marker does not fit in b.
func WriteMarker(b []byte, off int, v uint32) error {
	if !buf.Has(b, off, MarkerSize) {
		return ErrTruncated
	}
	PutU32(b, off, v)
	return nil
}

// MarkerIs reports whether the marker at off is present and equal to want.
func MarkerIs(b []byte, off int, want uint32) bool {
	got, err := ReadMarker(b, off)
	return err == nil && got == want
}
