package mem

import (
	"github.com/joshuapare/safemem/internal/buf"
	"github.com/joshuapare/safemem/pkg/types"
)

// Compare orders the first aSize bytes of a against the first bSize bytes of b
// lexicographically and returns Equal, Lower or Greater. A nil slice or a zero
// size is an empty operand; when one operand is a prefix of the other the
// shorter one is Lower. Sizes are clamped to their slices. SizeTooLarge is
// returned when a size is negative or above types.SizeMax.
func Compare(a []byte, aSize int, b []byte, bSize int) types.Status {
	if !types.ValidSize(aSize) || !types.ValidSize(bSize) {
		return types.SizeTooLarge
	}
	na := 0
	if a != nil {
		na = buf.Extent(aSize, len(a))
	}
	nb := 0
	if b != nil {
		nb = buf.Extent(bSize, len(b))
	}
	switch {
	case na == 0 && nb == 0:
		return types.Equal
	case na == 0:
		return types.Lower
	case nb == 0:
		return types.Greater
	}

	if c := compareBytes(a[:min(na, nb)], b[:min(na, nb)]); c != types.Equal {
		return c
	}
	switch {
	case na == nb:
		return types.Equal
	case na < nb:
		return types.Lower
	default:
		return types.Greater
	}
}

// compareBytes compares two slices of equal length.
func compareBytes(a, b []byte) types.Status {
	n := len(a)
	i := 0
	for ; i+buf.WordSize <= n; i += buf.WordSize {
		wa, wb := buf.U64BE(a[i:]), buf.U64BE(b[i:])
		if wa != wb {
			if wa < wb {
				return types.Lower
			}
			return types.Greater
		}
	}
	for ; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return types.Lower
			}
			return types.Greater
		}
	}
	return types.Equal
}
