package mem

import (
	"github.com/joshuapare/safemem/internal/buf"
	"github.com/joshuapare/safemem/pkg/types"
)

// Fill sets the first dstSize bytes of dst to value and returns the number of
// bytes written. The size is clamped to the slice; Truncated reports a clamp.
// NullOutput is returned for a nil dst and SizeTooLarge for a size that is
// negative or above types.SizeMax.
func Fill(dst []byte, dstSize int, value byte) (int, types.Status) {
	switch {
	case dst == nil:
		return 0, types.NullOutput
	case !types.ValidSize(dstSize):
		return 0, types.SizeTooLarge
	}

	n := buf.Extent(dstSize, len(dst))
	word := buf.RepeatByte(value)
	i := 0
	for ; i+buf.WordSize <= n; i += buf.WordSize {
		buf.PutU64LE(dst[i:], word)
	}
	for ; i < n; i++ {
		dst[i] = value
	}

	if n < dstSize {
		return n, types.Truncated
	}
	return n, types.Ok
}
