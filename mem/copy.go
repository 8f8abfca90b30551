package mem

import (
	"github.com/joshuapare/safemem/internal/buf"
	"github.com/joshuapare/safemem/pkg/types"
)

// Copy copies up to srcSize bytes of src into the first dstSize bytes of dst
// and returns the number of bytes copied.
//
// Both sizes are clamped to their slices. The status is:
//   - NullOutput when dst is nil
//   - SizeTooLarge when a size is negative or above types.SizeMax
//   - Ok with 0 copied when src is nil
//   - Truncated when fewer than srcSize bytes were copied
//   - Ok otherwise
//
// Overlapping ranges are handled.
func Copy(dst []byte, dstSize int, src []byte, srcSize int) (int, types.Status) {
	switch {
	case dst == nil:
		return 0, types.NullOutput
	case !types.ValidSize(dstSize) || !types.ValidSize(srcSize):
		return 0, types.SizeTooLarge
	case src == nil:
		return 0, types.Ok
	}

	n := min(buf.Extent(dstSize, len(dst)), buf.Extent(srcSize, len(src)))
	switch {
	case n == 0 || sameStart(dst, src):
	case startsInside(dst, src, n):
		copyBackward(dst[:n], src[:n])
	default:
		copyForward(dst[:n], src[:n])
	}

	if n < srcSize {
		return n, types.Truncated
	}
	return n, types.Ok
}

// copyForward copies len(dst) bytes from the first byte to the last. Each
// word is loaded before it is stored, so it is safe when dst starts at or
// before src.
func copyForward(dst, src []byte) {
	n := len(dst)
	i := 0
	for ; i+buf.WordSize <= n; i += buf.WordSize {
		buf.PutU64LE(dst[i:], buf.U64LE(src[i:]))
	}
	for ; i < n; i++ {
		dst[i] = src[i]
	}
}

// copyBackward copies len(dst) bytes from the last byte to the first, for a
// dst that starts inside src.
func copyBackward(dst, src []byte) {
	i := len(dst)
	for ; i >= buf.WordSize; i -= buf.WordSize {
		buf.PutU64LE(dst[i-buf.WordSize:], buf.U64LE(src[i-buf.WordSize:]))
	}
	for ; i > 0; i-- {
		dst[i-1] = src[i-1]
	}
}
