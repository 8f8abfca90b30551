package mem

import (
	"math/bits"

	"github.com/joshuapare/safemem/internal/buf"
	"github.com/joshuapare/safemem/pkg/types"
)

const (
	loMagic = 0x0101010101010101
	hiMagic = 0x8080808080808080
)

// CStringLength returns the offset of the first zero byte of s within the
// first maxScan bytes, or the scanned extent when there is none. Like a
// bounded strnlen, it never reads past the slice. A nil s, or a maxScan that
// is negative or above types.SizeMax, yields 0.
func CStringLength(s []byte, maxScan int) int {
	if s == nil || !types.ValidSize(maxScan) {
		return 0
	}
	end := buf.Extent(maxScan, len(s))

	// A word has a zero byte iff (w - lo) & ^w & hi != 0. The lowest set bit
	// of that mask is exact: only bytes above a real zero can be flagged
	// spuriously.
	i := 0
	for ; i+buf.WordSize <= end; i += buf.WordSize {
		w := buf.U64LE(s[i:])
		if m := (w - loMagic) &^ w & hiMagic; m != 0 {
			return i + bits.TrailingZeros64(m)/8
		}
	}
	for ; i < end; i++ {
		if s[i] == 0 {
			return i
		}
	}
	return end
}
