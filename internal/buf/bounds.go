// Package buf contains overflow-safe offset arithmetic and word access helpers
// shared by the primitive operations and the buffer implementations.
package buf

import (
	"math"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// MulOverflowSafe multiplies a and b, returning ok = false when the result would overflow int.
// Used for percentage and doubling computations in the allocation policy.
func MulOverflowSafe(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	// For positive numbers, check if result would overflow
	if a > 0 && b > 0 {
		if a > math.MaxInt/b {
			return 0, false
		}
	}
	// For negative numbers
	if a < 0 && b < 0 {
		if a < math.MaxInt/b {
			return 0, false
		}
	}
	// Mixed signs - check against MinInt
	if a > 0 && b < 0 {
		if b < math.MinInt/a {
			return 0, false
		}
	}
	if a < 0 && b > 0 {
		if a < math.MinInt/b {
			return 0, false
		}
	}
	return a * b, true
}

// AddSaturating adds two non-negative values, returning math.MaxInt instead of
// wrapping when the sum does not fit.
func AddSaturating(a, b int) int {
	sum, ok := AddOverflowSafe(a, b)
	if !ok {
		return math.MaxInt
	}
	return sum
}

// End returns the end offset of the range [off, off+n) inside a region that
// ends at limit. The addition saturates instead of wrapping and the result is
// clamped to limit, so the returned offset is always addressable:
//
//	End(0, 10, 8)          = 8
//	End(4, 2, 8)           = 6
//	End(4, math.MaxInt, 8) = 8
//
// Negative inputs are treated as zero.
func End(off, n, limit int) int {
	if off < 0 {
		off = 0
	}
	if n < 0 {
		n = 0
	}
	if limit < 0 {
		limit = 0
	}
	end := AddSaturating(off, n)
	if end > limit {
		return limit
	}
	if end < off {
		return off
	}
	return end
}

// Extent returns the number of bytes of [0, n) that fit in a region of length limit.
func Extent(n, limit int) int {
	return End(0, n, limit)
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok || end > len(b) {
		return nil, false
	}
	return b[off:end], true
}

// Has reports whether b[off:off+n] is within bounds.
func Has(b []byte, off, n int) bool {
	_, ok := Slice(b, off, n)
	return ok
}
