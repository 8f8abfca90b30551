package format

// Alignment utilities for page-backed allocations.

// PageSize is the granularity assumed for page-backed regions when the
// platform does not report one.
const PageSize = 4096

// AlignUp returns n rounded up to the next multiple of align, which must be a
// power of two. ok is false when the result would overflow.
//
// Example:
//
//	AlignUp(1, 8)       = 8
//	AlignUp(8, 8)       = 8
//	AlignUp(4097, 4096) = 8192
func AlignUp(n, align int) (int, bool) {
	if n < 0 || align <= 0 || align&(align-1) != 0 {
		return 0, false
	}
	mask := align - 1
	if n > int(^uint(0)>>1)-mask {
		return 0, false
	}
	return (n + mask) &^ mask, true
}
