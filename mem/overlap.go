package mem

import "unsafe"

// startsInside reports whether dst begins strictly inside src[1:n], the case
// where a forward copy of n bytes would overwrite source bytes before they
// are read.
func startsInside(dst, src []byte, n int) bool {
	if n == 0 || len(dst) == 0 || len(src) == 0 {
		return false
	}
	d := uintptr(unsafe.Pointer(unsafe.SliceData(dst)))
	s := uintptr(unsafe.Pointer(unsafe.SliceData(src)))
	return s < d && d-s < uintptr(n)
}

// sameStart reports whether dst and src begin at the same byte.
func sameStart(dst, src []byte) bool {
	if len(dst) == 0 || len(src) == 0 {
		return false
	}
	return unsafe.SliceData(dst) == unsafe.SliceData(src)
}
