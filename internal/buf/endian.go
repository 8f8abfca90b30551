package buf

import "encoding/binary"

// WordSize is the width in bytes of the words used by the word-at-a-time loops.
const WordSize = 8

// U32LE reads a little-endian uint32 from b. Returns 0 when b is too short.
func U32LE(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// U64LE reads a little-endian uint64 from b. Returns 0 when b is too short.
func U64LE(b []byte) uint64 {
	if len(b) < 8 {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

// U64BE reads a big-endian uint64 from b. Returns 0 when b is too short.
// Big-endian words order the same way as their bytes compared lexicographically.
func U64BE(b []byte) uint64 {
	if len(b) < 8 {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}

// PutU64LE writes v as a little-endian uint64 at the start of b.
// It is a no-op when b is shorter than a word.
func PutU64LE(b []byte, v uint64) {
	if len(b) < 8 {
		return
	}
	binary.LittleEndian.PutUint64(b, v)
}

// RepeatByte returns a word where every byte equals v.
func RepeatByte(v byte) uint64 {
	return uint64(v) * 0x0101010101010101
}
