// Package mem provides the four bounds-safe primitive byte operations the
// rest of safemem is built on: Copy, Compare, Fill and CStringLength.
//
// # Overview
//
// Every primitive takes a slice plus a requested size. The requested size is
// never trusted: it is converted to an end offset with saturating, clamped
// arithmetic, so a size larger than the slice (or one that would overflow)
// operates on the addressable part only and reports the difference:
//
//	dst := make([]byte, 8)
//	n, st := mem.Copy(dst, len(dst), []byte("abcdefghij"), 10)
//	// n == 8, st == types.Truncated, dst == "abcdefgh"
//
// Absent (nil) sources behave as empty; an absent destination is reported
// with types.NullOutput and nothing is touched. Sizes above types.SizeMax are
// rejected with types.SizeTooLarge.
//
// # Overlap
//
// Copy is correct for overlapping ranges. When the destination starts inside
// the source range being read it copies from the end backward, otherwise
// forward.
//
// # Performance
//
// The loops move, compare and scan 8-byte words with byte loops for the
// tails. Results are byte-identical to a naive byte loop.
//
// # Thread Safety
//
// The primitives hold no state. Concurrent calls on disjoint memory are safe.
//
// # Related Packages
//
//   - github.com/joshuapare/safemem/mem/buffer: fixed and growable buffers
//   - github.com/joshuapare/safemem/mem/str: terminator-delimited strings
//   - github.com/joshuapare/safemem/pkg/types: Status vocabulary
package mem
