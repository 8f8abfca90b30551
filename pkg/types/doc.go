// Package types defines the public vocabulary shared by every safemem package:
// the Status result codes, their classification bits, the typed Error that
// bridges statuses into Go errors, and the engine-wide size limits.
//
// Statuses are the primary contract. Every fallible engine call returns one
// and callers classify it by bit, not by equality:
//
//	st := b.Import(src, len(src))
//	if st.IsError() {
//	    return st.Err()
//	}
//	if st == types.Truncated {
//	    // result is shorter than requested but consistent
//	}
//
// This package has no dependencies beyond the standard library.
package types
