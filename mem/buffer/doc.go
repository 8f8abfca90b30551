// Package buffer implements fixed-capacity and growable byte buffers with
// bounds-checked operations and optional guard markers.
//
// # Overview
//
// Both kinds keep a content length below their capacity and a zero
// terminator byte right after the content. Every operation validates its
// buffer arguments before touching anything and reports a types.Status:
//
//	var b buffer.Growable
//	defer b.Release()
//
//	b.Import([]byte("foo"), 3)
//	other := buffer.NewGrowable()
//	other.Import([]byte("bar"), 3)
//	b.Concat(other) // b.Bytes() == "foobar"
//
// A Fixed buffer never reallocates; writes past its capacity are truncated
// and reported with types.Truncated. A Growable buffer obtains storage
// through the allocation policy and allocator of its Env.
//
// # Validators
//
// Strict validation checks guard markers around each buffer and dispatches to
// the guard handler on a mismatch. Permissive validation only checks that
// length, capacity and terminator agree. The validator is chosen per Env
// when a buffer is created; the process default is Strict unless the module
// is built with the noguard tag.
//
// A buffer that fails validation is reported as types.Corrupted and left
// untouched. A corrupted Growable is never released to its allocator.
//
// # Absent Buffers
//
// A nil *Fixed or *Growable is an absent buffer. As a destination it yields
// types.NullOutput; as a source it behaves as empty.
//
// # Thread Safety
//
// Buffers are not safe for concurrent use. The process default Env is held
// in an atomic pointer.
package buffer
