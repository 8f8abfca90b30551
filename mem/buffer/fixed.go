package buffer

import (
	"github.com/joshuapare/safemem/internal/buf"
	"github.com/joshuapare/safemem/internal/format"
	"github.com/joshuapare/safemem/mem"
	"github.com/joshuapare/safemem/pkg/types"
)

// Fixed is a buffer with a capacity set at creation. Writes beyond the
// capacity are truncated.
//
// The zero Fixed is a valid buffer with capacity 0. Use NewFixed, FixedOn or
// the Env methods to create one that can hold content.
type Fixed struct {
	head   uint32 // MarkerInit until first written, then MarkerUpdate
	length int
	data   []byte // content, terminator, trailing marker
	v      Validator
}

func newFixed(storage []byte, v Validator) *Fixed {
	f := &Fixed{data: storage, v: v}
	if v.Guarded() {
		f.head = format.MarkerInit
	}
	f.data[0] = 0
	return f
}

func (f *Fixed) validator() Validator {
	if f.v == nil {
		return DefaultValidator()
	}
	return f.v
}

func (f *Fixed) layout() format.Layout {
	return format.FixedLayout(f.validator().Guarded())
}

// checkIn verifies f as a source. Absent buffers are valid.
func (f *Fixed) checkIn() bool {
	if f == nil {
		return true
	}
	v := f.validator()
	if err := v.verifyFixed(f); err != nil {
		v.corrupted(err)
		return false
	}
	return true
}

// checkOut verifies f as a destination and marks an unwritten buffer as written.
func (f *Fixed) checkOut() bool {
	if !f.checkIn() {
		return false
	}
	if f.data != nil && f.head == format.MarkerInit && f.validator().Guarded() {
		f.head = format.MarkerUpdate
		lay := f.layout()
		_ = format.WriteMarker(f.data, lay.TailOffset(len(f.data)), format.MarkerTrail)
	}
	return true
}

// content returns the live content, or nil for an empty buffer.
func (f *Fixed) content() []byte {
	if f == nil || f.data == nil {
		return nil
	}
	return f.layout().Content(f.data, f.length)
}

// room returns the writable content region from off up to the capacity.
func (f *Fixed) room(off int) []byte {
	c := f.Cap()
	if f.data == nil || off > c {
		return []byte{}
	}
	base := f.layout().ContentOffset()
	return f.data[base+off : base+c]
}

func (f *Fixed) setLength(n int) {
	f.length = n
	if f.data != nil {
		f.data[f.layout().TerminatorOffset(n)] = 0
	}
}

// Len returns the content length, or 0 for an absent or invalid buffer.
func (f *Fixed) Len() int {
	if f == nil || f.validator().verifyFixed(f) != nil {
		return 0
	}
	return f.length
}

// Cap returns the maximum content length.
func (f *Fixed) Cap() int {
	if f == nil || f.data == nil {
		return 0
	}
	return max(f.layout().Capacity(len(f.data)), 0)
}

// Bytes returns a view of the content. The view is valid until the next
// write and is empty for an absent or invalid buffer.
func (f *Fixed) Bytes() []byte {
	if f == nil || f.validator().verifyFixed(f) != nil || f.data == nil {
		return []byte{}
	}
	c := f.content()
	return c[:len(c):len(c)]
}

// Verify checks f without calling the guard handler.
func (f *Fixed) Verify() error {
	if f == nil {
		return nil
	}
	if err := f.validator().verifyFixed(f); err != nil {
		return err
	}
	return nil
}

// Import replaces the content with the first size bytes of src. A nil src
// empties the buffer. Content beyond the capacity is dropped and reported as
// Truncated.
func (f *Fixed) Import(src []byte, size int) types.Status {
	switch {
	case f == nil:
		return types.NullOutput
	case !types.ValidSize(size):
		return types.SizeTooLarge
	case !f.checkOut():
		return types.Corrupted
	case src == nil:
		f.setLength(0)
		return types.Ok
	}
	n, st := mem.Copy(f.room(0), f.Cap(), src, size)
	f.setLength(n)
	return st
}

// Resize sets the content length to n. Bytes exposed by growth are zero.
// A length above the capacity is clamped and reported as Truncated.
func (f *Fixed) Resize(n int) types.Status {
	switch {
	case f == nil:
		return types.NullOutput
	case !types.ValidSize(n):
		return types.SizeTooLarge
	case !f.checkOut():
		return types.Corrupted
	}
	st := types.Ok
	if c := f.Cap(); n > c {
		n, st = c, types.Truncated
	}
	if n > f.length {
		clear(f.room(f.length)[:n-f.length])
	}
	f.setLength(n)
	return st
}

// SetRange sets n bytes starting at start to value. Only existing content is
// written: a range reaching past the content is clipped and a start at or
// beyond the end writes nothing; both report Truncated. An empty range at the
// end of the content is Ok.
func (f *Fixed) SetRange(start, n int, value byte) types.Status {
	switch {
	case f == nil:
		return types.NullOutput
	case !types.ValidSize(start) || !types.ValidSize(n):
		return types.SizeTooLarge
	case !f.checkOut():
		return types.Corrupted
	}
	return setRange(f.content(), start, n, value)
}

// Set sets every content byte to value.
func (f *Fixed) Set(value byte) types.Status {
	switch {
	case f == nil:
		return types.NullOutput
	case !f.checkOut():
		return types.Corrupted
	}
	c := f.content()
	_, st := mem.Fill(c, len(c), value)
	if st == types.NullOutput {
		return types.Ok
	}
	return st
}

// Copy replaces the content with the content of src. A nil src empties the
// buffer; copying a buffer onto itself does nothing.
func (f *Fixed) Copy(src *Fixed) types.Status {
	switch {
	case f == nil:
		return types.NullOutput
	case !src.checkIn() || !f.checkOut():
		return types.Corrupted
	case src == nil:
		f.setLength(0)
		return types.Ok
	case src == f:
		return types.Ok
	}
	n, st := mem.Copy(f.room(0), f.Cap(), src.content(), src.length)
	f.setLength(n)
	return st
}

// Concat appends the content of src, truncating at the capacity.
func (f *Fixed) Concat(src *Fixed) types.Status {
	switch {
	case f == nil:
		return types.NullOutput
	case !src.checkIn() || !f.checkOut():
		return types.Corrupted
	case src == nil || src.length == 0:
		return types.Ok
	}
	// Snapshot the source extent; src may be f.
	srcContent := src.content()
	n, st := mem.Copy(f.room(f.length), f.Cap()-f.length, srcContent, len(srcContent))
	f.setLength(f.length + n)
	return st
}

// Compare orders the content of f against the content of other. Absent
// buffers compare as empty.
func (f *Fixed) Compare(other *Fixed) types.Status {
	if !f.checkIn() || !other.checkIn() {
		return types.Corrupted
	}
	a, b := f.content(), other.content()
	return mem.Compare(a, len(a), b, len(b))
}

// Insert opens a gap of n bytes at start, moving the content after start
// toward the end. The gap holds unspecified bytes. When the gap reaches the
// capacity the buffer is filled to capacity and Truncated is reported;
// otherwise trailing content that no longer fits is dropped.
func (f *Fixed) Insert(start, n int) types.Status {
	switch {
	case f == nil:
		return types.NullOutput
	case !f.checkOut():
		return types.Corrupted
	case !types.ValidSize(n):
		return types.SizeTooLarge
	case start < 0 || start > f.length:
		return types.IndexOutOfRange
	case n == 0:
		return types.Ok
	}
	c := f.Cap()
	end := buf.AddSaturating(start, n)
	if end >= c {
		f.setLength(c)
		return types.Truncated
	}
	room := f.room(0)
	copied, st := mem.Copy(room[end:], c-end, room[start:f.length], f.length-start)
	f.setLength(end + copied)
	return st
}

// setRange implements SetRange over content.
func setRange(content []byte, start, n int, value byte) types.Status {
	length := len(content)
	switch {
	case start == length && n == 0:
		return types.Ok
	case start >= length:
		return types.Truncated
	}
	actual := min(n, length-start)
	if _, st := mem.Fill(content[start:], actual, value); st.IsError() {
		return st
	}
	if actual < n {
		return types.Truncated
	}
	return types.Ok
}
