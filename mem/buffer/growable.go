package buffer

import (
	"github.com/joshuapare/safemem/internal/buf"
	"github.com/joshuapare/safemem/internal/format"
	"github.com/joshuapare/safemem/internal/logger"
	"github.com/joshuapare/safemem/mem"
	"github.com/joshuapare/safemem/pkg/types"
)

// Growable is a buffer that allocates storage on demand. The zero Growable
// is an empty buffer without storage, bound to the process default Env on
// first write. Call Release when done with it.
type Growable struct {
	head   uint32 // MarkerInit once bound
	length int
	data   []byte // marker, content, terminator, spare, marker
	tail   uint32 // MarkerTrail once bound
	env    *Env
	v      Validator
}

// untouched reports whether g is still the zero Growable.
func (g *Growable) untouched() bool {
	return g.env == nil && g.v == nil && g.head == 0 && g.tail == 0 && g.data == nil && g.length == 0
}

func (g *Growable) bind(e *Env) {
	if e == nil {
		e = DefaultEnv()
	}
	g.env = e
	g.v = e.validator()
	if g.v.Guarded() {
		g.head, g.tail = format.MarkerInit, format.MarkerTrail
	}
}

func (g *Growable) validator() Validator {
	if g.v == nil {
		return DefaultValidator()
	}
	return g.v
}

func (g *Growable) layout() format.Layout {
	return format.GrowableLayout(g.validator().Guarded())
}

func (g *Growable) checkIn() bool {
	if g == nil {
		return true
	}
	v := g.validator()
	if err := v.verifyGrowable(g); err != nil {
		v.corrupted(err)
		return false
	}
	return true
}

func (g *Growable) checkOut() bool {
	if !g.checkIn() {
		return false
	}
	if g.env == nil {
		g.bind(nil)
	}
	return true
}

func (g *Growable) content() []byte {
	if g == nil || g.data == nil {
		return nil
	}
	return g.layout().Content(g.data, g.length)
}

func (g *Growable) room(off int) []byte {
	c := g.Cap()
	if g.data == nil || off > c {
		return []byte{}
	}
	base := g.layout().ContentOffset()
	return g.data[base+off : base+c]
}

func (g *Growable) setLength(n int) {
	g.length = n
	if g.data != nil {
		g.data[g.layout().TerminatorOffset(n)] = 0
	}
}

// reserve makes room for n content bytes, reallocating when the allocation
// policy picks a different storage size. With keep the existing content is
// carried over, up to the new capacity; otherwise the buffer is emptied.
// On failure the buffer is unchanged.
//
// The replaced region is returned, not released: a source argument may still
// point into it. The caller passes it to retire once it is done reading.
func (g *Growable) reserve(n int, keep bool) ([]byte, types.Status) {
	if !types.ValidSize(n) {
		return nil, types.SizeTooLarge
	}
	lay := g.layout()
	want, ok := lay.StorageSize(n)
	if !ok || want > types.SizeMax {
		return nil, types.SizeTooLarge
	}
	size := g.env.policy().Decide(len(g.data), want)
	if size > types.SizeMax {
		size = want
	}
	if size == len(g.data) {
		return nil, types.Ok
	}

	region := g.env.allocator().Allocate(size)
	if len(region) < size {
		logger.Warn("buffer allocation failed", "size", size)
		return nil, types.NoMemory
	}
	region = region[:size]

	st := types.Ok
	length := 0
	if keep && g.data != nil {
		capacity := lay.Capacity(size)
		dst := region[lay.ContentOffset() : lay.ContentOffset()+capacity]
		length, st = mem.Copy(dst, capacity, g.content(), g.length)
	}
	region[lay.TerminatorOffset(length)] = 0
	lay.Stamp(region, format.MarkerInit, format.MarkerTrail)

	old := g.data
	g.data = region
	g.length = length
	return old, st
}

// retire hands a region replaced by reserve back to the allocator.
func (g *Growable) retire(old []byte) {
	if old != nil {
		g.env.allocator().Deallocate(old)
	}
}

// Len returns the content length, or 0 for an absent or invalid buffer.
func (g *Growable) Len() int {
	if g == nil || g.validator().verifyGrowable(g) != nil {
		return 0
	}
	return g.length
}

// Cap returns the content capacity of the current storage.
func (g *Growable) Cap() int {
	if g == nil || g.data == nil {
		return 0
	}
	return max(g.layout().Capacity(len(g.data)), 0)
}

// Bytes returns a view of the content, valid until the next write or
// Release. It is empty for an absent or invalid buffer.
func (g *Growable) Bytes() []byte {
	if g == nil || g.data == nil || g.validator().verifyGrowable(g) != nil {
		return []byte{}
	}
	c := g.content()
	return c[:len(c):len(c)]
}

// Verify checks g without calling the guard handler.
func (g *Growable) Verify() error {
	if g == nil {
		return nil
	}
	if err := g.validator().verifyGrowable(g); err != nil {
		return err
	}
	return nil
}

// Release returns the storage to the allocator and empties the buffer.
// Releasing an empty buffer is a no-op. A corrupted buffer is reported and
// its storage is not released.
func (g *Growable) Release() types.Status {
	if !g.checkIn() {
		return types.Corrupted
	}
	if g == nil {
		return types.Ok
	}
	if g.data != nil {
		g.env.allocator().Deallocate(g.data)
	}
	g.data = nil
	g.length = 0
	return types.Ok
}

// Import replaces the content with the first size bytes of src, growing the
// storage as needed. A nil src empties the buffer.
func (g *Growable) Import(src []byte, size int) types.Status {
	switch {
	case g == nil:
		return types.NullOutput
	case !types.ValidSize(size):
		return types.SizeTooLarge
	case !g.checkOut():
		return types.Corrupted
	}
	n := 0
	if src != nil {
		n = buf.Extent(size, len(src))
	}
	old, st := g.reserve(n, false)
	if st != types.Ok {
		return st
	}
	defer g.retire(old)
	copied, st := mem.Copy(g.room(0), g.Cap(), src, size)
	g.setLength(copied)
	return st
}

// Resize sets the content length to n, growing the storage as needed. Bytes
// exposed by growth are zero.
func (g *Growable) Resize(n int) types.Status {
	switch {
	case g == nil:
		return types.NullOutput
	case !types.ValidSize(n):
		return types.SizeTooLarge
	case !g.checkOut():
		return types.Corrupted
	}
	old, st := g.reserve(n, true)
	if st.IsError() {
		return st
	}
	g.retire(old)
	if n > g.length {
		clear(g.room(g.length)[:n-g.length])
	}
	g.setLength(n)
	return types.Ok
}

// SetRange sets n bytes starting at start to value, with the same clipping
// rules as Fixed.SetRange. It never grows the buffer.
func (g *Growable) SetRange(start, n int, value byte) types.Status {
	switch {
	case g == nil:
		return types.NullOutput
	case !types.ValidSize(start) || !types.ValidSize(n):
		return types.SizeTooLarge
	case !g.checkOut():
		return types.Corrupted
	}
	return setRange(g.content(), start, n, value)
}

// Set sets every content byte to value.
func (g *Growable) Set(value byte) types.Status {
	switch {
	case g == nil:
		return types.NullOutput
	case !g.checkOut():
		return types.Corrupted
	}
	if c := g.content(); len(c) > 0 {
		mem.Fill(c, len(c), value)
	}
	return types.Ok
}

// Copy replaces the content with the content of src. A nil src empties the
// buffer; copying a buffer onto itself does nothing.
func (g *Growable) Copy(src *Growable) types.Status {
	switch {
	case g == nil:
		return types.NullOutput
	case !src.checkIn() || !g.checkOut():
		return types.Corrupted
	case src == g:
		return types.Ok
	}
	n := 0
	if src != nil {
		n = src.length
	}
	old, st := g.reserve(n, false)
	if st != types.Ok {
		return st
	}
	defer g.retire(old)
	copied, st := mem.Copy(g.room(0), g.Cap(), src.content(), n)
	g.setLength(copied)
	return st
}

// Concat appends the content of src, growing the storage as needed.
func (g *Growable) Concat(src *Growable) types.Status {
	switch {
	case g == nil:
		return types.NullOutput
	case !src.checkIn() || !g.checkOut():
		return types.Corrupted
	case src == nil || src.length == 0:
		return types.Ok
	}
	n := src.length
	old, st := g.reserve(buf.AddSaturating(g.length, n), true)
	if st != types.Ok {
		return st
	}
	defer g.retire(old)
	// reserve may have moved g's storage; src may be g.
	copied, st := mem.Copy(g.room(g.length), g.Cap()-g.length, src.content(), n)
	g.setLength(g.length + copied)
	return st
}

// Compare orders the content of g against the content of other. Absent
// buffers compare as empty.
func (g *Growable) Compare(other *Growable) types.Status {
	if !g.checkIn() || !other.checkIn() {
		return types.Corrupted
	}
	a, b := g.content(), other.content()
	return mem.Compare(a, len(a), b, len(b))
}

// Insert opens a gap of n bytes at start, growing the storage first and
// moving the content after start toward the end. The gap holds unspecified
// bytes.
func (g *Growable) Insert(start, n int) types.Status {
	switch {
	case g == nil:
		return types.NullOutput
	case !g.checkOut():
		return types.Corrupted
	case !types.ValidSize(n):
		return types.SizeTooLarge
	case start < 0 || start > g.length:
		return types.IndexOutOfRange
	case n == 0:
		return types.Ok
	}
	old, st := g.reserve(buf.AddSaturating(g.length, n), true)
	if st != types.Ok {
		return st
	}
	g.retire(old)
	end := start + n
	room := g.room(0)
	copied, st := mem.Copy(room[end:], len(room)-end, room[start:g.length], g.length-start)
	g.setLength(end + copied)
	return st
}
