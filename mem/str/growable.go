package str

import (
	"golang.org/x/text/transform"

	"github.com/joshuapare/safemem/mem"
	"github.com/joshuapare/safemem/mem/buffer"
	"github.com/joshuapare/safemem/pkg/types"
)

// Growable is a string that grows as needed. The zero Growable is an empty
// string bound to the process default Env on first write. Call Release when
// done with it.
type Growable struct {
	b buffer.Growable
}

// NewGrowable returns an empty string bound to env.
func NewGrowable(env *buffer.Env) *Growable {
	return &Growable{b: *env.NewGrowable()}
}

func (s *Growable) buf() *buffer.Growable {
	if s == nil {
		return nil
	}
	return &s.b
}

// Import replaces the content with src up to its first zero byte.
func (s *Growable) Import(src string) types.Status {
	return s.ImportSize([]byte(src), len(src))
}

// ImportBytes replaces the content with src up to its first zero byte.
func (s *Growable) ImportBytes(src []byte) types.Status {
	return s.ImportSize(src, len(src))
}

// ImportSize replaces the content with at most maxSize bytes of src, stopping at
// the first zero byte. A nil src empties the string.
func (s *Growable) ImportSize(src []byte, maxSize int) types.Status {
	switch {
	case s == nil:
		return types.NullOutput
	case !types.ValidSize(maxSize):
		return types.SizeTooLarge
	}
	n := 0
	if src != nil {
		n = mem.CStringLength(src, min(maxSize, types.SizeMax))
	}
	return s.b.Import(src, n)
}

// ImportTransform transforms src with t and imports the result. When t
// fails, the output produced before the failure is imported, Truncated is
// reported and the failure is returned.
func (s *Growable) ImportTransform(src []byte, t transform.Transformer) (types.Status, error) {
	if s == nil {
		return types.NullOutput, nil
	}
	out, _, err := transform.Bytes(t, src)
	if out == nil {
		out = []byte{}
	}
	st := s.ImportSize(out, len(out))
	if err != nil {
		st = truncate(st)
		return st, transformError(st, err)
	}
	return st, nil
}

// SetRange sets n bytes from start to value; see buffer.Growable.SetRange.
func (s *Growable) SetRange(start, n int, value byte) types.Status {
	return s.buf().SetRange(start, n, value)
}

// Set sets every byte of the string to value.
func (s *Growable) Set(value byte) types.Status {
	return s.buf().Set(value)
}

// Copy replaces the content with the content of src.
func (s *Growable) Copy(src *Growable) types.Status {
	return s.buf().Copy(src.buf())
}

// Concat appends src.
func (s *Growable) Concat(src *Growable) types.Status {
	return s.buf().Concat(src.buf())
}

// Compare orders s against other.
func (s *Growable) Compare(other *Growable) types.Status {
	return s.buf().Compare(other.buf())
}

// Release frees the storage; see buffer.Growable.Release.
func (s *Growable) Release() types.Status {
	return s.buf().Release()
}

// Len returns the length in bytes.
func (s *Growable) Len() int { return s.buf().Len() }

// Cap returns the capacity of the current storage.
func (s *Growable) Cap() int { return s.buf().Cap() }

// Bytes returns a view of the content.
func (s *Growable) Bytes() []byte { return s.buf().Bytes() }

// String returns a copy of the content.
func (s *Growable) String() string { return string(s.buf().Bytes()) }

// Verify checks the underlying buffer without calling the guard handler.
func (s *Growable) Verify() error { return s.buf().Verify() }
