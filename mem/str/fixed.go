package str

import (
	"errors"

	"golang.org/x/text/transform"

	"github.com/joshuapare/safemem/mem"
	"github.com/joshuapare/safemem/mem/buffer"
	"github.com/joshuapare/safemem/pkg/types"
)

// Fixed is a string with a fixed capacity.
type Fixed struct {
	b buffer.Fixed
}

// NewFixed returns an empty string holding up to capacity bytes, created on
// the process default Env. It panics on an invalid capacity.
func NewFixed(capacity int) *Fixed {
	return NewFixedEnv(buffer.DefaultEnv(), capacity)
}

// NewFixedEnv is NewFixed on an explicit Env.
func NewFixedEnv(env *buffer.Env, capacity int) *Fixed {
	return &Fixed{b: *env.NewFixed(capacity)}
}

func (s *Fixed) buf() *buffer.Fixed {
	if s == nil {
		return nil
	}
	return &s.b
}

// Import replaces the content with src up to its first zero byte.
func (s *Fixed) Import(src string) types.Status {
	return s.ImportSize([]byte(src), len(src))
}

// ImportBytes replaces the content with src up to its first zero byte.
func (s *Fixed) ImportBytes(src []byte) types.Status {
	return s.ImportSize(src, len(src))
}

// ImportSize replaces the content with at most maxSize bytes of src, stopping at
// the first zero byte. A nil src empties the string.
func (s *Fixed) ImportSize(src []byte, maxSize int) types.Status {
	switch {
	case s == nil:
		return types.NullOutput
	case !types.ValidSize(maxSize):
		return types.SizeTooLarge
	}
	n := 0
	if src != nil {
		n = mem.CStringLength(src, min(maxSize, s.b.Cap()+1))
	}
	return s.b.Import(src, n)
}

// ImportTransform transforms src with t and imports the result. Output that
// does not fit is dropped and reported as Truncated. When t fails, the output
// produced before the failure is imported, Truncated is reported and the
// failure is returned.
func (s *Fixed) ImportTransform(src []byte, t transform.Transformer) (types.Status, error) {
	if s == nil {
		return types.NullOutput, nil
	}
	t.Reset()
	dst := make([]byte, s.b.Cap())
	nDst, _, err := t.Transform(dst, src, true)
	st := s.ImportSize(dst[:nDst], nDst)
	switch {
	case errors.Is(err, transform.ErrShortDst):
		return truncate(st), nil
	case err != nil:
		st = truncate(st)
		return st, transformError(st, err)
	}
	return st, nil
}

// SetRange sets n bytes from start to value; see buffer.Fixed.SetRange.
func (s *Fixed) SetRange(start, n int, value byte) types.Status {
	return s.buf().SetRange(start, n, value)
}

// Set sets every byte of the string to value.
func (s *Fixed) Set(value byte) types.Status {
	return s.buf().Set(value)
}

// Copy replaces the content with the content of src.
func (s *Fixed) Copy(src *Fixed) types.Status {
	return s.buf().Copy(src.buf())
}

// Concat appends src, truncating at the capacity.
func (s *Fixed) Concat(src *Fixed) types.Status {
	return s.buf().Concat(src.buf())
}

// Compare orders s against other.
func (s *Fixed) Compare(other *Fixed) types.Status {
	return s.buf().Compare(other.buf())
}

// Len returns the length in bytes.
func (s *Fixed) Len() int { return s.buf().Len() }

// Cap returns the maximum length in bytes.
func (s *Fixed) Cap() int { return s.buf().Cap() }

// Bytes returns a view of the content.
func (s *Fixed) Bytes() []byte { return s.buf().Bytes() }

// String returns a copy of the content.
func (s *Fixed) String() string { return string(s.buf().Bytes()) }

// Verify checks the underlying buffer without calling the guard handler.
func (s *Fixed) Verify() error { return s.buf().Verify() }

// transformError reports a transformer failure with the resulting status.
func transformError(st types.Status, err error) error {
	return &types.Error{Status: st, Op: "ImportTransform", Err: err}
}

// truncate upgrades a success status to Truncated.
func truncate(st types.Status) types.Status {
	if st.IsError() {
		return st
	}
	return types.Truncated
}
