package str

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/joshuapare/safemem/internal/testutil"
	"github.com/joshuapare/safemem/mem/buffer"
	"github.com/joshuapare/safemem/pkg/types"
)

func TestFixed_Import(t *testing.T) {
	s := NewFixed(5)
	require.Equal(t, 5, s.Cap())

	assert.Equal(t, types.Ok, s.Import("hi"))
	assert.Equal(t, "hi", s.String())

	assert.Equal(t, types.Ok, s.Import("hello"))
	assert.Equal(t, "hello", s.String())

	assert.Equal(t, types.Truncated, s.Import("hello, world"))
	assert.Equal(t, "hello", s.String())
	assert.Equal(t, 5, s.Len())

	assert.Equal(t, types.Ok, s.Import("ab\x00cd"))
	assert.Equal(t, "ab", s.String())

	assert.Equal(t, types.Ok, s.ImportBytes(nil))
	assert.Zero(t, s.Len())
}

func TestFixed_ImportSize(t *testing.T) {
	s := NewFixed(8)
	assert.Equal(t, types.Ok, s.ImportSize([]byte("abcdef"), 3))
	assert.Equal(t, "abc", s.String())

	assert.Equal(t, types.SizeTooLarge, s.ImportSize([]byte("x"), types.SizeMax+1))
	assert.Equal(t, "abc", s.String())

	var absent *Fixed
	assert.Equal(t, types.NullOutput, absent.Import("x"))
	assert.Equal(t, types.NullOutput, absent.ImportSize(nil, 0))
	assert.Empty(t, absent.String())
}

func TestFixed_Operations(t *testing.T) {
	a, b := NewFixed(8), NewFixed(8)
	require.Equal(t, types.Ok, a.Import("foo"))
	require.Equal(t, types.Ok, b.Import("bar"))

	assert.Equal(t, types.Greater, a.Compare(b))
	assert.Equal(t, types.Lower, b.Compare(a))

	require.Equal(t, types.Ok, a.Concat(b))
	assert.Equal(t, "foobar", a.String())
	require.Equal(t, types.Truncated, a.Concat(b))
	assert.Equal(t, "foobarba", a.String())

	require.Equal(t, types.Ok, b.Copy(a))
	assert.Equal(t, types.Equal, a.Compare(b))

	require.Equal(t, types.Ok, a.SetRange(0, 3, '-'))
	assert.Equal(t, "---barba", a.String())
	require.Equal(t, types.Ok, a.Set('.'))
	assert.Equal(t, "........", a.String())
	assert.NoError(t, a.Verify())
}

func TestFixed_ImportTransform(t *testing.T) {
	latin1 := []byte{'c', 'a', 'f', 0xE9}

	s := NewFixed(8)
	st, err := s.ImportTransform(latin1, charmap.Windows1252.NewDecoder())
	require.NoError(t, err)
	assert.Equal(t, types.Ok, st)
	assert.Equal(t, "café", s.String())

	short := NewFixed(4)
	st, err = short.ImportTransform(latin1, charmap.Windows1252.NewDecoder())
	require.NoError(t, err)
	assert.Equal(t, types.Truncated, st)
	assert.Equal(t, "caf", short.String())

	st, err = s.ImportTransform([]byte("ab日本"), charmap.ISO8859_1.NewEncoder())
	requireTransformError(t, err, st)
	assert.Equal(t, types.Truncated, st)
	assert.Equal(t, "ab", s.String())

	var absent *Fixed
	st, err = absent.ImportTransform(latin1, charmap.Windows1252.NewDecoder())
	assert.NoError(t, err)
	assert.Equal(t, types.NullOutput, st)
}

func TestGrowable_Import(t *testing.T) {
	counting := testutil.LeakCheckedAllocator(t)
	s := NewGrowable(&buffer.Env{Allocator: counting})

	assert.Equal(t, types.Ok, s.Import("hello, world"))
	assert.Equal(t, "hello, world", s.String())

	assert.Equal(t, types.Ok, s.Import("cut\x00here"))
	assert.Equal(t, "cut", s.String())

	assert.Equal(t, types.Ok, s.ImportSize([]byte("abcdef"), 2))
	assert.Equal(t, "ab", s.String())

	require.Equal(t, types.Ok, s.Release())
	assert.Zero(t, counting.Live())
}

func TestGrowable_ImportOwnBytes(t *testing.T) {
	s := NewGrowable(&buffer.Env{Allocator: testutil.ScribblingAllocator('X')})
	t.Cleanup(func() { s.Release() })

	require.Equal(t, types.Ok, s.Import(strings.Repeat("0123456789", 10)))
	require.Equal(t, types.Ok, s.ImportBytes(s.Bytes()[:4]))
	assert.Equal(t, "0123", s.String())
	require.NoError(t, s.Verify())
}

func TestGrowable_ZeroValue(t *testing.T) {
	var a, b Growable
	t.Cleanup(func() { a.Release(); b.Release() })

	require.Equal(t, types.Ok, a.Import("foo"))
	require.Equal(t, types.Ok, b.Import("bar"))
	require.Equal(t, types.Ok, a.Concat(&b))
	assert.Equal(t, "foobar", a.String())
	assert.Equal(t, 6, a.Len())
	assert.GreaterOrEqual(t, a.Cap(), 6)

	require.Equal(t, types.Ok, b.Copy(&a))
	assert.Equal(t, types.Equal, a.Compare(&b))

	require.Equal(t, types.Truncated, a.SetRange(3, 10, '!'))
	assert.Equal(t, "foo!!!", a.String())
	require.Equal(t, types.Ok, a.Set('x'))
	assert.Equal(t, "xxxxxx", a.String())
	assert.NoError(t, a.Verify())
	assert.Equal(t, "xxxxxx", string(a.Bytes()))
}

func TestGrowable_ImportTransform(t *testing.T) {
	var s Growable
	t.Cleanup(func() { s.Release() })

	latin1 := []byte{'n', 'a', 0xEF, 'v', 'e', ' ', 0x80}
	st, err := s.ImportTransform(latin1, charmap.Windows1252.NewDecoder())
	require.NoError(t, err)
	assert.Equal(t, types.Ok, st)
	assert.Equal(t, "naïve €", s.String())

	st, err = s.ImportTransform([]byte("ok日"), charmap.ISO8859_1.NewEncoder())
	requireTransformError(t, err, st)
	assert.Equal(t, types.Truncated, st)
	assert.Equal(t, "ok", s.String())
}

func requireTransformError(t *testing.T, err error, st types.Status) {
	t.Helper()
	var te *types.Error
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "ImportTransform", te.Op)
	assert.Equal(t, st, te.Status)
	require.Error(t, te.Unwrap())
	assert.Contains(t, err.Error(), "ImportTransform: ")
	assert.Contains(t, err.Error(), te.Unwrap().Error())
}
