package buffer

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/safemem/internal/format"
	"github.com/joshuapare/safemem/internal/testutil"
	"github.com/joshuapare/safemem/mem/alloc"
	"github.com/joshuapare/safemem/pkg/types"
)

func TestGrowable_ImportConcat(t *testing.T) {
	counting := alloc.NewCounting(nil)
	env := strictEnv(counting)

	a := env.NewGrowable()
	b := env.NewGrowable()
	require.Equal(t, types.Ok, a.Import([]byte("foo"), 3))
	require.Equal(t, types.Ok, b.Import([]byte("bar"), 3))
	require.Equal(t, types.Ok, a.Concat(b))

	require.Equal(t, 6, a.Len())
	require.Equal(t, "foobar", string(a.Bytes()))
	requireTerminatedGrowable(t, a)

	require.Equal(t, types.Ok, a.Release())
	require.Equal(t, types.Ok, b.Release())
	assert.Zero(t, counting.Live())
	assert.Equal(t, 3, counting.Stats().Allocations)
}

func TestGrowable_ZeroValue(t *testing.T) {
	counting := testutil.LeakCheckedAllocator(t)
	testutil.InstallAllocator(t, counting)

	var g Growable
	require.NoError(t, g.Verify())
	assert.Zero(t, g.Len())
	assert.Zero(t, g.Cap())
	assert.Empty(t, g.Bytes())
	assert.Equal(t, types.Ok, g.Release())
	assert.Equal(t, types.Equal, g.Compare(nil))

	require.Equal(t, types.Ok, g.Import([]byte("hello"), 5))
	assert.Equal(t, "hello", string(g.Bytes()))
	assert.Same(t, DefaultEnv(), g.env)
	assert.Equal(t, 1, counting.Live())

	require.Equal(t, types.Ok, g.Release())
	require.Equal(t, types.Ok, g.Release())
	assert.Zero(t, counting.Live())
	assert.Zero(t, g.Len())
	assert.Nil(t, g.data)
	require.NoError(t, g.Verify())
}

func TestGrowable_Absent(t *testing.T) {
	var g *Growable
	assert.Equal(t, types.NullOutput, g.Import([]byte("a"), 1))
	assert.Equal(t, types.NullOutput, g.Resize(1))
	assert.Equal(t, types.NullOutput, g.SetRange(0, 1, 'x'))
	assert.Equal(t, types.NullOutput, g.Set('x'))
	assert.Equal(t, types.NullOutput, g.Copy(nil))
	assert.Equal(t, types.NullOutput, g.Concat(nil))
	assert.Equal(t, types.NullOutput, g.Insert(0, 1))
	assert.Equal(t, types.Ok, g.Release())
	assert.Equal(t, types.Equal, g.Compare(nil))
	assert.Zero(t, g.Len())
	assert.Empty(t, g.Bytes())
	assert.NoError(t, g.Verify())
}

func TestGrowable_FollowsPolicy(t *testing.T) {
	overhead := format.GrowableLayout(true).Overhead()
	g := strictEnv(nil).NewGrowable()

	require.Equal(t, types.Ok, g.Import([]byte("foo"), 3))
	assert.Equal(t, 3, g.Cap())

	require.Equal(t, types.Ok, g.Concat(g))
	assert.Equal(t, "foofoo", string(g.Bytes()))
	assert.Equal(t, alloc.Decide(3+overhead, 6+overhead)-overhead, g.Cap())

	require.Equal(t, types.Ok, g.Resize(16))
	assert.Equal(t, 39, g.Cap())

	require.Equal(t, types.Ok, g.Resize(10))
	assert.Equal(t, 39, g.Cap(), "small shrink keeps storage")
	assert.Equal(t, "foofoo\x00\x00\x00\x00", string(g.Bytes()))

	require.Equal(t, types.Ok, g.Resize(0))
	assert.Zero(t, g.Cap())
	requireTerminatedGrowable(t, g)
}

func TestGrowable_CustomPolicy(t *testing.T) {
	env := &Env{Validator: Permissive, Policy: alloc.Policy{MinAllocation: 64}}
	g := env.NewGrowable()
	require.Equal(t, types.Ok, g.Import([]byte("a"), 1))
	assert.Equal(t, 63, g.Cap())
}

func TestGrowable_NoMemory(t *testing.T) {
	logs := testutil.CaptureLog(t, slog.LevelWarn)

	g := strictEnv(alloc.None{}).NewGrowable()
	require.Equal(t, types.NoMemory, g.Import([]byte("abc"), 3))
	assert.Nil(t, g.data)
	assert.Zero(t, g.Len())
	assert.Contains(t, logs.String(), "buffer allocation failed")

	budget := 1
	limited := alloc.Funcs{Alloc: func(size int) []byte {
		if budget == 0 {
			return nil
		}
		budget--
		return make([]byte, size)
	}}
	g = strictEnv(limited).NewGrowable()
	require.Equal(t, types.Ok, g.Import([]byte("abc"), 3))
	before := snapshot(g.data)

	require.Equal(t, types.NoMemory, g.Import([]byte("a much longer value"), 19))
	require.Equal(t, types.NoMemory, g.Resize(100))
	require.Equal(t, types.NoMemory, g.Insert(1, 50))
	assert.Equal(t, before, g.data)
	assert.Equal(t, "abc", string(g.Bytes()))
}

func TestGrowable_ImportFromOwnStorage(t *testing.T) {
	allocators := map[string]alloc.Allocator{
		"scribbling": testutil.ScribblingAllocator('X'),
		"pages":      alloc.Pages{},
	}
	for name, a := range allocators {
		t.Run(name, func(t *testing.T) {
			g := strictEnv(a).NewGrowable()
			long := bytes.Repeat([]byte("abcdefghij"), 10)
			require.Equal(t, types.Ok, g.Import(long, len(long)))
			large := len(g.data)

			// The policy shrinks the region, so the source is the old storage.
			require.Equal(t, types.Ok, g.Import(g.Bytes()[:5], 5))
			assert.Less(t, len(g.data), large)
			assert.Equal(t, "abcde", string(g.Bytes()))
			requireTerminatedGrowable(t, g)

			require.Equal(t, types.Ok, g.Import(g.Bytes()[1:4], 3))
			assert.Equal(t, "bcd", string(g.Bytes()))
			require.Equal(t, types.Ok, g.Release())
		})
	}
}

func TestGrowable_ConcatSelfAcrossGrowth(t *testing.T) {
	g := strictEnv(testutil.ScribblingAllocator('X')).NewGrowable()
	require.Equal(t, types.Ok, g.Import([]byte("abc"), 3))
	for i := 0; i < 4; i++ {
		require.Equal(t, types.Ok, g.Concat(g))
	}
	assert.Equal(t, strings.Repeat("abc", 16), string(g.Bytes()))
	requireTerminatedGrowable(t, g)
	require.Equal(t, types.Ok, g.Release())
}

func TestGrowable_ImportEdges(t *testing.T) {
	g := NewGrowable()
	t.Cleanup(func() { g.Release() })

	require.Equal(t, types.Ok, g.Import([]byte("abc"), 3))
	require.Equal(t, types.Ok, g.Import(nil, 10))
	assert.Zero(t, g.Len())

	require.Equal(t, types.Truncated, g.Import([]byte("ab"), 5))
	assert.Equal(t, "ab", string(g.Bytes()))

	assert.Equal(t, types.SizeTooLarge, g.Import([]byte("ab"), types.SizeMax+1))
	assert.Equal(t, "ab", string(g.Bytes()))
}

func TestGrowable_Resize(t *testing.T) {
	g := NewGrowable()
	t.Cleanup(func() { g.Release() })

	require.Equal(t, types.Ok, g.Resize(5))
	assert.Equal(t, make([]byte, 5), g.Bytes())

	require.Equal(t, types.Ok, g.Import([]byte("abcdef"), 6))
	require.Equal(t, types.Ok, g.Resize(3))
	require.Equal(t, "abc", string(g.Bytes()))
	require.Equal(t, types.Ok, g.Resize(40))
	require.Equal(t, "abc", string(g.Bytes()[:3]))
	require.Equal(t, make([]byte, 37), g.Bytes()[3:])
	requireTerminatedGrowable(t, g)
}

func TestGrowable_SetRange(t *testing.T) {
	g := NewGrowable()
	t.Cleanup(func() { g.Release() })
	require.Equal(t, types.Ok, g.Import([]byte("abcdef"), 6))

	assert.Equal(t, types.Ok, g.SetRange(1, 2, 'x'))
	assert.Equal(t, types.Truncated, g.SetRange(4, 10, 'y'))
	assert.Equal(t, types.Ok, g.SetRange(6, 0, 'z'))
	assert.Equal(t, types.Truncated, g.SetRange(7, 1, 'z'))
	assert.Equal(t, "axxdyy", string(g.Bytes()))

	require.Equal(t, types.Ok, g.Set('q'))
	assert.Equal(t, "qqqqqq", string(g.Bytes()))
	requireTerminatedGrowable(t, g)
}

func TestGrowable_Copy(t *testing.T) {
	a, b := NewGrowable(), NewGrowable()
	t.Cleanup(func() { a.Release(); b.Release() })

	require.Equal(t, types.Ok, b.Import([]byte("source"), 6))
	require.Equal(t, types.Ok, a.Copy(b))
	assert.Equal(t, "source", string(a.Bytes()))

	require.Equal(t, types.Ok, a.Copy(a))
	assert.Equal(t, "source", string(a.Bytes()))

	require.Equal(t, types.Ok, a.Copy(nil))
	assert.Zero(t, a.Len())

	var empty Growable
	require.Equal(t, types.Ok, b.Copy(&empty))
	assert.Zero(t, b.Len())
	requireTerminatedGrowable(t, a)
	requireTerminatedGrowable(t, b)
}

func TestGrowable_Compare(t *testing.T) {
	mk := func(s string) *Growable {
		g := NewGrowable()
		t.Cleanup(func() { g.Release() })
		require.Equal(t, types.Ok, g.Import([]byte(s), len(s)))
		return g
	}
	assert.Equal(t, types.Equal, mk("abc").Compare(mk("abc")))
	assert.Equal(t, types.Lower, mk("ab").Compare(mk("abcd")))
	assert.Equal(t, types.Greater, mk("abd").Compare(mk("abc")))
	assert.Equal(t, types.Lower, (*Growable)(nil).Compare(mk("a")))
}

func TestGrowable_Insert(t *testing.T) {
	g := NewGrowable()
	t.Cleanup(func() { g.Release() })
	require.Equal(t, types.Ok, g.Import([]byte("abcdef"), 6))

	require.Equal(t, types.Ok, g.Insert(2, 3))
	require.Equal(t, 9, g.Len())
	got := string(g.Bytes())
	assert.Equal(t, "ab", got[:2])
	assert.Equal(t, "cdef", got[5:])

	require.Equal(t, types.Ok, g.Insert(9, 100))
	assert.Equal(t, 109, g.Len())
	assert.Equal(t, "cdef", string(g.Bytes()[5:9]))

	assert.Equal(t, types.IndexOutOfRange, g.Insert(110, 1))
	assert.Equal(t, types.IndexOutOfRange, g.Insert(-1, 1))
	assert.Equal(t, types.SizeTooLarge, g.Insert(0, types.SizeMax+1))
	assert.Equal(t, types.Ok, g.Insert(0, 0))
	assert.Equal(t, 109, g.Len())
	requireTerminatedGrowable(t, g)

	// Corruption is reported before argument errors.
	calls := trapCorruption(t)
	term := g.layout().TerminatorOffset(g.length)
	g.data[term] = 'x'
	assert.Equal(t, types.Corrupted, g.Insert(0, types.SizeMax+1))
	assert.Equal(t, types.Corrupted, g.Insert(200, 1))
	assert.Equal(t, 2, *calls)
	g.data[term] = 0
}

func TestGrowable_Corruption(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(g *Growable)
	}{
		{"structure head", func(g *Growable) { g.head ^= 0x0100 }},
		{"structure tail", func(g *Growable) { g.tail = 0 }},
		{"region head", func(g *Growable) { g.data[1] ^= 0x01 }},
		{"region tail", func(g *Growable) { g.data[len(g.data)-2] ^= 0x40 }},
		{"terminator", func(g *Growable) { g.data[format.MarkerSize+g.length] = '!' }},
		{"length", func(g *Growable) { g.length = len(g.data) }},
	}
	ops := map[string]func(g *Growable) types.Status{
		"Import":   func(g *Growable) types.Status { return g.Import([]byte("zz"), 2) },
		"Resize":   func(g *Growable) types.Status { return g.Resize(64) },
		"SetRange": func(g *Growable) types.Status { return g.SetRange(0, 1, 'q') },
		"Set":      func(g *Growable) types.Status { return g.Set('q') },
		"Copy":     func(g *Growable) types.Status { return g.Copy(nil) },
		"Concat":   func(g *Growable) types.Status { return g.Concat(g) },
		"Compare":  func(g *Growable) types.Status { return g.Compare(nil) },
		"Insert":   func(g *Growable) types.Status { return g.Insert(0, 1) },
		"Release":  func(g *Growable) types.Status { return g.Release() },
	}
	for _, tt := range tests {
		for opName, op := range ops {
			t.Run(tt.name+"/"+opName, func(t *testing.T) {
				calls := trapCorruption(t)
				counting := alloc.NewCounting(nil)
				g := strictEnv(counting).NewGrowable()
				require.Equal(t, types.Ok, g.Import([]byte("abcd"), 4))

				tt.corrupt(g)
				before := snapshot(g.data)
				head, tail, length := g.head, g.tail, g.length

				require.Equal(t, types.Corrupted, op(g))
				assert.Equal(t, 1, *calls)
				assert.Equal(t, before, g.data)
				assert.Equal(t, head, g.head)
				assert.Equal(t, tail, g.tail)
				assert.Equal(t, length, g.length)

				s := counting.Stats()
				assert.Equal(t, 1, s.Live)
				assert.Zero(t, s.Deallocations)
				assert.Error(t, g.Verify())
			})
		}
	}
}

func TestGrowable_CorruptedSourceKeepsDestinationUnbound(t *testing.T) {
	calls := trapCorruption(t)
	src := strictEnv(nil).NewGrowable()
	require.Equal(t, types.Ok, src.Import([]byte("abcd"), 4))
	src.tail = 0

	var dst Growable
	require.Equal(t, types.Corrupted, dst.Copy(src))
	require.Equal(t, types.Corrupted, dst.Concat(src))
	assert.Equal(t, 2, *calls)
	assert.True(t, dst.untouched())
}

func TestGrowable_RegionErrorKind(t *testing.T) {
	g := strictEnv(nil).NewGrowable()
	require.Equal(t, types.Ok, g.Import([]byte("abcd"), 4))
	g.data[0] = 0

	err := g.Verify()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GrowableRegion at offset 0x0")
}

func TestGrowable_Permissive(t *testing.T) {
	calls := trapCorruption(t)
	g := permissiveEnv(nil).NewGrowable()
	require.Equal(t, types.Ok, g.Import([]byte("abcdefgh"), 8))
	assert.Zero(t, g.head)
	assert.Zero(t, g.tail)
	assert.Equal(t, len(g.data)-1, g.Cap())
	assert.Equal(t, "abcdefgh", string(g.data[:8]))

	g.data[g.length] = 'x'
	require.Equal(t, types.Corrupted, g.Resize(2))
	assert.Zero(t, *calls)
}

func TestSetDefaultEnv(t *testing.T) {
	counting := alloc.NewCounting(nil)
	env := &Env{Allocator: counting, Validator: Permissive}
	prev := SetDefaultEnv(env)
	t.Cleanup(func() { SetDefaultEnv(prev) })

	assert.Same(t, env, DefaultEnv())

	var g Growable
	require.Equal(t, types.Ok, g.Import([]byte("abc"), 3))
	assert.Same(t, env, g.env)
	assert.Equal(t, 1, counting.Live())
	assert.Equal(t, len(g.data)-1, g.Cap())

	f := NewFixed(4)
	assert.Len(t, f.data, 5)

	require.Equal(t, types.Ok, g.Release())
	assert.Zero(t, counting.Live())

	assert.Same(t, env, SetDefaultEnv(nil))
	assert.NotSame(t, env, DefaultEnv())
}
