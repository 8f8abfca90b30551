package buffer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/safemem/internal/format"
	"github.com/joshuapare/safemem/internal/testutil"
	"github.com/joshuapare/safemem/mem/alloc"
)

// trapCorruption installs a counting corruption handler for the test.
func trapCorruption(t *testing.T) *int {
	t.Helper()
	return &testutil.TrapCorruption(t).Calls
}

func strictEnv(a alloc.Allocator) *Env {
	return &Env{Allocator: a, Validator: Strict}
}

func permissiveEnv(a alloc.Allocator) *Env {
	return &Env{Allocator: a, Validator: Permissive}
}

func requireTerminatedFixed(t *testing.T, f *Fixed) {
	t.Helper()
	require.NoError(t, f.Verify())
	require.Zero(t, f.data[f.layout().TerminatorOffset(f.length)])
}

func requireTerminatedGrowable(t *testing.T, g *Growable) {
	t.Helper()
	require.NoError(t, g.Verify())
	if g.data != nil {
		require.Zero(t, g.data[g.layout().TerminatorOffset(g.length)])
	}
}

func snapshot(b []byte) []byte {
	return append([]byte(nil), b...)
}

func liveTrailer(f *Fixed) uint32 {
	m, _ := format.ReadMarker(f.data, f.layout().TailOffset(len(f.data)))
	return m
}
