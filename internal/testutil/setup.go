// Package testutil holds test helpers shared by the engine packages. Every
// helper that changes process-wide state restores it when the test ends.
package testutil

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/joshuapare/safemem/internal/logger"
	"github.com/joshuapare/safemem/mem/alloc"
	"github.com/joshuapare/safemem/mem/guard"
)

// Trap records corruption reports instead of terminating the process.
type Trap struct {
	Calls int
	File  string
	Line  int
}

// TrapCorruption installs a recording corruption handler for the duration
// of the test.
//
// Example:
//
//	trap := testutil.TrapCorruption(t)
//	b.Import(src, n)
//	require.Equal(t, 1, trap.Calls)
func TrapCorruption(t *testing.T) *Trap {
	t.Helper()
	trap := &Trap{}
	prev := guard.SetHandler(func(file string, line int) {
		trap.Calls++
		trap.File, trap.Line = file, line
	})
	t.Cleanup(func() { guard.SetHandler(prev) })
	return trap
}

// InstallAllocator makes a the process allocator for the duration of the
// test.
func InstallAllocator(t *testing.T, a alloc.Allocator) {
	t.Helper()
	prev := alloc.Install(a)
	t.Cleanup(func() { alloc.Install(prev) })
}

// LeakCheckedAllocator returns a counting heap allocator and fails the test
// if any of its allocations are still live when the test ends.
func LeakCheckedAllocator(t *testing.T) *alloc.Counting {
	t.Helper()
	c := alloc.NewCounting(alloc.Heap{})
	t.Cleanup(func() {
		if s := c.Stats(); s.Live != 0 {
			t.Errorf("leaked %d allocations (%d bytes)", s.Live, s.LiveBytes)
		}
	})
	return c
}

// ScribblingAllocator returns a heap allocator that overwrites every region
// with fill when it is released, so reads through a stale slice see fill
// instead of the old content.
func ScribblingAllocator(fill byte) alloc.Funcs {
	return alloc.Funcs{
		Alloc: func(size int) []byte { return make([]byte, size) },
		Free: func(b []byte) {
			for i := range b {
				b[i] = fill
			}
		},
	}
}

// CaptureLog routes the engine logger into the returned buffer at the given
// level until the test ends.
func CaptureLog(t *testing.T, level slog.Level) *bytes.Buffer {
	t.Helper()
	var out bytes.Buffer
	if err := logger.Init(logger.Options{Enabled: true, Output: &out, Level: level}); err != nil {
		t.Fatalf("logger init: %v", err)
	}
	t.Cleanup(logger.Reset)
	return &out
}
