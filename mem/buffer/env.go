package buffer

import (
	"sync/atomic"

	"github.com/joshuapare/safemem/internal/format"
	"github.com/joshuapare/safemem/mem/alloc"
	"github.com/joshuapare/safemem/pkg/types"
)

// Env bundles the collaborators a buffer uses. Zero fields fall back to the
// process defaults: the installed allocator (resolved at each allocation),
// DefaultValidator and alloc.DefaultPolicy.
//
// A buffer keeps the Env it was created with. Do not change the fields of an
// Env while buffers created from it hold storage.
type Env struct {
	Allocator alloc.Allocator
	Validator Validator
	Policy    alloc.Policy
}

var (
	defaultEnv atomic.Pointer[Env]
	zeroEnv    = &Env{}
)

// DefaultEnv returns the process default Env.
func DefaultEnv() *Env {
	if e := defaultEnv.Load(); e != nil {
		return e
	}
	return zeroEnv
}

// SetDefaultEnv replaces the process default Env and returns the previous
// one. A nil e restores the zero Env. Existing buffers keep their Env.
func SetDefaultEnv(e *Env) *Env {
	prev := defaultEnv.Swap(e)
	if prev == nil {
		return zeroEnv
	}
	return prev
}

func (e *Env) allocator() alloc.Allocator {
	if e != nil && e.Allocator != nil {
		return e.Allocator
	}
	return alloc.Installed()
}

func (e *Env) validator() Validator {
	if e != nil && e.Validator != nil {
		return e.Validator
	}
	return DefaultValidator()
}

func (e *Env) policy() alloc.Policy {
	if e == nil {
		return alloc.DefaultPolicy
	}
	return e.Policy
}

// NewFixed returns a fixed buffer able to hold capacity bytes. Its storage
// comes from the Go heap. NewFixed panics if capacity is negative or above
// types.SizeMax.
func (e *Env) NewFixed(capacity int) *Fixed {
	v := e.validator()
	lay := format.FixedLayout(v.Guarded())
	size, ok := lay.StorageSize(capacity)
	if !ok || !types.ValidSize(capacity) || size > types.SizeMax {
		panic("buffer: invalid capacity")
	}
	return newFixed(make([]byte, size), v)
}

// FixedOn returns a fixed buffer over caller-provided storage. The capacity
// is len(storage) minus the terminator and, when guarded, the trailing
// marker. The storage must not be used directly while the buffer is in use.
//
// It reports NullOutput for nil storage, SizeTooLarge when the storage is
// larger than types.SizeMax and SizeZero when it cannot hold the overhead.
func (e *Env) FixedOn(storage []byte) (*Fixed, types.Status) {
	v := e.validator()
	lay := format.FixedLayout(v.Guarded())
	switch {
	case storage == nil:
		return nil, types.NullOutput
	case len(storage) > types.SizeMax:
		return nil, types.SizeTooLarge
	case lay.Capacity(len(storage)) < 0:
		return nil, types.SizeZero
	}
	return newFixed(storage, v), types.Ok
}

// NewGrowable returns an empty growable buffer bound to e.
func (e *Env) NewGrowable() *Growable {
	g := &Growable{}
	g.bind(e)
	return g
}

// NewFixed calls NewFixed on the process default Env.
func NewFixed(capacity int) *Fixed {
	return DefaultEnv().NewFixed(capacity)
}

// FixedOn calls FixedOn on the process default Env.
func FixedOn(storage []byte) (*Fixed, types.Status) {
	return DefaultEnv().FixedOn(storage)
}

// NewGrowable calls NewGrowable on the process default Env.
func NewGrowable() *Growable {
	return DefaultEnv().NewGrowable()
}
