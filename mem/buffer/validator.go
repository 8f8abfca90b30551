package buffer

import (
	"fmt"

	"github.com/joshuapare/safemem/internal/format"
	"github.com/joshuapare/safemem/mem/guard"
	"github.com/joshuapare/safemem/pkg/types"
)

// Validator verifies buffers before each operation. Strict and Permissive
// are the two implementations.
type Validator interface {
	// Guarded reports whether buffers created under this validator carry
	// guard markers.
	Guarded() bool

	verifyFixed(f *Fixed) *guard.ValidationError
	verifyGrowable(g *Growable) *guard.ValidationError
	corrupted(err *guard.ValidationError)
}

var (
	// Strict checks guard markers and structure and reports failures to
	// the guard handler.
	Strict Validator = strictValidator{}

	// Permissive checks structure only and never calls the handler.
	Permissive Validator = permissiveValidator{}
)

// DefaultValidator returns Strict, or Permissive in noguard builds.
func DefaultValidator() Validator {
	if guard.Enabled {
		return Strict
	}
	return Permissive
}

type strictValidator struct{}

func (strictValidator) Guarded() bool { return true }

func (strictValidator) verifyFixed(f *Fixed) *guard.ValidationError {
	if f.data == nil {
		return verifyUnsetFixed(f)
	}
	lay := format.FixedLayout(true)
	if err := verifyFixedShape(f, lay); err != nil {
		return err
	}
	switch f.head {
	case format.MarkerInit:
		if f.length != 0 {
			return &guard.ValidationError{
				Type:    guard.TypeFixed,
				Message: fmt.Sprintf("unwritten buffer holds %d bytes", f.length),
				Offset:  -1,
			}
		}
		return nil
	case format.MarkerUpdate:
		off := lay.TailOffset(len(f.data))
		if !format.MarkerIs(f.data, off, format.MarkerTrail) {
			return markerMismatch(guard.TypeFixed, f.data, off, format.MarkerTrail)
		}
		return nil
	default:
		return guard.MarkerError(guard.TypeFixed, -1, f.head, format.MarkerUpdate)
	}
}

func (strictValidator) verifyGrowable(g *Growable) *guard.ValidationError {
	if g.untouched() {
		return nil
	}
	if g.head != format.MarkerInit {
		return guard.MarkerError(guard.TypeGrowable, -1, g.head, format.MarkerInit)
	}
	if g.tail != format.MarkerTrail {
		return guard.MarkerError(guard.TypeGrowable, -1, g.tail, format.MarkerTrail)
	}
	lay := format.GrowableLayout(true)
	if err := verifyGrowableShape(g, lay); err != nil || g.data == nil {
		return err
	}
	if !format.MarkerIs(g.data, 0, format.MarkerInit) {
		return markerMismatch(guard.TypeRegion, g.data, 0, format.MarkerInit)
	}
	off := lay.TailOffset(len(g.data))
	if !format.MarkerIs(g.data, off, format.MarkerTrail) {
		return markerMismatch(guard.TypeRegion, g.data, off, format.MarkerTrail)
	}
	return nil
}

// markerMismatch describes the marker at off in region, which is not want.
func markerMismatch(kind string, region []byte, off int, want uint32) *guard.ValidationError {
	got, _ := format.ReadMarker(region, off)
	return guard.MarkerError(kind, off, got, want)
}

func (strictValidator) corrupted(err *guard.ValidationError) {
	guard.Report(err)
}

type permissiveValidator struct{}

func (permissiveValidator) Guarded() bool { return false }

func (permissiveValidator) verifyFixed(f *Fixed) *guard.ValidationError {
	if f.data == nil {
		return verifyUnsetFixed(f)
	}
	return verifyFixedShape(f, format.FixedLayout(false))
}

func (permissiveValidator) verifyGrowable(g *Growable) *guard.ValidationError {
	if g.untouched() {
		return nil
	}
	return verifyGrowableShape(g, format.GrowableLayout(false))
}

func (permissiveValidator) corrupted(*guard.ValidationError) {}

// verifyUnsetFixed accepts the zero Fixed, which has no storage.
func verifyUnsetFixed(f *Fixed) *guard.ValidationError {
	if f.head == 0 && f.length == 0 {
		return nil
	}
	return &guard.ValidationError{
		Type:    guard.TypeFixed,
		Message: fmt.Sprintf("no storage but head 0x%08X and length %d", f.head, f.length),
		Offset:  -1,
	}
}

func verifyFixedShape(f *Fixed, lay format.Layout) *guard.ValidationError {
	capacity := lay.Capacity(len(f.data))
	switch {
	case capacity < 0 || len(f.data) > types.SizeMax:
		return &guard.ValidationError{
			Type:    guard.TypeFixed,
			Message: fmt.Sprintf("storage size %d out of range", len(f.data)),
			Offset:  -1,
		}
	case f.length < 0 || f.length > capacity:
		return &guard.ValidationError{
			Type:    guard.TypeFixed,
			Message: fmt.Sprintf("length %d exceeds capacity %d", f.length, capacity),
			Offset:  -1,
		}
	}
	if off := lay.TerminatorOffset(f.length); f.data[off] != 0 {
		return &guard.ValidationError{
			Type:    guard.TypeFixed,
			Message: fmt.Sprintf("terminator is 0x%02X", f.data[off]),
			Offset:  off,
		}
	}
	return nil
}

func verifyGrowableShape(g *Growable, lay format.Layout) *guard.ValidationError {
	if g.data == nil {
		if g.length != 0 {
			return &guard.ValidationError{
				Type:    guard.TypeGrowable,
				Message: fmt.Sprintf("length %d without storage", g.length),
				Offset:  -1,
			}
		}
		return nil
	}
	capacity := lay.Capacity(len(g.data))
	switch {
	case capacity < 0 || len(g.data) > types.SizeMax:
		return &guard.ValidationError{
			Type:    guard.TypeGrowable,
			Message: fmt.Sprintf("storage size %d out of range", len(g.data)),
			Offset:  -1,
		}
	case g.length < 0 || g.length > capacity:
		return &guard.ValidationError{
			Type:    guard.TypeGrowable,
			Message: fmt.Sprintf("length %d exceeds capacity %d", g.length, capacity),
			Offset:  -1,
		}
	}
	if off := lay.TerminatorOffset(g.length); g.data[off] != 0 {
		return &guard.ValidationError{
			Type:    guard.TypeRegion,
			Message: fmt.Sprintf("terminator is 0x%02X", g.data[off]),
			Offset:  off,
		}
	}
	return nil
}
