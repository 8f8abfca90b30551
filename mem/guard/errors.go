package guard

import "fmt"

// Kinds of validation failures.
const (
	TypeFixed    = "FixedBuffer"
	TypeGrowable = "GrowableBuffer"
	TypeRegion   = "GrowableRegion"
)

// ValidationError describes a failed buffer verification. Offset is the
// storage offset of the offending byte, or -1 when the failure is in the
// buffer structure itself.
type ValidationError struct {
	Type    string
	Message string
	Offset  int
	Details map[string]interface{}
}

func (e *ValidationError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s at offset 0x%X: %s", e.Type, e.Offset, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// InRegion reports whether the failure lies inside allocated storage rather
// than the buffer structure.
func (e *ValidationError) InRegion() bool {
	return e.Type == TypeRegion
}

// MarkerError builds the error for a marker that does not hold want.
func MarkerError(kind string, off int, got, want uint32) *ValidationError {
	return &ValidationError{
		Type:    kind,
		Message: fmt.Sprintf("guard marker 0x%08X, expected 0x%08X", got, want),
		Offset:  off,
		Details: map[string]interface{}{
			"got":  got,
			"want": want,
		},
	}
}

// Fault is the panic value raised by PanicHandler.
type Fault struct {
	File string
	Line int
}

func (f *Fault) Error() string {
	return fmt.Sprintf("safemem: memory corruption detected at %s:%d", f.File, f.Line)
}
