package types

// Error is a typed error carrying a Status, with an optional operation name
// and underlying cause. Status.Err produces one for error statuses; operations
// that fail for a reason outside the engine, such as a text transformer,
// return one with the cause attached.
type Error struct {
	Status Status
	Op     string // optional operation name, e.g. "Import"
	Err    error  // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Status.Message()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error carrying the same Status, so errors.Is works against
// the sentinels below regardless of Op and cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Status == t.Status
}

// Sentinels for errors.Is checks.
var (
	ErrNullOutput      = &Error{Status: NullOutput}
	ErrSizeTooLarge    = &Error{Status: SizeTooLarge}
	ErrIndexOutOfRange = &Error{Status: IndexOutOfRange}
	ErrSizeZero        = &Error{Status: SizeZero}
	ErrNoMemory        = &Error{Status: NoMemory}
	ErrCorrupted       = &Error{Status: Corrupted}
	ErrBug             = &Error{Status: Bug}
)
