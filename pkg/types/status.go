package types

import "fmt"

// Status is the result of every engine operation.
//
// The numeric layout is part of the public contract. Bit 0x40 marks an error
// and bit 0x80 marks a fatal condition; callers test membership by mask.
type Status uint8

const (
	Ok              Status = 0x00 // the operation completed
	Truncated       Status = 0x01 // the result is shorter than requested but safe
	Equal           Status = 0x02 // comparison: operands are equal
	Lower           Status = 0x03 // comparison: first operand orders before the second
	Greater         Status = 0x04 // comparison: first operand orders after the second
	NullOutput      Status = 0x40 // an absent output argument was supplied
	SizeTooLarge    Status = 0x41 // a size exceeds SizeMax
	IndexOutOfRange Status = 0x42 // an index argument is out of range
	SizeZero        Status = 0x43 // a size is zero where storage is required
	NoMemory        Status = 0xC0 // allocation failed, the target is unchanged
	Corrupted       Status = 0xC1 // a guard check failed, the target is unchanged
	Bug             Status = 0xC2 // internal inconsistency detected
)

const (
	// ErrorBit is set in every error status.
	ErrorBit Status = 0x40
	// FatalBit is set in every fatal status.
	FatalBit Status = 0x80
)

// IsSuccess reports whether s is not an error. Truncated and the comparison
// outcomes are successes.
func (s Status) IsSuccess() bool { return s&ErrorBit == 0 }

// IsError reports whether the error bit is set.
func (s Status) IsError() bool { return s&ErrorBit != 0 }

// IsFatal reports whether the fatal bit is set.
func (s Status) IsFatal() bool { return s&FatalBit != 0 }

// Message returns the fixed human-readable sentence describing s,
// or "Unknown" for values outside the enumeration.
func (s Status) Message() string {
	switch s {
	case Ok:
		return "The function executed successfully"
	case Truncated:
		return "The result is truncated but safe"
	case Equal:
		return "Objects are equal after comparison"
	case Lower:
		return "Object 1 is lower than object 2 after comparison"
	case Greater:
		return "Object 1 is greater than object 2 after comparison"
	case NullOutput:
		return "A NULL pointer was provided as output parameter"
	case SizeTooLarge:
		return "Some size is larger than SSM_SIZE_MAX"
	case IndexOutOfRange:
		return "An index parameter in out of range"
	case SizeZero:
		return "Some size is zero"
	case NoMemory:
		return "Memory allocation failure, result is unchanged"
	case Corrupted:
		return "Memory was previously corrupted, result is undefined but safe"
	case Bug:
		return "Internal inconsistency, there is a bug in the SSM library"
	default:
		return "Unknown"
	}
}

// String returns the identifier of s, e.g. "Truncated".
func (s Status) String() string {
	switch s {
	case Ok:
		return "Ok"
	case Truncated:
		return "Truncated"
	case Equal:
		return "Equal"
	case Lower:
		return "Lower"
	case Greater:
		return "Greater"
	case NullOutput:
		return "NullOutput"
	case SizeTooLarge:
		return "SizeTooLarge"
	case IndexOutOfRange:
		return "IndexOutOfRange"
	case SizeZero:
		return "SizeZero"
	case NoMemory:
		return "NoMemory"
	case Corrupted:
		return "Corrupted"
	case Bug:
		return "Bug"
	default:
		return fmt.Sprintf("Status(0x%02X)", uint8(s))
	}
}

// IsComparison reports whether s is one of Equal, Lower or Greater.
func (s Status) IsComparison() bool {
	return s == Equal || s == Lower || s == Greater
}

// Sign maps a comparison outcome to -1, 0 or +1 in the manner of bytes.Compare.
// ok is false when s is not a comparison outcome.
func (s Status) Sign() (sign int, ok bool) {
	switch s {
	case Equal:
		return 0, true
	case Lower:
		return -1, true
	case Greater:
		return 1, true
	default:
		return 0, false
	}
}

// Mirror returns the outcome of the same comparison with its operands swapped.
// Non-comparison statuses are returned unchanged.
func (s Status) Mirror() Status {
	switch s {
	case Lower:
		return Greater
	case Greater:
		return Lower
	default:
		return s
	}
}

// Err returns nil when s is a success and a *Error carrying s otherwise.
func (s Status) Err() error {
	if s.IsSuccess() {
		return nil
	}
	return &Error{Status: s}
}
