package hexbytes

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedCharacter is returned for any character outside 0-9a-fA-F,
	// regardless of Mode.
	ErrMalformedCharacter = errors.New("hexbytes: malformed hex character")
	// ErrLengthMismatch is returned in Strict mode when the decoded size differs
	// from the expected length.
	ErrLengthMismatch = errors.New("hexbytes: decoded length mismatch")
	// ErrOddDigitCount is returned in Strict mode for an odd number of digits.
	ErrOddDigitCount = errors.New("hexbytes: odd hex digit count")
)

// DecodeError describes a rejected decode. Err is one of the sentinels above;
// use errors.Is to branch on it.
//
// Offset and Char are set for ErrMalformedCharacter only (Offset is -1
// otherwise) and index the original input, prefix included. Want/Got carry byte
// counts for ErrLengthMismatch and the digit count (Got) for ErrOddDigitCount.
type DecodeError struct {
	Err    error
	Input  string
	Offset int
	Char   byte
	Want   int
	Got    int
}

func (e *DecodeError) Error() string {
	switch e.Err {
	case ErrMalformedCharacter:
		return fmt.Sprintf("%v: %q at index %d of %q", e.Err, e.Char, e.Offset, e.Input)
	case ErrLengthMismatch:
		return fmt.Sprintf("%v: expected %d bytes, got %d", e.Err, e.Want, e.Got)
	case ErrOddDigitCount:
		return fmt.Sprintf("%v: %d digits", e.Err, e.Got)
	default:
		return fmt.Sprintf("hexbytes: decode %q: %v", e.Input, e.Err)
	}
}

func (e *DecodeError) Unwrap() error { return e.Err }
