package cser

import (
	"errors"
	"fmt"
)

var (
	// ErrNonCanonicalEncoding is returned for input that decodes, but is not
	// the unique minimal encoding of the decoded value.
	ErrNonCanonicalEncoding = errors.New("non canonical encoding")
	// ErrMalformedEncoding is returned for input that is too short or
	// internally inconsistent to decode at all.
	ErrMalformedEncoding = errors.New("malformed encoding")
	// ErrTooLargeAlloc is returned when a decoded length exceeds the
	// caller-supplied maximum.
	ErrTooLargeAlloc = errors.New("too large allocation")
	// ErrOverflow is returned when a decoded magnitude does not fit its
	// target type.
	ErrOverflow = errors.New("value overflow")
)

// CustomError is a decode failure defined by a type codec, such as a string
// that is not valid UTF-8. It is returned to the caller unchanged.
type CustomError struct {
	Msg string
}

func (err CustomError) Error() string {
	return fmt.Sprintf("custom error: %v", err.Msg)
}

// Custom returns a CustomError with the given message.
func Custom(msg string) error {
	return CustomError{Msg: msg}
}
