// Package bitstream provides bit-granularity access to a byte slice,
// following the LSB pattern, where least-significant bits are written/read
// first. Fields are packed back to back and may straddle byte boundaries.
package bitstream

import "io"

type Bit bool

const (
	Zero Bit = false
	One  Bit = true
)

// MaxWidth is the widest field that can be written or read in a single call.
const MaxWidth = 64

// ErrShortRead is returned when fewer bits remain than were requested.
var ErrShortRead = io.ErrUnexpectedEOF

func mask(bits uint) uint64 {
	if bits >= 64 {
		return ^uint64(0)
	}
	return (1 << bits) - 1
}

func checkWidth(bits uint) {
	if bits > MaxWidth {
		panic("bitstream: field wider than 64 bits")
	}
}
