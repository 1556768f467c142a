package cser

import "fmt"

// MaxU56 is the largest value a U56 can hold.
const MaxU56 = 1<<56 - 1

// U56 is an unsigned integer of at most 56 bits. It is the wire type of every
// length prefix.
type U56 struct {
	v uint64
}

// NewU56 returns v as a U56, or ErrOverflow if v does not fit in 56 bits.
func NewU56(v uint64) (U56, error) {
	if v > MaxU56 {
		return U56{}, fmt.Errorf("%w: %d exceeds 56 bits", ErrOverflow, v)
	}
	return U56{v: v}, nil
}

// Uint64 returns the value as uint64.
func (u U56) Uint64() uint64 {
	return u.v
}

func (u U56) String() string {
	return fmt.Sprint(u.v)
}
