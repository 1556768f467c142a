package bitstream

// Reader reads bit fields sequentially from a borrowed byte slice.
type Reader struct {
	data []byte
	pos  int  // byte offset
	bit  uint // bit offset within data[pos]
}

// NewReader returns a new instance of Reader.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Read reads the next numBits bits, following the LSB pattern.
// Read(0) returns 0 and leaves the cursor untouched. If fewer than numBits
// bits remain, ErrShortRead is returned and nothing is consumed.
func (r *Reader) Read(numBits uint) (uint64, error) {
	checkWidth(numBits)
	if numBits == 0 {
		return 0, nil
	}
	if uint64(numBits) > r.NonReadBits() {
		return 0, ErrShortRead
	}

	var val uint64
	var shift uint
	for numBits > 0 {
		n := min(numBits, 8-r.bit)
		chunk := uint64(r.data[r.pos]>>r.bit) & mask(n)
		val |= chunk << shift

		shift += n
		numBits -= n
		r.bit += n
		if r.bit == 8 {
			r.bit = 0
			r.pos++
		}
	}

	return val, nil
}

// ReadBit reads the next single bit.
func (r *Reader) ReadBit() (Bit, error) {
	v, err := r.Read(1)
	if err != nil {
		return Zero, err
	}
	return v == 1, nil
}

// View returns the next numBits bits without consuming them.
func (r *Reader) View(numBits uint) (uint64, error) {
	peek := *r
	return peek.Read(numBits)
}

// NonReadBytes returns the number of bytes not fully consumed, including a
// partially read one.
func (r *Reader) NonReadBytes() int {
	return len(r.data) - r.pos
}

// NonReadBits returns the number of bits not yet consumed.
func (r *Reader) NonReadBits() uint64 {
	return uint64(r.NonReadBytes())*8 - uint64(r.bit)
}
