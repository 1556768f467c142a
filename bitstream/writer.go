package bitstream

// Writer appends bit fields to a growing byte slice.
// The unwritten bits of the last byte are always zero.
type Writer struct {
	data []byte
	// offset of the next free bit in the last byte; 0 means byte-aligned.
	offset uint
}

// NewWriter returns a new instance of Writer with room for size bytes.
func NewWriter(size int) *Writer {
	return &Writer{data: make([]byte, 0, size)}
}

// Write appends the low numBits bits of val, LS bit first.
// Bits of val above numBits are ignored.
func (w *Writer) Write(numBits uint, val uint64) {
	checkWidth(numBits)
	val &= mask(numBits)

	for numBits > 0 {
		if w.offset == 0 {
			w.data = append(w.data, 0)
		}

		n := min(numBits, 8-w.offset)
		w.data[len(w.data)-1] |= byte(val&mask(n)) << w.offset

		w.offset = (w.offset + n) % 8
		numBits -= n
		val >>= n
	}
}

// WriteBit writes a single bit.
func (w *Writer) WriteBit(bit Bit) {
	if bit {
		w.Write(1, 1)
	} else {
		w.Write(1, 0)
	}
}

// Bytes returns the written bytes. The slice aliases the Writer's buffer.
func (w *Writer) Bytes() []byte {
	return w.data
}

// Len returns the number of bits written so far.
func (w *Writer) Len() uint64 {
	if w.offset == 0 {
		return uint64(len(w.data)) * 8
	}
	return uint64(len(w.data)-1)*8 + uint64(w.offset)
}
