package cser

import (
	"github.com/spacemeshos/cser/bitstream"
	"github.com/spacemeshos/cser/bytestream"
)

// Size-class parameters: minimal payload size and width of the size tag.
const (
	u16MinSize, u16SizeBits = 1, 1
	u32MinSize, u32SizeBits = 1, 2
	u64MinSize, u64SizeBits = 1, 3
	u56MinSize, u56SizeBits = 0, 3
)

// Writer accumulates the bit stream and the byte stream of a single
// serialization. It is not safe for concurrent use.
type Writer struct {
	bits  *bitstream.Writer
	bytes *bytestream.Writer
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{
		bits:  bitstream.NewWriter(32),
		bytes: bytestream.NewWriter(200),
	}
}

// WriteBits appends the low numBits bits of v to the bit stream.
func (w *Writer) WriteBits(numBits uint, v uint64) {
	w.bits.Write(numBits, v)
}

// WriteRaw appends p to the byte stream as is.
func (w *Writer) WriteRaw(p []byte) {
	w.bytes.Write(p)
}

// WriteUint64Bits writes v with the size-class codec: the minimal
// little-endian bytes of v (at least minSize of them) go to the byte stream,
// and their count minus minSize goes to the bit stream in sizeBits bits.
func (w *Writer) WriteUint64Bits(minSize, sizeBits uint, v uint64) {
	var size uint
	for size < minSize || v != 0 {
		w.bytes.AppendByte(byte(v))
		size++
		v >>= 8
	}
	w.bits.Write(sizeBits, uint64(size-minSize))
}

// Output packs both streams into a single buffer. The Writer must not be
// used after Output.
func (w *Writer) Output() []byte {
	return Pack(w.bits.Bytes(), w.bytes.Bytes())
}
