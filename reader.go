package cser

import (
	"fmt"

	"github.com/spacemeshos/cser/bitstream"
	"github.com/spacemeshos/cser/bytestream"
)

// Reader reads values from the bit stream and the byte stream of a single
// buffer. It borrows the buffer for its whole lifetime.
type Reader struct {
	bits  *bitstream.Reader
	bytes *bytestream.Reader
}

// NewReader returns a Reader over already unpacked streams. Most callers
// want Deserialize instead, which also verifies that the input is canonical.
func NewReader(bits, bytes []byte) *Reader {
	return &Reader{
		bits:  bitstream.NewReader(bits),
		bytes: bytestream.NewReader(bytes),
	}
}

// ReadBits reads the next numBits bits of the bit stream.
func (r *Reader) ReadBits(numBits uint) (uint64, error) {
	v, err := r.bits.Read(numBits)
	if err != nil {
		return 0, ErrMalformedEncoding
	}
	return v, nil
}

// ReadRaw returns the next n bytes of the byte stream. The slice aliases the
// input buffer.
func (r *Reader) ReadRaw(n int) ([]byte, error) {
	p, err := r.bytes.Next(n)
	if err != nil {
		return nil, ErrMalformedEncoding
	}
	return p, nil
}

// ReadUint64Bits reads a value written by Writer.WriteUint64Bits with the
// same parameters.
func (r *Reader) ReadUint64Bits(minSize, sizeBits uint) (uint64, error) {
	tag, err := r.ReadBits(sizeBits)
	if err != nil {
		return 0, err
	}
	size := tag + uint64(minSize)
	if size > uint64(r.bytes.Len()) {
		return 0, ErrMalformedEncoding
	}
	if size > 8 {
		return 0, ErrOverflow
	}

	buf, err := r.ReadRaw(int(size))
	if err != nil {
		return 0, err
	}

	var v uint64
	for i, b := range buf {
		v |= uint64(b) << (8 * i)
	}
	// The most significant byte above minSize must carry a bit, otherwise a
	// shorter size class would have held the value. With minSize 0 this
	// also rejects a lone zero byte.
	if size > uint64(minSize) && buf[size-1] == 0 {
		return 0, ErrNonCanonicalEncoding
	}

	return v, nil
}

// SliceBytes reads a U56 length followed by that many bytes. It fails with
// ErrTooLargeAlloc if the length exceeds maxLen. The slice aliases the input
// buffer.
func (r *Reader) SliceBytes(maxLen uint64) ([]byte, error) {
	size, err := r.U56()
	if err != nil {
		return nil, err
	}
	if size.Uint64() > maxLen {
		return nil, fmt.Errorf("%w: length %d, max %d", ErrTooLargeAlloc, size.Uint64(), maxLen)
	}
	if size.Uint64() > uint64(r.bytes.Len()) {
		return nil, ErrMalformedEncoding
	}
	return r.ReadRaw(int(size.Uint64()))
}

// finish checks that both streams have been consumed: at most the last
// partial byte of the bit stream may remain, and its padding must be zero.
func (r *Reader) finish() error {
	if r.bits.NonReadBytes() > 1 {
		return fmt.Errorf("%w: %d unread bit stream bytes", ErrNonCanonicalEncoding, r.bits.NonReadBytes())
	}
	tail, err := r.bits.Read(uint(r.bits.NonReadBits()))
	if err != nil {
		return ErrMalformedEncoding
	}
	if tail != 0 {
		return fmt.Errorf("%w: non-zero padding bits", ErrNonCanonicalEncoding)
	}
	if !r.bytes.Empty() {
		return fmt.Errorf("%w: %d unread byte stream bytes", ErrNonCanonicalEncoding, r.bytes.Len())
	}
	return nil
}
