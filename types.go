package cser

import (
	"math"
	"unicode/utf8"
)

// Bool writes v as a single bit.
func (w *Writer) Bool(v bool) {
	if v {
		w.WriteBits(1, 1)
	} else {
		w.WriteBits(1, 0)
	}
}

// Bool reads a single bit.
func (r *Reader) Bool() (bool, error) {
	v, err := r.ReadBits(1)
	return v != 0, err
}

// Uint8 writes v as one raw byte.
func (w *Writer) Uint8(v uint8) {
	w.bytes.AppendByte(v)
}

func (r *Reader) Uint8() (uint8, error) {
	v, err := r.bytes.ReadByte()
	if err != nil {
		return 0, ErrMalformedEncoding
	}
	return v, nil
}

func (w *Writer) Uint16(v uint16) {
	w.WriteUint64Bits(u16MinSize, u16SizeBits, uint64(v))
}

func (r *Reader) Uint16() (uint16, error) {
	v, err := r.ReadUint64Bits(u16MinSize, u16SizeBits)
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint16 {
		return 0, ErrOverflow
	}
	return uint16(v), nil
}

func (w *Writer) Uint32(v uint32) {
	w.WriteUint64Bits(u32MinSize, u32SizeBits, uint64(v))
}

func (r *Reader) Uint32() (uint32, error) {
	v, err := r.ReadUint64Bits(u32MinSize, u32SizeBits)
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint32 {
		return 0, ErrOverflow
	}
	return uint32(v), nil
}

func (w *Writer) Uint64(v uint64) {
	w.WriteUint64Bits(u64MinSize, u64SizeBits, v)
}

func (r *Reader) Uint64() (uint64, error) {
	return r.ReadUint64Bits(u64MinSize, u64SizeBits)
}

// Int64 writes a sign bit followed by the magnitude of v as uint64.
func (w *Writer) Int64(v int64) {
	w.Bool(v < 0)
	abs := uint64(v)
	if v < 0 {
		abs = -abs
	}
	w.Uint64(abs)
}

// Int64 reads a value written by Writer.Int64. Negative zero is rejected.
func (r *Reader) Int64() (int64, error) {
	neg, err := r.Bool()
	if err != nil {
		return 0, err
	}
	abs, err := r.Uint64()
	if err != nil {
		return 0, err
	}

	switch {
	case neg && abs == 0:
		return 0, ErrNonCanonicalEncoding
	case neg && abs > 1<<63:
		return 0, ErrOverflow
	case !neg && abs > math.MaxInt64:
		return 0, ErrOverflow
	case neg:
		return int64(-abs), nil
	default:
		return int64(abs), nil
	}
}

func (w *Writer) U56(v U56) {
	w.WriteUint64Bits(u56MinSize, u56SizeBits, v.v)
}

func (r *Reader) U56() (U56, error) {
	v, err := r.ReadUint64Bits(u56MinSize, u56SizeBits)
	if err != nil {
		return U56{}, err
	}
	if v > MaxU56 {
		return U56{}, ErrOverflow
	}
	return U56{v: v}, nil
}

// FixedBytes writes p as raw bytes without a length prefix. The decoder is
// expected to know the length.
func (w *Writer) FixedBytes(p []byte) {
	w.WriteRaw(p)
}

// FixedBytes fills dst from the byte stream.
func (r *Reader) FixedBytes(dst []byte) error {
	p, err := r.ReadRaw(len(dst))
	if err != nil {
		return err
	}
	copy(dst, p)
	return nil
}

// Bytes writes p as a U56 length followed by the raw bytes. This is the
// encoding of every byte sequence; use it rather than WriteSlice for []byte.
func (w *Writer) Bytes(p []byte) {
	size, err := NewU56(uint64(len(p)))
	if err != nil {
		panic(err)
	}
	w.U56(size)
	w.WriteRaw(p)
}

// Bytes reads a byte sequence written by Writer.Bytes into a new slice.
// An empty sequence is returned as nil.
func (r *Reader) Bytes() ([]byte, error) {
	p, err := r.SliceBytes(MaxU56)
	if err != nil {
		return nil, err
	}
	return clone(p), nil
}

// BoundedBytes reads a byte sequence into a new slice of at most max bytes.
// A longer sequence does not fit the destination and fails with ErrOverflow.
func (r *Reader) BoundedBytes(max int) ([]byte, error) {
	size, err := r.U56()
	if err != nil {
		return nil, err
	}
	if size.Uint64() > uint64(max) {
		return nil, ErrOverflow
	}
	p, err := r.ReadRaw(int(size.Uint64()))
	if err != nil {
		return nil, err
	}
	return clone(p), nil
}

func clone(p []byte) []byte {
	if len(p) == 0 {
		return nil
	}
	return append([]byte{}, p...)
}

// String writes s as a byte sequence.
func (w *Writer) String(s string) {
	size, err := NewU56(uint64(len(s)))
	if err != nil {
		panic(err)
	}
	w.U56(size)
	w.bytes.Write([]byte(s))
}

// String reads a byte sequence and checks that it is valid UTF-8.
func (r *Reader) String() (string, error) {
	p, err := r.SliceBytes(MaxU56)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(p) {
		return "", Custom("invalid utf-8 string")
	}
	return string(p), nil
}
