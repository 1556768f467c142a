package cser

import "github.com/holiman/uint256"

const uint256Size = 32

// Uint256 writes v as its big-endian bytes without leading zeros, encoded as
// a byte sequence. Zero is the empty sequence.
func (w *Writer) Uint256(v *uint256.Int) {
	w.Bytes(v.Bytes())
}

// Uint256 reads a value written by Writer.Uint256. A leading zero byte is
// rejected as non canonical.
func (r *Reader) Uint256() (*uint256.Int, error) {
	p, err := r.BoundedBytes(uint256Size)
	if err != nil {
		return nil, err
	}
	if len(p) > 0 && p[0] == 0 {
		return nil, ErrNonCanonicalEncoding
	}
	return new(uint256.Int).SetBytes(p), nil
}
