package cser

import "github.com/spacemeshos/cser/bytestream"

const (
	// MaxTrailerLen is the size of the window at the end of a buffer that
	// holds the reversed bit-stream length. A bit-stream length is a byte
	// count below 2^63, which takes at most 9 varint groups of 7 bits.
	MaxTrailerLen = 9

	maxVarintLen64 = 10

	stopBit     = 0x80
	varintGroup = 0x7f
)

// writeUint64Compact writes v in 7-bit groups, least-significant group
// first. The last group carries the stop bit.
func writeUint64Compact(w *bytestream.Writer, v uint64) {
	for {
		chunk := byte(v & varintGroup)
		v >>= 7
		if v == 0 {
			w.AppendByte(chunk | stopBit)
			return
		}
		w.AppendByte(chunk)
	}
}

func readUint64Compact(r *bytestream.Reader) (uint64, error) {
	var v uint64
	for i := 0; ; i++ {
		if i == maxVarintLen64 {
			return 0, ErrOverflow
		}
		b, err := r.ReadByte()
		if err != nil {
			return 0, ErrMalformedEncoding
		}

		stop := b&stopBit != 0
		word := uint64(b & varintGroup)
		// A terminal group without payload is redundant.
		if i > 0 && stop && word == 0 {
			return 0, ErrNonCanonicalEncoding
		}
		// The tenth group holds bit 63 only.
		if i == maxVarintLen64-1 && word > 1 {
			return 0, ErrOverflow
		}

		v |= word << (7 * i)
		if stop {
			return v, nil
		}
	}
}
