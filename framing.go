package cser

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/spacemeshos/cser/bytestream"
)

// Pack lays out a byte stream and a bit stream as a single buffer:
//
//	[ bytes ][ bits ][ reverse(varint7(len(bits))) ]
//
// The trailer is reversed so that it can be parsed from the end of the
// buffer.
func Pack(bits, bytes []byte) []byte {
	trailer := bytestream.NewWriter(MaxTrailerLen)
	writeUint64Compact(trailer, uint64(len(bits)))

	out := make([]byte, 0, len(bytes)+len(bits)+trailer.Len())
	out = append(out, bytes...)
	out = append(out, bits...)
	t := trailer.Bytes()
	for i := len(t) - 1; i >= 0; i-- {
		out = append(out, t[i])
	}
	return out
}

// Unpack splits a buffer produced by Pack back into its bit stream and byte
// stream. Both returned slices alias raw.
func Unpack(raw []byte) (bits, bytes []byte, err error) {
	window := raw[len(raw)-min(len(raw), MaxTrailerLen):]
	reversed := make([]byte, len(window))
	for i, b := range window {
		reversed[len(window)-1-i] = b
	}

	r := bytestream.NewReader(reversed)
	size, err := readUint64Compact(r)
	if err != nil {
		return nil, nil, err
	}

	body := raw[:len(raw)-r.Position()]
	if size > uint64(len(body)) {
		return nil, nil, fmt.Errorf("%w: bit stream length %d exceeds %d available bytes", ErrMalformedEncoding, size, len(body))
	}

	split := len(body) - int(size)
	return body[split:], body[:split], nil
}

// Serialize runs fn against a fresh Writer and returns the packed output.
func Serialize(fn func(w *Writer)) []byte {
	w := NewWriter()
	fn(w)
	return w.Output()
}

// Deserialize unpacks data, runs fn against a Reader over it and then checks
// that fn consumed the input exactly: no unread bytes, no unread bits other
// than zero padding in the last bit stream byte. The first error returned by
// fn is returned as is.
func Deserialize(data []byte, fn func(r *Reader) error, opts ...OptionFunc) error {
	options := applyOpts(opts...)

	bits, bytes, err := Unpack(data)
	if err != nil {
		options.logger.Debug("cser: failed to unpack input",
			zap.Int("len", len(data)),
			zap.Error(err),
		)
		return err
	}

	r := NewReader(bits, bytes)
	if err := fn(r); err != nil {
		return err
	}

	if err := r.finish(); err != nil {
		options.logger.Debug("cser: input is not exhausted",
			zap.Int("bits_len", len(bits)),
			zap.Int("bytes_len", len(bytes)),
			zap.Error(err),
		)
		return err
	}
	return nil
}
