// Package cser implements a canonical binary serialization built from two
// sub-streams: a bit stream holding small tag fields (booleans, size classes,
// presence flags) and a byte stream holding payload bytes.
//
// A serialized buffer is laid out as
//
//	[ byte stream ][ bit stream ][ reverse(varint7(len(bit stream))) ]
//
// Every value has exactly one valid encoding. Decoding rejects redundant
// size classes, redundant varint groups, negative zero, non-zero padding
// bits and unread input, so encoded bytes can be compared or hashed in place
// of the values they encode.
//
// Integers use a size-class codec: the minimal little-endian bytes of the
// value go to the byte stream and their count goes to the bit stream.
//
//	type      min size  size bits
//	uint16    1         1
//	uint32    1         2
//	uint64    1         3
//	U56       0         3
//
// The format has no type tags: the decoding type determines the shape.
package cser
