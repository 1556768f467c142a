package cser

import (
	"encoding/hex"

	"github.com/spacemeshos/sha256-simd"
	"github.com/zeebo/blake3"
)

// ID identifies a value by a hash of its canonical encoding. Two values are
// equal iff their IDs are, as every value has exactly one encoding.
type ID [32]byte

func (id ID) String() string {
	return hex.EncodeToString(id[:])
}

// ContentID returns the SHA-256 of data.
func ContentID(data []byte) ID {
	h := sha256.New()
	h.Write(data)

	var id ID
	copy(id[:], h.Sum(nil))
	return id
}

// ContentIDBlake3 returns the BLAKE3-256 of data.
func ContentIDBlake3(data []byte) ID {
	h := blake3.New()
	_, _ = h.Write(data)

	var id ID
	copy(id[:], h.Sum(nil))
	return id
}

// IDOf returns the ContentID of the canonical encoding of v.
func IDOf(v Encodable) ID {
	return ContentID(Marshal(v))
}

// VerifiedID decodes data into v, rejecting any non canonical input, and
// returns the ContentID of data.
func VerifiedID(data []byte, v Decodable, opts ...OptionFunc) (ID, error) {
	if err := Unmarshal(data, v, opts...); err != nil {
		return ID{}, err
	}
	return ContentID(data), nil
}
