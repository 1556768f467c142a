package cser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/cser"
)

func TestContentID(t *testing.T) {
	req := require.New(t)

	// SHA-256 and BLAKE3 of the empty input.
	req.Equal("e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", cser.ContentID(nil).String())
	req.Equal("af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262", cser.ContentIDBlake3(nil).String())
}

func TestIDOf(t *testing.T) {
	req := require.New(t)

	a := Point{X: 1, Y: 2}
	b := Point{X: 1, Y: 2}
	c := Point{X: 2, Y: 1}

	req.Equal(cser.IDOf(a), cser.IDOf(b))
	req.NotEqual(cser.IDOf(a), cser.IDOf(c))
	req.Equal(cser.ContentID(cser.Marshal(a)), cser.IDOf(a))
}

func TestVerifiedID(t *testing.T) {
	req := require.New(t)

	data := cser.Marshal(Point{X: 7, Y: 8, Visible: true})

	var p Point
	id, err := cser.VerifiedID(data, &p)
	req.NoError(err)
	req.Equal(cser.IDOf(p), id)

	// A set padding bit decodes to the same point but is not canonical.
	tampered := append([]byte{}, data...)
	tampered[len(tampered)-2] |= 0x80
	_, err = cser.VerifiedID(tampered, &p)
	req.ErrorIs(err, cser.ErrNonCanonicalEncoding)
}
