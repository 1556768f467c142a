package bitstream_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/cser/bitstream"
)

const (
	Zero = bitstream.Zero
	One  = bitstream.One
)

var (
	NewWriter = bitstream.NewWriter
	NewReader = bitstream.NewReader
)

// LSB-first layout of consecutive fields:
//
//	        LSB        MSB
var testByteSequence = []byte{
	0x00, // (0) 00000000
	0x01, // (1) 10000000
	0x02, // (2) 01000000
	0x10, // (3) 00001000
	0x80, // (4) 00000001
	0x3A, // (5) 01011100
	0x02, // (6) 01000000
	0x3C, // (7) 00111100
}

var testBitSequence = []struct {
	bits  uint64
	count uint
}{
	{bits: 0, count: 2},
	{bits: 0, count: 3},
	{bits: 0, count: 3},
	{bits: 1, count: 3},
	{bits: 64, count: 10},
	{bits: 128, count: 10},
	{bits: 1280, count: 11},
	{bits: 142, count: 11},
	{bits: 0, count: 5},
	{bits: 7, count: 3},
	{bits: 1, count: 3},
}

type word struct {
	bits uint
	val  uint64
}

func bytesToFit(bits uint64) uint64 {
	return (bits + 7) / 8
}

func genWords(r *rand.Rand, maxCount int, maxBits uint) []word {
	words := make([]word, r.Intn(maxCount))
	for i := range words {
		bits := uint(1)
		if maxBits > 1 {
			bits = 1 + uint(r.Intn(int(maxBits)))
		}
		val := r.Uint64()
		if bits < 64 {
			val &= (1 << bits) - 1
		}
		words[i] = word{bits: bits, val: val}
	}
	return words
}

func testWords(t *testing.T, words []word) {
	req := require.New(t)

	w := NewWriter(100)
	var total uint64
	for _, wd := range words {
		w.Write(wd.bits, wd.val)
		total += uint64(wd.bits)
	}
	req.Equal(bytesToFit(total), uint64(len(w.Bytes())))
	req.Equal(total, w.Len())

	r := NewReader(w.Bytes())
	var read uint64
	for _, wd := range words {
		req.Equal(bytesToFit(total)*8-read, r.NonReadBits())
		req.Equal(bytesToFit(r.NonReadBits()), uint64(r.NonReadBytes()))

		val, err := r.Read(wd.bits)
		req.NoError(err)
		req.Equal(wd.val, val)
		read += uint64(wd.bits)

		req.Equal(bytesToFit(total)*8-read, r.NonReadBits())
		req.Equal(bytesToFit(r.NonReadBits()), uint64(r.NonReadBytes()))
	}

	// The padding of the last byte reads as zero.
	tail, err := r.Read(uint(r.NonReadBits()))
	req.NoError(err)
	req.Zero(tail)
	req.Zero(r.NonReadBits())
	req.Zero(r.NonReadBytes())
}

func TestWords(t *testing.T) {
	for _, tc := range []struct {
		name  string
		words []word
	}{
		{"empty", nil},
		{"b0", []word{{1, 0b0}}},
		{"b1", []word{{1, 0b1}}},
		{"b010101010", []word{{9, 0b010101010}}},
		{"b01010101010101010", []word{{17, 0b01010101010101010}}},
		{"max64", []word{{64, ^uint64(0)}}},
		{"unaligned64", []word{{3, 0b101}, {64, 0x8000_0000_0000_0001}, {5, 0b10001}}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			testWords(t, tc.words)
		})
	}
}

func TestWordsRandom(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for _, maxBits := range []uint{1, 8, 17, 64} {
		for i := 0; i < 50; i++ {
			t.Run(fmt.Sprintf("%d bits, case#%d", maxBits, i), func(t *testing.T) {
				testWords(t, genWords(r, 100, maxBits))
			})
		}
	}
}

func TestWriteLayout(t *testing.T) {
	req := require.New(t)

	w := NewWriter(0)
	for _, c := range testBitSequence {
		w.Write(c.count, c.bits)
	}
	req.Equal(testByteSequence, w.Bytes())
}

func TestReadLayout(t *testing.T) {
	req := require.New(t)

	r := NewReader(testByteSequence)
	for i, c := range testBitSequence {
		val, err := r.Read(c.count)
		req.NoError(err)
		req.Equal(c.bits, val, "field %d", i)
	}
	req.Zero(r.NonReadBits())
}

func TestWriteMasksHighBits(t *testing.T) {
	req := require.New(t)

	w := NewWriter(1)
	w.Write(3, 0xFF)
	w.Write(2, 0)
	req.Equal([]byte{0x07}, w.Bytes())
}

func TestWriteZeroWidth(t *testing.T) {
	req := require.New(t)

	w := NewWriter(1)
	w.Write(0, 0xFF)
	req.Empty(w.Bytes())
	w.WriteBit(One)
	w.Write(0, 0xFF)
	req.Equal([]byte{0x01}, w.Bytes())
}

func TestMixed(t *testing.T) {
	req := require.New(t)

	for i := uint64(1); i < 1<<12; i += 7 {
		w := NewWriter(4)

		w.WriteBit(One)
		w.WriteBit(Zero)
		w.WriteBit(One)
		w.Write(13, i)
		// Write the 3 LS bits of 0xFF.
		w.Write(3, 0xFF)
		w.Write(13, i)
		w.WriteBit(One)

		r := NewReader(w.Bytes())

		bit, err := r.ReadBit()
		req.NoError(err)
		req.Equal(One, bit)
		bit, err = r.ReadBit()
		req.NoError(err)
		req.Equal(Zero, bit)
		bit, err = r.ReadBit()
		req.NoError(err)
		req.Equal(One, bit)

		num, err := r.Read(13)
		req.NoError(err)
		req.Equal(i, num)

		num, err = r.Read(3)
		req.NoError(err)
		req.Equal(uint64(0x07), num)

		num, err = r.Read(13)
		req.NoError(err)
		req.Equal(i, num)

		bit, err = r.ReadBit()
		req.NoError(err)
		req.Equal(One, bit)
	}
}

func TestView(t *testing.T) {
	req := require.New(t)

	r := NewReader([]byte{0xA5, 0x01})
	v, err := r.View(4)
	req.NoError(err)
	req.Equal(uint64(0x5), v)
	req.Equal(uint64(16), r.NonReadBits())

	v, err = r.Read(12)
	req.NoError(err)
	req.Equal(uint64(0x1A5), v)

	v, err = r.View(0)
	req.NoError(err)
	req.Zero(v)
}

func TestShortRead(t *testing.T) {
	req := require.New(t)

	_, err := NewReader(nil).ReadBit()
	req.ErrorIs(err, bitstream.ErrShortRead)

	r := NewReader([]byte{0xFF})
	_, err = r.Read(5)
	req.NoError(err)
	_, err = r.Read(4)
	req.ErrorIs(err, bitstream.ErrShortRead)

	// A failed read consumes nothing.
	req.Equal(uint64(3), r.NonReadBits())
	v, err := r.Read(3)
	req.NoError(err)
	req.Equal(uint64(0x7), v)
}

func TestWidthLimit(t *testing.T) {
	req := require.New(t)

	req.Panics(func() { NewWriter(0).Write(65, 0) })
	req.Panics(func() { _, _ = NewReader(make([]byte, 16)).Read(65) })
}

func BenchmarkWrite(b *testing.B) {
	for bits := uint(1); bits <= 9; bits++ {
		b.Run(fmt.Sprintf("%d bits", bits), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				w := NewWriter(int(bits) * 10_000 / 8)
				for j := 0; j < 10_000; j++ {
					w.Write(bits, 0xff)
				}
			}
		})
	}
}

func BenchmarkRead(b *testing.B) {
	for bits := uint(1); bits <= 9; bits++ {
		w := NewWriter(int(bits) * 10_000 / 8)
		for j := 0; j < 10_000; j++ {
			w.Write(bits, 0xff)
		}
		data := w.Bytes()

		b.Run(fmt.Sprintf("%d bits", bits), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				r := NewReader(data)
				for j := 0; j < 10_000; j++ {
					_, _ = r.Read(bits)
				}
			}
		})
	}
}
