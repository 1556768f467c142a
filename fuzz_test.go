package cser_test

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/cser"
)

func FuzzConsistency(f *testing.F) {
	f.Add(false, uint16(0), uint32(0), uint64(0), int64(0), "", []byte(nil))
	f.Add(true, uint16(0xbeef), uint32(1<<31), uint64(1<<63), int64(-1<<63), "hello", []byte{0, 1, 2})

	f.Fuzz(func(t *testing.T, flag bool, small uint16, count uint32, amount uint64, delta int64, name string, data []byte) {
		if !utf8.ValidString(name) {
			t.Skip()
		}
		rec := record{
			Flag:   flag,
			Small:  small,
			Count:  count,
			Amount: amount,
			Delta:  delta,
			Name:   name,
			Data:   data,
		}
		if len(rec.Data) == 0 {
			rec.Data = nil
		}
		if count%2 == 1 {
			rec.Maybe = &count
		}

		buf := cser.Marshal(rec)

		var got record
		require.NoError(t, cser.Unmarshal(buf, &got))
		require.Equal(t, rec, got)
		require.Equal(t, buf, cser.Marshal(got))
	})
}

func FuzzSafety(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{0x80})
	f.Add(cser.Marshal(record{}))
	f.Add(cser.Marshal(newRecord()))

	f.Fuzz(func(t *testing.T, data []byte) {
		var rec record
		if err := cser.Unmarshal(data, &rec); err != nil {
			return
		}
		require.Equal(t, data, cser.Marshal(rec))
	})
}
