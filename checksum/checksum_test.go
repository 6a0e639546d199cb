package checksum

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomBytes(t *testing.T, n int, seed int64) []byte {
	t.Helper()
	b := make([]byte, n)
	_, err := rand.New(rand.NewSource(seed)).Read(b)
	require.NoError(t, err)
	return b
}

func TestByteSum(t *testing.T) {
	for _, size := range []int{256, 2304} {
		b := randomBytes(t, size, int64(size))

		var want uint32
		for _, v := range b {
			want += uint32(v)
		}

		assert.Equal(t, want, Checksum(b, Byte, Fold))
		assert.Equal(t, want, Checksum(b, Byte, Sum))
	}
}

func TestFoldIsWidthInvariant(t *testing.T) {
	b := randomBytes(t, 2304, 1)
	want := Checksum(b, Byte, Sum)
	for _, w := range Widths {
		assert.Equal(t, want, Checksum(b, w, Fold), w.String())
	}
}

func TestSumDiffersFromFold(t *testing.T) {
	b := []byte{0xff, 0x02}
	assert.Equal(t, uint32(0x02ff), Checksum(b, HalfWord, Sum))
	assert.Equal(t, uint32(0x0101), Checksum(b, HalfWord, Fold))
}

func TestSumWord(t *testing.T) {
	b := []byte{0x01, 0x02, 0x03, 0x04, 0x10, 0x00, 0x00, 0x00}
	assert.Equal(t, uint32(0x04030211), Checksum(b, Word, Sum))
	assert.Equal(t, uint32(0x1a), Checksum(b, Word, Fold))
}

func TestSumWraps(t *testing.T) {
	b := []byte{0xff, 0xff, 0xff, 0xff, 0x02, 0x00, 0x00, 0x00}
	assert.Equal(t, uint32(1), Checksum(b, Word, Sum))
}

func TestEmpty(t *testing.T) {
	for _, w := range Widths {
		for _, m := range []Mode{Fold, Sum} {
			assert.Zero(t, Checksum(nil, w, m))
			assert.Zero(t, Checksum([]byte{}, w, m))
		}
	}
}

func TestPartialUnitIgnored(t *testing.T) {
	b := []byte{0x01, 0x02, 0x03}
	assert.Equal(t, uint32(0x03), Checksum(b, HalfWord, Fold))
	assert.Equal(t, uint32(0x0201), Checksum(b, HalfWord, Sum))
	assert.Zero(t, Checksum(b, Word, Fold))
	assert.Zero(t, Checksum(b, Word, Sum))
}

func TestDigest(t *testing.T) {
	b := randomBytes(t, 2304, 2)
	for _, w := range Widths {
		for _, m := range []Mode{Fold, Sum} {
			want := Checksum(b, w, m)

			h := New(w, m)
			// Odd sized writes leave partial units behind between calls
			for i := 0; i < len(b); i += 7 {
				j := i + 7
				if j > len(b) {
					j = len(b)
				}
				n, err := h.Write(b[i:j])
				require.NoError(t, err)
				assert.Equal(t, j-i, n)
			}

			assert.Equal(t, want, h.Sum32())
			assert.Equal(t, []byte{byte(want >> 24), byte(want >> 16), byte(want >> 8), byte(want)}, h.Sum(nil))
			assert.Equal(t, Size, h.Size())
			assert.Equal(t, w.Bytes(), h.BlockSize())

			h.Reset()
			assert.Zero(t, h.Sum32())
		}
	}
}

func TestDigestDropsTrailingPartialUnit(t *testing.T) {
	h := New(Word, Sum)
	_, _ = h.Write([]byte{0x01, 0x00})
	_, _ = h.Write([]byte{0x00, 0x00, 0x05})
	assert.Equal(t, uint32(1), h.Sum32())
}

func TestParseWidth(t *testing.T) {
	for _, s := range []string{"8", "16", "32"} {
		w, err := ParseWidth(s)
		require.NoError(t, err)
		assert.Equal(t, s, strconv.Itoa(int(w)))
	}
	for _, s := range []string{"", "4", "64", "x"} {
		_, err := ParseWidth(s)
		assert.Error(t, err)
	}
	assert.Panics(t, func() { Width(12).Bytes() })
	assert.Panics(t, func() { New(Width(24), Fold) })
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("fold")
	require.NoError(t, err)
	assert.Equal(t, Fold, m)

	m, err = ParseMode("sum")
	require.NoError(t, err)
	assert.Equal(t, Sum, m)

	_, err = ParseMode("crc")
	assert.Error(t, err)
}
