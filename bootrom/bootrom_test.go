package bootrom

import (
	"bytes"
	"errors"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noReadReader struct {
	t *testing.T
}

func (r noReadReader) Read(p []byte) (int, error) {
	r.t.Fatal("unexpected read")
	return 0, nil
}

func writeFile(t *testing.T, size int) string {
	t.Helper()
	b := make([]byte, size)
	for i := range b {
		b[i] = byte(i)
	}
	file := filepath.Join(t.TempDir(), "boot.bin")
	require.NoError(t, ioutil.WriteFile(file, b, 0644))
	return file
}

func TestOpen(t *testing.T) {
	tables := []struct {
		name  string
		size  int
		sizes []int
		err   error
	}{
		{"dmg", DMGSize, []int{DMGSize}, nil},
		{"cgb", CGBSize, Sizes, nil},
		{"too short", DMGSize - 1, []int{DMGSize}, ErrSizeMismatch},
		{"too long", CGBSize + 1, Sizes, ErrSizeMismatch},
		{"any size", 1000, nil, nil},
		{"empty any size", 0, nil, nil},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			img, err := Open(writeFile(t, table.size), table.sizes...)
			if table.err != nil {
				assert.True(t, errors.Is(err, table.err))
				assert.Nil(t, img)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, table.size, img.Len())
			for i, b := range img.Bytes() {
				if !assert.Equal(t, byte(i), b) {
					break
				}
			}
		})
	}
}

func TestOpenNotFound(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.bin"), DMGSize)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSizeMismatchError(t *testing.T) {
	_, err := Open(writeFile(t, 300), Sizes...)
	require.Error(t, err)

	var serr *SizeMismatchError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, Sizes, serr.Expected)
	assert.Equal(t, int64(300), serr.Actual)
	assert.Equal(t, "bootrom: incorrect size (expected 256 or 2304 but found 300)", err.Error())
}

func TestReadDoesNotReadOnMismatch(t *testing.T) {
	img, err := Read(noReadReader{t}, 100, DMGSize)
	assert.True(t, errors.Is(err, ErrSizeMismatch))
	assert.Nil(t, img)
}

func TestReadShort(t *testing.T) {
	_, err := Read(bytes.NewReader(make([]byte, 10)), DMGSize, DMGSize)
	assert.Error(t, err)
}

func TestNewCopies(t *testing.T) {
	b := []byte{1, 2, 3}
	img := New(b)
	b[0] = 9
	assert.Equal(t, []byte{1, 2, 3}, img.Bytes())
}

func TestModel(t *testing.T) {
	assert.Equal(t, "DMG", Model(DMGSize))
	assert.Equal(t, "CGB", Model(CGBSize))
	assert.Equal(t, "", Model(512))
}
