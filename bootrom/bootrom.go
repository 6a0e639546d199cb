/*
Package bootrom loads Game Boy boot ROM dumps.

A boot ROM dump is a raw binary with no header or magic number; its length is
the only thing that identifies it. The original Game Boy uses a 256 byte boot
ROM and the Game Boy Color uses 2304 bytes, a 256 byte block followed by a
further 2048 bytes mapped above the cartridge header.
*/
package bootrom

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Supported boot ROM sizes in bytes.
const (
	DMGSize = 256
	CGBSize = 2304
)

// Sizes lists every supported boot ROM size.
var Sizes = []int{DMGSize, CGBSize}

var (
	// ErrNotFound is returned when a boot ROM cannot be opened for reading.
	ErrNotFound = errors.New("bootrom: cannot open file")
	// ErrSizeMismatch is matched by every *SizeMismatchError.
	ErrSizeMismatch = errors.New("bootrom: incorrect size")
)

// SizeMismatchError records a boot ROM whose length is not one of the
// expected sizes.
type SizeMismatchError struct {
	Expected []int
	Actual   int64
}

func (e *SizeMismatchError) Error() string {
	s := make([]string, len(e.Expected))
	for i, n := range e.Expected {
		s[i] = strconv.Itoa(n)
	}
	return fmt.Sprintf("%s (expected %s but found %d)", ErrSizeMismatch, strings.Join(s, " or "), e.Actual)
}

// Is allows errors.Is to match against ErrSizeMismatch.
func (e *SizeMismatchError) Is(target error) bool {
	return target == ErrSizeMismatch
}

// Model returns the name of the hardware that uses a boot ROM of the given
// size, or an empty string if the size is unknown.
func Model(size int) string {
	switch size {
	case DMGSize:
		return "DMG"
	case CGBSize:
		return "CGB"
	}
	return ""
}

// Image is an immutable boot ROM dump held in memory.
type Image struct {
	b []byte
}

// New returns an Image holding a copy of b.
func New(b []byte) *Image {
	return &Image{b: append([]byte(nil), b...)}
}

// Bytes returns the contents of the image. The returned slice must not be
// modified.
func (i *Image) Bytes() []byte {
	return i.b
}

// Len returns the length of the image in bytes.
func (i *Image) Len() int {
	return len(i.b)
}

func validate(size int64, sizes []int) error {
	if len(sizes) == 0 {
		return nil
	}
	for _, n := range sizes {
		if int64(n) == size {
			return nil
		}
	}
	return &SizeMismatchError{
		Expected: append([]int(nil), sizes...),
		Actual:   size,
	}
}

// Read reads a boot ROM of the given size from r. If any sizes are passed
// then size must match one of them, otherwise size is trusted as is. The
// size is checked before anything is read from r.
func Read(r io.Reader, size int64, sizes ...int) (*Image, error) {
	if err := validate(size, sizes); err != nil {
		return nil, err
	}

	b := make([]byte, size)
	if _, err := io.ReadFull(r, b); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}

	return &Image{b: b}, nil
}

// Open reads the boot ROM at path. If any sizes are passed then the file
// must be exactly one of those sizes, otherwise the size of the file on disk
// is used.
func Open(path string, sizes ...int) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	return Read(f, info.Size(), sizes...)
}
