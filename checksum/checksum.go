/*
Package checksum implements the additive checksums used to verify Game Boy
boot ROM dumps.

The input is read as a run of little-endian unsigned integers of a given unit
width. Two modes exist because historical tools disagree on how a unit is
accumulated: Fold adds each constituent byte of a unit on its own, so the
result is the same whatever the unit width, while Sum adds the whole unit
value. The accumulator is 32 bits wide and wraps on overflow.

Only complete units are processed; a trailing partial unit is ignored in the
same way that dividing the length by the unit size discards the remainder.
*/
package checksum

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash"
	"strconv"
)

// Size of a checksum in bytes.
const Size = 4

// Width is the number of bits in each unit read from the input.
type Width int

// Supported unit widths.
const (
	Byte     Width = 8
	HalfWord Width = 16
	Word     Width = 32
)

// Widths lists every supported unit width, narrowest first.
var Widths = []Width{Byte, HalfWord, Word}

var errBadWidth = errors.New("checksum: unit width must be 8, 16 or 32")

// ParseWidth parses a unit width given in bits.
func ParseWidth(s string) (Width, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errBadWidth
	}
	switch w := Width(n); w {
	case Byte, HalfWord, Word:
		return w, nil
	}
	return 0, errBadWidth
}

// Bytes returns the size of a unit in bytes.
func (w Width) Bytes() int {
	switch w {
	case Byte, HalfWord, Word:
		return int(w) >> 3
	}
	panic(errBadWidth)
}

func (w Width) String() string {
	switch w {
	case Byte:
		return "bytes"
	case HalfWord:
		return "half-words"
	case Word:
		return "words"
	}
	return fmt.Sprintf("Width(%d)", int(w))
}

// Mode selects how each unit is added to the accumulator.
type Mode int

const (
	// Fold adds every byte of a unit independently.
	Fold Mode = iota
	// Sum adds the little-endian value of the unit.
	Sum
)

// ParseMode parses the name of a mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "fold":
		return Fold, nil
	case "sum":
		return Sum, nil
	}
	return 0, fmt.Errorf("checksum: unknown mode %q", s)
}

func (m Mode) String() string {
	switch m {
	case Fold:
		return "fold"
	case Sum:
		return "sum"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

func unit(p []byte, w Width) uint32 {
	switch w {
	case HalfWord:
		return uint32(binary.LittleEndian.Uint16(p))
	case Word:
		return binary.LittleEndian.Uint32(p)
	}
	return uint32(p[0])
}

// update adds every complete unit in p to sum and returns the new sum along
// with the number of bytes consumed.
func update(sum uint32, w Width, m Mode, p []byte) (uint32, int) {
	size := w.Bytes()
	n := len(p) / size * size
	if m == Fold {
		for _, b := range p[:n] {
			sum += uint32(b)
		}
		return sum, n
	}
	for i := 0; i < n; i += size {
		sum += unit(p[i:], w)
	}
	return sum, n
}

// Checksum returns the checksum of b read as units of width w and
// accumulated according to m.
func Checksum(b []byte, w Width, m Mode) uint32 {
	sum, _ := update(0, w, m, b)
	return sum
}

type digest struct {
	sum   uint32
	width Width
	mode  Mode
	buf   [Size]byte
	n     int
}

// New creates a new hash.Hash32 computing the checksum for the given unit
// width and mode. Bytes that do not yet make up a complete unit are held back
// until the next Write and are never counted if the unit is not completed.
// Its Sum method will lay the value out in big-endian byte order.
func New(w Width, m Mode) hash.Hash32 {
	_ = w.Bytes() // panics on an unsupported width
	return &digest{width: w, mode: m}
}

func (d *digest) Size() int { return Size }

func (d *digest) BlockSize() int { return d.width.Bytes() }

func (d *digest) Reset() {
	d.sum = 0
	d.n = 0
}

func (d *digest) Write(p []byte) (int, error) {
	length := len(p)
	size := d.width.Bytes()

	if d.n > 0 {
		c := copy(d.buf[d.n:size], p)
		d.n += c
		p = p[c:]
		if d.n < size {
			return length, nil
		}
		d.sum, _ = update(d.sum, d.width, d.mode, d.buf[:size])
		d.n = 0
	}

	var n int
	d.sum, n = update(d.sum, d.width, d.mode, p)
	d.n = copy(d.buf[:], p[n:])

	return length, nil
}

func (d *digest) Sum32() uint32 { return d.sum }

func (d *digest) Sum(in []byte) []byte {
	s := d.Sum32()
	return append(in, byte(s>>24), byte(s>>16), byte(s>>8), byte(s))
}
