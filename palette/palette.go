/*
Package palette implements the Game Boy palette file encoder and decoder.

A palette file is exactly 16 bytes and holds four colors, ordered from the
lightest to the darkest. There is no header so the scheme used to lay the
colors out has to be known in advance.

The current scheme stores each color as three bytes, red, green and blue, for
a total of 12 bytes followed by 4 reserved bytes.

The legacy scheme reduces each channel to 6 bits and packs each color into an
18 bit group, RRRRRRGGGGGGBBBBBB, giving 72 bits or 9 bytes in total. The
record is treated as a single 128 bit big-endian integer with the first color
occupying bits 127 to 110, the second bits 109 to 92, the third bits 91 to 74
and the fourth bits 73 to 56. The remaining 7 bytes are reserved.

Reserved bytes are always zero.
*/
package palette

import (
	"errors"
	"fmt"

	"github.com/bodgit/gbtool/bitfield"
)

const (
	// Size is the size in bytes of a palette file.
	Size = 16

	// NumColors is the number of colors in a palette.
	NumColors = 4

	channelBits = 6
	groupBits   = channelBits * 3
	groupTop    = Size<<3 - 1
)

var (
	// ErrSize is returned when a palette file is not exactly Size bytes.
	ErrSize = errors.New("palette: incorrect length")
	// ErrReserved is returned when a reserved byte is not zero.
	ErrReserved = errors.New("palette: reserved bytes not zero")
	// ErrScheme is returned when a scheme is neither AlignedEightBit nor
	// PackedSixBit.
	ErrScheme = errors.New("palette: unknown scheme")
)

// Scheme selects the layout of a palette record.
type Scheme int

const (
	// AlignedEightBit stores each channel as a full byte.
	AlignedEightBit Scheme = iota
	// PackedSixBit stores each channel as 6 bits in a packed bitfield.
	PackedSixBit
)

// ParseScheme parses the name of a scheme, either "aligned" or "packed".
func ParseScheme(s string) (Scheme, error) {
	switch s {
	case "aligned":
		return AlignedEightBit, nil
	case "packed":
		return PackedSixBit, nil
	}
	return 0, fmt.Errorf("palette: unknown scheme %q", s)
}

func (s Scheme) String() string {
	switch s {
	case AlignedEightBit:
		return "aligned"
	case PackedSixBit:
		return "packed"
	}
	return fmt.Sprintf("Scheme(%d)", int(s))
}

func (s Scheme) valid() bool {
	return s == AlignedEightBit || s == PackedSixBit
}

// significant returns the number of bytes holding color data.
func (s Scheme) significant() int {
	if s == PackedSixBit {
		return (groupBits*NumColors + 7) >> 3
	}
	return 3 * NumColors
}

// Record is a serialized palette.
type Record [Size]byte

// offset returns the most significant bit of the group for color i.
func offset(i int) uint {
	return groupTop - uint(i)*groupBits
}

// Encode lays out colors in a Record using scheme s. Encode panics if s is
// not a known scheme.
func Encode(colors [NumColors]Color, s Scheme) Record {
	if !s.valid() {
		panic(ErrScheme)
	}
	var r Record
	for i, c := range colors {
		switch s {
		case PackedSixBit:
			bitfield.Copy(r[:], offset(i), c.pack(), groupBits-1, groupBits)
		case AlignedEightBit:
			r[i*3+0] = c.R
			r[i*3+1] = c.G
			r[i*3+2] = c.B
		}
	}
	return r
}

// Decode is the inverse of Encode. Channels read from a PackedSixBit record
// only have 6 bits of precision so the lowest 2 bits are always zero.
func Decode(r Record, s Scheme) ([NumColors]Color, error) {
	var colors [NumColors]Color
	if !s.valid() {
		return colors, ErrScheme
	}
	for _, b := range r[s.significant():] {
		if b != 0 {
			return colors, ErrReserved
		}
	}
	for i := range colors {
		switch s {
		case PackedSixBit:
			colors[i] = unpack(bitfield.Get(r[:], offset(i), groupBits))
		case AlignedEightBit:
			colors[i] = Color{r[i*3+0], r[i*3+1], r[i*3+2]}
		}
	}
	return colors, nil
}

// Palette is a set of colors along with the scheme used to serialize them.
// It implements the encoding.BinaryMarshaler and encoding.BinaryUnmarshaler
// interfaces.
type Palette struct {
	Colors [NumColors]Color
	Scheme Scheme
}

// MarshalBinary encodes the palette into binary form and returns the result.
func (p *Palette) MarshalBinary() ([]byte, error) {
	if !p.Scheme.valid() {
		return nil, ErrScheme
	}
	r := Encode(p.Colors, p.Scheme)
	return r[:], nil
}

// UnmarshalBinary decodes the palette from binary form using the scheme
// already set on p.
func (p *Palette) UnmarshalBinary(b []byte) error {
	if len(b) != Size {
		return ErrSize
	}
	var r Record
	copy(r[:], b)
	colors, err := Decode(r, p.Scheme)
	if err != nil {
		return err
	}
	p.Colors = colors
	return nil
}
