/*
Package bitfield implements bit copying into fixed-width integers that are
stored as big-endian byte slices.

A slice of n bytes is treated as a single n*8 bit unsigned integer where the
first byte holds the most significant bits. Bit 0 is therefore the least
significant bit of the last byte and bit n*8-1 is the most significant bit of
the first byte. All copies run from a starting bit index downwards.
*/
package bitfield

func position(b []byte, bit uint) (int, byte) {
	return len(b) - 1 - int(bit>>3), 1 << (bit & 7)
}

// IsSet reports whether the given bit of b is set.
func IsSet(b []byte, bit uint) bool {
	i, mask := position(b, bit)
	return b[i]&mask != 0
}

func setBit(b []byte, bit uint, set bool) {
	i, mask := position(b, bit)
	if set {
		b[i] |= mask
	} else {
		b[i] &^= mask
	}
}

// Copy copies n bits from src into dst. Bits are taken from src starting at
// bit srcFrom and counting down and are stored in dst starting at bit dstFrom
// and counting down. Copy panics if either range falls outside of its
// integer.
func Copy(dst []byte, dstFrom uint, src uint32, srcFrom, n uint) {
	if n == 0 {
		return
	}
	if srcFrom >= 32 || n > srcFrom+1 {
		panic("bitfield: source range out of bounds")
	}
	if int(dstFrom>>3) >= len(dst) || n > dstFrom+1 {
		panic("bitfield: destination range out of bounds")
	}
	for x := uint(0); x < n; x++ {
		setBit(dst, dstFrom-x, src&(1<<(srcFrom-x)) != 0)
	}
}

// Set stores the low width bits of v in dst, most significant bit first,
// starting at bit from and counting down.
func Set(dst []byte, from uint, v uint32, width uint) {
	if width == 0 {
		return
	}
	Copy(dst, from, v, width-1, width)
}

// Get is the inverse of Set, it returns width bits of b starting at bit from
// and counting down.
func Get(b []byte, from, width uint) uint32 {
	if width > 32 || width > from+1 || int(from>>3) >= len(b) {
		panic("bitfield: range out of bounds")
	}
	var v uint32
	for x := uint(0); x < width; x++ {
		v <<= 1
		if IsSet(b, from-x) {
			v |= 1
		}
	}
	return v
}
