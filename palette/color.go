package palette

import (
	"fmt"
	"image/color"
)

// Color is a 24-bit RGB color as entered by the user, even when the scheme
// it is saved with has less precision.
type Color struct {
	R, G, B uint8
}

// RGBA implements the color.Color interface.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA{c.R, c.G, c.B, 0xff}.RGBA()
}

func (c Color) String() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// luma returns the relative brightness of c, scaled by 1000.
func (c Color) luma() int {
	return 299*int(c.R) + 587*int(c.G) + 114*int(c.B)
}

// pack returns the 18 bit group for c with each channel reduced to 6 bits.
func (c Color) pack() uint32 {
	return uint32(c.R>>2)<<(channelBits*2) | uint32(c.G>>2)<<channelBits | uint32(c.B>>2)
}

func unpack(v uint32) Color {
	const mask = 1<<channelBits - 1
	return Color{
		uint8(v>>(channelBits*2)&mask) << 2,
		uint8(v>>channelBits&mask) << 2,
		uint8(v&mask) << 2,
	}
}

func toColor(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	return Color{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
}

// Model converts any color to a Color.
var Model = color.ModelFunc(func(c color.Color) color.Color {
	if c, ok := c.(Color); ok {
		return c
	}
	return toColor(c)
})
