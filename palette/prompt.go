package palette

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
)

var leadingInteger = regexp.MustCompile(`^\s*([+-]?[0-9]+)`)

// ParseChannel parses the leading decimal integer of s. Anything that is not
// a number parses as zero and the result is truncated to 8 bits, so "-1"
// becomes 255 and "256" becomes 0.
func ParseChannel(s string) uint8 {
	m := leadingInteger.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	// Out of range values are clamped by ParseInt
	v, _ := strconv.ParseInt(m[1], 10, 64)
	return uint8(v)
}

// Prompter asks for palette colors interactively, one channel at a time.
type Prompter struct {
	r *bufio.Reader
	w io.Writer
}

// NewPrompter returns a Prompter that writes prompts to w and reads replies
// from r.
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{
		r: bufio.NewReader(r),
		w: w,
	}
}

func (p *Prompter) channel(name string) (uint8, error) {
	if _, err := fmt.Fprintf(p.w, "%-5s (0-255): ", name); err != nil {
		return 0, err
	}
	line, err := p.r.ReadString('\n')
	if err != nil {
		if err != io.EOF || line == "" {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return 0, err
		}
	}
	return ParseChannel(line), nil
}

// Color prompts for the red, green and blue channels of a single color.
func (p *Prompter) Color() (Color, error) {
	var c Color
	var err error
	if c.R, err = p.channel("Red"); err != nil {
		return c, err
	}
	if c.G, err = p.channel("Green"); err != nil {
		return c, err
	}
	if c.B, err = p.channel("Blue"); err != nil {
		return c, err
	}
	return c, nil
}

// Colors prompts for every color of a palette, lightest first.
func (p *Prompter) Colors() ([NumColors]Color, error) {
	var colors [NumColors]Color
	for i := range colors {
		if _, err := fmt.Fprintf(p.w, "Color %d:\n", i+1); err != nil {
			return colors, err
		}
		c, err := p.Color()
		if err != nil {
			return colors, err
		}
		colors[i] = c
	}
	return colors, nil
}
