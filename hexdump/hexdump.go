/*
Package hexdump renders binary data as rows of upper case hexadecimal bytes
for inspection.

Each row covers 16 bytes and is labelled with the offset of its first byte:

	0x000 | 31 FE FF AF 21 FF 9F 32 CB 7C 20 FB 21 26 FF  E 11
*/
package hexdump

import (
	"fmt"
	"io"
	"strings"
)

// BytesPerRow is the number of bytes rendered on each row.
const BytesPerRow = 16

// Heading is written by Write before the first row.
const Heading = "Binary file contents:"

// Scanner produces the rows of a dump one at a time. The underlying data is
// never modified.
type Scanner struct {
	b      []byte
	offset int
	row    string
}

// NewScanner returns a Scanner that dumps b.
func NewScanner(b []byte) *Scanner {
	return &Scanner{b: b}
}

// Scan advances to the next row, which is then available through the Text
// method. It returns false once every row has been produced.
func (s *Scanner) Scan() bool {
	if s.offset >= len(s.b) {
		s.row = ""
		return false
	}

	end := s.offset + BytesPerRow
	if end > len(s.b) {
		end = len(s.b)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "0x%03X |", s.offset)
	for _, b := range s.b[s.offset:end] {
		fmt.Fprintf(&sb, "%3X ", b)
	}

	s.row = sb.String()
	s.offset = end

	return true
}

// Text returns the row produced by the most recent call to Scan.
func (s *Scanner) Text() string {
	return s.row
}

// Write writes the heading followed by every row of b to w.
func Write(w io.Writer, b []byte) error {
	if _, err := io.WriteString(w, Heading); err != nil {
		return err
	}
	s := NewScanner(b)
	for s.Scan() {
		if _, err := fmt.Fprintf(w, "\n%s", s.Text()); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}
