package palette

import (
	"io"
	"io/ioutil"
	"os"
)

// Write encodes colors using scheme s and writes the Size byte record to w.
func Write(w io.Writer, colors [NumColors]Color, s Scheme) error {
	b, err := (&Palette{Colors: colors, Scheme: s}).MarshalBinary()
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// WriteFile writes colors to the named file using scheme s, creating or
// truncating it as necessary.
func WriteFile(file string, colors [NumColors]Color, s Scheme) error {
	if !s.valid() {
		return ErrScheme
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := Write(f, colors, s); err != nil {
		return err
	}

	return f.Close()
}

// Read reads a Size byte record from r and decodes it using scheme s.
func Read(r io.Reader, s Scheme) (*Palette, error) {
	b, err := ioutil.ReadAll(io.LimitReader(r, Size+1))
	if err != nil {
		return nil, err
	}
	p := &Palette{Scheme: s}
	if err := p.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	return p, nil
}

// ReadFile reads the named palette file and decodes it using scheme s.
func ReadFile(file string, s Scheme) (*Palette, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(f, s)
}
