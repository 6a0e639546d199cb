package palette

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
)

// MarshalText implements the encoding.TextMarshaler interface, the color is
// written as #RRGGBB.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface. It accepts
// the same #RRGGBB form as MarshalText with the leading # being optional.
func (c *Color) UnmarshalText(text []byte) error {
	s := strings.TrimPrefix(string(text), "#")
	if len(s) != 6 {
		return fmt.Errorf("palette: invalid color %q", text)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("palette: invalid color %q", text)
	}
	c.R, c.G, c.B = b[0], b[1], b[2]
	return nil
}

// Preset is a named palette read from a presets file.
type Preset struct {
	Name   string  `toml:"name"`
	Colors []Color `toml:"colors"`
}

// Palette returns the colors of the preset as a fixed size array.
func (p Preset) Palette() [NumColors]Color {
	var colors [NumColors]Color
	copy(colors[:], p.Colors)
	return colors
}

var errNoName = errors.New("palette: preset with no name")

type presetFile struct {
	Palettes []Preset `toml:"palette"`
}

func (f *presetFile) validate() error {
	seen := make(map[string]struct{})
	for _, p := range f.Palettes {
		if p.Name == "" {
			return errNoName
		}
		if _, ok := seen[p.Name]; ok {
			return fmt.Errorf("palette: duplicate preset %q", p.Name)
		}
		seen[p.Name] = struct{}{}
		if len(p.Colors) != NumColors {
			return fmt.Errorf("palette: preset %q has %d colors, expected %d", p.Name, len(p.Colors), NumColors)
		}
	}
	return nil
}

// ReadPresets decodes a TOML presets file from r. Each palette is given as a
// [[palette]] table:
//
//	[[palette]]
//	name = "grey"
//	colors = ["#FFFFFF", "#AAAAAA", "#555555", "#000000"]
func ReadPresets(r io.Reader) ([]Preset, error) {
	var f presetFile
	if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
		return nil, err
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return f.Palettes, nil
}

// ReadPresetsFile decodes the named TOML presets file.
func ReadPresetsFile(file string) ([]Preset, error) {
	var f presetFile
	if _, err := toml.DecodeFile(file, &f); err != nil {
		return nil, err
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return f.Palettes, nil
}
