package palette

import (
	"errors"
	"image"
	"image/color"
	"io"
	"sort"

	"github.com/ericpauley/go-quantize/quantize"
)

var errNoColors = errors.New("palette: image has no colors")

// FromImage picks the NumColors colors that best represent m, ordered from
// the lightest to the darkest. If m has fewer colors then the palette is
// padded with black.
func FromImage(m image.Image) ([NumColors]Color, error) {
	var colors [NumColors]Color

	if m.Bounds().Empty() {
		return colors, errNoColors
	}

	q := quantize.MedianCutQuantizer{}
	p := q.Quantize(make(color.Palette, 0, NumColors), m)
	if len(p) == 0 {
		return colors, errNoColors
	}

	for i := 0; i < len(p) && i < NumColors; i++ {
		colors[i] = Model.Convert(p[i]).(Color)
	}

	sort.SliceStable(colors[:], func(i, j int) bool {
		return colors[i].luma() > colors[j].luma()
	})

	return colors, nil
}

// DecodeImage decodes an image from r in any registered format and returns
// the result of FromImage.
func DecodeImage(r io.Reader) ([NumColors]Color, error) {
	m, _, err := image.Decode(r)
	if err != nil {
		return [NumColors]Color{}, err
	}
	return FromImage(m)
}
