package palette

import (
	"errors"
	"image/color"
	"io"
	"io/ioutil"
)

var errBadSize = errors.New("palette: invalid palette file size")

func Decode(r io.Reader) (color.Palette, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}

	if len(b) != paletteBytes && len(b) != paletteBytes*emphasisSets {
		return nil, errBadSize
	}

	p := make(color.Palette, NumColors)
	for i := range p {
		p[i] = color.RGBA{b[i*colorBytes], b[i*colorBytes+1], b[i*colorBytes+2], 0xff}
	}
	return p, nil
}
