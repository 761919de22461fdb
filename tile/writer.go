package tile

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/ericpauley/go-quantize/quantize"
)

type encoder struct {
	w io.Writer
}

func (e *encoder) encode(m *image.Paletted) error {
	b := m.Bounds()
	var tmp [tileBytes]byte
	for ty := 0; ty < b.Dy()/tileHeight; ty++ {
		for tx := 0; tx < b.Dx()/tileWidth; tx++ {
			for y := 0; y < tileHeight; y++ {
				var lo, hi byte
				for x := 0; x < tileWidth; x++ {
					// Indices beyond the fourth color wrap around
					c := m.ColorIndexAt(tx*tileWidth+x, ty*tileHeight+y) & (colorsPerTile - 1)
					lo = lo<<1 | c&1
					hi = hi<<1 | c>>1
				}
				tmp[y], tmp[y+planeBytes] = lo, hi
			}
			if _, err := e.w.Write(tmp[:]); err != nil {
				return err
			}
		}
	}
	return nil
}

// Encode writes the Image m to w as raw tile data, tiles ordered left to
// right, top to bottom. Images using more than four colors are quantized.
func Encode(w io.Writer, m image.Image) error {
	b := m.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 || b.Dx()%tileWidth != 0 || b.Dy()%tileHeight != 0 {
		return errors.New("tile: image size is not a multiple of 8")
	}

	pm, _ := m.(*image.Paletted)
	if pm == nil {
		if cp, ok := m.ColorModel().(color.Palette); ok {
			pm = image.NewPaletted(b, cp)
			for y := b.Min.Y; y < b.Max.Y; y++ {
				for x := b.Min.X; x < b.Max.X; x++ {
					pm.Set(x, y, cp.Convert(m.At(x, y)))
				}
			}
		}
	}
	if pm == nil || len(pm.Palette) > colorsPerTile {
		q := quantize.MedianCutQuantizer{}
		pm = image.NewPaletted(b, q.Quantize(make(color.Palette, 0, colorsPerTile), m))
		draw.Draw(pm, b, m, b.Min, draw.Src)
	}

	// Adjust image so that top-left corner is at (0, 0)
	if pm.Rect.Min != (image.Point{}) {
		dup := *pm
		dup.Rect = dup.Rect.Sub(dup.Rect.Min)
		pm = &dup
	}

	e := encoder{w: w}

	return e.encode(pm)
}
