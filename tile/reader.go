package tile

import (
	"errors"
	"image"
	"image/color"
	"io"
	"io/ioutil"
)

var (
	errNotEnough  = errors.New("tile: not enough tile data")
	errNoTiles    = errors.New("tile: no tiles")
	errBadPalette = errors.New("tile: palette needs four colors")
)

// Sheet lays out tiles left to right, top to bottom, columns tiles wide and
// returns the resulting image. If columns is less than one, 16 is used.
func Sheet(tiles [][]byte, p color.Palette, columns int) (*image.Paletted, error) {
	if len(p) < colorsPerTile {
		return nil, errBadPalette
	}
	if len(tiles) == 0 {
		return nil, errNoTiles
	}
	if columns < 1 {
		columns = defaultColumns
	}
	if len(tiles) < columns {
		columns = len(tiles)
	}
	rows := (len(tiles) + columns - 1) / columns

	m := image.NewPaletted(image.Rect(0, 0, columns*tileWidth, rows*tileHeight), p[:colorsPerTile])

	for i, t := range tiles {
		if len(t) < tileBytes {
			return nil, errNotEnough
		}
		tx, ty := i%columns, i/columns
		for y := 0; y < tileHeight; y++ {
			for x := 0; x < tileWidth; x++ {
				m.SetColorIndex(tx*tileWidth+x, ty*tileHeight+y, Pixel(t, x, y))
			}
		}
	}

	return m, nil
}

// Decode reads raw tile data from r until EOF and returns it as a sheet of
// tiles using the given palette.
func Decode(r io.Reader, p color.Palette, columns int) (*image.Paletted, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(b)%tileBytes != 0 {
		return nil, errNotEnough
	}

	tiles := make([][]byte, 0, len(b)/tileBytes)
	for i := 0; i < len(b); i += tileBytes {
		tiles = append(tiles, b[i:i+tileBytes])
	}

	return Sheet(tiles, p, columns)
}
