/*
Package palette provides the master palette of 64 colors the console can
display and a decoder for the .pal files used to replace it.

A .pal file is a sequence of 64 packed RGB triplets, 192 bytes. Some files
carry eight such sets, one for each combination of color emphasis bits; only
the first set is used.
*/
package palette

import (
	"errors"
	"image/color"
)

const (
	// NumColors is the number of colors in the master palette
	NumColors     = 64
	colorBytes    = 3
	paletteBytes  = NumColors * colorBytes
	emphasisSets  = 8
	colorsPerTile = 4
)

var errBadIndex = errors.New("palette: color index out of range")

// Default is the master palette, borrowed from "RGB".
var Default = color.Palette{
	color.RGBA{0x6d, 0x6d, 0x6d, 0xff}, color.RGBA{0x00, 0x24, 0x92, 0xff}, color.RGBA{0x00, 0x00, 0xdb, 0xff}, color.RGBA{0x6d, 0x49, 0xdb, 0xff},
	color.RGBA{0x92, 0x00, 0x6d, 0xff}, color.RGBA{0xb6, 0x00, 0x6d, 0xff}, color.RGBA{0xb6, 0x24, 0x00, 0xff}, color.RGBA{0x92, 0x49, 0x00, 0xff},
	color.RGBA{0x6d, 0x49, 0x00, 0xff}, color.RGBA{0x24, 0x49, 0x00, 0xff}, color.RGBA{0x00, 0x6d, 0x24, 0xff}, color.RGBA{0x00, 0x92, 0x00, 0xff},
	color.RGBA{0x00, 0x49, 0x49, 0xff}, color.RGBA{0x00, 0x00, 0x00, 0xff}, color.RGBA{0x00, 0x00, 0x00, 0xff}, color.RGBA{0x00, 0x00, 0x00, 0xff},
	color.RGBA{0xb6, 0xb6, 0xb6, 0xff}, color.RGBA{0x00, 0x6d, 0xdb, 0xff}, color.RGBA{0x00, 0x49, 0xff, 0xff}, color.RGBA{0x92, 0x00, 0xff, 0xff},
	color.RGBA{0xb6, 0x00, 0xff, 0xff}, color.RGBA{0xff, 0x00, 0x92, 0xff}, color.RGBA{0xff, 0x00, 0x00, 0xff}, color.RGBA{0xdb, 0x6d, 0x00, 0xff},
	color.RGBA{0x92, 0x6d, 0x00, 0xff}, color.RGBA{0x24, 0x92, 0x00, 0xff}, color.RGBA{0x00, 0x92, 0x00, 0xff}, color.RGBA{0x00, 0xb6, 0x6d, 0xff},
	color.RGBA{0x00, 0x92, 0x92, 0xff}, color.RGBA{0x24, 0x24, 0x24, 0xff}, color.RGBA{0x00, 0x00, 0x00, 0xff}, color.RGBA{0x00, 0x00, 0x00, 0xff},
	color.RGBA{0xff, 0xff, 0xff, 0xff}, color.RGBA{0x6d, 0xb6, 0xff, 0xff}, color.RGBA{0x92, 0x92, 0xff, 0xff}, color.RGBA{0xdb, 0x6d, 0xff, 0xff},
	color.RGBA{0xff, 0x00, 0xff, 0xff}, color.RGBA{0xff, 0x6d, 0xff, 0xff}, color.RGBA{0xff, 0x92, 0x00, 0xff}, color.RGBA{0xff, 0xb6, 0x00, 0xff},
	color.RGBA{0xdb, 0xdb, 0x00, 0xff}, color.RGBA{0x6d, 0xdb, 0x00, 0xff}, color.RGBA{0x00, 0xff, 0x00, 0xff}, color.RGBA{0x49, 0xff, 0xdb, 0xff},
	color.RGBA{0x00, 0xff, 0xff, 0xff}, color.RGBA{0x49, 0x49, 0x49, 0xff}, color.RGBA{0x00, 0x00, 0x00, 0xff}, color.RGBA{0x00, 0x00, 0x00, 0xff},
	color.RGBA{0xff, 0xff, 0xff, 0xff}, color.RGBA{0xb6, 0xdb, 0xff, 0xff}, color.RGBA{0xdb, 0xb6, 0xff, 0xff}, color.RGBA{0xff, 0xb6, 0xff, 0xff},
	color.RGBA{0xff, 0x92, 0xff, 0xff}, color.RGBA{0xff, 0xb6, 0xb6, 0xff}, color.RGBA{0xff, 0xdb, 0x92, 0xff}, color.RGBA{0xff, 0xff, 0x49, 0xff},
	color.RGBA{0xff, 0xff, 0x6d, 0xff}, color.RGBA{0xb6, 0xff, 0x49, 0xff}, color.RGBA{0x92, 0xff, 0x6d, 0xff}, color.RGBA{0x49, 0xff, 0xdb, 0xff},
	color.RGBA{0x92, 0xdb, 0xff, 0xff}, color.RGBA{0x92, 0x92, 0x92, 0xff}, color.RGBA{0x00, 0x00, 0x00, 0xff}, color.RGBA{0x00, 0x00, 0x00, 0xff},
}

// Greyscale is a four shade palette for viewing tiles without any palette
// information.
var Greyscale = color.Palette{
	color.Gray{0x00},
	color.Gray{0x55},
	color.Gray{0xaa},
	color.Gray{0xff},
}

// Subset picks the four colors at the given indices from p, as the PPU
// does with a palette RAM entry.
func Subset(p color.Palette, idx ...uint8) (color.Palette, error) {
	if len(idx) != colorsPerTile {
		return nil, errors.New("palette: need exactly four indices")
	}
	s := make(color.Palette, 0, colorsPerTile)
	for _, i := range idx {
		if int(i) >= len(p) {
			return nil, errBadIndex
		}
		s = append(s, p[i])
	}
	return s, nil
}
