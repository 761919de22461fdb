/*
Package tile implements a decoder and encoder for the 2 bits per pixel tile
records stored in the graphics banks of a cartridge image.

Each tile is 8 by 8 pixels and takes 16 bytes; the first 8 bytes hold the low
bit of each pixel and the next 8 bytes the high bit, one byte per row with the
leftmost pixel in the most significant bit. A tile can therefore only use four
colors.
*/
package tile

const (
	tileWidth      = 8
	tileHeight     = tileWidth
	tileBytes      = 16
	planeBytes     = tileBytes >> 1
	colorsPerTile  = 4
	defaultColumns = 16
)

// Size is the number of bytes used by a single tile
const Size = tileBytes

// Pixel returns the color index, 0 to 3, of the pixel at x, y in tile t.
func Pixel(t []byte, x, y int) uint8 {
	shift := uint(tileWidth - 1 - x)
	lo := t[y] >> shift & 1
	hi := t[y+planeBytes] >> shift & 1
	return hi<<1 | lo
}
