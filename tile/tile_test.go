package tile

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var grey = color.Palette{
	color.Gray{0x00},
	color.Gray{0x55},
	color.Gray{0xaa},
	color.Gray{0xff},
}

// The "½" example tile from the nesdev wiki, it uses all four colors
var half = []byte{
	0x41, 0xc2, 0x44, 0x48, 0x10, 0x20, 0x40, 0x80,
	0x01, 0x02, 0x04, 0x08, 0x16, 0x21, 0x42, 0x87,
}

func TestPixel(t *testing.T) {
	tests := []struct {
		x, y  int
		index uint8
	}{
		{0, 0, 0},
		{1, 0, 1},
		{7, 0, 3},
		{0, 1, 1},
		{6, 1, 3},
		{3, 4, 3},
		{2, 5, 3},
		{7, 5, 2},
		{0, 7, 3},
		{5, 7, 2},
		{7, 7, 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.index, Pixel(half, tt.x, tt.y), "pixel %d,%d", tt.x, tt.y)
	}
}

func TestSheet(t *testing.T) {
	tiles := make([][]byte, 20)
	for i := range tiles {
		tiles[i] = half
	}

	m, err := Sheet(tiles, grey, 0)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16*8, 2*8), m.Bounds())
	assert.Equal(t, uint8(3), m.ColorIndexAt(7, 0))
	assert.Equal(t, uint8(3), m.ColorIndexAt(3*8+7, 8))

	m, err = Sheet(tiles[:3], grey, 16)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3*8, 8), m.Bounds())

	_, err = Sheet(nil, grey, 16)
	assert.Equal(t, errNoTiles, err)

	_, err = Sheet(tiles, grey[:2], 16)
	assert.Equal(t, errBadPalette, err)

	_, err = Sheet([][]byte{half[:8]}, grey, 16)
	assert.Equal(t, errNotEnough, err)
}

func TestDecode(t *testing.T) {
	m, err := Decode(bytes.NewReader(append(half, half...)), grey, 1)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 16), m.Bounds())

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			assert.Equal(t, Pixel(half, x, y), m.ColorIndexAt(x, y))
			assert.Equal(t, Pixel(half, x, y), m.ColorIndexAt(x, y+8))
		}
	}

	_, err = Decode(bytes.NewReader(half[:15]), grey, 1)
	assert.Equal(t, errNotEnough, err)

	_, err = Decode(bytes.NewReader(nil), grey, 1)
	assert.Equal(t, errNoTiles, err)
}

func TestEncode(t *testing.T) {
	m := image.NewPaletted(image.Rect(0, 0, 16, 8), grey)
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			m.SetColorIndex(x, y, uint8(x+y)%4)
		}
	}

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, m))
	assert.Equal(t, 2*Size, b.Len())

	d, err := Decode(bytes.NewReader(b.Bytes()), grey, 2)
	require.NoError(t, err)
	assert.Equal(t, m.Pix, d.Pix)
}

func TestEncodeRoundTrip(t *testing.T) {
	m, err := Decode(bytes.NewReader(half), grey, 1)
	require.NoError(t, err)

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, m))
	assert.Equal(t, half, b.Bytes())
}

func TestEncodeOffset(t *testing.T) {
	m := image.NewPaletted(image.Rect(8, 8, 16, 16), grey)
	m.SetColorIndex(8, 8, 3)

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, m))
	require.Equal(t, Size, b.Len())
	assert.Equal(t, byte(0x80), b.Bytes()[0])
	assert.Equal(t, byte(0x80), b.Bytes()[8])
}

func TestEncodeQuantize(t *testing.T) {
	m := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			m.Set(x, y, color.RGBA{uint8(x * 32), uint8(y * 32), 0x80, 0xff})
		}
	}

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, m))
	assert.Equal(t, Size, b.Len())
}

func TestEncodeBadSize(t *testing.T) {
	for _, r := range []image.Rectangle{
		image.Rect(0, 0, 0, 0),
		image.Rect(0, 0, 7, 8),
		image.Rect(0, 0, 8, 12),
	} {
		assert.Error(t, Encode(new(bytes.Buffer), image.NewPaletted(r, grey)))
	}
}
