package palette

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	assert.Len(t, Default, NumColors)
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, Default[0x20])
	assert.Equal(t, color.RGBA{0x00, 0x00, 0x00, 0xff}, Default[0x0f])
}

func testPalette(sets int) []byte {
	b := make([]byte, 0, paletteBytes*sets)
	for s := 0; s < sets; s++ {
		for i := 0; i < NumColors; i++ {
			b = append(b, byte(i), byte(i*2), byte(255-i-s))
		}
	}
	return b
}

func TestDecode(t *testing.T) {
	for _, sets := range []int{1, emphasisSets} {
		p, err := Decode(bytes.NewReader(testPalette(sets)))
		require.NoError(t, err)
		require.Len(t, p, NumColors)
		assert.Equal(t, color.RGBA{0, 0, 255, 0xff}, p[0])
		assert.Equal(t, color.RGBA{63, 126, 192, 0xff}, p[63])
	}

	for _, n := range []int{0, 191, 193, paletteBytes * 2} {
		_, err := Decode(bytes.NewReader(make([]byte, n)))
		assert.Equal(t, errBadSize, err)
	}
}

func TestSubset(t *testing.T) {
	p, err := Subset(Default, 0x0f, 0x16, 0x27, 0x30)
	require.NoError(t, err)
	assert.Equal(t, color.Palette{Default[0x0f], Default[0x16], Default[0x27], Default[0x30]}, p)

	_, err = Subset(Default, 0x0f, 0x16, 0x27)
	assert.Error(t, err)

	_, err = Subset(Default, 0x0f, 0x16, 0x27, 0x40)
	assert.Equal(t, errBadIndex, err)

	_, err = Subset(Greyscale, 0, 1, 2, 4)
	assert.Equal(t, errBadIndex, err)
}
