package nesrom

import (
	"fmt"
	"hash/crc32"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCRC(t *testing.T) {
	b := buildImage(2, 1, 0, 0, 0, []byte("TITLE"))
	img, err := Decode(b)
	require.NoError(t, err)

	crc, err := CRC(img)
	require.NoError(t, err)

	expected := fmt.Sprintf("%08X", crc32.ChecksumIEEE(b[HeaderSize:img.TitleOffset()]))
	assert.Equal(t, expected, crc)

	// Neither the header nor the trainer contribute
	img, err = Decode(buildImage(2, 1, flagTrainer|flagBattery, 0x10, 0, nil))
	require.NoError(t, err)

	crc2, err := CRC(img)
	require.NoError(t, err)
	assert.Equal(t, crc, crc2)
}

func TestCRCTruncated(t *testing.T) {
	b := buildImage(1, 1, 0, 0, 0, nil)
	img, err := Decode(b[:len(b)-1])
	require.NoError(t, err)

	_, err = CRC(img)
	assert.Error(t, err)
}

func TestCRCFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "nesrom")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, "test.nes")
	require.NoError(t, ioutil.WriteFile(file, buildImage(1, 1, 0, 0, 0, nil), 0644))

	img, crc, err := crcFile(file)
	require.NoError(t, err)
	assert.Equal(t, 1, img.PrgBankCount())
	assert.Len(t, crc, 8)

	bad := filepath.Join(dir, "bad.nes")
	require.NoError(t, ioutil.WriteFile(bad, []byte("not an image"), 0644))

	_, _, err = crcFile(bad)
	assert.Error(t, err)

	_, _, err = crcFile(filepath.Join(dir, "missing.nes"))
	assert.Error(t, err)
}
