package nesrom

import (
	"fmt"
	"hash/crc32"
	"io/ioutil"
)

// CRC computes the CRC-32 of the program and graphics banks, skipping the
// header and any trainer. This is the value used by DAT files to identify an
// image.
func CRC(img *Image) (string, error) {
	h := crc32.NewIEEE()

	prg, err := img.PrgBanks()
	if err != nil {
		return "", err
	}
	chr, err := img.ChrBanks()
	if err != nil {
		return "", err
	}

	for _, b := range append(prg, chr...) {
		if _, err := h.Write(b); err != nil {
			return "", err
		}
	}

	return fmt.Sprintf("%.*X", crc32.Size<<1, h.Sum(nil)), nil
}

func readImage(file string) (*Image, error) {
	b, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, err
	}
	img, err := Decode(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return img, nil
}

func crcFile(file string) (*Image, string, error) {
	img, err := readImage(file)
	if err != nil {
		return nil, "", err
	}
	crc, err := CRC(img)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", file, err)
	}
	return img, crc, nil
}
