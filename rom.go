package nesrom

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

const (
	// HeaderSize is the size in bytes of the fixed image header
	HeaderSize = 16
	// TrainerSize is the size in bytes of the optional trainer region
	TrainerSize = 512
	// PrgBankSize is the size in bytes of each program bank
	PrgBankSize = 0x4000
	// ChrBankSize is the size in bytes of each graphics bank
	ChrBankSize = 0x2000
	// TileSize is the size in bytes of each tile record within a graphics bank
	TileSize = 16
	// TilesPerBank is the number of tile records in each graphics bank
	TilesPerBank = ChrBankSize / TileSize
)

const (
	flagMirroring  = 1 << 0
	flagBattery    = 1 << 1
	flagTrainer    = 1 << 2
	flagFourScreen = 1 << 3
)

const titleMarker = 0xff

var magic = [4]byte{'N', 'E', 'S', 0x1a}

// ErrHeaderMismatch is returned by Decode when the buffer is too short to
// hold a header or doesn't start with the expected magic bytes.
var ErrHeaderMismatch = errors.New("nesrom: header mismatch")

// RangeError is returned when a region of the image extends past the end of
// the buffer, or the requested bank doesn't exist.
type RangeError struct {
	Region string
	Index  int
	Offset int
	Size   int
	Len    int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("nesrom: %s %d at offset %d (size %d) is outside image of %d bytes", e.Region, e.Index, e.Offset, e.Size, e.Len)
}

// Image is a decoded cartridge image. All metadata is derived from the
// underlying buffer on each call.
type Image struct {
	b []byte
}

// Decode validates the header in b and returns an Image backed by it. The
// slice is not copied so the caller must not modify it afterwards.
func Decode(b []byte) (*Image, error) {
	if len(b) < HeaderSize || !bytes.Equal(b[:len(magic)], magic[:]) {
		return nil, ErrHeaderMismatch
	}
	return &Image{b: b}, nil
}

func (i *Image) Len() int {
	return len(i.b)
}

func (i *Image) PrgBankCount() int {
	return int(i.b[4])
}

func (i *Image) ChrBankCount() int {
	return int(i.b[5])
}

// MirrorMode returns the mirroring mode. The four-screen flag takes
// precedence over the horizontal/vertical flag.
func (i *Image) MirrorMode() MirrorMode {
	switch {
	case i.b[6]&flagFourScreen != 0:
		return FourScreen
	case i.b[6]&flagMirroring != 0:
		return Horizontal
	default:
		return Vertical
	}
}

func (i *Image) BatteryBackedRAM() bool {
	return i.b[6]&flagBattery != 0
}

func (i *Image) HasTrainer() bool {
	return i.b[6]&flagTrainer != 0
}

// MapperNumber returns the mapper number; the low nibble comes from the upper
// nibble of flags 6 and the high nibble from the upper nibble of flags 7.
func (i *Image) MapperNumber() uint8 {
	return i.b[6]>>4 | i.b[7]&0xf0
}

// RAMBankCount returns the number of RAM banks, where zero means one.
func (i *Image) RAMBankCount() uint8 {
	if i.b[8] == 0 {
		return 1
	}
	return i.b[8]
}

func (i *Image) trainerSize() int {
	if i.HasTrainer() {
		return TrainerSize
	}
	return 0
}

// PrgBankOffset returns the offset of program bank n. It doesn't check n
// against the bank count or the buffer length.
func (i *Image) PrgBankOffset(n int) int {
	return HeaderSize + i.trainerSize() + PrgBankSize*n
}

// ChrBankOffset returns the offset of graphics bank n, all of the program
// banks come first.
func (i *Image) ChrBankOffset(n int) int {
	return i.PrgBankOffset(i.PrgBankCount()) + ChrBankSize*n
}

// TitleOffset returns the nominal offset of the title, immediately after the
// last graphics bank.
func (i *Image) TitleOffset() int {
	return i.ChrBankOffset(i.ChrBankCount())
}

func (i *Image) region(name string, n, count, offset, size int) ([]byte, error) {
	if n < 0 || n >= count || offset+size > len(i.b) {
		return nil, &RangeError{
			Region: name,
			Index:  n,
			Offset: offset,
			Size:   size,
			Len:    len(i.b),
		}
	}
	return i.b[offset : offset+size : offset+size], nil
}

// PrgBank returns a view of program bank n.
func (i *Image) PrgBank(n int) ([]byte, error) {
	return i.region("program bank", n, i.PrgBankCount(), i.PrgBankOffset(n), PrgBankSize)
}

// ChrBank returns a view of graphics bank n.
func (i *Image) ChrBank(n int) ([]byte, error) {
	return i.region("graphics bank", n, i.ChrBankCount(), i.ChrBankOffset(n), ChrBankSize)
}

func (i *Image) PrgBanks() ([][]byte, error) {
	banks := make([][]byte, 0, i.PrgBankCount())
	for n := 0; n < i.PrgBankCount(); n++ {
		b, err := i.PrgBank(n)
		if err != nil {
			return nil, err
		}
		banks = append(banks, b)
	}
	return banks, nil
}

func (i *Image) ChrBanks() ([][]byte, error) {
	banks := make([][]byte, 0, i.ChrBankCount())
	for n := 0; n < i.ChrBankCount(); n++ {
		b, err := i.ChrBank(n)
		if err != nil {
			return nil, err
		}
		banks = append(banks, b)
	}
	return banks, nil
}

// Trainer returns a view of the trainer region, or nil if there isn't one.
func (i *Image) Trainer() ([]byte, error) {
	if !i.HasTrainer() {
		return nil, nil
	}
	return i.region("trainer", 0, 1, HeaderSize, TrainerSize)
}

// Title returns the optional title stored after the graphics banks. Some
// images store it one byte later, after a 0xff marker. An empty string is
// returned if there is no title.
func (i *Image) Title() string {
	offset := i.TitleOffset()
	if offset < len(i.b) && i.b[offset] == titleMarker {
		offset++
	}
	if offset >= len(i.b) {
		return ""
	}
	title := i.b[offset:]
	if n := bytes.IndexByte(title, 0); n >= 0 {
		title = title[:n]
	}
	return string(title)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// Describe returns a multi-line summary of the image metadata.
func (i *Image) Describe() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "PRG Banks: %d\n", i.PrgBankCount())
	fmt.Fprintf(&sb, "CHR Banks: %d\n", i.ChrBankCount())
	fmt.Fprintf(&sb, "Title: %s\n", i.Title())
	fmt.Fprintf(&sb, "Mirror Mode: %s\n", i.MirrorMode())
	fmt.Fprintf(&sb, "Battery Backed RAM: %s\n", yesNo(i.BatteryBackedRAM()))
	fmt.Fprintf(&sb, "Trainer Provided: %s\n", yesNo(i.HasTrainer()))
	fmt.Fprintf(&sb, "Mapper Number: %d\n", i.MapperNumber())
	fmt.Fprintf(&sb, "RAM banks: %d\n", i.RAMBankCount())
	return sb.String()
}
