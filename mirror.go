package nesrom

// MirrorMode is the nametable mirroring arrangement of a cartridge.
type MirrorMode int

const (
	// Vertical mirroring, the flag 6 mirroring bit is clear
	Vertical MirrorMode = iota
	// Horizontal mirroring, the flag 6 mirroring bit is set
	Horizontal
	// FourScreen means the cartridge provides its own nametable RAM
	FourScreen
)

func (m MirrorMode) String() string {
	switch m {
	case Vertical:
		return "Vertical"
	case Horizontal:
		return "Horizontal"
	case FourScreen:
		return "Four Screen"
	default:
		return "Unknown"
	}
}
