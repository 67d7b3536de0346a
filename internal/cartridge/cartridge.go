// Package cartridge holds the immutable-shape cartridge data (PRG/CHR/RAM
// and mirroring mode) that the mapper package translates addresses against.
// Construction (from an iNES header, say) lives outside this package per
// spec — see internal/ines — this package only owns the resulting bytes.
package cartridge

import "errors"

// Sentinel construction errors; compare with errors.Is.
var (
	ErrBadROM            = errors.New("cartridge: malformed rom")
	ErrUnsupportedMapper = errors.New("cartridge: unsupported mapper")
	ErrUnalignedROM      = errors.New("cartridge: prg/chr size not aligned")
)

// Mirroring selects how the PPU's 2KiB nametable RAM is mapped across the
// four logical nametable quadrants. SingleLower and SingleUpper are
// distinct values so an MMC1 control write can select either bank.
type Mirroring int

const (
	Horizontal Mirroring = iota
	Vertical
	SingleLower
	SingleUpper
	FourScreen
)

// Cartridge is the immutable-shape ROM image a Mapper decodes addresses
// against. PRGRAM/CHRRAM bytes may be mutated at runtime; PRGROM/CHRROM are
// conventionally treated as read-only (CHRROM-as-writable is not modeled,
// matching every mapper in scope).
type Cartridge struct {
	PRGROM []byte
	CHRROM []byte
	CHRRAM []byte // allocated when the cartridge declares no CHR-ROM
	PRGRAM []byte // battery-backed or plain work RAM at $6000-$7FFF

	MapperID  uint8
	Mirroring Mirroring
}

// HasCHRRAM reports whether this cartridge's pattern data is writable RAM.
func (c *Cartridge) HasCHRRAM() bool { return len(c.CHRRAM) > 0 }

// BatteryView exposes the raw PRG-RAM byte sequence for host
// checkpointing. The returned slice aliases PRGRAM; the host may read and
// write it freely but must not resize it.
func (c *Cartridge) BatteryView() []byte { return c.PRGRAM }

// New validates alignment and constructs a Cartridge. PRG-ROM must be a
// multiple of 16KiB, CHR-ROM (when present) a multiple of 8KiB; when chrROM
// is empty, 8KiB of CHR-RAM is allocated in its place.
func New(prgROM, chrROM, prgRAM []byte, mirroring Mirroring, mapperID uint8) (*Cartridge, error) {
	if len(prgROM) == 0 || len(prgROM)%0x4000 != 0 {
		return nil, ErrUnalignedROM
	}
	if len(chrROM)%0x2000 != 0 {
		return nil, ErrUnalignedROM
	}
	c := &Cartridge{
		PRGROM:    prgROM,
		CHRROM:    chrROM,
		PRGRAM:    prgRAM,
		Mirroring: mirroring,
		MapperID:  mapperID,
	}
	if len(chrROM) == 0 {
		c.CHRRAM = make([]byte, 0x2000)
	}
	if c.PRGRAM == nil {
		c.PRGRAM = make([]byte, 0x2000)
	}
	return c, nil
}
