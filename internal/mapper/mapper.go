// Package mapper implements the cartridge bank-switching abstraction: a
// small capability interface the Console holds exclusively and lends to
// the CPU (PRG/PRG-RAM) and PPU (CHR) address decoders.
package mapper

import (
	"fmt"

	"github.com/nesquik/corenes/internal/cartridge"
	"github.com/nesquik/corenes/internal/logger"
)

// Mapper decodes CPU/PPU addresses against a Cartridge and may hold its own
// bank-switching and IRQ state. Addresses below 0x2000 are PPU-side
// (pattern tables); 0x6000-0xFFFF are CPU-side (PRG-RAM/PRG-ROM).
type Mapper interface {
	Read(addr uint16) byte
	Write(addr uint16, data byte)

	// DMASlice returns a view of 256 contiguous bytes starting at addr, for
	// satisfying OAM DMA in one copy, or ok=false when the source crosses a
	// bank boundary or is a register window rather than flat memory.
	DMASlice(addr uint16) (slice []byte, ok bool)

	// OnScanline is called by the PPU once per visible scanline; mappers
	// with a scanline IRQ counter (MMC3) use it to decrement and latch IRQs.
	OnScanline()

	Mirroring() cartridge.Mirroring
	IRQPending() bool
	ClearIRQ()
}

// New constructs the Mapper variant named by the cartridge's mapper ID.
func New(cart *cartridge.Cartridge, log logger.Sink) (Mapper, error) {
	if log == nil {
		log = logger.Nop
	}
	switch cart.MapperID {
	case 0:
		return newNROM(cart), nil
	case 1:
		return newMMC1(cart), nil
	case 2:
		return newUxROM(cart), nil
	case 4:
		return newMMC3(cart, log), nil
	default:
		return nil, fmt.Errorf("%w: id %d", cartridge.ErrUnsupportedMapper, cart.MapperID)
	}
}
