package mapper

import "github.com/nesquik/corenes/internal/cartridge"

// mmc1 implements mapper 1: a five-write serial shift register feeding
// four registers (control, CHR0, CHR1, PRG). Bit 7 of any write resets the
// shift register and forces control into PRG mode 3, fixing the last bank
// at 0xC000.
type mmc1 struct {
	cart *cartridge.Cartridge

	shift uint8
	nbits uint8
	ctrl  uint8
	chr0  uint8
	chr1  uint8
	prg   uint8

	prgBanks int
}

func newMMC1(cart *cartridge.Cartridge) *mmc1 {
	// Power-on control fixes the last PRG bank at 0xC000; the mirroring
	// bits seed from the header so the cartridge renders sensibly before
	// software first writes control.
	ctrl := uint8(0x0C)
	switch cart.Mirroring {
	case cartridge.SingleUpper:
		ctrl |= 1
	case cartridge.Vertical:
		ctrl |= 2
	case cartridge.Horizontal:
		ctrl |= 3
	}
	return &mmc1{
		cart:     cart,
		ctrl:     ctrl,
		prgBanks: len(cart.PRGROM) / 0x4000,
	}
}

func (m *mmc1) prgMode() uint8      { return (m.ctrl >> 2) & 3 }
func (m *mmc1) chrMode() uint8      { return (m.ctrl >> 4) & 1 }

func (m *mmc1) Mirroring() cartridge.Mirroring {
	switch m.ctrl & 3 {
	case 0:
		return cartridge.SingleLower
	case 1:
		return cartridge.SingleUpper
	case 2:
		return cartridge.Vertical
	default:
		return cartridge.Horizontal
	}
}

func (m *mmc1) Read(addr uint16) byte {
	switch {
	case addr < 0x2000:
		if m.cart.HasCHRRAM() {
			if int(addr) < len(m.cart.CHRRAM) {
				return m.cart.CHRRAM[addr]
			}
			return 0
		}
		off := m.chrOffset(addr) % max1(len(m.cart.CHRROM))
		return m.cart.CHRROM[off]
	case addr >= 0x6000 && addr < 0x8000:
		return m.cart.PRGRAM[addr-0x6000]
	case addr >= 0x8000:
		return m.cart.PRGROM[m.prgOffset(addr)]
	}
	return 0
}

// chrOffset resolves a PPU address to a byte offset in CHR-ROM, honoring
// the 4KiB/8KiB bank mode. CHR-RAM does not go through it: Read and Write
// access CHR-RAM unbanked at the PPU address.
func (m *mmc1) chrOffset(addr uint16) int {
	if m.chrMode() == 0 {
		// 8KiB mode: low bit of chr0 ignored.
		bank := int(m.chr0 >> 1)
		return bank*0x2000 + int(addr)
	}
	if addr < 0x1000 {
		return int(m.chr0)*0x1000 + int(addr)
	}
	return int(m.chr1)*0x1000 + int(addr-0x1000)
}

func (m *mmc1) prgOffset(addr uint16) int {
	off := addr - 0x8000
	switch m.prgMode() {
	case 0, 1: // 32KiB mode: low bit of prg bank ignored.
		bank := int(m.prg>>1) & ((m.prgBanks / 2) - 1)
		if m.prgBanks < 2 {
			bank = 0
		}
		return bank*0x8000 + int(off)
	case 2: // fix first bank at 0x8000, switch 0xC000
		if off < 0x4000 {
			return int(off)
		}
		bank := int(m.prg) % max1(m.prgBanks)
		return bank*0x4000 + int(off-0x4000)
	default: // 3: switch 0x8000, fix last bank at 0xC000
		if off < 0x4000 {
			bank := int(m.prg) % max1(m.prgBanks)
			return bank*0x4000 + int(off)
		}
		bank := m.prgBanks - 1
		return bank*0x4000 + int(off-0x4000)
	}
}

func (m *mmc1) Write(addr uint16, data byte) {
	switch {
	case addr < 0x2000:
		if m.cart.HasCHRRAM() {
			if int(addr) < len(m.cart.CHRRAM) {
				m.cart.CHRRAM[addr] = data
			}
		}
	case addr >= 0x6000 && addr < 0x8000:
		m.cart.PRGRAM[addr-0x6000] = data
	case addr >= 0x8000:
		m.serialWrite(addr, data)
	}
}

func (m *mmc1) serialWrite(addr uint16, data byte) {
	if data&0x80 != 0 {
		m.shift = 0
		m.nbits = 0
		m.ctrl |= 0x0C
		return
	}
	m.shift |= (data & 1) << m.nbits
	m.nbits++
	if m.nbits < 5 {
		return
	}
	value := m.shift
	m.shift, m.nbits = 0, 0
	switch {
	case addr < 0xA000:
		m.ctrl = value
	case addr < 0xC000:
		m.chr0 = value
	case addr < 0xE000:
		m.chr1 = value
	default:
		m.prg = value
	}
}

func (m *mmc1) DMASlice(addr uint16) ([]byte, bool) {
	if addr < 0x8000 {
		return nil, false
	}
	off := m.prgOffset(addr)
	winEnd := int(addr/0x4000+1) * 0x4000
	if int(addr)+256 > winEnd || off+256 > len(m.cart.PRGROM) {
		return nil, false
	}
	return m.cart.PRGROM[off : off+256], true
}

func (m *mmc1) OnScanline()      {}
func (m *mmc1) IRQPending() bool { return false }
func (m *mmc1) ClearIRQ()        {}

func max1(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}
