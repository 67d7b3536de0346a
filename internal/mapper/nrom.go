package mapper

import "github.com/nesquik/corenes/internal/cartridge"

// nrom implements mapper 0: no banking. PRG-ROM maps linearly at
// 0x8000-0xFFFF, mirrored every 16KiB for NROM-128 cartridges.
type nrom struct {
	cart *cartridge.Cartridge
}

func newNROM(cart *cartridge.Cartridge) *nrom { return &nrom{cart: cart} }

func (m *nrom) Read(addr uint16) byte {
	switch {
	case addr < 0x2000:
		if m.cart.HasCHRRAM() {
			return m.cart.CHRRAM[addr]
		}
		return m.cart.CHRROM[int(addr)%len(m.cart.CHRROM)]
	case addr >= 0x6000 && addr < 0x8000:
		return m.cart.PRGRAM[addr-0x6000]
	case addr >= 0x8000:
		return m.cart.PRGROM[int(addr-0x8000)%len(m.cart.PRGROM)]
	}
	return 0
}

func (m *nrom) Write(addr uint16, data byte) {
	switch {
	case addr < 0x2000:
		if m.cart.HasCHRRAM() {
			m.cart.CHRRAM[addr] = data
		}
	case addr >= 0x6000 && addr < 0x8000:
		m.cart.PRGRAM[addr-0x6000] = data
		// Writes to 0x8000-0xFFFF are silently dropped: no registers on NROM.
	}
}

func (m *nrom) DMASlice(addr uint16) ([]byte, bool) {
	if addr < 0x8000 || addr > 0xFF00 {
		return nil, false
	}
	off := int(addr-0x8000) % len(m.cart.PRGROM)
	if off+256 > len(m.cart.PRGROM) {
		return nil, false
	}
	return m.cart.PRGROM[off : off+256], true
}

func (m *nrom) OnScanline()                        {}
func (m *nrom) Mirroring() cartridge.Mirroring     { return m.cart.Mirroring }
func (m *nrom) IRQPending() bool                   { return false }
func (m *nrom) ClearIRQ()                          {}
