package mapper

import "github.com/nesquik/corenes/internal/cartridge"

// uxrom implements mapper 2: a 16KiB switchable bank at 0x8000 and the last
// bank fixed at 0xC000. Any write in 0x8000-0xFFFF selects the low bank.
type uxrom struct {
	cart    *cartridge.Cartridge
	bank    int
	numBank int
}

func newUxROM(cart *cartridge.Cartridge) *uxrom {
	return &uxrom{cart: cart, numBank: len(cart.PRGROM) / 0x4000}
}

func (m *uxrom) Read(addr uint16) byte {
	switch {
	case addr < 0x2000:
		if m.cart.HasCHRRAM() {
			return m.cart.CHRRAM[addr]
		}
		return m.cart.CHRROM[int(addr)%len(m.cart.CHRROM)]
	case addr >= 0x6000 && addr < 0x8000:
		return m.cart.PRGRAM[addr-0x6000]
	case addr >= 0x8000 && addr < 0xC000:
		off := m.bank*0x4000 + int(addr-0x8000)
		return m.cart.PRGROM[off]
	case addr >= 0xC000:
		lastBank := m.numBank - 1
		off := lastBank*0x4000 + int(addr-0xC000)
		return m.cart.PRGROM[off]
	}
	return 0
}

func (m *uxrom) Write(addr uint16, data byte) {
	switch {
	case addr < 0x2000:
		if m.cart.HasCHRRAM() {
			m.cart.CHRRAM[addr] = data
		}
	case addr >= 0x6000 && addr < 0x8000:
		m.cart.PRGRAM[addr-0x6000] = data
	case addr >= 0x8000:
		m.bank = int(data) % m.numBank
	}
}

func (m *uxrom) DMASlice(addr uint16) ([]byte, bool) {
	if addr < 0x8000 {
		return nil, false
	}
	var base, winStart int
	if addr < 0xC000 {
		base, winStart = m.bank*0x4000, 0x8000
	} else {
		base, winStart = (m.numBank-1)*0x4000, 0xC000
	}
	off := base + int(addr) - winStart
	if off+256 > len(m.cart.PRGROM) || int(addr)+256 > winStart+0x4000 {
		return nil, false
	}
	return m.cart.PRGROM[off : off+256], true
}

func (m *uxrom) OnScanline()                    {}
func (m *uxrom) Mirroring() cartridge.Mirroring { return m.cart.Mirroring }
func (m *uxrom) IRQPending() bool               { return false }
func (m *uxrom) ClearIRQ()                      {}
