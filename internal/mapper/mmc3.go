package mapper

import (
	"github.com/nesquik/corenes/internal/cartridge"
	"github.com/nesquik/corenes/internal/logger"
)

// mmc3 implements mapper 4. A bank-select register at even addresses in
// 0x8000-0x9FFE selects one of 8 bank registers; the following odd-address
// write sets it. An 8-bit IRQ counter reloads on a write to 0xC001,
// latches its reload value on 0xC000 writes, and decrements once per call
// to OnScanline (the PPU calls this once per visible scanline, rather
// than on each CHR A12 rising edge).
type mmc3 struct {
	cart *cartridge.Cartridge
	log  logger.Sink

	bankSelect uint8
	bankReg    [8]uint8
	mirroring  uint8 // 0 = vertical, 1 = horizontal
	ramProtect uint8

	irqLatch  uint8
	irqCount  uint8
	irqReload bool
	irqEnable bool
	irqPend   bool

	prgBanks int // 8KiB units
	chrBanks int // 1KiB units
}

func newMMC3(cart *cartridge.Cartridge, log logger.Sink) *mmc3 {
	m := &mmc3{
		cart:       cart,
		log:        log,
		ramProtect: 0x80,
		prgBanks:   len(cart.PRGROM) / 0x2000,
	}
	if cart.HasCHRRAM() {
		m.chrBanks = len(cart.CHRRAM) / 0x400
	} else {
		m.chrBanks = len(cart.CHRROM) / 0x400
	}
	return m
}

func (m *mmc3) Mirroring() cartridge.Mirroring {
	if m.mirroring&1 != 0 {
		return cartridge.Horizontal
	}
	return cartridge.Vertical
}

func (m *mmc3) prgBankAt(addr uint16) int {
	mode := (m.bankSelect >> 6) & 1
	switch {
	case addr < 0xA000:
		if mode == 0 {
			return int(m.bankReg[6]) % max1(m.prgBanks)
		}
		return m.prgBanks - 2
	case addr < 0xC000:
		return int(m.bankReg[7]) % max1(m.prgBanks)
	case addr < 0xE000:
		if mode == 0 {
			return m.prgBanks - 2
		}
		return int(m.bankReg[6]) % max1(m.prgBanks)
	default:
		return m.prgBanks - 1
	}
}

func (m *mmc3) chrBankAt(addr uint16) int {
	mode := (m.bankSelect >> 7) & 1
	a := addr
	if mode != 0 {
		a ^= 0x1000
	}
	switch {
	case a < 0x0800:
		return int(m.bankReg[0]&^1) + int((a)/0x400)
	case a < 0x1000:
		return int(m.bankReg[1]&^1) + int((a-0x0800)/0x400)
	default:
		return int(m.bankReg[2+int((a-0x1000)/0x400)])
	}
}

func (m *mmc3) Read(addr uint16) byte {
	switch {
	case addr < 0x2000:
		bank := m.chrBankAt(addr) % max1(m.chrBanks)
		off := bank*0x400 + int(addr&0x3FF)
		if m.cart.HasCHRRAM() {
			if off < len(m.cart.CHRRAM) {
				return m.cart.CHRRAM[off]
			}
			return 0
		}
		if off < len(m.cart.CHRROM) {
			return m.cart.CHRROM[off]
		}
		return 0
	case addr >= 0x6000 && addr < 0x8000:
		if m.ramProtect&0x80 == 0 {
			return 0
		}
		return m.cart.PRGRAM[addr-0x6000]
	case addr >= 0x8000:
		bank := m.prgBankAt(addr)
		off := bank*0x2000 + int(addr&0x1FFF)
		if off < len(m.cart.PRGROM) {
			return m.cart.PRGROM[off]
		}
	}
	return 0
}

func (m *mmc3) Write(addr uint16, data byte) {
	switch {
	case addr < 0x2000:
		if m.cart.HasCHRRAM() {
			bank := m.chrBankAt(addr) % max1(m.chrBanks)
			off := bank*0x400 + int(addr&0x3FF)
			if off < len(m.cart.CHRRAM) {
				m.cart.CHRRAM[off] = data
			}
		}
	case addr >= 0x6000 && addr < 0x8000:
		if m.ramProtect&0x80 != 0 && m.ramProtect&0x40 == 0 {
			m.cart.PRGRAM[addr-0x6000] = data
		}
	case addr >= 0x8000:
		m.writeRegister(addr, data)
	}
}

func (m *mmc3) writeRegister(addr uint16, data byte) {
	even := addr&1 == 0
	switch {
	case addr < 0xA000:
		if even {
			m.bankSelect = data
		} else {
			idx := m.bankSelect & 7
			m.bankReg[idx] = data
			m.log.LogMapper("bank R%d = %d", idx, data)
		}
	case addr < 0xC000:
		if even {
			m.mirroring = data & 1
		} else {
			m.ramProtect = data
		}
	case addr < 0xE000:
		if even {
			m.irqLatch = data
		} else {
			m.irqCount = m.irqLatch
			m.irqReload = false
		}
	default:
		if even {
			m.irqEnable = false
			m.irqPend = false
		} else {
			m.irqEnable = true
		}
	}
}

func (m *mmc3) DMASlice(addr uint16) ([]byte, bool) {
	if addr < 0x8000 {
		return nil, false
	}
	bank := m.prgBankAt(addr)
	off := bank*0x2000 + int(addr&0x1FFF)
	winEnd := (int(addr)/0x2000 + 1) * 0x2000
	if int(addr)+256 > winEnd || off+256 > len(m.cart.PRGROM) {
		return nil, false
	}
	return m.cart.PRGROM[off : off+256], true
}

// OnScanline decrements the IRQ counter once per visible scanline: reload
// from the latch when the counter is already zero, else decrement, and
// latch a pending IRQ when the counter reaches zero with IRQ enabled.
func (m *mmc3) OnScanline() {
	if m.irqCount == 0 || m.irqReload {
		m.irqCount = m.irqLatch
		m.irqReload = false
	} else {
		m.irqCount--
	}
	if m.irqCount == 0 && m.irqEnable {
		m.irqPend = true
		m.log.LogMapper("irq latched")
	}
}

func (m *mmc3) IRQPending() bool { return m.irqPend }
func (m *mmc3) ClearIRQ()        { m.irqPend = false }
