package mapper

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nesquik/corenes/internal/cartridge"
)

func newCart(t *testing.T, prgBanks, chrBanks int, mirroring cartridge.Mirroring, mapperID uint8) *cartridge.Cartridge {
	t.Helper()
	c, err := cartridge.New(make([]byte, prgBanks*0x4000), make([]byte, chrBanks*0x2000), nil, mirroring, mapperID)
	require.NoError(t, err)
	return c
}

func TestNROMMirrorsSixteenKBCartridgeAcrossBothHalves(t *testing.T) {
	cart := newCart(t, 1, 1, cartridge.Horizontal, 0)
	cart.PRGROM[0] = 0xAA
	m, err := New(cart, nil)
	require.NoError(t, err)

	require.Equal(t, m.Read(0x8000), m.Read(0xC000))
	require.Equal(t, byte(0xAA), m.Read(0x8000))
}

func TestNROMDoesNotMirrorThirtyTwoKBCartridge(t *testing.T) {
	cart := newCart(t, 2, 1, cartridge.Horizontal, 0)
	cart.PRGROM[0] = 0x11
	cart.PRGROM[0x4000] = 0x22
	m, err := New(cart, nil)
	require.NoError(t, err)

	require.Equal(t, byte(0x11), m.Read(0x8000))
	require.Equal(t, byte(0x22), m.Read(0xC000))
}

func TestUnsupportedMapperIDReturnsError(t *testing.T) {
	cart := newCart(t, 1, 1, cartridge.Horizontal, 99)
	_, err := New(cart, nil)
	require.ErrorIs(t, err, cartridge.ErrUnsupportedMapper)
}

func TestMMC1SerialWriteRequiresFiveBits(t *testing.T) {
	cart := newCart(t, 4, 0, cartridge.Horizontal, 1)
	m, err := New(cart, nil)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		m.Write(0xE000, 0) // PRG register, low bits of a 5-write sequence
	}
	before := m.Mirroring()
	m.Write(0xE000, 1) // 5th write commits; PRG bank selection does not affect mirroring
	require.Equal(t, before, m.Mirroring())
}

func TestMMC1ResetBitForcesControlAndClearsShift(t *testing.T) {
	cart := newCart(t, 4, 0, cartridge.Horizontal, 1)
	m, err := New(cart, nil)
	require.NoError(t, err)

	m.Write(0x8000, 1) // two bits of a partial serial write
	m.Write(0x8000, 1)
	m.Write(0x8000, 0x80) // reset bit
	require.Equal(t, cartridge.Horizontal, m.Mirroring())

	// The partial bits were discarded: five fresh writes commit control=0.
	writeMMC1(m, 0x8000, 0x00)
	require.Equal(t, cartridge.SingleLower, m.Mirroring())

	// A reset ORs control with 0x0C, forcing PRG mode 3.
	m.Write(0x8000, 0x80)
	require.Equal(t, uint8(3), m.(*mmc1).prgMode())
	require.Equal(t, cartridge.SingleLower, m.Mirroring())
}

func TestMMC1ControlWriteSelectsMirroring(t *testing.T) {
	cart := newCart(t, 4, 0, cartridge.Horizontal, 1)
	m, err := New(cart, nil)
	require.NoError(t, err)

	writeMMC1(m, 0x8000, 0x02) // control=2 -> vertical
	require.Equal(t, cartridge.Vertical, m.Mirroring())
}

// writeMMC1 performs the 5-bit serial write protocol for one register.
func writeMMC1(m Mapper, addr uint16, value uint8) {
	for i := 0; i < 5; i++ {
		m.Write(addr, (value>>uint(i))&1)
	}
}

func TestMMC3IRQLatchesAfterReloadAndCountdown(t *testing.T) {
	cart := newCart(t, 4, 4, cartridge.Vertical, 4)
	m, err := New(cart, nil)
	require.NoError(t, err)

	m.Write(0xC000, 4) // IRQ latch = 4
	m.Write(0xC001, 0) // reload counter from latch
	m.Write(0xE001, 0) // IRQ enable

	for i := 0; i < 4; i++ {
		require.False(t, m.IRQPending())
		m.OnScanline()
	}
	require.True(t, m.IRQPending())
}

func TestMMC3ClearIRQAckKnowledgesOnE000(t *testing.T) {
	cart := newCart(t, 4, 4, cartridge.Vertical, 4)
	m, err := New(cart, nil)
	require.NoError(t, err)

	m.Write(0xC000, 0)
	m.Write(0xC001, 0)
	m.Write(0xE001, 0)
	m.OnScanline()
	require.True(t, m.IRQPending())

	m.Write(0xE000, 0) // acknowledge + disable
	require.False(t, m.IRQPending())
}

func TestUxROMSwitchesLowBankAndFixesLast(t *testing.T) {
	cart := newCart(t, 4, 1, cartridge.Horizontal, 2)
	for b := 0; b < 4; b++ {
		cart.PRGROM[b*0x4000] = byte(0x10 + b)
	}
	m, err := New(cart, nil)
	require.NoError(t, err)

	require.Equal(t, byte(0x10), m.Read(0x8000)) // bank 0 at power-on
	require.Equal(t, byte(0x13), m.Read(0xC000)) // last bank fixed

	m.Write(0x8000, 2)
	require.Equal(t, byte(0x12), m.Read(0x8000))
	require.Equal(t, byte(0x13), m.Read(0xC000))

	m.Write(0x8000, 6) // bank number reduced modulo bank count
	require.Equal(t, byte(0x12), m.Read(0x8000))
}

func TestMMC1ThirtyTwoKModeIgnoresLowBankBit(t *testing.T) {
	cart := newCart(t, 4, 0, cartridge.Horizontal, 1)
	cart.PRGROM[0] = 0x01
	cart.PRGROM[0x8000] = 0x02
	m, err := New(cart, nil)
	require.NoError(t, err)

	writeMMC1(m, 0x8000, 0x00) // control: 32KiB PRG mode
	writeMMC1(m, 0xE000, 0x03) // prg bank 3; low bit ignored -> 32K bank 1
	require.Equal(t, byte(0x02), m.Read(0x8000))

	writeMMC1(m, 0xE000, 0x02) // same 32K bank
	require.Equal(t, byte(0x02), m.Read(0x8000))
}

func TestMMC1FixLastModeSwitchesLowWindow(t *testing.T) {
	cart := newCart(t, 4, 0, cartridge.Horizontal, 1)
	for b := 0; b < 4; b++ {
		cart.PRGROM[b*0x4000] = byte(0x20 + b)
	}
	m, err := New(cart, nil)
	require.NoError(t, err)

	// Power-on control is mode 3: switch $8000, fix last at $C000.
	writeMMC1(m, 0xE000, 0x02)
	require.Equal(t, byte(0x22), m.Read(0x8000))
	require.Equal(t, byte(0x23), m.Read(0xC000))
}

func TestMMC3PRGModeSwapsFixedWindow(t *testing.T) {
	cart := newCart(t, 4, 4, cartridge.Vertical, 4) // 8 x 8KiB PRG banks
	for b := 0; b < 8; b++ {
		cart.PRGROM[b*0x2000] = byte(0x30 + b)
	}
	m, err := New(cart, nil)
	require.NoError(t, err)

	m.Write(0x8000, 0x06) // select R6
	m.Write(0x8001, 3)    // R6 = bank 3

	// Mode 0: $8000 follows R6, $C000 fixed to second-to-last.
	require.Equal(t, byte(0x33), m.Read(0x8000))
	require.Equal(t, byte(0x36), m.Read(0xC000))
	require.Equal(t, byte(0x37), m.Read(0xE000)) // last bank always fixed

	m.Write(0x8000, 0x46) // PRG mode bit set: windows swap
	require.Equal(t, byte(0x36), m.Read(0x8000))
	require.Equal(t, byte(0x33), m.Read(0xC000))
}

func TestDMASliceRefusesRegisterWindowsAndBankCrossings(t *testing.T) {
	cart := newCart(t, 1, 1, cartridge.Horizontal, 0)
	m, err := New(cart, nil)
	require.NoError(t, err)

	_, ok := m.DMASlice(0x4000)
	require.False(t, ok)

	slice, ok := m.DMASlice(0x8000)
	require.True(t, ok)
	require.Len(t, slice, 256)
}

func TestUxROMDMASliceTracksSelectedBank(t *testing.T) {
	cart := newCart(t, 2, 1, cartridge.Horizontal, 2)
	cart.PRGROM[0x4000] = 0x99
	m, err := New(cart, nil)
	require.NoError(t, err)

	m.Write(0x8000, 1)
	slice, ok := m.DMASlice(0x8000)
	require.True(t, ok)
	require.Equal(t, byte(0x99), slice[0])

	_, ok = m.DMASlice(0xBF01) // would run past the switchable window
	require.False(t, ok)
}
