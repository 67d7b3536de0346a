package cartridge

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRejectsUnalignedPRGROM(t *testing.T) {
	_, err := New(make([]byte, 100), nil, nil, Horizontal, 0)
	require.ErrorIs(t, err, ErrUnalignedROM)
}

func TestNewRejectsUnalignedCHRROM(t *testing.T) {
	_, err := New(make([]byte, 0x4000), make([]byte, 100), nil, Horizontal, 0)
	require.ErrorIs(t, err, ErrUnalignedROM)
}

func TestNewAllocatesCHRRAMWhenCHRROMEmpty(t *testing.T) {
	c, err := New(make([]byte, 0x4000), nil, nil, Horizontal, 0)
	require.NoError(t, err)
	require.True(t, c.HasCHRRAM())
	require.Len(t, c.CHRRAM, 0x2000)
}

func TestNewAllocatesPRGRAMWhenNil(t *testing.T) {
	c, err := New(make([]byte, 0x4000), make([]byte, 0x2000), nil, Horizontal, 0)
	require.NoError(t, err)
	require.Len(t, c.PRGRAM, 0x2000)
}

func TestBatteryViewAliasesPRGRAM(t *testing.T) {
	ram := make([]byte, 0x2000)
	c, err := New(make([]byte, 0x4000), make([]byte, 0x2000), ram, Horizontal, 0)
	require.NoError(t, err)
	c.PRGRAM[5] = 0x42
	require.Equal(t, byte(0x42), c.BatteryView()[5])
}
