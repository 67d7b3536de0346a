package ppu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// stubCart is a minimal ppu.Cartridge: flat 8KiB CHR space, fixed
// mirroring, and no IRQ behavior.
type stubCart struct {
	chr       [0x2000]byte
	mirroring Mirroring
}

func (s *stubCart) Read(addr uint16) byte         { return s.chr[addr&0x1FFF] }
func (s *stubCart) Write(addr uint16, value byte) { s.chr[addr&0x1FFF] = value }
func (s *stubCart) Mirroring() Mirroring          { return s.mirroring }
func (s *stubCart) OnScanline()                   {}

func newTestPPU(mirroring Mirroring) (*PPU, *stubCart) {
	p := New(nil)
	cart := &stubCart{mirroring: mirroring}
	p.ConnectCartridge(cart)
	return p, cart
}

// stepTo runs the PPU from its current position up to (but not through)
// the given scanline/dot.
func stepTo(p *PPU, scanline, dot int) {
	for !(p.Scanline == scanline && p.Cycle == dot) {
		p.Step()
	}
}

func TestPPUSTATUSReadClearsVBlankAndLatch(t *testing.T) {
	p, _ := newTestPPU(MirrorHorizontal)
	p.status |= statusVBlank
	p.w = true

	v := p.Read(0x2002)
	require.NotZero(t, v&statusVBlank)
	require.Zero(t, p.status&statusVBlank)
	require.False(t, p.w)
}

func TestPPUSCROLLAndADDRShareTheWriteLatch(t *testing.T) {
	p, _ := newTestPPU(MirrorHorizontal)

	p.Write(0x2005, 0x7D) // first write: coarse X / fine X
	require.True(t, p.w)
	p.Write(0x2005, 0x5E) // second write: coarse Y / fine Y
	require.False(t, p.w)

	p.Write(0x2006, 0x3F) // PPUADDR high byte
	require.True(t, p.w)
	p.Write(0x2006, 0x10) // PPUADDR low byte
	require.False(t, p.w)
	require.Equal(t, uint16(0x3F10), p.v)
}

func TestPPUDATAReadsAreBufferedExceptPalette(t *testing.T) {
	p, _ := newTestPPU(MirrorHorizontal)
	for i := 0; i < 8; i++ {
		p.writeVRAM(0x2100+uint16(i), byte(0x30+i))
	}

	p.Write(0x2006, 0x21)
	p.Write(0x2006, 0x00)
	p.Read(0x2007) // primer read fills the buffer
	for i := 0; i < 8; i++ {
		require.Equal(t, byte(0x30+i), p.Read(0x2007))
	}
}

func TestPPUDATAPaletteReadsBypassTheBuffer(t *testing.T) {
	p, _ := newTestPPU(MirrorHorizontal)
	p.writePalette(0x01, 0x2A)

	p.Write(0x2006, 0x3F)
	p.Write(0x2006, 0x01)
	require.Equal(t, byte(0x2A), p.Read(0x2007))
}

func TestPaletteBackdropMirrors(t *testing.T) {
	p, _ := newTestPPU(MirrorHorizontal)
	p.writePalette(0x10, 0x15)
	require.Equal(t, byte(0x15), p.readPalette(0x00))
}

func TestOAMDMAWritesSequentialBytes(t *testing.T) {
	p, _ := newTestPPU(MirrorHorizontal)
	for i := 0; i < 256; i++ {
		p.WriteOAMByte(byte(i))
	}
	require.Equal(t, byte(0), p.oam[0])
	require.Equal(t, byte(255), p.oam[255])
}

func TestVerticalMirroringMapsNametablesAcrossColumns(t *testing.T) {
	p, _ := newTestPPU(MirrorVertical)
	require.Equal(t, p.mirror(0x2000), p.mirror(0x2800))
	require.NotEqual(t, p.mirror(0x2000), p.mirror(0x2400))
}

func TestHorizontalMirroringMapsNametablesAcrossRows(t *testing.T) {
	p, _ := newTestPPU(MirrorHorizontal)
	require.Equal(t, p.mirror(0x2000), p.mirror(0x2400))
	require.NotEqual(t, p.mirror(0x2000), p.mirror(0x2800))
}

func TestStepSetsVBlankAndRequestsNMIAtScanline241Dot1(t *testing.T) {
	p, _ := newTestPPU(MirrorHorizontal)
	p.ctrl |= ctrlNMIEnable

	stepTo(p, 241, 1)
	require.Zero(t, p.status&statusVBlank)
	p.Step() // processes dot 1
	require.NotZero(t, p.status&statusVBlank)
	require.True(t, p.NMIPending())
}

func TestStepClearsVBlankAtPreRenderLine(t *testing.T) {
	p, _ := newTestPPU(MirrorHorizontal)
	for i := 0; i < 262*341; i++ {
		p.Step()
	}
	require.Zero(t, p.status&statusVBlank)
	require.Equal(t, uint64(1), p.Frame)
}

func TestOddFramesDropOneDotWhenRenderingEnabled(t *testing.T) {
	p, _ := newTestPPU(MirrorHorizontal)
	p.mask = maskBGShow

	// Frame 0 (even): full 341*262 dots.
	for i := 0; i < 341*262; i++ {
		p.Step()
	}
	require.Equal(t, uint64(1), p.Frame)
	require.Equal(t, 0, p.Scanline)
	require.Equal(t, 0, p.Cycle)

	// Frame 1 (odd): one dot shorter.
	for i := 0; i < 341*262-1; i++ {
		p.Step()
	}
	require.Equal(t, uint64(2), p.Frame)
	require.Equal(t, 0, p.Scanline)
	require.Equal(t, 0, p.Cycle)
}

func TestIncrementXWrapsIntoAdjacentNametable(t *testing.T) {
	p, _ := newTestPPU(MirrorHorizontal)
	p.v = 31 // coarse X at the last tile
	p.incrementX()
	require.Equal(t, uint16(0x0400), p.v)
}

func TestIncrementYWrapsCoarseYAndFlipsNametableAt29(t *testing.T) {
	p, _ := newTestPPU(MirrorHorizontal)
	p.v = 0x7000 | 29<<5 // fine Y 7, coarse Y 29
	p.incrementY()
	require.Equal(t, uint16(0x0800), p.v)
}

func TestIncrementYWrapsCoarseYWithoutFlipAt31(t *testing.T) {
	p, _ := newTestPPU(MirrorHorizontal)
	p.v = 0x7000 | 31<<5
	p.incrementY()
	require.Equal(t, uint16(0x0000), p.v)
}

func TestCopyXAndCopyYRestoreScrollBitsFromT(t *testing.T) {
	p, _ := newTestPPU(MirrorHorizontal)
	p.t = 0x7FFF
	p.v = 0
	p.copyX()
	require.Equal(t, uint16(0x041F), p.v)
	p.v = 0
	p.copyY()
	require.Equal(t, uint16(0x7BE0), p.v)
}

func TestFramebufferIsDoubleBuffered(t *testing.T) {
	p, _ := newTestPPU(MirrorHorizontal)
	writing := p.back
	require.NotSame(t, writing, p.front)

	// The buffers swap at VBlank start, exposing the frame just drawn.
	stepTo(p, 241, 1)
	p.Step()
	require.Same(t, writing, p.front)
}

// TestSprite0HitLatchesOnOverlap paints an opaque background tile and an
// opaque sprite 0 over the same pixels and walks a frame, expecting the hit
// flag before VBlank.
func TestSprite0HitLatchesOnOverlap(t *testing.T) {
	p, cart := newTestPPU(MirrorHorizontal)

	// Tile 1: all pixels set in the low plane.
	for row := 0; row < 8; row++ {
		cart.chr[16+row] = 0xFF
	}
	// Fill the first nametable with tile 1 so the background is opaque
	// everywhere.
	for i := uint16(0); i < 960; i++ {
		p.writeVRAM(0x2000+i, 1)
	}
	// Sprite 0 at (40, 40), tile 1, in front of the background.
	p.oam[0] = 39 // OAM Y is top minus one
	p.oam[1] = 1
	p.oam[2] = 0
	p.oam[3] = 40

	// Non-zero palette entries so opacity is observable.
	p.writePalette(0x01, 0x21)
	p.writePalette(0x11, 0x16)

	p.mask = maskBGShow | maskSpriteShow | maskBGLeft | maskSpriteLeft

	stepTo(p, 241, 0)
	require.NotZero(t, p.status&statusSprite0Hit)
}

func TestSpriteOverflowSetsWhenNinthSpriteInRange(t *testing.T) {
	p, _ := newTestPPU(MirrorHorizontal)
	for i := 0; i < 9; i++ {
		p.oam[i*4] = 50 // nine sprites on the same rows
		p.oam[i*4+3] = byte(i * 8)
	}
	p.evaluateSprites(52)
	require.Equal(t, 8, p.secondaryLen)
	require.NotZero(t, p.status&statusOverflow)
}
