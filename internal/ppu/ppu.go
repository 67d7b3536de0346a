// Package ppu implements the picture processing unit: a 262-scanline,
// 341-dot-per-scanline raster scanner that renders backgrounds and sprites
// into a pair of double-buffered 256x240 RGBA framebuffers and raises NMI
// at the start of VBlank. See registers.go for the CPU-visible register
// window, background.go and sprites.go for the per-dot rendering pipeline,
// and palette.go for the master color table and palette RAM.
package ppu

import "github.com/nesquik/corenes/internal/logger"

// Cartridge is the PPU's view of the cartridge: CHR read/write through the
// mapper's address decoding, its current nametable mirroring, and the
// scanline hook mappers like MMC3 use for IRQ generation.
type Cartridge interface {
	Read(addr uint16) byte
	Write(addr uint16, value byte)
	Mirroring() Mirroring
	OnScanline()
}

// Mirroring mirrors cartridge.Mirroring's values without importing the
// cartridge package, keeping ppu dependency-free of cartridge/mapper types
// beyond this interface.
type Mirroring int

const (
	MirrorHorizontal Mirroring = iota
	MirrorVertical
	MirrorSingleLower
	MirrorSingleUpper
	MirrorFourScreen
)

// PPUCTRL bits.
const (
	ctrlNametable   = 0x03
	ctrlIncrement   = 0x04
	ctrlSpriteTable = 0x08
	ctrlBGTable     = 0x10
	ctrlSpriteSize  = 0x20
	ctrlNMIEnable   = 0x80
)

// PPUMASK bits.
const (
	maskGreyscale  = 0x01
	maskBGLeft     = 0x02
	maskSpriteLeft = 0x04
	maskBGShow     = 0x08
	maskSpriteShow = 0x10
)

// PPUSTATUS bits.
const (
	statusOverflow   = 0x20
	statusSprite0Hit = 0x40
	statusVBlank     = 0x80
)

// PPU holds all raster-scan state: registers, internal VRAM/OAM, the
// background fetch pipeline, and the two framebuffers the console reads
// out once per frame.
type PPU struct {
	ctrl, mask, status uint8
	oamAddr            uint8

	v, t uint16
	x    uint8
	w    bool

	nametables [0x800]uint8
	palette    [32]uint8
	oam        [256]uint8

	secondary    [8]spriteSlot
	secondaryLen int

	// Background fetch latches and shift registers. The latches hold the
	// four bytes fetched over the current 8-dot tile slot; the 16-bit shift
	// registers hold the current and next tile, indexed from bit 15 down
	// by fine X.
	nametableByte uint8
	attributeByte uint8
	lowTileByte   uint8
	highTileByte  uint8

	lowTileShift  uint16
	highTileShift uint16
	lowAttrShift  uint16
	highAttrShift uint16

	readBuffer uint8

	Cycle, Scanline int
	Frame           uint64

	// Double-buffered output: pixels render into back; at VBlank start the
	// buffers swap so Framebuffer always exposes a complete frame.
	bufA, bufB  [256 * 240]uint32
	front, back *[256 * 240]uint32

	nmiLine bool

	Cart Cartridge
	log  logger.Sink
}

type spriteSlot struct {
	y, tile, attr, x uint8
	index            int
}

// New creates a PPU with no cartridge attached; call ConnectCartridge
// before stepping.
func New(log logger.Sink) *PPU {
	if log == nil {
		log = logger.Nop
	}
	p := &PPU{log: log}
	p.front, p.back = &p.bufA, &p.bufB
	return p
}

// ConnectCartridge wires the mapper used for CHR access and mirroring.
func (p *PPU) ConnectCartridge(c Cartridge) { p.Cart = c }

// Reset returns the PPU to its post-power-on state without touching OAM or
// palette RAM, matching real hardware.
func (p *PPU) Reset() {
	p.ctrl, p.mask, p.status = 0, 0, 0
	p.v, p.t, p.x = 0, 0, 0
	p.w = false
	p.Cycle, p.Scanline = 0, 0
	p.nmiLine = false
	p.secondaryLen = 0
	p.lowTileShift, p.highTileShift = 0, 0
	p.lowAttrShift, p.highAttrShift = 0, 0
}

// NMIPending reports whether the PPU has a latched NMI request for the CPU.
func (p *PPU) NMIPending() bool { return p.nmiLine }

// ClearNMI acknowledges a delivered NMI.
func (p *PPU) ClearNMI() { p.nmiLine = false }

func (p *PPU) renderingEnabled() bool { return p.mask&(maskBGShow|maskSpriteShow) != 0 }

// Step advances the PPU by one dot. Visible dots 1-256 each emit one pixel
// from the shift registers; the background fetch pipeline runs over dots
// 1-256 and 321-336 of visible and pre-render lines; scroll registers
// update at their documented dot positions (increment X every 8th fetch
// dot, increment Y at 256, copy X at 257, copy Y over 280-304 of the
// pre-render line); VBlank and NMI transition at scanline 241 dot 1.
func (p *PPU) Step() {
	rendering := p.renderingEnabled()
	preRender := p.Scanline == 261
	visible := p.Scanline < 240
	visibleDot := p.Cycle >= 1 && p.Cycle <= 256
	prefetchDot := p.Cycle >= 321 && p.Cycle <= 336

	if visible && visibleDot {
		p.renderPixel(p.Cycle-1, p.Scanline)
	}

	if rendering && (visible || preRender) {
		if visibleDot || prefetchDot {
			p.shiftBackground()
			p.fetchBackground()
		}
		switch {
		case p.Cycle == 256:
			p.incrementY()
		case p.Cycle == 257:
			p.copyX()
		case preRender && p.Cycle >= 280 && p.Cycle <= 304:
			p.copyY()
		}
	}

	// Sprite evaluation for the next scanline happens alongside the dot-257
	// horizontal copy; the pre-render line clears the slots so scanline 0
	// always starts empty.
	if p.Cycle == 257 {
		if rendering && visible {
			p.evaluateSprites(p.Scanline)
		} else if preRender {
			p.secondaryLen = 0
		}
	}

	if p.Scanline == 241 && p.Cycle == 1 {
		p.status |= statusVBlank
		p.front, p.back = p.back, p.front
		if p.ctrl&ctrlNMIEnable != 0 {
			p.nmiLine = true
		}
	}
	if preRender && p.Cycle == 1 {
		p.status &^= statusVBlank | statusSprite0Hit | statusOverflow
	}

	p.Cycle++

	// Odd-frame dot skip: the pre-render line loses its last dot when
	// rendering is enabled, so odd frames are one PPU dot shorter.
	if preRender && p.Cycle == 340 && rendering && p.Frame%2 == 1 {
		p.Cycle = 341
	}

	if p.Cycle >= 341 {
		p.Cycle = 0
		p.Scanline++

		if p.Scanline >= 262 {
			p.Scanline = 0
			p.Frame++
		}
		if p.Scanline < 240 && p.Cart != nil {
			p.Cart.OnScanline()
		}
	}
}

// Framebuffer returns the ARGB8888 pixel buffer for the most recently
// completed frame (256x240, row-major, one uint32 per pixel in 0xAARRGGBB
// order). The buffer currently being scanned out is never exposed.
func (p *PPU) Framebuffer() []uint32 { return p.front[:] }
