package ppu

// masterPalette is the fixed 64-color NES palette (2C02 RGB approximation).
var masterPalette = [64][3]uint8{
	{0x80, 0x80, 0x80}, {0x00, 0x3D, 0xA6}, {0x00, 0x12, 0xB0}, {0x44, 0x00, 0x96},
	{0xA1, 0x00, 0x5E}, {0xC7, 0x00, 0x28}, {0xBA, 0x06, 0x00}, {0x8C, 0x17, 0x00},
	{0x5C, 0x2F, 0x00}, {0x10, 0x45, 0x00}, {0x05, 0x4A, 0x00}, {0x00, 0x47, 0x2E},
	{0x00, 0x41, 0x66}, {0x00, 0x00, 0x00}, {0x05, 0x05, 0x05}, {0x05, 0x05, 0x05},

	{0xC7, 0xC7, 0xC7}, {0x00, 0x77, 0xFF}, {0x21, 0x55, 0xFF}, {0x82, 0x37, 0xFA},
	{0xEB, 0x2F, 0xB5}, {0xFF, 0x29, 0x50}, {0xFF, 0x22, 0x00}, {0xD6, 0x32, 0x00},
	{0xC4, 0x62, 0x00}, {0x35, 0x80, 0x00}, {0x05, 0x8F, 0x00}, {0x00, 0x8A, 0x55},
	{0x00, 0x99, 0xCC}, {0x21, 0x21, 0x21}, {0x09, 0x09, 0x09}, {0x09, 0x09, 0x09},

	{0xFF, 0xFF, 0xFF}, {0x0F, 0xD7, 0xFF}, {0x69, 0xA2, 0xFF}, {0xD4, 0x80, 0xFF},
	{0xFF, 0x45, 0xF3}, {0xFF, 0x61, 0x8B}, {0xFF, 0x88, 0x33}, {0xFF, 0x9C, 0x12},
	{0xFA, 0xBC, 0x20}, {0x9F, 0xE3, 0x0E}, {0x2B, 0xF0, 0x35}, {0x0C, 0xF0, 0xA4},
	{0x05, 0xFB, 0xFF}, {0x5E, 0x5E, 0x5E}, {0x0D, 0x0D, 0x0D}, {0x0D, 0x0D, 0x0D},

	{0xFF, 0xFF, 0xFF}, {0xA6, 0xFC, 0xFF}, {0xB3, 0xEC, 0xFF}, {0xDA, 0xAB, 0xEB},
	{0xFF, 0xA8, 0xF9}, {0xFF, 0xAB, 0xB3}, {0xFF, 0xD2, 0xB0}, {0xFF, 0xEF, 0xA6},
	{0xFF, 0xF7, 0x9C}, {0xD7, 0xFF, 0xB3}, {0xC6, 0xFF, 0xDE}, {0xC4, 0xFF, 0xF6},
	{0xC4, 0xF0, 0xFF}, {0xCC, 0xCC, 0xCC}, {0x3C, 0x3C, 0x3C}, {0x3C, 0x3C, 0x3C},
}

// readPalette reads a palette RAM entry, honoring the four backdrop
// mirrors ($10/$14/$18/$1C -> $00/$04/$08/$0C).
func (p *PPU) readPalette(addr uint8) uint8 {
	return p.palette[paletteIndex(addr)]
}

func (p *PPU) writePalette(addr uint8, value uint8) {
	p.palette[paletteIndex(addr)] = value & 0x3F
}

func paletteIndex(addr uint8) uint8 {
	addr &= 0x1F
	if addr&0x13 == 0x10 {
		addr &^= 0x10
	}
	return addr
}

// rgb resolves a 6-bit NES color index (with the 0x30 greyscale mask from
// PPUMASK already applied by the caller) to an RGB triple.
func rgb(colorIndex uint8) (r, g, b uint8) {
	c := masterPalette[colorIndex&0x3F]
	return c[0], c[1], c[2]
}

func packRGBA(r, g, b uint8) uint32 {
	return 0xFF000000 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// bgColor resolves a background palette selection (0-3) and color index
// (0-3, where 0 is always the shared backdrop) to a packed RGBA pixel.
func (p *PPU) bgColor(palette, colorIndex uint8) uint32 {
	var entry uint8
	if colorIndex == 0 {
		entry = p.readPalette(0)
	} else {
		entry = p.readPalette(palette*4 + colorIndex)
	}
	if p.mask&maskGreyscale != 0 {
		entry &= 0x30
	}
	r, g, b := rgb(entry)
	return packRGBA(r, g, b)
}

// spriteColor resolves a sprite palette selection (0-3) and color index
// (1-3; 0 is transparent and handled by the caller) to a packed RGBA pixel.
func (p *PPU) spriteColor(palette, colorIndex uint8) uint32 {
	entry := p.readPalette(0x10 + palette*4 + colorIndex)
	if p.mask&maskGreyscale != 0 {
		entry &= 0x30
	}
	r, g, b := rgb(entry)
	return packRGBA(r, g, b)
}
