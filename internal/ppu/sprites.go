package ppu

// evaluateSprites scans all 64 OAM entries at dot 257 of a visible
// scanline and fills the secondary slots with the up-to-8 sprites that will
// overlap the NEXT scanline, setting the sprite overflow flag when a 9th is
// in range. OAM Y holds the sprite's top minus one, so a sprite whose entry
// matches rows of scanline N is drawn on scanline N+1.
func (p *PPU) evaluateSprites(scanline int) {
	p.secondaryLen = 0

	height := 8
	if p.ctrl&ctrlSpriteSize != 0 {
		height = 16
	}

	for i := 0; i < 64; i++ {
		y := int(p.oam[i*4])
		row := scanline - y
		if row < 0 || row >= height {
			continue
		}
		if p.secondaryLen >= 8 {
			p.status |= statusOverflow
			break
		}
		p.secondary[p.secondaryLen] = spriteSlot{
			y:     p.oam[i*4],
			tile:  p.oam[i*4+1],
			attr:  p.oam[i*4+2],
			x:     p.oam[i*4+3],
			index: i,
		}
		p.secondaryLen++
	}
}

// spriteTexel resolves the highest-priority opaque sprite pixel covering
// screen position (x, y), if any, from the slots evaluated on the previous
// scanline.
func (p *PPU) spriteTexel(x, y int) (palette, colorIndex uint8, behindBG bool, isSpriteZero bool, ok bool) {
	if p.mask&maskSpriteShow == 0 {
		return 0, 0, false, false, false
	}
	if x < 8 && p.mask&maskSpriteLeft == 0 {
		return 0, 0, false, false, false
	}

	height := 8
	if p.ctrl&ctrlSpriteSize != 0 {
		height = 16
	}

	for i := 0; i < p.secondaryLen; i++ {
		s := p.secondary[i]
		sx := int(s.x)
		if x < sx || x >= sx+8 {
			continue
		}
		py := y - int(s.y) - 1
		if py < 0 || py >= height {
			continue
		}
		px := x - sx
		if s.attr&0x40 != 0 {
			px = 7 - px
		}
		if s.attr&0x80 != 0 {
			py = height - 1 - py
		}

		var tileAddr uint16
		if height == 16 {
			// 8x16 sprites take their pattern table from tile bit 0, not
			// PPUCTRL; the even tile is the top half.
			tile := s.tile &^ 1
			if py >= 8 {
				tile++
				py -= 8
			}
			base := uint16(0)
			if s.tile&1 != 0 {
				base = 0x1000
			}
			tileAddr = base + uint16(tile)*16 + uint16(py)
		} else {
			base := uint16(0)
			if p.ctrl&ctrlSpriteTable != 0 {
				base = 0x1000
			}
			tileAddr = base + uint16(s.tile)*16 + uint16(py)
		}

		lo := p.readVRAM(tileAddr)
		hi := p.readVRAM(tileAddr + 8)
		ci := texel(lo, hi, px)
		if ci == 0 {
			continue // transparent, fall through to lower-priority sprites
		}
		return s.attr & 3, ci, s.attr&0x20 != 0, s.index == 0, true
	}
	return 0, 0, false, false, false
}

func texel(lo, hi uint8, pixelX int) uint8 {
	bit := uint(7 - pixelX)
	return ((hi>>bit)&1)<<1 | (lo>>bit)&1
}

// renderPixel composes the background and sprite layers for one screen
// pixel, applying sprite priority and latching sprite-0 hit.
func (p *PPU) renderPixel(x, y int) {
	index := y*256 + x

	if !p.renderingEnabled() {
		p.back[index] = p.bgColor(0, 0)
		return
	}

	var bgPalette, bgIndex uint8
	if p.mask&maskBGShow != 0 && !(x < 8 && p.mask&maskBGLeft == 0) {
		bgPalette, bgIndex = p.backgroundPixel()
	}
	bgOpaque := bgIndex != 0
	final := p.bgColor(bgPalette, bgIndex)

	sprPalette, sprIndex, behindBG, isZero, ok := p.spriteTexel(x, y)
	if ok {
		if isZero && bgOpaque && x != 255 {
			p.status |= statusSprite0Hit
		}
		if !behindBG || !bgOpaque {
			final = p.spriteColor(sprPalette, sprIndex)
		}
	}

	p.back[index] = final
}
