package ppu

import "image/color"

// renderScanline draws one full row of the frame buffer: background first,
// then sprites composited on top per their priority bit and OAM order.
func (p *PPU) renderScanline(y int) {
	row := y * ScreenWidth
	for x := 0; x < ScreenWidth; x++ {
		p.transparent[row+x] = true
	}

	if !p.mask.showBackground() {
		backdrop := systemPalette[p.paletteRAM[0]&0x3F]
		for x := 0; x < ScreenWidth; x++ {
			p.setPixel(x, y, backdrop)
		}
	} else {
		p.renderBackgroundRow(y)
	}

	if p.mask.showSprites() {
		p.renderSpriteRow(y)
	}
}

// renderBackgroundRow walks the current scroll position across 256 output
// pixels, fetching nametable/attribute/pattern bytes tile by tile.
func (p *PPU) renderBackgroundRow(y int) {
	tmp := p.v
	// By dot 1 the dot 328/336 increments have already moved v two tiles
	// past this scanline's first tile; step back to it.
	for i := 0; i < 2; i++ {
		if tmp.coarseX() == 0 {
			tmp.setCoarseX(31)
			tmp.toggleNametableX()
		} else {
			tmp.setCoarseX(tmp.coarseX() - 1)
		}
	}
	fx := p.fineX
	row := y * ScreenWidth

	for x := 0; x < ScreenWidth; x++ {
		tileID := p.fetchNTByte(tmp)
		attr := p.fetchAttrByte(tmp)
		fineYpix := tmp.fineY()

		patternAddr := p.ctrl.bgPatternTable() + uint16(tileID)*16 + fineYpix
		lo := p.readByte(patternAddr)
		hi := p.readByte(patternAddr + 8)

		bit := 7 - fx
		value := ((hi>>bit)&1)<<1 | ((lo >> bit) & 1)

		quadrant := ((tmp.coarseY() & 0x02) << 1) | (tmp.coarseX() & 0x02)
		pal := (attr >> quadrant) & 0x03

		var idx uint8
		if value == 0 {
			idx = p.paletteRAM[0]
		} else {
			idx = p.paletteRAM[uint16(pal)*4+uint16(value)]
			p.transparent[row+x] = false
		}

		if !p.mask.showBackgroundLeft() && x < 8 {
			idx = p.paletteRAM[0]
			p.transparent[row+x] = true
		}

		p.setPixel(x, y, systemPalette[idx&0x3F])

		fx++
		if fx == 8 {
			fx = 0
			tmp.incrementCoarseX()
		}
	}
}

func (p *PPU) fetchNTByte(l loopy) uint8 {
	addr := uint16(0x2000) | (l.nametableY() << 11) | (l.nametableX() << 10) | (l.coarseY() << 5) | l.coarseX()
	return p.readNametable(addr & 0x2FFF)
}

func (p *PPU) fetchAttrByte(l loopy) uint8 {
	addr := uint16(0x23C0) | (l.nametableY() << 11) | (l.nametableX() << 10) | ((l.coarseY() >> 2) << 3) | (l.coarseX() >> 2)
	return p.readNametable(addr & 0x2FFF)
}

// renderSpriteRow selects up to 8 sprites intersecting scanline y (setting
// the statusSpriteOverflow flag when more exist) and draws them back-to-front
// so earlier OAM entries win ties, matching real priority.
func (p *PPU) renderSpriteRow(y int) {
	tall := p.ctrl.tallSprites()
	height := 8
	if tall {
		height = 16
	}

	var onLine []sprite
	for i := 0; i < 64; i++ {
		s := spriteFromBytes(p.oam[i*4 : i*4+4])
		if s.hidden() {
			continue
		}
		top := s.topScanline()
		if y < top || y >= top+height {
			continue
		}
		if len(onLine) == 8 {
			p.status.setOverflow(true)
			break
		}
		onLine = append(onLine, s)
	}

	row := y * ScreenWidth
	for i := len(onLine) - 1; i >= 0; i-- {
		s := onLine[i]
		isSprite0 := p.spriteIndexIsZero(s)
		rowInSprite := y - s.topScanline()
		if s.flipV {
			rowInSprite = height - 1 - rowInSprite
		}

		tileID := s.tileID
		table := p.ctrl.spritePatternTable()
		fineRow := uint16(rowInSprite)
		if tall {
			table = uint16(tileID&0x01) * 0x1000
			tileID &^= 0x01
			if fineRow >= 8 {
				tileID++
				fineRow -= 8
			}
		}

		patternAddr := table + uint16(tileID)*16 + fineRow
		lo := p.readByte(patternAddr)
		hi := p.readByte(patternAddr + 8)

		for col := 0; col < 8; col++ {
			bit := col
			if !s.flipH {
				bit = 7 - col
			}
			value := ((hi>>bit)&1)<<1 | ((lo >> bit) & 1)
			if value == 0 {
				continue
			}

			x := int(s.x) + col
			if x < 0 || x >= ScreenWidth {
				continue
			}
			if !p.mask.showSpritesLeft() && x < 8 {
				continue
			}

			bgOpaque := !p.transparent[row+x]
			if isSprite0 && bgOpaque && x != 255 {
				p.status.setSprite0(true)
			}
			if s.renderP == back && bgOpaque {
				continue
			}

			idx := p.paletteRAM[0x10+uint16(s.palette)*4+uint16(value)]
			p.setPixel(x, y, systemPalette[idx&0x3F])
		}
	}
}

func (p *PPU) spriteIndexIsZero(s sprite) bool {
	return p.oam[0] == s.y && p.oam[1] == s.tileID && p.oam[2] == s.attributes() && p.oam[3] == s.x
}

func (p *PPU) setPixel(x, y int, c color.RGBA) {
	i := (y*ScreenWidth + x) * 4
	p.pixels[i] = c.R
	p.pixels[i+1] = c.G
	p.pixels[i+2] = c.B
	p.pixels[i+3] = 0xFF
}
