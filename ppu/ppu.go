// Package ppu implements the Ricoh 2C02 picture processing unit: nametable
// and palette memory, OAM, the scroll/address register protocol, and
// background/sprite compositing into an RGBA frame buffer.
package ppu

const (
	ScreenWidth  = 256
	ScreenHeight = 240

	// Mirroring modes a Cartridge may report. The first three match
	// nesrom's header-derived modes; the single-screen modes are only
	// produced by runtime-switchable mappers (MMC1).
	MirrorHorizontal  = 0
	MirrorVertical    = 1
	MirrorFourScreen  = 2
	MirrorSingleLower = 3
	MirrorSingleUpper = 4
)

// Cartridge is the subset of a mapper the PPU needs: pattern-table access
// and the current nametable mirroring mode.
type Cartridge interface {
	ChrRead(addr uint16) uint8
	ChrWrite(addr uint16, val uint8)
	MirroringMode() uint8
}

// PPU is the 2C02. All addressing is in PPU address space ($0000-$3FFF);
// the Bus is responsible for mapping CPU register accesses ($2000-$2007,
// mirrored through $3FFF) onto ReadRegister/WriteRegister.
type PPU struct {
	cart Cartridge

	// nt holds four independent 1KB nametable banks. Reads index a bank
	// directly from the raw address with no mirroring logic; mirroring
	// is applied at write time by duplicating into the partner bank(s).
	nt [4][1024]uint8

	paletteRAM [32]uint8
	oam        [256]uint8
	oamAddr    uint8

	ctrl   controlReg
	mask   maskReg
	status statusReg

	v, t      loopy
	fineX     uint8
	addrLatch bool
	dataBuf   uint8

	scanline int32
	cycle    int32
	oddFrame bool

	pixels      []uint8 // ScreenWidth*ScreenHeight*4, RGBA
	transparent [ScreenWidth * ScreenHeight]bool

	nmiPending bool
}

// New returns a PPU wired to cart for pattern-table reads and mirroring.
func New(cart Cartridge) *PPU {
	p := &PPU{
		cart:   cart,
		pixels: make([]uint8, ScreenWidth*ScreenHeight*4),
	}
	for i := 3; i < len(p.pixels); i += 4 {
		p.pixels[i] = 0xFF
	}
	p.Reset()
	return p
}

// Reset returns the PPU to its power-on state.
func (p *PPU) Reset() {
	p.ctrl = 0
	p.mask = 0
	p.status = 0
	p.v = loopy{}
	p.t = loopy{}
	p.fineX = 0
	p.addrLatch = false
	p.dataBuf = 0
	p.scanline = -1
	p.cycle = 0
	p.oddFrame = false
	p.nmiPending = false
}

// FramePixels returns the RGBA frame buffer for the most recently rendered
// frame. The slice is owned by the PPU and is overwritten every frame.
func (p *PPU) FramePixels() []uint8 { return p.pixels }

// PollNMI reports whether an NMI has been raised since the last call and
// clears the pending flag. nes.Emulator.Tick calls this once per tick.
func (p *PPU) PollNMI() bool {
	pending := p.nmiPending
	p.nmiPending = false
	return pending
}

// DMAWriteOAM writes one byte to OAM at the current OAM address and
// advances it, as performed by OAM-DMA ($4014).
func (p *PPU) DMAWriteOAM(val uint8) {
	p.oam[p.oamAddr] = val
	p.oamAddr++
}

// ReadRegister reads one of the eight memory-mapped registers ($2000-$2007,
// indexed 0-7), applying the side effects (latch reset, buffered reads)
// each carries.
func (p *PPU) ReadRegister(idx uint8) uint8 {
	switch idx {
	case 2: // PPUSTATUS
		result := uint8(p.status) & 0xE0
		result |= p.dataBuf & 0x1F
		p.status.setVblank(false)
		p.addrLatch = false
		return result
	case 4: // OAMDATA
		return p.oam[p.oamAddr]
	case 7: // PPUDATA
		addr := p.v.raw()
		var result uint8
		if addr < 0x3F00 {
			result = p.dataBuf
			p.dataBuf = p.readByte(addr)
		} else {
			result = p.readByte(addr)
			p.dataBuf = p.readByte(addr - 0x1000)
		}
		p.v.setRaw(addr + p.ctrl.vramIncrement())
		return result
	default:
		return 0
	}
}

// WriteRegister writes one of the eight memory-mapped registers.
func (p *PPU) WriteRegister(idx uint8, val uint8) {
	switch idx {
	case 0: // PPUCTRL
		p.ctrl = controlReg(val)
		p.t.setNametableX(uint16(val & 0x01))
		p.t.setNametableY(uint16((val >> 1) & 0x01))
	case 1: // PPUMASK
		p.mask = maskReg(val)
	case 3: // OAMADDR
		p.oamAddr = val
	case 4: // OAMDATA
		p.oam[p.oamAddr] = val
		p.oamAddr++
	case 5: // PPUSCROLL
		if !p.addrLatch {
			p.fineX = val & 0x07
			p.t.setCoarseX(uint16(val >> 3))
			p.addrLatch = true
		} else {
			p.t.setFineY(uint16(val & 0x07))
			p.t.setCoarseY(uint16(val >> 3))
			p.addrLatch = false
		}
	case 6: // PPUADDR
		if !p.addrLatch {
			p.t.setRaw((p.t.raw() & 0x00FF) | (uint16(val&0x3F) << 8))
			p.addrLatch = true
		} else {
			p.t.setRaw((p.t.raw() & 0x7F00) | uint16(val))
			p.v = p.t
			p.addrLatch = false
		}
	case 7: // PPUDATA
		p.writeByte(p.v.raw(), val)
		p.v.setRaw(p.v.raw() + p.ctrl.vramIncrement())
	}
}

// readByte reads one byte of PPU address space: pattern tables (cartridge),
// nametables (with four-bank mirroring), or palette RAM.
func (p *PPU) readByte(addr uint16) uint8 {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		return p.cart.ChrRead(addr)
	case addr < 0x3F00:
		return p.readNametable(addr & 0x2FFF)
	default:
		return p.paletteRAM[paletteIndex(addr)]
	}
}

func (p *PPU) writeByte(addr uint16, val uint8) {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		p.cart.ChrWrite(addr, val)
	case addr < 0x3F00:
		p.writeNametable(addr&0x2FFF, val)
	default:
		p.paletteRAM[paletteIndex(addr)] = val
	}
}

func paletteIndex(addr uint16) uint16 {
	i := addr & 0x1F
	if i >= 0x10 && i%4 == 0 {
		i &= 0x0F
	}
	return i
}

func (p *PPU) readNametable(addr uint16) uint8 {
	bank := (addr >> 10) & 0x03
	return p.nt[bank][addr&0x03FF]
}

// writeNametable duplicates the write into every bank the cartridge's
// mirroring mode aliases to addr's bank, so reads never need to apply
// mirroring logic.
func (p *PPU) writeNametable(addr uint16, val uint8) {
	raw := int((addr >> 10) & 0x03)
	offset := addr & 0x03FF
	for _, b := range mirroredBanks(raw, p.cart.MirroringMode()) {
		p.nt[b][offset] = val
	}
}

func mirroredBanks(raw int, mode uint8) []int {
	switch mode {
	case MirrorVertical:
		if raw == 0 || raw == 2 {
			return []int{0, 2}
		}
		return []int{1, 3}
	case MirrorHorizontal:
		if raw == 0 || raw == 1 {
			return []int{0, 1}
		}
		return []int{2, 3}
	case MirrorSingleLower, MirrorSingleUpper:
		return []int{0, 1, 2, 3}
	default: // MirrorFourScreen
		return []int{raw}
	}
}

// Tick advances the PPU by one dot (cycle). It drives vblank/NMI timing and
// renders each visible scanline in one pass at its first dot, rather than
// simulating the real hardware's per-dot shift registers. The v/t scroll
// register copies and coarse-X/Y increments below still run on their real
// dot numbers so a scanline's render (at its dot 1) always sees the v left
// over from the previous scanline's updates.
func (p *PPU) Tick() {
	renderingOn := p.mask.renderingEnabled()

	if p.scanline >= 0 && p.scanline < ScreenHeight && p.cycle == 1 {
		p.renderScanline(int(p.scanline))
	}

	if p.scanline == -1 && p.cycle == 1 {
		p.status.setVblank(false)
		p.status.setSprite0(false)
		p.status.setOverflow(false)
	}

	if p.scanline == -1 && p.cycle >= 280 && p.cycle <= 304 && renderingOn {
		// v: GHIA.BC DEF..... <- t: GHIA.BC DEF.....
		p.v.setCoarseY(p.t.coarseY())
		p.v.setNametableY(p.t.nametableY())
		p.v.setFineY(p.t.fineY())
	}

	if p.scanline < ScreenHeight && p.cycle > 0 && p.cycle%8 == 0 && p.cycle <= 256 && renderingOn {
		p.v.incrementCoarseX()
	}

	if p.scanline < ScreenHeight && p.cycle == 256 && renderingOn {
		p.v.incrementY()
	}

	if p.scanline < ScreenHeight && p.cycle == 257 && renderingOn {
		// v: ....A.. ...BCDEF <- t: ....A.. ...BCDEF
		p.v.setCoarseX(p.t.coarseX())
		p.v.setNametableX(p.t.nametableX())
	}

	if p.scanline < ScreenHeight && (p.cycle == 328 || p.cycle == 336) && renderingOn {
		p.v.incrementCoarseX()
	}

	if p.scanline == 241 && p.cycle == 1 {
		p.status.setVblank(true)
		if p.ctrl.nmiEnabled() {
			p.nmiPending = true
		}
	}

	p.cycle++
	if p.cycle > 340 {
		p.cycle = 0
		p.scanline++
		if p.scanline > 260 {
			p.scanline = -1
			p.oddFrame = !p.oddFrame
			if p.oddFrame && p.mask.renderingEnabled() {
				p.cycle = 1
			}
		}
	}
}
