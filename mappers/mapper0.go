package mappers

import "github.com/8bitcore/nesgo/nesrom"

func init() {
	RegisterMapper(0, func(rom *nesrom.ROM) Mapper {
		return newNROM(rom)
	})
}

// nrom is Mapper 0: fixed PRG-ROM (16K mirrored to fill $8000-$FFFF, or a
// full 32K), fixed CHR-ROM/CHR-RAM, no bank switching, fixed mirroring.
type nrom struct {
	*baseMapper
	prgRAM []uint8
	mirror bool // true if the 16K PRG-ROM is mirrored across both halves
}

func newNROM(rom *nesrom.ROM) *nrom {
	return &nrom{
		baseMapper: newBaseMapper(0, "NROM", rom),
		prgRAM:     make([]uint8, 8192),
		mirror:     rom.NumPrgBlocks() == 1,
	}
}

func (m *nrom) PrgRead(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr <= 0x7FFF:
		return m.prgRAM[addr-0x6000]
	case addr >= 0x8000:
		off := addr - 0x8000
		if m.mirror {
			off &= 0x3FFF
		}
		return m.rom.PrgRead(off)
	}
	return 0
}

func (m *nrom) PrgWrite(addr uint16, val uint8) {
	if addr >= 0x6000 && addr <= 0x7FFF {
		m.prgRAM[addr-0x6000] = val
	}
	// Writes to $8000-$FFFF are ignored: NROM PRG-ROM is not writable.
}

func (m *nrom) ChrRead(addr uint16) uint8 {
	return m.rom.ChrRead(addr)
}

func (m *nrom) ChrWrite(addr uint16, val uint8) {
	if m.rom.ChrIsRAM() {
		m.rom.ChrWrite(addr, val)
	}
}

func (m *nrom) Reset() {}
