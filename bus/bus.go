// Package bus implements the NES's CPU address space: RAM mirroring, PPU
// register mirroring, OAM DMA and joypad latching, an APU register stub,
// and the cartridge mapper.
// https://www.nesdev.org/wiki/CPU_memory_map
package bus

import (
	"github.com/8bitcore/nesgo/mappers"
)

const (
	ramSize      = 0x800
	ramMirrorEnd = 0x1FFF
	ppuRegEnd    = 0x3FFF
	apuIOStart   = 0x4000
	oamDMAReg    = 0x4014
	joypadReg    = 0x4016
	apuIOEnd     = 0x401F
)

// PPU is the subset of ppu.PPU the bus needs to dispatch $2000-$3FFF.
type PPU interface {
	ReadRegister(idx uint8) uint8
	WriteRegister(idx uint8, val uint8)
}

// Joypad is the subset of joypad.Joypad the bus needs to dispatch $4016.
type Joypad interface {
	Read() uint8
	Write(val uint8)
}

// Bus is the CPU's view of memory: 2KB of work RAM, the PPU's eight
// memory-mapped registers (mirrored every 8 bytes through $3FFF), OAM DMA,
// a single joypad port at $4016, an APU/IO register stub covering the
// rest of $4000-$401F (including $4017), and the cartridge mapper
// covering $4020-$FFFF.
type Bus struct {
	ram    [ramSize]uint8
	ppu    PPU
	mapper mappers.Mapper
	pad    Joypad
	apuIO  [0x20]uint8

	// InitDMA is set by a write to $4014 and consumed by the emulator's
	// tick loop, which starts the dma.DMA unit and clears it.
	InitDMA   bool
	DMASource uint8
}

// New returns a Bus wired to ppu, mapper, and the joypad.
func New(ppu PPU, mapper mappers.Mapper, pad Joypad) *Bus {
	return &Bus{ppu: ppu, mapper: mapper, pad: pad}
}

// Read returns the byte at addr in CPU address space.
func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr <= ramMirrorEnd:
		return b.ram[addr&(ramSize-1)]
	case addr <= ppuRegEnd:
		return b.ppu.ReadRegister(uint8(addr & 0x7))
	case addr == joypadReg:
		return b.pad.Read()
	case addr >= apuIOStart && addr <= apuIOEnd:
		return b.apuIO[addr-apuIOStart]
	default:
		return b.mapper.PrgRead(addr)
	}
}

// Write stores val at addr in CPU address space.
func (b *Bus) Write(addr uint16, val uint8) {
	switch {
	case addr <= ramMirrorEnd:
		b.ram[addr&(ramSize-1)] = val
	case addr <= ppuRegEnd:
		b.ppu.WriteRegister(uint8(addr&0x7), val)
	case addr == oamDMAReg:
		b.InitDMA = true
		b.DMASource = val
	case addr == joypadReg:
		b.pad.Write(val)
	case addr >= apuIOStart && addr <= apuIOEnd:
		b.apuIO[addr-apuIOStart] = val
	default:
		b.mapper.PrgWrite(addr, val)
	}
}
