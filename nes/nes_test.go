package nes

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/8bitcore/nesgo/joypad"
	"github.com/8bitcore/nesgo/nesrom"
)

// buildNROM returns a one-bank (16KB PRG, 8KB CHR) iNES image with its
// reset vector pointed at prgEntry and the given bytes placed there.
func buildNROM(prgEntry uint16, code []uint8) *nesrom.ROM {
	var buf bytes.Buffer
	buf.WriteString("NES\x1A")
	buf.WriteByte(1) // 1x16KB PRG
	buf.WriteByte(1) // 1x8KB CHR
	buf.WriteByte(0) // flags6
	buf.WriteByte(0) // flags7
	buf.Write(make([]byte, 8))

	prg := make([]uint8, 16384)
	off := prgEntry - 0x8000
	copy(prg[off:], code)
	// Reset vector at $FFFC mirrors to offset 0x3FFC in the 16KB bank.
	prg[0x3FFC] = uint8(prgEntry)
	prg[0x3FFD] = uint8(prgEntry >> 8)
	buf.Write(prg)
	buf.Write(make([]byte, 8192)) // CHR-ROM

	rom, err := nesrom.Load(&buf)
	if err != nil {
		panic(err)
	}
	return rom
}

func TestNewWiresAllComponents(t *testing.T) {
	rom := buildNROM(0x8000, []uint8{0xEA}) // NOP
	e, err := New(rom)
	require.NoError(t, err)
	require.NotNil(t, e)
	require.Nil(t, e.Halted())
}

func TestTickExecutesOneInstructionAndReturnsItsCycleCount(t *testing.T) {
	// JMP $8000, so every Step costs a steady 3 cycles once past the
	// one-time startup cycle count the CPU carries from reset.
	rom := buildNROM(0x8000, []uint8{0x4C, 0x00, 0x80})
	e, err := New(rom)
	require.NoError(t, err)

	e.Tick() // absorbs the reset's own cycle count into prevTotalCycles
	cycles := e.Tick()
	require.Equal(t, uint64(3), cycles)
}

func TestUpdateRunsAtLeastOneFrameOfCycles(t *testing.T) {
	// JMP $8000
	rom := buildNROM(0x8000, []uint8{0x4C, 0x00, 0x80})
	e, err := New(rom)
	require.NoError(t, err)

	e.Update()
	require.GreaterOrEqual(t, e.cpu.TotalCycles(), uint64(CyclesPerFrame))
}

func TestHaltedCPUStopsTickingAndUpdate(t *testing.T) {
	rom := buildNROM(0x8000, []uint8{0x02}) // undefined opcode
	e, err := New(rom)
	require.NoError(t, err)

	e.Tick()
	require.NotNil(t, e.Halted())

	require.Equal(t, uint64(0), e.Tick())
	e.Update()
}

func TestDMATransferChargesCPUCyclesSoThePPUKeepsAdvancing(t *testing.T) {
	// LDA #$02; STA $4014 starts a transfer from page $0200.
	rom := buildNROM(0x8000, []uint8{0xA9, 0x02, 0x8D, 0x14, 0x40, 0xEA})
	e, err := New(rom)
	require.NoError(t, err)

	e.bus.Write(0x0200, 0x7A) // source byte the transfer should copy into OAM[0]

	e.Tick() // LDA #$02
	e.Tick() // STA $4014, starts the DMA
	require.True(t, e.dma.Active)

	before := e.cpu.TotalCycles()
	for e.dma.Active {
		e.Tick()
	}
	after := e.cpu.TotalCycles()

	require.GreaterOrEqual(t, after-before, uint64(513))

	e.ppu.WriteRegister(3, 0) // OAMADDR
	require.Equal(t, uint8(0x7A), e.ppu.ReadRegister(4))
}

func TestPressAndReleaseReachTheJoypadThroughTheBus(t *testing.T) {
	rom := buildNROM(0x8000, []uint8{0xEA})
	e, err := New(rom)
	require.NoError(t, err)

	e.Press(joypad.ButtonA)
	e.Press(joypad.ButtonStart)
	e.bus.Write(0x4016, 1)
	e.bus.Write(0x4016, 0)

	require.Equal(t, uint8(1), e.Read(0x4016)) // button A bit

	e.Release(joypad.ButtonA)
	e.bus.Write(0x4016, 1)
	e.bus.Write(0x4016, 0)
	require.Equal(t, uint8(0), e.Read(0x4016))
}
