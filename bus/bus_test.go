package bus

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fakePPU struct {
	reads   [8]uint8
	writes  [8]uint8
	nwrites int
}

func (p *fakePPU) ReadRegister(idx uint8) uint8 { return p.reads[idx] }
func (p *fakePPU) WriteRegister(idx uint8, val uint8) {
	p.writes[idx] = val
	p.nwrites++
}

type fakeMapper struct {
	prg [0x10000]uint8
}

func (m *fakeMapper) ID() uint16                    { return 0 }
func (m *fakeMapper) Name() string                  { return "fake" }
func (m *fakeMapper) PrgRead(addr uint16) uint8     { return m.prg[addr] }
func (m *fakeMapper) PrgWrite(addr uint16, v uint8) { m.prg[addr] = v }
func (m *fakeMapper) ChrRead(addr uint16) uint8     { return 0 }
func (m *fakeMapper) ChrWrite(addr uint16, v uint8) {}
func (m *fakeMapper) MirroringMode() uint8          { return 0 }
func (m *fakeMapper) HasSaveRAM() bool              { return false }
func (m *fakeMapper) Reset()                        {}

type fakePad struct {
	written uint8
	value   uint8
}

func (p *fakePad) Read() uint8     { return p.value }
func (p *fakePad) Write(val uint8) { p.written = val }

func newTestBus() (*Bus, *fakePPU, *fakeMapper, *fakePad) {
	ppu := &fakePPU{}
	mapper := &fakeMapper{}
	pad := &fakePad{}
	return New(ppu, mapper, pad), ppu, mapper, pad
}

func TestRAMIsMirroredEvery0x800(t *testing.T) {
	b, _, _, _ := newTestBus()
	b.Write(0x0001, 0x42)
	require.Equal(t, uint8(0x42), b.Read(0x0801))
	require.Equal(t, uint8(0x42), b.Read(0x1001))
	require.Equal(t, uint8(0x42), b.Read(0x1801))
}

func TestPPURegistersMirroredEvery8Bytes(t *testing.T) {
	b, ppu, _, _ := newTestBus()
	ppu.reads[2] = 0x99

	require.Equal(t, uint8(0x99), b.Read(0x2002))
	require.Equal(t, uint8(0x99), b.Read(0x200A))
	require.Equal(t, uint8(0x99), b.Read(0x3FFA))

	b.Write(0x2003, 0x11)
	require.Equal(t, uint8(0x11), ppu.writes[3])
}

func TestOAMDMAWriteSetsInitFlagAndSourcePage(t *testing.T) {
	b, _, _, _ := newTestBus()
	b.Write(0x4014, 0x03)
	require.True(t, b.InitDMA)
	require.Equal(t, uint8(0x03), b.DMASource)
}

func TestJoypadRegisterForwardsReadsAndWrites(t *testing.T) {
	b, _, _, pad := newTestBus()
	b.Write(0x4016, 1)
	require.Equal(t, uint8(1), pad.written)

	pad.value = 1
	require.Equal(t, uint8(1), b.Read(0x4016))
}

func TestAPUIOStubCoversRestOf4000Range(t *testing.T) {
	b, _, _, _ := newTestBus()
	b.Write(0x4000, 0x7F)
	require.Equal(t, uint8(0x7F), b.Read(0x4000))

	// $4017 is the APU frame counter, not a second joypad port.
	b.Write(0x4017, 0x55)
	require.Equal(t, uint8(0x55), b.Read(0x4017))
}

func TestCartridgeSpaceDispatchesToMapper(t *testing.T) {
	b, _, mapper, _ := newTestBus()
	b.Write(0x8000, 0xAB)
	require.Equal(t, uint8(0xAB), mapper.prg[0x8000])
	require.Equal(t, uint8(0xAB), b.Read(0x8000))
}
