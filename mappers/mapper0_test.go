package mappers

import (
	"testing"

	"github.com/8bitcore/nesgo/nesrom"
	"github.com/stretchr/testify/require"
)

func buildNROM(t *testing.T, prgBlocks, chrBlocks uint8) *nesrom.ROM {
	t.Helper()
	data := make([]byte, 16)
	copy(data, []byte("NES\x1A"))
	data[4] = prgBlocks
	data[5] = chrBlocks
	prg := make([]byte, int(prgBlocks)*16384)
	for i := range prg {
		prg[i] = byte(i >> 8) // each byte holds its 256-byte page number
	}
	chr := make([]byte, int(chrBlocks)*8192)
	rom, err := nesrom.Load(concat(data, prg, chr))
	require.NoError(t, err)
	return rom
}

func TestNROM16KMirrors(t *testing.T) {
	rom := buildNROM(t, 1, 1)
	m := newNROM(rom)

	require.Equal(t, rom.PrgRead(0), m.PrgRead(0x8000))
	require.Equal(t, rom.PrgRead(0), m.PrgRead(0xC000))
	require.Equal(t, m.PrgRead(0x8001), m.PrgRead(0xC001))
}

func TestNROM32KNoMirror(t *testing.T) {
	rom := buildNROM(t, 2, 1)
	m := newNROM(rom)

	require.NotEqual(t, m.PrgRead(0x8000), m.PrgRead(0xC000))
}

func TestNROMPrgRAM(t *testing.T) {
	rom := buildNROM(t, 1, 1)
	m := newNROM(rom)

	m.PrgWrite(0x6000, 0x42)
	require.Equal(t, uint8(0x42), m.PrgRead(0x6000))
}
