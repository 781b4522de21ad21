package nesrom

import (
	"bytes"
	"errors"
	"testing"
)

func buildImage(prgBlocks, chrBlocks uint8, flags6 uint8, trainer bool) []byte {
	var buf bytes.Buffer
	buf.WriteString("NES\x1A")
	buf.WriteByte(prgBlocks)
	buf.WriteByte(chrBlocks)
	buf.WriteByte(flags6)
	buf.WriteByte(0) // flags7
	buf.Write(make([]byte, 8))

	if trainer {
		buf.Write(make([]byte, trainerSize))
	}
	buf.Write(make([]byte, prgBlockSize*int(prgBlocks)))
	buf.Write(make([]byte, chrBlockSize*int(chrBlocks)))
	return buf.Bytes()
}

func TestLoadParsesPrgAndChr(t *testing.T) {
	img := buildImage(2, 1, 0, false)
	rom, err := Load(bytes.NewReader(img))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, want := rom.PrgSize(), prgBlockSize*2; got != want {
		t.Errorf("PrgSize() = %d, want %d", got, want)
	}
	if got, want := rom.ChrSize(), chrBlockSize; got != want {
		t.Errorf("ChrSize() = %d, want %d", got, want)
	}
	if rom.ChrIsRAM() {
		t.Error("ChrIsRAM() = true, want false")
	}
}

func TestLoadAllocatesChrRAMWhenHeaderChrSizeIsZero(t *testing.T) {
	img := buildImage(1, 0, 0, false)
	rom, err := Load(bytes.NewReader(img))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !rom.ChrIsRAM() {
		t.Error("ChrIsRAM() = false, want true")
	}
	if got, want := rom.ChrSize(), chrRAMSize; got != want {
		t.Errorf("ChrSize() = %d, want %d", got, want)
	}
}

func TestLoadSkipsTrainerBlock(t *testing.T) {
	img := buildImage(1, 1, trainerBit, true)
	rom, err := Load(bytes.NewReader(img))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, want := rom.PrgSize(), prgBlockSize; got != want {
		t.Errorf("PrgSize() = %d, want %d (trainer bytes must not leak into PRG)", got, want)
	}
}

func TestLoadRejectsTruncatedHeader(t *testing.T) {
	if _, err := Load(bytes.NewReader([]byte("NES\x1A"))); err == nil {
		t.Error("Load() with a truncated header should fail")
	}
}

func TestLoadRejectsBadMagic(t *testing.T) {
	img := buildImage(1, 1, 0, false)
	img[0] = 'X'
	if _, err := Load(bytes.NewReader(img)); !errors.Is(err, ErrBadMagic) {
		t.Errorf("got %v, want ErrBadMagic", err)
	}
}

func TestPrgAndChrReadWrite(t *testing.T) {
	img := buildImage(1, 1, 0, false)
	rom, err := Load(bytes.NewReader(img))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	rom.PrgWrite(0x10, 0xAB)
	if got := rom.PrgRead(0x10); got != 0xAB {
		t.Errorf("PrgRead(0x10) = %#x, want 0xab", got)
	}

	rom.ChrWrite(0x10, 0xCD)
	if got := rom.ChrRead(0x10); got != 0xCD {
		t.Errorf("ChrRead(0x10) = %#x, want 0xcd", got)
	}
}

func TestMapperNumAndMirroringModeReadThroughHeader(t *testing.T) {
	img := buildImage(1, 1, mirroringBit, false)
	rom, err := Load(bytes.NewReader(img))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, want := rom.MirroringMode(), uint8(MirrorVertical); got != want {
		t.Errorf("MirroringMode() = %d, want %d", got, want)
	}
	if got, want := rom.MapperNum(), uint16(0); got != want {
		t.Errorf("MapperNum() = %d, want %d", got, want)
	}
}
