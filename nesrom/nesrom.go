package nesrom

import (
	"fmt"
	"io"
	"os"
)

const (
	headerSize   = 16
	trainerSize  = 512
	prgBlockSize = 16384
	chrBlockSize = 8192
	chrRAMSize   = 8192
)

// ROM is a parsed iNES cartridge image: header, optional trainer, PRG-ROM,
// and either CHR-ROM or allocated CHR-RAM.
type ROM struct {
	path     string
	h        *header
	trainer  []byte // if present
	prg      []byte // prgBlockSize * n bytes
	chr      []byte // chrBlockSize * n bytes, or chrRAMSize if chrIsRAM
	chrIsRAM bool
}

// New loads and parses an iNES ROM image from path.
func New(path string) (*ROM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("nesrom: opening %q: %w", path, err)
	}
	defer f.Close()

	r, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("nesrom: parsing %q: %w", path, err)
	}
	r.path = path
	return r, nil
}

// Load parses an iNES ROM image from an arbitrary reader.
func Load(r io.Reader) (*ROM, error) {
	hbytes := make([]byte, headerSize)
	if _, err := io.ReadFull(r, hbytes); err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	h, err := parseHeader(hbytes)
	if err != nil {
		return nil, err
	}

	rom := &ROM{h: h}

	if h.hasTrainer() {
		rom.trainer = make([]byte, trainerSize)
		if _, err := io.ReadFull(r, rom.trainer); err != nil {
			return nil, fmt.Errorf("reading trainer: %w", err)
		}
	}

	prgLen := prgBlockSize * int(h.prgSize)
	rom.prg = make([]byte, prgLen)
	if _, err := io.ReadFull(r, rom.prg); err != nil {
		return nil, fmt.Errorf("reading PRG-ROM (%d bytes): %w", prgLen, err)
	}

	if h.hasChrRAM() {
		rom.chr = make([]byte, chrRAMSize)
		rom.chrIsRAM = true
	} else {
		chrLen := chrBlockSize * int(h.chrSize)
		rom.chr = make([]byte, chrLen)
		if _, err := io.ReadFull(r, rom.chr); err != nil {
			return nil, fmt.Errorf("reading CHR-ROM (%d bytes): %w", chrLen, err)
		}
	}

	return rom, nil
}

func (r *ROM) String() string {
	return fmt.Sprintf("%s (prg=%d bytes, chr=%d bytes, chrRAM=%v)", r.h, len(r.prg), len(r.chr), r.chrIsRAM)
}

// NumPrgBlocks returns the number of 16KiB PRG-ROM blocks.
func (r *ROM) NumPrgBlocks() uint8 { return r.h.prgSize }

// PrgSize returns the total PRG-ROM size in bytes.
func (r *ROM) PrgSize() int { return len(r.prg) }

// ChrSize returns the total CHR-ROM/CHR-RAM size in bytes.
func (r *ROM) ChrSize() int { return len(r.chr) }

// ChrIsRAM reports whether the cartridge uses CHR-RAM instead of CHR-ROM.
func (r *ROM) ChrIsRAM() bool { return r.chrIsRAM }

func (r *ROM) PrgRead(addr uint16) uint8 {
	return r.prg[addr]
}

func (r *ROM) PrgWrite(addr uint16, val uint8) {
	r.prg[addr] = val
}

func (r *ROM) ChrRead(addr uint16) uint8 {
	return r.chr[addr]
}

func (r *ROM) ChrWrite(addr uint16, val uint8) {
	r.chr[addr] = val
}

// MapperNum returns the iNES mapper number parsed from the header.
func (r *ROM) MapperNum() uint16 {
	return uint16(r.h.mapperNum())
}

func (r *ROM) MirroringMode() uint8 {
	return r.h.mirroringMode()
}

func (r *ROM) HasSaveRAM() bool {
	return r.h.hasPrgRAM()
}
