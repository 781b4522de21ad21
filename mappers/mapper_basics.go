// Package mappers implements and registers cartridge mappers, referenced
// numerically by iNES ROM files.
package mappers

import (
	"errors"
	"fmt"

	"github.com/8bitcore/nesgo/nesrom"
)

// ErrUnsupportedMapper is wrapped into the error Get returns when a ROM
// names a mapper number nothing has registered.
var ErrUnsupportedMapper = errors.New("mappers: unsupported mapper number")

// A global registry of mappers, keyed by mapper id. Populated by each
// mapper package file's init().
var allMappers = map[uint16]func(*nesrom.ROM) Mapper{}

// RegisterMapper registers a constructor for the given iNES mapper number.
// Called only from init(); a duplicate registration is a programming error.
func RegisterMapper(id uint16, new func(*nesrom.ROM) Mapper) {
	if _, ok := allMappers[id]; ok {
		panic(fmt.Sprintf("mappers: id %d already registered", id))
	}
	allMappers[id] = new
}

// Get constructs the mapper named by rom's header, or an error wrapping
// ErrUnsupportedMapper if no mapper is registered for that number.
func Get(rom *nesrom.ROM) (Mapper, error) {
	id := rom.MapperNum()
	new, ok := allMappers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedMapper, id)
	}
	return new(rom), nil
}

// Mapper translates cartridge-space addresses to PRG/CHR byte offsets and
// holds any bank-select state. The Bus forwards all of $4020-$FFFF (CPU
// space) here, and the PPU forwards all pattern-table accesses (PPU space,
// $0000-$1FFF).
type Mapper interface {
	ID() uint16
	Name() string
	PrgRead(uint16) uint8
	PrgWrite(uint16, uint8)
	ChrRead(uint16) uint8
	ChrWrite(uint16, uint8)
	MirroringMode() uint8
	HasSaveRAM() bool
	Reset()
}

// baseMapper carries the fields and methods common to every mapper:
// identity and the mirroring/save-RAM facts pulled straight from the
// header. Mapper implementations embed this and add bank-switching logic.
type baseMapper struct {
	id   uint16
	name string
	rom  *nesrom.ROM
}

func newBaseMapper(id uint16, name string, rom *nesrom.ROM) *baseMapper {
	return &baseMapper{id: id, name: name, rom: rom}
}

func (bm *baseMapper) ID() uint16     { return bm.id }
func (bm *baseMapper) Name() string   { return bm.name }
func (bm *baseMapper) String() string { return bm.name }

func (bm *baseMapper) HasSaveRAM() bool {
	return bm.rom.HasSaveRAM()
}

// MirroringMode returns the mirroring mode fixed by the cartridge header.
// Mappers with a runtime-switchable mirroring mode (MMC1) override this.
func (bm *baseMapper) MirroringMode() uint8 {
	return bm.rom.MirroringMode()
}
