package mappers

import "github.com/8bitcore/nesgo/nesrom"

// Mirroring modes MMC1 can select at runtime that NROM's fixed header
// mirroring never produces.
const (
	MirrorSingleLower = 3
	MirrorSingleUpper = 4
)

func init() {
	RegisterMapper(1, func(rom *nesrom.ROM) Mapper {
		return newMMC1(rom)
	})
}

// mmc1 is Mapper 1: a 5-bit serial shift register commits writes to one of
// four internal registers (control, two CHR banks, one PRG bank) every
// fifth write. See SPEC_FULL.md §4.4.
type mmc1 struct {
	*baseMapper

	prgRAM   []uint8
	prgBanks uint8 // number of 16K PRG banks

	shiftRegister uint8
	shiftCount    uint8

	mirroring uint8 // 0=single-lower 1=single-upper 2=vertical 3=horizontal (control-register encoding)
	prgMode   uint8 // 0/1=32K, 2=fix first bank, 3=fix last bank
	chrMode   uint8 // 0=8K mode, 1=4K mode

	chrBank0 uint8
	chrBank1 uint8
	prgBank  uint8

	prgRAMEnabled bool
}

func newMMC1(rom *nesrom.ROM) *mmc1 {
	m := &mmc1{
		baseMapper:    newBaseMapper(1, "MMC1", rom),
		prgRAM:        make([]uint8, 8192),
		prgBanks:      rom.NumPrgBlocks(),
		prgRAMEnabled: true,
	}
	m.Reset()
	return m
}

// Reset restores power-on state: shift register empty with its sentinel
// bit, Control=0x1C (PRG mode 3, CHR 4K mode, single-screen-lower
// mirroring).
func (m *mmc1) Reset() {
	m.shiftRegister = 0x10
	m.shiftCount = 0
	m.commit(0x8000, 0x1C)
}

func (m *mmc1) PrgRead(addr uint16) uint8 {
	switch {
	case addr < 0x6000:
		return 0
	case addr >= 0x6000 && addr < 0x8000:
		if m.prgRAMEnabled {
			return m.prgRAM[addr-0x6000]
		}
		return 0
	case addr >= 0x8000 && addr < 0xC000:
		return m.rom.PrgRead(uint16(m.prgBankLow())*0x4000 + (addr - 0x8000))
	default: // addr >= 0xC000
		return m.rom.PrgRead(uint16(m.prgBankHigh())*0x4000 + (addr - 0xC000))
	}
}

func (m *mmc1) prgBankLow() uint8 {
	switch m.prgMode {
	case 0, 1:
		return m.prgBank &^ 1
	case 2:
		return 0
	default: // 3
		return m.prgBank
	}
}

func (m *mmc1) prgBankHigh() uint8 {
	switch m.prgMode {
	case 0, 1:
		return (m.prgBank &^ 1) | 1
	case 2:
		return m.prgBank
	default: // 3
		return m.prgBanks - 1
	}
}

func (m *mmc1) PrgWrite(addr uint16, val uint8) {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		if m.prgRAMEnabled {
			m.prgRAM[addr-0x6000] = val
		}
	case addr >= 0x8000:
		m.shiftWrite(addr, val)
	}
}

// shiftWrite feeds one bit into the 5-bit shift register; bit 7 set resets
// the register and forces PRG mode 3 instead of shifting.
func (m *mmc1) shiftWrite(addr uint16, val uint8) {
	if val&0x80 != 0 {
		m.shiftRegister = 0x10
		m.shiftCount = 0
		m.prgMode = 3
		return
	}

	m.shiftRegister = (m.shiftRegister >> 1) | ((val & 1) << 4)
	m.shiftCount++

	if m.shiftCount == 5 {
		m.commit(addr, m.shiftRegister)
		m.shiftRegister = 0x10
		m.shiftCount = 0
	}
}

func (m *mmc1) commit(addr uint16, val uint8) {
	switch {
	case addr < 0xA000:
		m.mirroring = val & 0x03
		m.prgMode = (val >> 2) & 0x03
		m.chrMode = (val >> 4) & 0x01
	case addr < 0xC000:
		m.chrBank0 = val & 0x1F
	case addr < 0xE000:
		m.chrBank1 = val & 0x1F
	default:
		m.prgBank = val & 0x0F
		m.prgRAMEnabled = val&0x10 == 0
	}
}

func (m *mmc1) ChrRead(addr uint16) uint8 {
	bank, off := m.chrBankOffset(addr)
	return m.rom.ChrRead(uint16(bank)*0x1000 + off)
}

func (m *mmc1) ChrWrite(addr uint16, val uint8) {
	if !m.rom.ChrIsRAM() {
		return
	}
	bank, off := m.chrBankOffset(addr)
	m.rom.ChrWrite(uint16(bank)*0x1000+off, val)
}

func (m *mmc1) chrBankOffset(addr uint16) (bank uint8, offset uint16) {
	if m.chrMode == 0 {
		bank = m.chrBank0 &^ 1
		if addr >= 0x1000 {
			bank |= 1
		}
		return bank, addr & 0x0FFF
	}
	if addr < 0x1000 {
		return m.chrBank0, addr
	}
	return m.chrBank1, addr - 0x1000
}

// MirroringMode overrides baseMapper's header-derived mirroring: MMC1
// selects mirroring at runtime via the control register.
func (m *mmc1) MirroringMode() uint8 {
	switch m.mirroring {
	case 0:
		return MirrorSingleLower
	case 1:
		return MirrorSingleUpper
	case 2:
		return nesrom.MirrorVertical
	default:
		return nesrom.MirrorHorizontal
	}
}
