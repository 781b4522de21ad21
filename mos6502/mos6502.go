// Package mos6502 implements the Ricoh 2A03's CPU core, a MOS Technology
// 6502 derivative without decimal mode.
// https://en.wikipedia.org/wiki/MOS_Technology_6502
package mos6502

import (
	"fmt"
	"strings"
)

// 6502 Interrupt Vectors
// https://en.wikipedia.org/wiki/Interrupts_in_65xx_processors
const (
	INT_IRQ   = 0xFFFE
	INT_BRK   = INT_IRQ
	INT_RESET = 0xFFFC
	INT_NMI   = 0xFFFA
)

// 6502 Processor Status Flags
// https://www.nesdev.org/obelisk-6502-guide/registers.html
const (
	STATUS_FLAG_CARRY             = 1 << 0 // C
	STATUS_FLAG_ZERO              = 1 << 1 // Z
	STATUS_FLAG_INTERRUPT_DISABLE = 1 << 2 // I
	STATUS_FLAG_DECIMAL           = 1 << 3 // D
	STATUS_FLAG_BREAK             = 1 << 4 // B
	UNUSED_STATUS_FLAG            = 1 << 5 // This is never used but is always on
	STATUS_FLAG_OVERFLOW          = 1 << 6 // V
	STATUS_FLAG_NEGATIVE          = 1 << 7 // N
)

// 6502 Addressing Modes
// https://www.nesdev.org/obelisk-6502-guide/addressing.html
const (
	IMPLICIT = iota
	ACCUMULATOR
	IMMEDIATE
	ZERO_PAGE
	ZERO_PAGE_X
	ZERO_PAGE_Y
	RELATIVE
	ABSOLUTE
	ABSOLUTE_X
	ABSOLUTE_Y
	INDIRECT
	INDIRECT_X // Indexed Indirect
	INDIRECT_Y // Indirect Indexed
)

const STACK_PAGE = 0x0100

var modenames = map[uint8]string{
	IMPLICIT: "IMPLICIT", ACCUMULATOR: "ACCUMULATOR", IMMEDIATE: "IMMEDIATE",
	ZERO_PAGE: "ZERO_PAGE", ZERO_PAGE_X: "ZERO_PAGE_X", ZERO_PAGE_Y: "ZERO_PAGE_Y",
	RELATIVE: "RELATIVE", ABSOLUTE: "ABSOLUTE", ABSOLUTE_X: "ABSOLUTE_X",
	ABSOLUTE_Y: "ABSOLUTE_Y", INDIRECT: "INDIRECT", INDIRECT_X: "INDIRECT_X",
	INDIRECT_Y: "INDIRECT_Y",
}

var flagMap = map[uint8]byte{
	STATUS_FLAG_CARRY:             'C',
	STATUS_FLAG_ZERO:              'Z',
	STATUS_FLAG_INTERRUPT_DISABLE: 'I',
	STATUS_FLAG_DECIMAL:           'D',
	STATUS_FLAG_BREAK:             'B',
	UNUSED_STATUS_FLAG:            '-',
	STATUS_FLAG_OVERFLOW:          'V',
	STATUS_FLAG_NEGATIVE:          'N',
}

func statusString(p uint8) string {
	var sb strings.Builder

	flags := []uint8{
		STATUS_FLAG_NEGATIVE,
		STATUS_FLAG_OVERFLOW,
		UNUSED_STATUS_FLAG,
		STATUS_FLAG_BREAK,
		STATUS_FLAG_DECIMAL,
		STATUS_FLAG_INTERRUPT_DISABLE,
		STATUS_FLAG_ZERO,
		STATUS_FLAG_CARRY,
	}

	for _, f := range flags {
		if p&f > 0 {
			sb.WriteByte(flagMap[f])
		} else {
			sb.WriteByte('.')
		}
	}

	return sb.String()
}

// Bus is the address space a CPU reads and writes through. The bus package
// implements this, routing CPU addresses to work RAM, PPU registers, the
// cartridge mapper and the controller port.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, val uint8)
}

// HaltError reports that the CPU fetched a byte with no corresponding
// official opcode. The emulator loop treats this as fatal: real hardware
// would execute an undocumented opcode, but those are out of scope here.
type HaltError struct {
	PC     uint16
	Opcode uint8
}

func (e *HaltError) Error() string {
	return fmt.Sprintf("pc: 0x%04x, opcode: 0x%02x - invalid instruction", e.PC, e.Opcode)
}

// CPU implements all of the machine state for the 6502.
type CPU struct {
	acc    uint8  // main register
	x, y   uint8  // index registers
	status uint8  // a register for storing various status bits
	sp     uint8  // stack pointer - stack is 0x0100-0x01FF so only 8 bits needed
	pc     uint16 // the program counter

	bus Bus

	totalCycles uint64 // running count, used by callers pacing the PPU/APU
	extra       uint8  // bonus cycles accumulated by the instruction just run
	pageCrossed bool   // set by getOperandAddr when indexing crosses a page

	halted *HaltError
}

func (c *CPU) String() string {
	op := opcodeTable[c.bus.Read(c.pc)]
	return fmt.Sprintf("A,X,Y: %3d,%3d,%3d; PC: 0x%04x, SP: 0x%02x, P: %s; OP: %s %s",
		c.acc, c.x, c.y, c.pc, c.sp, statusString(c.status), op.name, modenames[op.mode])
}

// New returns a CPU wired to bus, in its power-on state.
func New(bus Bus) *CPU {
	c := &CPU{bus: bus}
	c.Reset()
	return c
}

// Reset restores power-on register state and reloads PC from the reset
// vector, costing the 7-cycle reset sequence.
// https://nesdev-wiki.nes.science/wikipages/CPU_ALL.xhtml#Power_up_state
func (c *CPU) Reset() {
	c.acc, c.x, c.y = 0, 0, 0
	c.sp = 0xFD
	c.status = UNUSED_STATUS_FLAG | STATUS_FLAG_BREAK | STATUS_FLAG_INTERRUPT_DISABLE
	c.pc = c.memRead16(INT_RESET)
	c.totalCycles = 7
	c.halted = nil
}

// NMI services a non-maskable interrupt: push PC and status (B clear),
// set I, and jump through the NMI vector. Always taken, 7 cycles.
func (c *CPU) NMI() {
	c.pushAddress(c.pc)
	c.pushStack((c.status | UNUSED_STATUS_FLAG) &^ STATUS_FLAG_BREAK)
	c.flagsOn(STATUS_FLAG_INTERRUPT_DISABLE)
	c.pc = c.memRead16(INT_NMI)
	c.totalCycles += 7
}

// IRQ services a maskable interrupt; a no-op while the interrupt disable
// flag is set. 7 cycles when taken.
func (c *CPU) IRQ() {
	if c.status&STATUS_FLAG_INTERRUPT_DISABLE != 0 {
		return
	}
	c.pushAddress(c.pc)
	c.pushStack((c.status | UNUSED_STATUS_FLAG) &^ STATUS_FLAG_BREAK)
	c.flagsOn(STATUS_FLAG_INTERRUPT_DISABLE)
	c.pc = c.memRead16(INT_IRQ)
	c.totalCycles += 7
}

// Halted reports the error that stopped the CPU, if any.
func (c *CPU) Halted() *HaltError { return c.halted }

func (c *CPU) PC() uint16        { return c.pc }
func (c *CPU) A() uint8          { return c.acc }
func (c *CPU) X() uint8          { return c.x }
func (c *CPU) Y() uint8          { return c.y }
func (c *CPU) SP() uint8         { return c.sp }
func (c *CPU) Status() uint8     { return c.status }
func (c *CPU) TotalCycles() uint64 { return c.totalCycles }

// StealCycles charges n cycles against the running total without executing
// an instruction, for stall cycles a bus device (OAM DMA) imposes on the
// CPU while it holds the bus.
func (c *CPU) StealCycles(n uint64) { c.totalCycles += n }

// memRead returns the byte from the bus at addr
func (c *CPU) memRead(addr uint16) uint8 {
	return c.bus.Read(addr)
}

// memWrite writes val to the bus at addr
func (c *CPU) memWrite(addr uint16, val uint8) {
	c.bus.Write(addr, val)
}

// memRead16 returns the two bytes from memory at addr (lower byte is
// first).
func (c *CPU) memRead16(addr uint16) uint16 {
	lsb := uint16(c.memRead(addr))
	msb := uint16(c.memRead(addr + 1))

	return (msb << 8) | lsb
}

func (c *CPU) memWrite16(addr, val uint16) {
	c.memWrite(addr, uint8(val&0x00FF))
	c.memWrite(addr+1, uint8(val>>8))
}

// zpRead16 reads a little-endian word starting at zero-page address zp,
// wrapping the high byte back to $00 rather than crossing into page 1 -
// the hardware bug that (zp,X)/(zp),Y addressing relies on.
func (c *CPU) zpRead16(zp uint8) uint16 {
	lsb := uint16(c.memRead(uint16(zp)))
	msb := uint16(c.memRead(uint16(zp + 1)))
	return (msb << 8) | lsb
}

// getOperandAddr takes a mode and returns an address for the operand
// referenced by the program counter. It assumes that the counter was
// incremented past the actual instruction itself. Indexed modes that can
// cross a page record it in c.pageCrossed for the dispatcher to charge a
// bonus cycle on instructions where that bonus is conditional.
func (c *CPU) getOperandAddr(mode uint8) uint16 {
	var addr uint16
	switch mode {
	case ACCUMULATOR:
		panic("ACCUMULATOR Address mode should never use this method")
	case IMPLICIT:
		panic("IMPLICIT Address mode should never use this method")
	case IMMEDIATE:
		addr = c.pc
	case ZERO_PAGE:
		addr = uint16(c.memRead(c.pc))
	case ZERO_PAGE_X:
		return uint16(c.memRead(c.pc) + c.x)
	case ZERO_PAGE_Y:
		return uint16(c.memRead(c.pc) + c.y)
	case ABSOLUTE:
		return c.memRead16(c.pc)
	case ABSOLUTE_X:
		a := c.memRead16(c.pc)
		addr = a + uint16(c.x)
		c.pageCrossed = extraCycles(a, addr) != 0
	case ABSOLUTE_Y:
		a := c.memRead16(c.pc)
		addr = a + uint16(c.y)
		c.pageCrossed = extraCycles(a, addr) != 0
	case INDIRECT:
		ptr := c.memRead16(c.pc)
		lo := c.memRead(ptr)
		var hi uint8
		if ptr&0x00FF == 0x00FF {
			// Page-wrap bug: the high byte is fetched from the start
			// of the same page instead of the next page.
			hi = c.memRead(ptr &^ 0x00FF)
		} else {
			hi = c.memRead(ptr + 1)
		}
		return (uint16(hi) << 8) | uint16(lo)
	case INDIRECT_X:
		zp := c.memRead(c.pc) + c.x
		return c.zpRead16(zp)
	case INDIRECT_Y:
		zp := c.memRead(c.pc)
		a := c.zpRead16(zp)
		addr = a + uint16(c.y)
		c.pageCrossed = extraCycles(a, addr) != 0
	case RELATIVE:
		// Relative from PC at time of instruction
		// execution. We advance pc as soon as we eat the byte
		// from memory to decode the instruction, so we need
		// to account for that here and step over the relative
		// argument while calculating the new target address.
		addr = (c.pc + 1) + uint16(int8(c.memRead(c.pc)))
	default:
		panic("Invalid addressing mode")

	}

	return addr
}

// Step executes exactly one instruction (servicing no pending interrupts
// itself - callers call NMI/IRQ between Step calls) and returns the
// number of cycles it consumed. Once a HaltError occurs it is returned on
// every subsequent call without reading the bus again.
func (c *CPU) Step() (uint8, error) {
	if c.halted != nil {
		return 0, c.halted
	}

	opByte := c.memRead(c.pc)
	op := opcodeTable[opByte]
	if op.exec == nil {
		c.halted = &HaltError{PC: c.pc, Opcode: opByte}
		return 0, c.halted
	}

	c.extra = 0
	c.pageCrossed = false
	c.pc += 1
	opc := c.pc

	op.exec(c, op.mode)

	// If we didn't branch, move the PC beyond the full width of
	// the instruction. We consumed the first byte for the
	// instruction code, so only skip over the remaining argument
	// bytes.
	if c.pc == opc {
		c.pc += uint16(op.bytes) - 1
	}

	cycles := op.cycles + c.extra
	if op.pageSensitive && c.pageCrossed {
		cycles++
	}
	c.totalCycles += uint64(cycles)

	return cycles, nil
}

// setNegativeAndZeroFlags sets the STATUS_FLAG_NEGATIVE and
// STATUS_FLAG_ZERO bits of the status register accordingly for the
// value specified in n.
func (c *CPU) setNegativeAndZeroFlags(n uint8) {
	if n == 0 {
		c.flagsOn(STATUS_FLAG_ZERO)
	} else {
		c.flagsOff(STATUS_FLAG_ZERO)
	}

	if n&0b1000_0000 != 0 {
		c.flagsOn(STATUS_FLAG_NEGATIVE)
	} else {
		c.flagsOff(STATUS_FLAG_NEGATIVE)
	}
}

func (c *CPU) getStackAddr() uint16 {
	return STACK_PAGE + uint16(c.sp)
}

func (c *CPU) pushStack(val uint8) {
	c.memWrite(c.getStackAddr(), val)
	c.sp -= 1
}

func (c *CPU) popStack() uint8 {
	c.sp += 1
	return c.memRead(c.getStackAddr())
}

func (c *CPU) pushAddress(addr uint16) {
	c.pushStack(uint8(addr >> 8))     // high
	c.pushStack(uint8(addr & 0x00FF)) // low
}

func (c *CPU) popAddress() uint16 {
	return uint16(c.popStack()) | (uint16(c.popStack()) << 8)
}

// flagsOn forces the flags in mask (STATUS_FLAG_XXX|STATUS_FLAG_YYY)
// on in the status register.
func (c *CPU) flagsOn(mask uint8) {
	c.status = c.status | mask
}

// flagsOff forces the flags in mask (STATUS_FLAG_XXX|STATUS_FLAG_YYY)
// off in the status register.
func (c *CPU) flagsOff(mask uint8) {
	c.status = c.status &^ mask
}

// extraCycles returns 0 if addr1 and add2 are in the same page, 1
// otherwise. This is useful for instructions that take a variable
// number of cycles, depending on whether or not a page boundary is
// crossed.
func extraCycles(addr1, addr2 uint16) uint8 {
	if addr1&0xFF00 != addr2&0xFF00 {
		return 1
	}
	return 0
}

// branch will adjust the PC conditionally based on whether the mask
// bits are set and the resulting comparison is expected to be true or
// false. This allows you to check for STATUS_FLAG being set or
// cleared by: branch(STATUS_FLAG_OVERFLOW, false) -> branch
// when OVERFLOW not set.
func (c *CPU) branch(mask uint8, predicate bool) {
	if (c.status&mask > 0) == predicate {
		a := c.getOperandAddr(RELATIVE)
		// Page cross is measured against the address right after the
		// full 2-byte branch instruction, not the operand byte c.pc
		// still points at here.
		c.extra += extraCycles(a, c.pc+1)
		c.extra += 1 // successful branches take an extra cycle
		c.pc = a
	}
}

// addWithOverflow adds b to c.acc handling overflow, carry and ZN
// flag setting as appropriate.
func (c *CPU) addWithOverflow(b uint8) {
	res16 := uint16(c.acc) + uint16(b) + uint16(c.status&STATUS_FLAG_CARRY)
	res := uint8(res16)

	var mask uint8
	if (res16 & 0x100) != 0 {
		mask = mask | STATUS_FLAG_CARRY
	}
	if (c.acc^res)&(b^res)&0x80 != 0 {
		mask = mask | STATUS_FLAG_OVERFLOW
	}

	c.flagsOff(STATUS_FLAG_CARRY | STATUS_FLAG_OVERFLOW | STATUS_FLAG_NEGATIVE | STATUS_FLAG_ZERO)
	c.flagsOn(mask)

	c.acc = res
	c.setNegativeAndZeroFlags(c.acc)
}

// baseCMP does comparison operations on a and b, setting flags
// accordingly.
func (c *CPU) baseCMP(a, b uint8) {
	c.setNegativeAndZeroFlags(a - b)
	if a >= b {
		c.flagsOn(STATUS_FLAG_CARRY)
	}
}
