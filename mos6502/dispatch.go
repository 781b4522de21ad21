package mos6502

// instrFunc is an instruction body: given the CPU and its resolved
// addressing mode, perform the operation. Using method values here lets
// the same table back both the interpreter's Step and any disassembly
// view built on top of it, instead of a big switch or reflection-based
// dispatch.
type instrFunc func(*CPU, uint8)

// opEntry is one row of the 256-entry opcode table.
type opEntry struct {
	name   string
	mode   uint8
	bytes  uint8
	cycles uint8

	// pageSensitive marks instructions whose listed cycle count gets a
	// conditional +1 when an indexed operand address crosses a page.
	// Store and read-modify-write instructions already bake that cost
	// into their fixed cycle count and leave this false.
	pageSensitive bool

	exec instrFunc
}

// Instruction describes one decoded opcode row for disassembly/debugger
// consumers; it carries no behavior, just the opEntry's public fields.
type Instruction struct {
	Name          string
	Mode          uint8
	Bytes         uint8
	Cycles        uint8
	PageSensitive bool
}

// CurrentInstruction decodes the opcode at the CPU's program counter
// without executing it.
func (c *CPU) CurrentInstruction() Instruction {
	op := opcodeTable[c.bus.Read(c.pc)]
	return Instruction{
		Name:          op.name,
		Mode:          op.mode,
		Bytes:         op.bytes,
		Cycles:        op.cycles,
		PageSensitive: op.pageSensitive,
	}
}

// opcodeTable is indexed directly by opcode byte. A zero-value entry
// (exec == nil) marks an opcode with no official instruction.
var opcodeTable [256]opEntry

func reg(b byte, name string, mode, bytes, cycles uint8, pageSensitive bool, exec instrFunc) {
	opcodeTable[b] = opEntry{name, mode, bytes, cycles, pageSensitive, exec}
}

func init() {
	reg(0x69, "ADC", IMMEDIATE, 2, 2, false, (*CPU).ADC)
	reg(0x65, "ADC", ZERO_PAGE, 2, 3, false, (*CPU).ADC)
	reg(0x75, "ADC", ZERO_PAGE_X, 2, 4, false, (*CPU).ADC)
	reg(0x6D, "ADC", ABSOLUTE, 3, 4, false, (*CPU).ADC)
	reg(0x7D, "ADC", ABSOLUTE_X, 3, 4, true, (*CPU).ADC)
	reg(0x79, "ADC", ABSOLUTE_Y, 3, 4, true, (*CPU).ADC)
	reg(0x61, "ADC", INDIRECT_X, 2, 6, false, (*CPU).ADC)
	reg(0x71, "ADC", INDIRECT_Y, 2, 5, true, (*CPU).ADC)

	reg(0x29, "AND", IMMEDIATE, 2, 2, false, (*CPU).AND)
	reg(0x25, "AND", ZERO_PAGE, 2, 3, false, (*CPU).AND)
	reg(0x35, "AND", ZERO_PAGE_X, 2, 4, false, (*CPU).AND)
	reg(0x2D, "AND", ABSOLUTE, 3, 4, false, (*CPU).AND)
	reg(0x3D, "AND", ABSOLUTE_X, 3, 4, true, (*CPU).AND)
	reg(0x39, "AND", ABSOLUTE_Y, 3, 4, true, (*CPU).AND)
	reg(0x21, "AND", INDIRECT_X, 2, 6, false, (*CPU).AND)
	reg(0x31, "AND", INDIRECT_Y, 2, 5, true, (*CPU).AND)

	reg(0x0A, "ASL", ACCUMULATOR, 1, 2, false, (*CPU).ASL)
	reg(0x06, "ASL", ZERO_PAGE, 2, 5, false, (*CPU).ASL)
	reg(0x16, "ASL", ZERO_PAGE_X, 2, 6, false, (*CPU).ASL)
	reg(0x0E, "ASL", ABSOLUTE, 3, 6, false, (*CPU).ASL)
	reg(0x1E, "ASL", ABSOLUTE_X, 3, 7, false, (*CPU).ASL)

	reg(0x90, "BCC", RELATIVE, 2, 2, false, (*CPU).BCC)
	reg(0xB0, "BCS", RELATIVE, 2, 2, false, (*CPU).BCS)
	reg(0xF0, "BEQ", RELATIVE, 2, 2, false, (*CPU).BEQ)
	reg(0x30, "BMI", RELATIVE, 2, 2, false, (*CPU).BMI)
	reg(0xD0, "BNE", RELATIVE, 2, 2, false, (*CPU).BNE)
	reg(0x10, "BPL", RELATIVE, 2, 2, false, (*CPU).BPL)
	reg(0x50, "BVC", RELATIVE, 2, 2, false, (*CPU).BVC)
	reg(0x70, "BVS", RELATIVE, 2, 2, false, (*CPU).BVS)

	reg(0x24, "BIT", ZERO_PAGE, 2, 3, false, (*CPU).BIT)
	reg(0x2C, "BIT", ABSOLUTE, 3, 4, false, (*CPU).BIT)

	reg(0x00, "BRK", IMPLICIT, 2, 7, false, (*CPU).BRK)

	reg(0x18, "CLC", IMPLICIT, 1, 2, false, (*CPU).CLC)
	reg(0xD8, "CLD", IMPLICIT, 1, 2, false, (*CPU).CLD)
	reg(0x58, "CLI", IMPLICIT, 1, 2, false, (*CPU).CLI)
	reg(0xB8, "CLV", IMPLICIT, 1, 2, false, (*CPU).CLV)

	reg(0xC9, "CMP", IMMEDIATE, 2, 2, false, (*CPU).CMP)
	reg(0xC5, "CMP", ZERO_PAGE, 2, 3, false, (*CPU).CMP)
	reg(0xD5, "CMP", ZERO_PAGE_X, 2, 4, false, (*CPU).CMP)
	reg(0xCD, "CMP", ABSOLUTE, 3, 4, false, (*CPU).CMP)
	reg(0xDD, "CMP", ABSOLUTE_X, 3, 4, true, (*CPU).CMP)
	reg(0xD9, "CMP", ABSOLUTE_Y, 3, 4, true, (*CPU).CMP)
	reg(0xC1, "CMP", INDIRECT_X, 2, 6, false, (*CPU).CMP)
	reg(0xD1, "CMP", INDIRECT_Y, 2, 5, true, (*CPU).CMP)

	reg(0xE0, "CPX", IMMEDIATE, 2, 2, false, (*CPU).CPX)
	reg(0xE4, "CPX", ZERO_PAGE, 2, 3, false, (*CPU).CPX)
	reg(0xEC, "CPX", ABSOLUTE, 3, 4, false, (*CPU).CPX)

	reg(0xC0, "CPY", IMMEDIATE, 2, 2, false, (*CPU).CPY)
	reg(0xC4, "CPY", ZERO_PAGE, 2, 3, false, (*CPU).CPY)
	reg(0xCC, "CPY", ABSOLUTE, 3, 4, false, (*CPU).CPY)

	reg(0xC6, "DEC", ZERO_PAGE, 2, 5, false, (*CPU).DEC)
	reg(0xD6, "DEC", ZERO_PAGE_X, 2, 6, false, (*CPU).DEC)
	reg(0xCE, "DEC", ABSOLUTE, 3, 6, false, (*CPU).DEC)
	reg(0xDE, "DEC", ABSOLUTE_X, 3, 7, false, (*CPU).DEC)

	reg(0xCA, "DEX", IMPLICIT, 1, 2, false, (*CPU).DEX)
	reg(0x88, "DEY", IMPLICIT, 1, 2, false, (*CPU).DEY)

	reg(0x49, "EOR", IMMEDIATE, 2, 2, false, (*CPU).EOR)
	reg(0x45, "EOR", ZERO_PAGE, 2, 3, false, (*CPU).EOR)
	reg(0x55, "EOR", ZERO_PAGE_X, 2, 4, false, (*CPU).EOR)
	reg(0x4D, "EOR", ABSOLUTE, 3, 4, false, (*CPU).EOR)
	reg(0x5D, "EOR", ABSOLUTE_X, 3, 4, true, (*CPU).EOR)
	reg(0x59, "EOR", ABSOLUTE_Y, 3, 4, true, (*CPU).EOR)
	reg(0x41, "EOR", INDIRECT_X, 2, 6, false, (*CPU).EOR)
	reg(0x51, "EOR", INDIRECT_Y, 2, 5, true, (*CPU).EOR)

	reg(0xE6, "INC", ZERO_PAGE, 2, 5, false, (*CPU).INC)
	reg(0xF6, "INC", ZERO_PAGE_X, 2, 6, false, (*CPU).INC)
	reg(0xEE, "INC", ABSOLUTE, 3, 6, false, (*CPU).INC)
	reg(0xFE, "INC", ABSOLUTE_X, 3, 7, false, (*CPU).INC)

	reg(0xE8, "INX", IMPLICIT, 1, 2, false, (*CPU).INX)
	reg(0xC8, "INY", IMPLICIT, 1, 2, false, (*CPU).INY)

	reg(0x4C, "JMP", ABSOLUTE, 3, 3, false, (*CPU).JMP)
	reg(0x6C, "JMP", INDIRECT, 3, 5, false, (*CPU).JMP)
	reg(0x20, "JSR", ABSOLUTE, 3, 6, false, (*CPU).JSR)

	reg(0xA9, "LDA", IMMEDIATE, 2, 2, false, (*CPU).LDA)
	reg(0xA5, "LDA", ZERO_PAGE, 2, 3, false, (*CPU).LDA)
	reg(0xB5, "LDA", ZERO_PAGE_X, 2, 4, false, (*CPU).LDA)
	reg(0xAD, "LDA", ABSOLUTE, 3, 4, false, (*CPU).LDA)
	reg(0xBD, "LDA", ABSOLUTE_X, 3, 4, true, (*CPU).LDA)
	reg(0xB9, "LDA", ABSOLUTE_Y, 3, 4, true, (*CPU).LDA)
	reg(0xA1, "LDA", INDIRECT_X, 2, 6, false, (*CPU).LDA)
	reg(0xB1, "LDA", INDIRECT_Y, 2, 5, true, (*CPU).LDA)

	reg(0xA2, "LDX", IMMEDIATE, 2, 2, false, (*CPU).LDX)
	reg(0xA6, "LDX", ZERO_PAGE, 2, 3, false, (*CPU).LDX)
	reg(0xB6, "LDX", ZERO_PAGE_Y, 2, 4, false, (*CPU).LDX)
	reg(0xAE, "LDX", ABSOLUTE, 3, 4, false, (*CPU).LDX)
	reg(0xBE, "LDX", ABSOLUTE_Y, 3, 4, true, (*CPU).LDX)

	reg(0xA0, "LDY", IMMEDIATE, 2, 2, false, (*CPU).LDY)
	reg(0xA4, "LDY", ZERO_PAGE, 2, 3, false, (*CPU).LDY)
	reg(0xB4, "LDY", ZERO_PAGE_X, 2, 4, false, (*CPU).LDY)
	reg(0xAC, "LDY", ABSOLUTE, 3, 4, false, (*CPU).LDY)
	reg(0xBC, "LDY", ABSOLUTE_X, 3, 4, true, (*CPU).LDY)

	reg(0x4A, "LSR", ACCUMULATOR, 1, 2, false, (*CPU).LSR)
	reg(0x46, "LSR", ZERO_PAGE, 2, 5, false, (*CPU).LSR)
	reg(0x56, "LSR", ZERO_PAGE_X, 2, 6, false, (*CPU).LSR)
	reg(0x4E, "LSR", ABSOLUTE, 3, 6, false, (*CPU).LSR)
	reg(0x5E, "LSR", ABSOLUTE_X, 3, 7, false, (*CPU).LSR)

	reg(0xEA, "NOP", IMPLICIT, 1, 2, false, (*CPU).NOP)

	reg(0x09, "ORA", IMMEDIATE, 2, 2, false, (*CPU).ORA)
	reg(0x05, "ORA", ZERO_PAGE, 2, 3, false, (*CPU).ORA)
	reg(0x15, "ORA", ZERO_PAGE_X, 2, 4, false, (*CPU).ORA)
	reg(0x0D, "ORA", ABSOLUTE, 3, 4, false, (*CPU).ORA)
	reg(0x1D, "ORA", ABSOLUTE_X, 3, 4, true, (*CPU).ORA)
	reg(0x19, "ORA", ABSOLUTE_Y, 3, 4, true, (*CPU).ORA)
	reg(0x01, "ORA", INDIRECT_X, 2, 6, false, (*CPU).ORA)
	reg(0x11, "ORA", INDIRECT_Y, 2, 5, true, (*CPU).ORA)

	reg(0x48, "PHA", IMPLICIT, 1, 3, false, (*CPU).PHA)
	reg(0x08, "PHP", IMPLICIT, 1, 3, false, (*CPU).PHP)
	reg(0x68, "PLA", IMPLICIT, 1, 4, false, (*CPU).PLA)
	reg(0x28, "PLP", IMPLICIT, 1, 4, false, (*CPU).PLP)

	reg(0x2A, "ROL", ACCUMULATOR, 1, 2, false, (*CPU).ROL)
	reg(0x26, "ROL", ZERO_PAGE, 2, 5, false, (*CPU).ROL)
	reg(0x36, "ROL", ZERO_PAGE_X, 2, 6, false, (*CPU).ROL)
	reg(0x2E, "ROL", ABSOLUTE, 3, 6, false, (*CPU).ROL)
	reg(0x3E, "ROL", ABSOLUTE_X, 3, 7, false, (*CPU).ROL)

	reg(0x6A, "ROR", ACCUMULATOR, 1, 2, false, (*CPU).ROR)
	reg(0x66, "ROR", ZERO_PAGE, 2, 5, false, (*CPU).ROR)
	reg(0x76, "ROR", ZERO_PAGE_X, 2, 6, false, (*CPU).ROR)
	reg(0x6E, "ROR", ABSOLUTE, 3, 6, false, (*CPU).ROR)
	reg(0x7E, "ROR", ABSOLUTE_X, 3, 7, false, (*CPU).ROR)

	reg(0x40, "RTI", IMPLICIT, 1, 6, false, (*CPU).RTI)
	reg(0x60, "RTS", IMPLICIT, 1, 6, false, (*CPU).RTS)

	reg(0xE9, "SBC", IMMEDIATE, 2, 2, false, (*CPU).SBC)
	reg(0xE5, "SBC", ZERO_PAGE, 2, 3, false, (*CPU).SBC)
	reg(0xF5, "SBC", ZERO_PAGE_X, 2, 4, false, (*CPU).SBC)
	reg(0xED, "SBC", ABSOLUTE, 3, 4, false, (*CPU).SBC)
	reg(0xFD, "SBC", ABSOLUTE_X, 3, 4, true, (*CPU).SBC)
	reg(0xF9, "SBC", ABSOLUTE_Y, 3, 4, true, (*CPU).SBC)
	reg(0xE1, "SBC", INDIRECT_X, 2, 6, false, (*CPU).SBC)
	reg(0xF1, "SBC", INDIRECT_Y, 2, 5, true, (*CPU).SBC)

	reg(0x38, "SEC", IMPLICIT, 1, 2, false, (*CPU).SEC)
	reg(0xF8, "SED", IMPLICIT, 1, 2, false, (*CPU).SED)
	reg(0x78, "SEI", IMPLICIT, 1, 2, false, (*CPU).SEI)

	reg(0x85, "STA", ZERO_PAGE, 2, 3, false, (*CPU).STA)
	reg(0x95, "STA", ZERO_PAGE_X, 2, 4, false, (*CPU).STA)
	reg(0x8D, "STA", ABSOLUTE, 3, 4, false, (*CPU).STA)
	reg(0x9D, "STA", ABSOLUTE_X, 3, 5, false, (*CPU).STA)
	reg(0x99, "STA", ABSOLUTE_Y, 3, 5, false, (*CPU).STA)
	reg(0x81, "STA", INDIRECT_X, 2, 6, false, (*CPU).STA)
	reg(0x91, "STA", INDIRECT_Y, 2, 6, false, (*CPU).STA)

	reg(0x86, "STX", ZERO_PAGE, 2, 3, false, (*CPU).STX)
	reg(0x96, "STX", ZERO_PAGE_Y, 2, 4, false, (*CPU).STX)
	reg(0x8E, "STX", ABSOLUTE, 3, 4, false, (*CPU).STX)

	reg(0x84, "STY", ZERO_PAGE, 2, 3, false, (*CPU).STY)
	reg(0x94, "STY", ZERO_PAGE_X, 2, 4, false, (*CPU).STY)
	reg(0x8C, "STY", ABSOLUTE, 3, 4, false, (*CPU).STY)

	reg(0xAA, "TAX", IMPLICIT, 1, 2, false, (*CPU).TAX)
	reg(0xA8, "TAY", IMPLICIT, 1, 2, false, (*CPU).TAY)
	reg(0xBA, "TSX", IMPLICIT, 1, 2, false, (*CPU).TSX)
	reg(0x8A, "TXA", IMPLICIT, 1, 2, false, (*CPU).TXA)
	reg(0x9A, "TXS", IMPLICIT, 1, 2, false, (*CPU).TXS)
	reg(0x98, "TYA", IMPLICIT, 1, 2, false, (*CPU).TYA)
}
