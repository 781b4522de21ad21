package mos6502

import "math/bits"

func (c *CPU) ADC(mode uint8) {
	c.addWithOverflow(c.memRead(c.getOperandAddr(mode)))
}

func (c *CPU) AND(mode uint8) {
	c.acc = c.acc & c.memRead(c.getOperandAddr(mode))
	c.setNegativeAndZeroFlags(c.acc)
}

func (c *CPU) ASL(mode uint8) {
	var ov, nv uint8 // old value, new value
	switch mode {
	case ACCUMULATOR:
		ov = c.acc
		c.acc = c.acc << 1
		nv = c.acc
	default:
		addr := c.getOperandAddr(mode)
		ov = c.memRead(addr)
		c.memWrite(addr, ov) // dummy write: real hardware writes back the
		nv = ov << 1         // unmodified value before the shifted one
		c.memWrite(addr, nv)
	}

	c.flagsOff(STATUS_FLAG_CARRY | STATUS_FLAG_NEGATIVE | STATUS_FLAG_ZERO)
	c.setNegativeAndZeroFlags(nv)
	if ov&0x80 != 0 {
		c.flagsOn(STATUS_FLAG_CARRY)
	}
}

func (c *CPU) BCC(mode uint8) {
	c.branch(STATUS_FLAG_CARRY, false)
}

func (c *CPU) BCS(mode uint8) {
	c.branch(STATUS_FLAG_CARRY, true)
}

func (c *CPU) BEQ(mode uint8) {
	c.branch(STATUS_FLAG_ZERO, true)
}

func (c *CPU) BIT(mode uint8) {
	o := c.memRead(c.getOperandAddr(mode))

	c.flagsOff(STATUS_FLAG_NEGATIVE | STATUS_FLAG_OVERFLOW | STATUS_FLAG_ZERO)
	var flags uint8
	if (o & c.acc) == 0 {
		flags = flags | STATUS_FLAG_ZERO
	}
	flags = flags | (o & (STATUS_FLAG_NEGATIVE | STATUS_FLAG_OVERFLOW))

	c.flagsOn(flags)
}

func (c *CPU) BMI(mode uint8) {
	c.branch(STATUS_FLAG_NEGATIVE, true)
}

func (c *CPU) BNE(mode uint8) {
	c.branch(STATUS_FLAG_ZERO, false)
}

func (c *CPU) BPL(mode uint8) {
	c.branch(STATUS_FLAG_NEGATIVE, false)
}

func (c *CPU) BRK(mode uint8) {
	// BRK is 2 bytes; the pushed PC is one past the padding byte.
	c.pushAddress(c.pc + 1)
	c.pushStack(c.status | STATUS_FLAG_BREAK | UNUSED_STATUS_FLAG)
	c.flagsOn(STATUS_FLAG_INTERRUPT_DISABLE)
	c.pc = c.memRead16(INT_BRK)
}

func (c *CPU) BVC(mode uint8) {
	c.branch(STATUS_FLAG_OVERFLOW, false)
}

func (c *CPU) BVS(mode uint8) {
	c.branch(STATUS_FLAG_OVERFLOW, true)
}

func (c *CPU) CLC(mode uint8) {
	c.flagsOff(STATUS_FLAG_CARRY)
}

func (c *CPU) CLD(mode uint8) {
	c.flagsOff(STATUS_FLAG_DECIMAL)
}

func (c *CPU) CLI(mode uint8) {
	c.flagsOff(STATUS_FLAG_INTERRUPT_DISABLE)
}

func (c *CPU) CLV(mode uint8) {
	c.flagsOff(STATUS_FLAG_OVERFLOW)
}

func (c *CPU) CMP(mode uint8) {
	c.baseCMP(c.acc, c.memRead(c.getOperandAddr(mode)))
}

func (c *CPU) CPX(mode uint8) {
	c.baseCMP(c.x, c.memRead(c.getOperandAddr(mode)))
}

func (c *CPU) CPY(mode uint8) {
	c.baseCMP(c.y, c.memRead(c.getOperandAddr(mode)))
}

func (c *CPU) DEC(mode uint8) {
	a := c.getOperandAddr(mode)
	ov := c.memRead(a)
	c.memWrite(a, ov)
	nv := ov - 1
	c.memWrite(a, nv)
	c.setNegativeAndZeroFlags(nv)
}

func (c *CPU) DEX(mode uint8) {
	c.x -= 1
	c.setNegativeAndZeroFlags(c.x)
}

func (c *CPU) DEY(mode uint8) {
	c.y -= 1
	c.setNegativeAndZeroFlags(c.y)
}

func (c *CPU) EOR(mode uint8) {
	c.acc = c.acc ^ c.memRead(c.getOperandAddr(mode))
	c.setNegativeAndZeroFlags(c.acc)
}

func (c *CPU) INC(mode uint8) {
	a := c.getOperandAddr(mode)
	ov := c.memRead(a)
	c.memWrite(a, ov)
	nv := ov + 1
	c.memWrite(a, nv)
	c.setNegativeAndZeroFlags(nv)
}

func (c *CPU) INX(mode uint8) {
	c.x += 1
	c.setNegativeAndZeroFlags(c.x)
}

func (c *CPU) INY(mode uint8) {
	c.y += 1
	c.setNegativeAndZeroFlags(c.y)
}

func (c *CPU) JMP(mode uint8) {
	c.pc = c.getOperandAddr(mode)
}

func (c *CPU) JSR(mode uint8) {
	c.pushAddress(c.pc + 1) // this is the second byte of the JSR argument
	c.pc = c.getOperandAddr(mode)
}

func (c *CPU) LDA(mode uint8) {
	c.acc = c.memRead(c.getOperandAddr(mode))
	c.setNegativeAndZeroFlags(c.acc)
}

func (c *CPU) LDX(mode uint8) {
	c.x = c.memRead(c.getOperandAddr(mode))
	c.setNegativeAndZeroFlags(c.x)
}

func (c *CPU) LDY(mode uint8) {
	c.y = c.memRead(c.getOperandAddr(mode))
	c.setNegativeAndZeroFlags(c.y)
}

func (c *CPU) LSR(mode uint8) {
	var ov, nv uint8
	switch mode {
	case ACCUMULATOR:
		ov = c.acc
		c.acc = c.acc >> 1
		nv = c.acc
	default:
		addr := c.getOperandAddr(mode)
		ov = c.memRead(addr)
		c.memWrite(addr, ov)
		nv = ov >> 1
		c.memWrite(addr, nv)
	}

	c.flagsOff(STATUS_FLAG_CARRY | STATUS_FLAG_NEGATIVE | STATUS_FLAG_ZERO)
	c.setNegativeAndZeroFlags(nv)
	if ov&STATUS_FLAG_CARRY != 0 {
		c.flagsOn(STATUS_FLAG_CARRY)
	}
}

func (c *CPU) NOP(mode uint8) {
	return
}

func (c *CPU) ORA(mode uint8) {
	c.acc = c.acc | c.memRead(c.getOperandAddr(mode))
	c.setNegativeAndZeroFlags(c.acc)
}

func (c *CPU) PHA(mode uint8) {
	c.pushStack(c.acc)
}

func (c *CPU) PHP(mode uint8) {
	// 6502 always sets B and the unused bit when pushing status via PHP.
	c.pushStack(c.status | STATUS_FLAG_BREAK | UNUSED_STATUS_FLAG)
}

func (c *CPU) PLA(mode uint8) {
	c.acc = c.popStack()
	c.setNegativeAndZeroFlags(c.acc)
}

func (c *CPU) PLP(mode uint8) {
	c.status = (c.popStack() & 0xCF) | (c.status & 0x30)
}

func (c *CPU) ROL(mode uint8) {
	var ov, nv uint8 // old value, new value
	switch mode {
	case ACCUMULATOR:
		ov = c.acc
		c.acc = bits.RotateLeft8(ov, 1) | (c.status & STATUS_FLAG_CARRY)
		nv = c.acc
	default:
		addr := c.getOperandAddr(mode)
		ov = c.memRead(addr)
		c.memWrite(addr, ov)
		nv = bits.RotateLeft8(ov, 1) | (c.status & STATUS_FLAG_CARRY)
		c.memWrite(addr, nv)
	}

	c.flagsOff(STATUS_FLAG_CARRY | STATUS_FLAG_NEGATIVE | STATUS_FLAG_ZERO)
	c.setNegativeAndZeroFlags(nv)
	if ov&0x80 != 0 {
		c.flagsOn(STATUS_FLAG_CARRY)
	}
}

func (c *CPU) ROR(mode uint8) {
	var ov, nv uint8 // old value, new value
	switch mode {
	case ACCUMULATOR:
		ov = c.acc
		c.acc = bits.RotateLeft8(ov, -1) | ((c.status & STATUS_FLAG_CARRY) << 7)
		nv = c.acc
	default:
		addr := c.getOperandAddr(mode)
		ov = c.memRead(addr)
		c.memWrite(addr, ov)
		nv = bits.RotateLeft8(ov, -1) | ((c.status & STATUS_FLAG_CARRY) << 7)
		c.memWrite(addr, nv)
	}

	c.flagsOff(STATUS_FLAG_CARRY | STATUS_FLAG_NEGATIVE | STATUS_FLAG_ZERO)
	c.setNegativeAndZeroFlags(nv)
	if ov&STATUS_FLAG_CARRY != 0 { // was carry bit set in the old _value_?
		c.flagsOn(STATUS_FLAG_CARRY)
	}
}

func (c *CPU) RTI(mode uint8) {
	c.status = (c.popStack() & 0xCF) | (c.status & 0x30)
	c.pc = c.popAddress()
}

func (c *CPU) RTS(mode uint8) {
	c.pc = c.popAddress() + 1
}

func (c *CPU) SBC(mode uint8) {
	c.addWithOverflow(^c.memRead(c.getOperandAddr(mode)))
}

func (c *CPU) SEC(mode uint8) {
	c.flagsOn(STATUS_FLAG_CARRY)
}

func (c *CPU) SED(mode uint8) {
	c.flagsOn(STATUS_FLAG_DECIMAL)
}

func (c *CPU) SEI(mode uint8) {
	c.flagsOn(STATUS_FLAG_INTERRUPT_DISABLE)
}

func (c *CPU) STA(mode uint8) {
	c.memWrite(c.getOperandAddr(mode), c.acc)
}

func (c *CPU) STX(mode uint8) {
	c.memWrite(c.getOperandAddr(mode), c.x)
}

func (c *CPU) STY(mode uint8) {
	c.memWrite(c.getOperandAddr(mode), c.y)
}

func (c *CPU) TAX(mode uint8) {
	c.x = c.acc
	c.setNegativeAndZeroFlags(c.x)
}

func (c *CPU) TAY(mode uint8) {
	c.y = c.acc
	c.setNegativeAndZeroFlags(c.y)
}

func (c *CPU) TSX(mode uint8) {
	c.x = c.sp
	c.setNegativeAndZeroFlags(c.x)
}

func (c *CPU) TXA(mode uint8) {
	c.acc = c.x
	c.setNegativeAndZeroFlags(c.acc)
}

func (c *CPU) TXS(mode uint8) {
	c.sp = c.x
}

func (c *CPU) TYA(mode uint8) {
	c.acc = c.y
	c.setNegativeAndZeroFlags(c.acc)
}
