package ppu

// loopy stores one of the v/t scroll registers; the fine-X scroll is kept
// separately on the PPU. Layout:
// yyy NN YYYYY XXXXX
// ||| || ||||| +++++-- coarse X scroll
// ||| || +++++-------- coarse Y scroll
// ||| ++-------------- nametable select
// +++----------------- fine Y scroll
type loopy struct {
	data uint16 // only 15 bits significant
}

func (l *loopy) raw() uint16 { return l.data & 0x7FFF }

func (l *loopy) setRaw(n uint16) { l.data = n & 0x7FFF }

func (l *loopy) coarseX() uint16 {
	return l.data & 0x001F
}

func (l *loopy) setCoarseX(n uint16) {
	l.data = (l.data & 0xFFE0) | (n & 0x001F)
}

func (l *loopy) incrementCoarseX() {
	if l.coarseX() == 31 {
		l.setCoarseX(0)
		l.toggleNametableX()
		return
	}
	l.setCoarseX(l.coarseX() + 1)
}

func (l *loopy) coarseY() uint16 {
	return (l.data & 0x03E0) >> 5
}

func (l *loopy) setCoarseY(n uint16) {
	l.data = (l.data & 0xFC1F) | ((n & 0x1F) << 5)
}

func (l *loopy) incrementCoarseY() {
	l.setCoarseY(l.coarseY() + 1)
}

func (l *loopy) nametableX() uint16 {
	return (l.data & 0x0400) >> 10
}

func (l *loopy) setNametableX(n uint16) {
	l.data = (l.data &^ 0x0400) | ((n & 1) << 10)
}

func (l *loopy) toggleNametableX() {
	l.data ^= 0x0400
}

func (l *loopy) nametableY() uint16 {
	return (l.data & 0x0800) >> 11
}

func (l *loopy) setNametableY(n uint16) {
	l.data = (l.data &^ 0x0800) | ((n & 1) << 11)
}

func (l *loopy) toggleNametableY() {
	l.data ^= 0x0800
}

func (l *loopy) fineY() uint16 {
	return (l.data & 0x7000) >> 12
}

func (l *loopy) setFineY(n uint16) {
	l.data = (l.data & 0x0FFF) | ((n & 0x7) << 12)
}

func (l *loopy) incrementFineY() {
	l.setFineY(l.fineY() + 1)
}

// incrementY advances fine Y, carrying into coarse Y (and, past the last
// row of name table tiles, into a name table swap) once per scanline while
// rendering is enabled. Coarse Y 31 indexes into attribute-table rows
// sometimes written there by editors and wraps without the swap.
func (l *loopy) incrementY() {
	if l.fineY() < 7 {
		l.incrementFineY()
		return
	}
	l.setFineY(0)
	switch l.coarseY() {
	case 29:
		l.setCoarseY(0)
		l.toggleNametableY()
	case 31:
		l.setCoarseY(0)
	default:
		l.incrementCoarseY()
	}
}
