package ppu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeCart struct {
	chr      [8192]uint8
	mirror   uint8
}

func (c *fakeCart) ChrRead(addr uint16) uint8     { return c.chr[addr] }
func (c *fakeCart) ChrWrite(addr uint16, v uint8) { c.chr[addr] = v }
func (c *fakeCart) MirroringMode() uint8          { return c.mirror }

func TestPaletteMirroring(t *testing.T) {
	p := New(&fakeCart{mirror: MirrorVertical})

	for _, addr := range []uint16{0x3F10, 0x3F14, 0x3F18, 0x3F1C} {
		p.WriteRegister(6, uint8(addr>>8))
		p.WriteRegister(6, uint8(addr))
		p.WriteRegister(7, 0x2A)

		p.WriteRegister(6, uint8((addr - 0x10) >> 8))
		p.WriteRegister(6, uint8(addr - 0x10))
		got := p.ReadRegister(7) // palette reads return immediately, unbuffered
		require.Equal(t, uint8(0x2A), got, "addr %#x should mirror %#x", addr, addr-0x10)
	}
}

func TestScrollAndAddrToggle(t *testing.T) {
	p := New(&fakeCart{})

	p.WriteRegister(5, 0x7D) // x scroll
	p.WriteRegister(5, 0x5E) // y scroll
	p.WriteRegister(6, 0x00)
	p.WriteRegister(6, 0x00)

	require.False(t, p.addrLatch)
	require.Equal(t, uint16(0), p.v.raw())
}

func TestAddrWriteLoadsV(t *testing.T) {
	p := New(&fakeCart{})

	p.WriteRegister(6, 0x3F) // hi, masked to 6 bits
	p.WriteRegister(6, 0x05) // lo

	require.Equal(t, uint16(0x3F05), p.v.raw())
	require.False(t, p.addrLatch)
}

func TestNametableVerticalMirroring(t *testing.T) {
	p := New(&fakeCart{mirror: MirrorVertical})

	p.writeNametable(0x2000, 0x11) // bank 0
	p.writeNametable(0x2400, 0x22) // bank 1

	require.Equal(t, uint8(0x11), p.readNametable(0x2800)) // bank 2 mirrors bank 0
	require.Equal(t, uint8(0x22), p.readNametable(0x2C00)) // bank 3 mirrors bank 1
}

func TestNametableHorizontalMirroring(t *testing.T) {
	p := New(&fakeCart{mirror: MirrorHorizontal})

	p.writeNametable(0x2000, 0x33) // bank 0
	p.writeNametable(0x2800, 0x44) // bank 2

	require.Equal(t, uint8(0x33), p.readNametable(0x2400)) // bank 1 mirrors bank 0
	require.Equal(t, uint8(0x44), p.readNametable(0x2C00)) // bank 3 mirrors bank 2
}

func TestNametableSingleScreenMirroring(t *testing.T) {
	p := New(&fakeCart{mirror: MirrorSingleLower})

	p.writeNametable(0x2C00, 0x55)

	for _, addr := range []uint16{0x2000, 0x2400, 0x2800, 0x2C00} {
		require.Equal(t, uint8(0x55), p.readNametable(addr))
	}
}

func TestHorizontalCopyAtDot257MovesTIntoV(t *testing.T) {
	p := New(&fakeCart{})
	p.mask = maskShowBg
	p.t.setCoarseX(0x11)
	p.t.setNametableX(1)

	p.scanline = 0
	p.cycle = 257
	p.Tick()

	require.Equal(t, uint16(0x11), p.v.coarseX())
	require.Equal(t, uint16(1), p.v.nametableX())
}

func TestVerticalCopyDuringPrerenderMovesTIntoV(t *testing.T) {
	p := New(&fakeCart{})
	p.mask = maskShowBg
	p.t.setCoarseY(0x15)
	p.t.setNametableY(1)
	p.t.setFineY(5)

	p.scanline = -1
	p.cycle = 280
	p.Tick()

	require.Equal(t, uint16(0x15), p.v.coarseY())
	require.Equal(t, uint16(1), p.v.nametableY())
	require.Equal(t, uint16(5), p.v.fineY())
}

func TestCoarseXIncrementsEvery8DotsWhileRenderingEnabled(t *testing.T) {
	p := New(&fakeCart{})
	p.mask = maskShowBg
	p.scanline = 0
	p.cycle = 8
	p.Tick()

	require.Equal(t, uint16(1), p.v.coarseX())
}

func TestCoarseXDoesNotAdvanceWhileRenderingDisabled(t *testing.T) {
	p := New(&fakeCart{})
	p.scanline = 0
	p.cycle = 8
	p.Tick()

	require.Equal(t, uint16(0), p.v.coarseX())
}

func TestSprite0Hit(t *testing.T) {
	p := New(&fakeCart{mirror: MirrorHorizontal})
	p.mask = maskShowBg | maskShowSprites | maskBgLeft | maskSpriteLeft

	// Background: fill nametable 0 with tile 1, pattern bit set, so every
	// background pixel is opaque.
	p.cart.(*fakeCart).chr[16] = 0xFF // tile 1 low plane, all bits set
	for i := 0; i < 0x3C0; i++ {
		p.writeNametable(0x2000+uint16(i), 1)
	}

	// Sprite 0: opaque pixel, placed to land on scanline 30.
	p.oam[0] = 29 // y (delayed by one)
	p.oam[1] = 1  // tile id (same opaque tile)
	p.oam[2] = 0  // attributes: front priority, no flip
	p.oam[3] = 0  // x

	p.renderScanline(30)

	require.NotZero(t, uint8(p.status)&statusSprite0Hit)
}
