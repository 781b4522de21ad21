package dma

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeBus struct{ data [0x10000]uint8 }

func (b *fakeBus) Read(addr uint16) uint8 { return b.data[addr] }

type fakeOAM struct{ written []uint8 }

func (o *fakeOAM) DMAWriteOAM(val uint8) { o.written = append(o.written, val) }

func TestOddAlignmentCostsExtraCycle(t *testing.T) {
	bus := &fakeBus{}
	oam := &fakeOAM{}
	d := New(bus, oam)

	d.Start(0x02, true)

	var total int
	for d.Active {
		total += int(d.Tick())
	}
	require.Equal(t, 514, total)
}

func TestEvenAlignmentCostsOneIdleCycle(t *testing.T) {
	bus := &fakeBus{}
	oam := &fakeOAM{}
	d := New(bus, oam)

	d.Start(0x02, false)

	var total int
	for d.Active {
		total += int(d.Tick())
	}
	require.Equal(t, 513, total)
}

func TestCopiesSourcePageIntoOAMInOrder(t *testing.T) {
	bus := &fakeBus{}
	for i := 0; i < 256; i++ {
		bus.data[0x0200+i] = uint8(i)
	}
	oam := &fakeOAM{}
	d := New(bus, oam)

	d.Start(0x02, false)
	for d.Active {
		d.Tick()
	}

	require.Len(t, oam.written, 256)
	for i, v := range oam.written {
		require.Equal(t, uint8(i), v)
	}
}
