// Package nes wires a CPU, PPU, DMA unit, joypad and a cartridge together
// into a runnable console and drives the 1:3 CPU:PPU clock.
// https://www.nesdev.org/wiki/Cycle_reference_chart
package nes

import (
	"github.com/8bitcore/nesgo/bus"
	"github.com/8bitcore/nesgo/dma"
	"github.com/8bitcore/nesgo/joypad"
	"github.com/8bitcore/nesgo/mappers"
	"github.com/8bitcore/nesgo/mos6502"
	"github.com/8bitcore/nesgo/nesrom"
	"github.com/8bitcore/nesgo/ppu"
)

// CyclesPerFrame is how many CPU cycles it takes to render one NTSC frame.
const CyclesPerFrame = 29781

// Emulator owns every console component and the single clock that drives
// them. Each component is created once in New and handed its collaborators
// there (the bus gets the PPU, cartridge and joypad; the DMA unit gets the
// bus and PPU), so those pointers are shared; no component refers back to
// the Emulator.
type Emulator struct {
	cart mappers.Mapper
	bus  *bus.Bus
	cpu  *mos6502.CPU
	ppu  *ppu.PPU
	dma  *dma.DMA
	pad  *joypad.Joypad

	prevTotalCycles uint64
}

// New constructs an Emulator around rom. The ROM's mapper number selects
// which mappers.Mapper implementation backs PRG/CHR access.
func New(rom *nesrom.ROM) (*Emulator, error) {
	cart, err := mappers.Get(rom)
	if err != nil {
		return nil, err
	}

	p := ppu.New(cart)
	pad := joypad.New()
	b := bus.New(p, cart, pad)
	c := mos6502.New(b)
	d := dma.New(b, p)

	return &Emulator{
		cart: cart,
		bus:  b,
		cpu:  c,
		ppu:  p,
		dma:  d,
		pad:  pad,
	}, nil
}

// Reset returns the cartridge mapper, CPU and PPU to their power-on state.
// Work RAM, the joypad and any DMA transfer state are left as they are.
func (e *Emulator) Reset() {
	e.cart.Reset()
	e.cpu.Reset()
	e.ppu.Reset()
	e.prevTotalCycles = 0
}

// Tick advances the console by one CPU instruction (or one DMA step, while
// a transfer is in progress) and returns how many CPU cycles that step
// consumed. The PPU is stepped three times per CPU cycle consumed, NMI
// delivery is checked first, and a pending OAM DMA request set by the
// previous CPU instruction is started only once the CPU is done with it.
func (e *Emulator) Tick() uint64 {
	if e.cpu.Halted() != nil {
		return 0
	}

	if e.ppu.PollNMI() {
		e.cpu.NMI()
	}

	if e.dma.Active {
		e.cpu.StealCycles(uint64(e.dma.Tick()))
	} else {
		e.cpu.Step()

		if e.bus.InitDMA {
			e.dma.Start(e.bus.DMASource, e.cpu.TotalCycles()%2 == 1)
			e.bus.InitDMA = false
		}
	}

	total := e.cpu.TotalCycles()
	cycles := total - e.prevTotalCycles
	e.prevTotalCycles = total

	for i := uint64(0); i < cycles; i++ {
		e.ppu.Tick()
		e.ppu.Tick()
		e.ppu.Tick()
	}

	return cycles
}

// Update runs Tick until at least one frame's worth of CPU cycles has
// elapsed.
func (e *Emulator) Update() {
	var total uint64
	for total < CyclesPerFrame {
		n := e.Tick()
		if n == 0 && e.cpu.Halted() != nil {
			return
		}
		total += n
	}
}

// FramePixels returns the PPU's current RGBA frame buffer.
func (e *Emulator) FramePixels() []uint8 {
	return e.ppu.FramePixels()
}

// Press latches button as held.
func (e *Emulator) Press(button uint8) {
	e.pad.Press(button)
}

// Release latches button as not held.
func (e *Emulator) Release(button uint8) {
	e.pad.Release(button)
}

// Halted reports the CPU's halt error, if the last Step landed on an
// undefined opcode.
func (e *Emulator) Halted() *mos6502.HaltError {
	return e.cpu.Halted()
}

// Read exposes CPU address space for debuggers and other inspection
// tools; the emulation loop itself never needs it.
func (e *Emulator) Read(addr uint16) uint8 {
	return e.bus.Read(addr)
}

// CPU exposes the underlying CPU for debuggers that need its registers
// and disassembly view.
func (e *Emulator) CPU() *mos6502.CPU {
	return e.cpu
}
