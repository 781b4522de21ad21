// Command nesgo runs an iNES ROM in an ebiten window.
package main

import (
	"flag"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/8bitcore/nesgo/nes"
	"github.com/8bitcore/nesgo/nesrom"
	"github.com/8bitcore/nesgo/ppu"
)

var romFile = flag.String("nes_rom", "", "Path to NES ROM to run.")

// game adapts a nes.Emulator to the ebiten.Game interface. ebiten's
// callback is the only goroutine driving the emulator: Update samples
// input and then runs exactly one frame's worth of emulation, and Draw
// reads whatever the PPU's frame buffer holds once that frame returns.
type game struct {
	emu *nes.Emulator
}

func newGame(emu *nes.Emulator) *game {
	ebiten.SetWindowSize(ppu.ScreenWidth*2, ppu.ScreenHeight*2)
	ebiten.SetWindowTitle("nesgo")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return &game{emu: emu}
}

// Layout returns the NES's fixed resolution so ebiten scales the window
// rather than the framebuffer.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ppu.ScreenWidth, ppu.ScreenHeight
}

// Draw blits the PPU's current RGBA frame buffer onto screen.
func (g *game) Draw(screen *ebiten.Image) {
	px := g.emu.FramePixels()
	for y := 0; y < ppu.ScreenHeight; y++ {
		for x := 0; x < ppu.ScreenWidth; x++ {
			i := (y*ppu.ScreenWidth + x) * 4
			screen.Set(x, y, color.RGBA{px[i], px[i+1], px[i+2], px[i+3]})
		}
	}
}

// Update samples the keyboard onto the joypad, then runs the emulator
// forward by one frame.
func (g *game) Update() error {
	pollInput(g.emu.Press, g.emu.Release)
	g.emu.Update()
	return nil
}

func main() {
	flag.Parse()

	rom, err := nesrom.New(*romFile)
	if err != nil {
		log.Fatalf("invalid ROM: %v", err)
	}

	emu, err := nes.New(rom)
	if err != nil {
		log.Fatalf("couldn't build emulator: %v", err)
	}
	emu.Reset()

	if err := ebiten.RunGame(newGame(emu)); err != nil {
		log.Fatal(err)
	}
}
