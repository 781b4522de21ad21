// Command nesgo-debug steps an iNES ROM through a bubbletea TUI: memory
// dump, register status, breakpoints, and single-step/run-to-breakpoint.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/8bitcore/nesgo/nes"
	"github.com/8bitcore/nesgo/nesrom"
)

var romFile = flag.String("nes_rom", "", "Path to NES ROM to debug.")

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

	finalModel, err := tea.NewProgram(newModel(emu)).Run()
	if err != nil {
		log.Fatal(err)
	}

	if m, ok := finalModel.(model); ok && m.lastErr != nil {
		fmt.Fprintln(os.Stderr, "halted:", m.lastErr)
	}
}
