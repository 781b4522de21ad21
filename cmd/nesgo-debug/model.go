package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"github.com/8bitcore/nesgo/nes"
)

// maxRunSteps bounds a single "run" keypress so a runaway ROM (or a
// breakpoint that's never hit) can't hang the TUI forever.
const maxRunSteps = 2_000_000

type model struct {
	emu *nes.Emulator

	breakpoints map[uint16]struct{}
	lastErr     error
}

func newModel(emu *nes.Emulator) model {
	return model{emu: emu, breakpoints: map[uint16]struct{}{}}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ", "s":
		m.step()
	case "r":
		m.runToBreakpoint()
	case "b":
		m.breakpoints[m.emu.CPU().PC()] = struct{}{}
	case "c":
		m.breakpoints = map[uint16]struct{}{}
	case "e":
		m.emu.Reset()
		m.lastErr = nil
	}
	return m, nil
}

func (m *model) step() {
	m.emu.Tick()
	if h := m.emu.Halted(); h != nil {
		m.lastErr = h
	}
}

func (m *model) runToBreakpoint() {
	for i := 0; i < maxRunSteps; i++ {
		m.step()
		if m.lastErr != nil {
			return
		}
		if _, hit := m.breakpoints[m.emu.CPU().PC()]; hit {
			return
		}
	}
}

func (m model) memoryPage(start uint16) string {
	s := fmt.Sprintf("%04x | ", start)
	pc := m.emu.CPU().PC()
	for i := uint16(0); i < 16; i++ {
		addr := start + i
		b := m.emu.Read(addr)
		if addr == pc {
			s += fmt.Sprintf("[%02x] ", b)
		} else {
			s += fmt.Sprintf(" %02x  ", b)
		}
	}
	return s
}

func (m model) memoryView() string {
	pc := m.emu.CPU().PC()
	pageStart := pc &^ 0xF

	var start uint16
	if pageStart >= 0x20 {
		start = pageStart - 0x20
	}

	lines := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		lines = append(lines, m.memoryPage(start+uint16(i*16)))
	}
	return strings.Join(lines, "\n")
}

func (m model) status() string {
	c := m.emu.CPU()
	errLine := ""
	if m.lastErr != nil {
		errLine = fmt.Sprintf("\nhalted: %v", m.lastErr)
	}
	return fmt.Sprintf(
		"PC: %04x\nA:  %02x\nX:  %02x\nY:  %02x\nSP: %02x\nP:  %02x\ncycles: %d\nbreakpoints: %d%s",
		c.PC(), c.A(), c.X(), c.Y(), c.SP(), c.Status(), c.TotalCycles(), len(m.breakpoints), errLine,
	)
}

func (m model) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, m.memoryView(), "   ", m.status()),
		"",
		m.emu.CPU().String(),
		"",
		spew.Sdump(m.emu.CPU().CurrentInstruction()),
		"(s)tep  (r)un to breakpoint  (b)reak at PC  (c)lear breakpoints  r(e)set  (q)uit",
	)
}
