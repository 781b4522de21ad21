package main

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/8bitcore/nesgo/joypad"
)

// buttonKeys pairs each joypad button with the key that drives it, in the
// shift-register order the joypad package clocks them out in.
var buttonKeys = []struct {
	button uint8
	key    ebiten.Key
}{
	{joypad.ButtonA, ebiten.KeyA},
	{joypad.ButtonB, ebiten.KeyB},
	{joypad.ButtonSelect, ebiten.KeySpace},
	{joypad.ButtonStart, ebiten.KeyEnter},
	{joypad.ButtonUp, ebiten.KeyUp},
	{joypad.ButtonDown, ebiten.KeyDown},
	{joypad.ButtonLeft, ebiten.KeyLeft},
	{joypad.ButtonRight, ebiten.KeyRight},
}

// pollInput latches the current keyboard state onto the joypad.
func pollInput(press func(button uint8), release func(button uint8)) {
	for _, bk := range buttonKeys {
		if ebiten.IsKeyPressed(bk.key) {
			press(bk.button)
		} else {
			release(bk.button)
		}
	}
}
