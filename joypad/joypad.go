// Package joypad implements the standard NES controller's shift-register
// protocol, independent of any input backend.
// https://www.nesdev.org/wiki/Standard_controller
package joypad

// Button indices match the order the controller shifts them out in.
const (
	ButtonA = iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

// Joypad holds the latched button snapshot and the strobe/shift state
// $4016 reads and writes drive.
type Joypad struct {
	state       uint8
	buttonIndex uint8
	strobe      bool
}

// New returns a Joypad with no buttons pressed.
func New() *Joypad {
	return &Joypad{}
}

// Read returns the next bit in the shift sequence. While strobed, every
// read resamples button A; once the strobe is released, successive reads
// clock out A, B, Select, Start, Up, Down, Left, Right in order, then
// report 1 forever until the next strobe cycle.
func (j *Joypad) Read() uint8 {
	if j.strobe {
		return bit(j.state, ButtonA)
	}

	if j.buttonIndex > ButtonRight {
		return 1
	}

	v := bit(j.state, j.buttonIndex)
	j.buttonIndex++
	return v
}

// Write sets the strobe latch from bit 0 of data. Strobing resets the
// shift position so the next released-strobe read starts at button A.
func (j *Joypad) Write(data uint8) {
	j.strobe = data&1 == 1
	if j.strobe {
		j.buttonIndex = 0
	}
}

// Press latches button as held.
func (j *Joypad) Press(button uint8) {
	j.state |= 1 << button
}

// Release latches button as not held.
func (j *Joypad) Release(button uint8) {
	j.state &^= 1 << button
}

func bit(state, index uint8) uint8 {
	return (state >> index) & 1
}
