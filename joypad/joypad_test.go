package joypad

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStrobedReadAlwaysReportsButtonA(t *testing.T) {
	j := New()
	j.Press(ButtonA)
	j.Write(1) // strobe on

	for i := 0; i < 3; i++ {
		require.Equal(t, uint8(1), j.Read())
	}
}

func TestReleasedStrobeShiftsOutAllButtonsInOrder(t *testing.T) {
	j := New()
	j.Press(ButtonA)
	j.Press(ButtonStart)
	j.Write(1)
	j.Write(0) // falling edge

	want := []uint8{1, 0, 0, 1, 0, 0, 0, 0}
	for i, w := range want {
		require.Equal(t, w, j.Read(), "bit %d", i)
	}
}

func TestReadsAfterEighthReturnOne(t *testing.T) {
	j := New()
	j.Write(1)
	j.Write(0)

	for i := 0; i < 8; i++ {
		j.Read()
	}
	require.Equal(t, uint8(1), j.Read())
	require.Equal(t, uint8(1), j.Read())
}

func TestStrobeResetsShiftPosition(t *testing.T) {
	j := New()
	j.Press(ButtonB)
	j.Write(1)
	j.Write(0)

	j.Read() // consume button A's bit

	j.Write(1) // re-strobe mid-sequence
	j.Write(0)

	require.Equal(t, uint8(0), j.Read()) // back to button A
}

func TestReleaseClearsButton(t *testing.T) {
	j := New()
	j.Press(ButtonA)
	j.Release(ButtonA)
	j.Write(1)

	require.Equal(t, uint8(0), j.Read())
}
