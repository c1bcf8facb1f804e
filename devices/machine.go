package devices

import "github.com/hexaflex/chip8/devices/cpu"

// Machine is the view of the interpreter a device is given on each update.
// *cpu.CPU satisfies it.
type Machine interface {
	// Display returns a copy of the current framebuffer.
	Display() cpu.Framebuffer

	// Keypress sets or clears the latch for key 0-F.
	Keypress(index int, pressed bool) error

	// SoundActive returns true while the tone should sound.
	SoundActive() bool
}

var _ Machine = &cpu.CPU{}
