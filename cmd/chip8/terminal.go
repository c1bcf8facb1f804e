package main

import (
	"log"
	"time"

	"github.com/hexaflex/chip8/devices/clock"
	"github.com/hexaflex/chip8/devices/term"
)

// Terminal runs a program without a window, drawing into the terminal.
type Terminal struct {
	config *Config
	cpu    *CPUController
	screen *term.Device
	clock  *clock.Device
}

// NewTerminal creates a new terminal frontend using the given configuration.
func NewTerminal(config *Config) *Terminal {
	var t Terminal
	t.config = config
	t.screen = term.New()
	t.clock = clock.New()
	t.cpu = NewCPUController(config.Seed, config.TicksPerFrame, t.clock, t.screen)
	return &t
}

// Run loads the program and runs it until the user presses Ctrl+C or the
// program fails.
func (t *Terminal) Run() error {
	if err := t.cpu.LoadFile(t.config.Program); err != nil {
		return err
	}

	if err := t.cpu.Startup(); err != nil {
		return err
	}

	t.cpu.Start()

	var err error
	for !t.screen.Quit() && t.cpu.Running() {
		if err = t.cpu.Frame(); err != nil {
			break
		}

		time.Sleep(t.clock.Interval() / 2)
	}

	if serr := t.cpu.Shutdown(); serr != nil {
		log.Println(serr)
	}

	return err
}
