package main

import (
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/asm"
	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/devices/clock"
	"github.com/hexaflex/chip8/devices/cpu"
)

// CPUController controls the execution of a CPU and the devices attached to it.
type CPUController struct {
	cpu           *cpu.CPU
	clock         *clock.Device
	devices       devices.Map
	ticksPerFrame int
	start         time.Time
	cycleCount    uint64
	running       bool
}

// NewCPUController creates a new CPU controller. The clock decides how many
// frames to run; the devices are updated after every frame.
func NewCPUController(seed int64, ticksPerFrame int, clk *clock.Device, devs ...devices.Device) *CPUController {
	var rng *rand.Rand
	if seed != 0 {
		rng = rand.New(rand.NewSource(seed))
	}

	c := &CPUController{
		cpu:           cpu.New(rng),
		clock:         clk,
		ticksPerFrame: ticksPerFrame,
	}

	c.devices.Connect(clk)
	for _, dev := range devs {
		c.devices.Connect(dev)
	}

	return c
}

// Running returns true if the CPU is currently running.
func (c *CPUController) Running() bool {
	return c.running
}

// Frequency returns the current instruction rate in herz.
func (c *CPUController) Frequency() float64 {
	if !c.running {
		return 0
	}
	return float64(c.cycleCount) / time.Since(c.start).Seconds()
}

// ToggleRun starts or stops program execution.
func (c *CPUController) ToggleRun() {
	c.setRunning(!c.running)
}

// Start begins execution of the program.
func (c *CPUController) Start() {
	c.setRunning(true)
}

// Stop pauses execution of the program.
func (c *CPUController) Stop() {
	c.setRunning(false)
}

// Step performs a single execution step.
// Any error stops the program. io.EOF, meaning nothing is loaded, is not
// reported.
func (c *CPUController) Step() error {
	c.cycleCount++

	err := c.cpu.Tick()
	if err != nil {
		c.setRunning(false)
		if err != io.EOF {
			return err
		}
	}

	return nil
}

// Frame runs every frame the clock reports as elapsed and then updates the
// devices once. Each frame executes ticksPerFrame instructions followed by
// one timer decrement.
func (c *CPUController) Frame() error {
	for n := c.clock.Frames(); n > 0 && c.running; n-- {
		if err := c.runFrame(); err != nil {
			return err
		}
	}

	return c.devices.Update(c.cpu)
}

func (c *CPUController) runFrame() error {
	for i := 0; i < c.ticksPerFrame; i++ {
		if err := c.Step(); err != nil {
			return err
		}

		if !c.running {
			return nil
		}
	}

	c.cpu.TickTimers()
	return nil
}

// Load resets the cpu and installs the given program.
func (c *CPUController) Load(program []byte) error {
	c.cpu.Reset()
	c.devices.Resync()
	return c.cpu.Load(program)
}

// LoadFile reads a ROM from disk and loads it. Files with the .asm
// extension are assembled first.
func (c *CPUController) LoadFile(file string) error {
	var program []byte
	var err error

	if strings.EqualFold(filepath.Ext(file), ".asm") {
		program, err = asm.Build(file, nil)
	} else {
		program, err = os.ReadFile(file)
		err = errors.Wrapf(err, "failed to read program")
	}

	if err != nil {
		return err
	}

	return errors.Wrapf(c.Load(program), "%s", file)
}

// Machine returns the interpreter as seen by devices.
func (c *CPUController) Machine() devices.Machine {
	return c.cpu
}

// Startup initializes the connected devices.
func (c *CPUController) Startup() error {
	return c.devices.Startup()
}

// Shutdown disposes of device resources.
func (c *CPUController) Shutdown() error {
	return c.devices.Shutdown()
}

// setRunning determines if the CPU is running or is paused.
func (c *CPUController) setRunning(v bool) {
	c.running = v
	c.start = time.Now()
	c.cycleCount = 0
}
