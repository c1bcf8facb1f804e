// Package cpu implements the CHIP-8 interpreter.
package cpu

import (
	"io"
	"math/rand"
	"time"

	"github.com/hexaflex/chip8/arch"
)

// CPU implements the runtime. It owns all machine state and is not safe
// for concurrent use.
type CPU struct {
	memory  Memory                   // System memory.
	stack   Stack                    // Return addresses.
	display Framebuffer              // Output bitmap.
	timers  Timers                   // Delay and sound timers.
	keys    Keypad                   // Input latches.
	v       [arch.RegisterCount]byte // General purpose registers.
	i       uint16                   // Address register.
	pc      uint16                   // Program counter.
	rng     *rand.Rand               // Source for RND.
	loaded  bool                     // Is there a program loaded?
}

// New creates a new CPU in its initial state.
// rng is the source for random numbers; when nil, a source seeded from the
// current time is used.
func New(rng *rand.Rand) *CPU {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	c := &CPU{
		memory: NewMemory(),
		rng:    rng,
	}

	c.Reset()
	return c
}

// Reset returns the machine to its initial state and unloads the program.
// The random source is kept.
func (c *CPU) Reset() {
	c.memory.reset()
	c.stack = Stack{}
	c.display.Clear()
	c.timers = Timers{}
	c.keys = Keypad{}
	c.v = [arch.RegisterCount]byte{}
	c.i = 0
	c.pc = ProgramStart
	c.loaded = false
}

// Load installs the given program at ProgramStart.
func (c *CPU) Load(program []byte) error {
	if err := c.memory.Load(program); err != nil {
		return err
	}
	c.loaded = true
	return nil
}

// Tick fetches, decodes and executes a single instruction.
// Returns io.EOF if no program is loaded. Execution failures are
// returned as *Error.
func (c *CPU) Tick() error {
	if !c.loaded {
		return io.EOF
	}

	ip := c.pc

	word, err := c.memory.U16(ip)
	if err != nil {
		return NewError(ip, arch.Instruction{}, err)
	}

	c.pc += 2

	instr, ok := arch.Decode(word)
	if !ok {
		return NewError(ip, instr, ErrUnknownOpcode)
	}

	if err := c.Exec(instr); err != nil {
		return NewError(ip, instr, err)
	}

	return nil
}

// TickTimers decrements the delay and sound timers once.
// The host is expected to call this at 60Hz.
func (c *CPU) TickTimers() {
	c.timers.Tick()
}

// Keypress sets or clears the latch for the given key.
func (c *CPU) Keypress(index int, pressed bool) error {
	return c.keys.Set(index, pressed)
}

// Display returns a copy of the current framebuffer.
func (c *CPU) Display() Framebuffer {
	return c.display
}

// SoundActive returns true while the sound timer is non-zero.
func (c *CPU) SoundActive() bool {
	return c.timers.Sound > 0
}
