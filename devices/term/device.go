// Package term implements a terminal frontend: it draws the framebuffer
// with block characters and turns keystrokes into keypad presses.
package term

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/devices/cpu"
)

// Device defines all internal doodads for the terminal.
type Device struct {
	in      io.Reader
	out     io.Writer
	now     func() time.Time
	input   chan byte
	restore func() error
	keys    latches
	sent    [cpu.KeyCount]bool
	frame   cpu.Framebuffer
	sound   bool
	drawn   bool
	quit    bool
}

var _ devices.Device = &Device{}

// New creates a terminal device on the process's standard streams.
func New() *Device {
	return NewWithStreams(os.Stdin, os.Stdout, time.Now)
}

// NewWithStreams creates a terminal device reading keystrokes from in and
// drawing to out. If in is a terminal it is switched to raw mode while
// the device runs.
func NewWithStreams(in io.Reader, out io.Writer, now func() time.Time) *Device {
	return &Device{
		in:  in,
		out: out,
		now: now,
	}
}

// ID returns the device id.
func (d *Device) ID() devices.ID {
	return devices.NewID(devices.Vendor, 0x0004)
}

// Startup prepares the terminal and starts reading input.
func (d *Device) Startup() error {
	if f, ok := d.in.(*os.File); ok {
		restore, err := makeRaw(int(f.Fd()))
		if err != nil {
			log.Println(d.ID(), "input is not a terminal:", err)
		} else {
			d.restore = restore
		}
	}

	if _, err := io.WriteString(d.out, clearScreen+hideCursor); err != nil {
		return errors.Wrapf(err, "failed to prepare terminal")
	}

	d.quit = false
	d.drawn = false

	// The reader outlives Shutdown; a restarted device keeps using it.
	if d.input == nil {
		d.input = make(chan byte, 64)
		go d.read(d.input)
	}

	return nil
}

// Shutdown restores the terminal to its original state.
func (d *Device) Shutdown() error {
	var err error

	if d.restore != nil {
		err = d.restore()
		d.restore = nil
	}

	if _, werr := io.WriteString(d.out, showCursor+"\r\n"); err == nil {
		err = werr
	}

	return err
}

// Resync forgets which keys were forwarded and what was drawn.
func (d *Device) Resync() {
	d.sent = [cpu.KeyCount]bool{}
	d.drawn = false
}

// Quit reports whether the user asked to leave, or input ended.
func (d *Device) Quit() bool {
	return d.quit
}

// Update consumes pending keystrokes, forwards keypad changes to m and
// redraws the screen when its contents changed.
func (d *Device) Update(m devices.Machine) error {
	now := d.now()
	d.drain(now)
	d.keys.expire(now)

	for i, pressed := range d.keys.pressed {
		if pressed == d.sent[i] {
			continue
		}

		if err := m.Keypress(i, pressed); err != nil {
			return err
		}

		d.sent[i] = pressed
	}

	frame := m.Display()
	sound := m.SoundActive()
	if d.drawn && frame == d.frame && sound == d.sound {
		return nil
	}

	d.frame = frame
	d.sound = sound
	d.drawn = true
	return Render(d.out, &d.frame, d.sound)
}

// drain handles every keystroke received since the last call.
func (d *Device) drain(now time.Time) {
	for {
		select {
		case b, ok := <-d.input:
			if !ok {
				d.quit = true
				return
			}

			if b == keyInterrupt {
				d.quit = true
				continue
			}

			if index, ok := KeyIndex(b); ok {
				d.keys.press(index, now)
			}
		default:
			return
		}
	}
}

// read forwards input bytes to c until the reader fails.
func (d *Device) read(c chan<- byte) {
	defer close(c)

	var buf [16]byte
	for {
		n, err := d.in.Read(buf[:])
		for _, b := range buf[:n] {
			c <- b
		}

		if err != nil {
			if err != io.EOF {
				log.Println(d.ID(), err)
			}
			return
		}
	}
}
