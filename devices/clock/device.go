// Package clock implements the 60Hz frame clock that paces instruction
// execution and timer decrements.
package clock

import (
	"time"

	"github.com/hexaflex/chip8/devices"
)

// Rate is the frequency at which the delay and sound timers count down.
const Rate = 60

// MaxFrames caps the number of frames reported by a single call to Frames,
// so a host that stalls does not try to catch up all at once.
const MaxFrames = 4

// Device defines all internal doodads for the clock.
type Device struct {
	now      func() time.Time // Time source.
	interval time.Duration    // Length of one frame.
	last     time.Time        // Start of the current, incomplete frame.
}

var _ devices.Device = &Device{}

// New creates a new clock running at Rate.
func New() *Device {
	return NewWithSource(time.Now)
}

// NewWithSource creates a new clock reading the time from now.
func NewWithSource(now func() time.Time) *Device {
	return &Device{
		now:      now,
		interval: time.Second / Rate,
	}
}

// ID returns the device id.
func (d *Device) ID() devices.ID {
	return devices.NewID(devices.Vendor, 0x0001)
}

// Startup starts counting frames from the current time.
func (d *Device) Startup() error {
	d.last = d.now()
	return nil
}

// Shutdown clears up device resources.
func (d *Device) Shutdown() error {
	d.last = time.Time{}
	return nil
}

// Update does nothing; the clock is polled through Frames.
func (d *Device) Update(devices.Machine) error {
	return nil
}

// Interval returns the length of one frame.
func (d *Device) Interval() time.Duration {
	return d.interval
}

// Frames returns the number of whole frames that elapsed since the previous
// call, at most MaxFrames. Frames dropped by the cap are discarded.
func (d *Device) Frames() int {
	now := d.now()

	if d.last.IsZero() {
		d.last = now
		return 0
	}

	n := 0
	for now.Sub(d.last) >= d.interval {
		d.last = d.last.Add(d.interval)
		n++

		if n == MaxFrames {
			d.last = now
			break
		}
	}

	return n
}
