package devices

import (
	"log"

	"github.com/pkg/errors"
)

// Device represents a host peripheral: a display, an input source or
// anything else that needs to see the machine once per frame.
type Device interface {
	// ID yields the manufacturer and serial number for the device.
	ID() ID

	// Startup initializes internal resources.
	Startup() error

	// Shutdown cleans up internal resources.
	Shutdown() error

	// Update is called once per rendered frame, after the frame's
	// instructions have run. Input devices forward key state here and
	// output devices read the framebuffer.
	Update(Machine) error
}

// Resyncer is implemented by devices that remember which state they have
// already forwarded to the machine, such as keypad latches.
type Resyncer interface {
	// Resync forgets the forwarded state, so the next Update sends
	// everything again. Called after the machine was reset.
	Resync()
}

// Map contains a list of registered peripherals.
type Map []Device

// Connect adds the given device to the device map.
// Returns false if the device type is already present in the set.
func (dm *Map) Connect(dev Device) bool {
	if (*dm).Find(dev.ID()) > -1 {
		return false
	}

	*dm = append(*dm, dev)
	return true
}

// Startup initializes internal resources.
func (dm Map) Startup() error {
	var errorset ErrorSet

	for _, dev := range dm {
		log.Println(dev.ID(), "startup")
		if err := dev.Startup(); err != nil {
			errorset.Append(errors.Wrapf(err, "%s", dev.ID()))
		}
	}

	if errorset.Len() == 0 {
		return nil
	}

	return errorset
}

// Shutdown cleans up internal resources.
func (dm Map) Shutdown() error {
	var errorset ErrorSet

	for _, dev := range dm {
		log.Println(dev.ID(), "shutdown")
		if err := dev.Shutdown(); err != nil {
			errorset.Append(errors.Wrapf(err, "%s", dev.ID()))
		}
	}

	if errorset.Len() == 0 {
		return nil
	}

	return errorset
}

// Update hands the machine to every device in connection order.
func (dm Map) Update(m Machine) error {
	var errorset ErrorSet

	for _, dev := range dm {
		if err := dev.Update(m); err != nil {
			errorset.Append(errors.Wrapf(err, "%s", dev.ID()))
		}
	}

	if errorset.Len() == 0 {
		return nil
	}

	return errorset
}

// Resync tells every device that supports it that the machine was reset.
func (dm Map) Resync() {
	for _, dev := range dm {
		if r, ok := dev.(Resyncer); ok {
			r.Resync()
		}
	}
}

// Find returns the index for the device with the given id.
// Returns -1 if it can't be found.
func (dm Map) Find(id ID) int {
	for i, dev := range dm {
		if dev.ID() == id {
			return i
		}
	}
	return -1
}
