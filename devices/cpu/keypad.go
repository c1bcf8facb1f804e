package cpu

import "github.com/pkg/errors"

// KeyCount is the number of keys on the hex keypad.
const KeyCount = 16

// Keypad holds the pressed state of keys 0-F.
type Keypad [KeyCount]bool

// Set presses or releases the given key.
func (k *Keypad) Set(index int, pressed bool) error {
	if index < 0 || index >= KeyCount {
		return errors.Wrapf(ErrKeyIndex, "key %d", index)
	}
	k[index] = pressed
	return nil
}

// Pressed returns the state of the given key.
func (k *Keypad) Pressed(index int) (bool, error) {
	if index < 0 || index >= KeyCount {
		return false, errors.Wrapf(ErrKeyIndex, "key %d", index)
	}
	return k[index], nil
}

// First returns the lowest pressed key.
// Returns false if no key is pressed.
func (k *Keypad) First() (int, bool) {
	for i, pressed := range k {
		if pressed {
			return i, true
		}
	}
	return 0, false
}
