// Package hexpad implements the 16-key hexadecimal keypad on top of the
// host keyboard and an optional gamepad.
//
// The keyboard layout places the keypad on the left side of a QWERTY
// keyboard:
//
//	1 2 3 4        1 2 3 C
//	Q W E R   ->   4 5 6 D
//	A S D F        7 8 9 E
//	Z X C V        A 0 B F
//
// A gamepad's directional pad maps to keys 2, 4, 6 and 8, which most
// programs use for movement. Button A maps to 5 and button B to 0.
package hexpad

import (
	"log"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/devices/cpu"
)

var keyboard = map[glfw.Key]int{
	glfw.Key1: 0x1, glfw.Key2: 0x2, glfw.Key3: 0x3, glfw.Key4: 0xc,
	glfw.KeyQ: 0x4, glfw.KeyW: 0x5, glfw.KeyE: 0x6, glfw.KeyR: 0xd,
	glfw.KeyA: 0x7, glfw.KeyS: 0x8, glfw.KeyD: 0x9, glfw.KeyF: 0xe,
	glfw.KeyZ: 0xa, glfw.KeyX: 0x0, glfw.KeyC: 0xb, glfw.KeyV: 0xf,
}

var gamepad = map[glfw.GamepadButton]int{
	glfw.ButtonDpadUp:    0x2,
	glfw.ButtonDpadLeft:  0x4,
	glfw.ButtonDpadRight: 0x6,
	glfw.ButtonDpadDown:  0x8,
	glfw.ButtonA:         0x5,
	glfw.ButtonB:         0x0,
}

// KeyIndex returns the keypad index bound to the given keyboard key.
func KeyIndex(key glfw.Key) (int, bool) {
	index, ok := keyboard[key]
	return index, ok
}

// ButtonIndex returns the keypad index bound to the given gamepad button.
func ButtonIndex(btn glfw.GamepadButton) (int, bool) {
	index, ok := gamepad[btn]
	return index, ok
}

// Device defines all internal doodads for the keypad.
type Device struct {
	joy         glfw.Joystick
	keys        [cpu.KeyCount]bool // Keyboard state.
	buttons     [cpu.KeyCount]bool // Gamepad state.
	sent        [cpu.KeyCount]bool // State last forwarded to the machine.
	initialized bool               // Is a gamepad connected?
}

var _ devices.Device = &Device{}

// New creates a new device.
func New() *Device {
	return &Device{}
}

// ID returns the device id.
func (d *Device) ID() devices.ID {
	return devices.NewID(devices.Vendor, 0x0003)
}

// Startup initializes device resources.
// It detects any connected gamepad.
func (d *Device) Startup() error {
	glfw.SetJoystickCallback(d.configure)

	for joy := glfw.Joystick1; joy <= glfw.JoystickLast; joy++ {
		if joy.Present() && joy.IsGamepad() {
			d.configure(joy, glfw.Connected)
			break
		}
	}

	return nil
}

// Shutdown clears up device resources.
func (d *Device) Shutdown() error {
	glfw.SetJoystickCallback(nil)
	d.initialized = false
	d.Reset()
	return nil
}

// Reset releases all keys.
func (d *Device) Reset() {
	d.keys = [cpu.KeyCount]bool{}
	d.buttons = [cpu.KeyCount]bool{}
}

// Resync forgets which keys were forwarded, so held keys are pressed
// again on the next Update.
func (d *Device) Resync() {
	d.sent = [cpu.KeyCount]bool{}
}

// Key records a keyboard event. It returns false if the key is not part
// of the keypad layout. Key repeats are ignored.
func (d *Device) Key(key glfw.Key, action glfw.Action) bool {
	index, ok := KeyIndex(key)
	if !ok {
		return false
	}

	switch action {
	case glfw.Press:
		d.keys[index] = true
	case glfw.Release:
		d.keys[index] = false
	}

	return true
}

// Update polls the gamepad and forwards every key whose combined state
// changed since the previous update.
func (d *Device) Update(m devices.Machine) error {
	d.poll()

	for i := range d.sent {
		pressed := d.keys[i] || d.buttons[i]
		if pressed == d.sent[i] {
			continue
		}

		if err := m.Keypress(i, pressed); err != nil {
			return err
		}

		d.sent[i] = pressed
	}

	return nil
}

// poll reads the current gamepad buttons.
func (d *Device) poll() {
	if !d.initialized {
		return
	}

	state := d.joy.GetGamepadState()
	if state == nil {
		return
	}

	d.buttons = [cpu.KeyCount]bool{}
	for btn, action := range state.Buttons {
		index, ok := ButtonIndex(glfw.GamepadButton(btn))
		if ok && action == glfw.Press {
			d.buttons[index] = true
		}
	}
}

// configure is called whenever a joystick is connected or disconnected from the system.
func (d *Device) configure(joy glfw.Joystick, event glfw.PeripheralEvent) {
	d.initialized = event == glfw.Connected && joy.IsGamepad()
	d.joy = joy
	d.buttons = [cpu.KeyCount]bool{}

	if d.initialized {
		log.Println(d.ID(), "gamepad connected")
	} else {
		log.Println(d.ID(), "gamepad disconnected")
	}
}
