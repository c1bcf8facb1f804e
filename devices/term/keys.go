package term

import (
	"time"

	"github.com/hexaflex/chip8/devices/cpu"
)

// HoldTime is how long a key stays pressed after its last keystroke.
// Terminals only report key presses, so releases are synthesized.
const HoldTime = 100 * time.Millisecond

// keyInterrupt (Ctrl+C) ends the session. Raw mode delivers it as a
// plain byte instead of a signal.
const keyInterrupt = 0x03

// KeyIndex returns the keypad index for an input byte, using the same
// 1234/QWER/ASDF/ZXCV layout as the windowed frontend.
func KeyIndex(b byte) (int, bool) {
	if b >= 'A' && b <= 'Z' {
		b += 'a' - 'A'
	}

	switch b {
	case '1':
		return 0x1, true
	case '2':
		return 0x2, true
	case '3':
		return 0x3, true
	case '4':
		return 0xc, true
	case 'q':
		return 0x4, true
	case 'w':
		return 0x5, true
	case 'e':
		return 0x6, true
	case 'r':
		return 0xd, true
	case 'a':
		return 0x7, true
	case 's':
		return 0x8, true
	case 'd':
		return 0x9, true
	case 'f':
		return 0xe, true
	case 'z':
		return 0xa, true
	case 'x':
		return 0x0, true
	case 'c':
		return 0xb, true
	case 'v':
		return 0xf, true
	}

	return 0, false
}

// latches tracks which keys are held and when they were last struck.
type latches struct {
	pressed [cpu.KeyCount]bool
	struck  [cpu.KeyCount]time.Time
}

func (l *latches) press(index int, now time.Time) {
	l.pressed[index] = true
	l.struck[index] = now
}

// expire releases every key not struck within HoldTime of now.
func (l *latches) expire(now time.Time) {
	for i, on := range l.pressed {
		if on && now.Sub(l.struck[i]) >= HoldTime {
			l.pressed[i] = false
		}
	}
}
