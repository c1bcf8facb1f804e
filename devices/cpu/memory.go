package cpu

import "github.com/pkg/errors"

// Memory layout.
const (
	MemoryCapacity  = 0x1000                        // Size of the address space.
	ProgramStart    = 0x200                         // Load address for program bytes.
	ProgramCapacity = MemoryCapacity - ProgramStart // Largest program that fits.
	FontStart       = 0x000                         // Address of the built-in glyph for digit 0.
	GlyphSize       = 5                             // Bytes per built-in glyph.
)

// font holds the built-in sprites for the hexadecimal digits 0-F.
var font = [16 * GlyphSize]byte{
	0xf0, 0x90, 0x90, 0x90, 0xf0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xf0, 0x10, 0xf0, 0x80, 0xf0, // 2
	0xf0, 0x10, 0xf0, 0x10, 0xf0, // 3
	0x90, 0x90, 0xf0, 0x10, 0x10, // 4
	0xf0, 0x80, 0xf0, 0x10, 0xf0, // 5
	0xf0, 0x80, 0xf0, 0x90, 0xf0, // 6
	0xf0, 0x10, 0x20, 0x40, 0x40, // 7
	0xf0, 0x90, 0xf0, 0x90, 0xf0, // 8
	0xf0, 0x90, 0xf0, 0x10, 0xf0, // 9
	0xf0, 0x90, 0xf0, 0x90, 0x90, // A
	0xe0, 0x90, 0xe0, 0x90, 0xe0, // B
	0xf0, 0x80, 0x80, 0x80, 0xf0, // C
	0xe0, 0x90, 0x90, 0x90, 0xe0, // D
	0xf0, 0x80, 0xf0, 0x80, 0xf0, // E
	0xf0, 0x80, 0xf0, 0x80, 0x80, // F
}

// Memory defines the system's memory bank.
type Memory []byte

// NewMemory returns a zeroed memory bank with the font preloaded.
func NewMemory() Memory {
	m := make(Memory, MemoryCapacity)
	m.reset()
	return m
}

// reset zeroes the bank and restores the font.
func (m Memory) reset() {
	for i := range m {
		m[i] = 0
	}
	copy(m[FontStart:], font[:])
}

// Load copies the program p to ProgramStart.
// Returns ErrProgramTooLarge, without writing anything, if p does not fit.
func (m Memory) Load(p []byte) error {
	if len(p) > ProgramCapacity {
		return errors.Wrapf(ErrProgramTooLarge, "program size: %d, free memory: %d", len(p), ProgramCapacity)
	}
	copy(m[ProgramStart:], p)
	return nil
}

// U8 returns the byte at the given address.
func (m Memory) U8(addr uint16) (byte, error) {
	if int(addr) >= len(m) {
		return 0, errors.Wrapf(ErrAddress, "read %04x", addr)
	}
	return m[addr], nil
}

// SetU8 sets the byte at the given address.
func (m Memory) SetU8(addr uint16, value byte) error {
	if int(addr) >= len(m) {
		return errors.Wrapf(ErrAddress, "write %04x", addr)
	}
	m[addr] = value
	return nil
}

// U16 returns the big-endian 16-bit value at the given address.
func (m Memory) U16(addr uint16) (uint16, error) {
	if int(addr)+1 >= len(m) {
		return 0, errors.Wrapf(ErrAddress, "read %04x", addr)
	}
	return uint16(m[addr])<<8 | uint16(m[addr+1]), nil
}

// Write writes len(p) bytes from p into memory, starting at the given address.
// Nothing is written if the range does not fit.
func (m Memory) Write(addr uint16, p []byte) error {
	if int(addr)+len(p) > len(m) {
		return errors.Wrapf(ErrAddress, "write %04x-%04x", addr, int(addr)+len(p)-1)
	}
	copy(m[addr:], p)
	return nil
}

// Read reads len(p) bytes from memory into p, starting at the given address.
func (m Memory) Read(addr uint16, p []byte) error {
	if int(addr)+len(p) > len(m) {
		return errors.Wrapf(ErrAddress, "read %04x-%04x", addr, int(addr)+len(p)-1)
	}
	copy(p, m[addr:])
	return nil
}
