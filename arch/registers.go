package arch

import "fmt"

// RegisterCount is the number of general purpose registers.
const RegisterCount = 16

// VF doubles as the carry, borrow and collision flag.
const VF = 0xf

// RegisterName returns the name associated with the given register index.
// Returns "" if the index is not recognized.
func RegisterName(n int) string {
	if n < 0 || n >= RegisterCount {
		return ""
	}
	return fmt.Sprintf("V%X", n)
}

// RegisterIndex returns the index of the named register (V0-VF, any case).
// Returns -1 if the name is not a register.
func RegisterIndex(name string) int {
	if len(name) != 2 || (name[0] != 'v' && name[0] != 'V') {
		return -1
	}

	switch c := name[1]; {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}

	return -1
}
