package cpu

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/arch"
)

// Known failure causes. Execution errors returned by Tick wrap one of these
// and can be matched with errors.Is.
var (
	ErrProgramTooLarge = errors.New("program exceeds available memory")
	ErrStackOverflow   = errors.New("stack overflow")
	ErrStackUnderflow  = errors.New("stack underflow")
	ErrUnknownOpcode   = errors.New("unknown opcode")
	ErrAddress         = errors.New("address out of range")
	ErrKeyIndex        = errors.New("key index out of range")
	ErrRegisterIndex   = errors.New("register index out of range")
)

// Error defines a runtime error.
type Error struct {
	IP          uint16           // Address of the failing instruction.
	Instruction arch.Instruction // The failing instruction.
	Err         error            // Cause.
}

// NewError creates a new runtime error for the instruction at ip.
func NewError(ip uint16, instr arch.Instruction, err error) *Error {
	return &Error{
		IP:          ip,
		Instruction: instr,
		Err:         err,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%04x: %s: %v", e.IP, e.Instruction, e.Err)
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error {
	return e.Err
}
