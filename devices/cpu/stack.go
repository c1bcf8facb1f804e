package cpu

// StackCapacity is the maximum number of nested calls.
const StackCapacity = 16

// Stack holds subroutine return addresses.
type Stack struct {
	data  [StackCapacity]uint16
	depth int
}

// Push stores value on top of the stack.
func (s *Stack) Push(value uint16) error {
	if s.depth >= StackCapacity {
		return ErrStackOverflow
	}
	s.data[s.depth] = value
	s.depth++
	return nil
}

// Pop removes and returns the top value.
func (s *Stack) Pop() (uint16, error) {
	if s.depth == 0 {
		return 0, ErrStackUnderflow
	}
	s.depth--
	return s.data[s.depth], nil
}

// Depth returns the number of stored return addresses.
func (s *Stack) Depth() int {
	return s.depth
}
