package cpu

// Timers holds the delay and sound countdown registers.
type Timers struct {
	Delay byte
	Sound byte
}

// Tick decrements both timers by one, stopping at zero.
func (t *Timers) Tick() {
	if t.Delay > 0 {
		t.Delay--
	}
	if t.Sound > 0 {
		t.Sound--
	}
}
