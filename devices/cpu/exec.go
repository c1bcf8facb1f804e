package cpu

import (
	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/arch"
)

// Exec executes an already decoded instruction against the machine state.
// The program counter is expected to point past the instruction.
func (c *CPU) Exec(instr arch.Instruction) error {
	if int(instr.X) >= arch.RegisterCount {
		return errors.Wrapf(ErrRegisterIndex, "x=%d", instr.X)
	}
	if int(instr.Y) >= arch.RegisterCount {
		return errors.Wrapf(ErrRegisterIndex, "y=%d", instr.Y)
	}

	v := &c.v
	x, y := instr.X, instr.Y

	switch instr.Op {
	case arch.NOP:
		/* nop */
	case arch.CLS:
		c.display.Clear()
	case arch.RET:
		addr, err := c.stack.Pop()
		if err != nil {
			return err
		}
		c.pc = addr
	case arch.JP:
		c.pc = instr.NNN
	case arch.CALL:
		if err := c.stack.Push(c.pc); err != nil {
			return err
		}
		c.pc = instr.NNN

	case arch.SEB:
		c.skipIf(v[x] == instr.NN)
	case arch.SNEB:
		c.skipIf(v[x] != instr.NN)
	case arch.SE:
		c.skipIf(v[x] == v[y])
	case arch.SNE:
		c.skipIf(v[x] != v[y])

	case arch.LDB:
		v[x] = instr.NN
	case arch.ADDB:
		v[x] += instr.NN

	case arch.LD:
		v[x] = v[y]
	case arch.OR:
		v[x] |= v[y]
	case arch.AND:
		v[x] &= v[y]
	case arch.XOR:
		v[x] ^= v[y]
	case arch.ADD:
		sum := uint16(v[x]) + uint16(v[y])
		v[x] = byte(sum)
		v[arch.VF] = flag(sum > 0xff)
	case arch.SUB:
		notBorrow := v[x] >= v[y]
		v[x] -= v[y]
		v[arch.VF] = flag(notBorrow)
	case arch.SHR:
		lsb := v[x] & 0x01
		v[x] >>= 1
		v[arch.VF] = lsb
	case arch.SUBN:
		notBorrow := v[y] >= v[x]
		v[x] = v[y] - v[x]
		v[arch.VF] = flag(notBorrow)
	case arch.SHL:
		msb := v[x] >> 7
		v[x] <<= 1
		v[arch.VF] = msb

	case arch.LDI:
		c.i = instr.NNN
	case arch.JPV0:
		c.pc = instr.NNN + uint16(v[0])
	case arch.RND:
		v[x] = byte(c.rng.Intn(0x100)) & instr.NN
	case arch.DRW:
		return c.draw(v[x], v[y], instr.N)

	case arch.SKP, arch.SKNP:
		pressed, err := c.keys.Pressed(int(v[x]))
		if err != nil {
			return err
		}
		c.skipIf(pressed == (instr.Op == arch.SKP))

	case arch.LDVDT:
		v[x] = c.timers.Delay
	case arch.LDK:
		// Re-run this instruction until a key is down.
		if key, ok := c.keys.First(); ok {
			v[x] = byte(key)
		} else {
			c.pc -= 2
		}
	case arch.LDDT:
		c.timers.Delay = v[x]
	case arch.LDST:
		c.timers.Sound = v[x]
	case arch.ADDI:
		c.i += uint16(v[x])
	case arch.LDF:
		c.i = FontStart + uint16(v[x])*GlyphSize
	case arch.LDBCD:
		bcd := [3]byte{v[x] / 100, v[x] / 10 % 10, v[x] % 10}
		return c.memory.Write(c.i, bcd[:])
	case arch.STORE:
		return c.memory.Write(c.i, v[:x+1])
	case arch.LOAD:
		return c.memory.Read(c.i, v[:x+1])

	default:
		return ErrUnknownOpcode
	}

	return nil
}

// draw XORs the n-byte sprite at I onto the display at (vx, vy) and sets VF
// if any lit pixel was turned off.
func (c *CPU) draw(vx, vy, n byte) error {
	var sprite [15]byte
	rows := sprite[:n]

	if err := c.memory.Read(c.i, rows); err != nil {
		return err
	}

	x := int(vx) % Width
	y := int(vy) % Height
	c.v[arch.VF] = 0

	for row, bits := range rows {
		for col := 0; col < 8; col++ {
			if bits&(0x80>>col) == 0 {
				continue
			}
			if c.display.Toggle(x+col, y+row) {
				c.v[arch.VF] = 1
			}
		}
	}

	return nil
}

// skipIf advances the program counter past the next instruction if cond holds.
func (c *CPU) skipIf(cond bool) {
	if cond {
		c.pc += 2
	}
}

// flag converts v into a VF value.
func flag(v bool) byte {
	if v {
		return 1
	}
	return 0
}
