package term

import (
	"bufio"
	"io"

	"github.com/hexaflex/chip8/devices/cpu"
)

// Escape sequences used by the renderer.
const (
	cursorHome  = "\x1b[H"
	clearScreen = "\x1b[2J"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
	toneOn      = "\x1b[33m"
	toneOff     = "\x1b[0m"
)

// Each output character covers two framebuffer rows.
var blocks = [4]string{
	" ", // neither
	"▀", // upper
	"▄", // lower
	"█", // both
}

// Render writes fb to w as cpu.Height/2 lines of half-block characters,
// starting from the top left corner of the terminal. When sound is set
// the picture is drawn in a highlight colour.
func Render(w io.Writer, fb *cpu.Framebuffer, sound bool) error {
	bw := bufio.NewWriterSize(w, (cpu.Width*3+2)*cpu.Height/2+32)

	bw.WriteString(cursorHome)
	if sound {
		bw.WriteString(toneOn)
	}

	for y := 0; y < cpu.Height; y += 2 {
		for x := 0; x < cpu.Width; x++ {
			var n int
			if fb.At(x, y) {
				n |= 1
			}
			if fb.At(x, y+1) {
				n |= 2
			}
			bw.WriteString(blocks[n])
		}
		bw.WriteString("\r\n")
	}

	if sound {
		bw.WriteString(toneOff)
	}

	return bw.Flush()
}
