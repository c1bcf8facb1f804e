package cpu

// Display dimensions in pixels.
const (
	Width  = 64
	Height = 32
)

// Framebuffer holds the monochrome display in row-major order.
// Pixel (x, y) lives at index y*Width+x.
type Framebuffer [Width * Height]bool

// Clear turns every pixel off.
func (f *Framebuffer) Clear() {
	*f = Framebuffer{}
}

// At returns the state of the pixel at (x, y).
// Coordinates outside the display report false.
func (f Framebuffer) At(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	return f[y*Width+x]
}

// Toggle flips the pixel at (x, y), with both coordinates wrapping around
// the display edges. Returns true if the pixel was on and is now off.
func (f *Framebuffer) Toggle(x, y int) bool {
	idx := (y%Height)*Width + x%Width
	f[idx] = !f[idx]
	return !f[idx]
}
