// Package display renders the CHIP-8 framebuffer through OpenGL.
package display

import (
	"github.com/go-gl/gl/v4.2-core/gl"
	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/devices/cpu"
)

// Texel values written for lit and unlit framebuffer cells.
const (
	pixelOn  = 0xff
	pixelOff = 0x00
)

// Device defines all internal doodads for the display.
type Device struct {
	pixels      [cpu.Width * cpu.Height]byte
	shader      uint32
	vao         uint32
	vbo         uint32
	texture     uint32
	tone        int32 // Location of the tone uniform.
	sound       bool  // Tint the display while the sound timer runs.
	dirty       bool
	initialized bool
}

var _ devices.Device = &Device{}

// New creates a new device.
func New() *Device {
	return &Device{}
}

// ID returns the device identifier.
func (d *Device) ID() devices.ID {
	return devices.NewID(devices.Vendor, 0x0002)
}

// Startup initializes device resources.
// It expects a current OpenGL context.
func (d *Device) Startup() error {
	var err error

	d.shader, err = compileProgram(vertex, fragment)
	if err != nil {
		return errors.Wrapf(err, "failed to compile shaders")
	}

	gl.UseProgram(d.shader)

	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	gl.GenBuffers(1, &d.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)

	vertAttrib := uint32(gl.GetAttribLocation(d.shader, glStr("vertPos")))
	texCoordAttrib := uint32(gl.GetAttribLocation(d.shader, glStr("vertTexCoord")))

	gl.EnableVertexAttribArray(vertAttrib)
	gl.VertexAttribPointer(vertAttrib, 3, gl.FLOAT, false, 5*4, gl.PtrOffset(0))

	gl.EnableVertexAttribArray(texCoordAttrib)
	gl.VertexAttribPointer(texCoordAttrib, 2, gl.FLOAT, false, 5*4, gl.PtrOffset(3*4))

	d.tone = gl.GetUniformLocation(d.shader, glStr("tone"))
	d.texture = makeTexture()
	d.dirty = true
	d.initialized = true
	return nil
}

// Shutdown clears up device resources.
func (d *Device) Shutdown() error {
	if !d.initialized {
		return nil
	}

	d.initialized = false
	gl.DeleteTextures(1, &d.texture)
	gl.DeleteBuffers(1, &d.vbo)
	gl.DeleteVertexArrays(1, &d.vao)
	gl.DeleteProgram(d.shader)
	return nil
}

// Update copies the machine's framebuffer and sound state into the device.
// Nothing is sent to the GPU until Draw is called.
func (d *Device) Update(m devices.Machine) error {
	fb := m.Display()
	if Convert(d.pixels[:], &fb) {
		d.dirty = true
	}

	d.sound = m.SoundActive()
	return nil
}

// Draw renders the display contents.
func (d *Device) Draw() {
	if !d.initialized {
		return
	}

	gl.UseProgram(d.shader)
	gl.BindVertexArray(d.vao)

	if d.dirty {
		uploadTexture(d.texture, gl.R8, cpu.Width, cpu.Height, gl.RED, gl.UNSIGNED_BYTE, d.pixels[:])
		d.dirty = false
	}

	if d.sound {
		gl.Uniform4f(d.tone, 1, 0.75, 0.4, 1)
	} else {
		gl.Uniform4f(d.tone, 1, 1, 1, 1)
	}

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, d.texture)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

// Convert writes fb into dst as one byte per cell and reports whether
// any byte changed. dst must hold at least cpu.Width*cpu.Height bytes.
func Convert(dst []byte, fb *cpu.Framebuffer) bool {
	var changed bool

	for i, on := range fb {
		v := byte(pixelOff)
		if on {
			v = pixelOn
		}

		if dst[i] != v {
			dst[i] = v
			changed = true
		}
	}

	return changed
}

var quadVertices = []float32{
	//  X, Y, Z, U, V
	-1.0, -1.0, 0.0, 0.0, 1.0,
	1.0, -1.0, 0.0, 1.0, 1.0,
	-1.0, 1.0, 0.0, 0.0, 0.0,
	1.0, -1.0, 0.0, 1.0, 1.0,
	1.0, 1.0, 0.0, 1.0, 0.0,
	-1.0, 1.0, 0.0, 0.0, 0.0,
}
