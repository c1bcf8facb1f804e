package term

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"

	"github.com/hexaflex/chip8/devices/cpu"
)

func TestKeyIndex(t *testing.T) {
	seen := map[int]bool{}
	for _, b := range []byte("1234qwerasdfzxcv") {
		index, ok := KeyIndex(b)
		assert.True(t, ok)
		assert.False(t, seen[index])
		seen[index] = true
	}
	assert.Equal(t, cpu.KeyCount, len(seen))

	index, ok := KeyIndex('V')
	assert.True(t, ok)
	assert.Equal(t, 0xf, index)

	_, ok = KeyIndex('p')
	assert.False(t, ok)
	_, ok = KeyIndex(keyInterrupt)
	assert.False(t, ok)
}

func TestLatchesExpire(t *testing.T) {
	var l latches
	start := time.Unix(100, 0)

	l.press(3, start)
	l.expire(start.Add(HoldTime - time.Millisecond))
	assert.True(t, l.pressed[3])

	// A repeated keystroke extends the hold.
	l.press(3, start.Add(HoldTime/2))
	l.expire(start.Add(HoldTime))
	assert.True(t, l.pressed[3])

	l.expire(start.Add(HoldTime/2 + HoldTime))
	assert.False(t, l.pressed[3])
}

func TestRender(t *testing.T) {
	var fb cpu.Framebuffer
	fb.Toggle(0, 0)
	fb.Toggle(1, 1)
	fb.Toggle(2, 0)
	fb.Toggle(2, 1)

	var buf bytes.Buffer
	assert.NoError(t, Render(&buf, &fb, false))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, cursorHome))

	lines := strings.Split(strings.TrimPrefix(out, cursorHome), "\r\n")
	assert.Equal(t, cpu.Height/2+1, len(lines))
	assert.Equal(t, "", lines[len(lines)-1])

	row := []rune(lines[0])
	assert.Equal(t, cpu.Width, len(row))
	assert.Equal(t, '▀', row[0])
	assert.Equal(t, '▄', row[1])
	assert.Equal(t, '█', row[2])
	assert.Equal(t, ' ', row[3])
	assert.Equal(t, strings.Repeat(" ", cpu.Width), lines[1])
}

func TestRenderSound(t *testing.T) {
	var fb cpu.Framebuffer
	var buf bytes.Buffer
	assert.NoError(t, Render(&buf, &fb, true))
	assert.True(t, strings.Contains(buf.String(), toneOn))
	assert.True(t, strings.HasSuffix(buf.String(), toneOff))
}

type stubMachine struct {
	fb   cpu.Framebuffer
	keys [cpu.KeyCount]bool
}

func (m *stubMachine) Display() cpu.Framebuffer { return m.fb }
func (m *stubMachine) SoundActive() bool        { return false }

func (m *stubMachine) Keypress(index int, pressed bool) error {
	m.keys[index] = pressed
	return nil
}

func TestDeviceInput(t *testing.T) {
	now := time.Unix(100, 0)
	clock := func() time.Time { return now }

	var out bytes.Buffer
	var m stubMachine
	d := NewWithStreams(strings.NewReader("Wp"), &out, clock)
	assert.NoError(t, d.Startup())

	for i := 0; i < 1000 && !d.Quit(); i++ {
		assert.NoError(t, d.Update(&m))
		time.Sleep(time.Millisecond)
	}

	assert.True(t, d.Quit())
	assert.True(t, m.keys[0x5])
	assert.True(t, strings.Contains(out.String(), cursorHome))

	now = now.Add(HoldTime)
	assert.NoError(t, d.Update(&m))
	assert.False(t, m.keys[0x5])

	out.Reset()
	assert.NoError(t, d.Update(&m))
	assert.Equal(t, 0, out.Len())

	m.fb.Toggle(5, 5)
	assert.NoError(t, d.Update(&m))
	assert.True(t, out.Len() > 0)

	assert.NoError(t, d.Shutdown())
	assert.True(t, strings.HasSuffix(out.String(), showCursor+"\r\n"))
}

func TestDeviceInterrupt(t *testing.T) {
	var m stubMachine
	d := NewWithStreams(strings.NewReader("\x03"), &bytes.Buffer{}, time.Now)
	assert.NoError(t, d.Startup())

	for i := 0; i < 1000 && !d.Quit(); i++ {
		assert.NoError(t, d.Update(&m))
		time.Sleep(time.Millisecond)
	}

	assert.True(t, d.Quit())
	assert.NoError(t, d.Shutdown())
}

func TestDeviceRestartKeepsReader(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()

	var m stubMachine
	d := NewWithStreams(r, &bytes.Buffer{}, time.Now)
	assert.NoError(t, d.Startup())
	input := d.input

	assert.NoError(t, d.Shutdown())
	assert.NoError(t, d.Startup())
	assert.True(t, input == d.input)

	go w.Write([]byte("q"))

	for i := 0; i < 1000 && !m.keys[0x4]; i++ {
		assert.NoError(t, d.Update(&m))
		time.Sleep(time.Millisecond)
	}

	assert.True(t, m.keys[0x4])
	assert.NoError(t, d.Shutdown())
}

func TestDeviceResync(t *testing.T) {
	now := time.Unix(100, 0)
	var m stubMachine
	var out bytes.Buffer

	d := NewWithStreams(strings.NewReader(""), &out, func() time.Time { return now })
	d.input = make(chan byte)
	d.keys.press(0x4, now)

	assert.NoError(t, d.Update(&m))
	assert.True(t, m.keys[0x4])

	m.keys = [cpu.KeyCount]bool{}
	out.Reset()
	d.Resync()

	assert.NoError(t, d.Update(&m))
	assert.True(t, m.keys[0x4])
	assert.True(t, out.Len() > 0)
}
