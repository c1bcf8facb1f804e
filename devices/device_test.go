package devices

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/assert"

	"github.com/hexaflex/chip8/devices/cpu"
)

var errBroken = errors.New("broken")

type testDevice struct {
	id      ID
	fail    bool
	started bool
	updates int
	lit     bool
}

func (d *testDevice) ID() ID { return d.id }

func (d *testDevice) Startup() error {
	if d.fail {
		return errBroken
	}
	d.started = true
	return nil
}

func (d *testDevice) Shutdown() error {
	d.started = false
	return nil
}

func (d *testDevice) Update(m Machine) error {
	d.updates++
	fb := m.Display()
	d.lit = fb.At(0, 0)
	return m.Keypress(int(d.id.Serial()), true)
}

func TestMapConnect(t *testing.T) {
	var dm Map

	a := &testDevice{id: NewID(Vendor, 1)}
	b := &testDevice{id: NewID(Vendor, 2)}

	assert.True(t, dm.Connect(a))
	assert.True(t, dm.Connect(b))
	assert.False(t, dm.Connect(&testDevice{id: NewID(Vendor, 1)}))

	assert.Equal(t, 0, dm.Find(a.ID()))
	assert.Equal(t, 1, dm.Find(b.ID()))
	assert.Equal(t, -1, dm.Find(NewID(Vendor, 3)))
}

func TestMapStartupErrors(t *testing.T) {
	good := &testDevice{id: NewID(Vendor, 1)}
	bad := &testDevice{id: NewID(Vendor, 2), fail: true}
	dm := Map{good, bad}

	err := dm.Startup()
	assert.True(t, good.started)
	assert.True(t, errors.Is(err, errBroken))
	assert.Equal(t, "00c8:0002: broken", err.Error())

	assert.NoError(t, dm.Shutdown())
	assert.False(t, good.started)
}

func TestMapUpdate(t *testing.T) {
	c := cpu.New(nil)

	a := &testDevice{id: NewID(Vendor, 3)}
	b := &testDevice{id: NewID(Vendor, 0x20)}
	dm := Map{a, b}

	err := dm.Update(c)
	assert.Equal(t, 1, a.updates)
	assert.Equal(t, 1, b.updates)
	assert.True(t, errors.Is(err, cpu.ErrKeyIndex))
	assert.False(t, errors.Is(err, errBroken))
}

func TestID(t *testing.T) {
	id := NewID(0x12345, 0xabcd)
	assert.Equal(t, 0x2345, id.Manufacturer())
	assert.Equal(t, 0xabcd, id.Serial())
	assert.Equal(t, "2345:abcd", id.String())
}

type resyncDevice struct {
	testDevice
	resyncs int
}

func (d *resyncDevice) Resync() { d.resyncs++ }

func TestMapResync(t *testing.T) {
	var dm Map
	plain := &testDevice{id: NewID(Vendor, 1)}
	rd := &resyncDevice{testDevice: testDevice{id: NewID(Vendor, 2)}}

	dm.Connect(plain)
	dm.Connect(rd)
	dm.Resync()
	assert.Equal(t, 1, rd.resyncs)
}
