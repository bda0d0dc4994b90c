package vic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sid64/mem"
)

type stallCounter struct {
	total uint32
	calls int
}

func (s *stallCounter) Stall(cycles byte) {
	s.total += uint32(cycles)
	s.calls++
}

func TestModelConstants(t *testing.T) {
	assert.Equal(t, uint32(63), PAL.CyclesPerLine())
	assert.Equal(t, uint32(19656), PAL.CyclesPerFrame())
	assert.Equal(t, uint32(65), NTSC.CyclesPerLine())
	assert.Equal(t, uint32(17030), NTSC.CyclesPerFrame())
	assert.Equal(t, "PAL", PAL.String())
	assert.Equal(t, "NTSC", NTSC.String())
}

func TestEmulateD012(t *testing.T) {
	ram := &mem.Ram{}
	v := New(PAL, ram)

	v.EmulateD012()
	assert.Equal(t, uint16(1), v.Rasterline)
	assert.Equal(t, byte(1), ram.Read(RegD012))
	assert.True(t, v.HsyncHappened)
	assert.True(t, v.RasterlineChanged)
	assert.False(t, v.VsyncHappened)

	v.ClearStep()
	assert.False(t, v.HsyncHappened)
	assert.False(t, v.RasterlineChanged)
}

func TestBadline(t *testing.T) {
	ram := &mem.Ram{}
	v := New(PAL, ram)
	cpu := &stallCounter{}
	v.Cpu = cpu

	// lines 3, 11, 19, ... are badlines
	for i := 0; i < 24; i++ {
		v.ClearStep()
		v.EmulateD012()
		badline := v.Rasterline%8 == 3
		assert.Equal(t, badline, v.BadlineHappened, "line %d", v.Rasterline)
	}
	assert.Equal(t, 3, cpu.calls)
	assert.Equal(t, uint32(3*BadlineStallCycles), cpu.total)
}

func TestD012WrapFlipsD011(t *testing.T) {
	ram := &mem.Ram{}
	v := New(PAL, ram)

	// run through the first 256 lines; $D012 wraps to 0 and bit 7 of
	// $D011 goes high
	for i := 0; i < 256; i++ {
		v.ClearStep()
		v.EmulateD012()
	}
	assert.True(t, v.VsyncHappened)
	assert.Equal(t, byte(0x80), ram.Read(RegD011)&0x80)
	assert.Equal(t, byte(0), ram.Read(RegD012))
	assert.Equal(t, uint16(0), v.Rasterline)
}

func TestVsyncWithHighBitSet(t *testing.T) {
	ram := &mem.Ram{}
	v := New(PAL, ram)
	ram.Write(RegD011, 0x80)

	// with bit 8 set, the frame ends once $D012 reaches 0x38
	for i := 0; i < 0x37; i++ {
		v.ClearStep()
		v.EmulateD012()
		assert.False(t, v.VsyncHappened, "line %d", i)
	}
	v.ClearStep()
	v.EmulateD012()
	assert.True(t, v.VsyncHappened)
	assert.Equal(t, byte(0), ram.Read(RegD011)&0x80)
	assert.Equal(t, byte(0), ram.Read(RegD012))
	assert.Equal(t, uint16(0), v.Rasterline)
}
