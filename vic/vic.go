// Package vic coarsely models the VIC-II raster timing that music routines
// poll for pacing: the rasterline counter at $D012, its ninth bit in
// $D011, and the badline cycle steal.
//
// Nothing is drawn. The Vic exists so that code busy-waiting on $D012 (or
// counting frames) sees the counters move at the right cycle rate.
package vic

import (
	"sid64/mask"
	"sid64/mem"
)

// Model selects the raster geometry.
type Model int

const (
	PAL Model = iota
	NTSC
)

func (m Model) String() string {
	if m == NTSC {
		return "NTSC"
	}
	return "PAL"
}

// Raster timing constants.
//
// https://www.c64-wiki.com/wiki/raster_time
const (
	PalCyclesPerLine   = 63
	PalCyclesPerFrame  = 19656 // 63 * 312
	NtscCyclesPerLine  = 65
	NtscCyclesPerFrame = 17030

	// A badline steals cycles from the CPU for character fetches; modelled
	// as a flat stall charged once per badline.
	BadlineStallCycles = 40

	RegD011 = 0xD011 // control register 1; bit 7 is rasterline bit 8
	RegD012 = 0xD012 // rasterline counter, low 8 bits
)

// CyclesPerLine returns the per-rasterline CPU cycle budget.
func (m Model) CyclesPerLine() uint32 {
	if m == NTSC {
		return NtscCyclesPerLine
	}
	return PalCyclesPerLine
}

// CyclesPerFrame returns the per-frame CPU cycle budget.
func (m Model) CyclesPerFrame() uint32 {
	if m == NTSC {
		return NtscCyclesPerFrame
	}
	return PalCyclesPerFrame
}

// A Staller absorbs the badline cycle steal; implemented by the Cpu, which
// charges the stall to all of its cycle counters.
type Staller interface {
	Stall(cycles byte)
}

// A Vic advances the raster model and mutates $D011/$D012 in memory. Cpu
// and Ram are peers, not owned.
type Vic struct {
	Model Model
	Cpu   Staller
	Ram   *mem.Ram

	Rasterline uint16
	Frame      uint32

	// per-step event flags, cleared by the Cpu at the start of every step
	VsyncHappened     bool
	HsyncHappened     bool
	BadlineHappened   bool
	RasterlineChanged bool
}

// New returns a Vic for the given model. The Cpu peer is wired by the host
// after the Cpu exists.
func New(model Model, ram *mem.Ram) *Vic {
	return &Vic{Model: model, Ram: ram}
}

// ClearStep resets the per-step event flags.
func (v *Vic) ClearStep() {
	v.VsyncHappened = false
	v.HsyncHappened = false
	v.BadlineHappened = false
	v.RasterlineChanged = false
}

// EmulateD012 performs one rasterline advance: bump the line counters,
// detect frame wrap via $D011.7/$D012, and charge the badline stall when
// the line is a badline.
func (v *Vic) EmulateD012() {
	v.Rasterline++
	v.RasterlineChanged = true
	v.HsyncHappened = true

	d012 := v.Ram.Read(RegD012) + 1 // wrapping
	v.Ram.Write(RegD012, d012)

	d011 := v.Ram.Read(RegD011)
	if d012 == 0 || (mask.IsSet(d011, mask.B7) && d012 >= 0x38) {
		// rasterline bit 8 flips at the 256-line boundary; either way the
		// frame is over and the counters restart at the top of the screen
		v.Ram.Write(RegD011, mask.Flip(d011, mask.B7, mask.B7))
		v.Ram.Write(RegD012, 0)
		v.Rasterline = 0
		v.VsyncHappened = true
	}

	if v.Rasterline%8 == 3 {
		v.BadlineHappened = true
		if v.Cpu != nil {
			v.Cpu.Stall(BadlineStallCycles)
		}
	}
}
