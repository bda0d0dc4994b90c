// Package c64 wires the Cpu, Ram, Sid and Vic together and exposes the
// host-facing driving operations: load a PRG, call a routine, trace its SID
// writes, or advance whole frames.
//
// The C64 owns its four components; they hold back-references to the peers
// they mutate, never to the aggregate. Direct field access is expected —
// this is a library for scripted driving of legacy code.
package c64

import (
	"errors"
	"fmt"
	"os"

	"sid64/cpu"
	"sid64/mem"
	"sid64/sid"
	"sid64/vic"
)

// ErrPrgTooShort marks a PRG whose payload does not extend past the
// two-byte load-address header.
var ErrPrgTooShort = errors.New("prg file too short")

type C64 struct {
	Cpu *cpu.Cpu
	Ram *mem.Ram
	Sid *sid.Sid
	Vic *vic.Vic
}

// New builds a machine for the given raster model with execution poised at
// start. The processor port byte at $01 gets the default C64 bank
// configuration (BASIC + KERNAL + I/O mapped).
func New(model vic.Model, start uint16) *C64 {
	ram := &mem.Ram{}
	s := sid.New(sid.DefaultBase)
	v := vic.New(model, ram)
	c := cpu.New(ram, s, v, start)
	v.Cpu = c
	ram.Write(0x0001, 0x37)
	return &C64{Cpu: c, Ram: ram, Sid: s, Vic: v}
}

// SetPrg copies a PRG image into memory: the first two bytes are the
// little-endian load address, the rest is payload. Payloads of two bytes or
// fewer are a no-op returning 0. When pcToLoadAddr is set, the Cpu is
// pointed at the load address.
func (c *C64) SetPrg(data []byte, pcToLoadAddr bool) uint16 {
	if len(data) <= 2 {
		return 0
	}
	addr := uint16(data[1])<<8 | uint16(data[0])
	for i, b := range data[2:] {
		c.Ram.Write(addr+uint16(i), b)
	}
	if pcToLoadAddr {
		c.Cpu.PC = addr
	}
	return addr
}

// LoadPrg reads a PRG file and loads it via SetPrg.
func (c *C64) LoadPrg(path string, pcToLoadAddr bool) (uint16, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("load prg: %w", err)
	}
	if len(data) <= 2 {
		return 0, fmt.Errorf("load prg %s: %w", path, ErrPrgTooShort)
	}
	return c.SetPrg(data, pcToLoadAddr), nil
}

// prep puts the Cpu into the calling convention state: clean status, empty
// stack, and fresh sticky SID flags for this run.
func (c *C64) prep() {
	c.Cpu.SetStatus(0)
	c.Cpu.SP = 0xFF
	c.Sid.ClearRun()
}

// finish mirrors the sticky flags into the per-step ones and restores the
// run's final change record, so a caller can query the outcome once after
// the run even though the terminating step cleared the per-step view.
func (c *C64) finish(last *sid.RegisterChange) {
	c.Sid.RegWritten = c.Sid.ExtWritten
	c.Sid.RegChanged = c.Sid.ExtChanged
	c.Sid.LastChange = last
}

// Call runs the subroutine at addr until it exits (RTS on an empty stack,
// BRK, an undocumented opcode, or the KERNAL interrupt-return heuristic).
func (c *C64) Call(addr uint16) {
	c.Cpu.PC = addr
	c.Run()
}

// Run is Call from whatever PC is currently set.
func (c *C64) Run() {
	c.prep()
	var last *sid.RegisterChange
	for {
		cycles := c.Cpu.RunStep()
		if c.Sid.LastChange != nil {
			last = c.Sid.LastChange
		}
		if cycles == 0 {
			break
		}
	}
	c.finish(last)
}

// CallTrace is Call, returning the ordered SID register changes the run
// produced. Cycle timestamps are monotonically non-decreasing. The caller
// owns the slice.
func (c *C64) CallTrace(addr uint16) []sid.RegisterChange {
	c.Cpu.PC = addr
	c.prep()
	var trace []sid.RegisterChange
	var last *sid.RegisterChange
	for {
		cycles := c.Cpu.RunStep()
		if c.Sid.LastChange != nil {
			last = c.Sid.LastChange
			trace = append(trace, *c.Sid.LastChange)
		}
		if cycles == 0 {
			break
		}
	}
	c.finish(last)
	return trace
}

// RunFrames advances by n vsyncs' worth of cycles (or until the program
// exits) and reports how many frames actually passed.
func (c *C64) RunFrames(n uint32) uint32 {
	if n == 0 {
		return 0
	}
	budget := n * c.Vic.Model.CyclesPerFrame()
	before := c.Vic.Frame
	var elapsed uint32
	for elapsed < budget {
		cycles := c.Cpu.RunStep()
		if cycles == 0 {
			break
		}
		elapsed += uint32(cycles)
	}
	return c.Vic.Frame - before
}
