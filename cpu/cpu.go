// Package cpu implements the MOS Technology 6510 microprocessor, as used in
// the C64, as a cycle-counted interpreter.
//
// The Cpu has no memory of its own (aside from a handful of small
// registers). It interfaces with a flat Ram, mirrors SID-range writes into
// the Sid observer, and drives the Vic raster model from its own cycle
// accounting.
package cpu

import (
	"sid64/inst"
	"sid64/mem"
	"sid64/sid"
	"sid64/vic"
)

// KERNAL interrupt-return entry points. Landing on one of these while the
// low three bits of the banking byte at $01 are anything other than %101
// (the default $37 included) means the program handed control back to ROM
// that is not part of this model; treat it as a pragma to stop, not a
// semantic requirement.
//
// https://www.pagetable.com/c64ref/kernal/
const (
	kernalIrqReturn    = 0xEA31
	kernalIrqReturnFar = 0xEA81
)

type Cpu struct {
	Ram *mem.Ram
	Sid *sid.Sid
	Vic *vic.Vic

	// https://problemkaputt.de/everynes.htm#cpuregistersandflags
	// https://www.nesdev.org/wiki/Status_flags#Flags

	// Flags are the unpacked form of the status register (aka P register).
	//
	// 7654 3210
	// NVUB DIZC
	Flags struct {
		Negative         bool // bit 7; only if signed ints are used
		Overflow         bool // bit 6; only if signed ints are used
		Unused           bool // bit 5
		B                bool // bit 4
		Decimal          bool // bit 3; BCD mode for ADC/SBC
		DisableInterrupt bool // bit 2
		Zero             bool // bit 1
		Carry            bool // bit 0
	}

	// Status is the packed form, kept in sync with Flags at every step
	// boundary.
	Status byte

	A byte // accumulator
	X byte
	Y byte

	// SP holds the low byte of the next free stack location; the stack
	// itself lives in the 01 page (0x0100-0x01ff).
	SP byte

	// The ProgramCounter is a word-sized address whose byte should provide
	// the Cpu with the next opcode to execute.
	PC uint16

	Opcode byte // last opcode executed

	// Cycle accounting. All counters wrap; this is load-bearing for long
	// runs, so nothing here may saturate or widen.
	CyclesExecuted   uint32 // cumulative
	CyclesLastStep   byte   // consumed by the most recent RunStep
	CyclesSinceVsync uint32 // cleared every frame budget
	CyclesSinceHsync uint32 // cleared every rasterline budget

	halted bool
}

// New wires a Cpu to its peers and applies the power-on state: stack empty
// at $FF, interrupt-disable and the unused bit set, execution poised at
// start. The packed Status deliberately starts at zero; the first step
// resynchronises it from the flags.
func New(ram *mem.Ram, s *sid.Sid, v *vic.Vic, start uint16) *Cpu {
	c := &Cpu{Ram: ram, Sid: s, Vic: v, PC: start, SP: 0xFF}
	c.Flags.DisableInterrupt = true
	c.Flags.Unused = true
	return c
}

// Reset applies the soft-reset state: SP as left by the boot ROM's three
// pushes, status $24, PC from the reset vector, cycle counters zeroed.
// Memory is untouched.
func (c *Cpu) Reset() {
	c.SP = 0xFD
	c.Status = 0x24
	c.statusToFlags(c.Status)
	c.PC = c.peekWord(0xFFFC)
	c.CyclesExecuted = 0
	c.CyclesLastStep = 0
	c.CyclesSinceVsync = 0
	c.CyclesSinceHsync = 0
}

// HardReset clears memory, then resets. The reset vector reads as $0000
// afterwards, by construction.
func (c *Cpu) HardReset() {
	c.Ram.Clear()
	c.Reset()
}

// tick charges n cycles to the cumulative counter.
func (c *Cpu) tick(n byte) { c.CyclesExecuted += uint32(n) }

// Read reads one byte from the given addr, charging one cycle.
func (c *Cpu) Read(addr uint16) byte {
	c.tick(1)
	return c.Ram.Read(addr)
}

// peek reads without charging a cycle; used where the hardware folds the
// access into the opcode's base timing (branch offsets, reset vectors).
func (c *Cpu) peek(addr uint16) byte { return c.Ram.Read(addr) }

func (c *Cpu) peekWord(addr uint16) uint16 {
	return uint16(c.Ram.Read(addr+1))<<8 | uint16(c.Ram.Read(addr))
}

// Write stores one byte, charging one cycle. Writes into the SID range are
// mirrored into the Sid shadow as well as landing in Ram, so subsequent
// reads of the address see the same byte.
func (c *Cpu) Write(addr uint16, data byte) {
	c.tick(1)
	c.Ram.Write(addr, data)
	if addr >= c.Sid.Base && addr < c.Sid.Base+sid.NumRegisters {
		c.Sid.WriteRegister(int(addr-c.Sid.Base), data, c.CyclesExecuted)
	}
}

// fetch reads the byte at PC and advances PC.
func (c *Cpu) fetch() byte {
	b := c.Read(c.PC)
	c.PC++
	return b
}

// fetchWord reads a little-endian word at PC and advances PC twice.
func (c *Cpu) fetchWord() uint16 {
	lo := c.fetch()
	hi := c.fetch()
	return uint16(hi)<<8 | uint16(lo)
}

// flagsToStatus packs the eight flags into a status byte.
func (c *Cpu) flagsToStatus() byte {
	var b byte
	for i, f := range []bool{
		c.Flags.Carry,
		c.Flags.Zero,
		c.Flags.DisableInterrupt,
		c.Flags.Decimal,
		c.Flags.B,
		c.Flags.Unused,
		c.Flags.Overflow,
		c.Flags.Negative,
	} {
		if f {
			b |= 1 << i
		}
	}
	return b
}

// statusToFlags unpacks a status byte into the eight flags and records the
// packed form.
func (c *Cpu) statusToFlags(b byte) {
	c.Status = b
	c.Flags.Carry = b&(1<<0) != 0
	c.Flags.Zero = b&(1<<1) != 0
	c.Flags.DisableInterrupt = b&(1<<2) != 0
	c.Flags.Decimal = b&(1<<3) != 0
	c.Flags.B = b&(1<<4) != 0
	c.Flags.Unused = b&(1<<5) != 0
	c.Flags.Overflow = b&(1<<6) != 0
	c.Flags.Negative = b&(1<<7) != 0
}

// SetStatus replaces the packed status byte and unpacks it into the flags,
// keeping the two representations mutually reconstructible.
func (c *Cpu) SetStatus(b byte) { c.statusToFlags(b) }

// setZN updates Zero and Negative from a result byte.
func (c *Cpu) setZN(b byte) {
	c.Flags.Zero = b == 0
	c.Flags.Negative = b&0x80 != 0
}

// Stack helpers. SP decrements on push and increments on pop, wrapping
// within the 01 page. Words go high byte first on push, low byte first on
// pop.

func (c *Cpu) push(b byte) {
	c.Write(0x0100|uint16(c.SP), b)
	c.SP--
}

func (c *Cpu) pop() byte {
	c.SP++
	return c.Read(0x0100 | uint16(c.SP))
}

func (c *Cpu) pushWord(w uint16) {
	c.push(byte(w >> 8))
	c.push(byte(w))
}

func (c *Cpu) popWord() uint16 {
	lo := c.pop()
	hi := c.pop()
	return uint16(hi)<<8 | uint16(lo)
}

// access distinguishes read-only operand resolution from store/RMW
// resolution: the indexed absolute and indirect-indexed modes pay their
// page-crossing penalty unconditionally when the access writes.
type access int

const (
	accessRead access = iota
	accessWrite
)

// operandAddr resolves the effective address for the given addressing mode,
// advancing PC over the operand bytes and charging the mode's extra cycles.
//
// https://www.nesdev.org/wiki/CPU_addressing_modes
func (c *Cpu) operandAddr(mode inst.AddressingMode, acc access) uint16 {
	switch mode {

	case inst.Immediate:
		a := c.PC
		c.PC++
		return a

	case inst.ZeroPage:
		return uint16(c.fetch())

	case inst.ZeroPageX:
		// the index wraps within page 0; (fetch + X) mod 256
		c.tick(1)
		return uint16(c.fetch() + c.X)

	case inst.ZeroPageY:
		c.tick(1)
		return uint16(c.fetch() + c.Y)

	case inst.Absolute:
		return c.fetchWord()

	case inst.AbsoluteX:
		base := c.fetchWord()
		a := base + uint16(c.X) // wrapping 16-bit
		if acc == accessWrite || a&0xff00 != base&0xff00 {
			c.tick(1)
		}
		return a

	case inst.AbsoluteY:
		base := c.fetchWord()
		a := base + uint16(c.Y)
		if acc == accessWrite || a&0xff00 != base&0xff00 {
			c.tick(1)
		}
		return a

	case inst.IndirectX:
		// pointer in page 0 at (fetch + X) mod 256; both pointer bytes
		// wrap within the page
		c.tick(1)
		ptr := c.fetch() + c.X
		lo := c.Read(uint16(ptr))
		hi := c.Read(uint16(ptr + 1))
		return uint16(hi)<<8 | uint16(lo)

	case inst.IndirectY:
		// pointer at fetch, zero-page-wrapped, then + Y
		ptr := c.fetch()
		lo := c.Read(uint16(ptr))
		hi := c.Read(uint16(ptr + 1))
		base := uint16(hi)<<8 | uint16(lo)
		a := base + uint16(c.Y)
		if acc == accessWrite || a&0xff00 != base&0xff00 {
			c.tick(1)
		}
		return a

	case inst.Indirect:
		// JMP only. The NMOS part never carries into the high byte when
		// reading the second pointer byte: a pointer at $xxFF reads its
		// high byte from $xx00.
		// http://www.6502.org/tutorials/6502opcodes.html#JMP
		ptr := c.fetchWord()
		lo := c.Read(ptr)
		hi := c.Read(ptr&0xff00 | (ptr+1)&0x00ff)
		return uint16(hi)<<8 | uint16(lo)
	}

	return 0 // Implied has no operand address
}

// loadOperand resolves and reads the operand byte for read-type
// instructions.
func (c *Cpu) loadOperand(mode inst.AddressingMode) byte {
	return c.Read(c.operandAddr(mode, accessRead))
}

// Stall charges a VIC cycle steal to every counter, including the
// in-flight step count. Implements vic.Staller.
func (c *Cpu) Stall(cycles byte) {
	c.CyclesExecuted += uint32(cycles)
	c.CyclesLastStep += cycles
	c.CyclesSinceVsync += uint32(cycles)
	c.CyclesSinceHsync += uint32(cycles)
}

// RunStep executes a single fetch/decode/execute cycle and returns the
// number of cycles it consumed. A return of 0 ends the current run: BRK,
// RTS with an empty stack, an undocumented opcode, or the KERNAL
// interrupt-return heuristic.
func (c *Cpu) RunStep() byte {
	c.Sid.ClearStep()
	c.Vic.ClearStep()
	c.halted = false

	entry := c.CyclesExecuted

	op := c.fetch() // decoding the opcode always requires 1 cycle
	c.Opcode = op

	o, legal := Opcodes[op]
	if !legal {
		// no entry for this byte; end the run and let the caller decide
		c.halted = true
	} else {
		o.Exec(c, o.In)

		if c.peek(0x0001)&0x07 != 0x05 &&
			(c.PC == kernalIrqReturn || c.PC == kernalIrqReturnFar) {
			c.halted = true
		}
	}

	c.Status = c.flagsToStatus()

	c.CyclesLastStep = byte(c.CyclesExecuted - entry)
	c.CyclesSinceVsync += uint32(c.CyclesLastStep)
	c.CyclesSinceHsync += uint32(c.CyclesLastStep)

	if c.CyclesSinceHsync >= c.Vic.Model.CyclesPerLine() {
		// reset first: the badline stall charged inside EmulateD012 lands
		// in the fresh counter
		c.CyclesSinceHsync = 0
		c.Vic.EmulateD012()
	}
	if c.CyclesSinceVsync >= c.Vic.Model.CyclesPerFrame() {
		c.Vic.Frame++
		c.CyclesSinceVsync = 0
	}

	if c.halted {
		return 0
	}
	return c.CyclesLastStep
}
