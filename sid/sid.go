// Package sid observes the 25-byte SID register file at $D400-$D418.
//
// The Sid here is not a synthesizer: it shadows the register bytes the
// program writes, decodes each write into a typed change event, and keeps
// written/changed flags for the host. Producing samples from the stored
// registers is somebody else's job.
package sid

import (
	"fmt"
	"strings"
)

// DefaultBase is where the C64 maps the SID.
const DefaultBase = 0xD400

// NumRegisters is the size of the write-side register file ($D400-$D418).
// The chip has four more read-only locations (POTX/POTY/OSC3/ENV3) which a
// write-observer has no use for.
const NumRegisters = 25

// A Sid holds the shadow register file plus the bookkeeping the host reads
// after a run.
//
// RegWritten/RegChanged are per-step: the Cpu clears them at the start of
// every RunStep. ExtWritten/ExtChanged are sticky across a whole Call.
type Sid struct {
	Base      uint16
	Registers [NumRegisters]byte

	RegWritten bool
	RegChanged bool
	ExtWritten bool
	ExtChanged bool

	RegWrittenIdx int
	RegWrittenVal byte

	// LastChange is the change event of the current step, or nil if the
	// step wrote nothing new. Cleared by the Cpu alongside the per-step
	// flags.
	LastChange *RegisterChange
}

// New returns a Sid shadowing base..base+24.
func New(base uint16) *Sid {
	return &Sid{Base: base}
}

// ClearStep resets the per-step flags. Called by the Cpu at the start of
// every step.
func (s *Sid) ClearStep() {
	s.RegWritten = false
	s.RegChanged = false
	s.LastChange = nil
}

// ClearRun resets the sticky flags. Called by the host at the start of a
// Call.
func (s *Sid) ClearRun() {
	s.ExtWritten = false
	s.ExtChanged = false
}

// WriteRegister records a write of value to register index at the given
// cycle timestamp. Writes past the register file are ignored. The written
// flags fire on every write; the changed flags and LastChange only when the
// byte actually differs from the shadow.
func (s *Sid) WriteRegister(index int, value byte, cycle uint32) {
	if index < 0 || index >= NumRegisters {
		return
	}

	s.RegWritten = true
	s.ExtWritten = true
	s.RegWrittenIdx = index
	s.RegWrittenVal = value

	if value != s.Registers[index] {
		s.RegChanged = true
		s.ExtChanged = true
		s.LastChange = newChange(index, s.Registers[index], value, cycle)
	}

	s.Registers[index] = value
}

// GetRegisters returns a copy of the shadow register file.
func (s *Sid) GetRegisters() [NumRegisters]byte {
	return s.Registers
}

// String renders the register file grouped by voice and filter, one voice
// per line.
func (s *Sid) String() string {
	var b strings.Builder
	for osc := 0; osc < 3; osc++ {
		base := osc * 7
		fmt.Fprintf(&b, "osc%d: freq %02X%02X pw %02X%02X ctrl %02X ad %02X sr %02X\n",
			osc+1,
			s.Registers[base+1], s.Registers[base+0],
			s.Registers[base+3], s.Registers[base+2],
			s.Registers[base+4], s.Registers[base+5], s.Registers[base+6])
	}
	fmt.Fprintf(&b, "flt:  freq %02X%02X res %02X mode %02X",
		s.Registers[22], s.Registers[21], s.Registers[23], s.Registers[24])
	return b.String()
}

// PrintRegisters dumps the register file to stdout.
func (s *Sid) PrintRegisters() {
	fmt.Println(s.String())
}
