// Package mem provides the flat 64 kB memory image shared by the CPU, SID
// and VIC.
package mem

// Ram is the central object that connects the 'hardware' components
// together. The C64 side of this emulator does no banking: the full
// 0x0000-0xffff range is RAM from the CPU's point of view, and ROM overlays
// are never mapped in. I/O chips (SID, VIC) observe writes from the outside
// rather than trapping them here.
//
// One or more components (structs) connect to the Ram by means of a pointer;
// e.g. Cpu.Ram = &Ram{}.
type Ram struct {
	Data [64 * 1024]byte // zeroed on init
}

func (r *Ram) Read(addr uint16) byte { return r.Data[addr] }

func (r *Ram) Write(
	addr uint16, // addresses are 2 bytes wide
	data byte,
) {
	r.Data[addr] = data
}

// Clear zeroes all 64 kB.
func (r *Ram) Clear() {
	for i := range r.Data {
		r.Data[i] = 0
	}
}
