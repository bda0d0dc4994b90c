package inst

import "fmt"

// A Decoded instruction pairs a catalog entry with the operand bytes that
// followed it in memory.
type Decoded struct {
	Instruction
	Lo byte // first operand byte, when Size >= 2
	Hi byte // second operand byte, when Size == 3
}

// Decode looks up b[0] in the catalog and populates the operand bytes from
// b[1:] according to the addressing mode. ok is false for the 105 byte
// values with no documented instruction.
//
// b may be shorter than the instruction; missing operand bytes read as 0.
func Decode(b []byte) (d Decoded, ok bool) {
	if len(b) == 0 {
		return Decoded{}, false
	}
	in, ok := Catalog[b[0]]
	if !ok {
		return Decoded{}, false
	}
	d.Instruction = in
	if Size(in.Mode) >= 2 && len(b) > 1 {
		d.Lo = b[1]
	}
	if Size(in.Mode) == 3 && len(b) > 2 {
		d.Hi = b[2]
	}
	return d, true
}

// Size returns the byte length of the decoded instruction (1 to 3).
func (d Decoded) Size() int { return Size(d.Mode) }

// Word returns the operand bytes as a little-endian word.
func (d Decoded) Word() uint16 { return uint16(d.Hi)<<8 | uint16(d.Lo) }

// Disassemble formats a decoded instruction at pc. Branches resolve the
// signed offset to the absolute target (pc + 2 + offset).
func Disassemble(pc uint16, d Decoded) string {
	if d.Group == Branch {
		target := pc + 2 + uint16(int8(d.Lo))
		return fmt.Sprintf("%s $%04X", d.Name, target)
	}
	switch d.Mode {
	case Implied:
		return d.Name
	case Immediate:
		return fmt.Sprintf("%s #$%02X", d.Name, d.Lo)
	case ZeroPage:
		return fmt.Sprintf("%s $%02X", d.Name, d.Lo)
	case ZeroPageX:
		return fmt.Sprintf("%s $%02X,X", d.Name, d.Lo)
	case ZeroPageY:
		return fmt.Sprintf("%s $%02X,Y", d.Name, d.Lo)
	case Absolute:
		return fmt.Sprintf("%s $%04X", d.Name, d.Word())
	case AbsoluteX:
		return fmt.Sprintf("%s $%04X,X", d.Name, d.Word())
	case AbsoluteY:
		return fmt.Sprintf("%s $%04X,Y", d.Name, d.Word())
	case Indirect:
		return fmt.Sprintf("%s ($%04X)", d.Name, d.Word())
	case IndirectX:
		return fmt.Sprintf("%s ($%02X,X)", d.Name, d.Lo)
	case IndirectY:
		return fmt.Sprintf("%s ($%02X),Y", d.Name, d.Lo)
	}
	return d.Name
}
