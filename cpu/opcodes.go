package cpu

import (
	"fmt"

	"sid64/inst"
)

// An Opcode pairs an executable with its catalog entry. The catalog is the
// single source of truth for addressing mode and operand metadata; the only
// thing added here is the method that does the work.
type Opcode struct {
	Exec func(c *Cpu, in inst.Instruction)
	In   inst.Instruction
}

// one executable per mnemonic; the catalog fans the 151 opcode bytes out
// over these 56 entries
var execs = map[string]func(*Cpu, inst.Instruction){
	"ADC": (*Cpu).ADC,
	"AND": (*Cpu).AND,
	"ASL": (*Cpu).ASL,
	"BCC": (*Cpu).BCC,
	"BCS": (*Cpu).BCS,
	"BEQ": (*Cpu).BEQ,
	"BIT": (*Cpu).BIT,
	"BMI": (*Cpu).BMI,
	"BNE": (*Cpu).BNE,
	"BPL": (*Cpu).BPL,
	"BRK": (*Cpu).BRK,
	"BVC": (*Cpu).BVC,
	"BVS": (*Cpu).BVS,
	"CLC": (*Cpu).CLC,
	"CLD": (*Cpu).CLD,
	"CLI": (*Cpu).CLI,
	"CLV": (*Cpu).CLV,
	"CMP": (*Cpu).CMP,
	"CPX": (*Cpu).CPX,
	"CPY": (*Cpu).CPY,
	"DEC": (*Cpu).DEC,
	"DEX": (*Cpu).DEX,
	"DEY": (*Cpu).DEY,
	"EOR": (*Cpu).EOR,
	"INC": (*Cpu).INC,
	"INX": (*Cpu).INX,
	"INY": (*Cpu).INY,
	"JMP": (*Cpu).JMP,
	"JSR": (*Cpu).JSR,
	"LDA": (*Cpu).LDA,
	"LDX": (*Cpu).LDX,
	"LDY": (*Cpu).LDY,
	"LSR": (*Cpu).LSR,
	"NOP": (*Cpu).NOP,
	"ORA": (*Cpu).ORA,
	"PHA": (*Cpu).PHA,
	"PHP": (*Cpu).PHP,
	"PLA": (*Cpu).PLA,
	"PLP": (*Cpu).PLP,
	"ROL": (*Cpu).ROL,
	"ROR": (*Cpu).ROR,
	"RTI": (*Cpu).RTI,
	"RTS": (*Cpu).RTS,
	"SBC": (*Cpu).SBC,
	"SEC": (*Cpu).SEC,
	"SED": (*Cpu).SED,
	"SEI": (*Cpu).SEI,
	"STA": (*Cpu).STA,
	"STX": (*Cpu).STX,
	"STY": (*Cpu).STY,
	"TAX": (*Cpu).TAX,
	"TAY": (*Cpu).TAY,
	"TSX": (*Cpu).TSX,
	"TXA": (*Cpu).TXA,
	"TXS": (*Cpu).TXS,
	"TYA": (*Cpu).TYA,
}

// Opcodes maps every documented opcode byte to its dispatch entry, derived
// from the catalog at init.
var Opcodes = map[byte]Opcode{}

func init() {
	for b, in := range inst.Catalog {
		exec, ok := execs[in.Name]
		if !ok {
			panic(fmt.Sprintf("catalog mnemonic %s has no executable", in.Name))
		}
		Opcodes[b] = Opcode{Exec: exec, In: in}
	}
}
