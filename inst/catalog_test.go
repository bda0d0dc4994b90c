package inst

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalog(t *testing.T) {
	// 151 documented opcodes, no more, no less
	assert.Len(t, Catalog, 151)

	for b, in := range Catalog {
		assert.Equal(t, b, in.Op)
		assert.NotEmpty(t, in.Name)
	}

	assert.Equal(t, "LDA", Catalog[0xA9].Name)
	assert.Equal(t, Immediate, Catalog[0xA9].Mode)
	assert.Equal(t, "STA", Catalog[0x8D].Name)
	assert.Equal(t, Absolute, Catalog[0x8D].Mode)
	assert.Equal(t, Indirect, Catalog[0x6C].Mode)
	assert.Equal(t, Branch, Catalog[0xF0].Group)

	// operand derivation
	lda := Catalog[0xA9]
	assert.Equal(t, RoleA, lda.Op1.Roles)
	assert.Equal(t, AccessWrite, lda.Op1.Access)
	assert.Equal(t, TypeImmediate, lda.Op2.Type)

	sta := Catalog[0x8D]
	assert.Equal(t, TypeMemory, sta.Op1.Type)
	assert.Equal(t, AccessWrite, sta.Op1.Access)
	assert.Equal(t, RoleA, sta.Op2.Roles)

	asl := Catalog[0x06]
	assert.Equal(t, AccessReadWrite, asl.Op1.Access)
}

func TestSize(t *testing.T) {
	assert.Equal(t, 1, Size(Implied))
	assert.Equal(t, 2, Size(Immediate))
	assert.Equal(t, 2, Size(ZeroPage))
	assert.Equal(t, 2, Size(ZeroPageX))
	assert.Equal(t, 2, Size(ZeroPageY))
	assert.Equal(t, 2, Size(IndirectX))
	assert.Equal(t, 2, Size(IndirectY))
	assert.Equal(t, 3, Size(Absolute))
	assert.Equal(t, 3, Size(AbsoluteX))
	assert.Equal(t, 3, Size(AbsoluteY))
	assert.Equal(t, 3, Size(Indirect))
}

func TestDecode(t *testing.T) {
	d, ok := Decode([]byte{0xA9, 0xCF})
	assert.True(t, ok)
	assert.Equal(t, "LDA", d.Name)
	assert.Equal(t, byte(0xCF), d.Lo)
	assert.Equal(t, 2, d.Size())

	d, ok = Decode([]byte{0x8D, 0x17, 0xD4})
	assert.True(t, ok)
	assert.Equal(t, uint16(0xD417), d.Word())
	assert.Equal(t, 3, d.Size())

	_, ok = Decode([]byte{0x02})
	assert.False(t, ok)
	_, ok = Decode(nil)
	assert.False(t, ok)
}

func TestDisassemble(t *testing.T) {
	dis := func(b ...byte) string {
		d, ok := Decode(b)
		assert.True(t, ok)
		return Disassemble(0x0800, d)
	}

	assert.Equal(t, "LDA #$CF", dis(0xA9, 0xCF))
	assert.Equal(t, "STA $D417", dis(0x8D, 0x17, 0xD4))
	assert.Equal(t, "LDA $FE", dis(0xA5, 0xFE))
	assert.Equal(t, "LDA $FE,X", dis(0xB5, 0xFE))
	assert.Equal(t, "LDX $FE,Y", dis(0xB6, 0xFE))
	assert.Equal(t, "LDA $1234,X", dis(0xBD, 0x34, 0x12))
	assert.Equal(t, "LDA $1234,Y", dis(0xB9, 0x34, 0x12))
	assert.Equal(t, "JMP ($20FF)", dis(0x6C, 0xFF, 0x20))
	assert.Equal(t, "LDA ($FE,X)", dis(0xA1, 0xFE))
	assert.Equal(t, "LDA ($FE),Y", dis(0xB1, 0xFE))
	assert.Equal(t, "RTS", dis(0x60))
	assert.Equal(t, "ASL", dis(0x0A))

	// branch targets resolve to pc + 2 + offset
	assert.Equal(t, "BEQ $080A", dis(0xF0, 0x08))
	assert.Equal(t, "BNE $07FC", dis(0xD0, 0xFA))
}
