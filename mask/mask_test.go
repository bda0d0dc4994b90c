package mask

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMask(t *testing.T) {
	assert.True(t, IsSet(0b0000_0001, B0))
	assert.False(t, IsSet(0b0000_0001, B1))
	assert.True(t, IsSet(0b1000_0000, B7))
	assert.False(t, IsSet(0b0111_1111, B7))

	// voice control register: gate + triangle
	assert.True(t, IsSet(0b0001_0001, B0))
	assert.True(t, IsSet(0b0001_0001, B4))
	assert.False(t, IsSet(0b0001_0001, B6))

	assert.Equal(t, byte(0b0000_0111), Range(0b0111_0000, B4, B7))
	assert.Equal(t, byte(0b0000_1100), Range(0b1100_0000, B4, B7))
	assert.Equal(t, byte(0b0000_0001), Range(0b0000_0001, B0, B0))
	assert.Equal(t, byte(0b0000_0011), Range(0b0000_0110, B1, B2))
	assert.Equal(t, byte(0b1101_1000), Range(0b1101_1000, B0, B7))

	assert.Equal(t, byte(0x0f), Low(0xcf))
	assert.Equal(t, byte(0x0c), High(0xcf))
	assert.Equal(t, byte(0x04), Low(0x24))
	assert.Equal(t, byte(0x02), High(0x24))

	assert.Equal(t, byte(0b0000_0001), Set(0, B0))
	assert.Equal(t, byte(0b1000_0000), Set(0, B7))
	assert.Equal(t, byte(0b1111_1110), Clear(0xff, B0))
	assert.Equal(t, byte(0b0111_1111), Clear(0xff, B7))

	assert.Equal(t, byte(0b0000_1111), Flip(0b0000_0000, B0, B3))
	assert.Equal(t, byte(0b1000_0000), Flip(0b0000_0000, B7, B7))
	assert.Equal(t, byte(0b0000_0000), Flip(0b1111_1111, B0, B7))

	assert.Panics(t, func() { _ = Range(0, B4, B2) })
	assert.Panics(t, func() { _ = Flip(0, B4, Bit(9)) })
}

func BenchmarkIsSet(b *testing.B) {
	for range b.N {
		IsSet(0b1000_1111, B4)
	}
}

func BenchmarkRange(b *testing.B) {
	for range b.N {
		Range(0b1000_1111, B4, B7)
	}
}
