// Package mask provides operations to extract and manipulate ranges of bits
// from a byte.
//
// All bit positions are 0-indexed from the least significant bit, matching
// the numbering used by the MOS datasheets for the SID and VIC-II register
// layouts (e.g. gate is "bit 0" of the voice control register).
package mask

// A Bit provides compile-time safety when indexing into a byte.
type Bit byte

const (
	B0 Bit = iota
	B1
	B2
	B3
	B4
	B5
	B6
	B7
)

func checkBitRange(start, end Bit) {
	// Go does not allow us to model a constrained int with a type, hence
	// this helper
	if start > end || end > B7 {
		panic("invalid bit range -- need 0 <= start <= end <= 7")
	}
}

// IsSet reports whether the bit at pos is 1.
func IsSet(b byte, pos Bit) bool {
	return b&(1<<pos) != 0
}

// Range extracts the inclusive range of bits [start:end] from b, shifted
// down so that start becomes bit 0.
//
//	Range(0b0111_0000, B4, B7) == 0b0000_0111
func Range(b byte, start, end Bit) byte {
	checkBitRange(start, end)
	width := end - start + 1
	return (b >> start) & ((1 << width) - 1)
}

// Low extracts the low nibble of b.
func Low(b byte) byte { return b & 0x0f }

// High extracts the high nibble of b, shifted down.
func High(b byte) byte { return b >> 4 }

// Set returns b with the bit at pos set.
func Set(b byte, pos Bit) byte { return b | (1 << pos) }

// Clear returns b with the bit at pos cleared.
func Clear(b byte, pos Bit) byte { return b &^ (1 << pos) }

// Flip returns b with the bits in the inclusive range [start:end] inverted.
func Flip(b byte, start, end Bit) byte {
	checkBitRange(start, end)
	for ; ; start++ {
		b ^= 1 << start
		if start == end {
			break
		}
	}
	return b
}
