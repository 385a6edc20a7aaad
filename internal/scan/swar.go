package scan

import "encoding/binary"

// SWAR ("SIMD Within A Register") helpers: classic bit tricks that test
// all 8 bytes of a uint64 word in parallel using ordinary integer ops.
// These are the portable baseline the pack's own simdjson-go/go-simdcsv
// examples fall back to on platforms without a vector unit; see
// DESIGN.md for why this module ships only this baseline and no
// architecture-specific assembly backend.

const batchSize = 8

const (
	loBits = 0x0101010101010101
	hiBits = 0x8080808080808080
)

// hasZeroByte reports, per SWAR folklore, whether any of the 8 bytes
// packed into v is zero.
func hasZeroByte(v uint64) bool {
	return (v-loBits)&^v&hiBits != 0
}

// hasByteEq reports whether any of the 8 bytes packed into v equals c.
func hasByteEq(v uint64, c byte) bool {
	broadcast := loBits * uint64(c)
	return hasZeroByte(v ^ broadcast)
}

// firstByteEqIndex returns the index (0-7) of the first byte in v equal to
// c, or -1 if none match. Used once hasByteEq has told us a match exists
// in the word.
func firstByteEqIndex(v uint64, c byte) int {
	broadcast := loBits * uint64(c)
	x := v ^ broadcast
	mask := (x - loBits) &^ x & hiBits
	if mask == 0 {
		return -1
	}
	return trailingZeroBytes(mask)
}

// hasByteLess reports whether any byte in v (each < 128) is strictly less
// than c, via the standard "hasless" bit-twiddling-hacks formula.
func hasByteLess(v uint64, c byte) bool {
	return (v-loBits*uint64(c))&^v&hiBits != 0
}

// firstByteLessIndex returns the index of the first byte in v that is
// strictly less than c, or -1. Only valid when every byte of v is < 128
// (true for ASCII input, which digit runs always are).
func firstByteLessIndex(v uint64, c byte) int {
	mask := (v - loBits*uint64(c)) &^ v & hiBits
	if mask == 0 {
		return -1
	}
	return trailingZeroBytes(mask)
}

func trailingZeroBytes(mask uint64) int {
	for i := 0; i < 8; i++ {
		if mask&(0xFF<<(8*i)) != 0 {
			return i
		}
	}
	return -1
}

func loadWord(data []byte, pos int) uint64 {
	return binary.LittleEndian.Uint64(data[pos : pos+8])
}
