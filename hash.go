package edn

import (
	"math"

	"github.com/mcvoid/edn/internal/arena"
	"github.com/mcvoid/edn/internal/bignum"
)

// FNV-1a constants, 64-bit (matches the reference pack's fastHash-style
// hashing in other_examples' MinIO cache engine, generalized from strings
// to the full set of EDN variants).
const (
	fnvOffset64 uint64 = 14695981039346656037
	fnvPrime64  uint64 = 1099511628211
)

func fnvWrite(h uint64, b byte) uint64 {
	h ^= uint64(b)
	h *= fnvPrime64
	return h
}

func fnvWriteBytes(h uint64, bs []byte) uint64 {
	for _, b := range bs {
		h = fnvWrite(h, b)
	}
	return h
}

func fnvWriteUint64(h uint64, n uint64) uint64 {
	for i := 0; i < 8; i++ {
		h = fnvWrite(h, byte(n))
		n >>= 8
	}
	return h
}

// Hash returns v's structural hash, consistent with Equal: two Values
// that compare Equal always have the same Hash. The
// result is cached on first call and remapped from the sentinel value 0
// to 1 so a zero cachedHash field unambiguously means "not yet computed".
func (v *Value) Hash() uint64 {
	if v.cachedHash != 0 {
		return v.cachedHash
	}
	h := v.computeHash()
	if h == 0 {
		h = 1
	}
	v.cachedHash = h
	return h
}

func (v *Value) computeHash() uint64 {
	h := fnvOffset64
	h = fnvWrite(h, byte(v.kind))

	switch v.kind {
	case KindNil:
		// kind tag alone identifies nil.
	case KindBool:
		if v.boolV {
			h = fnvWrite(h, 1)
		} else {
			h = fnvWrite(h, 0)
		}
	case KindInt:
		h = fnvWriteUint64(h, uint64(v.intV))
	case KindFloat:
		h = fnvWriteUint64(h, floatBitsForHash(v.floatV))
	case KindBigInt:
		h = hashBigRef(h, v.bigInt, v.arena)
	case KindBigDecimal:
		h = hashBigRef(h, v.bigDec, v.arena)
	case KindRatio:
		h = fnvWriteUint64(h, uint64(v.ratioNum))
		h = fnvWriteUint64(h, uint64(v.ratioDen))
	case KindBigRatio:
		h = hashBigRef(h, v.bigRatioNum, v.arena)
		h = hashBigRef(h, v.bigRatioDen, v.arena)
	case KindChar:
		h = fnvWriteUint64(h, uint64(v.charV))
	case KindString:
		if v.strHasEscapes {
			h = fnvWrite(h, 1)
		} else {
			h = fnvWrite(h, 0)
		}
		h = fnvWriteBytes(h, v.strBytes)
	case KindSymbol, KindKeyword:
		h = fnvWriteBytes(h, v.nsBytes)
		h = fnvWrite(h, '/')
		h = fnvWriteBytes(h, v.nameBytes)
	case KindList, KindVector:
		for _, item := range v.items {
			h = fnvWriteUint64(h, item.Hash())
		}
	case KindSet:
		// XOR-fold: Set equality (and thus hash) is order-independent.
		var acc uint64
		for _, item := range v.items {
			acc ^= item.Hash()
		}
		h = fnvWriteUint64(h, acc)
	case KindMap:
		var acc uint64
		for _, e := range v.entries {
			acc ^= e.Key.Hash() ^ (e.Val.Hash() * fnvPrime64)
		}
		h = fnvWriteUint64(h, acc)
	case KindTagged:
		h = fnvWriteBytes(h, v.tagName)
		h = fnvWriteUint64(h, v.tagValue.Hash())
	}
	return h
}

// floatBitsForHash canonicalizes a float64's bit pattern so that Hash stays
// consistent with Equal's treatment of NaN (all NaNs are one value, per
// this reader's "NaN equals NaN" rule) and of signed zero (-0.0 and 0.0 are
// equal, so they must hash the same).
func floatBitsForHash(f float64) uint64 {
	if math.IsNaN(f) {
		return 0x7FF8000000000000
	}
	if f == 0 {
		return 0
	}
	return math.Float64bits(f)
}

// hashBigRef folds a BigInt/BigDecimal/BigRatio component's sign, radix,
// and cleaned digits into h. Clean never fails on a ref that already
// parsed successfully (the only way a Value of this Kind exists), so a
// failure here is treated as an allocator exhaustion signal and folds in
// the raw (uncleaned) digits instead of propagating an error through a
// method (Hash) that has no error return.
func hashBigRef(h uint64, ref *bignum.BigRef, a *arena.Arena) uint64 {
	digits, err := ref.Clean(a)
	if err != nil {
		digits = ref.Digits
	}
	h = fnvWrite(h, byte(ref.Sign))
	h = fnvWrite(h, ref.Radix)
	h = fnvWriteBytes(h, digits)
	return h
}
