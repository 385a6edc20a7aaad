package edn

import (
	"bytes"
	"math"
	"reflect"

	"github.com/mcvoid/edn/internal/arena"
	"github.com/mcvoid/edn/internal/bignum"
)

// Compare imposes a total order usable for sorting
// mixed-Kind collections (e.g. the uniqueness check a Set or Map read
// performs): Values are first ordered by Kind's ordinal, then by a
// per-variant rule within a Kind. It is not meaningful as a domain
// ordering (there is no "natural" order between a List and a Keyword);
// it exists only so every well-formed read of a Set/Map can be checked
// for duplicates via a sort instead of the O(n^2) pairwise Equal scan
// setEqual/mapEqual use for the rarer direct-comparison case.
func Compare(a, b *Value) int {
	if a.kind != b.kind {
		if a.kind < b.kind {
			return -1
		}
		return 1
	}
	switch a.kind {
	case KindNil:
		return 0
	case KindBool:
		return compareBool(a.boolV, b.boolV)
	case KindInt:
		return compareInt64(a.intV, b.intV)
	case KindFloat:
		return compareFloat(a.floatV, b.floatV)
	case KindBigInt:
		return compareBigRef(a.bigInt, b.bigInt, a.arena)
	case KindBigDecimal:
		return compareBigRef(a.bigDec, b.bigDec, a.arena)
	case KindRatio:
		// cross-multiply: num1/den1 vs num2/den2, dens already normalized positive.
		lhs := a.ratioNum * b.ratioDen
		rhs := b.ratioNum * a.ratioDen
		return compareInt64(lhs, rhs)
	case KindBigRatio:
		if c := compareBigRef(a.bigRatioNum, b.bigRatioNum, a.arena); c != 0 {
			return c
		}
		return compareBigRef(a.bigRatioDen, b.bigRatioDen, a.arena)
	case KindChar:
		return compareInt64(int64(a.charV), int64(b.charV))
	case KindString:
		if a.strHasEscapes != b.strHasEscapes {
			if !a.strHasEscapes {
				return -1
			}
			return 1
		}
		if c := compareInt64(int64(len(a.strBytes)), int64(len(b.strBytes))); c != 0 {
			return c
		}
		return bytes.Compare(a.strBytes, b.strBytes)
	case KindSymbol, KindKeyword:
		if c := compareInt64(int64(len(a.nsBytes)), int64(len(b.nsBytes))); c != 0 {
			return c
		}
		if c := bytes.Compare(a.nsBytes, b.nsBytes); c != 0 {
			return c
		}
		if c := compareInt64(int64(len(a.nameBytes)), int64(len(b.nameBytes))); c != 0 {
			return c
		}
		return bytes.Compare(a.nameBytes, b.nameBytes)
	case KindList, KindVector:
		return compareSlice(a.items, b.items)
	case KindSet:
		if a.Equal(b) {
			return 0
		}
		return comparePointerFallback(a, b)
	case KindMap:
		if a.Equal(b) {
			return 0
		}
		return comparePointerFallback(a, b)
	case KindTagged:
		if c := bytes.Compare(a.tagName, b.tagName); c != 0 {
			return c
		}
		return Compare(a.tagValue, b.tagValue)
	}
	return 0
}

func compareBool(a, b bool) int {
	if a == b {
		return 0
	}
	if !a && b {
		return -1
	}
	return 1
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// compareFloat treats NaN as greater than every other float, including
// +Inf, so a stable total order exists even over a collection containing
// ##NaN: NaN sorts as if it were +infinity's successor.
func compareFloat(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareBigRef(a, b *bignum.BigRef, arenaRef *arena.Arena) int {
	ad, aerr := a.Clean(arenaRef)
	bd, berr := b.Clean(arenaRef)
	if aerr != nil {
		ad = a.Digits
	}
	if berr != nil {
		bd = b.Digits
	}
	if a.Radix != b.Radix {
		if a.Radix < b.Radix {
			return -1
		}
		return 1
	}
	if a.Sign != b.Sign {
		if a.Sign < b.Sign {
			return -1
		}
		return 1
	}
	c := compareMagnitude(ad, bd)
	if a.Sign < 0 {
		return -c
	}
	return c
}

// compareMagnitude compares two unsigned decimal-digit byte slices (no
// leading zeros assumed) by length first, then lexicographically.
func compareMagnitude(a, b []byte) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return bytes.Compare(a, b)
}

func compareSlice(a, b []*Value) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return compareInt64(int64(len(a)), int64(len(b)))
}

// comparePointerFallback gives unequal Sets/Maps a stable (if arbitrary)
// relative order by comparing element/entry counts first, then falling
// back to the addresses of the two *Value structs themselves. It is
// only ever reached once Equal has already said the two differ, so no
// ordering guarantee beyond "stable within one process run" is implied.
func comparePointerFallback(a, b *Value) int {
	if c := compareInt64(int64(len(a.items)+len(a.entries)), int64(len(b.items)+len(b.entries))); c != 0 {
		return c
	}
	pa, pb := reflect.ValueOf(a).Pointer(), reflect.ValueOf(b).Pointer()
	if pa < pb {
		return -1
	}
	if pa > pb {
		return 1
	}
	return 0
}
